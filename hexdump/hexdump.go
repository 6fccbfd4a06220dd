// Package hexdump renders key-data records as hex text.
package hexdump

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/keydata/block"
	"github.com/wippyai/keydata/opcode"
)

var (
	nameStyle = lipgloss.NewStyle().
			Bold(true).
			Width(16)

	offsetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	// Sections holding bytecode, split into instructions on request.
	codeSections = map[string]bool{
		block.SectionExpiry:   true,
		block.SectionRoomList: true,
		block.SectionCode:     true,
	}

	sectionStyles = map[string]lipgloss.Style{
		block.SectionEnvelope:  lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
		block.SectionHeader:    lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")),
		block.SectionExpiry:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB86C")),
		block.SectionRoomList:  lipgloss.NewStyle().Foreground(lipgloss.Color("#98FB98")),
		block.SectionCode:      lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA")),
		block.SectionIntegrity: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
	}
)

// Format renders data as uppercase hex bytes separated by single spaces.
func Format(data []byte) string {
	return fmt.Sprintf("% X", data)
}

// Options controls Render output.
type Options struct {
	// Styled colors each section with lipgloss styles.
	Styled bool
	// Instructions adds one line per instruction below the expiry,
	// room list and code sections.
	Instructions bool
}

// Render prints one line per section of layout: name, record offset and
// the section's bytes. Sections reaching past data are clipped.
func Render(data []byte, layout block.Layout, opts Options) string {
	var b strings.Builder
	for _, sec := range layout.Sections {
		start := min(sec.Offset, len(data))
		end := min(sec.Offset+sec.Size, len(data))
		hex := Format(data[start:end])
		if hex == "" {
			hex = "-"
		}

		if opts.Styled {
			style := sectionStyles[sec.Name]
			b.WriteString(nameStyle.Render(style.Render(sec.Name)))
			b.WriteString(offsetStyle.Render(fmt.Sprintf("%04X  ", sec.Offset)))
			b.WriteString(style.Render(hex))
		} else {
			fmt.Fprintf(&b, "%-16s%04X  %s", sec.Name, sec.Offset, hex)
		}
		b.WriteByte('\n')

		if opts.Instructions && codeSections[sec.Name] {
			for _, line := range disassemble(data[start:end], start) {
				if opts.Styled {
					line = sectionStyles[sec.Name].Render(line)
				}
				b.WriteString(line)
				b.WriteByte('\n')
			}
		}
	}
	return b.String()
}

type instruction struct {
	op       opcode.Opcode
	operands []byte
	offset   int
}

// splitInstructions walks code from its first byte. An unknown opcode or
// a truncated operand stops the walk; the remaining bytes are returned
// undecoded.
func splitInstructions(code []byte) ([]instruction, []byte) {
	var instrs []instruction
	pos := 0
	for pos < len(code) {
		op := opcode.Opcode(code[pos])
		size := op.Size()
		if !op.Valid() || pos+size > len(code) {
			break
		}
		instrs = append(instrs, instruction{op: op, operands: code[pos+1 : pos+size], offset: pos})
		pos += size
	}
	return instrs, code[pos:]
}

// disassemble renders code, found at record offset base, one instruction
// per line.
func disassemble(code []byte, base int) []string {
	instrs, rest := splitInstructions(code)
	lines := make([]string, 0, len(instrs)+1)
	for _, in := range instrs {
		line := fmt.Sprintf("  %04X  %-26s%s", base+in.offset, in.op, operandText(in.op, in.operands))
		lines = append(lines, strings.TrimRight(line, " "))
	}
	if len(rest) > 0 {
		lines = append(lines, fmt.Sprintf("  %04X  %s", base+len(code)-len(rest), Format(rest)))
	}
	return lines
}

func operandText(op opcode.Opcode, operands []byte) string {
	info, _ := opcode.Describe(op)
	switch info.Operand {
	case opcode.OperandJump:
		ap := uint32(operands[0])<<16 | uint32(operands[1])<<8 | uint32(operands[2])
		return fmt.Sprintf("ap=%d target=%04X", ap, binary.BigEndian.Uint16(operands[3:5]))
	case opcode.OperandTimestamp:
		return fmt.Sprintf("until=%d", binary.BigEndian.Uint32(operands))
	case opcode.OperandOverride:
		return fmt.Sprintf("override=%d", binary.BigEndian.Uint32(operands))
	}
	return ""
}
