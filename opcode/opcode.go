// Package opcode defines the instruction tags of the key-data bytecode.
//
// Byte values are part of the wire format read by existing locks and
// readers. They are pinned here and must never be reassigned.
package opcode

import "fmt"

// Opcode is a single-byte instruction tag.
type Opcode byte

const (
	JumpIfAccessPoint      Opcode = 0x02
	VerifyValidUntil       Opcode = 0x10
	VerifyAndStoreOverride Opcode = 0x11
	Access                 Opcode = 0x20
	End                    Opcode = 0xAA
	AccessDenied           Opcode = 0xFF
)

// OperandKind names what an instruction's operand bytes carry.
type OperandKind int

const (
	OperandNone        OperandKind = iota
	OperandJump                    // access point (u24) + target offset (u16)
	OperandTimestamp               // expiry, u32 epoch seconds
	OperandOverride                // override number, u32
)

// Info describes one instruction's encoding.
type Info struct {
	Name         string
	Opcode       Opcode
	OperandBytes int
	Operand      OperandKind
}

var table = map[Opcode]Info{
	JumpIfAccessPoint:      {"jump_if_access_point", JumpIfAccessPoint, 5, OperandJump},
	VerifyValidUntil:       {"verify_valid_until", VerifyValidUntil, 4, OperandTimestamp},
	VerifyAndStoreOverride: {"verify_and_store_override", VerifyAndStoreOverride, 4, OperandOverride},
	Access:                 {"access", Access, 0, OperandNone},
	End:                    {"end", End, 0, OperandNone},
	AccessDenied:           {"access_denied", AccessDenied, 0, OperandNone},
}

// Encode returns the wire byte of op.
func (op Opcode) Encode() byte {
	return byte(op)
}

// Valid reports whether op is one of the defined instruction tags.
func (op Opcode) Valid() bool {
	_, ok := table[op]
	return ok
}

func (op Opcode) String() string {
	if info, ok := table[op]; ok {
		return info.Name
	}
	return fmt.Sprintf("opcode(0x%02X)", byte(op))
}

// Size returns the encoded instruction length including operands, or 0
// for an unknown opcode.
func (op Opcode) Size() int {
	info, ok := table[op]
	if !ok {
		return 0
	}
	return 1 + info.OperandBytes
}

// Describe returns the table entry for op.
func Describe(op Opcode) (Info, bool) {
	info, ok := table[op]
	return info, ok
}
