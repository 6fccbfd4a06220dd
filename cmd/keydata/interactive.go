package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"

	"github.com/wippyai/keydata/block"
	"github.com/wippyai/keydata/config"
	"github.com/wippyai/keydata/errors"
	"github.com/wippyai/keydata/hexdump"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	groupStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateKeyID modelState = iota
	stateValidUntil
	stateAccess
	stateResult
)

type interactiveModel struct {
	err    error
	key    config.Key
	input  textinput.Model
	record []byte
	layout block.Layout
	state  modelState
}

func newInteractiveModel(integrity string) *interactiveModel {
	m := &interactiveModel{key: config.Key{Integrity: integrity}}
	m.resetInput("key id: ", "0xAABBCCDD")
	return m
}

func (m *interactiveModel) resetInput(prompt, placeholder string) {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = placeholder
	ti.Width = 40
	ti.Focus()
	m.input = ti
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "q":
			if m.state == stateResult {
				return m, tea.Quit
			}

		case "enter":
			m.submit(strings.TrimSpace(m.input.Value()))
			return m, nil
		}
	}

	if m.state == stateResult {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit consumes the current input and advances the prompt sequence:
// key id, expiry, then access groups until an empty line.
func (m *interactiveModel) submit(value string) {
	m.err = nil

	switch m.state {
	case stateKeyID:
		id, err := strconv.ParseUint(value, 0, 32)
		if err != nil {
			m.err = errors.New(errors.PhaseCLI, errors.KindInvalidInput).
				Field("key_id").Cause(err).Detail("expected a 32-bit number").Build()
			return
		}
		m.key.ID = uint32(id)
		m.state = stateValidUntil
		m.resetInput("valid until: ", "epoch seconds, empty for none")

	case stateValidUntil:
		if value != "" {
			ts, err := strconv.ParseUint(value, 0, 32)
			if err != nil {
				m.err = errors.New(errors.PhaseCLI, errors.KindInvalidInput).
					Field("valid_until").Cause(err).Detail("expected a 32-bit number").Build()
				return
			}
			v := uint32(ts)
			m.key.ValidUntil = &v
		}
		m.state = stateAccess
		m.resetInput("access: ", "101,102@1 (empty to finish)")

	case stateAccess:
		if value == "" {
			m.build()
			return
		}
		group, err := config.ParseAccess(value)
		if err == nil {
			err = (&config.Key{Access: []config.Access{group}}).Validate()
		}
		if err != nil {
			m.err = err
			return
		}
		m.key.Access = append(m.key.Access, group)
		m.input.SetValue("")

	case stateResult:
		*m = *newInteractiveModel(m.key.Integrity)
	}
}

func (m *interactiveModel) build() {
	b, err := m.key.Block()
	if err == nil {
		m.record, err = b.Bytes()
	}
	if err == nil {
		m.layout, err = b.Layout()
	}
	if err != nil {
		m.err = err
		return
	}
	m.state = stateResult
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Key Data"))
	b.WriteString("\n\n")

	if m.state > stateKeyID {
		fmt.Fprintf(&b, "key id:      0x%08X\n", m.key.ID)
	}
	if m.state > stateValidUntil {
		if m.key.ValidUntil != nil && *m.key.ValidUntil != 0 {
			fmt.Fprintf(&b, "valid until: %d\n", *m.key.ValidUntil)
		} else {
			b.WriteString("valid until: none\n")
		}
	}
	for _, g := range m.key.Access {
		b.WriteString(groupStyle.Render("access:      " + g.String()))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	switch m.state {
	case stateResult:
		b.WriteString(hexdump.Render(m.record, m.layout, hexdump.Options{Styled: true, Instructions: true}))
		fmt.Fprintf(&b, "\nsize: %d\n\n", len(m.record))
		b.WriteString(helpStyle.Render("enter new key • q quit"))
	default:
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter confirm • esc quit"))
	}

	if m.err != nil {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}
	return b.String()
}

func runInteractive(args []string) error {
	fs := pflag.NewFlagSet("interactive", pflag.ContinueOnError)
	integrity := fs.String("integrity", "", "trailing integrity algorithm: none, crc16, xxhash, blake3")
	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return errors.Wrap(errors.PhaseCLI, errors.KindInvalidInput, err, "parse flags")
	}
	if _, err := block.IntegrityByName(*integrity); err != nil {
		return err
	}

	p := tea.NewProgram(newInteractiveModel(*integrity), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
