package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	kderrors "github.com/wippyai/keydata/errors"
	"github.com/wippyai/keydata/hexdump"
)

const fullHex = "01 FF 00 2A 01 04 AA BB CC DD 10 09 08 07 06 " +
	"02 00 00 65 00 1F 02 0F 42 40 00 26 02 0F 42 41 00 26 FF AA " +
	"11 00 00 00 01 20 AA 20 AA 00 00"

func TestCreateFromFlags(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{
		"create",
		"--key-id", "0xaabbccdd",
		"--valid-until", "0x09080706",
		"--access", "101@1",
		"--access", "1000000,1000001",
	}, &out)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	want := "key_data: " + fullHex + "\nsize: 46\n"
	if out.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", out.String(), want)
	}
}

func TestCreateFromSpec(t *testing.T) {
	dir := t.TempDir()
	spec := filepath.Join(dir, "key.yaml")
	src := "id: 0xAABBCCDD\nvalid_until: 0x09080706\naccess:\n  - access_points: [101]\n    override: 1\n"
	if err := os.WriteFile(spec, []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}

	// Flags extend the description.
	outPath := filepath.Join(dir, "key.bin")
	var out bytes.Buffer
	err := run([]string{"create", "--spec", spec, "--access", "1000000,1000001", "-o", outPath, "--binary"}, &out)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if got := hexdump.Format(data); got != fullHex {
		t.Errorf("got  %s\nwant %s", got, fullHex)
	}

	hexPath := filepath.Join(dir, "key.hex")
	if err := run([]string{"create", "--spec", spec, "--access", "1000000,1000001", "-o", hexPath}, &out); err != nil {
		t.Fatal(err)
	}
	text, _ := os.ReadFile(hexPath)
	if string(text) != fullHex+"\n" {
		t.Errorf("hex file %q", text)
	}
}

func TestCreateAnnotate(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"create", "--key-id", "1", "--annotate"}, &out); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "envelope        0000  01 FF 00 0A\n") {
		t.Errorf("annotated output:\n%s", out.String())
	}
}

func TestCreateAnnotateInstructions(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"create", "--key-id", "1", "--access", "5", "--annotate"}, &out); err != nil {
		t.Fatal(err)
	}
	for _, line := range []string{
		"  000A  jump_if_access_point      ap=5 target=000E\n",
		"  0012  access\n",
	} {
		if !strings.Contains(out.String(), line) {
			t.Errorf("annotated output missing %q:\n%s", line, out.String())
		}
	}
}

func TestCreateErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		kind kderrors.Kind
	}{
		{"no key", []string{"create"}, kderrors.KindInvalidInput},
		{"bad access", []string{"create", "--key-id", "1", "--access", "x"}, kderrors.KindInvalidInput},
		{"wide access point", []string{"create", "--key-id", "1", "--access", "0x1000000"}, kderrors.KindValueOutOfRange},
		{"unknown integrity", []string{"create", "--key-id", "1", "--integrity", "md5"}, kderrors.KindNotFound},
		{"unknown command", []string{"destroy"}, kderrors.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := run(tt.args, &out)
			var e *kderrors.Error
			if !errors.As(err, &e) || e.Kind != tt.kind {
				t.Errorf("got %v, want kind %s", err, tt.kind)
			}
		})
	}
}

func TestRead(t *testing.T) {
	err := run([]string{"read", "key.bin"}, &bytes.Buffer{})
	if !errors.Is(err, &kderrors.Error{Phase: kderrors.PhaseCLI, Kind: kderrors.KindUnsupported}) {
		t.Errorf("read: got %v, want unsupported", err)
	}

	err = run([]string{"read"}, &bytes.Buffer{})
	if !errors.Is(err, &kderrors.Error{Phase: kderrors.PhaseCLI, Kind: kderrors.KindInvalidInput}) {
		t.Errorf("read without input: got %v", err)
	}
}

func enter(t *testing.T, m *interactiveModel, value string) {
	t.Helper()
	m.input.SetValue(value)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

func TestInteractiveFlow(t *testing.T) {
	m := newInteractiveModel("")

	enter(t, m, "nope")
	if m.state != stateKeyID || m.err == nil {
		t.Fatal("invalid key id should keep the prompt and report an error")
	}

	enter(t, m, "0xAABBCCDD")
	enter(t, m, "0x09080706")
	enter(t, m, "101@1")
	enter(t, m, "0x1000000")
	if m.err == nil || len(m.key.Access) != 1 {
		t.Fatalf("wide access point should be rejected, groups %d", len(m.key.Access))
	}
	enter(t, m, "1000000,1000001")
	enter(t, m, "")

	if m.state != stateResult {
		t.Fatalf("state %d, want result (err %v)", m.state, m.err)
	}
	if got := hexdump.Format(m.record); got != fullHex {
		t.Errorf("got  %s\nwant %s", got, fullHex)
	}
	if !strings.Contains(m.View(), "size: 46") {
		t.Error("result view should show the record size")
	}

	enter(t, m, "")
	if m.state != stateKeyID || len(m.key.Access) != 0 {
		t.Error("enter on the result should start a new key")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Error("ctrl+c should quit")
	}
}
