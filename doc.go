// Package keydata encodes key-data records used to program access-control
// credentials.
//
// A record carries a key identifier, an optional expiry, and a small
// rule-and-jump program: a room list that dispatches each access point to
// a routine in the code segment, where the routine grants access, possibly
// after verifying an override number.
//
// # Architecture Overview
//
//	keydata/          Compile: key description to record bytes
//	├── block/        Record layout and the SingleBlock assembler
//	├── opcode/       Instruction tags of the record bytecode
//	├── config/       YAML, TOML and JSONC key descriptions
//	├── hexdump/      Plain and section-annotated hex rendering
//	├── errors/       Structured error types
//	└── cmd/keydata/  Command line tool
//
// # Quick Start
//
// Build a record directly:
//
//	data, err := block.New(0xAABBCCDD).
//	    WithValidUntil(0x09080706).
//	    WithOverridingAccess([]uint32{101}, 1).
//	    WithNonOverridingAccess([]uint32{1000000, 1000001}).
//	    Bytes()
//
// Or from a description:
//
//	data, err := keydata.Compile(source, config.FormatYAML)
//
// # Integrity
//
// The last two bytes of a record are reserved for an integrity value.
// Readers currently expect zero, which is the default. Other algorithms
// can be plugged in with SingleBlock.WithIntegrity.
package keydata
