package block

import (
	"github.com/wippyai/keydata/errors"
	"github.com/wippyai/keydata/internal/binary"
)

// CodeSegment is an append-only buffer of routines. Offsets returned by
// Append are segment-relative and stay valid for the segment's lifetime.
// The zero value is an empty segment.
type CodeSegment struct {
	blocks []byte
}

// Append adds a routine and returns the offset it starts at. The segment
// is left untouched if the routine would push it past 16-bit addressing.
func (c *CodeSegment) Append(routine []byte) (uint16, error) {
	offset := len(c.blocks)
	if offset+len(routine) > binary.MaxU16 {
		return 0, errors.RecordTooLarge(errors.PhaseEncode, "code", offset+len(routine))
	}
	c.blocks = append(c.blocks, routine...)
	return uint16(offset), nil
}

// Size returns the current segment length.
func (c *CodeSegment) Size() uint16 {
	return uint16(len(c.blocks))
}

// Bytes returns a copy of the segment contents.
func (c *CodeSegment) Bytes() []byte {
	out := make([]byte, len(c.blocks))
	copy(out, c.blocks)
	return out
}
