package block

import (
	"strconv"

	"github.com/wippyai/keydata/errors"
	"github.com/wippyai/keydata/internal/binary"
	"github.com/wippyai/keydata/opcode"
)

const (
	roomListEntrySize   = 6
	roomListTrailerSize = 2
)

// RoomListEntry maps one access point to a code-segment routine.
type RoomListEntry struct {
	AccessPoint uint32
	Offset      uint16
}

// RoomList is the ordered dispatch table of a block. Entries are tested
// in insertion order, so a repeated access point only ever reaches its
// first routine. Duplicates are kept as-is.
type RoomList struct {
	entries []RoomListEntry
}

// Add appends an entry. The access point must fit 24 bits.
func (r *RoomList) Add(accessPoint uint32, offset uint16) error {
	if accessPoint > binary.MaxU24 {
		return errors.ValueOutOfRange(errors.PhaseEncode, "access_point", uint64(accessPoint), binary.MaxU24)
	}
	r.entries = append(r.entries, RoomListEntry{AccessPoint: accessPoint, Offset: offset})
	return nil
}

// Entries returns a copy of the entries in insertion order.
func (r *RoomList) Entries() []RoomListEntry {
	return append([]RoomListEntry(nil), r.entries...)
}

// Len returns the number of entries.
func (r *RoomList) Len() int {
	return len(r.entries)
}

// Size returns the encoded size, known before the code segment is placed.
func (r *RoomList) Size() int {
	return len(r.entries)*roomListEntrySize + roomListTrailerSize
}

// Encode writes one conditional jump per entry followed by the deny
// fall-through. base is the payload position of the code segment and
// turns every segment-relative offset into a payload-absolute target.
func (r *RoomList) Encode(base uint16) ([]byte, error) {
	w := binary.NewWriter()
	for i, entry := range r.entries {
		target := int(entry.Offset) + int(base)
		if target > binary.MaxU16 {
			return nil, errors.AtPath(
				errors.RecordTooLarge(errors.PhaseLayout, "jump_target", target),
				"room_list", strconv.Itoa(i))
		}
		w.Byte(opcode.JumpIfAccessPoint.Encode())
		w.WriteU24(entry.AccessPoint)
		w.WriteU16(uint16(target))
	}
	w.Byte(opcode.AccessDenied.Encode())
	w.Byte(opcode.End.Encode())
	return w.Bytes(), nil
}
