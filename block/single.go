package block

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/wippyai/keydata/errors"
	"github.com/wippyai/keydata/internal/binary"
	"github.com/wippyai/keydata/opcode"
)

// SingleBlock assembles one key-data record. Builder methods mutate the
// block and return it for chaining. The first failing builder call is
// recorded and turns the remaining calls into no-ops; it is reported by
// Err, Layout and Bytes.
//
// The zero value is an empty block for key 0 with the placeholder
// integrity field.
type SingleBlock struct {
	err       error
	expiry    *ExpiryRule
	integrity IntegrityFunc
	roomList  RoomList
	code      CodeSegment
	keyID     uint32
}

// New creates an empty single-block record for keyID with no expiry and
// the placeholder integrity field.
func New(keyID uint32) *SingleBlock {
	return &SingleBlock{keyID: keyID}
}

// WithValidUntil sets the expiry timestamp. Zero means no expiry and
// clears any expiry set earlier.
func (b *SingleBlock) WithValidUntil(timestamp uint32) *SingleBlock {
	if timestamp == 0 {
		return b.WithoutExpiry()
	}
	return b.WithExpiry(timestamp)
}

// WithExpiry sets an expiry rule unconditionally, so a zero timestamp
// is encoded as a rule rather than dropped.
func (b *SingleBlock) WithExpiry(timestamp uint32) *SingleBlock {
	if b.err != nil {
		return b
	}
	b.expiry = &ExpiryRule{Timestamp: timestamp}
	return b
}

// WithoutExpiry removes the expiry rule.
func (b *SingleBlock) WithoutExpiry() *SingleBlock {
	if b.err != nil {
		return b
	}
	b.expiry = nil
	return b
}

// WithOverridingAccess grants accessPoints through one shared routine
// that verifies and stores overrideNumber before granting access.
func (b *SingleBlock) WithOverridingAccess(accessPoints []uint32, overrideNumber uint32) *SingleBlock {
	w := binary.NewWriter()
	w.Byte(opcode.VerifyAndStoreOverride.Encode())
	w.WriteU32(overrideNumber)
	w.Byte(opcode.Access.Encode())
	w.Byte(opcode.End.Encode())
	return b.addRoutine(w.Bytes(), accessPoints)
}

// WithNonOverridingAccess grants accessPoints through one shared routine.
func (b *SingleBlock) WithNonOverridingAccess(accessPoints []uint32) *SingleBlock {
	return b.addRoutine([]byte{opcode.Access.Encode(), opcode.End.Encode()}, accessPoints)
}

// WithIntegrity sets the function computing the trailing field. A nil
// fn restores the placeholder. fn receives a copy of the record, so it
// cannot change the emitted bytes.
func (b *SingleBlock) WithIntegrity(fn IntegrityFunc) *SingleBlock {
	if b.err != nil {
		return b
	}
	b.integrity = fn
	return b
}

// addRoutine emits routine once and points every access point at it.
// Access points are checked first so a rejected call leaves the block
// unchanged.
func (b *SingleBlock) addRoutine(routine []byte, accessPoints []uint32) *SingleBlock {
	if b.err != nil {
		return b
	}
	for i, ap := range accessPoints {
		if ap > binary.MaxU24 {
			b.err = errors.AtPath(
				errors.ValueOutOfRange(errors.PhaseEncode, "access_point", uint64(ap), binary.MaxU24),
				"access_points", strconv.Itoa(i))
			return b
		}
	}

	offset, err := b.code.Append(routine)
	if err != nil {
		b.err = err
		return b
	}
	for _, ap := range accessPoints {
		if err := b.roomList.Add(ap, offset); err != nil {
			b.err = err
			return b
		}
	}
	return b
}

// KeyID returns the key identifier.
func (b *SingleBlock) KeyID() uint32 {
	return b.keyID
}

// Expiry returns the expiry timestamp and whether an expiry rule is set.
func (b *SingleBlock) Expiry() (uint32, bool) {
	if b.expiry == nil {
		return 0, false
	}
	return b.expiry.Timestamp, true
}

// RoomList returns the registered entries in dispatch order, with
// segment-relative offsets.
func (b *SingleBlock) RoomList() []RoomListEntry {
	return b.roomList.Entries()
}

// Err returns the first error recorded by a builder call.
func (b *SingleBlock) Err() error {
	return b.err
}

// Layout resolves section sizes in dependency order. The room list is
// placed before the code segment it jumps into, so its size is what
// fixes the code segment's base offset.
func (b *SingleBlock) Layout() (Layout, error) {
	if b.err != nil {
		return Layout{}, b.err
	}

	header := NewKeyDataHeader(b.keyID)
	base := header.Size() + b.roomList.Size()
	if b.expiry != nil {
		base += b.expiry.Size()
	}
	dataSize := base + int(b.code.Size()) + integritySize
	if dataSize > binary.MaxU16 {
		return Layout{}, errors.RecordTooLarge(errors.PhaseLayout, "record", dataSize)
	}

	lb := &layoutBuilder{}
	lb.add(SectionEnvelope, envelopeSize)
	lb.add(SectionHeader, header.Size())
	if b.expiry != nil {
		lb.add(SectionExpiry, b.expiry.Size())
	}
	lb.add(SectionRoomList, b.roomList.Size())
	lb.add(SectionCode, int(b.code.Size()))
	lb.add(SectionIntegrity, integritySize)

	return Layout{
		BaseOffset: uint16(base),
		DataSize:   uint16(dataSize),
		Sections:   lb.sections,
	}, nil
}

// Bytes serializes the block. It does not modify the block, and repeated
// calls return identical records.
func (b *SingleBlock) Bytes() ([]byte, error) {
	layout, err := b.Layout()
	if err != nil {
		return nil, err
	}

	w := binary.NewWriter()
	emit := func(name string, data []byte) {
		logSection(name, data)
		w.WriteBytes(data)
	}

	emit(SectionEnvelope, Envelope{Format: FormatSingleBlock}.Bytes(layout.DataSize))
	emit(SectionHeader, NewKeyDataHeader(b.keyID).Bytes())
	if b.expiry != nil {
		emit(SectionExpiry, b.expiry.Bytes())
	}
	rooms, err := b.roomList.Encode(layout.BaseOffset)
	if err != nil {
		return nil, err
	}
	emit(SectionRoomList, rooms)
	emit(SectionCode, b.code.Bytes())

	integrity := b.integrity
	if integrity == nil {
		integrity = NoIntegrity
	}
	sum := integrity(bytes.Clone(w.Bytes()))
	emit(SectionIntegrity, []byte{byte(sum >> 8), byte(sum)})

	return w.Bytes(), nil
}

// Hex serializes the block as uppercase, space-separated hex.
func (b *SingleBlock) Hex() (string, error) {
	data, err := b.Bytes()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("% X", data), nil
}
