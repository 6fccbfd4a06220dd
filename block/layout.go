package block

// Section names reported by Layout, in wire order.
const (
	SectionEnvelope  = "envelope"
	SectionHeader    = "key_data_header"
	SectionExpiry    = "expiry"
	SectionRoomList  = "room_list"
	SectionCode      = "code"
	SectionIntegrity = "integrity"
)

// Section is a contiguous byte range of a serialized record. Offset is
// relative to the start of the record, envelope included.
type Section struct {
	Name   string
	Offset int
	Size   int
}

// Layout is the resolved placement of every section of a block.
type Layout struct {
	// BaseOffset is the code segment's position within the payload
	// (the bytes after the envelope). Room-list targets are relative to it.
	BaseOffset uint16
	// DataSize is the payload length written into the envelope.
	DataSize uint16
	// Sections lists present sections in wire order. A block without an
	// expiry rule has no expiry section.
	Sections []Section
}

// Section looks up a section by name.
func (l Layout) Section(name string) (Section, bool) {
	for _, s := range l.Sections {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}

// RecordSize is the total serialized length, envelope included.
func (l Layout) RecordSize() int {
	return envelopeSize + int(l.DataSize)
}

// PayloadOffset converts a payload position, such as a room-list jump
// target, into a record position.
func (l Layout) PayloadOffset(payloadPos int) int {
	return envelopeSize + payloadPos
}

type layoutBuilder struct {
	sections []Section
	offset   int
}

func (lb *layoutBuilder) add(name string, size int) {
	lb.sections = append(lb.sections, Section{Name: name, Offset: lb.offset, Size: size})
	lb.offset += size
}
