package binary

import (
	"bytes"
	"encoding/binary"
)

// Max values of the fixed-width big-endian fields used by key data.
const (
	MaxU16 = 0xFFFF
	MaxU24 = 0xFFFFFF
)

// Writer provides buffered big-endian writing for key-data sections.
// Fixed-width writers keep only the low bytes of their argument; callers
// range-check values before writing.
type Writer struct {
	buf *bytes.Buffer
}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{buf: &bytes.Buffer{}}
}

// Bytes returns the written bytes.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Byte writes a single byte.
func (w *Writer) Byte(b byte) {
	w.buf.WriteByte(b)
}

// WriteBytes writes a byte slice.
func (w *Writer) WriteBytes(data []byte) {
	w.buf.Write(data)
}

// WriteU16 writes a big-endian uint16 (fixed 2 bytes).
func (w *Writer) WriteU16(v uint16) {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	w.buf.Write(buf[:])
}

// WriteU24 writes the low 24 bits of v big-endian (fixed 3 bytes).
func (w *Writer) WriteU24(v uint32) {
	w.buf.Write([]byte{byte(v >> 16), byte(v >> 8), byte(v)})
}

// WriteU32 writes a big-endian uint32 (fixed 4 bytes).
func (w *Writer) WriteU32(v uint32) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	w.buf.Write(buf[:])
}
