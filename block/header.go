package block

import (
	"github.com/wippyai/keydata/internal/binary"
	"github.com/wippyai/keydata/opcode"
)

const (
	EnvelopeTag = 0x01

	// FormatSingleBlock marks a record holding exactly one block.
	FormatSingleBlock = 0xFF

	KeyDataVersion = 1

	envelopeSize      = 4
	keyDataHeaderSize = 6
	keyDataHeaderLen  = 4 // bytes following the length byte
	expiryRuleSize    = 5
	integritySize     = 2
)

// Envelope is the outermost tag, format marker and payload length.
type Envelope struct {
	Format byte
}

// Bytes encodes the envelope for a payload of dataSize bytes.
func (e Envelope) Bytes(dataSize uint16) []byte {
	w := binary.NewWriter()
	w.Byte(EnvelopeTag)
	w.Byte(e.Format)
	w.WriteU16(dataSize)
	return w.Bytes()
}

// KeyDataHeader is the fixed-size payload header.
type KeyDataHeader struct {
	Version byte
	KeyID   uint32
}

// NewKeyDataHeader creates a current-version header for keyID.
func NewKeyDataHeader(keyID uint32) KeyDataHeader {
	return KeyDataHeader{Version: KeyDataVersion, KeyID: keyID}
}

// Size is constant regardless of the key identifier.
func (h KeyDataHeader) Size() int {
	return keyDataHeaderSize
}

func (h KeyDataHeader) Bytes() []byte {
	w := binary.NewWriter()
	w.Byte(h.Version)
	w.Byte(keyDataHeaderLen)
	w.WriteU32(h.KeyID)
	return w.Bytes()
}

// ExpiryRule rejects the credential once Timestamp has passed.
type ExpiryRule struct {
	Timestamp uint32
}

func (e ExpiryRule) Size() int {
	return expiryRuleSize
}

func (e ExpiryRule) Bytes() []byte {
	w := binary.NewWriter()
	w.Byte(opcode.VerifyValidUntil.Encode())
	w.WriteU32(e.Timestamp)
	return w.Bytes()
}
