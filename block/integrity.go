package block

import (
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/sigurn/crc16"
	"github.com/zeebo/blake3"

	"github.com/wippyai/keydata/errors"
)

// IntegrityFunc computes the trailing 2-byte field from the record
// bytes that precede it (envelope included).
type IntegrityFunc func(record []byte) uint16

// Integrity algorithm names accepted by IntegrityByName.
const (
	IntegrityNone   = "none"
	IntegrityCRC16  = "crc16"
	IntegrityXXHash = "xxhash"
	IntegrityBlake3 = "blake3"
)

var integrityFuncs = map[string]IntegrityFunc{
	IntegrityNone:   NoIntegrity,
	IntegrityCRC16:  CRC16,
	IntegrityXXHash: XXHash16,
	IntegrityBlake3: Blake3_16,
}

// IntegrityByName resolves a built-in algorithm. The empty name selects
// the placeholder.
func IntegrityByName(name string) (IntegrityFunc, error) {
	if name == "" {
		return NoIntegrity, nil
	}
	fn, ok := integrityFuncs[name]
	if !ok {
		return nil, errors.NotFound(errors.PhaseConfig, "integrity algorithm", name)
	}
	return fn, nil
}

// IntegrityNames lists the built-in algorithm names, sorted.
func IntegrityNames() []string {
	names := make([]string, 0, len(integrityFuncs))
	for name := range integrityFuncs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NoIntegrity is the placeholder readers currently expect: always zero.
func NoIntegrity([]byte) uint16 {
	return 0
}

var ccittFalse = crc16.MakeTable(crc16.CRC16_CCITT_FALSE)

// CRC16 computes CRC-16/CCITT-FALSE (poly 0x1021, init 0xFFFF).
func CRC16(record []byte) uint16 {
	return crc16.Checksum(record, ccittFalse)
}

// XXHash16 folds xxhash64 into 16 bits by xoring its four lanes.
func XXHash16(record []byte) uint16 {
	h := xxhash.Sum64(record)
	return uint16(h) ^ uint16(h>>16) ^ uint16(h>>32) ^ uint16(h>>48)
}

// Blake3_16 takes the first two bytes of BLAKE3-256.
func Blake3_16(record []byte) uint16 {
	sum := blake3.Sum256(record)
	return uint16(sum[0])<<8 | uint16(sum[1])
}
