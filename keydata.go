package keydata

import (
	"github.com/wippyai/keydata/config"
)

// Compile parses a key description and serializes the record it describes.
func Compile(source []byte, format config.Format) ([]byte, error) {
	key, err := config.Parse(source, format)
	if err != nil {
		return nil, err
	}
	b, err := key.Block()
	if err != nil {
		return nil, err
	}
	return b.Bytes()
}
