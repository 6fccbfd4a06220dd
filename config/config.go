// Package config loads key descriptions: the key identifier, expiry and
// access groups of one credential, written as YAML, TOML or JSONC.
//
// A YAML description:
//
//	id: 0xAABBCCDD
//	valid_until: 0x09080706
//	integrity: none
//	access:
//	  - access_points: [101]
//	    override: 1
//	  - access_points: [1000000, 1000001]
package config

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/keydata/block"
	"github.com/wippyai/keydata/errors"
	"github.com/wippyai/keydata/internal/binary"
)

// Format is a key description syntax.
type Format string

const (
	FormatYAML  Format = "yaml"
	FormatTOML  Format = "toml"
	FormatJSONC Format = "jsonc"
)

// Key describes one credential.
type Key struct {
	// ValidUntil is an expiry in epoch seconds; zero means no expiry.
	ValidUntil *uint32 `yaml:"valid_until" toml:"valid_until" json:"valid_until"`
	// ExpiresAt is an alternative to ValidUntil. It is always encoded,
	// even at the epoch.
	ExpiresAt *time.Time `yaml:"expires_at" toml:"expires_at" json:"expires_at"`
	Integrity string     `yaml:"integrity" toml:"integrity" json:"integrity"`
	Access    []Access   `yaml:"access" toml:"access" json:"access"`
	ID        uint32     `yaml:"id" toml:"id" json:"id"`
}

// Access is one group of access points sharing a routine. A nil Override
// grants access without an override check.
type Access struct {
	Override     *uint32  `yaml:"override" toml:"override" json:"override"`
	AccessPoints []uint32 `yaml:"access_points" toml:"access_points" json:"access_points"`
}

// ParseFormat resolves a format name.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	case "json", "jsonc":
		return FormatJSONC, nil
	}
	return "", errors.NotFound(errors.PhaseConfig, "format", name)
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", errors.InvalidInput(errors.PhaseConfig, "cannot infer format of "+path)
	}
	return ParseFormat(ext)
}

// Load reads and parses a key description file.
func Load(path string) (*Key, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindNotFound, err, "read "+path)
	}
	return Parse(data, format)
}

// Parse decodes a key description. Unknown fields are rejected.
func Parse(data []byte, format Format) (*Key, error) {
	var k Key
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&k); err != nil {
			return nil, errors.ParseFailed("yaml", err)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &k)
		if err != nil {
			return nil, errors.ParseFailed("toml", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.InvalidData(errors.PhaseParse, []string{undecoded[0].String()}, "unknown field")
		}
	case FormatJSONC:
		dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&k); err != nil {
			return nil, errors.ParseFailed("jsonc", err)
		}
	default:
		return nil, errors.NotFound(errors.PhaseConfig, "format", string(format))
	}
	return &k, nil
}

// Validate checks the description against the wire field widths.
func (k *Key) Validate() error {
	if k.ValidUntil != nil && k.ExpiresAt != nil {
		return errors.InvalidInput(errors.PhaseConfig, "valid_until and expires_at are mutually exclusive")
	}
	if k.ExpiresAt != nil {
		if _, err := epochSeconds(*k.ExpiresAt); err != nil {
			return err
		}
	}
	if _, err := block.IntegrityByName(k.Integrity); err != nil {
		return err
	}
	for i, group := range k.Access {
		for j, ap := range group.AccessPoints {
			if ap > binary.MaxU24 {
				return errors.AtPath(
					errors.ValueOutOfRange(errors.PhaseConfig, "access_point", uint64(ap), binary.MaxU24),
					"access", strconv.Itoa(i), "access_points", strconv.Itoa(j))
			}
		}
	}
	return nil
}

// Block builds the record described by k. Access groups keep their
// order, which is the order routines and room-list entries are emitted.
func (k *Key) Block() (*block.SingleBlock, error) {
	if err := k.Validate(); err != nil {
		return nil, err
	}
	integrity, _ := block.IntegrityByName(k.Integrity)

	b := block.New(k.ID).WithIntegrity(integrity)
	switch {
	case k.ValidUntil != nil:
		b.WithValidUntil(*k.ValidUntil)
	case k.ExpiresAt != nil:
		ts, _ := epochSeconds(*k.ExpiresAt)
		b.WithExpiry(ts)
	}

	for _, group := range k.Access {
		if group.Override != nil {
			b.WithOverridingAccess(group.AccessPoints, *group.Override)
		} else {
			b.WithNonOverridingAccess(group.AccessPoints)
		}
	}
	if err := b.Err(); err != nil {
		return nil, err
	}
	return b, nil
}

func epochSeconds(t time.Time) (uint32, error) {
	secs := t.Unix()
	if secs < 0 || secs > math.MaxUint32 {
		return 0, errors.New(errors.PhaseConfig, errors.KindValueOutOfRange).
			Field("expires_at").
			Value(secs).
			Detail("%s is outside the unsigned 32-bit epoch range", t.Format(time.RFC3339)).
			Build()
	}
	return uint32(secs), nil
}
