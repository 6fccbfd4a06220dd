package config

import (
	"strconv"
	"strings"

	"github.com/wippyai/keydata/errors"
)

// ParseAccess parses the command-line shorthand for an access group:
// comma-separated access points, optionally followed by "@" and an
// override number. Numbers accept Go base prefixes ("0x1F").
//
//	"101,102"   non-overriding access to 101 and 102
//	"101@1"     access to 101 with override number 1
func ParseAccess(s string) (Access, error) {
	points, override, hasOverride := strings.Cut(strings.TrimSpace(s), "@")

	var a Access
	for _, field := range strings.Split(points, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		ap, err := strconv.ParseUint(field, 0, 32)
		if err != nil {
			return Access{}, errors.New(errors.PhaseParse, errors.KindInvalidInput).
				Field("access_point").
				Cause(err).
				Detail("invalid access point %q in %q", field, s).
				Build()
		}
		a.AccessPoints = append(a.AccessPoints, uint32(ap))
	}
	if len(a.AccessPoints) == 0 {
		return Access{}, errors.InvalidInput(errors.PhaseParse, "access group "+strconv.Quote(s)+" has no access points")
	}

	if hasOverride {
		n, err := strconv.ParseUint(strings.TrimSpace(override), 0, 32)
		if err != nil {
			return Access{}, errors.New(errors.PhaseParse, errors.KindInvalidInput).
				Field("override").
				Cause(err).
				Detail("invalid override number in %q", s).
				Build()
		}
		v := uint32(n)
		a.Override = &v
	}
	return a, nil
}

// String renders a in the ParseAccess shorthand.
func (a Access) String() string {
	var b strings.Builder
	for i, ap := range a.AccessPoints {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(uint64(ap), 10))
	}
	if a.Override != nil {
		b.WriteByte('@')
		b.WriteString(strconv.FormatUint(uint64(*a.Override), 10))
	}
	return b.String()
}
