package pulsewire

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Bit is the classification of a single pulse.
type Bit uint8

const (
	BitInvalid Bit = iota
	BitZero
	BitOne
)

func (b Bit) String() string {
	switch b {
	case BitZero:
		return "0"
	case BitOne:
		return "1"
	default:
		return "x"
	}
}

// Role selects the timing profile of the transmitter being decoded.
type Role uint8

const (
	RoleMaster Role = iota
	RoleSlave
)

// ErrUnknownRole is returned by ParseRole for unrecognised input.
var ErrUnknownRole = errors.New("unknown role")

func (r Role) String() string {
	switch r {
	case RoleMaster:
		return "master"
	case RoleSlave:
		return "slave"
	default:
		return fmt.Sprintf("Role(%d)", uint8(r))
	}
}

// ParseRole accepts "m", "master", "s" or "slave", case-insensitively.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "master":
		return RoleMaster, nil
	case "s", "slave":
		return RoleSlave, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	switch r {
	case RoleMaster, RoleSlave:
		return []byte(r.String()), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownRole, uint8(r))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(text []byte) error {
	v, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// Classify maps a pulse width to a bit under the given role.
//
// Master pulses shorter than MasterShortPulseUS are '1' and longer than
// MasterLongPulseUS are '0'; the band between is ambiguous and Invalid. Slave
// pulses have no ambiguous band. Negative or NaN widths are Invalid for both.
func Classify(durationUS float64, role Role) Bit {
	if math.IsNaN(durationUS) || durationUS < 0 {
		return BitInvalid
	}

	switch role {
	case RoleMaster:
		switch {
		case durationUS < MasterShortPulseUS:
			return BitOne
		case durationUS > MasterLongPulseUS:
			return BitZero
		}
	case RoleSlave:
		if durationUS < SlaveLongPulseUS {
			return BitOne
		}
		return BitZero
	}
	return BitInvalid
}

// ClassifyBurst classifies every pulse in b, preserving order, and returns the
// number of invalid bits.
func ClassifyBurst(b Burst, role Role) ([]Bit, int) {
	bits := make([]Bit, len(b))
	invalid := 0
	for i, p := range b {
		bits[i] = Classify(p.DurationUS, role)
		if bits[i] == BitInvalid {
			invalid++
		}
	}
	return bits, invalid
}
