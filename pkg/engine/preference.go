package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sanonone/wayfinder/pkg/spatial"
)

// ErrInvalidPreference is returned when a preference label is not recognised.
var ErrInvalidPreference = errors.New("invalid navigation preference")

// Preference selects stairs or elevator for cross-floor routes.
// The zero value is PreferenceAuto.
type Preference int

const (
	// PreferenceAuto uses stairs for a single floor change and the elevator otherwise.
	PreferenceAuto Preference = iota
	PreferenceStairs
	PreferenceElevator
)

// ParsePreference maps "auto", "stairs" and "elevator" (any casing) to a
// Preference. The empty string is Auto.
func ParsePreference(s string) (Preference, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return PreferenceAuto, nil
	case "stairs":
		return PreferenceStairs, nil
	case "elevator":
		return PreferenceElevator, nil
	}
	return PreferenceAuto, fmt.Errorf("%w: %q", ErrInvalidPreference, s)
}

func (p Preference) String() string {
	switch p {
	case PreferenceStairs:
		return "stairs"
	case PreferenceElevator:
		return "elevator"
	default:
		return "auto"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Preference) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Preference) UnmarshalText(text []byte) error {
	parsed, err := ParsePreference(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// transportOrder returns the vertical transport types to try, most preferred first.
func (p Preference) transportOrder(floorDiff int) [2]spatial.NodeType {
	switch p {
	case PreferenceStairs:
		return [2]spatial.NodeType{spatial.Stairs, spatial.Elevator}
	case PreferenceElevator:
		return [2]spatial.NodeType{spatial.Elevator, spatial.Stairs}
	default:
		if floorDiff == 1 || floorDiff == -1 {
			return [2]spatial.NodeType{spatial.Stairs, spatial.Elevator}
		}
		return [2]spatial.NodeType{spatial.Elevator, spatial.Stairs}
	}
}

// explicit returns the node type the caller asked for, if any.
func (p Preference) explicit() (spatial.NodeType, bool) {
	switch p {
	case PreferenceStairs:
		return spatial.Stairs, true
	case PreferenceElevator:
		return spatial.Elevator, true
	}
	return "", false
}
