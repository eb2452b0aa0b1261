package enums

import "fmt"

// Sides captures simplex (one-sided) versus duplex (two-sided) printing.
type Sides string

const (
	SidesSimplex Sides = "SIMPLEX"
	SidesDuplex  Sides = "DUPLEX"
)

var validSides = []Sides{
	SidesSimplex,
	SidesDuplex,
}

// String implements fmt.Stringer.
func (s Sides) String() string {
	return string(s)
}

// IsValid reports whether the value is a known Sides.
func (s Sides) IsValid() bool {
	for _, candidate := range validSides {
		if candidate == s {
			return true
		}
	}
	return false
}

// Count returns the number of printed sides (1 for simplex, 2 for duplex).
// The zero value counts as one side.
func (s Sides) Count() int {
	if s == SidesDuplex {
		return 2
	}
	return 1
}

// ParseSides converts raw input into a Sides.
func ParseSides(value string) (Sides, error) {
	for _, candidate := range validSides {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sides %q", value)
}
