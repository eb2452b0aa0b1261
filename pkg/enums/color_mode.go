package enums

import "fmt"

// ColorMode captures black & white versus full-color printing.
type ColorMode string

const (
	ColorModeBW    ColorMode = "BW"
	ColorModeColor ColorMode = "COLOR"
)

var validColorModes = []ColorMode{
	ColorModeBW,
	ColorModeColor,
}

// String implements fmt.Stringer.
func (c ColorMode) String() string {
	return string(c)
}

// Label returns the human-readable form used in price breakdowns.
func (c ColorMode) Label() string {
	if c == ColorModeBW {
		return "Black & White"
	}
	return "Color"
}

// IsValid reports whether the value is a known ColorMode.
func (c ColorMode) IsValid() bool {
	for _, candidate := range validColorModes {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseColorMode converts raw input into a ColorMode.
func ParseColorMode(value string) (ColorMode, error) {
	for _, candidate := range validColorModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid color mode %q", value)
}
