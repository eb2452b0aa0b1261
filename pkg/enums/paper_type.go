package enums

import "fmt"

// PaperType classifies paper stock finishes.
type PaperType string

const (
	PaperTypeCoated   PaperType = "COATED"
	PaperTypeUncoated PaperType = "UNCOATED"
	PaperTypeRecycled PaperType = "RECYCLED"
	PaperTypeGloss    PaperType = "GLOSS"
	PaperTypeMatte    PaperType = "MATTE"
	PaperTypeOther    PaperType = "OTHER"
)

var validPaperTypes = []PaperType{
	PaperTypeCoated,
	PaperTypeUncoated,
	PaperTypeRecycled,
	PaperTypeGloss,
	PaperTypeMatte,
	PaperTypeOther,
}

// String implements fmt.Stringer.
func (p PaperType) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaperType.
func (p PaperType) IsValid() bool {
	for _, candidate := range validPaperTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaperType converts raw input into a PaperType.
func ParsePaperType(value string) (PaperType, error) {
	for _, candidate := range validPaperTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid paper type %q", value)
}
