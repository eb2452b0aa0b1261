package enums

import "fmt"

// FinishingSides controls which sides a finishing is applied to.
// BOTH follows the item's print sides.
type FinishingSides string

const (
	FinishingSidesSingle FinishingSides = "SINGLE"
	FinishingSidesDouble FinishingSides = "DOUBLE"
	FinishingSidesBoth   FinishingSides = "BOTH"
)

var validFinishingSides = []FinishingSides{
	FinishingSidesSingle,
	FinishingSidesDouble,
	FinishingSidesBoth,
}

// String implements fmt.Stringer.
func (f FinishingSides) String() string {
	return string(f)
}

// IsValid reports whether the value is a known FinishingSides.
func (f FinishingSides) IsValid() bool {
	for _, candidate := range validFinishingSides {
		if candidate == f {
			return true
		}
	}
	return false
}

// EffectiveCount resolves the side count: SINGLE is 1, DOUBLE is 2 and
// BOTH (or the zero value) falls back to the item's print side count.
func (f FinishingSides) EffectiveCount(printSides int) int {
	switch f {
	case FinishingSidesSingle:
		return 1
	case FinishingSidesDouble:
		return 2
	default:
		return printSides
	}
}

// ParseFinishingSides converts raw input into a FinishingSides.
func ParseFinishingSides(value string) (FinishingSides, error) {
	for _, candidate := range validFinishingSides {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid finishing sides %q", value)
}
