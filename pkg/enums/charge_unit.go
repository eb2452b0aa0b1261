package enums

import "fmt"

// ChargeUnit defines how a finishing rate is billed.
type ChargeUnit string

const (
	ChargeUnitPerPiece ChargeUnit = "PER_PIECE"
	ChargeUnitPerSide  ChargeUnit = "PER_SIDE"
	ChargeUnitPerSheet ChargeUnit = "PER_SHEET"
	ChargeUnitPerSqm   ChargeUnit = "PER_SQM"
	ChargeUnitFlat     ChargeUnit = "FLAT"
)

var validChargeUnits = []ChargeUnit{
	ChargeUnitPerPiece,
	ChargeUnitPerSide,
	ChargeUnitPerSheet,
	ChargeUnitPerSqm,
	ChargeUnitFlat,
}

// String implements fmt.Stringer.
func (c ChargeUnit) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ChargeUnit.
func (c ChargeUnit) IsValid() bool {
	for _, candidate := range validChargeUnits {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseChargeUnit converts raw input into a ChargeUnit.
func ParseChargeUnit(value string) (ChargeUnit, error) {
	for _, candidate := range validChargeUnits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid charge unit %q", value)
}
