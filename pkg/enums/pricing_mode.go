package enums

import "fmt"

// PricingMode selects between sheet-fed and large-format (area) pricing.
type PricingMode string

const (
	PricingModeSheet       PricingMode = "SHEET"
	PricingModeLargeFormat PricingMode = "LARGE_FORMAT"
)

var validPricingModes = []PricingMode{
	PricingModeSheet,
	PricingModeLargeFormat,
}

// String implements fmt.Stringer.
func (p PricingMode) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PricingMode.
func (p PricingMode) IsValid() bool {
	for _, candidate := range validPricingModes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePricingMode converts raw input into a PricingMode.
func ParsePricingMode(value string) (PricingMode, error) {
	for _, candidate := range validPricingModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid pricing mode %q", value)
}
