package enums

import "fmt"

// ServicePricingType defines how a service charge is calculated.
type ServicePricingType string

const (
	ServicePricingFixed          ServicePricingType = "FIXED"
	ServicePricingTieredDistance ServicePricingType = "TIERED_DISTANCE"
)

var validServicePricingTypes = []ServicePricingType{
	ServicePricingFixed,
	ServicePricingTieredDistance,
}

// String implements fmt.Stringer.
func (s ServicePricingType) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ServicePricingType.
func (s ServicePricingType) IsValid() bool {
	for _, candidate := range validServicePricingTypes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseServicePricingType converts raw input into a ServicePricingType.
func ParseServicePricingType(value string) (ServicePricingType, error) {
	for _, candidate := range validServicePricingTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid service pricing type %q", value)
}
