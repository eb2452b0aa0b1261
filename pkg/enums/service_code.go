package enums

import "fmt"

// ServiceCode identifies the standard add-on services a shop can offer.
type ServiceCode string

const (
	ServiceCodeDesign   ServiceCode = "DESIGN"
	ServiceCodeDelivery ServiceCode = "DELIVERY"
	ServiceCodeRush     ServiceCode = "RUSH"
	ServiceCodeSetup    ServiceCode = "SETUP"
)

var validServiceCodes = []ServiceCode{
	ServiceCodeDesign,
	ServiceCodeDelivery,
	ServiceCodeRush,
	ServiceCodeSetup,
}

// String implements fmt.Stringer.
func (s ServiceCode) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ServiceCode.
func (s ServiceCode) IsValid() bool {
	for _, candidate := range validServiceCodes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseServiceCode converts raw input into a ServiceCode.
func ParseServiceCode(value string) (ServiceCode, error) {
	for _, candidate := range validServiceCodes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid service code %q", value)
}
