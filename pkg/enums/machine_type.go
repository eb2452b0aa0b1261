package enums

import "fmt"

// MachineType classifies printing machines.
type MachineType string

const (
	MachineTypeOffset      MachineType = "OFFSET"
	MachineTypeDigital     MachineType = "DIGITAL"
	MachineTypeLargeFormat MachineType = "LARGE_FORMAT"
)

var validMachineTypes = []MachineType{
	MachineTypeOffset,
	MachineTypeDigital,
	MachineTypeLargeFormat,
}

// String implements fmt.Stringer.
func (m MachineType) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MachineType.
func (m MachineType) IsValid() bool {
	for _, candidate := range validMachineTypes {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMachineType converts raw input into a MachineType.
func ParseMachineType(value string) (MachineType, error) {
	for _, candidate := range validMachineTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid machine type %q", value)
}
