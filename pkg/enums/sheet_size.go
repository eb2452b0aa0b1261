package enums

import "fmt"

// SheetSize is a standard pre-cut paper size.
type SheetSize string

const (
	SheetSizeA4     SheetSize = "A4"
	SheetSizeA3     SheetSize = "A3"
	SheetSizeSRA3   SheetSize = "SRA3"
	SheetSizeA2     SheetSize = "A2"
	SheetSizeA1     SheetSize = "A1"
	SheetSizeA0     SheetSize = "A0"
	SheetSizeCustom SheetSize = "CUSTOM"
)

var validSheetSizes = []SheetSize{
	SheetSizeA4,
	SheetSizeA3,
	SheetSizeSRA3,
	SheetSizeA2,
	SheetSizeA1,
	SheetSizeA0,
	SheetSizeCustom,
}

// SheetDimensions holds a standard sheet's width and height in millimeters.
type SheetDimensions struct {
	WidthMM  int
	HeightMM int
}

var sheetSizeDimensions = map[SheetSize]SheetDimensions{
	SheetSizeA4:   {WidthMM: 210, HeightMM: 297},
	SheetSizeA3:   {WidthMM: 297, HeightMM: 420},
	SheetSizeSRA3: {WidthMM: 320, HeightMM: 450},
	SheetSizeA2:   {WidthMM: 420, HeightMM: 594},
	SheetSizeA1:   {WidthMM: 594, HeightMM: 841},
	SheetSizeA0:   {WidthMM: 841, HeightMM: 1189},
}

// String implements fmt.Stringer.
func (s SheetSize) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SheetSize.
func (s SheetSize) IsValid() bool {
	for _, candidate := range validSheetSizes {
		if candidate == s {
			return true
		}
	}
	return false
}

// Dimensions returns the standard width/height in millimeters.
// CUSTOM (and unknown) sizes have no standard dimensions.
func (s SheetSize) Dimensions() (SheetDimensions, bool) {
	dims, ok := sheetSizeDimensions[s]
	return dims, ok
}

// ParseSheetSize converts raw input into a SheetSize.
func ParseSheetSize(value string) (SheetSize, error) {
	for _, candidate := range validSheetSizes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sheet size %q", value)
}
