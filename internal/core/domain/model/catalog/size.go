package catalog

import (
	"fmt"

	"pizzeria/internal/pkg/errs"
)

// Size is the pizza diameter class of a catalog item.
type Size int

const (
	// UnknownSize (0) catches uninitialised values.
	UnknownSize Size = iota
	Small
	Medium
	Large
	XXL
)

func getSizeStrings() map[Size]string {
	return map[Size]string{
		UnknownSize: "UNKNOWN",
		Small:       "SMALL",
		Medium:      "MEDIUM",
		Large:       "LARGE",
		XXL:         "XXL",
	}
}

func getSizeDiameters() map[Size]int {
	//nolint:exhaustive // UnknownSize has no diameter
	return map[Size]int{
		Small:  25,
		Medium: 30,
		Large:  35,
		XXL:    40,
	}
}

// Sizes lists the valid sizes in ascending diameter.
func Sizes() []Size {
	return []Size{Small, Medium, Large, XXL}
}

func (s Size) Validate() error {
	if _, ok := getSizeDiameters()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("size", fmt.Errorf("%d is not a valid size", s))
	}
	return nil
}

func (s Size) String() string {
	if str, ok := getSizeStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Diameter returns the diameter in centimetres, 0 for an invalid size.
func (s Size) Diameter() int {
	return getSizeDiameters()[s]
}

// ParseSize maps a machine name such as "LARGE" to a Size.
func ParseSize(s string) (Size, error) {
	for _, size := range Sizes() {
		if size.String() == s {
			return size, nil
		}
	}
	return UnknownSize, errs.NewValueIsInvalidErrorWithCause("size", fmt.Errorf("%q is not a valid size", s))
}
