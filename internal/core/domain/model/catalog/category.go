package catalog

import (
	"fmt"

	"pizzeria/internal/pkg/errs"
)

// Category groups catalog items on the menu.
type Category int

const (
	UnknownCategory Category = iota
	Classic
	Special
	Vegetarian
	Spicy
	Premium
)

func getCategoryStrings() map[Category]string {
	return map[Category]string{
		UnknownCategory: "UNKNOWN",
		Classic:         "CLASSIC",
		Special:         "SPECIAL",
		Vegetarian:      "VEGETARIAN",
		Spicy:           "SPICY",
		Premium:         "PREMIUM",
	}
}

func Categories() []Category {
	return []Category{Classic, Special, Vegetarian, Spicy, Premium}
}

func (c Category) Validate() error {
	if c <= UnknownCategory || c > Premium {
		return errs.NewValueIsInvalidErrorWithCause("category", fmt.Errorf("%d is not a valid category", c))
	}
	return nil
}

func (c Category) String() string {
	if str, ok := getCategoryStrings()[c]; ok {
		return str
	}
	return "UNKNOWN"
}

func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if c.String() == s {
			return c, nil
		}
	}
	return UnknownCategory, errs.NewValueIsInvalidErrorWithCause("category", fmt.Errorf("%q is not a valid category", s))
}
