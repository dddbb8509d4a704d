package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")

// Line is one catalog item and its quantity within an order. Name, unit price
// and preparation time are copied from the catalog when the order is placed
// and never follow later catalog edits.
type Line struct {
	catalogItemID   string
	name            string
	unitPrice       kernel.Money
	preparationTime time.Duration
	quantity        int

	guard guard.ConstructorGuard
}

// NewLine snapshots a catalog item into an order line.
//
// Example:
//
//	price, _ := kernel.MoneyFromInt(2500)
//	line, err := order.NewLine("P001", "Margherita", price, 20*time.Minute, 2)
//	// line.Total() == 5000
func NewLine(
	catalogItemID string,
	name string,
	unitPrice kernel.Money,
	preparationTime time.Duration,
	quantity int,
) (Line, error) {
	var idErr, priceErr, prepErr, qtyErr error
	catalogItemID = strings.TrimSpace(catalogItemID)
	if catalogItemID == "" {
		idErr = errs.NewValueIsRequiredError("catalog item id")
	}
	if err := unitPrice.Validate(); err != nil {
		priceErr = errs.NewValueIsRequiredErrorWithCause("unit price", err)
	}
	if preparationTime <= 0 {
		prepErr = errs.NewValueIsInvalidErrorWithCause(
			"preparation time",
			fmt.Errorf("%s is not greater than 0", preparationTime),
		)
	}
	if quantity < 1 {
		qtyErr = errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if err := errors.Join(idErr, priceErr, prepErr, qtyErr); err != nil {
		return Line{}, err
	}

	return Line{
		catalogItemID:   catalogItemID,
		name:            strings.TrimSpace(name),
		unitPrice:       unitPrice,
		preparationTime: preparationTime,
		quantity:        quantity,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (l Line) Validate() error {
	return l.guard.Validate(ErrLineIsNotConstructed)
}

func (l Line) CatalogItemID() string {
	return l.catalogItemID
}

func (l Line) Name() string {
	return l.name
}

func (l Line) UnitPrice() kernel.Money {
	return l.unitPrice
}

func (l Line) PreparationTime() time.Duration {
	return l.preparationTime
}

func (l Line) Quantity() int {
	return l.quantity
}

// Total is unitPrice × quantity.
func (l Line) Total() kernel.Money {
	return l.unitPrice.Mul(l.quantity)
}
