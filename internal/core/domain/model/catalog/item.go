package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

// MaxIDLength bounds catalog identifiers such as "P001".
const MaxIDLength = 32

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a menu entry. Its id is fixed at creation; everything else may be
// revised by catalog management. Orders never reference an Item directly,
// they copy price and preparation time into their lines.
type Item struct {
	id              string
	name            string
	description     string
	ingredients     []string
	size            Size
	price           kernel.Money
	preparationTime time.Duration
	category        Category
	available       bool

	guard guard.ConstructorGuard
}

// Details carries the revisable attributes of an Item.
type Details struct {
	Name            string
	Description     string
	Ingredients     []string
	Size            Size
	Price           kernel.Money
	PreparationTime time.Duration
	Category        Category
	Available       bool
}

// NewItem validates every attribute and returns all violations joined.
//
// Example:
//
//	price, _ := kernel.MoneyFromInt(2500)
//	item, err := catalog.NewItem("P001", catalog.Details{
//	    Name:            "Margherita",
//	    Ingredients:     []string{"tomato", "mozzarella", "basil"},
//	    Size:            catalog.Medium,
//	    Price:           price,
//	    PreparationTime: 20 * time.Minute,
//	    Category:        catalog.Classic,
//	    Available:       true,
//	})
func NewItem(id string, details Details) (*Item, error) {
	item := &Item{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		item.setID(id),
		item.apply(details),
	); err != nil {
		return nil, err
	}
	return item, nil
}

func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// Revise replaces every revisable attribute. On error the item is unchanged.
func (i *Item) Revise(details Details) error {
	probe := &Item{}
	if err := probe.apply(details); err != nil {
		return err
	}
	_ = i.apply(details)
	return nil
}

func (i *Item) ID() string { return i.id }
func (i *Item) Name() string { return i.name }
func (i *Item) Description() string { return i.description }
func (i *Item) Ingredients() []string { return slices.Clone(i.ingredients) }
func (i *Item) Size() Size { return i.size }
func (i *Item) Price() kernel.Money { return i.price }
func (i *Item) PreparationTime() time.Duration { return i.preparationTime }
func (i *Item) Category() Category { return i.category }
func (i *Item) IsAvailable() bool { return i.available }

// Details returns a copy of the revisable attributes.
func (i *Item) Details() Details {
	return Details{
		Name:            i.name,
		Description:     i.description,
		Ingredients:     i.Ingredients(),
		Size:            i.size,
		Price:           i.price,
		PreparationTime: i.preparationTime,
		Category:        i.category,
		Available:       i.available,
	}
}

func (i *Item) setID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errs.NewValueIsRequiredError("catalog item id")
	}
	if len(id) > MaxIDLength {
		return errs.NewValueIsOutOfRangeError("catalog item id length", len(id), 1, MaxIDLength)
	}
	i.id = id
	return nil
}

func (i *Item) apply(d Details) error {
	name := strings.TrimSpace(d.Name)
	var nameErr, priceErr, prepErr error
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	if err := d.Price.Validate(); err != nil {
		priceErr = errs.NewValueIsRequiredErrorWithCause("price", err)
	}
	if d.PreparationTime <= 0 {
		prepErr = errs.NewValueIsInvalidErrorWithCause(
			"preparation time",
			fmt.Errorf("%s is not greater than 0", d.PreparationTime),
		)
	}
	if err := errors.Join(
		nameErr,
		d.Size.Validate(),
		priceErr,
		prepErr,
		d.Category.Validate(),
	); err != nil {
		return err
	}

	ingredients := make([]string, 0, len(d.Ingredients))
	for _, ing := range d.Ingredients {
		if ing = strings.TrimSpace(ing); ing != "" {
			ingredients = append(ingredients, ing)
		}
	}

	i.name = name
	i.description = strings.TrimSpace(d.Description)
	i.ingredients = ingredients
	i.size = d.Size
	i.price = d.Price
	i.preparationTime = d.PreparationTime
	i.category = d.Category
	i.available = d.Available
	return nil
}
