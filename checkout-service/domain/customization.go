package domain

type Category string

const (
	CategoryFlight        Category = "flight"
	CategoryAccommodation Category = "accommodation"
	CategoryActivity      Category = "activity"
	CategoryMeal          Category = "meal"
	CategoryTransfer      Category = "transfer"
)

// Categories in display order.
var Categories = []Category{
	CategoryFlight,
	CategoryAccommodation,
	CategoryActivity,
	CategoryMeal,
	CategoryTransfer,
}

// Exclusive categories allow exactly one active option (radio semantics).
func (c Category) Exclusive() bool {
	return c != CategoryActivity
}

const MaxOptionQuantity = 10

type CustomizationOption struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Price       int64    `json:"price"`
	Selected    bool     `json:"selected"`
	Quantity    int      `json:"quantity,omitempty"`
}

// LineTotal is the option's contribution to the customization total.
func (o CustomizationOption) LineTotal() int64 {
	if !o.Selected {
		return 0
	}
	qty := 1
	if o.Quantity > 0 {
		qty = o.Quantity
	}
	return o.Price * int64(qty)
}
