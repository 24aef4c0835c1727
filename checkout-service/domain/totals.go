package domain

// Totals is the derived price breakdown of a booking. It is computed on
// demand and never stored.
type Totals struct {
	PricePerPerson     int64 `json:"price_per_person"`
	Travelers          int   `json:"travelers"`
	BasePrice          int64 `json:"base_price"`
	CustomizationTotal int64 `json:"customization_total"`
	Subtotal           int64 `json:"subtotal"`
	Tax                int64 `json:"tax"`
	Total              int64 `json:"total"`
}
