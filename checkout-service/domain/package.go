package domain

// Package is a purchasable travel itinerary. It is reference data for a
// checkout session and never changes while the session lives.
type Package struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Destination string `json:"destination"`
	Price       int64  `json:"price"` // per person, whole pesos
	Duration    string `json:"duration"`
	Image       string `json:"image"`
}

const Currency = "PHP"
