package customization

import d "github.com/fjod/go_travel/checkout-service/domain"

// DefaultOptions returns the add-on catalog offered with every package. The
// free option of each exclusive category starts selected.
func DefaultOptions() []d.CustomizationOption {
	return []d.CustomizationOption{
		{ID: "flight-economy", Name: "Economy Class Flight", Description: "Standard economy seating with basic amenities", Category: d.CategoryFlight, Price: 0, Selected: true},
		{ID: "flight-premium", Name: "Premium Economy Flight", Description: "Extra legroom and enhanced meal service", Category: d.CategoryFlight, Price: 3500},
		{ID: "flight-business", Name: "Business Class Flight", Description: "Luxury seating, priority boarding, and lounge access", Category: d.CategoryFlight, Price: 8500},

		{ID: "hotel-standard", Name: "Standard Room", Description: "Comfortable room with essential amenities", Category: d.CategoryAccommodation, Price: 0, Selected: true},
		{ID: "hotel-deluxe", Name: "Deluxe Room", Description: "Spacious room with ocean view", Category: d.CategoryAccommodation, Price: 2500},
		{ID: "hotel-suite", Name: "Executive Suite", Description: "Luxury suite with living area and premium amenities", Category: d.CategoryAccommodation, Price: 5500},

		{ID: "activity-island-hopping", Name: "Island Hopping Tour", Description: "Full day island exploration with lunch included", Category: d.CategoryActivity, Price: 1800},
		{ID: "activity-snorkeling", Name: "Snorkeling Adventure", Description: "Half day snorkeling with equipment and guide", Category: d.CategoryActivity, Price: 1200},
		{ID: "activity-diving", Name: "Scuba Diving Experience", Description: "Beginner-friendly diving session with instructor", Category: d.CategoryActivity, Price: 3500},
		{ID: "activity-sunset-cruise", Name: "Sunset Cruise", Description: "Romantic sunset cruise with dinner", Category: d.CategoryActivity, Price: 2200},

		{ID: "meal-breakfast", Name: "Breakfast Only", Description: "Daily breakfast included", Category: d.CategoryMeal, Price: 0, Selected: true},
		{ID: "meal-half-board", Name: "Half Board", Description: "Daily breakfast and dinner", Category: d.CategoryMeal, Price: 1500},
		{ID: "meal-full-board", Name: "Full Board", Description: "All meals included (breakfast, lunch, dinner)", Category: d.CategoryMeal, Price: 2800},

		{ID: "transfer-shared", Name: "Shared Airport Transfer", Description: "Shared shuttle service", Category: d.CategoryTransfer, Price: 0, Selected: true},
		{ID: "transfer-private", Name: "Private Airport Transfer", Description: "Private car with driver", Category: d.CategoryTransfer, Price: 1500},
	}
}
