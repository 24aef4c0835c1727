package wizard

import (
	"fmt"
	"time"

	d "github.com/fjod/go_travel/checkout-service/domain"
	"github.com/fjod/go_travel/checkout-service/internal/confirmation"
	"github.com/fjod/go_travel/checkout-service/internal/payment"
)

const (
	NoCheckIn          = "Not selected"
	CancellationPolicy = "Free Cancellation: Cancel up to 7 days before your trip for a full refund."
)

var included = []string{"Accommodation", "Daily breakfast", "Airport transfers", "Guided tours"}

// Summary is the read-only recap shown at the Review step.
type Summary struct {
	PackageName        string                  `json:"package_name"`
	Destination        string                  `json:"destination"`
	Duration           string                  `json:"duration"`
	CheckIn            string                  `json:"check_in"`
	Travelers          string                  `json:"travelers"`
	Included           []string                `json:"included"`
	CancellationPolicy string                  `json:"cancellation_policy"`
	AddOns             []d.CustomizationOption `json:"add_ons"`
	Totals             d.Totals                `json:"totals"`
}

func (c *Checkout) Summary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.summary()
}

func (c *Checkout) summary() Summary {
	checkIn := c.checkIn
	if checkIn == "" {
		checkIn = NoCheckIn
	}
	travelers := fmt.Sprintf("%d person", c.travelers)
	if c.travelers != 1 {
		travelers += "s"
	}
	var addOns []d.CustomizationOption
	for _, o := range c.selector.Selected() {
		if o.Price > 0 {
			addOns = append(addOns, o)
		}
	}
	return Summary{
		PackageName:        c.pkg.Name,
		Destination:        c.pkg.Destination,
		Duration:           c.pkg.Duration,
		CheckIn:            checkIn,
		Travelers:          travelers,
		Included:           append([]string(nil), included...),
		CancellationPolicy: CancellationPolicy,
		AddOns:             addOns,
		Totals:             c.totals(),
	}
}

// View is the whole session as a client renders it.
type View struct {
	ID           string                  `json:"id"`
	Step         string                  `json:"step"`
	StepNumber   int                     `json:"step_number"`
	Package      d.Package               `json:"package"`
	Travelers    int                     `json:"travelers"`
	CheckIn      string                  `json:"check_in"`
	Options      []d.CustomizationOption `json:"options"`
	Summary      Summary                 `json:"summary"`
	TravelerData []d.TravelerData        `json:"traveler_data"`
	Payment      payment.FormView        `json:"payment"`
	Reference    string                  `json:"reference,omitempty"`
	Confirmation *confirmation.Handoff   `json:"confirmation,omitempty"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

func (c *Checkout) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return View{
		ID:           c.id,
		Step:         c.step.String(),
		StepNumber:   int(c.step),
		Package:      c.pkg,
		Travelers:    c.travelers,
		CheckIn:      c.checkIn,
		Options:      c.selector.Options(),
		Summary:      c.summary(),
		TravelerData: c.collector.Travelers(),
		Payment:      c.payment.View(),
		Reference:    c.reference,
		Confirmation: c.handoff,
		UpdatedAt:    c.updatedAt,
	}
}
