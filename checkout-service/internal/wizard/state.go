package wizard

import (
	"encoding/json"
	"fmt"
	"time"

	d "github.com/fjod/go_travel/checkout-service/domain"
	"github.com/fjod/go_travel/checkout-service/internal/confirmation"
	"github.com/fjod/go_travel/checkout-service/internal/payment"
	"github.com/fjod/go_travel/checkout-service/internal/traveler"
)

// state is the persisted form of a Checkout. Card security codes are never
// part of it.
type state struct {
	ID                 string                  `json:"id"`
	Package            d.Package               `json:"package"`
	Travelers          int                     `json:"travelers"`
	CheckIn            string                  `json:"check_in"`
	Step               d.Step                  `json:"step"`
	CustomizationTotal int64                   `json:"customization_total"`
	Options            []d.CustomizationOption `json:"options"`
	TravelerData       []d.TravelerData        `json:"traveler_data"`
	Payment            *payment.Form           `json:"payment"`
	Reference          string                  `json:"reference,omitempty"`
	Handoff            *confirmation.Handoff   `json:"handoff,omitempty"`
	Receipt            *payment.Receipt        `json:"receipt,omitempty"`
	CreatedAt          time.Time               `json:"created_at"`
	UpdatedAt          time.Time               `json:"updated_at"`
}

func (c *Checkout) MarshalJSON() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return json.Marshal(state{
		ID:                 c.id,
		Package:            c.pkg,
		Travelers:          c.travelers,
		CheckIn:            c.checkIn,
		Step:               c.step,
		CustomizationTotal: c.customizationTotal,
		Options:            c.selector.Options(),
		TravelerData:       c.collector.Travelers(),
		Payment:            c.payment,
		Reference:          c.reference,
		Handoff:            c.handoff,
		Receipt:            c.receipt,
		CreatedAt:          c.createdAt,
		UpdatedAt:          c.updatedAt,
	})
}

func (c *Checkout) UnmarshalJSON(data []byte) error {
	st := state{Payment: payment.NewForm()}
	if err := json.Unmarshal(data, &st); err != nil {
		return err
	}
	if !st.Step.Valid() {
		return fmt.Errorf("restore checkout %s: invalid step %d", st.ID, st.Step)
	}
	if len(st.TravelerData) != st.Travelers {
		return fmt.Errorf("restore checkout %s: %d traveler records for %d travelers",
			st.ID, len(st.TravelerData), st.Travelers)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.id = st.ID
	c.pkg = st.Package
	c.travelers = st.Travelers
	c.checkIn = st.CheckIn
	c.step = st.Step
	c.reference = st.Reference
	c.handoff = st.Handoff
	c.receipt = st.Receipt
	c.createdAt = st.CreatedAt
	c.updatedAt = st.UpdatedAt
	c.collector = traveler.Restore(st.TravelerData)
	c.payment = st.Payment
	if c.payment == nil {
		c.payment = payment.NewForm()
	}
	c.bindSelector(st.Options)
	return nil
}

// Restore decodes a checkout persisted with json.Marshal.
func Restore(data []byte) (*Checkout, error) {
	c := &Checkout{}
	if err := json.Unmarshal(data, c); err != nil {
		return nil, err
	}
	return c, nil
}
