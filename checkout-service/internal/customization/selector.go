// Package customization implements the add-on selector of the checkout
// wizard: radio semantics for exclusive categories, counters for activities.
package customization

import (
	"fmt"

	d "github.com/fjod/go_travel/checkout-service/domain"
	"github.com/fjod/go_travel/checkout-service/internal/pricing"
)

// UpdateFunc receives a copy of all options and the recomputed total after
// every successful mutation.
type UpdateFunc func(options []d.CustomizationOption, total int64)

type Selector struct {
	options  []d.CustomizationOption
	onUpdate UpdateFunc
}

// NewSelector copies options and repairs any state the invariants forbid:
// quantities are clamped, activity selection follows quantity and only the
// first selected option of an exclusive category survives.
func NewSelector(options []d.CustomizationOption, onUpdate UpdateFunc) *Selector {
	s := &Selector{
		options:  make([]d.CustomizationOption, len(options)),
		onUpdate: onUpdate,
	}
	copy(s.options, options)

	seen := make(map[d.Category]bool)
	for i := range s.options {
		o := &s.options[i]
		if !o.Category.Exclusive() {
			o.Quantity = clamp(int64(o.Quantity))
			o.Selected = o.Quantity > 0
			continue
		}
		o.Quantity = 0
		if o.Selected {
			if seen[o.Category] {
				o.Selected = false
			}
			seen[o.Category] = true
		}
	}
	return s
}

// OnUpdate replaces the update callback.
func (s *Selector) OnUpdate(fn UpdateFunc) {
	s.onUpdate = fn
}

// Toggle selects an exclusive option, deselecting its siblings, or flips an
// activity on (quantity 1) or off (quantity 0). The category is taken from
// the catalog entry.
func (s *Selector) Toggle(optionID string) error {
	idx := s.indexOf(optionID)
	if idx < 0 {
		return fmt.Errorf("toggle %q: %w", optionID, ErrUnknownOption)
	}

	target := &s.options[idx]
	if target.Category.Exclusive() {
		for i := range s.options {
			if s.options[i].Category == target.Category {
				s.options[i].Selected = s.options[i].ID == optionID
			}
		}
	} else {
		target.Selected = !target.Selected
		if target.Selected {
			target.Quantity = 1
		} else {
			target.Quantity = 0
		}
	}

	s.emit()
	return nil
}

// ChangeQuantity adds delta to an activity's quantity, clamped to
// [0, MaxOptionQuantity].
func (s *Selector) ChangeQuantity(optionID string, delta int) error {
	idx := s.indexOf(optionID)
	if idx < 0 {
		return fmt.Errorf("change quantity %q: %w", optionID, ErrUnknownOption)
	}

	o := &s.options[idx]
	if o.Category.Exclusive() {
		return fmt.Errorf("change quantity %q: %w", optionID, ErrNotQuantifiable)
	}

	delta = max(-d.MaxOptionQuantity, min(delta, d.MaxOptionQuantity))
	o.Quantity = clamp(int64(o.Quantity) + int64(delta))
	o.Selected = o.Quantity > 0

	s.emit()
	return nil
}

// Options returns a copy of the current options.
func (s *Selector) Options() []d.CustomizationOption {
	out := make([]d.CustomizationOption, len(s.options))
	copy(out, s.options)
	return out
}

// Selected returns the options that contribute to the total.
func (s *Selector) Selected() []d.CustomizationOption {
	var out []d.CustomizationOption
	for _, o := range s.options {
		if o.Selected {
			out = append(out, o)
		}
	}
	return out
}

func (s *Selector) Total() int64 {
	return pricing.CustomizationTotal(s.options)
}

func (s *Selector) Option(optionID string) (d.CustomizationOption, bool) {
	idx := s.indexOf(optionID)
	if idx < 0 {
		return d.CustomizationOption{}, false
	}
	return s.options[idx], true
}

func (s *Selector) emit() {
	if s.onUpdate != nil {
		s.onUpdate(s.Options(), s.Total())
	}
}

func (s *Selector) indexOf(optionID string) int {
	for i := range s.options {
		if s.options[i].ID == optionID {
			return i
		}
	}
	return -1
}

func clamp(q int64) int {
	if q < 0 {
		return 0
	}
	if q > d.MaxOptionQuantity {
		return d.MaxOptionQuantity
	}
	return int(q)
}
