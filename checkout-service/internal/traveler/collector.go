// Package traveler collects per-traveler identity and passport details and
// gates the wizard on their completeness.
package traveler

import (
	"errors"
	"fmt"

	d "github.com/fjod/go_travel/checkout-service/domain"
)

var (
	ErrUnknownField  = errors.New("unknown traveler field")
	ErrIndexOutRange = errors.New("traveler index out of range")
)

// Field setters keyed by the json names clients send.
var setters = map[string]func(*d.TravelerData, string){
	"firstName":       func(t *d.TravelerData, v string) { t.FirstName = v },
	"lastName":        func(t *d.TravelerData, v string) { t.LastName = v },
	"email":           func(t *d.TravelerData, v string) { t.Email = v },
	"phone":           func(t *d.TravelerData, v string) { t.Phone = v },
	"nationality":     func(t *d.TravelerData, v string) { t.Nationality = v },
	"dateOfBirth":     func(t *d.TravelerData, v string) { t.DateOfBirth = v },
	"passportNumber":  func(t *d.TravelerData, v string) { t.PassportNumber = v },
	"passportExpiry":  func(t *d.TravelerData, v string) { t.PassportExpiry = v },
	"specialRequests": func(t *d.TravelerData, v string) { t.SpecialRequests = v },
}

type Collector struct {
	travelers []d.TravelerData
}

// NewCollector creates n empty traveler records.
func NewCollector(n int) *Collector {
	if n < 0 {
		n = 0
	}
	return &Collector{travelers: make([]d.TravelerData, n)}
}

// Restore rebuilds a collector from previously entered records.
func Restore(travelers []d.TravelerData) *Collector {
	c := &Collector{travelers: make([]d.TravelerData, len(travelers))}
	copy(c.travelers, travelers)
	return c
}

func (c *Collector) Len() int {
	return len(c.travelers)
}

// UpdateField assigns value to one field of traveler index. No validation
// happens while typing.
func (c *Collector) UpdateField(index int, field, value string) error {
	if index < 0 || index >= len(c.travelers) {
		return fmt.Errorf("traveler %d: %w", index+1, ErrIndexOutRange)
	}
	set, ok := setters[field]
	if !ok {
		return fmt.Errorf("%q: %w", field, ErrUnknownField)
	}
	set(&c.travelers[index], value)
	return nil
}

// UpdateFields applies several fields to one traveler. Unknown fields are
// rejected before anything is assigned.
func (c *Collector) UpdateFields(index int, fields map[string]string) error {
	if index < 0 || index >= len(c.travelers) {
		return fmt.Errorf("traveler %d: %w", index+1, ErrIndexOutRange)
	}
	for field := range fields {
		if _, ok := setters[field]; !ok {
			return fmt.Errorf("%q: %w", field, ErrUnknownField)
		}
	}
	for field, value := range fields {
		setters[field](&c.travelers[index], value)
	}
	return nil
}

// Travelers returns a copy of all records.
func (c *Collector) Travelers() []d.TravelerData {
	out := make([]d.TravelerData, len(c.travelers))
	copy(out, c.travelers)
	return out
}

// Submit accepts the travelers only if every record has all required
// fields. The returned *d.ValidationError names every gap.
func (c *Collector) Submit() ([]d.TravelerData, error) {
	var problems []string
	for i, t := range c.travelers {
		for _, p := range d.FieldProblems(t) {
			problems = append(problems, fmt.Sprintf("traveler %d: %s", i+1, p))
		}
	}
	if len(problems) > 0 {
		return nil, &d.ValidationError{Scope: "travelers", Problems: problems}
	}
	return c.Travelers(), nil
}
