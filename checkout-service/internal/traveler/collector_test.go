package traveler

import (
	"testing"

	d "github.com/fjod/go_travel/checkout-service/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fillTraveler(t *testing.T, c *Collector, index int) {
	t.Helper()
	require.NoError(t, c.UpdateFields(index, map[string]string{
		"firstName":      "Maria",
		"lastName":       "Santos",
		"email":          "maria@example.com",
		"phone":          "+63 917 123 4567",
		"nationality":    "Filipino",
		"dateOfBirth":    "1990-04-12",
		"passportNumber": "P1234567A",
		"passportExpiry": "2031-01-01",
	}))
}

func TestNewCollector_CreatesEmptyRecords(t *testing.T) {
	c := NewCollector(3)

	assert.Equal(t, 3, c.Len())
	for _, tr := range c.Travelers() {
		assert.Equal(t, d.TravelerData{}, tr)
	}
}

func TestUpdateField(t *testing.T) {
	c := NewCollector(2)

	require.NoError(t, c.UpdateField(1, "passportNumber", "X99"))
	assert.Equal(t, "X99", c.Travelers()[1].PassportNumber)
	assert.Empty(t, c.Travelers()[0].PassportNumber)
}

func TestUpdateField_Errors(t *testing.T) {
	c := NewCollector(1)

	assert.ErrorIs(t, c.UpdateField(1, "firstName", "A"), ErrIndexOutRange)
	assert.ErrorIs(t, c.UpdateField(-1, "firstName", "A"), ErrIndexOutRange)
	assert.ErrorIs(t, c.UpdateField(0, "shoeSize", "42"), ErrUnknownField)
}

func TestUpdateFields_RejectsUnknownBeforeAssigning(t *testing.T) {
	c := NewCollector(1)

	err := c.UpdateFields(0, map[string]string{"firstName": "A", "bogus": "B"})
	assert.ErrorIs(t, err, ErrUnknownField)
	assert.Empty(t, c.Travelers()[0].FirstName)
}

func TestSubmit_AllComplete(t *testing.T) {
	c := NewCollector(2)
	fillTraveler(t, c, 0)
	fillTraveler(t, c, 1)

	travelers, err := c.Submit()
	require.NoError(t, err)
	assert.Len(t, travelers, 2)
}

func TestSubmit_OneIncompleteRejectsAll(t *testing.T) {
	c := NewCollector(2)
	fillTraveler(t, c, 0)
	require.NoError(t, c.UpdateField(1, "firstName", "Jose"))

	travelers, err := c.Submit()
	assert.Nil(t, travelers)
	require.ErrorIs(t, err, d.ErrValidation)

	var verr *d.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "travelers", verr.Scope)
	assert.Len(t, verr.Problems, 7)
	assert.Contains(t, verr.Problems, "traveler 2: lastName is required")
	assert.Contains(t, verr.Problems, "traveler 2: passportExpiry is required")
}

func TestSubmit_SpecialRequestsOptional(t *testing.T) {
	c := NewCollector(1)
	fillTraveler(t, c, 0)

	_, err := c.Submit()
	require.NoError(t, err)

	require.NoError(t, c.UpdateField(0, "specialRequests", "window seat"))
	travelers, err := c.Submit()
	require.NoError(t, err)
	assert.Equal(t, "window seat", travelers[0].SpecialRequests)
}

func TestRestore_CopiesInput(t *testing.T) {
	in := []d.TravelerData{{FirstName: "Ana"}}
	c := Restore(in)
	in[0].FirstName = "changed"

	assert.Equal(t, "Ana", c.Travelers()[0].FirstName)
}
