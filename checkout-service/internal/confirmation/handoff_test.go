package confirmation

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReference(t *testing.T) {
	a, b := NewReference(), NewReference()

	assert.True(t, strings.HasPrefix(a, "TRV"))
	assert.Len(t, a, 3+27)
	assert.Equal(t, strings.ToUpper(a), a)
	assert.NotEqual(t, a, b)
}

func TestHandoff_URL(t *testing.T) {
	h := Handoff{Reference: "TRVABC", PackageName: "Boracay Beach Paradise", Total: 29118}

	raw, err := h.URL("/booking-confirmation")
	require.NoError(t, err)
	assert.Equal(t, "/booking-confirmation?package=Boracay+Beach+Paradise&ref=TRVABC&total=29118", raw)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, h, Parse(u.Query()))
}

func TestHandoff_URLKeepsBaseQuery(t *testing.T) {
	h := Handoff{Reference: "TRV1", PackageName: "Coron & Friends", Total: 1}

	raw, err := h.URL("https://travel.example.com/booking-confirmation?lang=en")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "en", u.Query().Get("lang"))
	assert.Equal(t, "Coron & Friends", u.Query().Get("package"))
}

func TestParse_Defaults(t *testing.T) {
	h := Parse(url.Values{})

	assert.True(t, strings.HasPrefix(h.Reference, "TRV"))
	assert.Equal(t, "Travel Package", h.PackageName)
	assert.Equal(t, int64(0), h.Total)
}

func TestParse_Values(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int64
	}{
		{"integer", "total=36818", 36818},
		{"decimal", "total=33038.00", 33038},
		{"garbage", "total=abc", 0},
		{"negative", "total=-5", 0},
		{"infinite", "total=Inf", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query + "&ref=TRVX&package=Palawan%20Island%20Adventure")
			require.NoError(t, err)

			h := Parse(q)
			assert.Equal(t, "TRVX", h.Reference)
			assert.Equal(t, "Palawan Island Adventure", h.PackageName)
			assert.Equal(t, tt.want, h.Total)
		})
	}
}
