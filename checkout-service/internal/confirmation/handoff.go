// Package confirmation builds and reads the redirect that hands a confirmed
// booking to the confirmation page.
package confirmation

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/segmentio/ksuid"
)

const (
	ReferencePrefix    = "TRV"
	DefaultPackageName = "Travel Package"

	maxTotal = 1e15
)

// Handoff is what the confirmation page receives.
type Handoff struct {
	Reference   string `json:"reference"`
	PackageName string `json:"package_name"`
	Total       int64  `json:"total"`
}

// NewReference returns "TRV" followed by a KSUID, upper-cased.
func NewReference() string {
	return ReferencePrefix + strings.ToUpper(ksuid.New().String())
}

// Query encodes the handoff as ref, package and total parameters.
func (h Handoff) Query() url.Values {
	q := url.Values{}
	q.Set("ref", h.Reference)
	q.Set("package", h.PackageName)
	q.Set("total", strconv.FormatInt(h.Total, 10))
	return q
}

// URL appends the handoff query to base, keeping any query base already has.
func (h Handoff) URL(base string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	q := u.Query()
	for k, vs := range h.Query() {
		q[k] = vs
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Parse reads a handoff from query parameters. Missing values get defaults:
// a fresh reference, DefaultPackageName and a zero total.
func Parse(q url.Values) Handoff {
	h := Handoff{
		Reference:   strings.TrimSpace(q.Get("ref")),
		PackageName: strings.TrimSpace(q.Get("package")),
	}
	if h.Reference == "" {
		h.Reference = NewReference()
	}
	if h.PackageName == "" {
		h.PackageName = DefaultPackageName
	}
	if total, err := strconv.ParseFloat(q.Get("total"), 64); err == nil && total >= 0 && total < maxTotal {
		h.Total = int64(total + 0.5)
	}
	return h
}
