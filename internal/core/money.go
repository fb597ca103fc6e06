// Package core holds the entities mirrored from the fund API and the
// client-side rules applied to them before anything goes over the wire.
//
// This file contains amount parsing and display formatting. The backend is
// loose about number encoding (amounts arrive as JSON numbers or quoted
// strings depending on the endpoint), so Money decodes both.
package core

import (
	"bytes"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a decimal amount as reported by the fund API. Balance arithmetic
// stays server-side; the client only parses, compares and formats.
type Money struct {
	decimal.Decimal
}

var ErrMalformedAmount = errors.New("malformed amount")

// ParseMoney parses a user-entered amount. Empty input and junk both fail;
// sign and magnitude checks belong to the form's Validate.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return Money{}, ErrMalformedAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrMalformedAmount
	}
	return Money{d}, nil
}

// Positive reports whether the amount is strictly greater than zero.
func (m Money) Positive() bool {
	return m.Decimal.IsPositive()
}

// Format renders the amount with thousands separators and two decimals,
// e.g. 1234567.5 -> "1,234,567.50". Matches the dashboard's en-US display.
func (m Money) Format() string {
	s := m.Decimal.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// FormatWithCurrency prefixes the formatted amount with a currency code.
func (m Money) FormatWithCurrency(code string) string {
	if code == "" {
		return m.Format()
	}
	return code + " " + m.Format()
}

// String returns the plain fixed-point form sent back to the API.
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.Decimal.StringFixed(2) + `"`), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		m.Decimal = decimal.Zero
		return nil
	}
	s := string(bytes.Trim(data, `"`))
	if s == "" {
		m.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return ErrMalformedAmount
	}
	m.Decimal = d
	return nil
}
