package core

import (
	"bytes"

	"github.com/cockroachdb/apd/v3"
)

// Decimal is an arbitrary-precision amount as sent by the API, usually a JSON string.
// Empty strings and null decode to zero; the venue uses both for absent amounts.
type Decimal struct {
	apd.Decimal
}

// NewDecimal parses s into a Decimal.
func NewDecimal(s string) (Decimal, error) {
	var d Decimal
	if _, _, err := d.SetString(s); err != nil {
		return Decimal{}, err
	}
	return d, nil
}

// MustDecimal is like NewDecimal but panics on malformed input. Intended for constants and tests.
func MustDecimal(s string) Decimal {
	d, err := NewDecimal(s)
	if err != nil {
		panic(err)
	}
	return d
}

// MarshalJSON renders the decimal as a JSON string.
func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts a quoted or bare number.
func (d *Decimal) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		d.Decimal = apd.Decimal{}
		return nil
	}
	_, _, err := d.Decimal.SetString(string(data))
	return err
}

// String returns the decimal in plain notation.
func (d Decimal) String() string {
	return d.Decimal.Text('f')
}
