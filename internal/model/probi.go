package model

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// probiScale is the decimal exponent between probi and whole BAT
// (10^18 probi = 1 BAT).
const probiScale int32 = 18

// Probi is an amount in the smallest unit of BAT. Upstream exports
// encode it as either a JSON string or a bare number, so it carries a
// custom unmarshaler.
type Probi string

// UnmarshalJSON accepts both "123" and 123.
func (p *Probi) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Probi(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*p = Probi(n.String())
	return nil
}

// MarshalJSON always emits the string form.
func (p Probi) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(p))
}

// BAT converts the probi amount to whole BAT with exact decimal
// arithmetic: probi / 1e18, no rounding.
func (p Probi) BAT() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(string(p))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parsing probi %q: %w", string(p), err)
	}
	return d.Shift(-probiScale), nil
}
