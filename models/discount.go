package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Discount is either an absolute amount in the document currency or a percentage.
// On the wire an amount is a JSON number and a percentage is a string such as "15%".
type Discount struct {
	Value     decimal.Decimal
	IsPercent bool
}

func DiscountAmount(v decimal.Decimal) Discount {
	return Discount{Value: v}
}

func DiscountPercent(v decimal.Decimal) Discount {
	return Discount{Value: v, IsPercent: true}
}

func (d Discount) IsZero() bool {
	return d.Value.IsZero()
}

func (d Discount) String() string {
	if d.IsPercent {
		return d.Value.String() + "%"
	}
	return d.Value.String()
}

func (d Discount) MarshalJSON() ([]byte, error) {
	if d.IsPercent {
		return json.Marshal(d.String())
	}
	return []byte(d.Value.String()), nil
}

func (d *Discount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*d = Discount{}
		return nil
	}
	if len(b) == 0 || b[0] != '"' {
		v, err := decimal.NewFromString(string(b))
		if err != nil {
			return fmt.Errorf("invalid discount %s: %w", b, err)
		}
		*d = DiscountAmount(v)
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		*d = Discount{}
		return nil
	}
	percent := strings.HasSuffix(s, "%")
	v, err := decimal.NewFromString(strings.TrimSpace(strings.TrimSuffix(s, "%")))
	if err != nil {
		return fmt.Errorf("invalid discount %q: %w", s, err)
	}
	*d = Discount{Value: v, IsPercent: percent}
	return nil
}

// BlankableDecimal is a number the API reports as "" when it is not set.
type BlankableDecimal struct {
	Decimal decimal.Decimal
	Valid   bool
}

func NewBlankableDecimal(v decimal.Decimal) BlankableDecimal {
	return BlankableDecimal{Decimal: v, Valid: true}
}

func (d BlankableDecimal) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte(`""`), nil
	}
	return []byte(d.Decimal.String()), nil
}

func (d *BlankableDecimal) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) || bytes.Equal(b, []byte(`""`)) {
		*d = BlankableDecimal{}
		return nil
	}
	var v decimal.Decimal
	if err := v.UnmarshalJSON(b); err != nil {
		return err
	}
	*d = NewBlankableDecimal(v)
	return nil
}
