package billing

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a leniently parsed, non-negative money/unit value. JSON numbers
// and numeric strings are accepted; anything malformed, missing, or negative
// becomes zero rather than failing the request, so partial bill entry never
// blocks on a typo.
type Amount struct {
	value decimal.Decimal
}

func NewAmount(v decimal.Decimal) Amount {
	if v.IsNegative() {
		return Amount{}
	}
	return Amount{value: v}
}

func AmountFromFloat(v float64) Amount {
	return NewAmount(decimal.NewFromFloat(v))
}

func (a Amount) Decimal() decimal.Decimal {
	return a.value
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "" || raw == "null" {
		a.value = decimal.Decimal{}
		return nil
	}
	if len(raw) >= 2 && raw[0] == '"' {
		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			a.value = decimal.Decimal{}
			return nil
		}
		raw = strings.TrimSpace(unquoted)
	}

	parsed, err := decimal.NewFromString(raw)
	if err != nil || parsed.IsNegative() {
		a.value = decimal.Decimal{}
		return nil
	}
	a.value = parsed
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.value.String()), nil
}

// Readings are the raw meter and extra-charge inputs of one bill.
type Readings struct {
	WaterUnits    Amount `json:"water_units"`
	ElectricUnits Amount `json:"electric_units"`
	OtherCharges  Amount `json:"other_charges"`
}
