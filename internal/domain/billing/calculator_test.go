package billing

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputeMonthlyWithUtilities(t *testing.T) {
	rates := Rates{Water: dec("18"), Electric: dec("7")}
	readings := Readings{
		WaterUnits:    AmountFromFloat(10),
		ElectricUnits: AmountFromFloat(50),
		OtherCharges:  Amount{},
	}

	lines := Compute("monthly", dec("4500"), dec("12000"), rates, readings, true)

	if !lines.RoomPrice.Equal(dec("4500")) {
		t.Fatalf("room price = %s, want 4500", lines.RoomPrice)
	}
	if !lines.WaterTotal.Equal(dec("180")) {
		t.Fatalf("water total = %s, want 180", lines.WaterTotal)
	}
	if !lines.ElectricTotal.Equal(dec("350")) {
		t.Fatalf("electric total = %s, want 350", lines.ElectricTotal)
	}
	if lines.Total.StringFixed(2) != "5030.00" {
		t.Fatalf("total = %s, want 5030.00", lines.Total.StringFixed(2))
	}
}

func TestComputeTermCycleUsesTermPrice(t *testing.T) {
	lines := Compute("term", dec("4500"), dec("12000"), Rates{}, Readings{}, true)
	if !lines.RoomPrice.Equal(dec("12000")) {
		t.Fatalf("room price = %s, want 12000", lines.RoomPrice)
	}
	if lines.Total.StringFixed(2) != "12000.00" {
		t.Fatalf("total = %s, want 12000.00", lines.Total.StringFixed(2))
	}
}

func TestComputeWithoutRoomPrice(t *testing.T) {
	rates := Rates{Water: dec("18"), Electric: dec("7")}
	readings := Readings{
		WaterUnits:    AmountFromFloat(2),
		ElectricUnits: AmountFromFloat(3),
		OtherCharges:  AmountFromFloat(15),
	}

	lines := Compute("monthly", dec("4500"), dec("12000"), rates, readings, false)

	if !lines.RoomPrice.IsZero() {
		t.Fatalf("room price = %s, want 0", lines.RoomPrice)
	}
	if lines.Total.StringFixed(2) != "72.00" {
		t.Fatalf("total = %s, want 72.00", lines.Total.StringFixed(2))
	}
}

func TestComputeRoundsTotalToTwoDecimals(t *testing.T) {
	rates := Rates{Water: dec("18.555"), Electric: dec("0")}
	readings := Readings{WaterUnits: AmountFromFloat(1)}

	lines := Compute("monthly", decimal.Decimal{}, decimal.Decimal{}, rates, readings, false)

	if lines.Total.StringFixed(2) != "18.56" {
		t.Fatalf("total = %s, want 18.56", lines.Total.StringFixed(2))
	}
	// The unrounded line survives for display breakdown.
	if !lines.WaterTotal.Equal(dec("18.555")) {
		t.Fatalf("water total = %s, want 18.555", lines.WaterTotal)
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	rates := Rates{Water: dec("18"), Electric: dec("7")}
	readings := Readings{
		WaterUnits:    AmountFromFloat(10),
		ElectricUnits: AmountFromFloat(50),
	}

	first := Compute("monthly", dec("4500"), dec("12000"), rates, readings, true)
	second := Compute("monthly", dec("4500"), dec("12000"), rates, readings, true)

	if !first.Total.Equal(second.Total) {
		t.Fatalf("totals differ: %s vs %s", first.Total, second.Total)
	}
}

func TestAmountUnmarshalLeniency(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"number", `12.5`, "12.5"},
		{"numeric string", `"12.5"`, "12.5"},
		{"integer string", `"7"`, "7"},
		{"empty string", `""`, "0"},
		{"junk string", `"abc"`, "0"},
		{"null", `null`, "0"},
		{"negative number", `-3`, "0"},
		{"negative string", `"-3"`, "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var a Amount
			if err := json.Unmarshal([]byte(tc.in), &a); err != nil {
				t.Fatalf("unmarshal returned error: %v", err)
			}
			if a.Decimal().String() != tc.want {
				t.Fatalf("value = %s, want %s", a.Decimal(), tc.want)
			}
		})
	}
}

func TestReadingsUnmarshalMixedFields(t *testing.T) {
	var r Readings
	body := `{"water_units": "10", "electric_units": 50, "other_charges": "oops"}`
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		t.Fatalf("unmarshal returned error: %v", err)
	}
	if r.WaterUnits.Decimal().String() != "10" {
		t.Fatalf("water = %s, want 10", r.WaterUnits.Decimal())
	}
	if r.ElectricUnits.Decimal().String() != "50" {
		t.Fatalf("electric = %s, want 50", r.ElectricUnits.Decimal())
	}
	if !r.OtherCharges.Decimal().IsZero() {
		t.Fatalf("other = %s, want 0", r.OtherCharges.Decimal())
	}
}
