package billing

import "github.com/shopspring/decimal"

// Lines is the computed breakdown of one bill. Total is rounded half away
// from zero to two decimals and is the single persisted source of truth;
// display layers must reuse it, never recompute.
type Lines struct {
	RoomPrice     decimal.Decimal
	WaterUnits    decimal.Decimal
	WaterTotal    decimal.Decimal
	ElectricUnits decimal.Decimal
	ElectricTotal decimal.Decimal
	OtherTotal    decimal.Decimal
	Total         decimal.Decimal
}

// Compute derives a bill's line items from the booking's cycle, the room's
// price baselines, the resolved utility rates, and the raw readings. Pure:
// identical inputs always produce identical output.
func Compute(cycle string, priceMonthly, priceTerm decimal.Decimal, rates Rates, readings Readings, includeRoomPrice bool) Lines {
	roomPrice := decimal.Decimal{}
	if includeRoomPrice {
		if cycle == "term" {
			roomPrice = priceTerm
		} else {
			roomPrice = priceMonthly
		}
	}

	water := readings.WaterUnits.Decimal()
	electric := readings.ElectricUnits.Decimal()
	other := readings.OtherCharges.Decimal()

	waterTotal := water.Mul(rates.Water)
	electricTotal := electric.Mul(rates.Electric)

	total := roomPrice.Add(waterTotal).Add(electricTotal).Add(other).Round(2)

	return Lines{
		RoomPrice:     roomPrice,
		WaterUnits:    water,
		WaterTotal:    waterTotal,
		ElectricUnits: electric,
		ElectricTotal: electricTotal,
		OtherTotal:    other,
		Total:         total,
	}
}
