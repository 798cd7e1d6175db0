package services

import (
	"math"

	"hortifruti-backend/models"
	"hortifruti-backend/utils"
)

// NormalizeLine derives the billable quantity and line total for one order
// line. Box and bunch lines bill whole units: fractional quantities are
// truncated toward zero. Kg lines bill the raw fractional quantity. Negative
// quantities clamp to 0 for every unit; stored quantities are never below
// zero. The unit price is taken verbatim from the caller (a per-order
// snapshot), never re-read from the product.
func NormalizeLine(unit models.Unit, rawQty, unitPrice float64) (qty, lineTotal float64, err error) {
	switch unit {
	case models.UnitBox, models.UnitBunch:
		qty = math.Floor(rawQty)
	case models.UnitKg:
		qty = rawQty
	default:
		return 0, 0, &ValidationError{Field: "unit", Message: "unit must be one of box, kg, bunch"}
	}
	if qty < 0 {
		qty = 0
	}
	return qty, utils.Round2(qty * unitPrice), nil
}
