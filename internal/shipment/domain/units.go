package domain

import "math"

const (
	GramsPerKilogram              = 1000.0
	CubicCentimetersPerCubicMeter = 1_000_000.0
)

// Kilograms converts a stored weight in grams to display kilograms.
func Kilograms(grams float64) float64 {
	return grams / GramsPerKilogram
}

// CubicMeters converts a stored volume in cubic centimeters to display
// cubic meters.
func CubicMeters(cm3 float64) float64 {
	return cm3 / CubicCentimetersPerCubicMeter
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Percent returns part/whole*100 rounded to two decimals, or 0 when whole is 0.
func Percent(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return Round2(part / whole * 100)
}
