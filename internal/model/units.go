package model

// FeetPerMeter converts metric entry values to the internal imperial unit.
const FeetPerMeter = 3.28084

// MetersToFeet converts meters to feet.
func MetersToFeet(m float64) float64 {
	return m * FeetPerMeter
}

// FeetToMeters converts feet to meters.
func FeetToMeters(ft float64) float64 {
	return ft / FeetPerMeter
}

// SquareFeetToSquareMeters converts areas for metric hints in the UI.
func SquareFeetToSquareMeters(sqft float64) float64 {
	return sqft / (FeetPerMeter * FeetPerMeter)
}
