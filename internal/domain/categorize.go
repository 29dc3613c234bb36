package domain

import "math"

// Category is the discrete risk label for a clamped percentage.
type Category string

const (
	CategoryLow      Category = "LOW"
	CategoryModerate Category = "MODERATE"
	CategoryHigh     Category = "HIGH"
	CategoryExtreme  Category = "EXTREME"
)

// Categorize maps a clamped percentage to its band. Bands are contiguous and
// closed-below open-above: exactly 25.0 is MODERATE, 24.999 is LOW. A value
// outside [0,100] is a caller bug (the facade clamps before calling) and
// returns a ContractViolationError rather than a masked default.
func Categorize(thresholds CategoryThresholds, percentage float64) (Category, error) {
	if math.IsNaN(percentage) || percentage < 0 || percentage > 100 {
		return "", &ContractViolationError{Value: percentage}
	}

	switch {
	case percentage < thresholds.Moderate:
		return CategoryLow, nil
	case percentage < thresholds.High:
		return CategoryModerate, nil
	case percentage < thresholds.Extreme:
		return CategoryHigh, nil
	default:
		return CategoryExtreme, nil
	}
}
