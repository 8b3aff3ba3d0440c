package services

import (
	"strings"

	apperrors "github.com/vladimiradmaev/fittrack/internal/errors"
)

const (
	kgPerPound = 0.453592
	cmPerInch  = 2.54
)

func KgFromPounds(lb float64) float64 {
	return lb * kgPerPound
}

func CmFromInches(in float64) float64 {
	return in * cmPerInch
}

// NormalizeBodyMetrics converts weight and height to kilograms and centimeters.
// Empty units default to metric.
func NormalizeBodyMetrics(weight float64, weightUnit string, height float64, heightUnit string) (kg, cm float64, err error) {
	switch strings.ToLower(strings.TrimSpace(weightUnit)) {
	case "", "kg":
		kg = weight
	case "lb", "lbs":
		kg = KgFromPounds(weight)
	default:
		return 0, 0, apperrors.NewValidationError("unknown weight unit %q", weightUnit)
	}

	switch strings.ToLower(strings.TrimSpace(heightUnit)) {
	case "", "cm":
		cm = height
	case "in":
		cm = CmFromInches(height)
	default:
		return 0, 0, apperrors.NewValidationError("unknown height unit %q", heightUnit)
	}

	return kg, cm, nil
}
