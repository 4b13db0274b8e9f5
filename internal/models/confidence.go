package models

// ConfidenceInterval is a score band at a given confidence level. Bounds are
// on the 0-100 score scale.
type ConfidenceInterval struct {
	LowerBound      float64 `json:"lower_bound"`
	UpperBound      float64 `json:"upper_bound"`
	ConfidenceLevel float64 `json:"confidence_level"`
}
