package models

import (
	"fmt"
	"strings"
)

// RiskCategory tags a risk factor with the area of the decision it threatens.
type RiskCategory string

const (
	RiskTechnical   RiskCategory = "Technical"
	RiskMarket      RiskCategory = "Market"
	RiskFinancial   RiskCategory = "Financial"
	RiskOperational RiskCategory = "Operational"
	RiskStrategic   RiskCategory = "Strategic"
	RiskExternal    RiskCategory = "External"
)

// RiskCategories lists every category in declaration order.
var RiskCategories = []RiskCategory{
	RiskTechnical,
	RiskMarket,
	RiskFinancial,
	RiskOperational,
	RiskStrategic,
	RiskExternal,
}

func (c RiskCategory) String() string {
	return string(c)
}

// Valid reports whether c is one of the known categories.
func (c RiskCategory) Valid() bool {
	switch c {
	case RiskTechnical, RiskMarket, RiskFinancial, RiskOperational, RiskStrategic, RiskExternal:
		return true
	default:
		return false
	}
}

// ParseRiskCategory converts a case-insensitive name to a RiskCategory.
func ParseRiskCategory(s string) (RiskCategory, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "technical":
		return RiskTechnical, nil
	case "market":
		return RiskMarket, nil
	case "financial":
		return RiskFinancial, nil
	case "operational":
		return RiskOperational, nil
	case "strategic":
		return RiskStrategic, nil
	case "external":
		return RiskExternal, nil
	default:
		return "", fmt.Errorf("invalid risk category %q: must be one of Technical, Market, Financial, Operational, Strategic, External", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c RiskCategory) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid risk category %q", string(c))
	}
	return []byte(c), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Used by encoding/json
// and gopkg.in/yaml.v3 alike.
func (c *RiskCategory) UnmarshalText(text []byte) error {
	parsed, err := ParseRiskCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// RiskFactor is one stochastic risk that may materialize and deduct points
// from a decision's score.
type RiskFactor struct {
	Name        string       `json:"name" yaml:"name" mapstructure:"name"`
	Probability float64      `json:"probability" yaml:"probability" mapstructure:"probability"`
	ImpactLow   float64      `json:"impact_low" yaml:"impact_low" mapstructure:"impact_low"`
	ImpactHigh  float64      `json:"impact_high" yaml:"impact_high" mapstructure:"impact_high"`
	Category    RiskCategory `json:"category" yaml:"category" mapstructure:"category"`
}
