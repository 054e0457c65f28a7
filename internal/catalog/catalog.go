// Package catalog serves the option lists the preference form is built from.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"wanderwise/internal/models/request_models"
)

//go:embed options.yaml
var defaultOptions []byte

type Option struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

type Catalog struct {
	HolidayTypes     []Option                     `yaml:"holidayTypes" json:"holidayTypes"`
	Budgets          []Option                     `yaml:"budgets" json:"budgets"`
	Companions       []Option                     `yaml:"companions" json:"companions"`
	Climates         []Option                     `yaml:"climates" json:"climates"`
	Durations        []Option                     `yaml:"durations" json:"durations"`
	Months           []Option                     `yaml:"months" json:"months"`
	Defaults         request_models.PreferenceSet `yaml:"defaults" json:"defaults"`
	SurpriseSentinel string                       `yaml:"-" json:"surpriseSentinel"`
}

// Load parses the built-in options.
func Load() (*Catalog, error) {
	return Parse(defaultOptions)
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse options yaml: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	c.SurpriseSentinel = request_models.SurpriseSentinel
	return &c, nil
}

func (c *Catalog) validate() error {
	lists := map[string][]Option{
		"holidayTypes": c.HolidayTypes,
		"budgets":      c.Budgets,
		"companions":   c.Companions,
		"climates":     c.Climates,
		"durations":    c.Durations,
	}
	for name, opts := range lists {
		if len(opts) == 0 {
			return fmt.Errorf("options yaml: %s is empty", name)
		}
		for _, o := range opts {
			if o.Value == request_models.SurpriseSentinel {
				return fmt.Errorf("options yaml: %s uses the reserved value %q", name, o.Value)
			}
		}
	}
	if !contains(c.Budgets, c.Defaults.Budget) {
		return fmt.Errorf("options yaml: default budget %q is not an option", c.Defaults.Budget)
	}
	if !contains(c.Companions, c.Defaults.Companions) {
		return fmt.Errorf("options yaml: default companions %q is not an option", c.Defaults.Companions)
	}
	return nil
}

func contains(opts []Option, value string) bool {
	for _, o := range opts {
		if o.Value == value {
			return true
		}
	}
	return false
}
