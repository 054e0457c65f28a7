package request_models

import "strings"

// SurpriseSentinel on HolidayType relaxes every preference except budget and companions.
const SurpriseSentinel = "SURPRISE_ME"

// PreferenceSet is what the traveller filled in on the form.
type PreferenceSet struct {
	HolidayType string `json:"holidayType" yaml:"holidayType"`
	Budget      string `json:"budget" yaml:"budget" binding:"required"`
	Companions  string `json:"companions" yaml:"companions" binding:"required"`
	Climate     string `json:"climate" yaml:"climate"`
	Interests   string `json:"interests" yaml:"interests"`
	Duration    string `json:"duration" yaml:"duration"`
	TravelMonth string `json:"travelMonth,omitempty" yaml:"travelMonth,omitempty"`
}

func (p PreferenceSet) IsSurprise() bool {
	return strings.TrimSpace(p.HolidayType) == SurpriseSentinel
}

// Normalized returns a copy with surrounding whitespace removed from every field.
func (p PreferenceSet) Normalized() PreferenceSet {
	return PreferenceSet{
		HolidayType: strings.TrimSpace(p.HolidayType),
		Budget:      strings.TrimSpace(p.Budget),
		Companions:  strings.TrimSpace(p.Companions),
		Climate:     strings.TrimSpace(p.Climate),
		Interests:   strings.TrimSpace(p.Interests),
		Duration:    strings.TrimSpace(p.Duration),
		TravelMonth: strings.TrimSpace(p.TravelMonth),
	}
}
