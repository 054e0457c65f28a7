package db_models

// SavedSearch is a named PreferenceSet a traveller kept for later.
type SavedSearch struct {
	BaseModel
	OwnerID     string           `gorm:"index;not null"`
	Name        string           `gorm:"not null"`
	Preferences SavedPreferences `gorm:"embedded;embeddedPrefix:pref_"`
}

type SavedPreferences struct {
	HolidayType string
	Budget      string
	Companions  string
	Climate     string
	Interests   string
	Duration    string
	TravelMonth string
}
