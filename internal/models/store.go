package models

import "time"

// Store is one physical retail location. APIID is the external identifier
// spreadsheet imports match rows against; it never changes once assigned.
type Store struct {
	ID        int64
	Name      string `validate:"required,min=2,max=255"`
	BrandID   int64  `validate:"required"`
	BrandName string
	Industry  string `validate:"omitempty,min=2,max=255"`
	Status    StoreStatus
	APIID     string `validate:"required,max=50"`

	FacebookVerified bool
	FacebookID       string `validate:"max=25"`
	FacebookPageName string `validate:"max=255"`
	FacebookURL      string `validate:"max=1000"`

	GoogleVerified   bool
	GooglePlaceID    string `validate:"max=50"`
	GoogleLocationID string `validate:"max=25"`
	GoogleMapsURL    string `validate:"max=1000"`

	TripAdvisorVerified          bool
	TripAdvisorID                string `validate:"max=25"`
	TripAdvisorPartnerPropertyID string `validate:"max=25"`
	TripAdvisorURL               string `validate:"max=1000"`

	ZomatoVerified bool
	ZomatoID       string `validate:"max=25"`
	ZomatoURL      string `validate:"max=1000"`

	InstagramVerified bool
	InstagramID       string `validate:"max=25"`
	InstagramURL      string `validate:"max=1000"`

	Latitude  *float64
	Longitude *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}
