package mapping

import (
	"context"

	"github.com/retailops/backoffice/internal/models"
)

// BrandDiscoverer resolves a brand name from a spreadsheet cell, creating
// the brand when it does not exist yet.
type BrandDiscoverer interface {
	DiscoverBrandByName(ctx context.Context, name string) (*models.Brand, error)
}

// StoreTable builds the column table used by store imports and exports.
// Header names are part of the spreadsheet contract and must not change.
func StoreTable(brands BrandDiscoverer) (*Table[models.Store], error) {
	return NewTable([]Column[models.Store]{
		{
			Name: "Name",
			Get:  func(s *models.Store) string { return s.Name },
			Set: func(_ context.Context, s *models.Store, v string) error {
				s.Name = v
				return nil
			},
		},
		{
			Name: "Brand",
			Get:  func(s *models.Store) string { return s.BrandName },
			Set: func(ctx context.Context, s *models.Store, v string) error {
				brand, err := brands.DiscoverBrandByName(ctx, v)
				if err != nil {
					return err
				}
				s.BrandID = brand.ID
				s.BrandName = brand.Name
				return nil
			},
		},
		{
			Name: "Industry",
			Get:  func(s *models.Store) string { return s.Industry },
			Set: func(_ context.Context, s *models.Store, v string) error {
				s.Industry = v
				return nil
			},
		},
		{
			Name: "Status",
			Get:  func(s *models.Store) string { return s.Status.Name() },
			Set: func(_ context.Context, s *models.Store, v string) error {
				status, err := models.ParseStoreStatusName(v)
				if err != nil {
					return err
				}
				s.Status = status
				return nil
			},
		},
		{
			Name:       "API ID",
			Identifier: true,
			Get:        func(s *models.Store) string { return s.APIID },
			Set: func(_ context.Context, s *models.Store, v string) error {
				s.APIID = v
				return nil
			},
		},
		boolColumn("Facebook Verified",
			func(s *models.Store) *bool { return &s.FacebookVerified }),
		stringColumn("Facebook Id",
			func(s *models.Store) *string { return &s.FacebookID }),
		stringColumn("Facebook Page Name",
			func(s *models.Store) *string { return &s.FacebookPageName }),
		stringColumn("Facebook URL",
			func(s *models.Store) *string { return &s.FacebookURL }),
		boolColumn("Google Verified",
			func(s *models.Store) *bool { return &s.GoogleVerified }),
		stringColumn("Google Place Id",
			func(s *models.Store) *string { return &s.GooglePlaceID }),
		stringColumn("Google Location Id",
			func(s *models.Store) *string { return &s.GoogleLocationID }),
		stringColumn("Google MAP URL",
			func(s *models.Store) *string { return &s.GoogleMapsURL }),
		boolColumn("TripAdvisor Verified",
			func(s *models.Store) *bool { return &s.TripAdvisorVerified }),
		stringColumn("TripAdvisor Id",
			func(s *models.Store) *string { return &s.TripAdvisorID }),
		stringColumn("TripAdvisor Partner Property Id",
			func(s *models.Store) *string { return &s.TripAdvisorPartnerPropertyID }),
		stringColumn("TripAdvisor URL",
			func(s *models.Store) *string { return &s.TripAdvisorURL }),
		boolColumn("Zomato Verified",
			func(s *models.Store) *bool { return &s.ZomatoVerified }),
		stringColumn("Zomato Id",
			func(s *models.Store) *string { return &s.ZomatoID }),
		stringColumn("Zomato URL",
			func(s *models.Store) *string { return &s.ZomatoURL }),
		boolColumn("Instagram Verified",
			func(s *models.Store) *bool { return &s.InstagramVerified }),
		stringColumn("Instagram Id",
			func(s *models.Store) *string { return &s.InstagramID }),
		stringColumn("Instagram URL",
			func(s *models.Store) *string { return &s.InstagramURL }),
		floatColumn("Latitude",
			func(s *models.Store) **float64 { return &s.Latitude }),
		floatColumn("Longitude",
			func(s *models.Store) **float64 { return &s.Longitude }),
	})
}

func stringColumn(name string, field func(*models.Store) *string) Column[models.Store] {
	return Column[models.Store]{
		Name: name,
		Get:  func(s *models.Store) string { return *field(s) },
		Set: func(_ context.Context, s *models.Store, v string) error {
			*field(s) = v
			return nil
		},
	}
}

func boolColumn(name string, field func(*models.Store) *bool) Column[models.Store] {
	return Column[models.Store]{
		Name: name,
		Get:  func(s *models.Store) string { return FormatBool(*field(s)) },
		Set: func(_ context.Context, s *models.Store, v string) error {
			*field(s) = ParseBool(v)
			return nil
		},
	}
}

func floatColumn(name string, field func(*models.Store) **float64) Column[models.Store] {
	return Column[models.Store]{
		Name: name,
		Get:  func(s *models.Store) string { return FormatFloat(*field(s)) },
		Set: func(_ context.Context, s *models.Store, v string) error {
			f, err := ParseFloat(v)
			if err != nil {
				return err
			}
			*field(s) = f
			return nil
		},
	}
}
