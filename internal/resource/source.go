package resource

import (
	"context"
)

// GeocodeSource resolves free-text search input into a normalized Location.
// Implementations normalize exactly one item, the first geocoding result.
type GeocodeSource interface {
	Name() string
	Resolve(ctx context.Context, query string) (Location, error)
}

// ListingSource fetches records of one kind for a resolved location and
// normalizes every item in the external response.
type ListingSource[T any] interface {
	Name() string
	Fetch(ctx context.Context, loc Location) ([]T, error)
}

// Store is the contract the Postgres store (and test fakes) must satisfy.
// Lookups report a miss as ErrNotFound (location) or an empty slice
// (listing kinds); inserts never update or delete existing rows.
type Store interface {
	LocationBySearch(ctx context.Context, query string) (Location, error)
	SaveLocation(ctx context.Context, loc Location) (int64, error)

	WeatherByLocation(ctx context.Context, locationID int64) ([]WeatherDay, error)
	SaveWeatherDay(ctx context.Context, locationID int64, day WeatherDay) error

	ReviewsByLocation(ctx context.Context, locationID int64) ([]BusinessReview, error)
	SaveReview(ctx context.Context, locationID int64, review BusinessReview) error

	MoviesByLocation(ctx context.Context, locationID int64) ([]MovieSuggestion, error)
	SaveMovie(ctx context.Context, locationID int64, movie MovieSuggestion) error

	EventsByLocation(ctx context.Context, locationID int64) ([]MeetupEvent, error)
	SaveEvent(ctx context.Context, locationID int64, event MeetupEvent) error

	TrailsByLocation(ctx context.Context, locationID int64) ([]Trail, error)
	SaveTrail(ctx context.Context, locationID int64, trail Trail) error
}
