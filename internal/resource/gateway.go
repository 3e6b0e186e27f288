package resource

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// Sources bundles one external data source per resource kind.
type Sources struct {
	Geocoder GeocodeSource
	Weather  ListingSource[WeatherDay]
	Reviews  ListingSource[BusinessReview]
	Movies   ListingSource[MovieSuggestion]
	Events   ListingSource[MeetupEvent]
	Trails   ListingSource[Trail]
}

// Gateway implements the lookup-or-fetch protocol for every resource kind:
// return stored rows when they exist, otherwise fetch from the external
// source, normalize, persist, and return the fetched set. Stored rows are
// trusted forever; there is no expiry and no revalidation.
type Gateway struct {
	store   Store
	sources Sources
}

// NewGateway creates a Gateway over an injected store handle and sources.
func NewGateway(store Store, sources Sources) *Gateway {
	return &Gateway{
		store:   store,
		sources: sources,
	}
}

// ResolveLocation resolves free-text search input into a Location, creating
// the row on first resolution. The insert is conflict-tolerant on the search
// query, so two concurrent first resolutions leave a single row.
func (g *Gateway) ResolveLocation(ctx context.Context, query string) (Location, error) {
	loc, err := g.store.LocationBySearch(ctx, query)
	if err == nil {
		return loc, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Location{}, fmt.Errorf("%w: location lookup: %v", ErrStore, err)
	}

	loc, err = g.sources.Geocoder.Resolve(ctx, query)
	if err != nil {
		return Location{}, fmt.Errorf("%w: %s: %v", ErrDataSource, g.sources.Geocoder.Name(), err)
	}
	loc.SearchQuery = query

	id, err := g.store.SaveLocation(ctx, loc)
	if err != nil {
		return Location{}, fmt.Errorf("%w: save location: %v", ErrStore, err)
	}
	loc.ID = id
	return loc, nil
}

// ResolveWeather returns the daily forecast rows for a location.
func (g *Gateway) ResolveWeather(ctx context.Context, loc Location) ([]WeatherDay, error) {
	return resolveListing(ctx, listing[WeatherDay]{
		kind:   "weather",
		lookup: g.store.WeatherByLocation,
		fetch: func(ctx context.Context, loc Location) ([]WeatherDay, error) {
			return g.sources.Weather.Fetch(ctx, loc)
		},
		save:   g.store.SaveWeatherDay,
	}, loc)
}

// ResolveReviews returns the business reviews for a location.
func (g *Gateway) ResolveReviews(ctx context.Context, loc Location) ([]BusinessReview, error) {
	return resolveListing(ctx, listing[BusinessReview]{
		kind:   "reviews",
		lookup: g.store.ReviewsByLocation,
		fetch: func(ctx context.Context, loc Location) ([]BusinessReview, error) {
			return g.sources.Reviews.Fetch(ctx, loc)
		},
		save:   g.store.SaveReview,
	}, loc)
}

// ResolveMovies returns the movie suggestions for a location.
func (g *Gateway) ResolveMovies(ctx context.Context, loc Location) ([]MovieSuggestion, error) {
	return resolveListing(ctx, listing[MovieSuggestion]{
		kind:   "movies",
		lookup: g.store.MoviesByLocation,
		fetch: func(ctx context.Context, loc Location) ([]MovieSuggestion, error) {
			return g.sources.Movies.Fetch(ctx, loc)
		},
		save:   g.store.SaveMovie,
	}, loc)
}

// ResolveEvents returns the upcoming events for a location.
func (g *Gateway) ResolveEvents(ctx context.Context, loc Location) ([]MeetupEvent, error) {
	return resolveListing(ctx, listing[MeetupEvent]{
		kind:   "events",
		lookup: g.store.EventsByLocation,
		fetch: func(ctx context.Context, loc Location) ([]MeetupEvent, error) {
			return g.sources.Events.Fetch(ctx, loc)
		},
		save:   g.store.SaveEvent,
	}, loc)
}

// ResolveTrails returns the hiking trails for a location.
func (g *Gateway) ResolveTrails(ctx context.Context, loc Location) ([]Trail, error) {
	return resolveListing(ctx, listing[Trail]{
		kind:   "trails",
		lookup: g.store.TrailsByLocation,
		fetch: func(ctx context.Context, loc Location) ([]Trail, error) {
			return g.sources.Trails.Fetch(ctx, loc)
		},
		save:   g.store.SaveTrail,
	}, loc)
}

// listing captures the per-kind capabilities the shared protocol needs:
// a table lookup, an external fetch that normalizes, and a row insert.
type listing[T any] struct {
	kind   string
	lookup func(ctx context.Context, locationID int64) ([]T, error)
	fetch  func(ctx context.Context, loc Location) ([]T, error)
	save   func(ctx context.Context, locationID int64, rec T) error
}

// resolveListing runs the lookup-or-fetch protocol for one listing kind.
// Row inserts on the miss path are fire-and-forget: a failed write is
// logged and the fetched set is still returned in full.
func resolveListing[T any](ctx context.Context, l listing[T], loc Location) ([]T, error) {
	rows, err := l.lookup(ctx, loc.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s lookup: %v", ErrStore, l.kind, err)
	}
	if len(rows) > 0 {
		return rows, nil
	}

	items, err := l.fetch(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDataSource, l.kind, err)
	}

	for _, item := range items {
		if err := l.save(ctx, loc.ID, item); err != nil {
			log.Printf("%s: save for location %d failed: %v", l.kind, loc.ID, err)
		}
	}
	return items, nil
}
