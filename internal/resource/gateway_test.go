package resource

import (
	"context"
	"errors"
	"testing"
)

// fakeStore is an in-memory Store that counts lookups and saves.
type fakeStore struct {
	locations map[string]Location
	nextID    int64
	weather   map[int64][]WeatherDay

	locationLookups int
	locationSaves   int
	weatherLookups  int
	weatherSaves    []int64

	lookupErr error
	saveErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		locations: make(map[string]Location),
		nextID:    1,
		weather:   make(map[int64][]WeatherDay),
	}
}

func (f *fakeStore) LocationBySearch(_ context.Context, query string) (Location, error) {
	f.locationLookups++
	if f.lookupErr != nil {
		return Location{}, f.lookupErr
	}
	loc, ok := f.locations[query]
	if !ok {
		return Location{}, ErrNotFound
	}
	return loc, nil
}

func (f *fakeStore) SaveLocation(_ context.Context, loc Location) (int64, error) {
	f.locationSaves++
	if f.saveErr != nil {
		return 0, f.saveErr
	}
	// Conflict-tolerant: a second insert of the same search query no-ops and
	// yields the existing id.
	if existing, ok := f.locations[loc.SearchQuery]; ok {
		return existing.ID, nil
	}
	loc.ID = f.nextID
	f.nextID++
	f.locations[loc.SearchQuery] = loc
	return loc.ID, nil
}

func (f *fakeStore) WeatherByLocation(_ context.Context, locationID int64) ([]WeatherDay, error) {
	f.weatherLookups++
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	return f.weather[locationID], nil
}

func (f *fakeStore) SaveWeatherDay(_ context.Context, locationID int64, day WeatherDay) error {
	f.weatherSaves = append(f.weatherSaves, locationID)
	if f.saveErr != nil {
		return f.saveErr
	}
	f.weather[locationID] = append(f.weather[locationID], day)
	return nil
}

func (f *fakeStore) ReviewsByLocation(context.Context, int64) ([]BusinessReview, error) {
	return nil, nil
}
func (f *fakeStore) SaveReview(context.Context, int64, BusinessReview) error { return nil }
func (f *fakeStore) MoviesByLocation(context.Context, int64) ([]MovieSuggestion, error) {
	return nil, nil
}
func (f *fakeStore) SaveMovie(context.Context, int64, MovieSuggestion) error { return nil }
func (f *fakeStore) EventsByLocation(context.Context, int64) ([]MeetupEvent, error) {
	return nil, nil
}
func (f *fakeStore) SaveEvent(context.Context, int64, MeetupEvent) error { return nil }
func (f *fakeStore) TrailsByLocation(context.Context, int64) ([]Trail, error) {
	return nil, nil
}
func (f *fakeStore) SaveTrail(context.Context, int64, Trail) error { return nil }

type fakeGeocoder struct {
	calls int
	loc   Location
	err   error
}

func (f *fakeGeocoder) Name() string { return "fake-geocoder" }

func (f *fakeGeocoder) Resolve(context.Context, string) (Location, error) {
	f.calls++
	if f.err != nil {
		return Location{}, f.err
	}
	return f.loc, nil
}

type fakeListingSource[T any] struct {
	calls int
	items []T
	err   error
}

func (f *fakeListingSource[T]) Name() string { return "fake-source" }

func (f *fakeListingSource[T]) Fetch(context.Context, Location) ([]T, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

func TestResolveLocationCacheHit(t *testing.T) {
	st := newFakeStore()
	st.locations["seattle"] = Location{ID: 7, SearchQuery: "seattle", FormattedQuery: "Seattle, WA, USA"}
	geo := &fakeGeocoder{}
	gw := NewGateway(st, Sources{Geocoder: geo})

	for i := 0; i < 3; i++ {
		loc, err := gw.ResolveLocation(context.Background(), "seattle")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if loc.ID != 7 || loc.FormattedQuery != "Seattle, WA, USA" {
			t.Fatalf("unexpected location: %+v", loc)
		}
	}

	if geo.calls != 0 {
		t.Fatalf("expected no geocoder calls on cache hit, got %d", geo.calls)
	}
	if st.locationSaves != 0 {
		t.Fatalf("expected no saves on cache hit, got %d", st.locationSaves)
	}
}

func TestResolveLocationMissPersistsOnce(t *testing.T) {
	st := newFakeStore()
	geo := &fakeGeocoder{loc: Location{
		FormattedQuery: "Boise, ID, USA",
		Latitude:       43.615,
		Longitude:      -116.2023,
		ShortName:      "Boise",
	}}
	gw := NewGateway(st, Sources{Geocoder: geo})

	loc, err := gw.ResolveLocation(context.Background(), "boise")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if geo.calls != 1 {
		t.Fatalf("expected one geocoder call, got %d", geo.calls)
	}
	if loc.ID == 0 {
		t.Fatal("expected an assigned id")
	}
	if loc.SearchQuery != "boise" {
		t.Fatalf("expected search query to be set, got %q", loc.SearchQuery)
	}
	if len(st.locations) != 1 {
		t.Fatalf("expected exactly one stored row, got %d", len(st.locations))
	}

	// Second resolution hits the cache; the geocoder is never re-invoked.
	again, err := gw.ResolveLocation(context.Background(), "boise")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.ID != loc.ID {
		t.Fatalf("expected same row, got ids %d and %d", loc.ID, again.ID)
	}
	if geo.calls != 1 {
		t.Fatalf("expected geocoder calls to stay at 1, got %d", geo.calls)
	}
	if len(st.locations) != 1 {
		t.Fatalf("expected stored rows to stay at 1, got %d", len(st.locations))
	}
}

func TestResolveLocationDataSourceError(t *testing.T) {
	st := newFakeStore()
	geo := &fakeGeocoder{err: errors.New("geocode 502")}
	gw := NewGateway(st, Sources{Geocoder: geo})

	_, err := gw.ResolveLocation(context.Background(), "nowhere")
	if !errors.Is(err, ErrDataSource) {
		t.Fatalf("expected ErrDataSource, got %v", err)
	}
	if st.locationSaves != 0 {
		t.Fatalf("expected no saves on fetch failure, got %d", st.locationSaves)
	}
}

func TestResolveLocationStoreError(t *testing.T) {
	st := newFakeStore()
	st.lookupErr = errors.New("connection refused")
	gw := NewGateway(st, Sources{Geocoder: &fakeGeocoder{}})

	_, err := gw.ResolveLocation(context.Background(), "seattle")
	if !errors.Is(err, ErrStore) {
		t.Fatalf("expected ErrStore, got %v", err)
	}
}

func TestResolveWeatherFanOut(t *testing.T) {
	st := newFakeStore()
	src := &fakeListingSource[WeatherDay]{items: []WeatherDay{
		{Forecast: "Clear", Time: "Mon May 01 2023"},
		{Forecast: "Rain", Time: "Tue May 02 2023"},
		{Forecast: "Cloudy", Time: "Wed May 03 2023"},
	}}
	gw := NewGateway(st, Sources{Weather: src})

	loc := Location{ID: 42, Latitude: 1, Longitude: 2}
	days, err := gw.ResolveWeather(context.Background(), loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(days) != 3 {
		t.Fatalf("expected 3 records, got %d", len(days))
	}
	if len(st.weatherSaves) != 3 {
		t.Fatalf("expected 3 saves, got %d", len(st.weatherSaves))
	}
	for _, id := range st.weatherSaves {
		if id != 42 {
			t.Fatalf("expected saves keyed by location 42, got %d", id)
		}
	}
}

func TestResolveWeatherCacheHit(t *testing.T) {
	st := newFakeStore()
	st.weather[9] = []WeatherDay{{Forecast: "Snow", Time: "Thu May 04 2023"}}
	src := &fakeListingSource[WeatherDay]{}
	gw := NewGateway(st, Sources{Weather: src})

	days, err := gw.ResolveWeather(context.Background(), Location{ID: 9})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(days) != 1 || days[0].Forecast != "Snow" {
		t.Fatalf("expected stored rows verbatim, got %+v", days)
	}
	if src.calls != 0 {
		t.Fatalf("expected no fetch on cache hit, got %d", src.calls)
	}
}

func TestResolveWeatherDataSourceError(t *testing.T) {
	st := newFakeStore()
	src := &fakeListingSource[WeatherDay]{err: errors.New("darksky 500")}
	gw := NewGateway(st, Sources{Weather: src})

	_, err := gw.ResolveWeather(context.Background(), Location{ID: 1})
	if !errors.Is(err, ErrDataSource) {
		t.Fatalf("expected ErrDataSource, got %v", err)
	}
	if len(st.weatherSaves) != 0 {
		t.Fatalf("expected no saves on fetch failure, got %d", len(st.weatherSaves))
	}
}

func TestResolveWeatherSaveFailureStillReturns(t *testing.T) {
	st := newFakeStore()
	st.saveErr = errors.New("disk full")
	src := &fakeListingSource[WeatherDay]{items: []WeatherDay{
		{Forecast: "Clear", Time: "Mon May 01 2023"},
		{Forecast: "Rain", Time: "Tue May 02 2023"},
	}}
	gw := NewGateway(st, Sources{Weather: src})

	// Persistence is fire-and-forget: the caller still gets the full list.
	days, err := gw.ResolveWeather(context.Background(), Location{ID: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("expected the full fetched set, got %d records", len(days))
	}
}
