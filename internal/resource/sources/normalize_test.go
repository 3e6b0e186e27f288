package sources

import "testing"

func TestNormalizeLocation(t *testing.T) {
	item := geocodeResult{FormattedAddress: "Seattle, WA, USA"}
	item.AddressComponents = []struct {
		ShortName string `json:"short_name"`
	}{{ShortName: "Seattle"}}
	item.Geometry.Location.Lat = 47.6062
	item.Geometry.Location.Lng = -122.3321

	loc := normalizeLocation(item)
	if loc.FormattedQuery != "Seattle, WA, USA" {
		t.Errorf("formatted query: got %q", loc.FormattedQuery)
	}
	if loc.Latitude != 47.6062 || loc.Longitude != -122.3321 {
		t.Errorf("coordinates: got %f,%f", loc.Latitude, loc.Longitude)
	}
	if loc.ShortName != "Seattle" {
		t.Errorf("short name: got %q", loc.ShortName)
	}
}

func TestNormalizeWeatherDay(t *testing.T) {
	// 2023-05-01T00:00:00Z
	day := normalizeWeatherDay(darkskyDay{Summary: "Partly cloudy.", Time: 1682899200})
	if day.Forecast != "Partly cloudy." {
		t.Errorf("forecast: got %q", day.Forecast)
	}
	if day.Time != "Mon May 01 2023" {
		t.Errorf("time: got %q, want %q", day.Time, "Mon May 01 2023")
	}
}

func TestNormalizeMoviePosterPrefix(t *testing.T) {
	movie := normalizeMovie(tmdbMovie{
		Title:       "Sleepless in Seattle",
		VoteAverage: 6.8,
		VoteCount:   1800,
		PosterPath:  "/afkYP1KUcsIBNLojaT6LzHVvWqv.jpg",
	})
	want := "https://image.tmdb.org/t/p/w500/afkYP1KUcsIBNLojaT6LzHVvWqv.jpg"
	if movie.ImageURL != want {
		t.Errorf("image url: got %q, want %q", movie.ImageURL, want)
	}
	if movie.AverageVotes != 6.8 || movie.TotalVotes != 1800 {
		t.Errorf("votes: got %f/%d", movie.AverageVotes, movie.TotalVotes)
	}
}

func TestNormalizeMovieMissingPoster(t *testing.T) {
	movie := normalizeMovie(tmdbMovie{Title: "Obscure"})
	if movie.ImageURL != "" {
		t.Errorf("expected empty image url, got %q", movie.ImageURL)
	}
}

func TestNormalizeEvent(t *testing.T) {
	item := meetupEvent{Link: "https://meetup.com/e/1", Name: "Go Meetup", Created: 1682899200000}
	item.Group.Name = "Seattle Gophers"

	event := normalizeEvent(item)
	if event.CreationDate != "Mon May 01 2023" {
		t.Errorf("creation date: got %q", event.CreationDate)
	}
	if event.Host != "Seattle Gophers" {
		t.Errorf("host: got %q", event.Host)
	}
}

func TestNormalizeTrailConditionSplit(t *testing.T) {
	trail := normalizeTrail(hikingTrail{
		Name:            "Mount Si",
		ConditionStatus: "All Clear",
		ConditionDate:   "2023-05-01T14:30:00",
	})
	if trail.ConditionDate != "2023-05-01" {
		t.Errorf("condition date: got %q, want %q", trail.ConditionDate, "2023-05-01")
	}
	if trail.ConditionTime != "14:30:00" {
		t.Errorf("condition time: got %q, want %q", trail.ConditionTime, "14:30:00")
	}
	if trail.Conditions != "All Clear" {
		t.Errorf("conditions: got %q", trail.Conditions)
	}
}

func TestNormalizeTrailConditionDetails(t *testing.T) {
	trail := normalizeTrail(hikingTrail{
		ConditionStatus:  "Minor Issues",
		ConditionDetails: "Snow on upper switchbacks",
		ConditionDate:    "2023-03-12 08:05:44",
	})
	if trail.Conditions != "Minor Issues Snow on upper switchbacks" {
		t.Errorf("conditions: got %q", trail.Conditions)
	}
	if trail.ConditionDate != "2023-03-12" || trail.ConditionTime != "08:05:44" {
		t.Errorf("split: got %q / %q", trail.ConditionDate, trail.ConditionTime)
	}
}
