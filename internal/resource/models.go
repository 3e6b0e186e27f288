package resource

// Location is the root entity. Every other record references a resolved
// location by id. A row is created once per search query and never updated.
type Location struct {
	ID             int64   `json:"id"`
	SearchQuery    string  `json:"search_query"`
	FormattedQuery string  `json:"formatted_query"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	ShortName      string  `json:"short_name,omitempty"`
}

// WeatherDay is one day of forecast for a location.
type WeatherDay struct {
	Forecast string `json:"forecast"`
	Time     string `json:"time"` // date text, e.g. "Mon May 01 2023"
}

// BusinessReview is one business search result for a location.
type BusinessReview struct {
	Name     string  `json:"name"`
	ImageURL string  `json:"image_url"`
	Price    string  `json:"price"`
	Rating   float64 `json:"rating"`
	URL      string  `json:"url"`
}

// MovieSuggestion is one movie related to a location.
type MovieSuggestion struct {
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	AverageVotes float64 `json:"average_votes"`
	TotalVotes   int64   `json:"total_votes"`
	ImageURL     string  `json:"image_url"`
	Popularity   float64 `json:"popularity"`
	ReleasedOn   string  `json:"released_on"`
}

// MeetupEvent is one upcoming event near a location.
type MeetupEvent struct {
	Link         string `json:"link"`
	Name         string `json:"name"`
	CreationDate string `json:"creation_date"`
	Host         string `json:"host"`
}

// Trail is one hiking trail near a location, including its latest reported
// condition split into separate date and time fields.
type Trail struct {
	Name          string  `json:"name"`
	Location      string  `json:"location"`
	Length        float64 `json:"length"`
	Stars         float64 `json:"stars"`
	StarVotes     int64   `json:"star_votes"`
	Summary       string  `json:"summary"`
	TrailURL      string  `json:"trail_url"`
	Conditions    string  `json:"conditions"`
	ConditionDate string  `json:"condition_date"`
	ConditionTime string  `json:"condition_time"`
}
