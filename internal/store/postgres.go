package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/i474232898/city-explorer-api/internal/resource"
)

// tables lists every resource table, used by Stats.
var tables = []string{"locations", "weathers", "yelps", "movies", "meetups", "trails"}

// Postgres is the persistence store behind the resource gateway. Rows are
// only ever inserted; nothing updates, expires, or deletes them.
type Postgres struct {
	db *sql.DB
}

// New opens a connection to PostgreSQL, ensures the schema exists, and
// returns a ready-to-use store.
func New(dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	s := &Postgres{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	return s, nil
}

func (s *Postgres) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS locations (
			id              SERIAL PRIMARY KEY,
			search_query    TEXT UNIQUE NOT NULL,
			formatted_query TEXT NOT NULL DEFAULT '',
			latitude        DOUBLE PRECISION NOT NULL DEFAULT 0,
			longitude       DOUBLE PRECISION NOT NULL DEFAULT 0,
			short_name      TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS weathers (
			id          SERIAL PRIMARY KEY,
			forecast    TEXT NOT NULL DEFAULT '',
			time        TEXT NOT NULL DEFAULT '',
			location_id INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS yelps (
			id          SERIAL PRIMARY KEY,
			name        TEXT NOT NULL DEFAULT '',
			image_url   TEXT NOT NULL DEFAULT '',
			price       TEXT NOT NULL DEFAULT '',
			rating      DOUBLE PRECISION NOT NULL DEFAULT 0,
			url         TEXT NOT NULL DEFAULT '',
			location_id INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS movies (
			id            SERIAL PRIMARY KEY,
			title         TEXT NOT NULL DEFAULT '',
			overview      TEXT NOT NULL DEFAULT '',
			average_votes DOUBLE PRECISION NOT NULL DEFAULT 0,
			total_votes   BIGINT NOT NULL DEFAULT 0,
			image_url     TEXT NOT NULL DEFAULT '',
			popularity    DOUBLE PRECISION NOT NULL DEFAULT 0,
			released_on   TEXT NOT NULL DEFAULT '',
			location_id   INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS meetups (
			id            SERIAL PRIMARY KEY,
			link          TEXT NOT NULL DEFAULT '',
			name          TEXT NOT NULL DEFAULT '',
			creation_date TEXT NOT NULL DEFAULT '',
			host          TEXT NOT NULL DEFAULT '',
			location_id   INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS trails (
			id             SERIAL PRIMARY KEY,
			name           TEXT NOT NULL DEFAULT '',
			location       TEXT NOT NULL DEFAULT '',
			length         DOUBLE PRECISION NOT NULL DEFAULT 0,
			stars          DOUBLE PRECISION NOT NULL DEFAULT 0,
			star_votes     BIGINT NOT NULL DEFAULT 0,
			summary        TEXT NOT NULL DEFAULT '',
			trail_url      TEXT NOT NULL DEFAULT '',
			conditions     TEXT NOT NULL DEFAULT '',
			condition_date TEXT NOT NULL DEFAULT '',
			condition_time TEXT NOT NULL DEFAULT '',
			location_id    INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_weathers_location ON weathers(location_id);
		CREATE INDEX IF NOT EXISTS idx_yelps_location    ON yelps(location_id);
		CREATE INDEX IF NOT EXISTS idx_movies_location   ON movies(location_id);
		CREATE INDEX IF NOT EXISTS idx_meetups_location  ON meetups(location_id);
		CREATE INDEX IF NOT EXISTS idx_trails_location   ON trails(location_id);
	`)
	return err
}

func (s *Postgres) Close() error {
	return s.db.Close()
}

// Ping verifies the connection is alive.
func (s *Postgres) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Stats returns the row count of every resource table.
func (s *Postgres) Stats(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, len(tables))
	for _, table := range tables {
		var n int64
		if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			return nil, fmt.Errorf("postgres: count %s: %w", table, err)
		}
		counts[table] = n
	}
	return counts, nil
}

// LocationBySearch returns the location row for a search query, or
// resource.ErrNotFound when none exists.
func (s *Postgres) LocationBySearch(ctx context.Context, query string) (resource.Location, error) {
	var loc resource.Location
	err := s.db.QueryRowContext(ctx, `
		SELECT id, search_query, formatted_query, latitude, longitude, short_name
		FROM locations WHERE search_query = $1
	`, query).Scan(&loc.ID, &loc.SearchQuery, &loc.FormattedQuery, &loc.Latitude, &loc.Longitude, &loc.ShortName)
	if errors.Is(err, sql.ErrNoRows) {
		return resource.Location{}, resource.ErrNotFound
	}
	if err != nil {
		return resource.Location{}, fmt.Errorf("postgres: location lookup: %w", err)
	}
	return loc, nil
}

// SaveLocation inserts a location row, tolerating a concurrent insert of the
// same search query, and reads back the assigned id.
func (s *Postgres) SaveLocation(ctx context.Context, loc resource.Location) (int64, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO locations (search_query, formatted_query, latitude, longitude, short_name)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (search_query) DO NOTHING
	`, loc.SearchQuery, loc.FormattedQuery, loc.Latitude, loc.Longitude, loc.ShortName)
	if err != nil {
		return 0, fmt.Errorf("postgres: insert location: %w", err)
	}

	var id int64
	err = s.db.QueryRowContext(ctx,
		"SELECT id FROM locations WHERE search_query = $1", loc.SearchQuery,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("postgres: read back location id: %w", err)
	}
	return id, nil
}

func (s *Postgres) WeatherByLocation(ctx context.Context, locationID int64) ([]resource.WeatherDay, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT forecast, time FROM weathers WHERE location_id = $1 ORDER BY id", locationID)
	if err != nil {
		return nil, fmt.Errorf("postgres: weather lookup: %w", err)
	}
	defer rows.Close()

	var days []resource.WeatherDay
	for rows.Next() {
		var d resource.WeatherDay
		if err := rows.Scan(&d.Forecast, &d.Time); err != nil {
			return nil, fmt.Errorf("postgres: scan weather row: %w", err)
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

func (s *Postgres) SaveWeatherDay(ctx context.Context, locationID int64, day resource.WeatherDay) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO weathers (forecast, time, location_id) VALUES ($1, $2, $3)",
		day.Forecast, day.Time, locationID)
	if err != nil {
		return fmt.Errorf("postgres: insert weather: %w", err)
	}
	return nil
}

func (s *Postgres) ReviewsByLocation(ctx context.Context, locationID int64) ([]resource.BusinessReview, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, image_url, price, rating, url FROM yelps WHERE location_id = $1 ORDER BY id", locationID)
	if err != nil {
		return nil, fmt.Errorf("postgres: reviews lookup: %w", err)
	}
	defer rows.Close()

	var reviews []resource.BusinessReview
	for rows.Next() {
		var r resource.BusinessReview
		if err := rows.Scan(&r.Name, &r.ImageURL, &r.Price, &r.Rating, &r.URL); err != nil {
			return nil, fmt.Errorf("postgres: scan review row: %w", err)
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

func (s *Postgres) SaveReview(ctx context.Context, locationID int64, review resource.BusinessReview) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO yelps (name, image_url, price, rating, url, location_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, review.Name, review.ImageURL, review.Price, review.Rating, review.URL, locationID)
	if err != nil {
		return fmt.Errorf("postgres: insert review: %w", err)
	}
	return nil
}

func (s *Postgres) MoviesByLocation(ctx context.Context, locationID int64) ([]resource.MovieSuggestion, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT title, overview, average_votes, total_votes, image_url, popularity, released_on
		FROM movies WHERE location_id = $1 ORDER BY id
	`, locationID)
	if err != nil {
		return nil, fmt.Errorf("postgres: movies lookup: %w", err)
	}
	defer rows.Close()

	var movies []resource.MovieSuggestion
	for rows.Next() {
		var m resource.MovieSuggestion
		if err := rows.Scan(&m.Title, &m.Overview, &m.AverageVotes, &m.TotalVotes,
			&m.ImageURL, &m.Popularity, &m.ReleasedOn); err != nil {
			return nil, fmt.Errorf("postgres: scan movie row: %w", err)
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

func (s *Postgres) SaveMovie(ctx context.Context, locationID int64, movie resource.MovieSuggestion) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO movies (title, overview, average_votes, total_votes, image_url, popularity, released_on, location_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, movie.Title, movie.Overview, movie.AverageVotes, movie.TotalVotes,
		movie.ImageURL, movie.Popularity, movie.ReleasedOn, locationID)
	if err != nil {
		return fmt.Errorf("postgres: insert movie: %w", err)
	}
	return nil
}

func (s *Postgres) EventsByLocation(ctx context.Context, locationID int64) ([]resource.MeetupEvent, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT link, name, creation_date, host FROM meetups WHERE location_id = $1 ORDER BY id", locationID)
	if err != nil {
		return nil, fmt.Errorf("postgres: events lookup: %w", err)
	}
	defer rows.Close()

	var events []resource.MeetupEvent
	for rows.Next() {
		var e resource.MeetupEvent
		if err := rows.Scan(&e.Link, &e.Name, &e.CreationDate, &e.Host); err != nil {
			return nil, fmt.Errorf("postgres: scan event row: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (s *Postgres) SaveEvent(ctx context.Context, locationID int64, event resource.MeetupEvent) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO meetups (link, name, creation_date, host, location_id)
		VALUES ($1, $2, $3, $4, $5)
	`, event.Link, event.Name, event.CreationDate, event.Host, locationID)
	if err != nil {
		return fmt.Errorf("postgres: insert event: %w", err)
	}
	return nil
}

func (s *Postgres) TrailsByLocation(ctx context.Context, locationID int64) ([]resource.Trail, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, location, length, stars, star_votes, summary, trail_url, conditions, condition_date, condition_time
		FROM trails WHERE location_id = $1 ORDER BY id
	`, locationID)
	if err != nil {
		return nil, fmt.Errorf("postgres: trails lookup: %w", err)
	}
	defer rows.Close()

	var trails []resource.Trail
	for rows.Next() {
		var t resource.Trail
		if err := rows.Scan(&t.Name, &t.Location, &t.Length, &t.Stars, &t.StarVotes,
			&t.Summary, &t.TrailURL, &t.Conditions, &t.ConditionDate, &t.ConditionTime); err != nil {
			return nil, fmt.Errorf("postgres: scan trail row: %w", err)
		}
		trails = append(trails, t)
	}
	return trails, rows.Err()
}

func (s *Postgres) SaveTrail(ctx context.Context, locationID int64, trail resource.Trail) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO trails (name, location, length, stars, star_votes, summary, trail_url, conditions, condition_date, condition_time, location_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, trail.Name, trail.Location, trail.Length, trail.Stars, trail.StarVotes,
		trail.Summary, trail.TrailURL, trail.Conditions, trail.ConditionDate, trail.ConditionTime, locationID)
	if err != nil {
		return fmt.Errorf("postgres: insert trail: %w", err)
	}
	return nil
}
