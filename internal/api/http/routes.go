package httpapi

import (
	"context"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/city-explorer-api/internal/resource"
)

var validate = validator.New()

// genericFailure is the only failure message callers see; they cannot
// distinguish a store outage from an upstream API outage.
const genericFailure = "Sorry, something went wrong"

// RegisterRoutes wires one GET endpoint per resource kind into the Fiber app.
func RegisterRoutes(app *fiber.App, gateway *resource.Gateway) {
	app.Get("/location", func(c *fiber.Ctx) error {
		query, err := parseSearchQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		loc, err := gateway.ResolveLocation(c.UserContext(), query)
		if err != nil {
			log.Printf("location resolve failed for %q: %v", query, err)
			return fiber.NewError(fiber.StatusInternalServerError, genericFailure)
		}
		return c.JSON(loc)
	})

	app.Get("/weather", listingHandler("weather", gateway.ResolveWeather))
	app.Get("/yelp", listingHandler("yelp", gateway.ResolveReviews))
	app.Get("/movies", listingHandler("movies", gateway.ResolveMovies))
	app.Get("/meetups", listingHandler("meetups", gateway.ResolveEvents))
	app.Get("/trails", listingHandler("trails", gateway.ResolveTrails))
}

// listingHandler builds the shared handler for the five listing endpoints.
func listingHandler[T any](kind string, resolve func(context.Context, resource.Location) ([]T, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q, err := parseListingQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		items, err := resolve(c.UserContext(), q.toLocation())
		if err != nil {
			log.Printf("%s resolve failed for location %d: %v", kind, q.ID, err)
			return fiber.NewError(fiber.StatusInternalServerError, genericFailure)
		}
		return c.JSON(items)
	}
}

// searchQuery holds the free-text input of the location endpoint.
type searchQuery struct {
	Data string `validate:"required"`
}

func parseSearchQuery(c *fiber.Ctx) (string, error) {
	q := searchQuery{Data: c.Query("data")}
	if err := validate.Struct(q); err != nil {
		return "", err
	}
	return q.Data, nil
}

// listingQuery identifies a previously resolved location. Coordinates ride
// along for the miss path; the gateway does not validate their presence.
type listingQuery struct {
	ID        int64 `validate:"required,gt=0"`
	Latitude  float64
	Longitude float64
	ShortName string
}

func (l listingQuery) toLocation() resource.Location {
	return resource.Location{
		ID:        l.ID,
		Latitude:  l.Latitude,
		Longitude: l.Longitude,
		ShortName: l.ShortName,
	}
}

func parseListingQuery(c *fiber.Ctx) (listingQuery, error) {
	q := listingQuery{
		ID:        int64(c.QueryInt("id")),
		Latitude:  c.QueryFloat("latitude"),
		Longitude: c.QueryFloat("longitude"),
		ShortName: c.Query("short_name"),
	}
	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}
