// Package compose turns a priced leg plus its destination context into a
// validated day-by-day itinerary via schema-guided generation.
package compose

import (
	"context"
	"fmt"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/voyago/voyago/internal/models"
)

type Geocoder interface {
	Geocode(ctx context.Context, place, fallback string) (models.Coordinates, error)
}

type PlacesService interface {
	Nearby(ctx context.Context, coords models.Coordinates, radius int, placeType string) ([]models.Place, error)
}

type RouteService interface {
	Route(ctx context.Context, origin, destination, mode string) (models.Route, error)
}

type Generator interface {
	GenerateStructured(ctx context.Context, system, prompt string, schema *models.Schema, out any) error
}

// Leg bundles everything the composer needs to write one leg's itinerary.
type Leg struct {
	Leg       models.Leg
	Flight    models.Flight
	Inbound   *models.Flight
	Hotel     models.Hotel
	Remaining float64
	Context   models.DestinationContext
}

// attraction is a point of interest with its walking route from the hotel.
type attraction struct {
	name     string
	distance string
	duration string
}

type Composer struct {
	Geo    Geocoder
	Places PlacesService
	Routes RouteService
	Gen    Generator

	// NearbyRadius is the places search radius around the hotel, in meters
	NearbyRadius int
	// TopAttractions bounds how many points of interest get walking routes
	TopAttractions int
	SystemPrompt   string
}

const defaultSystemPrompt = "You are a helpful travel planner that outputs itineraries in valid JSON format matching the provided schema."

func New(geo Geocoder, places PlacesService, routes RouteService, gen Generator) *Composer {
	return &Composer{
		Geo:            geo,
		Places:         places,
		Routes:         routes,
		Gen:            gen,
		NearbyRadius:   10000,
		TopAttractions: 10,
		SystemPrompt:   defaultSystemPrompt,
	}
}

// Compose writes the itinerary for leg. A reply which cannot be parsed
// into the schema fails the leg, no retry happens here.
func (c *Composer) Compose(ctx context.Context, leg Leg) (models.TripItinerary, error) {
	attractions := c.findAttractions(ctx, leg)
	schema := models.SchemaFor(models.TripItinerary{})
	prompt := buildPrompt(leg, attractions, schema)
	var itinerary models.TripItinerary
	if err := c.Gen.GenerateStructured(ctx, c.SystemPrompt, prompt, schema, &itinerary); err != nil {
		return models.TripItinerary{}, fmt.Errorf("itinerary generation failed: %w", err)
	}
	// the generated leg header fields are cosmetic, the priced selection
	// stays authoritative
	itinerary.Origin = leg.Leg.Origin
	itinerary.Destination = leg.Leg.Destination
	itinerary.StartDate = leg.Leg.StartDate.Format(models.DateFormat)
	itinerary.EndDate = leg.Leg.EndDate.Format(models.DateFormat)
	itinerary.HotelName = leg.Hotel.Name
	itinerary.HotelPricePerNight = leg.Hotel.NightlyRate
	if err := itinerary.Validate(); err != nil {
		return models.TripItinerary{}, fmt.Errorf("generated itinerary is invalid: %w", err)
	}
	return itinerary, nil
}

// findAttractions resolves the hotel position and collects nearby points
// of interest with walking routes. Everything here is best-effort, an
// itinerary without attractions is still generatable.
func (c *Composer) findAttractions(ctx context.Context, leg Leg) []attraction {
	var coords models.Coordinates
	if leg.Hotel.Coordinates != nil {
		coords = *leg.Hotel.Coordinates
	} else {
		resolved, err := c.Geo.Geocode(ctx, leg.Hotel.Address, leg.Leg.Destination)
		if err != nil {
			ancli.Warnf("failed to locate hotel '%v', skipping nearby places: %v\n", leg.Hotel.Name, err)
			return nil
		}
		coords = resolved
	}
	places, err := c.Places.Nearby(ctx, coords, c.NearbyRadius, "tourist_attraction")
	if err != nil {
		ancli.Warnf("nearby search around '%v' failed: %v\n", leg.Hotel.Name, err)
		return nil
	}
	if len(places) > c.TopAttractions {
		places = places[:c.TopAttractions]
	}
	attractions := make([]attraction, 0, len(places))
	for _, place := range places {
		route, err := c.Routes.Route(ctx, coords.String(), place.Location.String(), "walking")
		if err != nil {
			ancli.Noticef("skipping '%v', no walking route: %v\n", place.Name, err)
			continue
		}
		attractions = append(attractions, attraction{
			name:     place.Name,
			distance: route.DistanceText,
			duration: route.DurationText,
		})
	}
	return attractions
}
