package gmaps

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/voyago/voyago/internal/models"
)

// Geocode resolves place to coordinates. When place is empty, unusable or
// yields no results, fallback is tried instead. Both failing returns
// models.ErrNotFound.
func (c *Client) Geocode(ctx context.Context, place, fallback string) (models.Coordinates, error) {
	if place == "" || strings.EqualFold(place, "not available") {
		if fallback == "" {
			return models.Coordinates{}, fmt.Errorf("no place to geocode: %w", models.ErrNotFound)
		}
		ancli.Noticef("place is: '%v', falling back to: '%v'\n", place, fallback)
		return c.geocodeOne(ctx, fallback)
	}
	coords, err := c.geocodeOne(ctx, place)
	if err == nil {
		return coords, nil
	}
	if fallback == "" {
		return models.Coordinates{}, err
	}
	ancli.Noticef("failed to geocode: '%v', trying fallback: '%v'\n", place, fallback)
	return c.geocodeOne(ctx, fallback)
}

func (c *Client) geocodeOne(ctx context.Context, place string) (models.Coordinates, error) {
	params := url.Values{}
	params.Set("address", place)
	var resp geocodeResponse
	if err := c.get(ctx, "/geocode/json", params, &resp); err != nil {
		return models.Coordinates{}, fmt.Errorf("geocoding failed: %w", err)
	}
	if len(resp.Results) == 0 {
		return models.Coordinates{}, fmt.Errorf("no geocoding results for: '%v': %w", place, models.ErrNotFound)
	}
	location := resp.Results[0].Geometry.Location
	return models.Coordinates{Lat: location.Lat, Lon: location.Lng}, nil
}

const earthRadiusKM = 6371

// HaversineKM returns the straight-line distance between a and b in
// kilometers.
func HaversineKM(a, b models.Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180
	h := math.Pow(math.Sin(dLat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dLon/2), 2)
	return 2 * earthRadiusKM * math.Asin(math.Sqrt(h))
}

// FlightDistanceKM returns the great circle distance between two places
// identified by name.
func (c *Client) FlightDistanceKM(ctx context.Context, origin, destination string) (float64, error) {
	from, err := c.geocodeOne(ctx, origin)
	if err != nil {
		return 0, fmt.Errorf("failed to locate origin: %w", err)
	}
	to, err := c.geocodeOne(ctx, destination)
	if err != nil {
		return 0, fmt.Errorf("failed to locate destination: %w", err)
	}
	return HaversineKM(from, to), nil
}
