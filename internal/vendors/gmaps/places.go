package gmaps

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/voyago/voyago/internal/models"
)

// Nearby finds places of placeType within radius meters of coords.
func (c *Client) Nearby(ctx context.Context, coords models.Coordinates, radius int, placeType string) ([]models.Place, error) {
	params := url.Values{}
	params.Set("location", coords.String())
	params.Set("radius", strconv.Itoa(radius))
	params.Set("type", placeType)
	var resp nearbyResponse
	if err := c.get(ctx, "/place/nearbysearch/json", params, &resp); err != nil {
		return nil, fmt.Errorf("nearby search failed: %w", err)
	}
	if resp.Status != "OK" && resp.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("nearby search returned status: %v", resp.Status)
	}
	places := make([]models.Place, 0, len(resp.Results))
	for _, r := range resp.Results {
		places = append(places, models.Place{
			Name:     r.Name,
			Location: models.Coordinates{Lat: r.Geometry.Location.Lat, Lon: r.Geometry.Location.Lng},
		})
	}
	return places, nil
}

// Route fetches distance and travel duration from origin to destination
// using the given travel mode, such as "walking" or "driving".
func (c *Client) Route(ctx context.Context, origin, destination, mode string) (models.Route, error) {
	params := url.Values{}
	params.Set("origins", origin)
	params.Set("destinations", destination)
	params.Set("mode", mode)
	params.Set("units", "metric")
	var resp distanceMatrixResponse
	if err := c.get(ctx, "/distancematrix/json", params, &resp); err != nil {
		return models.Route{}, fmt.Errorf("distance matrix lookup failed: %w", err)
	}
	if resp.Status != "OK" {
		return models.Route{}, fmt.Errorf("distance matrix returned status: %v", resp.Status)
	}
	if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return models.Route{}, fmt.Errorf("distance matrix returned no elements: %w", models.ErrNotFound)
	}
	element := resp.Rows[0].Elements[0]
	if element.Status != "OK" {
		return models.Route{}, fmt.Errorf("no route between '%v' and '%v', status: %v: %w", origin, destination, element.Status, models.ErrNotFound)
	}
	return models.Route{
		DistanceText:    element.Distance.Text,
		DistanceMeters:  element.Distance.Value,
		DurationText:    element.Duration.Text,
		DurationSeconds: element.Duration.Value,
	}, nil
}
