package serp

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/voyago/voyago/internal/models"
)

// topHotels bounds the amount of properties kept from a hotel search.
const topHotels = 5

// SearchHotels finds accommodation in destination for the given stay.
func (c *Client) SearchHotels(ctx context.Context, destination string, checkIn, checkOut time.Time, adults int) ([]models.Hotel, error) {
	params := url.Values{}
	params.Set("q", destination+" Hotels")
	params.Set("gl", "us")
	params.Set("check_in_date", checkIn.Format(models.DateFormat))
	params.Set("check_out_date", checkOut.Format(models.DateFormat))
	params.Set("adults", strconv.Itoa(adults))
	var resp hotelsResponse
	if err := c.get(ctx, "google_hotels", params, &resp); err != nil {
		return nil, fmt.Errorf("hotel search failed: %w", err)
	}
	if len(resp.Properties) == 0 {
		ancli.Noticef("no properties found for: '%v'\n", destination)
		return nil, nil
	}
	properties := resp.Properties
	if len(properties) > topHotels {
		properties = properties[:topHotels]
	}
	hotels := make([]models.Hotel, 0, len(properties))
	for _, p := range properties {
		hotel := models.Hotel{
			Name:         p.Name,
			Type:         p.Type,
			CheckInTime:  p.CheckInTime,
			CheckOutTime: p.CheckOutTime,
			NightlyRate:  p.RatePerNight.Amount(),
			TotalRate:    p.TotalRate.Amount(),
			Rating:       p.OverallRating,
			Amenities:    p.Amenities,
			Address:      p.Address,
		}
		if p.GPSCoordinates != nil {
			hotel.Coordinates = &models.Coordinates{
				Lat: p.GPSCoordinates.Latitude,
				Lon: p.GPSCoordinates.Longitude,
			}
		}
		hotels = append(hotels, hotel)
	}
	return hotels, nil
}
