package serp

import (
	"context"
	"fmt"
	"net/url"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/voyago/voyago/internal/models"
)

// SearchFlights finds round-trip flight options for leg. Google ranks a
// subset as 'best', which is preferred. When no best flights exist the
// remaining options are used instead. Each returned flight carries a
// departure token which selects the matching inbound options.
func (c *Client) SearchFlights(ctx context.Context, leg models.Leg) ([]models.Flight, error) {
	params := flightParams(leg)
	var resp flightsResponse
	if err := c.get(ctx, "google_flights", params, &resp); err != nil {
		return nil, fmt.Errorf("flight search failed: %w", err)
	}
	return extractFlights(resp), nil
}

// SearchInbound finds return flight options matching a previously chosen
// outbound flight, identified by its departure token.
func (c *Client) SearchInbound(ctx context.Context, leg models.Leg, departureToken string) ([]models.Flight, error) {
	params := flightParams(leg)
	params.Set("departure_token", departureToken)
	var resp flightsResponse
	if err := c.get(ctx, "google_flights", params, &resp); err != nil {
		return nil, fmt.Errorf("inbound flight search failed: %w", err)
	}
	return extractFlights(resp), nil
}

func flightParams(leg models.Leg) url.Values {
	params := url.Values{}
	params.Set("departure_id", leg.OriginCode)
	params.Set("arrival_id", leg.DestinationCode)
	params.Set("outbound_date", leg.StartDate.Format(models.DateFormat))
	params.Set("return_date", leg.EndDate.Format(models.DateFormat))
	return params
}

func extractFlights(resp flightsResponse) []models.Flight {
	options := resp.BestFlights
	if len(options) == 0 {
		ancli.Noticef("no best flights found, falling back to other flights\n")
		options = resp.OtherFlights
	}
	flights := make([]models.Flight, 0, len(options))
	for _, option := range options {
		if len(option.Flights) == 0 {
			continue
		}
		first := option.Flights[0]
		flights = append(flights, models.Flight{
			Departure:       fmt.Sprintf("%v (%v)", first.DepartureAirport.Name, first.DepartureAirport.ID),
			Arrival:         fmt.Sprintf("%v (%v)", first.ArrivalAirport.Name, first.ArrivalAirport.ID),
			DepartureTime:   first.DepartureAirport.Time,
			ArrivalTime:     first.ArrivalAirport.Time,
			DurationMinutes: first.Duration,
			Airplane:        first.Airplane,
			TravelClass:     first.TravelClass,
			FlightNumber:    first.FlightNumber,
			Price:           option.Price,
			DepartureToken:  option.DepartureToken,
		})
	}
	return flights
}
