package planner

import (
	"context"
	"fmt"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/voyago/voyago/internal/models"
)

// DealSource finds ranked offers, cheapest first. Empty results are
// normal return values, their meaning is decided here.
type DealSource interface {
	FindFlights(ctx context.Context, leg models.Leg) []models.Flight
	FindInbound(ctx context.Context, leg models.Leg, departureToken string) []models.Flight
	FindHotels(ctx context.Context, leg models.Leg, budget *float64, prefs *models.AccommodationPreferences) []models.Hotel
}

// PricedLeg is a leg with its selected flight pair and hotel.
type PricedLeg struct {
	Leg        models.Leg
	Flight     models.Flight
	Inbound    *models.Flight
	Hotel      models.Hotel
	FlightCost float64
	HotelCost  float64
}

// Allocator prices legs one at a time against a running budget. Legs must
// be priced in order since each hotel search is bounded by what the
// previous legs left over.
type Allocator struct {
	Deals DealSource
}

// PriceLeg selects the cheapest flight pair and the cheapest acceptable
// hotel for leg, deducting both from budget. No flights aborts the trip.
// No hotels triggers one retry with preferences cleared before aborting.
func (a *Allocator) PriceLeg(ctx context.Context, leg models.Leg, budget *models.BudgetState, prefs *models.AccommodationPreferences) (PricedLeg, error) {
	flights := a.Deals.FindFlights(ctx, leg)
	if len(flights) == 0 {
		return PricedLeg{}, fmt.Errorf("no flight deals found for '%v' to '%v': %w",
			leg.Origin, leg.Destination, models.ErrNotFound)
	}
	selected := flights[0]
	ancli.Okf("selected outbound flight: %v by %v at $%.2f\n",
		selected.FlightNumber, selected.Airplane, selected.Price)

	var inbound *models.Flight
	flightCost := selected.Price
	if selected.DepartureToken != "" {
		inboundFlights := a.Deals.FindInbound(ctx, leg, selected.DepartureToken)
		if len(inboundFlights) > 0 {
			inbound = &inboundFlights[0]
			flightCost += inbound.Price
			ancli.Okf("selected inbound flight: %v by %v at $%.2f\n",
				inbound.FlightNumber, inbound.Airplane, inbound.Price)
		}
	}
	budget.DeductFlight(flightCost)

	var bound *float64
	if budget.Limited {
		remaining := budget.Remaining
		bound = &remaining
	}
	hotels := a.Deals.FindHotels(ctx, leg, bound, prefs)
	if len(hotels) == 0 && prefs != nil {
		ancli.Noticef("no matching hotel deals, retrying with relaxed preferences\n")
		hotels = a.Deals.FindHotels(ctx, leg, bound, nil)
	}
	if len(hotels) == 0 {
		return PricedLeg{}, fmt.Errorf("no hotel deals found for '%v': %w",
			leg.Destination, models.ErrNotFound)
	}
	hotel := hotels[0]
	ancli.Okf("selected hotel: %v at $%.2f per night, rating: %v\n",
		hotel.Name, hotel.NightlyRate, hotel.Rating)
	nights := leg.Nights()
	budget.DeductHotel(hotel.NightlyRate, nights)

	return PricedLeg{
		Leg:        leg,
		Flight:     selected,
		Inbound:    inbound,
		Hotel:      hotel,
		FlightCost: flightCost,
		HotelCost:  hotel.NightlyRate * float64(nights),
	}, nil
}
