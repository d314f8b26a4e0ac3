// Package deals ranks flight and hotel offers, cheapest first.
package deals

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/voyago/voyago/internal/models"
)

// FlightSearcher finds round-trip flight candidates for a leg.
type FlightSearcher interface {
	SearchFlights(ctx context.Context, leg models.Leg) ([]models.Flight, error)
	SearchInbound(ctx context.Context, leg models.Leg, departureToken string) ([]models.Flight, error)
}

// HotelSearcher finds accommodation candidates in a destination.
type HotelSearcher interface {
	SearchHotels(ctx context.Context, destination string, checkIn, checkOut time.Time, adults int) ([]models.Hotel, error)
}

type Finder struct {
	Flights FlightSearcher
	Hotels  HotelSearcher
	Adults  int
}

func NewFinder(flights FlightSearcher, hotels HotelSearcher, adults int) *Finder {
	return &Finder{
		Flights: flights,
		Hotels:  hotels,
		Adults:  adults,
	}
}

// FindFlights returns flight offers for leg ranked by ascending price,
// source order preserved on ties. Transport failures degrade to an empty
// result, flights being absent is decided by the caller.
func (f *Finder) FindFlights(ctx context.Context, leg models.Leg) []models.Flight {
	flights, err := f.Flights.SearchFlights(ctx, leg)
	if err != nil {
		ancli.Warnf("flight search for '%v' to '%v' failed: %v\n", leg.Origin, leg.Destination, err)
		return nil
	}
	sortByPrice(flights, func(fl models.Flight) float64 { return fl.Price })
	return flights
}

// FindInbound returns the return-flight offers matching an outbound choice,
// ranked by ascending price.
func (f *Finder) FindInbound(ctx context.Context, leg models.Leg, departureToken string) []models.Flight {
	flights, err := f.Flights.SearchInbound(ctx, leg, departureToken)
	if err != nil {
		ancli.Warnf("inbound flight search for '%v' failed: %v\n", leg.Destination, err)
		return nil
	}
	sortByPrice(flights, func(fl models.Flight) float64 { return fl.Price })
	return flights
}

// FindHotels returns hotel offers for the leg ranked by ascending nightly
// rate by finding candidates matching prefs whose total stay fits within
// budget. A nil budget means unlimited, a nil prefs means unconstrained.
func (f *Finder) FindHotels(ctx context.Context, leg models.Leg, budget *float64, prefs *models.AccommodationPreferences) []models.Hotel {
	hotels, err := f.Hotels.SearchHotels(ctx, leg.Destination, leg.StartDate, leg.EndDate, f.Adults)
	if err != nil {
		ancli.Warnf("hotel search for '%v' failed: %v\n", leg.Destination, err)
		return nil
	}
	nights := leg.Nights()
	matching := make([]models.Hotel, 0, len(hotels))
	for _, hotel := range hotels {
		if budget != nil && hotel.NightlyRate*float64(nights) > *budget {
			continue
		}
		if !matchesPreferences(hotel, prefs) {
			continue
		}
		matching = append(matching, hotel)
	}
	sortByPrice(matching, func(h models.Hotel) float64 { return h.NightlyRate })
	return matching
}

func matchesPreferences(hotel models.Hotel, prefs *models.AccommodationPreferences) bool {
	if prefs == nil {
		return true
	}
	if prefs.PetFriendly && !hasAmenity(hotel, "pet") {
		return false
	}
	if prefs.EntireRoom && !isEntireRoom(hotel) {
		return false
	}
	return true
}

func hasAmenity(hotel models.Hotel, keyword string) bool {
	for _, amenity := range hotel.Amenities {
		if strings.Contains(strings.ToLower(amenity), keyword) {
			return true
		}
	}
	return false
}

func isEntireRoom(hotel models.Hotel) bool {
	lowered := strings.ToLower(hotel.Type)
	if strings.Contains(lowered, "vacation rental") || strings.Contains(lowered, "apartment") {
		return true
	}
	return hasAmenity(hotel, "entire")
}

func sortByPrice[T any](offers []T, price func(T) float64) {
	sort.SliceStable(offers, func(i, j int) bool {
		return price(offers[i]) < price(offers[j])
	})
}
