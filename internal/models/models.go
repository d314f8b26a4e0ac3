package models

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Runner is the top level abstraction for anything which may be started
// from the command line, such as a plan run or the http server.
type Runner interface {
	Run(ctx context.Context) error
}

// Coordinates is a WGS84 latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%f,%f", c.Lat, c.Lon)
}

// AccommodationPreferences holds the soft constraints for hotel search.
// They may be relaxed (dropped entirely) when a strict search finds nothing.
type AccommodationPreferences struct {
	EntireRoom  bool `json:"entire_room"`
	PetFriendly bool `json:"pet_friendly"`
}

// TravelQuery is the structured form of the user's free text request.
// Created once per request, immutable thereafter.
type TravelQuery struct {
	Origin           string                    `json:"origin" desc:"The starting city of the trip."`
	OriginCode       string                    `json:"origin_iata" desc:"IATA code of the origin city's main airport."`
	Destinations     []string                  `json:"destinations" desc:"Ordered list of destination cities."`
	DestinationCodes []string                  `json:"destination_iata" desc:"IATA codes matching the destinations, in order."`
	StartDate        string                    `json:"start_date" desc:"Trip start date, YYYY-MM-DD."`
	EndDate          string                    `json:"end_date" desc:"Trip end date, YYYY-MM-DD."`
	Budget           *float64                  `json:"budget" desc:"Total budget in USD, if the user gave one."`
	Preferences      *AccommodationPreferences `json:"accommodation_preferences" desc:"Accommodation preferences, if the user gave any."`
}

const DateFormat = "2006-01-02"

// Start returns the parsed start date.
func (q TravelQuery) Start() (time.Time, error) {
	return time.Parse(DateFormat, q.StartDate)
}

// End returns the parsed end date.
func (q TravelQuery) End() (time.Time, error) {
	return time.Parse(DateFormat, q.EndDate)
}

// Nights of the whole trip. Assumes Validate has passed.
func (q TravelQuery) Nights() int {
	start, _ := q.Start()
	end, _ := q.End()
	return int(end.Sub(start).Hours() / 24)
}

// Validate checks the TravelQuery invariants: at least one destination,
// destination/code list parity when codes are supplied, parseable dates
// and end strictly after start.
func (q TravelQuery) Validate() error {
	if q.Origin == "" {
		return errors.New("missing origin")
	}
	if len(q.Destinations) == 0 {
		return errors.New("no destinations detected after origin")
	}
	if len(q.DestinationCodes) != 0 && len(q.DestinationCodes) != len(q.Destinations) {
		return fmt.Errorf("mismatch between destinations (%v) and their airport codes (%v)",
			len(q.Destinations), len(q.DestinationCodes))
	}
	start, err := q.Start()
	if err != nil {
		return fmt.Errorf("failed to parse start date: %w", err)
	}
	end, err := q.End()
	if err != nil {
		return fmt.Errorf("failed to parse end date: %w", err)
	}
	if !end.After(start) {
		return fmt.Errorf("end date '%v' must be after start date '%v'", q.EndDate, q.StartDate)
	}
	return nil
}

// Leg is one origin -> destination segment of the trip with its own dates.
type Leg struct {
	Origin          string    `json:"origin"`
	OriginCode      string    `json:"origin_iata"`
	Destination     string    `json:"destination"`
	DestinationCode string    `json:"destination_iata"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
}

// Nights spent on this leg.
func (l Leg) Nights() int {
	return int(l.EndDate.Sub(l.StartDate).Hours() / 24)
}

// Flight is an externally sourced flight offer.
type Flight struct {
	Departure       string  `json:"departure"`
	Arrival         string  `json:"arrival"`
	DepartureTime   string  `json:"departure_time"`
	ArrivalTime     string  `json:"arrival_time"`
	DurationMinutes int     `json:"duration_minutes"`
	Airplane        string  `json:"airplane"`
	TravelClass     string  `json:"travel_class"`
	FlightNumber    string  `json:"flight_number"`
	Price           float64 `json:"price"`
	// DepartureToken is the continuation token used to look up matching
	// inbound flights. Empty when the search engine gave none.
	DepartureToken string `json:"departure_token,omitempty"`
}

// Hotel is an externally sourced lodging offer.
type Hotel struct {
	Name         string       `json:"name"`
	Type         string       `json:"type"`
	CheckInTime  string       `json:"check_in_time"`
	CheckOutTime string       `json:"check_out_time"`
	NightlyRate  float64      `json:"nightly_rate"`
	TotalRate    float64      `json:"total_rate"`
	Rating       float64      `json:"rating"`
	Amenities    []string     `json:"amenities"`
	Coordinates  *Coordinates `json:"coordinates,omitempty"`
	Address      string       `json:"address"`
}

// Place is a point of interest near some coordinates.
type Place struct {
	Name     string      `json:"name"`
	Location Coordinates `json:"location"`
}

// Route is a distance/duration summary between two coordinates for one
// mode of transport.
type Route struct {
	DistanceText    string `json:"distance_text"`
	DistanceMeters  int    `json:"distance_value"`
	DurationText    string `json:"duration_text"`
	DurationSeconds int    `json:"duration_value"`
}

// BudgetState is the running budget total. It is owned exclusively by the
// trip planner and mutated once per leg, in leg order, never concurrently.
type BudgetState struct {
	// Limited is false when the user gave no budget, in which case
	// Remaining is informational only and never causes an abort.
	Limited    bool    `json:"limited"`
	Remaining  float64 `json:"remaining_budget"`
	FlightCost float64 `json:"total_flight_cost"`
	HotelCost  float64 `json:"total_hotel_cost"`
}

// NewBudgetState for an optional total budget.
func NewBudgetState(budget *float64) *BudgetState {
	bs := &BudgetState{}
	if budget != nil {
		bs.Limited = true
		bs.Remaining = *budget
	}
	return bs
}

// DeductFlight subtracts a flight price from the remaining budget.
func (b *BudgetState) DeductFlight(price float64) {
	b.FlightCost += price
	b.Remaining -= price
}

// DeductHotel subtracts nightly rate times nights from the remaining budget.
func (b *BudgetState) DeductHotel(nightlyRate float64, nights int) {
	cost := nightlyRate * float64(nights)
	b.HotelCost += cost
	b.Remaining -= cost
}

// Exceeded reports whether the budget has been overrun. Always false for
// unlimited budgets.
func (b *BudgetState) Exceeded() bool {
	return b.Limited && b.Remaining < 0
}

// DayWeather is one day of weather data for a destination.
type DayWeather struct {
	Description string  `json:"description" desc:"Short weather description, e.g. 'Partly cloudy'."`
	TempHigh    float64 `json:"temperature_high" desc:"Expected high temperature in Celsius."`
	TempLow     float64 `json:"temperature_low" desc:"Expected low temperature in Celsius."`
}

// DiscussionPost is one social discussion post about a destination.
type DiscussionPost struct {
	// Content is the inline text of the post. When empty,
	// ExternalContent may hold a substitute extracted from the post's link.
	Content         string   `json:"content"`
	ExternalContent string   `json:"external_content,omitempty"`
	Permalink       string   `json:"permalink"`
	Comments        []string `json:"comments,omitempty"`
}

// Text returns the best available content of the post.
func (p DiscussionPost) Text() string {
	if p.Content != "" {
		return p.Content
	}
	return p.ExternalContent
}

// DestinationContext bundles the independently fetched weather,
// encyclopedic and social data for one destination. Each section may be
// empty when its fetch failed or found nothing, which is a normal state
// and not an error.
type DestinationContext struct {
	Destination string `json:"destination"`
	// Weather keyed by YYYY-MM-DD. Nil means unavailable.
	Weather map[string]DayWeather `json:"weather,omitempty"`
	// Background keyed by section name, e.g. "Culture".
	Background map[string]string `json:"background,omitempty"`
	Posts      []DiscussionPost  `json:"posts,omitempty"`
}
