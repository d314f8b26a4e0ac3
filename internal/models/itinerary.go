package models

import "fmt"

// The types below declare the itinerary document which the generation
// service must produce for each leg. Their schema, derived via SchemaFor,
// is embedded in the generation request, and the reply is validated
// against it before it is accepted.

// Activity is one planned activity within a day.
type Activity struct {
	Name            string   `json:"name" desc:"Short title describing the activity, e.g. 'Visit museum'."`
	Fare            *float64 `json:"fare" desc:"Ticket price or entrance fee for the activity."`
	DistanceKM      *float64 `json:"distance_km" desc:"Approximate distance in kilometers from the hotel or previous location."`
	DurationMinutes *int     `json:"duration_minutes" desc:"Estimated time in minutes for this activity or travel."`
	TransportMode   *string  `json:"transport_mode" desc:"Mode of transport, e.g. 'walking' or 'driving'."`
}

// FlightLeg is one direction of the booked flight pair.
type FlightLeg struct {
	DepartureTime   string  `json:"departure_time" desc:"Scheduled departure time (local)."`
	ArrivalTime     string  `json:"arrival_time" desc:"Scheduled arrival time (local)."`
	FlightNumber    string  `json:"flight_number" desc:"Flight identifier, e.g. 'AA123'."`
	Aircraft        string  `json:"aircraft" desc:"Aircraft type, e.g. 'Boeing 737'."`
	Price           float64 `json:"price" desc:"Cost of the flight ticket."`
	DurationMinutes int     `json:"duration_minutes" desc:"Approximate flight duration in minutes."`
}

// FlightDetails holds the outbound and inbound flights of a leg.
type FlightDetails struct {
	Outbound FlightLeg `json:"outbound" desc:"Flight details for the outbound journey."`
	Inbound  FlightLeg `json:"inbound" desc:"Flight details for the return journey."`
}

// EstimatedCosts is the itemized cost breakdown of one day.
type EstimatedCosts struct {
	Hotel float64 `json:"hotel" desc:"Daily hotel cost."`
	Lunch float64 `json:"lunch" desc:"Estimated daily lunch cost."`
	// Dinner defaults to zero when not planned.
	Dinner float64 `json:"dinner" desc:"Estimated daily dinner cost."`
	// TotalDayExpense must be an actual computed number, never an
	// arithmetic expression.
	TotalDayExpense float64 `json:"total_day_expense" desc:"Total expense for the day including hotel, meals and activities."`
}

// DaySchedule is the plan for one calendar day of a leg.
type DaySchedule struct {
	Day                 int            `json:"day" desc:"Ordinal index of the day within the trip."`
	Date                string         `json:"day_date" desc:"Calendar date for this day, YYYY-MM-DD."`
	Weather             *DayWeather    `json:"weather" desc:"Weather conditions for this day, null when unknown."`
	Breakfast           string         `json:"breakfast" desc:"Breakfast details or location, with costs if available."`
	MorningActivities   []Activity     `json:"morning_activities" desc:"Planned activities for the morning."`
	Lunch               string         `json:"lunch" desc:"Lunch details or location, with costs if available."`
	AfternoonActivities []Activity     `json:"afternoon_activities" desc:"Planned activities for the afternoon."`
	EveningActivities   []Activity     `json:"evening_activities" desc:"Planned activities for the evening."`
	Dinner              string         `json:"dinner" desc:"Dinner details or location, with costs if available."`
	EstimatedCosts      EstimatedCosts `json:"estimated_costs" desc:"Breakdown of the day's estimated costs."`
}

// Activities counts the distinct planned activities across the day.
func (d DaySchedule) Activities() int {
	return len(d.MorningActivities) + len(d.AfternoonActivities) + len(d.EveningActivities)
}

// SummaryCosts is the trip level cost roll-up of one leg's itinerary.
type SummaryCosts struct {
	HotelStay          float64 `json:"hotel_stay" desc:"Total cost for all hotel nights."`
	FlightCosts        float64 `json:"flight_costs" desc:"Total cost for all flights."`
	TotalDailyExpenses float64 `json:"total_daily_expenses" desc:"Sum of daily activity and meal expenses across all days."`
	TotalTripCosts     float64 `json:"total_trip_costs" desc:"Grand total of flights, hotel and daily expenses."`
	RemainingBudget    float64 `json:"remaining_budget" desc:"Budget left after accounting for all estimated costs."`
}

// TripItinerary is the structured itinerary for one leg. It is produced
// once by the composer and never mutated after composition.
type TripItinerary struct {
	Origin                  string        `json:"origin" desc:"Starting city."`
	Destination             string        `json:"destination" desc:"Destination city."`
	StartDate               string        `json:"start_date" desc:"Leg start date, YYYY-MM-DD."`
	EndDate                 string        `json:"end_date" desc:"Leg end date, YYYY-MM-DD."`
	HotelName               string        `json:"hotel_name" desc:"Name of the hotel the traveler stays at."`
	CheckInTime             string        `json:"check_in_time" desc:"Hotel check-in time, e.g. '3:00 PM'."`
	CheckOutTime            string        `json:"check_out_time" desc:"Hotel check-out time, e.g. '12:00 PM'."`
	HotelPricePerNight      float64       `json:"hotel_price_per_night" desc:"Nightly rate of the chosen hotel."`
	TotalDailyExpenseBudget float64       `json:"total_daily_expense_budget" desc:"Maximum allotted daily expenses for meals and activities."`
	FlightDetails           FlightDetails `json:"flight_details" desc:"Outbound and inbound flight information."`
	Days                    []DaySchedule `json:"days" desc:"Day-by-day schedules."`
	SummaryCosts            SummaryCosts  `json:"summary_costs" desc:"Calculated summary of the leg's total costs."`
	WhatToPack              []string      `json:"what_to_pack" desc:"Packing suggestions for the expected weather."`
	SafetyMeasures          []string      `json:"safety_measures" desc:"Safety or precaution tips for the traveler."`
}

// minDailyActivities is the contract floor for distinct activities per day.
const minDailyActivities = 4

// Validate enforces the semantic invariants which presence checks against
// the schema cannot express.
func (t TripItinerary) Validate() error {
	if len(t.Days) == 0 {
		return SchemaViolationError{Missing: []string{"days"}}
	}
	for i, day := range t.Days {
		if day.Activities() < minDailyActivities {
			return SchemaViolationError{
				Cause: fmt.Errorf("day %v has %v activities, expected at least %v",
					i+1, day.Activities(), minDailyActivities),
			}
		}
	}
	return nil
}

// TripPlan is the assembled multi-leg result of one planning run.
type TripPlan struct {
	ID          string          `json:"id"`
	Query       TravelQuery     `json:"query"`
	Itineraries []TripItinerary `json:"itineraries"`
	Budget      BudgetState     `json:"budget"`
	CreatedAt   string          `json:"created_at"`
}
