// Package planner orchestrates the full trip pipeline: parse the request,
// split it into legs, price each leg against the running budget, gather
// destination context and compose the day-by-day itineraries.
package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/google/uuid"
	"github.com/voyago/voyago/internal/compose"
	"github.com/voyago/voyago/internal/models"
)

type Aggregator interface {
	Gather(ctx context.Context, destination string, start, end time.Time) models.DestinationContext
}

type Composer interface {
	Compose(ctx context.Context, leg compose.Leg) (models.TripItinerary, error)
}

type DistanceEstimator interface {
	FlightDistanceKM(ctx context.Context, origin, destination string) (float64, error)
}

type TripPlanner struct {
	Gen        Generator
	Allocator  *Allocator
	Aggregator Aggregator
	Composer   Composer
	// Distance, when set, adds a great circle figure to each leg summary
	Distance DistanceEstimator

	// Now is overridable so date-anchored parsing stays testable
	Now func() time.Time
}

func NewTripPlanner(gen Generator, deals DealSource, aggregator Aggregator, composer Composer) *TripPlanner {
	return &TripPlanner{
		Gen:        gen,
		Allocator:  &Allocator{Deals: deals},
		Aggregator: aggregator,
		Composer:   composer,
		Now:        time.Now,
	}
}

// Plan runs the whole pipeline for one free text request. Legs are priced
// strictly in order since each hotel search is bounded by what earlier
// legs left of the budget. Any leg failure discards the partial state,
// a partial itinerary is never returned.
func (p *TripPlanner) Plan(ctx context.Context, freeText string) (models.TripPlan, error) {
	query, err := ParseQuery(ctx, p.Gen, freeText, p.Now())
	if err != nil {
		return models.TripPlan{}, err
	}
	return p.PlanQuery(ctx, query)
}

// PlanQuery runs the pipeline for an already structured query.
func (p *TripPlanner) PlanQuery(ctx context.Context, query models.TravelQuery) (models.TripPlan, error) {
	legs, err := BuildLegs(query)
	if err != nil {
		return models.TripPlan{}, err
	}
	budget := models.NewBudgetState(query.Budget)

	pricedLegs := make([]PricedLeg, 0, len(legs))
	for i, leg := range legs {
		if err := ctx.Err(); err != nil {
			return models.TripPlan{}, fmt.Errorf("planning cancelled: %w", err)
		}
		priced, err := p.Allocator.PriceLeg(ctx, leg, budget, query.Preferences)
		if err != nil {
			return models.TripPlan{}, models.LegError{Leg: i + 1, Component: "deals", Err: err}
		}
		if p.Distance != nil {
			if km, err := p.Distance.FlightDistanceKM(ctx, leg.Origin, leg.Destination); err == nil {
				ancli.Okf("straight line distance %v -> %v: %.2f km\n", leg.Origin, leg.Destination, km)
			}
		}
		pricedLegs = append(pricedLegs, priced)
	}

	// Hotel selection bounds against the remaining budget per leg, so in
	// principle this cannot trigger. It stays as a safety net so a plan
	// never reaches generation with an overrun budget.
	if budget.Exceeded() {
		return models.TripPlan{}, models.BudgetExceededError{
			Budget:     *query.Budget,
			FlightCost: budget.FlightCost,
			HotelCost:  budget.HotelCost,
		}
	}
	ancli.Okf("total flight cost: $%.2f, total hotel cost: $%.2f, remaining budget: $%.2f\n",
		budget.FlightCost, budget.HotelCost, budget.Remaining)

	contexts := map[string]models.DestinationContext{}
	itineraries := make([]models.TripItinerary, 0, len(pricedLegs))
	for i, priced := range pricedLegs {
		if err := ctx.Err(); err != nil {
			return models.TripPlan{}, fmt.Errorf("planning cancelled: %w", err)
		}
		dc, gathered := contexts[priced.Leg.Destination]
		if !gathered {
			dc = p.Aggregator.Gather(ctx, priced.Leg.Destination, priced.Leg.StartDate, priced.Leg.EndDate)
			contexts[priced.Leg.Destination] = dc
		}
		itinerary, err := p.Composer.Compose(ctx, compose.Leg{
			Leg:       priced.Leg,
			Flight:    priced.Flight,
			Inbound:   priced.Inbound,
			Hotel:     priced.Hotel,
			Remaining: budget.Remaining,
			Context:   dc,
		})
		if err != nil {
			return models.TripPlan{}, models.LegError{Leg: i + 1, Component: "composer", Err: err}
		}
		itineraries = append(itineraries, itinerary)
	}

	return models.TripPlan{
		ID:          uuid.NewString(),
		Query:       query,
		Itineraries: itineraries,
		Budget:      *budget,
		CreatedAt:   p.Now().UTC().Format(time.RFC3339),
	}, nil
}
