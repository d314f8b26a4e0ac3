package planner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
	"github.com/voyago/voyago/internal/compose"
	"github.com/voyago/voyago/internal/models"
)

type fakeAggregator struct {
	gathered []string
}

func (f *fakeAggregator) Gather(ctx context.Context, destination string, start, end time.Time) models.DestinationContext {
	f.gathered = append(f.gathered, destination)
	return models.DestinationContext{Destination: destination}
}

type fakeComposer struct {
	err      error
	composed []compose.Leg
}

func (f *fakeComposer) Compose(ctx context.Context, leg compose.Leg) (models.TripItinerary, error) {
	f.composed = append(f.composed, leg)
	if f.err != nil {
		return models.TripItinerary{}, f.err
	}
	return models.TripItinerary{
		Origin:      leg.Leg.Origin,
		Destination: leg.Leg.Destination,
	}, nil
}

func phoenixBostonQuery(budget *float64) models.TravelQuery {
	return models.TravelQuery{
		Origin:           "Phoenix",
		OriginCode:       "PHX",
		Destinations:     []string{"Boston"},
		DestinationCodes: []string{"BOS"},
		StartDate:        "2026-01-25",
		EndDate:          "2026-01-28",
		Budget:           budget,
	}
}

func newTestPlanner(deals DealSource) (*TripPlanner, *fakeAggregator, *fakeComposer) {
	aggregator := &fakeAggregator{}
	composer := &fakeComposer{}
	p := NewTripPlanner(&fakeGen{}, deals, aggregator, composer)
	p.Now = func() time.Time {
		now, _ := time.Parse(models.DateFormat, "2026-01-20")
		return now
	}
	return p, aggregator, composer
}

func TestPlanQuery(t *testing.T) {
	workingDeals := func() *mockDeals {
		return &mockDeals{
			flights: []models.Flight{{FlightNumber: "AA 100", Price: 400, DepartureToken: "tok"}},
			inbound: []models.Flight{{FlightNumber: "AA 101", Price: 350}},
			hotels:  []models.Hotel{{Name: "Harbor Inn", NightlyRate: 150}},
		}
	}

	t.Run("it should assemble a plan within budget", func(t *testing.T) {
		p, aggregator, composer := newTestPlanner(workingDeals())
		got, err := p.PlanQuery(context.Background(), phoenixBostonQuery(budgetOf(3000)))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.ID == "" {
			t.Error("expected plan to carry an id")
		}
		if len(got.Itineraries) != 1 {
			t.Fatalf("expected 1 itinerary, got: %v", len(got.Itineraries))
		}
		testboil.FailTestIfDiff(t, got.Itineraries[0].Destination, "Boston")
		// 3000 - 750 flights - 450 hotel over 3 nights
		if got.Budget.Remaining != 1800 {
			t.Errorf("expected remaining 1800, got: %v", got.Budget.Remaining)
		}
		testboil.FailTestIfDiff(t, len(aggregator.gathered), 1)
		if composer.composed[0].Remaining != 1800 {
			t.Errorf("expected composer to see the final remaining budget, got: %v", composer.composed[0].Remaining)
		}
	})

	t.Run("it should memoize destination context per destination", func(t *testing.T) {
		p, aggregator, _ := newTestPlanner(workingDeals())
		query := phoenixBostonQuery(nil)
		// out and back again: Boston appears twice as destination
		query.Destinations = []string{"Boston", "Boston"}
		query.DestinationCodes = []string{"BOS", "BOS"}
		query.EndDate = "2026-01-31"
		if _, err := p.PlanQuery(context.Background(), query); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testboil.FailTestIfDiff(t, len(aggregator.gathered), 1)
	})

	t.Run("it should wrap a pricing failure with its leg", func(t *testing.T) {
		p, aggregator, composer := newTestPlanner(&mockDeals{})
		_, err := p.PlanQuery(context.Background(), phoenixBostonQuery(budgetOf(3000)))
		var legErr models.LegError
		if !errors.As(err, &legErr) {
			t.Fatalf("expected LegError, got: %v", err)
		}
		testboil.FailTestIfDiff(t, legErr.Leg, 1)
		testboil.FailTestIfDiff(t, legErr.Component, "deals")
		// no context gathering or generation on an aborted plan
		if len(aggregator.gathered) != 0 || len(composer.composed) != 0 {
			t.Error("expected no downstream work after abort")
		}
	})

	t.Run("it should discard the plan on composer failure", func(t *testing.T) {
		p, _, composer := newTestPlanner(workingDeals())
		composer.err = models.SchemaViolationError{Missing: []string{"days"}}
		_, err := p.PlanQuery(context.Background(), phoenixBostonQuery(budgetOf(3000)))
		var legErr models.LegError
		if !errors.As(err, &legErr) {
			t.Fatalf("expected LegError, got: %v", err)
		}
		testboil.FailTestIfDiff(t, legErr.Component, "composer")
	})

	t.Run("it should stop before composing when cancelled", func(t *testing.T) {
		p, _, composer := newTestPlanner(workingDeals())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := p.PlanQuery(ctx, phoenixBostonQuery(budgetOf(3000)))
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got: %v", err)
		}
		if len(composer.composed) != 0 {
			t.Error("expected no composition after cancellation")
		}
	})
}

func TestPlan(t *testing.T) {
	t.Run("it should parse free text before planning", func(t *testing.T) {
		deals := &mockDeals{
			flights: []models.Flight{{Price: 400}},
			hotels:  []models.Hotel{{NightlyRate: 150}},
		}
		p, _, _ := newTestPlanner(deals)
		p.Gen = &fakeGen{structuredReply: `{
			"origin": "Phoenix", "origin_iata": "PHX",
			"destinations": ["Boston"], "destination_iata": ["BOS"],
			"start_date": "2026-01-25", "end_date": "2026-01-28",
			"budget": 3000
		}`}
		got, err := p.Plan(context.Background(), "phoenix to boston under 3000$")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testboil.FailTestIfDiff(t, got.Query.Origin, "Phoenix")
	})
}
