package deals

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
	"github.com/voyago/voyago/internal/models"
)

type mockFlights struct {
	flights []models.Flight
	inbound []models.Flight
	err     error
}

func (m *mockFlights) SearchFlights(ctx context.Context, leg models.Leg) ([]models.Flight, error) {
	return m.flights, m.err
}

func (m *mockFlights) SearchInbound(ctx context.Context, leg models.Leg, token string) ([]models.Flight, error) {
	return m.inbound, m.err
}

type mockHotels struct {
	hotels []models.Hotel
	err    error
}

func (m *mockHotels) SearchHotels(ctx context.Context, destination string, checkIn, checkOut time.Time, adults int) ([]models.Hotel, error) {
	return m.hotels, m.err
}

func twoNightLeg(t *testing.T) models.Leg {
	t.Helper()
	start, _ := time.Parse(models.DateFormat, "2026-09-10")
	return models.Leg{
		Destination: "Boston",
		StartDate:   start,
		EndDate:     start.AddDate(0, 0, 2),
	}
}

func floatPtr(f float64) *float64 { return &f }

func TestFindFlights(t *testing.T) {
	t.Run("it should rank cheapest first keeping source order on ties", func(t *testing.T) {
		finder := NewFinder(&mockFlights{flights: []models.Flight{
			{FlightNumber: "A", Price: 300},
			{FlightNumber: "B", Price: 150},
			{FlightNumber: "C", Price: 150},
		}}, &mockHotels{}, 2)
		got := finder.FindFlights(context.Background(), twoNightLeg(t))
		testboil.FailTestIfDiff(t, got[0].FlightNumber, "B")
		testboil.FailTestIfDiff(t, got[1].FlightNumber, "C")
		testboil.FailTestIfDiff(t, got[2].FlightNumber, "A")
	})

	t.Run("it should degrade transport failure to empty", func(t *testing.T) {
		finder := NewFinder(&mockFlights{err: errors.New("timeout")}, &mockHotels{}, 2)
		got := finder.FindFlights(context.Background(), twoNightLeg(t))
		if got != nil {
			t.Fatalf("expected nil, got: %+v", got)
		}
	})
}

func TestFindHotels(t *testing.T) {
	hotels := []models.Hotel{
		{Name: "Pricey Palace", NightlyRate: 400, Amenities: []string{"Pet-friendly"}},
		{Name: "Budget Bunk", NightlyRate: 80},
		{Name: "Mid Manor", NightlyRate: 150, Type: "Vacation rental", Amenities: []string{"Pet-friendly"}},
	}

	t.Run("it should rank cheapest first", func(t *testing.T) {
		finder := NewFinder(&mockFlights{}, &mockHotels{hotels: hotels}, 2)
		got := finder.FindHotels(context.Background(), twoNightLeg(t), nil, nil)
		testboil.FailTestIfDiff(t, got[0].Name, "Budget Bunk")
		testboil.FailTestIfDiff(t, got[2].Name, "Pricey Palace")
	})

	t.Run("it should bound total stay by budget", func(t *testing.T) {
		finder := NewFinder(&mockFlights{}, &mockHotels{hotels: hotels}, 2)
		// 2 nights: 400*2 exceeds 500, 150*2 and 80*2 fit
		got := finder.FindHotels(context.Background(), twoNightLeg(t), floatPtr(500), nil)
		if len(got) != 2 {
			t.Fatalf("expected 2 hotels within budget, got: %+v", got)
		}
		testboil.FailTestIfDiff(t, got[0].Name, "Budget Bunk")
	})

	t.Run("it should filter on pet friendliness", func(t *testing.T) {
		finder := NewFinder(&mockFlights{}, &mockHotels{hotels: hotels}, 2)
		got := finder.FindHotels(context.Background(), twoNightLeg(t), nil, &models.AccommodationPreferences{PetFriendly: true})
		if len(got) != 2 {
			t.Fatalf("expected 2 pet friendly hotels, got: %+v", got)
		}
		for _, h := range got {
			if h.Name == "Budget Bunk" {
				t.Fatal("expected Budget Bunk to be filtered out")
			}
		}
	})

	t.Run("it should filter on entire room", func(t *testing.T) {
		finder := NewFinder(&mockFlights{}, &mockHotels{hotels: hotels}, 2)
		got := finder.FindHotels(context.Background(), twoNightLeg(t), nil, &models.AccommodationPreferences{EntireRoom: true})
		if len(got) != 1 || got[0].Name != "Mid Manor" {
			t.Fatalf("expected only Mid Manor, got: %+v", got)
		}
	})

	t.Run("it should degrade transport failure to empty", func(t *testing.T) {
		finder := NewFinder(&mockFlights{}, &mockHotels{err: errors.New("boom")}, 2)
		got := finder.FindHotels(context.Background(), twoNightLeg(t), nil, nil)
		if got != nil {
			t.Fatalf("expected nil, got: %+v", got)
		}
	})
}

func TestFindInbound(t *testing.T) {
	t.Run("it should rank inbound cheapest first", func(t *testing.T) {
		finder := NewFinder(&mockFlights{inbound: []models.Flight{
			{FlightNumber: "Y", Price: 220},
			{FlightNumber: "X", Price: 110},
		}}, &mockHotels{}, 2)
		got := finder.FindInbound(context.Background(), twoNightLeg(t), "tok")
		testboil.FailTestIfDiff(t, got[0].FlightNumber, "X")
	})
}
