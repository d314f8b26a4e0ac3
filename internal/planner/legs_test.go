package planner

import (
	"testing"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
	"github.com/voyago/voyago/internal/models"
)

func TestBuildLegs(t *testing.T) {
	t.Run("it should give the whole range to a single leg", func(t *testing.T) {
		legs, err := BuildLegs(models.TravelQuery{
			Origin:           "Phoenix",
			OriginCode:       "PHX",
			Destinations:     []string{"Boston"},
			DestinationCodes: []string{"BOS"},
			StartDate:        "2026-01-25",
			EndDate:          "2026-01-28",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(legs) != 1 {
			t.Fatalf("expected 1 leg, got: %v", len(legs))
		}
		testboil.FailTestIfDiff(t, legs[0].Origin, "Phoenix")
		testboil.FailTestIfDiff(t, legs[0].DestinationCode, "BOS")
		testboil.FailTestIfDiff(t, legs[0].Nights(), 3)
	})

	t.Run("it should give extra nights to the earliest legs", func(t *testing.T) {
		// 7 nights over 2 legs: first leg 4 nights, second 3
		legs, err := BuildLegs(models.TravelQuery{
			Origin:           "Phoenix",
			OriginCode:       "PHX",
			Destinations:     []string{"Boston", "Chicago"},
			DestinationCodes: []string{"BOS", "ORD"},
			StartDate:        "2026-09-01",
			EndDate:          "2026-09-08",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testboil.FailTestIfDiff(t, legs[0].Nights(), 4)
		testboil.FailTestIfDiff(t, legs[1].Nights(), 3)
	})

	t.Run("it should keep legs contiguous and cover the trip", func(t *testing.T) {
		legs, err := BuildLegs(models.TravelQuery{
			Origin:           "Phoenix",
			OriginCode:       "PHX",
			Destinations:     []string{"Boston", "Chicago", "Denver"},
			DestinationCodes: []string{"BOS", "ORD", "DEN"},
			StartDate:        "2026-09-01",
			EndDate:          "2026-09-11",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		totalNights := 0
		for i, leg := range legs {
			totalNights += leg.Nights()
			if i > 0 && !leg.StartDate.Equal(legs[i-1].EndDate) {
				t.Errorf("leg %v does not start where leg %v ends", i, i-1)
			}
		}
		testboil.FailTestIfDiff(t, totalNights, 10)
		end, _ := time.Parse(models.DateFormat, "2026-09-11")
		if !legs[len(legs)-1].EndDate.Equal(end) {
			t.Errorf("expected final leg to end at trip end, got: %v", legs[len(legs)-1].EndDate)
		}
	})

	t.Run("it should chain destinations as consecutive origins", func(t *testing.T) {
		legs, err := BuildLegs(models.TravelQuery{
			Origin:           "Phoenix",
			OriginCode:       "PHX",
			Destinations:     []string{"Boston", "Chicago"},
			DestinationCodes: []string{"BOS", "ORD"},
			StartDate:        "2026-09-01",
			EndDate:          "2026-09-08",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testboil.FailTestIfDiff(t, legs[1].Origin, "Boston")
		testboil.FailTestIfDiff(t, legs[1].OriginCode, "BOS")
		testboil.FailTestIfDiff(t, legs[1].Destination, "Chicago")
	})

	t.Run("it should reject an invalid query", func(t *testing.T) {
		_, err := BuildLegs(models.TravelQuery{Origin: "Phoenix"})
		if err == nil {
			t.Fatal("expected error on query without destinations")
		}
	})
}
