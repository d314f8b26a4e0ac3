package planner

import (
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
	"github.com/voyago/voyago/internal/models"
)

func TestPlanPersistence(t *testing.T) {
	t.Run("it should save and load a plan by id", func(t *testing.T) {
		configDir := t.TempDir()
		plan := models.TripPlan{
			ID:        "11111111-2222-3333-4444-555555555555",
			Query:     phoenixBostonQuery(nil),
			CreatedAt: "2026-01-20T10:00:00Z",
		}
		if _, err := SavePlan(configDir, &plan); err != nil {
			t.Fatalf("failed to save plan: %v", err)
		}
		got, err := LoadPlan(configDir, plan.ID)
		if err != nil {
			t.Fatalf("failed to load plan: %v", err)
		}
		testboil.FailTestIfDiff(t, got.Query.Origin, "Phoenix")
	})

	t.Run("it should list plans most recent first", func(t *testing.T) {
		configDir := t.TempDir()
		older := models.TripPlan{ID: "a", CreatedAt: "2026-01-19T10:00:00Z"}
		newer := models.TripPlan{ID: "b", CreatedAt: "2026-01-20T10:00:00Z"}
		for _, plan := range []models.TripPlan{older, newer} {
			if _, err := SavePlan(configDir, &plan); err != nil {
				t.Fatalf("failed to save plan: %v", err)
			}
		}
		got, err := ListPlans(configDir)
		if err != nil {
			t.Fatalf("failed to list plans: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 plans, got: %v", len(got))
		}
		testboil.FailTestIfDiff(t, got[0].ID, "b")
	})

	t.Run("it should return nil when nothing was saved", func(t *testing.T) {
		got, err := ListPlans(t.TempDir())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Fatalf("expected nil, got: %+v", got)
		}
	})
}
