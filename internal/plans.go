package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/debug"
	"github.com/voyago/voyago/internal/planner"
)

// plansRunner lists saved plans, or prints a single one when id is set.
type plansRunner struct {
	configDir string
	id        string
	raw       bool
}

func (p *plansRunner) Run(ctx context.Context) error {
	if p.id != "" {
		plan, err := planner.LoadPlan(p.configDir, p.id)
		if err != nil {
			return fmt.Errorf("failed to load plan: %w", err)
		}
		if p.raw {
			out, err := json.Marshal(plan)
			if err != nil {
				return fmt.Errorf("failed to marshal plan: %w", err)
			}
			fmt.Println(string(out))
			return nil
		}
		fmt.Println(debug.IndentedJsonFmt(plan))
		return nil
	}

	plans, err := planner.ListPlans(p.configDir)
	if err != nil {
		return fmt.Errorf("failed to list plans: %w", err)
	}
	if len(plans) == 0 {
		ancli.Noticef("no saved plans, create one with 'voyago plan'\n")
		return nil
	}
	for _, plan := range plans {
		fmt.Printf("%v  %v  %v -> %v\n", plan.ID, plan.CreatedAt, plan.Query.Origin, strings.Join(plan.Query.Destinations, " -> "))
	}
	return nil
}
