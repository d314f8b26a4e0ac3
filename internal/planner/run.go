package planner

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/debug"
)

// Runner executes one plan request from the command line and prints the
// result.
type Runner struct {
	Planner *TripPlanner
	Conf    Configurations
	Query   string
}

func (r *Runner) Run(ctx context.Context) error {
	plan, err := r.Planner.Plan(ctx, r.Query)
	if err != nil {
		return fmt.Errorf("failed to plan trip: %w", err)
	}
	if r.Conf.SavePlans {
		planPath, err := SavePlan(r.Conf.ConfigDir, &plan)
		if err != nil {
			ancli.Warnf("failed to save plan: %v\n", err)
		} else {
			ancli.Okf("saved plan to: '%v'\n", planPath)
		}
	}
	if r.Conf.Raw {
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
