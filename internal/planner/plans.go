package planner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/voyago/voyago/internal/models"
	"github.com/voyago/voyago/internal/utils"
)

func plansDir(configDir string) string {
	return filepath.Join(configDir, "plans")
}

// SavePlan persists a finished plan as JSON under the plans directory,
// returning the file path.
func SavePlan(configDir string, plan *models.TripPlan) (string, error) {
	dir := plansDir(configDir)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create plans directory: %w", err)
	}
	planPath := filepath.Join(dir, plan.ID+".json")
	if err := utils.WriteFile(planPath, plan); err != nil {
		return "", fmt.Errorf("failed to save plan: %w", err)
	}
	return planPath, nil
}

// ListPlans returns all saved plans, most recent first.
func ListPlans(configDir string) ([]models.TripPlan, error) {
	entries, err := os.ReadDir(plansDir(configDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read plans directory: %w", err)
	}
	var plans []models.TripPlan
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		var plan models.TripPlan
		if err := utils.ReadAndUnmarshal(filepath.Join(plansDir(configDir), entry.Name()), &plan); err != nil {
			return nil, fmt.Errorf("failed to read plan '%v': %w", entry.Name(), err)
		}
		plans = append(plans, plan)
	}
	sort.Slice(plans, func(i, j int) bool {
		return plans[i].CreatedAt > plans[j].CreatedAt
	})
	return plans, nil
}

// LoadPlan fetches one saved plan by its id.
func LoadPlan(configDir, id string) (models.TripPlan, error) {
	var plan models.TripPlan
	planPath := filepath.Join(plansDir(configDir), id+".json")
	if err := utils.ReadAndUnmarshal(planPath, &plan); err != nil {
		return models.TripPlan{}, fmt.Errorf("failed to load plan '%v': %w", id, err)
	}
	return plan, nil
}
