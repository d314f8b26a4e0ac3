package planner

import (
	"fmt"

	"github.com/voyago/voyago/internal/models"
)

// BuildLegs partitions the trip into one leg per destination. Nights are
// split evenly, the remainder lands on the earliest legs one night at a
// time. The final leg's end date is forced to the trip's end date so the
// legs always cover the full range.
func BuildLegs(query models.TravelQuery) ([]models.Leg, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid travel query: %w", err)
	}
	start, _ := query.Start()
	end, _ := query.End()
	sequence := append([]string{query.Origin}, query.Destinations...)
	codes := append([]string{query.OriginCode}, query.DestinationCodes...)
	numLegs := len(query.Destinations)
	totalNights := query.Nights()
	nightsPerLeg := totalNights / numLegs
	extraNights := totalNights % numLegs

	legs := make([]models.Leg, 0, numLegs)
	for i := 0; i < numLegs; i++ {
		legStart := start.AddDate(0, 0, i*nightsPerLeg+min(i, extraNights))
		legEnd := legStart.AddDate(0, 0, nightsPerLeg)
		if i < extraNights {
			legEnd = legEnd.AddDate(0, 0, 1)
		}
		if i == numLegs-1 {
			legEnd = end
		}
		leg := models.Leg{
			Origin:      sequence[i],
			Destination: sequence[i+1],
			StartDate:   legStart,
			EndDate:     legEnd,
		}
		if len(query.DestinationCodes) == len(query.Destinations) {
			leg.OriginCode = codes[i]
			leg.DestinationCode = codes[i+1]
		}
		legs = append(legs, leg)
	}
	return legs, nil
}
