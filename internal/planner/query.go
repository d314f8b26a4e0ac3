package planner

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/voyago/voyago/internal/models"
)

// Generator produces schema-conformant structured data from a prompt.
type Generator interface {
	GenerateStructured(ctx context.Context, system, prompt string, schema *models.Schema, out any) error
	Complete(ctx context.Context, system, user string) (string, error)
}

const querySystemPrompt = "You are a precise information extractor that returns only valid JSON matching the provided schema."

// ParseQuery extracts a structured TravelQuery from the user's free text,
// anchored on today's date so relative phrasing like 'next friday'
// resolves correctly. Missing airport codes are filled in afterwards.
func ParseQuery(ctx context.Context, gen Generator, freeText string, now time.Time) (models.TravelQuery, error) {
	schema := models.SchemaFor(models.TravelQuery{})
	prompt := fmt.Sprintf(
		"Assume today's date is %v.\n\n"+
			"Extract travel details from the sentence below and return JSON matching the provided schema. "+
			"Dates must be YYYY-MM-DD. Leave the budget null when none is mentioned.\n\n"+
			"JSON Schema:\n%v\n\n"+
			"Input: %q\n\nOutput:",
		now.Format(models.DateFormat), schema.JSON(), freeText)
	var query models.TravelQuery
	if err := gen.GenerateStructured(ctx, querySystemPrompt, prompt, schema, &query); err != nil {
		return models.TravelQuery{}, fmt.Errorf("failed to parse travel query: %w", err)
	}
	if err := query.Validate(); err != nil {
		return models.TravelQuery{}, fmt.Errorf("parsed travel query is invalid: %w", err)
	}
	if err := fillAirportCodes(ctx, gen, &query); err != nil {
		return models.TravelQuery{}, err
	}
	return query, nil
}

var iataRe = regexp.MustCompile(`\b[A-Z]{3}\b`)

// fillAirportCodes resolves any airport code the extraction left blank.
func fillAirportCodes(ctx context.Context, gen Generator, query *models.TravelQuery) error {
	if query.OriginCode == "" {
		code, err := lookupIATA(ctx, gen, query.Origin)
		if err != nil {
			return err
		}
		query.OriginCode = code
	}
	if len(query.DestinationCodes) != len(query.Destinations) {
		query.DestinationCodes = make([]string, len(query.Destinations))
	}
	for i, destination := range query.Destinations {
		if query.DestinationCodes[i] != "" {
			continue
		}
		code, err := lookupIATA(ctx, gen, destination)
		if err != nil {
			return err
		}
		query.DestinationCodes[i] = code
	}
	return nil
}

func lookupIATA(ctx context.Context, gen Generator, city string) (string, error) {
	reply, err := gen.Complete(ctx,
		"You are a knowledgeable assistant that provides accurate IATA airport codes.",
		fmt.Sprintf("What is the IATA code for the main international airport in %v? Reply with the code only.", city))
	if err != nil {
		return "", fmt.Errorf("failed to look up airport code for '%v': %w", city, err)
	}
	code := iataRe.FindString(reply)
	if code == "" {
		return "", fmt.Errorf("no airport code found in reply for '%v': %w", city, models.ErrNotFound)
	}
	ancli.Okf("resolved airport code for '%v': %v\n", city, code)
	return code, nil
}
