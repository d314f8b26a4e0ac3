package gen

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/voyago/voyago/internal/models"
)

var fenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// StripFences removes a surrounding markdown code fence from a generation
// reply, if one is present.
func StripFences(reply string) string {
	if match := fenceRe.FindStringSubmatch(reply); match != nil {
		return match[1]
	}
	return strings.TrimSpace(reply)
}

// Parse is the single boundary between free-form generation output and the
// typed core. It strips fence markup, decodes the document, verifies every
// schema-required field is present and only then unmarshals into out. Any
// failure is a models.SchemaViolationError, no defaults are invented.
func Parse(reply string, schema *models.Schema, out any) error {
	text := StripFences(reply)
	var doc any
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		// Some models pad the document with prose. Retry on the
		// outermost braces before giving up.
		start := strings.Index(text, "{")
		end := strings.LastIndex(text, "}")
		if start == -1 || end <= start {
			return models.SchemaViolationError{Cause: fmt.Errorf("no JSON document in reply: %w", err)}
		}
		if err := json.Unmarshal([]byte(text[start:end+1]), &doc); err != nil {
			return models.SchemaViolationError{Cause: fmt.Errorf("failed to decode reply: %w", err)}
		}
		text = text[start : end+1]
	}
	if missing := models.CheckRequired(schema, doc); len(missing) > 0 {
		return models.SchemaViolationError{Missing: missing}
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return models.SchemaViolationError{Cause: fmt.Errorf("failed to unmarshal into %T: %w", out, err)}
	}
	return nil
}

// GenerateStructured runs one generation call and parses the reply against
// the schema into out.
func (c *Completer) GenerateStructured(ctx context.Context, system, prompt string, schema *models.Schema, out any) error {
	reply, err := c.Complete(ctx, system, prompt)
	if err != nil {
		return fmt.Errorf("failed to complete: %w", err)
	}
	return Parse(reply, schema, out)
}
