package gen

import (
	"errors"
	"testing"

	"github.com/voyago/voyago/internal/models"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
)

type testDoc struct {
	Name  string   `json:"name"`
	Count int      `json:"count"`
	Note  *string  `json:"note"`
	Tags  []string `json:"tags"`
}

func Test_StripFences(t *testing.T) {
	t.Run("it should strip json fences", func(t *testing.T) {
		got := StripFences("```json\n{\"a\": 1}\n```")
		testboil.FailTestIfDiff(t, got, `{"a": 1}`)
	})

	t.Run("it should strip plain fences", func(t *testing.T) {
		got := StripFences("```\n{\"a\": 1}\n```")
		testboil.FailTestIfDiff(t, got, `{"a": 1}`)
	})

	t.Run("it should leave unfenced replies alone", func(t *testing.T) {
		got := StripFences("  {\"a\": 1}\n")
		testboil.FailTestIfDiff(t, got, `{"a": 1}`)
	})
}

func Test_Parse(t *testing.T) {
	schema := models.SchemaFor(testDoc{})

	t.Run("it should parse a conformant document", func(t *testing.T) {
		var out testDoc
		err := Parse(`{"name": "x", "count": 2, "note": null, "tags": ["a"]}`, schema, &out)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testboil.FailTestIfDiff(t, out.Name, "x")
		testboil.FailTestIfDiff(t, out.Count, 2)
	})

	t.Run("it should reject a document missing required fields", func(t *testing.T) {
		var out testDoc
		err := Parse(`{"name": "x"}`, schema, &out)
		var sve models.SchemaViolationError
		if !errors.As(err, &sve) {
			t.Fatalf("expected SchemaViolationError, got: %v", err)
		}
		if len(sve.Missing) != 2 {
			t.Fatalf("expected count and tags missing, got: %v", sve.Missing)
		}
	})

	t.Run("it should recover a document padded with prose", func(t *testing.T) {
		var out testDoc
		reply := `Here is your document: {"name": "x", "count": 1, "tags": []} enjoy!`
		if err := Parse(reply, schema, &out); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testboil.FailTestIfDiff(t, out.Count, 1)
	})

	t.Run("it should reject replies without JSON", func(t *testing.T) {
		var out testDoc
		err := Parse("sorry, I cannot help with that", schema, &out)
		var sve models.SchemaViolationError
		if !errors.As(err, &sve) {
			t.Fatalf("expected SchemaViolationError, got: %v", err)
		}
	})
}
