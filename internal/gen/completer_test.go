package gen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
)

func newTestCompleter(t *testing.T, handler http.HandlerFunc) *Completer {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	t.Setenv("TEST_GEN_API_KEY", "test-key")
	c := Default
	c.URL = srv.URL
	if err := c.Setup("TEST_GEN_API_KEY", "DEBUG_GEN"); err != nil {
		t.Fatalf("failed to setup completer: %v", err)
	}
	return &c
}

func Test_Completer_Complete(t *testing.T) {
	t.Run("it should return the assistant reply", func(t *testing.T) {
		var gotAuth string
		var gotReq request
		c := newTestCompleter(t, func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			json.NewDecoder(r.Body).Decode(&gotReq)
			json.NewEncoder(w).Encode(chatCompletion{
				Choices: []choice{{Message: message{Role: "assistant", Content: "hello"}}},
			})
		})

		got, err := c.Complete(context.Background(), "sys", "user prompt")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testboil.FailTestIfDiff(t, got, "hello")
		testboil.FailTestIfDiff(t, gotAuth, "Bearer test-key")
		testboil.FailTestIfDiff(t, len(gotReq.Messages), 2)
		testboil.FailTestIfDiff(t, gotReq.Messages[0].Role, "system")
		testboil.FailTestIfDiff(t, gotReq.Messages[1].Content, "user prompt")
	})

	t.Run("it should error on non-200 responses", func(t *testing.T) {
		c := newTestCompleter(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
		})
		if _, err := c.Complete(context.Background(), "sys", "user"); err == nil {
			t.Fatal("expected error on 429")
		}
	})

	t.Run("it should error on empty choices", func(t *testing.T) {
		c := newTestCompleter(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(chatCompletion{})
		})
		if _, err := c.Complete(context.Background(), "sys", "user"); err == nil {
			t.Fatal("expected error on empty choices")
		}
	})
}

func Test_Completer_Setup(t *testing.T) {
	t.Run("it should fail without api key", func(t *testing.T) {
		t.Setenv("TEST_GEN_MISSING_KEY", "")
		c := Default
		if err := c.Setup("TEST_GEN_MISSING_KEY", "DEBUG_GEN"); err == nil {
			t.Fatal("expected error on missing api key")
		}
	})
}
