package serp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
	"github.com/voyago/voyago/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	t.Setenv("SERPAPI_API_KEY", "test-key")
	client := Default
	client.URL = server.URL
	if err := client.Setup(); err != nil {
		t.Fatalf("failed to setup client: %v", err)
	}
	return &client
}

func testLeg(t *testing.T) models.Leg {
	t.Helper()
	start, _ := time.Parse(models.DateFormat, "2026-09-10")
	end, _ := time.Parse(models.DateFormat, "2026-09-14")
	return models.Leg{
		Origin:          "Phoenix",
		OriginCode:      "PHX",
		Destination:     "Boston",
		DestinationCode: "BOS",
		StartDate:       start,
		EndDate:         end,
	}
}

func TestSetup(t *testing.T) {
	t.Run("it should error on missing api key", func(t *testing.T) {
		t.Setenv("SERPAPI_API_KEY", "")
		client := Default
		if err := client.Setup(); err == nil {
			t.Fatal("expected error on missing api key")
		}
	})
}

func TestSearchFlights(t *testing.T) {
	flightsJSON := `{
		"best_flights": [
			{
				"flights": [{
					"departure_airport": {"name": "Phoenix Sky Harbor", "id": "PHX", "time": "2026-09-10 08:15"},
					"arrival_airport": {"name": "Boston Logan", "id": "BOS", "time": "2026-09-10 16:40"},
					"duration": 285,
					"airplane": "Boeing 737",
					"travel_class": "Economy",
					"flight_number": "AA 100"
				}],
				"price": 412,
				"departure_token": "tok-0"
			}
		],
		"other_flights": []
	}`

	t.Run("it should send flight search parameters", func(t *testing.T) {
		var gotQuery string
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.RawQuery
			w.Write([]byte(flightsJSON))
		})
		_, err := client.SearchFlights(context.Background(), testLeg(t))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{
			"engine=google_flights",
			"departure_id=PHX",
			"arrival_id=BOS",
			"outbound_date=2026-09-10",
			"return_date=2026-09-14",
			"api_key=test-key",
		} {
			if !strings.Contains(gotQuery, want) {
				t.Errorf("expected query to contain: %v, got: %v", want, gotQuery)
			}
		}
	})

	t.Run("it should extract the first segment of each option", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(flightsJSON))
		})
		got, err := client.SearchFlights(context.Background(), testLeg(t))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("expected 1 flight, got: %v", len(got))
		}
		testboil.FailTestIfDiff(t, got[0].Departure, "Phoenix Sky Harbor (PHX)")
		testboil.FailTestIfDiff(t, got[0].Arrival, "Boston Logan (BOS)")
		testboil.FailTestIfDiff(t, got[0].FlightNumber, "AA 100")
		testboil.FailTestIfDiff(t, got[0].DepartureToken, "tok-0")
		if got[0].Price != 412 {
			t.Errorf("expected price 412, got: %v", got[0].Price)
		}
	})

	t.Run("it should fall back to other flights", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{
				"best_flights": [],
				"other_flights": [{
					"flights": [{
						"departure_airport": {"name": "A", "id": "AAA", "time": "t0"},
						"arrival_airport": {"name": "B", "id": "BBB", "time": "t1"},
						"duration": 100
					}],
					"price": 99
				}]
			}`))
		})
		got, err := client.SearchFlights(context.Background(), testLeg(t))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0].Price != 99 {
			t.Fatalf("expected fallback flight at price 99, got: %+v", got)
		}
	})

	t.Run("it should error on non-OK status", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusUnauthorized)
		})
		_, err := client.SearchFlights(context.Background(), testLeg(t))
		if err == nil {
			t.Fatal("expected error on unauthorized status")
		}
	})
}

func TestSearchInbound(t *testing.T) {
	t.Run("it should forward the departure token", func(t *testing.T) {
		var gotToken string
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotToken = r.URL.Query().Get("departure_token")
			w.Write([]byte(`{"best_flights": [], "other_flights": []}`))
		})
		_, err := client.SearchInbound(context.Background(), testLeg(t), "tok-123")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testboil.FailTestIfDiff(t, gotToken, "tok-123")
	})
}

func TestSearchHotels(t *testing.T) {
	hotelsJSON := `{
		"properties": [
			{
				"name": "Harbor Inn",
				"type": "hotel",
				"check_in_time": "3:00 PM",
				"check_out_time": "11:00 AM",
				"rate_per_night": {"lowest": "$189", "extracted_lowest": 189},
				"total_rate": {"lowest": "$756", "extracted_lowest": 756},
				"overall_rating": 4.4,
				"amenities": ["Free Wi-Fi", "Pet-friendly"],
				"gps_coordinates": {"latitude": 42.36, "longitude": -71.05},
				"address": "1 Wharf St, Boston"
			},
			{
				"name": "Budget Stay",
				"rate_per_night": {"lowest": "$1,040"}
			}
		]
	}`

	t.Run("it should extract hotel details", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(hotelsJSON))
		})
		checkIn, _ := time.Parse(models.DateFormat, "2026-09-10")
		checkOut, _ := time.Parse(models.DateFormat, "2026-09-14")
		got, err := client.SearchHotels(context.Background(), "Boston", checkIn, checkOut, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 hotels, got: %v", len(got))
		}
		testboil.FailTestIfDiff(t, got[0].Name, "Harbor Inn")
		if got[0].NightlyRate != 189 {
			t.Errorf("expected nightly rate 189, got: %v", got[0].NightlyRate)
		}
		if got[0].Coordinates == nil || got[0].Coordinates.Lat != 42.36 {
			t.Errorf("expected coordinates to be set, got: %+v", got[0].Coordinates)
		}
		if got[1].NightlyRate != 1040 {
			t.Errorf("expected display price to be parsed, got: %v", got[1].NightlyRate)
		}
	})

	t.Run("it should keep at most five properties", func(t *testing.T) {
		many := `{"properties": [` + strings.Repeat(`{"name": "h"},`, 6) + `{"name": "h"}]}`
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(many))
		})
		got, err := client.SearchHotels(context.Background(), "Boston", time.Now(), time.Now().AddDate(0, 0, 2), 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 5 {
			t.Fatalf("expected 5 hotels, got: %v", len(got))
		}
	})

	t.Run("it should return nil on empty properties", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"properties": []}`))
		})
		got, err := client.SearchHotels(context.Background(), "Nowhere", time.Now(), time.Now().AddDate(0, 0, 1), 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Fatalf("expected nil hotels, got: %+v", got)
		}
	})
}
