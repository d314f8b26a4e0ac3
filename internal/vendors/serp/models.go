package serp

import (
	"encoding/json"
	"strconv"
	"strings"
)

type flightsResponse struct {
	BestFlights  []flightOption `json:"best_flights"`
	OtherFlights []flightOption `json:"other_flights"`
}

type flightOption struct {
	Flights        []flightSegment `json:"flights"`
	TotalDuration  int             `json:"total_duration"`
	Price          float64         `json:"price"`
	DepartureToken string          `json:"departure_token"`
}

type flightSegment struct {
	DepartureAirport airportTime `json:"departure_airport"`
	ArrivalAirport   airportTime `json:"arrival_airport"`
	Duration         int         `json:"duration"`
	Airplane         string      `json:"airplane"`
	TravelClass      string      `json:"travel_class"`
	FlightNumber     string      `json:"flight_number"`
}

type airportTime struct {
	Name string `json:"name"`
	ID   string `json:"id"`
	Time string `json:"time"`
}

type hotelsResponse struct {
	Properties []property `json:"properties"`
}

type property struct {
	Name           string   `json:"name"`
	Type           string   `json:"type"`
	CheckInTime    string   `json:"check_in_time"`
	CheckOutTime   string   `json:"check_out_time"`
	RatePerNight   rate     `json:"rate_per_night"`
	TotalRate      rate     `json:"total_rate"`
	OverallRating  float64  `json:"overall_rating"`
	Amenities      []string `json:"amenities"`
	GPSCoordinates *gps     `json:"gps_coordinates"`
	Address        string   `json:"address"`
}

type rate struct {
	Lowest          string  `json:"lowest"`
	ExtractedLowest float64 `json:"extracted_lowest"`
}

// Amount returns the numeric rate, parsing display prices like "$1,234"
// when the extracted amount is absent.
func (r rate) Amount() float64 {
	if r.ExtractedLowest > 0 {
		return r.ExtractedLowest
	}
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(strings.TrimSpace(r.Lowest))
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return amount
}

type gps struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func decode(body []byte, out any) error {
	return json.Unmarshal(body, out)
}
