package gmaps

import "encoding/json"

type geocodeResponse struct {
	Status  string          `json:"status"`
	Results []geocodeResult `json:"results"`
}

type geocodeResult struct {
	Geometry struct {
		Location latLng `json:"location"`
	} `json:"geometry"`
}

type latLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type nearbyResponse struct {
	Status  string        `json:"status"`
	Results []nearbyPlace `json:"results"`
}

type nearbyPlace struct {
	Name     string `json:"name"`
	Vicinity string `json:"vicinity"`
	Geometry struct {
		Location latLng `json:"location"`
	} `json:"geometry"`
}

type distanceMatrixResponse struct {
	Status string `json:"status"`
	Rows   []struct {
		Elements []matrixElement `json:"elements"`
	} `json:"rows"`
}

type matrixElement struct {
	Status   string     `json:"status"`
	Distance textValued `json:"distance"`
	Duration textValued `json:"duration"`
}

type textValued struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}

func decode(body []byte, out any) error {
	return json.Unmarshal(body, out)
}
