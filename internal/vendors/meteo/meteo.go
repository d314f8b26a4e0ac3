// Package meteo fetches daily weather from Open-Meteo. Future date ranges
// use the forecast API, ranges fully in the past use the ERA5 archive.
package meteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/voyago/voyago/internal/models"
)

const (
	ForecastURL = "https://api.open-meteo.com/v1/forecast"
	ArchiveURL  = "https://archive-api.open-meteo.com/v1/era5"
)

type Client struct {
	ForecastURL string `json:"forecast_url"`
	ArchiveURL  string `json:"archive_url"`

	client *http.Client
	// now is overridable for deterministic past/future checks in tests
	now func() time.Time
}

var Default = Client{
	ForecastURL: ForecastURL,
	ArchiveURL:  ArchiveURL,
}

func (c *Client) Setup() error {
	c.client = &http.Client{Timeout: 20 * time.Second}
	c.now = time.Now
	return nil
}

type response struct {
	Daily  *dailyBlock  `json:"daily"`
	Hourly *hourlyBlock `json:"hourly"`
}

type dailyBlock struct {
	Time        []string  `json:"time"`
	TempMax     []float64 `json:"temperature_2m_max"`
	TempMin     []float64 `json:"temperature_2m_min"`
	WeatherCode []int     `json:"weathercode"`
}

type hourlyBlock struct {
	Time        []string  `json:"time"`
	Temperature []float64 `json:"temperature_2m"`
	WeatherCode []int     `json:"weathercode"`
}

// Daily returns weather keyed by date for coords between start and end,
// inclusive. Replies lacking weather data return models.ErrUnavailable.
func (c *Client) Daily(ctx context.Context, coords models.Coordinates, start, end time.Time) (map[string]models.DayWeather, error) {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%f", coords.Lat))
	params.Set("longitude", fmt.Sprintf("%f", coords.Lon))
	params.Set("start_date", start.Format(models.DateFormat))
	params.Set("end_date", end.Format(models.DateFormat))
	params.Set("timezone", "auto")
	endpoint := c.ForecastURL
	if end.Before(c.now().Truncate(24 * time.Hour)) {
		ancli.Noticef("date range is in the past, using archive data\n")
		endpoint = c.ArchiveURL
		params.Set("hourly", "temperature_2m,weathercode")
	} else {
		params.Set("daily", "temperature_2m_max,temperature_2m_min,weathercode")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("non-OK status: %v, body: %v", resp.Status, string(body))
	}
	var parsed response
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}
	switch {
	case parsed.Daily != nil && len(parsed.Daily.WeatherCode) > 0:
		return extractDaily(parsed.Daily), nil
	case parsed.Hourly != nil && len(parsed.Hourly.WeatherCode) > 0:
		return rollupHourly(parsed.Hourly), nil
	default:
		return nil, fmt.Errorf("weather reply held no usable data: %w", models.ErrUnavailable)
	}
}

func extractDaily(daily *dailyBlock) map[string]models.DayWeather {
	weather := make(map[string]models.DayWeather, len(daily.Time))
	for i, date := range daily.Time {
		if i >= len(daily.TempMax) || i >= len(daily.TempMin) || i >= len(daily.WeatherCode) {
			break
		}
		weather[date] = models.DayWeather{
			Description: Describe(daily.WeatherCode[i]),
			TempHigh:    daily.TempMax[i],
			TempLow:     daily.TempMin[i],
		}
	}
	return weather
}

// rollupHourly condenses hourly archive samples to a daily high/low, keeping
// the last weather code seen per day.
func rollupHourly(hourly *hourlyBlock) map[string]models.DayWeather {
	type agg struct {
		high, low float64
		code      int
	}
	days := map[string]*agg{}
	for i, stamp := range hourly.Time {
		if i >= len(hourly.Temperature) || i >= len(hourly.WeatherCode) {
			break
		}
		if len(stamp) < len(models.DateFormat) {
			continue
		}
		date := stamp[:len(models.DateFormat)]
		temp := hourly.Temperature[i]
		a, exists := days[date]
		if !exists {
			a = &agg{high: temp, low: temp}
			days[date] = a
		}
		if temp > a.high {
			a.high = temp
		}
		if temp < a.low {
			a.low = temp
		}
		a.code = hourly.WeatherCode[i]
	}
	dates := make([]string, 0, len(days))
	for date := range days {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	weather := make(map[string]models.DayWeather, len(dates))
	for _, date := range dates {
		a := days[date]
		weather[date] = models.DayWeather{
			Description: Describe(a.code),
			TempHigh:    a.high,
			TempLow:     a.low,
		}
	}
	return weather
}
