// Package aggregate gathers destination context from independent sources.
// A failing source yields an explicit empty marker, never an abort.
package aggregate

import (
	"context"
	"sync"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/voyago/voyago/internal/models"
)

type Geocoder interface {
	Geocode(ctx context.Context, place, fallback string) (models.Coordinates, error)
}

type WeatherService interface {
	Daily(ctx context.Context, coords models.Coordinates, start, end time.Time) (map[string]models.DayWeather, error)
}

type BackgroundService interface {
	Background(ctx context.Context, topic string, sections []string) (map[string]string, error)
}

type DiscussionService interface {
	Posts(ctx context.Context, topic string, limit int) ([]models.DiscussionPost, error)
}

type Aggregator struct {
	Geo        Geocoder
	Weather    WeatherService
	Background BackgroundService
	Discussion DiscussionService

	// Sections names the encyclopedia sections worth fetching
	Sections []string
	// PostLimit bounds the amount of discussion posts per destination
	PostLimit int
	// FetchTimeout bounds each sub-fetch
	FetchTimeout time.Duration
}

func New(geo Geocoder, weather WeatherService, background BackgroundService, discussion DiscussionService) *Aggregator {
	return &Aggregator{
		Geo:          geo,
		Weather:      weather,
		Background:   background,
		Discussion:   discussion,
		Sections:     []string{"Culture", "Tourism"},
		PostLimit:    5,
		FetchTimeout: time.Minute,
	}
}

// Gather builds the context for destination between start and end. The
// three sub-fetches run concurrently and are individually fault-tolerant,
// so the returned context may hold nil weather, background or posts.
func (a *Aggregator) Gather(ctx context.Context, destination string, start, end time.Time) models.DestinationContext {
	dc := models.DestinationContext{Destination: destination}
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		fetchCtx, cancel := context.WithTimeout(ctx, a.FetchTimeout)
		defer cancel()
		coords, err := a.Geo.Geocode(fetchCtx, destination, "")
		if err != nil {
			ancli.Warnf("failed to geocode '%v', skipping weather: %v\n", destination, err)
			return
		}
		weather, err := a.Weather.Daily(fetchCtx, coords, start, end)
		if err != nil {
			ancli.Warnf("failed to fetch weather for '%v': %v\n", destination, err)
			return
		}
		dc.Weather = weather
	}()

	go func() {
		defer wg.Done()
		fetchCtx, cancel := context.WithTimeout(ctx, a.FetchTimeout)
		defer cancel()
		background, err := a.Background.Background(fetchCtx, destination, a.Sections)
		if err != nil {
			ancli.Warnf("failed to fetch background for '%v': %v\n", destination, err)
			return
		}
		dc.Background = background
	}()

	go func() {
		defer wg.Done()
		fetchCtx, cancel := context.WithTimeout(ctx, a.FetchTimeout)
		defer cancel()
		posts, err := a.Discussion.Posts(fetchCtx, destination, a.PostLimit)
		if err != nil {
			ancli.Warnf("failed to fetch discussions for '%v': %v\n", destination, err)
			return
		}
		dc.Posts = posts
	}()

	wg.Wait()
	return dc
}
