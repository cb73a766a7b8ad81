// Package widgets backs the decorative dashboard widgets: current weather
// and a handful of exchange rates. Both are single unauthenticated GETs per
// refresh; every failure degrades to a placeholder and is only logged.
package widgets

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"kakeibo/internal/log"
)

// Snapshot is one refresh worth of widget data.
type Snapshot struct {
	Weather Weather
	Rates   Rates
}

type Service struct {
	weather *WeatherClient
	rates   *RatesClient
	timeout time.Duration
	logger  *log.Logger
}

func NewService(latitude, longitude, baseCurrency string, timeout time.Duration, logger *log.Logger) *Service {
	client := &http.Client{Timeout: timeout}
	return &Service{
		weather: NewWeatherClient(latitude, longitude, client),
		rates:   NewRatesClient(baseCurrency, client),
		timeout: timeout,
		logger:  logger.WithComponent(log.ComponentWidgets),
	}
}

// Weather and RatesClient expose the underlying clients so tests can point
// them at a local server.
func (s *Service) WeatherClient() *WeatherClient { return s.weather }
func (s *Service) RatesClient() *RatesClient     { return s.rates }

// Refresh fetches both widgets concurrently. Individual failures leave the
// corresponding field as its zero placeholder; Refresh itself never fails.
func (s *Service) Refresh(ctx context.Context) Snapshot {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		w, err := s.weather.Current(gctx)
		if err != nil {
			s.logger.WarnContext(gctx, "weather widget degraded", log.FieldError, err)
			return nil
		}
		snap.Weather = w
		return nil
	})
	g.Go(func() error {
		r, err := s.rates.Latest(gctx)
		if err != nil {
			s.logger.WarnContext(gctx, "rates widget degraded", log.FieldError, err)
			return nil
		}
		snap.Rates = r
		return nil
	})
	_ = g.Wait()
	return snap
}
