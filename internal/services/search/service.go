package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-news-app/internal/models"
	"github.com/Nazarious-ucu/weather-news-app/internal/services/apiservice"
)

var (
	ErrEmptyCity    = errors.New("city must not be empty")
	ErrCityNotFound = errors.New("city is not found")
)

type weatherFetcher interface {
	Fetch(ctx context.Context, city string) (models.WeatherData, error)
}

type citySetter interface {
	SetCity(city string)
}

// Service validates a city against the weather provider before it becomes the current city.
type Service struct {
	weather weatherFetcher
	session citySetter
	logger  zerolog.Logger
}

func NewService(weather weatherFetcher, session citySetter, logger zerolog.Logger) *Service {
	return &Service{weather: weather, session: session, logger: logger}
}

// Search probes the provider for city. Any non-2xx answer means the provider
// does not know the city and yields ErrCityNotFound wrapping the HTTP error.
// The session is written only on success.
func (s *Service) Search(ctx context.Context, city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return ErrEmptyCity
	}

	_, err := s.weather.Fetch(ctx, city)
	if err != nil {
		var httpErr *apiservice.HTTPError
		if errors.As(err, &httpErr) {
			s.logger.Info().
				Ctx(ctx).
				Str("city", city).
				Int("status", httpErr.StatusCode).
				Msg("city rejected by weather provider")
			return fmt.Errorf("%w: %q: %w", ErrCityNotFound, city, err)
		}
		return err
	}

	s.session.SetCity(city)
	s.logger.Info().
		Ctx(ctx).
		Str("city", city).
		Msg("current city updated")
	return nil
}

func IsCityNotFound(err error) bool {
	return errors.Is(err, ErrCityNotFound)
}
