package weather

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-news-app/internal/models"
	"github.com/Nazarious-ucu/weather-news-app/internal/services/apiservice"
)

// ClientVisualCrossing fetches timeline forecasts from the Visual Crossing API.
type ClientVisualCrossing struct {
	APIKey    string
	apiURL    string
	unitGroup string
	api       *apiservice.Service
	logger    zerolog.Logger
}

// NewClientVisualCrossing constructs a new Visual Crossing client.
func NewClientVisualCrossing(apiKey, apiURL, unitGroup string,
	api *apiservice.Service, logger zerolog.Logger,
) *ClientVisualCrossing {
	return &ClientVisualCrossing{
		APIKey:    apiKey,
		apiURL:    apiURL,
		unitGroup: unitGroup,
		api:       api,
		logger:    logger,
	}
}

// BuildURL returns the timeline URL for city. The city is escaped as a single path segment.
func (c *ClientVisualCrossing) BuildURL(city string) string {
	return fmt.Sprintf("%s/%s?unitGroup=%s&key=%s&contentType=json",
		c.apiURL, url.PathEscape(city), url.QueryEscape(c.unitGroup), url.QueryEscape(c.APIKey))
}

// Fetch retrieves the forecast for city. Fetcher errors are returned unchanged.
func (c *ClientVisualCrossing) Fetch(ctx context.Context, city string) (models.WeatherData, error) {
	c.logger.Debug().
		Ctx(ctx).
		Str("city", city).
		Msg("fetching weather timeline")

	data, err := apiservice.Fetch[models.WeatherData](ctx, c.api, c.BuildURL(city))
	if err != nil {
		c.logger.Error().
			Ctx(ctx).
			Str("city", city).
			Str("kind", apiservice.Kind(err)).
			Err(err).
			Msg("weather fetch failed")
		return models.WeatherData{}, err
	}
	return data, nil
}
