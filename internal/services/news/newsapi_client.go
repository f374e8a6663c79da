package news

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-news-app/internal/models"
	"github.com/Nazarious-ucu/weather-news-app/internal/services/apiservice"
)

// ClientNewsAPI fetches top headlines from NewsAPI for a fixed country and category.
type ClientNewsAPI struct {
	APIKey   string
	apiURL   string
	country  string
	category string
	api      *apiservice.Service
	logger   zerolog.Logger
}

func NewClientNewsAPI(apiKey, apiURL, country, category string,
	api *apiservice.Service, logger zerolog.Logger,
) *ClientNewsAPI {
	return &ClientNewsAPI{
		APIKey:   apiKey,
		apiURL:   apiURL,
		country:  country,
		category: category,
		api:      api,
		logger:   logger,
	}
}

func (c *ClientNewsAPI) BuildURL() string {
	return fmt.Sprintf("%s?country=%s&category=%s&apiKey=%s",
		c.apiURL, url.QueryEscape(c.country), url.QueryEscape(c.category), url.QueryEscape(c.APIKey))
}

func (c *ClientNewsAPI) Fetch(ctx context.Context) (models.NewsData, error) {
	data, err := apiservice.Fetch[models.NewsData](ctx, c.api, c.BuildURL())
	if err != nil {
		c.logger.Error().
			Ctx(ctx).
			Str("kind", apiservice.Kind(err)).
			Err(err).
			Msg("news fetch failed")
		return models.NewsData{}, err
	}

	c.logger.Debug().
		Ctx(ctx).
		Int("articles", len(data.Articles)).
		Msg("fetched headlines")
	return data, nil
}
