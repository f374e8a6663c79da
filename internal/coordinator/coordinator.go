package coordinator

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Nazarious-ucu/weather-news-app/internal/models"
)

type weatherViewModel interface {
	BindUpdateView(fn func(models.WeatherViewState))
	FetchWeatherData(ctx context.Context, completion func(error))
	DayRows(now time.Time) []models.DayRow
	ResetData()
}

type newsViewModel interface {
	LoadArticles(ctx context.Context, completion func(error))
	Articles() []models.Article
	ResetData()
}

type cityReader interface {
	City() string
}

// Dashboard is one rendered screen: the weather state captured by the
// observer, the forecast rows and the capped headline list. A part whose
// fetch failed carries its error and keeps the previous data.
type Dashboard struct {
	City         string
	Weather      models.WeatherViewState
	Days         []models.DayRow
	Articles     []models.Article
	WeatherError error
	NewsError    error
}

// Coordinator plays the screen: it drives both view-models and keeps the
// last state pushed by the weather observer.
type Coordinator struct {
	weather weatherViewModel
	news    newsViewModel
	session cityReader
	logger  zerolog.Logger
	now     func() time.Time

	mu        sync.RWMutex
	presented models.WeatherViewState
	redraws   int
}

func New(weather weatherViewModel, news newsViewModel, session cityReader, logger zerolog.Logger) *Coordinator {
	c := &Coordinator{
		weather: weather,
		news:    news,
		session: session,
		logger:  logger,
		now:     time.Now,
	}
	weather.BindUpdateView(c.redraw)
	return c
}

func (c *Coordinator) redraw(state models.WeatherViewState) {
	c.mu.Lock()
	c.presented = state
	c.redraws++
	c.mu.Unlock()

	c.logger.Debug().
		Str("city_name", state.CityName).
		Str("weather_icon", state.WeatherIcon).
		Str("temperature", state.TemperatureLabel).
		Msg("weather view updated")
}

// Presented returns the state most recently pushed by the weather view-model.
func (c *Coordinator) Presented() models.WeatherViewState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.presented
}

// Redraws counts observer notifications.
func (c *Coordinator) Redraws() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.redraws
}

// Refresh fetches weather and news in parallel and waits for both.
// One part failing never cancels the other.
func (c *Coordinator) Refresh(ctx context.Context) Dashboard {
	var weatherErr, newsErr error

	g := new(errgroup.Group)
	g.Go(func() error {
		weatherErr = await(ctx, c.weather.FetchWeatherData)
		return nil
	})
	g.Go(func() error {
		newsErr = await(ctx, c.news.LoadArticles)
		return nil
	})
	_ = g.Wait()

	if weatherErr != nil {
		c.logger.Warn().Ctx(ctx).Err(weatherErr).Msg("weather refresh failed")
	}
	if newsErr != nil {
		c.logger.Warn().Ctx(ctx).Err(newsErr).Msg("news refresh failed")
	}

	return Dashboard{
		City:         c.session.City(),
		Weather:      c.Presented(),
		Days:         c.weather.DayRows(c.now()),
		Articles:     c.news.Articles(),
		WeatherError: weatherErr,
		NewsError:    newsErr,
	}
}

// Teardown releases both view-models. Fetches still in flight complete with apiservice.ErrReleased.
func (c *Coordinator) Teardown() {
	c.weather.ResetData()
	c.news.ResetData()
	c.logger.Info().Msg("dashboard released")
}

// await turns a completion-style call into a blocking one. If ctx ends first
// the completion still runs later into the buffered channel.
func await(ctx context.Context, start func(context.Context, func(error))) error {
	done := make(chan error, 1)
	start(ctx, func(err error) { done <- err })
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
