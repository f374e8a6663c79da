//go:build unit

package coordinator_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nazarious-ucu/weather-news-app/internal/coordinator"
	"github.com/Nazarious-ucu/weather-news-app/internal/models"
	"github.com/Nazarious-ucu/weather-news-app/internal/services/apiservice"
	"github.com/Nazarious-ucu/weather-news-app/internal/viewmodels"
)

type stubWeather struct {
	mu     sync.Mutex
	cities []string
	data   models.WeatherData
	err    error
	block  chan struct{}
}

func (s *stubWeather) Fetch(_ context.Context, city string) (models.WeatherData, error) {
	s.mu.Lock()
	s.cities = append(s.cities, city)
	block := s.block
	s.mu.Unlock()
	if block != nil {
		<-block
	}
	return s.data, s.err
}

func (s *stubWeather) requested() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.cities...)
}

type stubNews struct {
	data models.NewsData
	err  error
}

func (s *stubNews) Fetch(context.Context) (models.NewsData, error) {
	return s.data, s.err
}

func forecast(city string, temp float64) models.WeatherData {
	return models.WeatherData{
		Address: city,
		Days:    []models.DayWeather{{Datetime: "2024-01-01", Temp: temp, TempMax: temp + 2, TempMin: temp - 2, Icon: "clear-day"}},
	}
}

func newCoordinator(w *stubWeather, n *stubNews, session *coordinator.Session) *coordinator.Coordinator {
	weatherVM := viewmodels.NewWeatherViewModel(w, session, zerolog.Nop())
	newsVM := viewmodels.NewNewsViewModel(n, zerolog.Nop())
	return coordinator.New(weatherVM, newsVM, session, zerolog.Nop())
}

func TestSession(t *testing.T) {
	s := coordinator.NewSession("London")
	assert.Equal(t, "London", s.City())
	s.SetCity("Paris")
	assert.Equal(t, "Paris", s.City())
}

func TestRefresh_BothSucceed(t *testing.T) {
	w := &stubWeather{data: forecast("London", 3)}
	n := &stubNews{data: models.NewsData{Articles: []models.Article{{Title: "markets rally"}}}}
	c := newCoordinator(w, n, coordinator.NewSession("London"))

	d := c.Refresh(context.Background())

	require.NoError(t, d.WeatherError)
	require.NoError(t, d.NewsError)
	assert.Equal(t, "London", d.City)
	assert.Equal(t, models.WeatherViewState{CityName: "London", WeatherIcon: "sun.max", TemperatureLabel: "3°C"}, d.Weather)
	require.Len(t, d.Days, 1)
	assert.Equal(t, "5°C", d.Days[0].MaxTemp)
	assert.Equal(t, []models.Article{{Title: "markets rally"}}, d.Articles)
	assert.Equal(t, 1, c.Redraws())
	assert.Equal(t, []string{"London"}, w.requested())
}

func TestRefresh_OnePartFails(t *testing.T) {
	newsErr := &apiservice.HTTPError{StatusCode: 429, Message: apiservice.StatusMessage(429)}
	w := &stubWeather{data: forecast("London", 3)}
	n := &stubNews{err: newsErr}
	c := newCoordinator(w, n, coordinator.NewSession("London"))

	d := c.Refresh(context.Background())

	require.NoError(t, d.WeatherError)
	assert.ErrorIs(t, d.NewsError, newsErr)
	assert.Equal(t, "3°C", d.Weather.TemperatureLabel)
	assert.Empty(t, d.Articles)
}

func TestRefresh_WeatherFailsNewsSucceeds(t *testing.T) {
	w := &stubWeather{err: apiservice.ErrEmptyBody}
	n := &stubNews{data: models.NewsData{Articles: []models.Article{{Title: "a"}, {Title: "b"}}}}
	c := newCoordinator(w, n, coordinator.NewSession("London"))

	d := c.Refresh(context.Background())

	assert.ErrorIs(t, d.WeatherError, apiservice.ErrEmptyBody)
	require.NoError(t, d.NewsError)
	assert.Len(t, d.Articles, 2)
	assert.Equal(t, models.WeatherViewState{}, d.Weather)
	assert.Zero(t, c.Redraws())
}

func TestRefresh_UsesCurrentSessionCity(t *testing.T) {
	w := &stubWeather{data: forecast("Paris", 12)}
	session := coordinator.NewSession("London")
	c := newCoordinator(w, &stubNews{}, session)

	session.SetCity("Paris")
	d := c.Refresh(context.Background())

	assert.Equal(t, "Paris", d.City)
	assert.Equal(t, []string{"Paris"}, w.requested())
}

func TestRefresh_ContextDeadline(t *testing.T) {
	w := &stubWeather{data: forecast("London", 3), block: make(chan struct{})}
	c := newCoordinator(w, &stubNews{}, coordinator.NewSession("London"))
	t.Cleanup(func() { close(w.block) })

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	d := c.Refresh(ctx)

	assert.ErrorIs(t, d.WeatherError, context.DeadlineExceeded)
	assert.NoError(t, d.NewsError)
}

func TestTeardown(t *testing.T) {
	w := &stubWeather{data: forecast("London", 3)}
	n := &stubNews{data: models.NewsData{Articles: []models.Article{{Title: "x"}}}}
	c := newCoordinator(w, n, coordinator.NewSession("London"))
	c.Refresh(context.Background())

	c.Teardown()

	assert.Equal(t, models.WeatherViewState{}, c.Presented())
	assert.Equal(t, 2, c.Redraws())
}

func TestTeardown_InFlightFetchIsReleased(t *testing.T) {
	w := &stubWeather{data: forecast("London", 3), block: make(chan struct{})}
	c := newCoordinator(w, &stubNews{}, coordinator.NewSession("London"))

	result := make(chan coordinator.Dashboard, 1)
	go func() { result <- c.Refresh(context.Background()) }()

	require.Eventually(t, func() bool { return len(w.requested()) == 1 }, time.Second, 5*time.Millisecond)
	c.Teardown()
	close(w.block)

	select {
	case d := <-result:
		assert.ErrorIs(t, d.WeatherError, apiservice.ErrReleased)
		assert.Equal(t, models.WeatherViewState{}, d.Weather)
		assert.Empty(t, d.Days)
	case <-time.After(2 * time.Second):
		t.Fatal("refresh did not return")
	}
}
