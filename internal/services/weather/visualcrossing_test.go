//go:build unit

package weather_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nazarious-ucu/weather-news-app/internal/models"
	"github.com/Nazarious-ucu/weather-news-app/internal/services/apiservice"
	"github.com/Nazarious-ucu/weather-news-app/internal/services/weather"
)

const (
	apiKey        = "secret-key-visualcrossing"
	londonPayload = `{
	  "address":"London","timezone":"Europe/London","description":"",
	  "days":[{"datetime":"2024-01-01","tempmax":5,"tempmin":1,"temp":3,"humidity":80,
	  "windspeed":10,"pressure":1012,"cloudcover":50,"conditions":"Clear","icon":"clear-day"}]
	}`
)

func newTestVisualCrossingServer() *httptest.Server {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != apiKey {
			http.Error(w, "Invalid API key", http.StatusUnauthorized)
			return
		}
		if r.URL.Path != "/timeline/London" {
			http.Error(w, "Bad API Request:Invalid location parameter value.", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(londonPayload))
	})
	return httptest.NewServer(handler)
}

func newClient(srvURL, key string) *weather.ClientVisualCrossing {
	api := apiservice.NewService(http.DefaultClient, zerolog.Nop(), nil)
	return weather.NewClientVisualCrossing(key, srvURL+"/timeline", "uk", api, zerolog.Nop())
}

func TestClientVisualCrossing_BuildURL(t *testing.T) {
	c := newClient("https://weather.example.com", "k1")

	assert.Equal(t,
		"https://weather.example.com/timeline/London?unitGroup=uk&key=k1&contentType=json",
		c.BuildURL("London"))
	assert.Equal(t,
		"https://weather.example.com/timeline/New%20York?unitGroup=uk&key=k1&contentType=json",
		c.BuildURL("New York"))
	assert.Equal(t,
		"https://weather.example.com/timeline/a%2Fb?unitGroup=uk&key=k1&contentType=json",
		c.BuildURL("a/b"))
}

func TestClientVisualCrossing_Fetch_Success(t *testing.T) {
	srv := newTestVisualCrossingServer()
	t.Cleanup(srv.Close)

	data, err := newClient(srv.URL, apiKey).Fetch(context.Background(), "London")

	require.NoError(t, err)
	assert.Equal(t, "London", data.Address)
	assert.Equal(t, "Europe/London", data.Timezone)
	require.Len(t, data.Days, 1)
	assert.Equal(t, models.DayWeather{
		Datetime: "2024-01-01", TempMax: 5, TempMin: 1, Temp: 3, Humidity: 80,
		WindSpeed: 10, Pressure: 1012, CloudCover: 50, Conditions: "Clear", Icon: "clear-day",
	}, data.Days[0])
}

func TestClientVisualCrossing_Fetch_UnknownCity(t *testing.T) {
	srv := newTestVisualCrossingServer()
	t.Cleanup(srv.Close)

	data, err := newClient(srv.URL, apiKey).Fetch(context.Background(), "Atlantis")

	var httpErr *apiservice.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
	assert.Equal(t, models.WeatherData{}, data)
}

func TestClientVisualCrossing_Fetch_InvalidAPIKey(t *testing.T) {
	srv := newTestVisualCrossingServer()
	t.Cleanup(srv.Close)

	_, err := newClient(srv.URL, "wrong").Fetch(context.Background(), "London")

	var httpErr *apiservice.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
}
