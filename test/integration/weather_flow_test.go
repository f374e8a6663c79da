//go:build integration

package integration

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dashboard struct {
	City    string `json:"city"`
	Weather struct {
		CityName         string `json:"city_name"`
		WeatherIcon      string `json:"weather_icon"`
		TemperatureLabel string `json:"temperature_label"`
	} `json:"weather"`
	Days []struct {
		Day     string `json:"day"`
		Icon    string `json:"icon"`
		MaxTemp string `json:"max_temp"`
		MinTemp string `json:"min_temp"`
	} `json:"days"`
	Articles []struct {
		Title string `json:"title"`
		URL   string `json:"url"`
	} `json:"articles"`
}

func get(t *testing.T, path string) (int, []byte) {
	t.Helper()
	resp, err := http.Get(testServerURL + path)
	require.NoError(t, err)
	defer func(body io.ReadCloser) {
		assert.NoError(t, body.Close(), "Failed to close response body")
	}(resp.Body)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed reading response body")
	return resp.StatusCode, body
}

func TestSearchAndDashboardFlow(t *testing.T) {
	t.Run("unknown city is rejected", func(t *testing.T) {
		code, body := get(t, "/api/search?city=InvalidCity")
		assert.Equal(t, http.StatusNotFound, code)
		assert.JSONEq(t, `{"error":"City is not found. Please try again."}`, string(body))
	})

	t.Run("blank city is rejected", func(t *testing.T) {
		code, _ := get(t, "/api/search?city=%20")
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("search then dashboard", func(t *testing.T) {
		code, body := get(t, "/api/search?city=NewYork")
		require.Equal(t, http.StatusOK, code)
		assert.JSONEq(t, `{"city":"NewYork"}`, string(body))

		code, body = get(t, "/api/dashboard")
		require.Equal(t, http.StatusOK, code)

		var d dashboard
		require.NoError(t, json.Unmarshal(body, &d))
		assert.Equal(t, "NewYork", d.City)
		assert.Equal(t, "New York", d.Weather.CityName)
		assert.Equal(t, "sun.max", d.Weather.WeatherIcon)
		assert.Equal(t, "3°C", d.Weather.TemperatureLabel)
		require.Len(t, d.Days, 2)
		assert.Equal(t, "cloud.sun", d.Days[1].Icon)
		assert.Equal(t, "7°C", d.Days[1].MaxTemp)
		assert.Len(t, d.Articles, 10)
		assert.Equal(t, "Story 0", d.Articles[0].Title)
	})

	t.Run("city with space is escaped", func(t *testing.T) {
		code, body := get(t, "/api/search?city=Rio%20De%20Janeiro")
		require.Equal(t, http.StatusOK, code)
		assert.JSONEq(t, `{"city":"Rio De Janeiro"}`, string(body))

		code, body = get(t, "/api/dashboard")
		require.Equal(t, http.StatusOK, code)
		var d dashboard
		require.NoError(t, json.Unmarshal(body, &d))
		assert.Equal(t, "Rio De Janeiro", d.Weather.CityName)
	})

	t.Run("metrics are exposed", func(t *testing.T) {
		code, body := get(t, "/metrics")
		assert.Equal(t, http.StatusOK, code)
		assert.Contains(t, string(body), "integration_upstream_fetch_total")
		assert.Contains(t, string(body), "integration_http_requests_total")
	})
}
