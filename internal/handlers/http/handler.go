package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-news-app/internal/coordinator"
	"github.com/Nazarious-ucu/weather-news-app/internal/models"
	"github.com/Nazarious-ucu/weather-news-app/internal/services/apiservice"
	"github.com/Nazarious-ucu/weather-news-app/internal/services/search"
)

const (
	defaultTimeout = 10 * time.Second

	cityNotFoundMessage = "City is not found. Please try again."
)

type citySearcher interface {
	Search(ctx context.Context, city string) error
}

type dashboardDriver interface {
	Refresh(ctx context.Context) coordinator.Dashboard
	Teardown()
}

type Handler struct {
	search    citySearcher
	dashboard dashboardDriver
	timeout   time.Duration
	logger    zerolog.Logger
}

func NewHandler(search citySearcher, dashboard dashboardDriver, timeout time.Duration, logger zerolog.Logger) *Handler {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Handler{search: search, dashboard: dashboard, timeout: timeout, logger: logger}
}

// Register mounts the dashboard routes on r.
func (h *Handler) Register(r gin.IRouter) {
	api := r.Group("/api")
	api.GET("/search", h.Search)
	api.GET("/dashboard", h.Dashboard)
}

type partError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type dashboardResponse struct {
	City     string                  `json:"city"`
	Weather  models.WeatherViewState `json:"weather"`
	Days     []models.DayRow         `json:"days"`
	Articles []models.Article        `json:"articles"`
	Errors   map[string]partError    `json:"errors,omitempty"`
}

func (h *Handler) Search(c *gin.Context) {
	city := c.Query("city")
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	err := h.search.Search(ctx, city)
	switch {
	case err == nil:
	case errors.Is(err, search.ErrEmptyCity):
		c.JSON(http.StatusBadRequest, gin.H{"error": "city query parameter is required"})
		return
	case search.IsCityNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": cityNotFoundMessage})
		return
	default:
		h.logger.Error().Ctx(ctx).Str("city", city).Err(err).Msg("search failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "kind": apiservice.Kind(err)})
		return
	}

	// the next dashboard belongs to the new city
	h.dashboard.Teardown()
	c.JSON(http.StatusOK, gin.H{"city": city})
}

func (h *Handler) Dashboard(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	d := h.dashboard.Refresh(ctx)

	resp := dashboardResponse{
		City:     d.City,
		Weather:  d.Weather,
		Days:     d.Days,
		Articles: d.Articles,
	}
	if resp.Days == nil {
		resp.Days = []models.DayRow{}
	}
	if resp.Articles == nil {
		resp.Articles = []models.Article{}
	}

	if d.WeatherError != nil || d.NewsError != nil {
		resp.Errors = map[string]partError{}
	}
	if d.WeatherError != nil {
		resp.Errors["weather"] = partError{Kind: apiservice.Kind(d.WeatherError), Message: d.WeatherError.Error()}
	}
	if d.NewsError != nil {
		resp.Errors["news"] = partError{Kind: apiservice.Kind(d.NewsError), Message: d.NewsError.Error()}
	}

	status := http.StatusOK
	if d.WeatherError != nil && d.NewsError != nil {
		status = http.StatusBadGateway
	}
	c.JSON(status, resp)
}

func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
