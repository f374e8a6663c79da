package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.uber.org/zap"

	"github.com/Nazarious-ucu/weather-news-app/internal/config"
	"github.com/Nazarious-ucu/weather-news-app/internal/coordinator"
	httpHandler "github.com/Nazarious-ucu/weather-news-app/internal/handlers/http"
	"github.com/Nazarious-ucu/weather-news-app/internal/services/apiservice"
	loggerT "github.com/Nazarious-ucu/weather-news-app/internal/services/logger"
	metricsSvc "github.com/Nazarious-ucu/weather-news-app/internal/services/metrics"
	"github.com/Nazarious-ucu/weather-news-app/internal/services/news"
	"github.com/Nazarious-ucu/weather-news-app/internal/services/search"
	serviceWeather "github.com/Nazarious-ucu/weather-news-app/internal/services/weather"
	"github.com/Nazarious-ucu/weather-news-app/internal/viewmodels"
	fLogger "github.com/Nazarious-ucu/weather-news-app/pkg/logger"
)

const timeoutDuration = 5 * time.Second

// ServiceContainer holds initialized dependencies for the HTTP server.
type ServiceContainer struct {
	Session     *coordinator.Session
	Coordinator *coordinator.Coordinator
	Search      *search.Service

	Router     *gin.Engine
	Srv        *http.Server
	fileLogger *zap.Logger
}

// App ties together config, logger, and metrics for startup/shutdown.
type App struct {
	cfg config.Config
	l   zerolog.Logger
	m   *metricsSvc.Metrics
}

// New prepares a new App with given config, zerolog logger, and metrics.
func New(cfg config.Config, logger zerolog.Logger, met *metricsSvc.Metrics) *App {
	return &App{
		cfg: cfg,
		l:   logger,
		m:   met,
	}
}

// Start serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Start(ctx context.Context) error {
	srvContainer, err := a.Init()
	if err != nil {
		return err
	}

	a.l.Info().
		Str("address", a.cfg.ServerAddress()).
		Str("city", srvContainer.Session.City()).
		Msg("starting weather news service")

	serveErr := make(chan error, 1)
	go func() {
		if err := srvContainer.Srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		a.l.Info().Msg("shutdown signal received, stopping weather news service")
	case err := <-serveErr:
		if err != nil {
			a.l.Error().Err(err).Msg("HTTP server failed")
			_ = a.Shutdown(srvContainer)
			return err
		}
	}

	if err := a.Shutdown(srvContainer); err != nil {
		a.l.Error().Err(err).Msg("failed to shutdown application")
		return err
	}
	a.l.Info().Msg("application shutdown successfully")
	return nil
}

// Shutdown stops the HTTP server, releases the dashboard and syncs the traffic log.
func (a *App) Shutdown(srvContainer ServiceContainer) error {
	a.l.Info().Msg("stopping weather news service…")

	defer func(logger *zap.Logger) {
		if err := logger.Sync(); err != nil {
			a.l.Error().Err(err).Msg("failed to sync file logger")
		} else {
			a.l.Info().Msg("file logger synced successfully")
		}
	}(srvContainer.fileLogger)

	ctx, cancel := context.WithTimeout(context.Background(), timeoutDuration)
	defer cancel()

	srvContainer.Coordinator.Teardown()

	if err := srvContainer.Srv.Shutdown(ctx); err != nil {
		return err
	}
	a.l.Info().Msg("shutdown complete")
	return nil
}

// Init builds the client chain, view-models, coordinator and router without serving.
func (a *App) Init() (ServiceContainer, error) {
	if a.m == nil {
		return ServiceContainer{}, errors.New("metrics must be configured")
	}
	a.l.Info().
		Str("weather_url", a.cfg.Weather.URL).
		Str("news_url", a.cfg.News.URL).
		Float64("rps", a.cfg.HTTPClient.RPS).
		Msg("initializing weather news service")

	fileLogger, err := fLogger.NewFileLogger(a.cfg.HTTPLogsPath)
	if err != nil {
		a.l.Error().Err(err).Msg("failed to create file logger, traffic log disabled")
		fileLogger = zap.NewNop()
	}

	// HTTP client logging
	httpLogClient := &http.Client{
		Transport: loggerT.NewRoundTripper(fileLogger, http.DefaultTransport),
		Timeout:   time.Duration(a.cfg.HTTPClient.Timeout) * time.Second,
	}
	limited := apiservice.NewRateLimitedClient(httpLogClient, a.cfg.HTTPClient.RPS, a.cfg.HTTPClient.Burst)

	breakerCfg := apiservice.BreakerConfig{
		TimeInterval: time.Duration(a.cfg.Breaker.TimeInterval) * time.Second,
		TimeTimeOut:  time.Duration(a.cfg.Breaker.TimeTimeOut) * time.Second,
		RepeatNumber: a.cfg.Breaker.RepeatNumber,
	}
	weatherAPI := apiservice.NewService(
		apiservice.NewBreakerClient("VisualCrossing", breakerCfg, limited), a.l, a.m)
	newsAPI := apiservice.NewService(
		apiservice.NewBreakerClient("NewsAPI", breakerCfg, limited), a.l, a.m)

	weatherSource := serviceWeather.NewClientVisualCrossing(
		a.cfg.Weather.APIKey, a.cfg.Weather.URL, a.cfg.Weather.UnitGroup, weatherAPI, a.l)
	newsSource := news.NewClientNewsAPI(
		a.cfg.News.APIKey, a.cfg.News.URL, a.cfg.News.Country, a.cfg.News.Category, newsAPI, a.l)

	session := coordinator.NewSession(a.cfg.Weather.DefaultCity)
	weatherVM := viewmodels.NewWeatherViewModel(weatherSource, session, a.l)
	newsVM := viewmodels.NewNewsViewModel(newsSource, a.l)
	coord := coordinator.New(weatherVM, newsVM, session, a.l)
	searchService := search.NewService(weatherSource, session, a.l)

	router := gin.New()
	router.Use(gin.Recovery(), a.m.HTTPMiddleware())
	router.GET("/metrics", gin.WrapH(a.m.Handler()))
	router.GET("/healthz", httpHandler.Healthz)
	httpHandler.NewHandler(searchService, coord, a.cfg.RequestTimeout(), a.l).Register(router)

	httpServer := &http.Server{
		Addr:        a.cfg.ServerAddress(),
		Handler:     router,
		ReadTimeout: time.Duration(a.cfg.Server.ReadTimeout) * time.Second,
	}

	return ServiceContainer{
		Session:     session,
		Coordinator: coord,
		Search:      searchService,
		Router:      router,
		Srv:         httpServer,
		fileLogger:  fileLogger,
	}, nil
}
