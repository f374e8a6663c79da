package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Server struct {
	Host           string `envconfig:"SERVER_HOST" default:"localhost"`
	Port           string `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout    int    `envconfig:"SERVER_TIMEOUT" default:"10"`
	RequestTimeout int    `envconfig:"SERVER_REQUEST_TIMEOUT" default:"15"`
}

type Weather struct {
	APIKey      string `envconfig:"WEATHER_API_KEY" required:"true"`
	URL         string `envconfig:"WEATHER_API_URL" default:"https://weather.visualcrossing.com/VisualCrossingWebServices/rest/services/timeline"`
	UnitGroup   string `envconfig:"WEATHER_UNIT_GROUP" default:"uk"`
	DefaultCity string `envconfig:"DEFAULT_CITY" default:"London"`
}

type News struct {
	APIKey   string `envconfig:"NEWS_API_KEY" required:"true"`
	URL      string `envconfig:"NEWS_API_URL" default:"https://newsapi.org/v2/top-headlines"`
	Country  string `envconfig:"NEWS_COUNTRY" default:"us"`
	Category string `envconfig:"NEWS_CATEGORY" default:"business"`
}

// HTTPClient configures the outbound client shared by both providers.
// RPS <= 0 disables rate limiting.
type HTTPClient struct {
	Timeout int     `envconfig:"HTTP_CLIENT_TIMEOUT" default:"10"`
	RPS     float64 `envconfig:"HTTP_CLIENT_RPS" default:"5"`
	Burst   int     `envconfig:"HTTP_CLIENT_BURST" default:"5"`
}

type Breaker struct {
	TimeInterval int    `envconfig:"BREAKER_INTERVAL" default:"30"`
	TimeTimeOut  int    `envconfig:"BREAKER_TIMEOUT" default:"10"`
	RepeatNumber uint32 `envconfig:"BREAKER_REPEAT_NUM" default:"5"`
}

type Config struct {
	Weather    Weather
	News       News
	HTTPClient HTTPClient
	Breaker    Breaker
	Server     Server

	LogsPath     string `envconfig:"LOGS_PATH" default:"./log/weather-news-app.log"`
	HTTPLogsPath string `envconfig:"HTTP_LOGS_PATH" default:"./log/http-traffic.log"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"debug"`
}

func NewConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) ServerAddress() string {
	return c.Server.Host + ":" + c.Server.Port
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.RequestTimeout) * time.Second
}
