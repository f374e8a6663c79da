package models

// WeatherData is the timeline payload returned by the weather provider.
// Days are ordered chronologically, day 0 being today.
type WeatherData struct {
	Address     string       `json:"address"`
	Timezone    string       `json:"timezone"`
	Description string       `json:"description"`
	Days        []DayWeather `json:"days"`
}

type DayWeather struct {
	Datetime   string  `json:"datetime"`
	TempMax    float64 `json:"tempmax"`
	TempMin    float64 `json:"tempmin"`
	Temp       float64 `json:"temp"`
	Humidity   float64 `json:"humidity"`
	WindSpeed  float64 `json:"windspeed"`
	Pressure   float64 `json:"pressure"`
	CloudCover float64 `json:"cloudcover"`
	Conditions string  `json:"conditions"`
	Icon       string  `json:"icon"`
}

// WeatherViewState is the headline state derived from the latest payload.
type WeatherViewState struct {
	CityName         string `json:"city_name"`
	WeatherIcon      string `json:"weather_icon"`
	TemperatureLabel string `json:"temperature_label"`
}

// DayRow is one line of the forecast list.
type DayRow struct {
	Day     string `json:"day"`
	Icon    string `json:"icon"`
	MaxTemp string `json:"max_temp"`
	MinTemp string `json:"min_temp"`
}
