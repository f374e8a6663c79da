package viewmodels

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-news-app/internal/models"
	"github.com/Nazarious-ucu/weather-news-app/internal/services/apiservice"
)

type weatherSource interface {
	Fetch(ctx context.Context, city string) (models.WeatherData, error)
}

// CityProvider supplies the city currently selected by the search flow.
type CityProvider interface {
	City() string
}

// WeatherViewModel owns the last fetched forecast and the headline state derived from it.
type WeatherViewModel struct {
	source weatherSource
	city   CityProvider
	logger zerolog.Logger

	// notifyMu orders state changes with their observer calls, so the
	// observer always ends on the stored state.
	notifyMu sync.Mutex

	mu         sync.RWMutex
	data       *models.WeatherData
	state      models.WeatherViewState
	generation uint64
	updateView func(models.WeatherViewState)
}

func NewWeatherViewModel(source weatherSource, city CityProvider, logger zerolog.Logger) *WeatherViewModel {
	return &WeatherViewModel{source: source, city: city, logger: logger}
}

// BindUpdateView installs the single change observer, replacing any previous one.
func (vm *WeatherViewModel) BindUpdateView(fn func(models.WeatherViewState)) {
	vm.mu.Lock()
	vm.updateView = fn
	vm.mu.Unlock()
}

// FetchWeatherData fetches the forecast for the current city on its own
// goroutine. completion is called exactly once: with nil after the new payload
// is stored and the observer notified, with the fetch error (state untouched),
// or with apiservice.ErrReleased if ResetData ran while the request was in flight.
func (vm *WeatherViewModel) FetchWeatherData(ctx context.Context, completion func(error)) {
	vm.mu.RLock()
	generation := vm.generation
	vm.mu.RUnlock()

	city := vm.city.City()

	go func() {
		data, err := vm.source.Fetch(ctx, city)
		complete(completion, vm.apply(generation, city, data, err))
	}()
}

func (vm *WeatherViewModel) apply(generation uint64, city string, data models.WeatherData, err error) error {
	vm.notifyMu.Lock()
	defer vm.notifyMu.Unlock()

	vm.mu.Lock()
	if vm.generation != generation {
		vm.mu.Unlock()
		vm.logger.Debug().
			Str("city", city).
			Msg("dropping weather result for released view model")
		return apiservice.ErrReleased
	}
	if err != nil {
		vm.mu.Unlock()
		return err
	}

	vm.data = &data
	vm.state = deriveViewState(data)
	state := vm.state
	notify := vm.updateView
	vm.mu.Unlock()

	vm.logger.Info().
		Str("city", city).
		Int("days", len(data.Days)).
		Msg("weather data updated")

	if notify != nil {
		notify(state)
	}
	return nil
}

// ResetData drops the payload, invalidates in-flight fetches and notifies the
// observer once with the empty state. It waits for a notification already in
// progress, so the observer must not call ResetData itself.
func (vm *WeatherViewModel) ResetData() {
	vm.notifyMu.Lock()
	defer vm.notifyMu.Unlock()

	vm.mu.Lock()
	vm.data = nil
	vm.generation++
	vm.state = models.WeatherViewState{}
	state := vm.state
	notify := vm.updateView
	vm.mu.Unlock()

	if notify != nil {
		notify(state)
	}
}

func (vm *WeatherViewModel) ViewState() models.WeatherViewState {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.state
}

func (vm *WeatherViewModel) DaysWeather() []models.DayWeather {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	if vm.data == nil {
		return nil
	}
	days := make([]models.DayWeather, len(vm.data.Days))
	copy(days, vm.data.Days)
	return days
}

func (vm *WeatherViewModel) DayCount() int {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	if vm.data == nil {
		return 0
	}
	return len(vm.data.Days)
}

// DayRecord reports false for an index outside the current payload.
func (vm *WeatherViewModel) DayRecord(index int) (models.DayWeather, bool) {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	if vm.data == nil || index < 0 || index >= len(vm.data.Days) {
		return models.DayWeather{}, false
	}
	return vm.data.Days[index], true
}

func (vm *WeatherViewModel) IconForDay(index int) string {
	day, ok := vm.DayRecord(index)
	if !ok {
		return UnknownIcon
	}
	return IconSymbol(day.Icon)
}

// DayRows builds the forecast list relative to now.
func (vm *WeatherViewModel) DayRows(now time.Time) []models.DayRow {
	days := vm.DaysWeather()
	rows := make([]models.DayRow, 0, len(days))
	for _, day := range days {
		rows = append(rows, models.DayRow{
			Day:     DayLabel(day.Datetime, now),
			Icon:    IconSymbol(day.Icon),
			MaxTemp: DayTemperatureLabel(day.TempMax),
			MinTemp: DayTemperatureLabel(day.TempMin),
		})
	}
	return rows
}

func deriveViewState(data models.WeatherData) models.WeatherViewState {
	state := models.WeatherViewState{CityName: FormatCityName(data.Address)}
	if len(data.Days) == 0 {
		state.WeatherIcon = UnknownIcon
		state.TemperatureLabel = NoDataLabel
		return state
	}
	today := data.Days[0]
	state.WeatherIcon = IconSymbol(today.Icon)
	state.TemperatureLabel = TemperatureLabel(today.Temp)
	return state
}

func complete(completion func(error), err error) {
	if completion != nil {
		completion(err)
	}
}
