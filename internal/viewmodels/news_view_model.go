package viewmodels

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-news-app/internal/models"
	"github.com/Nazarious-ucu/weather-news-app/internal/services/apiservice"
)

// MaxArticles bounds the headline list handed to the presentation.
const MaxArticles = 10

type newsSource interface {
	Fetch(ctx context.Context) (models.NewsData, error)
}

type NewsViewModel struct {
	source newsSource
	logger zerolog.Logger

	mu         sync.RWMutex
	data       *models.NewsData
	generation uint64
}

func NewNewsViewModel(source newsSource, logger zerolog.Logger) *NewsViewModel {
	return &NewsViewModel{source: source, logger: logger}
}

// LoadArticles follows the same completion contract as WeatherViewModel.FetchWeatherData.
func (vm *NewsViewModel) LoadArticles(ctx context.Context, completion func(error)) {
	vm.mu.RLock()
	generation := vm.generation
	vm.mu.RUnlock()

	go func() {
		data, err := vm.source.Fetch(ctx)
		complete(completion, vm.apply(generation, data, err))
	}()
}

func (vm *NewsViewModel) apply(generation uint64, data models.NewsData, err error) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if vm.generation != generation {
		vm.logger.Debug().Msg("dropping headlines for released view model")
		return apiservice.ErrReleased
	}
	if err != nil {
		return err
	}
	vm.data = &data
	return nil
}

// Articles returns at most MaxArticles headlines.
func (vm *NewsViewModel) Articles() []models.Article {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	if vm.data == nil {
		return []models.Article{}
	}
	n := min(len(vm.data.Articles), MaxArticles)
	articles := make([]models.Article, n)
	copy(articles, vm.data.Articles[:n])
	return articles
}

func (vm *NewsViewModel) Article(index int) (models.Article, bool) {
	articles := vm.Articles()
	if index < 0 || index >= len(articles) {
		return models.Article{}, false
	}
	return articles[index], true
}

func (vm *NewsViewModel) ResetData() {
	vm.mu.Lock()
	vm.data = nil
	vm.generation++
	vm.mu.Unlock()
}
