package viewmodels

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"
)

const (
	// UnknownIcon is shown for unrecognised icon keys and missing days.
	UnknownIcon = "questionmark"
	// NoDataLabel replaces the temperature when the payload has no days.
	NoDataLabel = "--"
	TodayLabel  = "Today"

	dateLayout = "2006-01-02"
)

var iconSymbols = map[string]string{
	"clear-day":           "sun.max",
	"clear-night":         "moon.stars",
	"rain":                "cloud.rain",
	"snow":                "cloud.snow",
	"sleet":               "cloud.sleet",
	"wind":                "wind",
	"fog":                 "cloud.fog",
	"cloudy":              "cloud",
	"partly-cloudy-day":   "cloud.sun",
	"partly-cloudy-night": "cloud.moon",
}

// IconSymbol maps a provider icon key to a display symbol.
func IconSymbol(key string) string {
	if symbol, ok := iconSymbols[key]; ok {
		return symbol
	}
	return UnknownIcon
}

// FormatCityName splits a fused camel-case name ("NewYork") into words
// ("New York"). Names that already contain a space are returned unchanged.
// Letter case is never altered.
func FormatCityName(name string) string {
	if strings.Contains(name, " ") {
		return name
	}

	var b strings.Builder
	b.Grow(len(name) + 4)
	for i, r := range name {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// TemperatureLabel rounds to the nearest whole degree.
func TemperatureLabel(celsius float64) string {
	return fmt.Sprintf("%d°C", int(math.Round(celsius)))
}

// DayTemperatureLabel truncates toward zero, as the forecast list does.
func DayTemperatureLabel(celsius float64) string {
	return fmt.Sprintf("%d°C", int(math.Trunc(celsius)))
}

// DayLabel returns "Today" when date falls on the same calendar day as now,
// otherwise the English weekday name. Unparseable dates yield "".
func DayLabel(date string, now time.Time) string {
	day, err := time.ParseInLocation(dateLayout, date, now.Location())
	if err != nil {
		return ""
	}

	y1, m1, d1 := day.Date()
	y2, m2, d2 := now.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return TodayLabel
	}
	return day.Weekday().String()
}
