package bot

import (
	"fmt"
	"html"
	"strings"

	"github.com/hws-labs/wetterbot/internal/weather"
)

// FormatWeather renders a snapshot for the given location name as
// Telegram HTML markup. The location name is user-controlled input and
// is escaped; everything else is numeric.
func FormatWeather(name string, snap weather.Snapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<strong>%s</strong>\n", html.EscapeString(name))
	fmt.Fprintf(&b, "Currently %s at %.1f°C, wind %.1f km/h\n",
		describeCondition(snap.Current.Condition),
		snap.Current.Temperature,
		snap.Current.WindSpeed,
	)
	fmt.Fprintf(&b, "Today: %.1f°C to %.1f°C, %s",
		snap.Today.TempMin,
		snap.Today.TempMax,
		describeCondition(snap.Today.Condition),
	)
	if snap.Today.PrecipMM > 0 {
		fmt.Fprintf(&b, ", %.1f mm precipitation", snap.Today.PrecipMM)
	}

	return b.String()
}

func describeCondition(c weather.Condition) string {
	switch c {
	case weather.ConditionClear:
		return "clear skies"
	case weather.ConditionCloudy:
		return "cloudy"
	case weather.ConditionRain:
		return "rainy"
	case weather.ConditionSnow:
		return "snowy"
	case weather.ConditionStorm:
		return "stormy"
	case weather.ConditionMist:
		return "misty"
	default:
		return "changeable"
	}
}
