package weather

import (
	"fmt"
	"strings"
)

const separatorWidth = 60

// FormatForecast renders the first MaxPeriods periods of f as plain text,
// preceded by a header naming the coordinate.
func FormatForecast(f *Forecast) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Weather Forecast for coordinates %s\n", f.Coordinate)
	b.WriteString(strings.Repeat("=", separatorWidth))
	b.WriteString("\n\n")

	periods := f.Periods
	if len(periods) > MaxPeriods {
		periods = periods[:MaxPeriods]
	}

	for _, p := range periods {
		fmt.Fprintf(&b, "%s:\n", p.Name)
		fmt.Fprintf(&b, "  Temperature: %d°%s\n", p.Temperature, p.TemperatureUnit)
		fmt.Fprintf(&b, "  Wind: %s %s\n", p.WindSpeed, p.WindDirection)
		fmt.Fprintf(&b, "  Forecast: %s\n", p.ShortForecast)
		fmt.Fprintf(&b, "  Detailed: %s\n", p.DetailedForecast)
		b.WriteString("\n")
	}

	return b.String()
}
