package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/chrissnell/jyotish/pkg/chart"
	"github.com/chrissnell/jyotish/pkg/lunar"
	"github.com/chrissnell/jyotish/pkg/solar"
)

// Estimate writes a locally computed cross-check of the chart for birth time t (which
// carries the birth timezone) at the given coordinates. It needs no service response.
func Estimate(w io.Writer, t time.Time, latitude, longitude float64) error {
	e := lunar.Calculate(t)

	var b strings.Builder
	header(&b, "Local Estimate")

	fmt.Fprintf(&b, "Ayanamsha: %.4f°\n", e.Ayanamsha)
	writeBody(&b, "Sun", e.Sun)
	writeBody(&b, "Moon", e.Moon)

	fmt.Fprintf(&b, "\nTithi: %s (%s Paksha)\n", chart.TithiName(e.Tithi), e.Paksha)
	fmt.Fprintf(&b, "  Remaining: %.2f%%\n", e.TithiLeft)

	sunrise, sunset := solar.CalculateSunriseSunset(t, latitude, longitude)
	fmt.Fprintf(&b, "\nSunrise: %s\n", sunTime(sunrise, t))
	fmt.Fprintf(&b, "Sunset: %s\n", sunTime(sunset, t))

	_, err := io.WriteString(w, b.String())
	return err
}

func writeBody(b *strings.Builder, name string, p lunar.Position) {
	rashi, _ := chart.RashiName(p.Rashi)
	fmt.Fprintf(b, "\n%s:\n", name)
	fmt.Fprintf(b, "  Sidereal Longitude: %.4f°\n", p.Sidereal)
	fmt.Fprintf(b, "  Sign (Rashi): %s\n", rashi)
	fmt.Fprintf(b, "  Nakshatra: %s\n", chart.NakshatraName(p.Nakshatra))
	fmt.Fprintf(b, "  Pada: %d\n", p.Pada)
}

func sunTime(minutes int, t time.Time) string {
	if minutes < 0 {
		return chart.NotAvailable
	}
	return solar.FormatSunTime(minutes, t, t.Location())
}
