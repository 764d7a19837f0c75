package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/chrissnell/jyotish/pkg/chart"
	"github.com/chrissnell/jyotish/pkg/lunar"
)

func main() {
	var timeStr string
	flag.StringVar(&timeStr, "time", "", "Time to calculate the tithi for (RFC3339 format, e.g., 1990-01-01T12:00:00+03:30)")
	flag.Parse()

	var t time.Time
	if timeStr == "" {
		t = time.Now().UTC()
	} else {
		var err error
		t, err = time.Parse(time.RFC3339, timeStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing time: %v\n", err)
			os.Exit(1)
		}
	}

	e := lunar.Calculate(t)
	sunRashi, _ := chart.RashiName(e.Sun.Rashi)
	moonRashi, _ := chart.RashiName(e.Moon.Rashi)

	fmt.Printf("Tithi for %s\n", t.Format(time.RFC3339))
	fmt.Printf("  Tithi:        %s (%s Paksha, %d of 30)\n", chart.TithiName(e.Tithi), e.Paksha, e.Tithi)
	fmt.Printf("  Remaining:    %.1f%%\n", e.TithiLeft)
	fmt.Printf("  Elongation:   %.1f°\n", e.Elongation)
	fmt.Printf("  Moon Age:     %.1f days\n", e.AgeDays)
	fmt.Printf("  Sun:          %.2f° %s\n", e.Sun.Sidereal, sunRashi)
	fmt.Printf("  Moon:         %.2f° %s, %s pada %d\n", e.Moon.Sidereal, moonRashi, chart.NakshatraName(e.Moon.Nakshatra), e.Moon.Pada)
	fmt.Printf("  Ayanamsha:    %.4f°\n", e.Ayanamsha)
}
