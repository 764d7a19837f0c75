// Package report renders chart responses as human-readable text. Every renderer has two
// entry points: one for an already-decoded *chart.Response and one for raw JSON text.
// Renderers never modify the response.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/chrissnell/jyotish/pkg/chart"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var rule = strings.Repeat("-", 50)

// PlanetaryPositions writes the position of every graha in document order
func PlanetaryPositions(w io.Writer, resp *chart.Response) error {
	c, err := chartOf(resp)
	if err != nil {
		return err
	}

	var b strings.Builder
	header(&b, "Planetary Positions")

	for _, code := range c.Graha.Codes() {
		g, _ := c.Graha.Get(code)

		fmt.Fprintf(&b, "\n%s:\n", chart.PlanetName(code))
		fmt.Fprintf(&b, "  Longitude: %s°\n", g.Longitude)
		fmt.Fprintf(&b, "  Sign (Rashi): %s\n", rashiLabel(g.Rashi))
		if g.Nakshatra != nil {
			fmt.Fprintf(&b, "  Nakshatra: %s\n", g.Nakshatra.Name)
			fmt.Fprintf(&b, "  Pada: %s\n", g.Nakshatra.Pada)
		}
		if g.Speed.Present() {
			fmt.Fprintf(&b, "  Speed: %s\n", g.Speed)
		}
		if g.RashiAvastha.Present() {
			fmt.Fprintf(&b, "  Dignity: %s\n", titleCase(g.RashiAvastha.String()))
		}
	}

	_, err = io.WriteString(w, b.String())
	return err
}

// PlanetaryPositionsJSON parses text and writes the planetary positions
func PlanetaryPositionsJSON(w io.Writer, text string) error {
	resp, err := chart.ParseString(text)
	if err != nil {
		return err
	}
	return PlanetaryPositions(w, resp)
}

// Panchanga writes the five calendar elements. Nothing is written when the response
// carries no panchanga.
func Panchanga(w io.Writer, resp *chart.Response) error {
	c, err := chartOf(resp)
	if err != nil {
		return err
	}
	if c.Panchanga == nil {
		return nil
	}
	p := c.Panchanga

	var b strings.Builder
	header(&b, "Panchanga Details")

	fmt.Fprintf(&b, "Tithi: %s (%s Paksha)\n", p.Tithi.Name, p.Tithi.Paksha)
	fmt.Fprintf(&b, "  Remaining: %s%%\n", p.Tithi.Left)

	fmt.Fprintf(&b, "\nNakshatra: %s\n", p.Nakshatra.Name)
	fmt.Fprintf(&b, "  Pada: %s\n", p.Nakshatra.Pada)
	fmt.Fprintf(&b, "  Remaining: %s%%\n", p.Nakshatra.Left)

	fmt.Fprintf(&b, "\nYoga: %s\n", p.Yoga.Name)
	fmt.Fprintf(&b, "  Remaining: %s%%\n", p.Yoga.Left)

	fmt.Fprintf(&b, "\nKarana: %s\n", p.Karana.Name)
	fmt.Fprintf(&b, "  Remaining: %s%%\n", p.Karana.Left)

	fmt.Fprintf(&b, "\nVara: %s\n", p.Vara.Name)

	_, err = io.WriteString(w, b.String())
	return err
}

// PanchangaJSON parses text and writes the panchanga
func PanchangaJSON(w io.Writer, text string) error {
	resp, err := chart.ParseString(text)
	if err != nil {
		return err
	}
	return Panchanga(w, resp)
}

// RisingSetting writes the Sun's rising and setting time for each day the service
// returned. Nothing is written when the response carries no rising section.
func RisingSetting(w io.Writer, resp *chart.Response) error {
	c, err := chartOf(resp)
	if err != nil {
		return err
	}
	if c.Rising == nil {
		return nil
	}

	var b strings.Builder
	header(&b, "Rising and Setting Times")

	for _, day := range c.SunRising() {
		b.WriteString("\nDate:\n")
		fmt.Fprintf(&b, "  Sunrise: %s\n", day.Rising)
		fmt.Fprintf(&b, "  Sunset: %s\n", day.Setting)
	}

	_, err = io.WriteString(w, b.String())
	return err
}

// RisingSettingJSON parses text and writes the rising and setting times
func RisingSettingJSON(w io.Writer, text string) error {
	resp, err := chart.ParseString(text)
	if err != nil {
		return err
	}
	return RisingSetting(w, resp)
}

// All writes the three service reports in order
func All(w io.Writer, resp *chart.Response) error {
	for _, render := range []func(io.Writer, *chart.Response) error{
		PlanetaryPositions,
		Panchanga,
		RisingSetting,
	} {
		if err := render(w, resp); err != nil {
			return err
		}
	}
	return nil
}

func chartOf(resp *chart.Response) (*chart.Chart, error) {
	if resp == nil || resp.Chart == nil {
		return nil, chart.ErrNoChart
	}
	return resp.Chart, nil
}

func header(b *strings.Builder, title string) {
	fmt.Fprintf(b, "\n%s:\n%s\n", title, rule)
}

func rashiLabel(v chart.Value) string {
	if n, ok := v.Int(); ok {
		if name, ok := chart.RashiName(n); ok {
			return name
		}
	}
	return "Rashi " + v.String()
}

func titleCase(s string) string {
	return cases.Title(language.Und).String(s)
}
