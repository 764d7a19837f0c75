package chart

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// BirthLayout is the combined layout of a birth date ("YYYY-MM-DD") and time ("HH:MM")
const BirthLayout = "2006-01-02 15:04"

// Fixed selectors sent with every request
const (
	DefaultVarga     = "D1,D9"
	DefaultInfoLevel = "basic,panchanga"
)

// Params is the query parameter set understood by the chart service's calculate endpoint.
// DST is always sent as zero; the service applies the zone's own rules.
type Params struct {
	Latitude  string
	Longitude string
	Year      int
	Month     int
	Day       int
	Hour      int
	Min       int
	Sec       int
	TimeZone  string
	DSTHour   int
	DSTMin    int
	Nesting   int
	Varga     string
	InfoLevel string
}

// BuildParams converts birth data into request parameters. A date or time that does not
// match BirthLayout returns a *ParseError.
func BuildParams(date, clock string, latitude, longitude float64, timezone string) (Params, error) {
	input := date + " " + clock
	t, err := time.Parse(BirthLayout, input)
	if err != nil {
		return Params{}, &ParseError{Input: input, Err: err}
	}

	return Params{
		Latitude:  FormatDecimal(latitude),
		Longitude: FormatDecimal(longitude),
		Year:      t.Year(),
		Month:     int(t.Month()),
		Day:       t.Day(),
		Hour:      t.Hour(),
		Min:       t.Minute(),
		TimeZone:  timezone,
		Varga:     DefaultVarga,
		InfoLevel: DefaultInfoLevel,
	}, nil
}

// Time returns the wall-clock birth time in loc
func (p Params) Time(loc *time.Location) time.Time {
	return time.Date(p.Year, time.Month(p.Month), p.Day, p.Hour, p.Min, p.Sec, 0, loc)
}

// Values encodes the parameters as a query string
func (p Params) Values() url.Values {
	v := url.Values{}
	v.Set("latitude", p.Latitude)
	v.Set("longitude", p.Longitude)
	v.Set("year", strconv.Itoa(p.Year))
	v.Set("month", strconv.Itoa(p.Month))
	v.Set("day", strconv.Itoa(p.Day))
	v.Set("hour", strconv.Itoa(p.Hour))
	v.Set("min", strconv.Itoa(p.Min))
	v.Set("sec", strconv.Itoa(p.Sec))
	v.Set("time_zone", p.TimeZone)
	v.Set("dst_hour", strconv.Itoa(p.DSTHour))
	v.Set("dst_min", strconv.Itoa(p.DSTMin))
	v.Set("nesting", strconv.Itoa(p.Nesting))
	v.Set("varga", p.Varga)
	v.Set("infolevel", p.InfoLevel)
	return v
}

// FormatDecimal renders a coordinate in its shortest form, keeping a trailing ".0" on
// whole numbers (49 becomes "49.0").
func FormatDecimal(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return s
	}
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
