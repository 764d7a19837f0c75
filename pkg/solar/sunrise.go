// Package solar estimates sunrise and sunset locally, as a cross-check for the times
// returned by the chart service.
package solar

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// Zenith angle of the Sun's centre at rise and set, allowing for refraction and the
// solar disc radius
const sunriseZenith = 90.833

func degToRad(deg float64) float64 { return deg * math.Pi / 180.0 }
func radToDeg(rad float64) float64 { return rad * 180.0 / math.Pi }
func fixAngle(a float64) float64   { return a - 360.0*math.Floor(a/360.0) }

// sunCoordinates returns the Sun's apparent declination (degrees) and the equation of
// time (minutes) at the given instant
func sunCoordinates(t time.Time) (declinationDeg, eqTimeMin float64) {
	jd := julian.TimeToJD(t.UTC())
	T := (jd - 2451545.0) / 36525.0

	L0 := fixAngle(280.46646 + T*(36000.76983+T*0.0003032))
	M := fixAngle(357.52911 + T*(35999.05029-T*0.0001537))
	e := 0.016708634 - T*(0.000042037+T*0.0000001267)
	C := math.Sin(degToRad(M))*(1.914602-T*(0.004817+T*0.000014)) +
		math.Sin(degToRad(2*M))*(0.019993-T*0.000101) +
		math.Sin(degToRad(3*M))*0.000289
	Ω := 125.04 - 1934.136*T
	λ := L0 + C - 0.00569 - 0.00478*math.Sin(degToRad(Ω))
	eps0 := 23 + (26+(21.448-T*(46.815+T*(0.00059-T*0.001813)))/60)/60
	eps := eps0 + 0.00256*math.Cos(degToRad(Ω))

	declinationDeg = radToDeg(math.Asin(math.Sin(degToRad(eps)) * math.Sin(degToRad(λ))))

	y := math.Tan(degToRad(eps)/2) * math.Tan(degToRad(eps)/2)
	eqTimeMin = radToDeg(y*math.Sin(degToRad(2*L0))-
		2*e*math.Sin(degToRad(M))+
		4*e*y*math.Sin(degToRad(M))*math.Cos(degToRad(2*L0))-
		0.5*y*y*math.Sin(degToRad(4*L0))-
		1.25*e*e*math.Sin(degToRad(2*M))) * 4

	return declinationDeg, eqTimeMin
}

// CalculateSunriseSunset returns sunrise and sunset as minutes from midnight UTC for the
// calendar day of date at the given latitude and longitude (east positive).
// Returns (-1, -1) for polar day (sun never sets) or polar night (sun never rises).
func CalculateSunriseSunset(date time.Time, latitude, longitude float64) (sunriseMinutes, sunsetMinutes int) {
	noon := time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, time.UTC)
	declinationDeg, eqTimeMin := sunCoordinates(noon)

	latRad := degToRad(latitude)
	decRad := degToRad(declinationDeg)

	cosH := (math.Cos(degToRad(sunriseZenith)) - math.Sin(latRad)*math.Sin(decRad)) /
		(math.Cos(latRad) * math.Cos(decRad))

	// |cosH| > 1: the sun stays above (polar day) or below (polar night) the horizon
	if cosH < -1.0 || cosH > 1.0 {
		return -1, -1
	}

	hourAngleMinutes := radToDeg(math.Acos(cosH)) * 4.0

	// Each degree of longitude is 4 minutes of time; east is earlier in UTC
	solarNoonUTC := 720.0 - 4.0*longitude - eqTimeMin

	sunriseUTC := math.Mod(solarNoonUTC-hourAngleMinutes+2880, 1440)
	sunsetUTC := math.Mod(solarNoonUTC+hourAngleMinutes+2880, 1440)

	return int(math.Round(sunriseUTC)) % 1440, int(math.Round(sunsetUTC)) % 1440
}

// FormatSunTime converts UTC minutes from midnight on date's calendar day to a clock
// time in loc. Negative minutes (polar conditions) format as "".
func FormatSunTime(utcMinutes int, date time.Time, loc *time.Location) string {
	if utcMinutes < 0 {
		return ""
	}

	t := time.Date(date.Year(), date.Month(), date.Day(), 0, utcMinutes, 0, 0, time.UTC)
	return t.In(loc).Format("3:04 PM")
}
