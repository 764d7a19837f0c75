// Package lunar computes approximate sidereal Sun and Moon positions and the tithi they
// imply. Longitudes come from truncated Meeus series (Moon within a few tenths of a
// degree), which is enough to cross-check the rashi, nakshatra and tithi reported by the
// chart service but not to replace it near a boundary.
package lunar

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// SynodicMonth is the average length of the lunar cycle in days
const SynodicMonth = 29.530588853

// Widths in degrees; a tithi is measured in Sun-Moon elongation
const (
	tithiSpan     = 12.0
	rashiSpan     = 30.0
	nakshatraSpan = 360.0 / 27
	padaSpan      = nakshatraSpan / 4
)

// Lahiri ayanamsha at J2000.0 and its precession rate, in degrees
const (
	ayanamshaJ2000      = 23.85306
	ayanamshaPerCentury = 1.396971
)

// Paksha names
const (
	Shukla  = "Shukla"
	Krishna = "Krishna"
)

// Position is a body's ecliptic longitude and the divisions it falls in
type Position struct {
	Tropical  float64 // tropical ecliptic longitude, degrees [0,360)
	Sidereal  float64 // sidereal longitude after ayanamsha, degrees [0,360)
	Rashi     int     // 1-12
	Nakshatra int     // 1-27
	Pada      int     // 1-4
}

// Estimate is the locally computed state of the Sun and Moon at one instant
type Estimate struct {
	JulianDay  float64
	Ayanamsha  float64
	Sun        Position
	Moon       Position
	Elongation float64 // Sun→Moon angle in degrees [0,360)
	Tithi      int     // 1-30, counted from Shukla Pratipada
	Paksha     string
	TithiLeft  float64 // percentage of the current tithi remaining
	AgeDays    float64 // approximate days since new moon
}

// Calculate computes the estimate for an instant; t may be in any location
func Calculate(t time.Time) Estimate {
	jd := julian.TimeToJD(t.UTC())
	T := julianCenturies(jd)

	ayanamsha := ayanamshaJ2000 + ayanamshaPerCentury*T
	sun := position(sunEclipticLongitude(T), ayanamsha)
	moon := position(moonEclipticLongitude(T), ayanamsha)

	elongation := normalizeAngle(moon.Tropical - sun.Tropical)
	tithi := int(elongation/tithiSpan) + 1
	paksha := Shukla
	if tithi > 15 {
		paksha = Krishna
	}

	return Estimate{
		JulianDay:  jd,
		Ayanamsha:  ayanamsha,
		Sun:        sun,
		Moon:       moon,
		Elongation: elongation,
		Tithi:      tithi,
		Paksha:     paksha,
		TithiLeft:  (tithiSpan - math.Mod(elongation, tithiSpan)) / tithiSpan * 100,
		AgeDays:    elongation / 360.0 * SynodicMonth,
	}
}

func position(tropical, ayanamsha float64) Position {
	sidereal := normalizeAngle(tropical - ayanamsha)
	return Position{
		Tropical:  tropical,
		Sidereal:  sidereal,
		Rashi:     int(sidereal/rashiSpan) + 1,
		Nakshatra: int(sidereal/nakshatraSpan) + 1,
		Pada:      int(math.Mod(sidereal, nakshatraSpan)/padaSpan) + 1,
	}
}

// julianCenturies returns Julian centuries since J2000.0
func julianCenturies(jd float64) float64 {
	return (jd - 2451545.0) / 36525.0
}

// normalizeAngle wraps an angle to the range [0, 360)
func normalizeAngle(angle float64) float64 {
	angle = math.Mod(angle, 360)
	if angle < 0 {
		angle += 360
	}
	return angle
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// sunEclipticLongitude computes the Sun's ecliptic longitude in degrees
func sunEclipticLongitude(T float64) float64 {
	// Mean longitude
	L0 := 280.46646 + 36000.76983*T + 0.0003032*T*T

	// Mean anomaly
	M := 357.52911 + 35999.05029*T - 0.0001537*T*T
	Mrad := degToRad(normalizeAngle(M))

	// Equation of center
	C := (1.914602-0.004817*T-0.000014*T*T)*math.Sin(Mrad) +
		(0.019993-0.000101*T)*math.Sin(2*Mrad) +
		0.000289*math.Sin(3*Mrad)

	return normalizeAngle(L0 + C)
}

// moonEclipticLongitude computes the Moon's ecliptic longitude in degrees
func moonEclipticLongitude(T float64) float64 {
	// Mean longitude
	L := 218.3164477 +
		481267.88123421*T -
		0.0015786*T*T +
		T*T*T/538841 -
		T*T*T*T/65194000

	// Moon mean elongation
	D := 297.8501921 +
		445267.1114034*T -
		0.0018819*T*T +
		T*T*T/545868 -
		T*T*T*T/113065000

	// Sun mean anomaly
	M := 357.5291092 +
		35999.0502909*T -
		0.0001536*T*T

	// Moon mean anomaly
	Mp := 134.9633964 +
		477198.8675055*T +
		0.0087414*T*T +
		T*T*T/69699 -
		T*T*T*T/14712000

	// Argument of latitude
	F := 93.2720950 +
		483202.0175233*T -
		0.0036539*T*T

	Drad := degToRad(normalizeAngle(D))
	Mrad := degToRad(normalizeAngle(M))
	Mprad := degToRad(normalizeAngle(Mp))
	Frad := degToRad(normalizeAngle(F))

	// Largest periodic terms of Meeus Table 47.A
	lambdaMoon := L +
		6.288774*math.Sin(Mprad) +
		1.274027*math.Sin(2*Drad-Mprad) +
		0.658314*math.Sin(2*Drad) +
		0.213618*math.Sin(2*Mprad) -
		0.185116*math.Sin(Mrad) -
		0.114332*math.Sin(2*Frad) +
		0.058793*math.Sin(2*Drad-2*Mprad) +
		0.057066*math.Sin(2*Drad-Mrad-Mprad) +
		0.053322*math.Sin(2*Drad+Mprad) +
		0.045758*math.Sin(2*Drad-Mrad) -
		0.040923*math.Sin(Mrad-Mprad) -
		0.034720*math.Sin(Drad) -
		0.030383*math.Sin(Mrad+Mprad)

	return normalizeAngle(lambdaMoon)
}
