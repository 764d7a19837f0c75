package chart

import "fmt"

// SunCode is the graha code the service uses for the Sun
const SunCode = "Sy"

var planetNames = map[string]string{
	"Sy": "Sun (Surya)",
	"Ch": "Moon (Chandra)",
	"Ma": "Mars (Mangal)",
	"Bu": "Mercury (Buddha)",
	"Gu": "Jupiter (Guru)",
	"Sk": "Venus (Shukra)",
	"Sa": "Saturn (Shani)",
	"Ra": "Rahu",
	"Ke": "Ketu",
}

// Indexed by rashi number minus one
var rashiNames = [12]string{
	"Mesha (Aries)",
	"Vrishabha (Taurus)",
	"Mithuna (Gemini)",
	"Karka (Cancer)",
	"Simha (Leo)",
	"Kanya (Virgo)",
	"Tula (Libra)",
	"Vrishchika (Scorpio)",
	"Dhanu (Sagittarius)",
	"Makara (Capricorn)",
	"Kumbha (Aquarius)",
	"Meena (Pisces)",
}

// Indexed by nakshatra number minus one
var nakshatraNames = [27]string{
	"Ashvini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra", "Punarvasu",
	"Pushya", "Ashlesha", "Magha", "Purva Phalguni", "Uttara Phalguni", "Hasta",
	"Chitra", "Svati", "Vishakha", "Anuradha", "Jyeshtha", "Mula", "Purva Ashadha",
	"Uttara Ashadha", "Shravana", "Dhanishtha", "Shatabhisha", "Purva Bhadrapada",
	"Uttara Bhadrapada", "Revati",
}

// Tithi names within one paksha; the fifteenth is Purnima in Shukla and Amavasya in Krishna
var tithiNames = [14]string{
	"Pratipada", "Dvitiya", "Tritiya", "Chaturthi", "Panchami", "Shashthi", "Saptami",
	"Ashtami", "Navami", "Dashami", "Ekadashi", "Dvadashi", "Trayodashi", "Chaturdashi",
}

// PlanetName returns the display name for a graha code, or the code itself when unmapped
func PlanetName(code string) string {
	if name, ok := planetNames[code]; ok {
		return name
	}
	return code
}

// RashiName returns the display name of rashi n (1-12) and whether n is mapped
func RashiName(n int) (string, bool) {
	if n < 1 || n > len(rashiNames) {
		return "", false
	}
	return rashiNames[n-1], true
}

// NakshatraName returns the name of nakshatra n (1-27)
func NakshatraName(n int) string {
	if n < 1 || n > len(nakshatraNames) {
		return fmt.Sprintf("Nakshatra %d", n)
	}
	return nakshatraNames[n-1]
}

// TithiName returns the name of tithi n (1-30) counted from Shukla Pratipada
func TithiName(n int) string {
	switch {
	case n == 15:
		return "Purnima"
	case n == 30:
		return "Amavasya"
	case n >= 1 && n <= 14:
		return tithiNames[n-1]
	case n >= 16 && n <= 29:
		return tithiNames[n-16]
	}
	return fmt.Sprintf("Tithi %d", n)
}
