// Package astro derives zodiacal structure from ephemeris positions:
// signs, house cusps, aspects and dominant emphasis.
package astro

// Elements.
const (
	Fire  = "fire"
	Earth = "earth"
	Air   = "air"
	Water = "water"
)

// Modalities.
const (
	Cardinal = "cardinal"
	Fixed    = "fixed"
	Mutable  = "mutable"
)

// Sign describes one 30 degree segment of the tropical zodiac.
type Sign struct {
	Name     string
	Element  string
	Modality string
}

// Signs in zodiacal order starting at 0 Aries.
var Signs = [12]Sign{
	{"aries", Fire, Cardinal},
	{"taurus", Earth, Fixed},
	{"gemini", Air, Mutable},
	{"cancer", Water, Cardinal},
	{"leo", Fire, Fixed},
	{"virgo", Earth, Mutable},
	{"libra", Air, Cardinal},
	{"scorpio", Water, Fixed},
	{"sagittarius", Fire, Mutable},
	{"capricorn", Earth, Cardinal},
	{"aquarius", Air, Fixed},
	{"pisces", Water, Mutable},
}

// SignAt returns the sign containing an ecliptic longitude and the
// degree within that sign.
func SignAt(lon float64) (Sign, float64) {
	l := norm360(lon)
	idx := int(l / 30.0)
	if idx > 11 {
		idx = 11
	}
	return Signs[idx], l - float64(idx)*30.0
}
