package ephemeris

import (
	"math"
	"time"
)

// J2000 is the Julian day of the standard epoch 2000 January 1.5 TT.
const J2000 = 2451545.0

const daysPerCentury = 36525.0

// JulianDay converts an instant to a Julian day number. The conversion
// goes through Unix seconds, so the input's zone is irrelevant.
func JulianDay(t time.Time) float64 {
	sec := float64(t.Unix()) + float64(t.Nanosecond())/1e9
	return sec/86400.0 + 2440587.5
}

// TimeFromJD is the inverse of JulianDay, truncated to the nearest second.
func TimeFromJD(jd float64) time.Time {
	sec := (jd - 2440587.5) * 86400.0
	return time.Unix(int64(math.Round(sec)), 0).UTC()
}

// JulianCenturies measures time from J2000 in Julian centuries.
func JulianCenturies(jd float64) float64 {
	return (jd - J2000) / daysPerCentury
}

// Norm360 folds an angle in degrees into [0, 360).
func Norm360(deg float64) float64 {
	d := math.Mod(deg, 360.0)
	if d < 0 {
		d += 360.0
	}
	return d
}

// SignedDelta returns the signed difference a-b folded into (-180, 180].
func SignedDelta(a, b float64) float64 {
	d := math.Mod(a-b, 360.0)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return d
}

// Separation returns the unsigned angular distance between two
// longitudes, folded into [0, 180].
func Separation(a, b float64) float64 {
	return math.Abs(SignedDelta(a, b))
}

// ObliquityDeg returns the mean obliquity of the ecliptic in degrees.
func ObliquityDeg(jd float64) float64 {
	t := JulianCenturies(jd)
	return 23.43929111 - 0.0130041667*t - 1.639e-7*t*t + 5.036e-7*t*t*t
}

// GMSTDeg returns Greenwich mean sidereal time in degrees.
func GMSTDeg(jd float64) float64 {
	t := JulianCenturies(jd)
	gmst := 280.46061837 +
		360.98564736629*(jd-J2000) +
		0.000387933*t*t -
		t*t*t/38710000.0
	return Norm360(gmst)
}

func deg2rad(d float64) float64 { return d * math.Pi / 180.0 }
func rad2deg(r float64) float64 { return r * 180.0 / math.Pi }
