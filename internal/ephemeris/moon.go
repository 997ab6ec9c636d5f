package ephemeris

import "math"

// Truncated lunar theory after Meeus, Astronomical Algorithms ch. 47.
// The leading periodic terms give the Moon's longitude to a few arc
// minutes, which is ample for sign and aspect work.

// coefficients: multiples of D, M, M', F and the sine amplitude
// (degrees * 1e-6).
type lunarTerm struct {
	d, m, mp, f int
	amp         float64
}

var lunarLonTerms = []lunarTerm{
	{0, 0, 1, 0, 6.288774},
	{2, 0, -1, 0, 1.274027},
	{2, 0, 0, 0, 0.658314},
	{0, 0, 2, 0, 0.213618},
	{0, 1, 0, 0, -0.185116},
	{0, 0, 0, 2, -0.114332},
	{2, 0, -2, 0, 0.058793},
	{2, -1, -1, 0, 0.057066},
	{2, 0, 1, 0, 0.053322},
	{2, -1, 0, 0, 0.045758},
	{0, 1, -1, 0, -0.040923},
	{1, 0, 0, 0, -0.034720},
	{0, 1, 1, 0, -0.030383},
}

var lunarLatTerms = []lunarTerm{
	{0, 0, 0, 1, 5.128122},
	{0, 0, 1, 1, 0.280602},
	{0, 0, 1, -1, 0.277693},
	{2, 0, 0, -1, 0.173237},
}

// moonPosition returns the Moon's geocentric ecliptic longitude and
// latitude in degrees and its distance in au.
func moonPosition(jd float64) (lon, lat, dist float64) {
	t := JulianCenturies(jd)

	// fundamental arguments, degrees
	lp := Norm360(218.3164477 + 481267.88123421*t - 0.0015786*t*t)  // mean longitude
	d := Norm360(297.8501921 + 445267.1114034*t - 0.0018819*t*t)    // mean elongation
	m := Norm360(357.5291092 + 35999.0502909*t - 0.0001536*t*t)     // Sun mean anomaly
	mp := Norm360(134.9633964 + 477198.8675055*t + 0.0087414*t*t)   // Moon mean anomaly
	f := Norm360(93.2720950 + 483202.0175233*t - 0.0036539*t*t)     // argument of latitude

	var sumLon, sumLat float64
	for _, term := range lunarLonTerms {
		arg := deg2rad(float64(term.d)*d + float64(term.m)*m + float64(term.mp)*mp + float64(term.f)*f)
		sumLon += term.amp * math.Sin(arg)
	}
	for _, term := range lunarLatTerms {
		arg := deg2rad(float64(term.d)*d + float64(term.m)*m + float64(term.mp)*mp + float64(term.f)*f)
		sumLat += term.amp * math.Sin(arg)
	}

	lon = Norm360(lp + sumLon)
	lat = sumLat

	// mean distance with the largest periodic correction, km -> au
	km := 385000.56 - 20905.355*math.Cos(deg2rad(mp))
	dist = km / 149597870.7
	return lon, lat, dist
}

// meanNodeLongitude returns the mean longitude of the Moon's ascending
// node in degrees.
func meanNodeLongitude(jd float64) float64 {
	t := JulianCenturies(jd)
	return Norm360(125.0445479 - 1934.1362891*t + 0.0020754*t*t)
}
