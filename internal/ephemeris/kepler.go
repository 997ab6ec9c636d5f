package ephemeris

import "math"

// Mean Keplerian elements and centennial rates for the major planets,
// referred to the mean ecliptic and equinox of J2000, fitted over
// 1800-2050 (E.M. Standish, JPL, "Keplerian Elements for Approximate
// Positions of the Major Planets"). Earth is represented by the
// Earth-Moon barycenter.
type elements struct {
	a, aDot    float64 // semi-major axis, au
	e, eDot    float64 // eccentricity
	i, iDot    float64 // inclination, deg
	l, lDot    float64 // mean longitude, deg
	peri, pDot float64 // longitude of perihelion, deg
	node, nDot float64 // longitude of ascending node, deg
}

var planetElements = map[Body]elements{
	Mercury: {0.38709927, 0.00000037, 0.20563593, 0.00001906, 7.00497902, -0.00594749,
		252.25032350, 149472.67411175, 77.45779628, 0.16047689, 48.33076593, -0.12534081},
	Venus: {0.72333566, 0.00000390, 0.00677672, -0.00004107, 3.39467605, -0.00078890,
		181.97909950, 58517.81538729, 131.60246718, 0.00268329, 76.67984255, -0.27769418},
	earthMoonBary: {1.00000261, 0.00000562, 0.01671123, -0.00004392, -0.00001531, -0.01294668,
		100.46457166, 35999.37244981, 102.93768193, 0.32327364, 0.0, 0.0},
	Mars: {1.52371034, 0.00001847, 0.09339410, 0.00007882, 1.84969142, -0.00813131,
		-4.55343205, 19140.30268499, -23.94362959, 0.44441088, 49.55953891, -0.29257343},
	Jupiter: {5.20288700, -0.00011607, 0.04838624, -0.00013253, 1.30439695, -0.00183714,
		34.39644051, 3034.74612775, 14.72847983, 0.21252668, 100.47390909, 0.20469106},
	Saturn: {9.53667594, -0.00125060, 0.05386179, -0.00050991, 2.48599187, 0.00193609,
		49.95424423, 1222.49362201, 92.59887831, -0.41897216, 113.66242448, -0.28867794},
	Uranus: {19.18916464, -0.00196176, 0.04725744, -0.00004397, 0.77263783, -0.00242939,
		313.23810451, 428.48202785, 170.95427630, 0.40805281, 74.01692503, 0.04240589},
	Neptune: {30.06992276, 0.00026291, 0.00859048, 0.00005105, 1.77004347, 0.00035372,
		-55.12002969, 218.45945325, 44.96476227, -0.32241464, 131.78422574, -0.00508664},
	Pluto: {39.48211675, -0.00031596, 0.24882730, 0.00005170, 17.14001206, 0.00004818,
		238.92903833, 145.20780515, 224.06891629, -0.04062942, 110.30393684, -0.01183482},
}

// solveKepler iterates Newton's method on Kepler's equation
// M = E - e*sin(E). All angles in radians.
func solveKepler(m, e float64) float64 {
	E := m
	if e > 0.8 {
		E = math.Pi
	}
	for i := 0; i < 12; i++ {
		dE := (E - e*math.Sin(E) - m) / (1 - e*math.Cos(E))
		E -= dE
		if math.Abs(dE) < 1e-12 {
			break
		}
	}
	return E
}

// helioPosition returns the J2000 ecliptic heliocentric rectangular
// coordinates of a planet, in au.
func helioPosition(body Body, jd float64) (x, y, z float64) {
	el, ok := planetElements[body]
	if !ok {
		return 0, 0, 0
	}
	t := JulianCenturies(jd)

	a := el.a + el.aDot*t
	e := el.e + el.eDot*t
	incl := deg2rad(el.i + el.iDot*t)
	l := el.l + el.lDot*t
	peri := el.peri + el.pDot*t
	node := el.node + el.nDot*t

	// argument of perihelion and mean anomaly
	w := deg2rad(peri - node)
	m := deg2rad(Norm360(l - peri))

	E := solveKepler(m, e)

	// perifocal coordinates
	xp := a * (math.Cos(E) - e)
	yp := a * math.Sqrt(1-e*e) * math.Sin(E)

	cw, sw := math.Cos(w), math.Sin(w)
	cn, sn := math.Cos(deg2rad(node)), math.Sin(deg2rad(node))
	ci, si := math.Cos(incl), math.Sin(incl)

	x = (cw*cn-sw*sn*ci)*xp + (-sw*cn-cw*sn*ci)*yp
	y = (cw*sn+sw*cn*ci)*xp + (-sw*sn+cw*cn*ci)*yp
	z = (sw*si)*xp + (cw*si)*yp
	return x, y, z
}

// geoEcliptic returns the geocentric ecliptic longitude and latitude in
// degrees and the distance in au for a planet or the Sun.
func geoEcliptic(body Body, jd float64) (lon, lat, dist float64) {
	ex, ey, ez := helioPosition(earthMoonBary, jd)

	var gx, gy, gz float64
	if body == Sun {
		gx, gy, gz = -ex, -ey, -ez
	} else {
		px, py, pz := helioPosition(body, jd)
		gx, gy, gz = px-ex, py-ey, pz-ez
	}

	dist = math.Sqrt(gx*gx + gy*gy + gz*gz)
	lon = Norm360(rad2deg(math.Atan2(gy, gx)))
	lat = rad2deg(math.Asin(gz / dist))
	return lon, lat, dist
}
