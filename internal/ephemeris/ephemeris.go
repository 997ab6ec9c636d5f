// Package ephemeris computes geocentric positions of the Sun, Moon,
// planets and lunar nodes from built-in analytic series. Accuracy is on
// the order of arc minutes inside the fitted epoch, which is more than
// enough for sign, house and aspect work.
package ephemeris

import (
	"context"
	"fmt"

	"astroengine/internal/domain/models"
)

// Body identifies a chart point the provider can compute.
type Body string

const (
	Sun       Body = "sun"
	Moon      Body = "moon"
	Mercury   Body = "mercury"
	Venus     Body = "venus"
	Mars      Body = "mars"
	Jupiter   Body = "jupiter"
	Saturn    Body = "saturn"
	Uranus    Body = "uranus"
	Neptune   Body = "neptune"
	Pluto     Body = "pluto"
	NorthNode Body = "north_node"
	SouthNode Body = "south_node"

	// internal only, never exposed in charts
	earthMoonBary Body = "embary"
)

// DefaultBodies is the standard chart point set in zodiacal order of use.
var DefaultBodies = []Body{
	Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto,
	NorthNode, SouthNode,
}

// IsValid reports whether b names a computable chart point.
func IsValid(b Body) bool {
	switch b {
	case Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune,
		Pluto, NorthNode, SouthNode:
		return true
	}
	return false
}

// Position is a geocentric ecliptic position. Longitude and Latitude are
// in degrees, Distance in au, Speed in degrees of longitude per day
// (negative while retrograde).
type Position struct {
	Longitude float64
	Latitude  float64
	Distance  float64
	Speed     float64
}

// Source computes positions for a Julian day. Extracted as an interface
// so services can be tested against a counting or canned implementation.
type Source interface {
	PositionAt(ctx context.Context, body Body, jd float64) (Position, error)
	PositionsAt(ctx context.Context, bodies []Body, jd float64) (map[Body]Position, error)
}

// Provider is the built-in analytic Source. The zero value is not
// usable; construct with New.
type Provider struct {
	minYear int
	maxYear int
}

// New returns a Provider that accepts instants between minYear and
// maxYear inclusive, the validity range of the element fit.
func New(minYear, maxYear int) *Provider {
	return &Provider{minYear: minYear, maxYear: maxYear}
}

// speedStep is the half-width in days of the central difference used
// for longitude speeds.
const speedStep = 0.5

func (p *Provider) checkEpoch(jd float64) error {
	year := 2000.0 + (jd-J2000)/365.25
	if year < float64(p.minYear) || year >= float64(p.maxYear)+1 {
		return models.NewEphemerisUnavailable(
			"instant outside supported epoch %d-%d", p.minYear, p.maxYear)
	}
	return nil
}

// longitudeAt dispatches to the per-body theory without epoch or
// context checks.
func longitudeAt(body Body, jd float64) (lon, lat, dist float64) {
	switch body {
	case Moon:
		return moonPosition(jd)
	case NorthNode:
		return meanNodeLongitude(jd), 0, 0
	case SouthNode:
		return Norm360(meanNodeLongitude(jd) + 180), 0, 0
	default:
		return geoEcliptic(body, jd)
	}
}

// PositionAt returns the geocentric position of one body. The speed is
// a central difference over one day, so retrograde stations resolve to
// the sign of the mean motion across that day.
func (p *Provider) PositionAt(ctx context.Context, body Body, jd float64) (Position, error) {
	if err := ctx.Err(); err != nil {
		return Position{}, err
	}
	if !IsValid(body) {
		return Position{}, fmt.Errorf("unknown body %q", body)
	}
	if err := p.checkEpoch(jd); err != nil {
		return Position{}, err
	}

	lon, lat, dist := longitudeAt(body, jd)
	before, _, _ := longitudeAt(body, jd-speedStep)
	after, _, _ := longitudeAt(body, jd+speedStep)
	speed := SignedDelta(after, before) / (2 * speedStep)

	return Position{Longitude: lon, Latitude: lat, Distance: dist, Speed: speed}, nil
}

// PositionsAt computes several bodies for the same instant.
func (p *Provider) PositionsAt(ctx context.Context, bodies []Body, jd float64) (map[Body]Position, error) {
	out := make(map[Body]Position, len(bodies))
	for _, b := range bodies {
		pos, err := p.PositionAt(ctx, b, jd)
		if err != nil {
			return nil, fmt.Errorf("position of %s: %w", b, err)
		}
		out[b] = pos
	}
	return out, nil
}
