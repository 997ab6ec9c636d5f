package astro

import (
	"astroengine/internal/domain/models"
	"astroengine/internal/ephemeris"
)

// ToPlanetPositions converts raw ephemeris positions into chart
// placements, annotated with sign and, when cusps are given, house.
// Output follows the order of bodies, not map order.
func ToPlanetPositions(bodies []ephemeris.Body, raw map[ephemeris.Body]ephemeris.Position, houses *models.HouseCusps) []models.PlanetPosition {
	out := make([]models.PlanetPosition, 0, len(bodies))
	for _, b := range bodies {
		pos, ok := raw[b]
		if !ok {
			continue
		}
		sign, deg := SignAt(pos.Longitude)
		pp := models.PlanetPosition{
			Body:       string(b),
			Longitude:  pos.Longitude,
			Latitude:   pos.Latitude,
			Distance:   pos.Distance,
			Speed:      pos.Speed,
			Retrograde: pos.Speed < 0,
			Sign:       sign.Name,
			SignDegree: deg,
		}
		if houses != nil {
			pp.House = HouseOf(pos.Longitude, *houses)
		}
		out = append(out, pp)
	}
	return out
}
