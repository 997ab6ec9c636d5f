package astro

import "astroengine/internal/domain/models"

// Dominants tallies element, modality and sign emphasis by counting one
// placement per body.
func Dominants(positions []models.PlanetPosition) models.Dominants {
	d := models.Dominants{
		Elements:   make(map[string]int, 4),
		Modalities: make(map[string]int, 3),
		Signs:      make(map[string]int, 12),
	}
	for _, p := range positions {
		sign, _ := SignAt(p.Longitude)
		d.Elements[sign.Element]++
		d.Modalities[sign.Modality]++
		d.Signs[sign.Name]++
	}
	return d
}
