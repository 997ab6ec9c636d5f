package astro

import (
	"sort"

	"astroengine/internal/domain/models"
	"astroengine/internal/ephemeris"
)

// AspectDef is one recognized angular relationship: its exact angle,
// the maximum orb allowed, and the base influence weight at orb zero.
type AspectDef struct {
	Name      string
	Angle     float64
	MaxOrb    float64
	Influence float64
}

// MajorAspects are the Ptolemaic aspects.
var MajorAspects = []AspectDef{
	{"conjunction", 0, 8, 1.0},
	{"opposition", 180, 8, 0.9},
	{"trine", 120, 6, 0.8},
	{"square", 90, 6, 0.7},
	{"sextile", 60, 4, 0.6},
}

// MinorAspects extend the search when requested.
var MinorAspects = []AspectDef{
	{"semi_square", 45, 2, 0.4},
	{"sesquiquadrate", 135, 2, 0.4},
	{"semi_sextile", 30, 2, 0.3},
	{"quincunx", 150, 3, 0.5},
	{"quintile", 72, 2, 0.3},
	{"bi_quintile", 144, 2, 0.3},
}

// aspectSet returns the definitions to search, majors first.
func aspectSet(includeMinor bool) []AspectDef {
	if !includeMinor {
		return MajorAspects
	}
	set := make([]AspectDef, 0, len(MajorAspects)+len(MinorAspects))
	set = append(set, MajorAspects...)
	set = append(set, MinorAspects...)
	return set
}

// match holds a candidate aspect for one body pair.
type match struct {
	def AspectDef
	orb float64
}

// closestAspect finds the single aspect whose exact angle lies nearest
// to the separation, within orb. When two definitions both admit the
// separation the smaller orb distance wins; on an exact tie the tighter
// allowed orb wins. Returns false when no definition is within orb.
func closestAspect(sep float64, defs []AspectDef) (match, bool) {
	best := match{orb: -1}
	for _, d := range defs {
		orb := sep - d.Angle
		if orb < 0 {
			orb = -orb
		}
		if orb > d.MaxOrb {
			continue
		}
		if best.orb < 0 || orb < best.orb ||
			(orb == best.orb && d.MaxOrb < best.def.MaxOrb) {
			best = match{def: d, orb: orb}
		}
	}
	return best, best.orb >= 0
}

// influence scales the base weight linearly down to zero at max orb.
func influence(m match) float64 {
	return m.def.Influence * (1 - m.orb/m.def.MaxOrb)
}

// isApplying reports whether the aspect is still tightening: advancing
// both longitudes by their daily speeds must shrink the orb.
func isApplying(lon1, speed1, lon2, speed2, exactAngle float64) bool {
	now := ephemeris.Separation(lon1, lon2)
	next := ephemeris.Separation(lon1+speed1, lon2+speed2)
	orbNow := abs(now - exactAngle)
	orbNext := abs(next - exactAngle)
	return orbNext < orbNow
}

// Aspects searches every unordered pair of positions for its closest
// aspect. At most one aspect is reported per pair. Output order is
// stable: by first body, then second, in input order.
func Aspects(positions []models.PlanetPosition, includeMinor bool) []models.Aspect {
	defs := aspectSet(includeMinor)
	var out []models.Aspect
	for i := 0; i < len(positions); i++ {
		for j := i + 1; j < len(positions); j++ {
			a, b := positions[i], positions[j]
			sep := ephemeris.Separation(a.Longitude, b.Longitude)
			m, ok := closestAspect(sep, defs)
			if !ok {
				continue
			}
			out = append(out, models.Aspect{
				Body1:     a.Body,
				Body2:     b.Body,
				Type:      m.def.Name,
				Angle:     sep,
				Orb:       m.orb,
				Applying:  isApplying(a.Longitude, a.Speed, b.Longitude, b.Speed, m.def.Angle),
				Influence: influence(m),
			})
		}
	}
	return out
}

// TightAspects restrict forecast scans to near-exact major contacts.
var TightAspects = []AspectDef{
	{"conjunction", 0, 1.0, 1.0},
	{"opposition", 180, 1.0, 0.9},
	{"trine", 120, 0.8, 0.8},
	{"square", 90, 0.8, 0.7},
	{"sextile", 60, 0.6, 0.6},
}

// CrossAspects searches aspects from each moving position to each natal
// position. Pairs naming the same body are skipped so a chart compared
// against its own instant reports only inter-body contacts.
func CrossAspects(moving, natal []models.PlanetPosition, includeMinor bool) []models.TransitAspect {
	return CrossAspectsWith(moving, natal, aspectSet(includeMinor))
}

// CrossAspectsWith is CrossAspects with an explicit definition set,
// used by forecast scans that want tighter orbs.
func CrossAspectsWith(moving, natal []models.PlanetPosition, defs []AspectDef) []models.TransitAspect {
	var out []models.TransitAspect
	for _, t := range moving {
		for _, n := range natal {
			if t.Body == n.Body {
				continue
			}
			sep := ephemeris.Separation(t.Longitude, n.Longitude)
			m, ok := closestAspect(sep, defs)
			if !ok {
				continue
			}
			out = append(out, models.TransitAspect{
				TransitBody: t.Body,
				NatalBody:   n.Body,
				Type:        m.def.Name,
				Orb:         m.orb,
				Applying:    isApplying(t.Longitude, t.Speed, n.Longitude, 0, m.def.Angle),
				Influence:   influence(m),
				Exact:       m.orb < 0.1,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Orb < out[j].Orb })
	return out
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
