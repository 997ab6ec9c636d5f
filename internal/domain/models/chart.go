package models

import "time"

// House systems supported by the calculator.
const (
	HousePlacidus      = "placidus"
	HouseRegiomontanus = "regiomontanus"
	HousePorphyry      = "porphyry"
	HouseEqual         = "equal"
	HouseWholeSign     = "whole_sign"
)

// Progression methods supported by the calculator.
const (
	ProgressionSecondary = "secondary"
	ProgressionTertiary  = "tertiary"
	ProgressionMinor     = "minor"
	ProgressionSolarArc  = "solar_arc"
)

// BirthData identifies the instant and place a chart is cast for.
// Datetime must carry its own offset; all math runs in UTC.
type BirthData struct {
	Datetime  time.Time `json:"datetime"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timezone  string    `json:"timezone,omitempty"`
}

// ChartOptions selects what a chart computation includes.
type ChartOptions struct {
	HouseSystem      string `json:"house_system"`
	IncludeAspects   bool   `json:"include_aspects"`
	IncludeDominants bool   `json:"include_dominants"`
	IncludeMinor     bool   `json:"include_minor_aspects"`
	ZodiacType       string `json:"zodiac_type"`
}

// PlanetPosition is a body's place in the zodiac at the chart instant.
// Longitude and SignDegree are in degrees, Speed in degrees per day.
type PlanetPosition struct {
	Body       string  `json:"body"`
	Longitude  float64 `json:"longitude"`
	Latitude   float64 `json:"latitude"`
	Distance   float64 `json:"distance"`
	Speed      float64 `json:"speed"`
	Retrograde bool    `json:"retrograde"`
	Sign       string  `json:"sign"`
	SignDegree float64 `json:"sign_degree"`
	House      int     `json:"house,omitempty"`
}

// HouseCusps holds the twelve cusp longitudes plus the chart angles.
type HouseCusps struct {
	System    string      `json:"system"`
	Cusps     [12]float64 `json:"cusps"`
	Ascendant float64     `json:"ascendant"`
	Midheaven float64     `json:"midheaven"`
}

// Aspect is an angular relationship between two bodies.
type Aspect struct {
	Body1     string  `json:"body1"`
	Body2     string  `json:"body2"`
	Type      string  `json:"type"`
	Angle     float64 `json:"angle"`
	Orb       float64 `json:"orb"`
	Applying  bool    `json:"applying"`
	Influence float64 `json:"influence"`
}

// Dominants summarizes element, modality and sign emphasis by counting
// placements.
type Dominants struct {
	Elements   map[string]int `json:"elements"`
	Modalities map[string]int `json:"modalities"`
	Signs      map[string]int `json:"signs"`
}

// Chart is a complete natal chart. The ID is derived from the input hash
// so identical requests produce byte-identical charts. Aspects and
// Dominants are present only when the options ask for them.
type Chart struct {
	ID        string           `json:"chart_id"`
	BirthData BirthData        `json:"birth_data"`
	Options   ChartOptions     `json:"options"`
	Planets   []PlanetPosition `json:"planets"`
	Houses    HouseCusps       `json:"houses"`
	Aspects   []Aspect         `json:"aspects,omitempty"`
	Dominants *Dominants       `json:"dominants,omitempty"`
}

// ChartSummary is the compact view of a chart: the big three plus
// dominant emphasis.
type ChartSummary struct {
	ID         string    `json:"chart_id"`
	SunSign    string    `json:"sun_sign"`
	MoonSign   string    `json:"moon_sign"`
	RisingSign string    `json:"rising_sign"`
	Dominants  Dominants `json:"dominants"`
}

// TransitAspect is an aspect from a moving body to a natal placement.
type TransitAspect struct {
	TransitBody string    `json:"transit_body"`
	NatalBody   string    `json:"natal_body"`
	Type        string    `json:"type"`
	Orb         float64   `json:"orb"`
	Applying    bool      `json:"applying"`
	Influence   float64   `json:"influence"`
	Exact       bool      `json:"exact"`
	Timestamp   time.Time `json:"timestamp,omitempty"`
}

// TransitReport holds the sky and its contacts to a natal chart at one instant.
type TransitReport struct {
	Timestamp time.Time        `json:"timestamp"`
	Positions []PlanetPosition `json:"positions"`
	Aspects   []TransitAspect  `json:"aspects"`
}

// ForecastEvent is one dated transit contact inside a forecast window.
type ForecastEvent struct {
	Date        time.Time `json:"date"`
	TransitBody string    `json:"transit_body"`
	NatalBody   string    `json:"natal_body"`
	Type        string    `json:"type"`
	Orb         float64   `json:"orb"`
	Applying    bool      `json:"applying"`
}

// Forecast is a multi-year scan of slow-mover transits to a natal chart.
type Forecast struct {
	Start  time.Time       `json:"start"`
	End    time.Time       `json:"end"`
	Bodies []string        `json:"bodies"`
	Events []ForecastEvent `json:"events"`
}

// ProgressedChart is shaped like a natal chart cast at the progressed
// instant: placements, houses, intra-chart aspects and dominants, plus
// the progressed-to-natal contacts.
type ProgressedChart struct {
	Method         string           `json:"method"`
	TargetDate     time.Time        `json:"target_date"`
	Planets        []PlanetPosition `json:"planets"`
	Houses         HouseCusps       `json:"houses"`
	Aspects        []Aspect         `json:"aspects,omitempty"`
	Dominants      *Dominants       `json:"dominants,omitempty"`
	AspectsToNatal []TransitAspect  `json:"aspects_to_natal"`
}
