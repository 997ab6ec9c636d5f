package models

import (
	"strconv"
	"time"
)

// Request models live alongside the domain types they bind to.

// BirthDataRequest is the wire form of BirthData. Datetime is RFC3339
// so an offset travels with the value; when Timezone is also given it
// wins, and the datetime's wall clock is read in that zone instead.
type BirthDataRequest struct {
	Datetime  string  `json:"datetime" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
	Timezone  string  `json:"timezone" validate:"omitempty,max=64"`
}

// ToBirthData converts a validated request into the domain type.
// The instant is normalized to UTC before any math.
func (r *BirthDataRequest) ToBirthData() (BirthData, error) {
	t, err := time.Parse(time.RFC3339, r.Datetime)
	if err != nil {
		return BirthData{}, NewValidationError("datetime must be RFC3339: %v", err)
	}
	if r.Timezone != "" {
		loc, lerr := resolveLocation(r.Timezone)
		if lerr != nil {
			return BirthData{}, NewValidationError("unknown timezone %q", r.Timezone)
		}
		y, mo, d := t.Date()
		hh, mm, ss := t.Clock()
		t = time.Date(y, mo, d, hh, mm, ss, t.Nanosecond(), loc)
	}
	return BirthData{
		Datetime:  t.UTC(),
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		Timezone:  r.Timezone,
	}, nil
}

// resolveLocation accepts an IANA zone name, "UTC", or a fixed
// "+HH:MM"/"-HH:MM" offset.
func resolveLocation(name string) (*time.Location, error) {
	if name == "UTC" {
		return time.UTC, nil
	}
	if len(name) == 6 && (name[0] == '+' || name[0] == '-') && name[3] == ':' {
		h, herr := strconv.Atoi(name[1:3])
		m, merr := strconv.Atoi(name[4:6])
		if herr == nil && merr == nil && h <= 14 && m < 60 {
			off := h*3600 + m*60
			if name[0] == '-' {
				off = -off
			}
			return time.FixedZone(name, off), nil
		}
	}
	return time.LoadLocation(name)
}

// ChartRequest asks for a natal chart.
type ChartRequest struct {
	BirthData BirthDataRequest    `json:"birth_data" validate:"required"`
	Options   ChartOptionsRequest `json:"options"`
}

// ChartOptionsRequest selects chart computation options. The include
// flags are pointers so an explicit false survives defaulting; both
// default to true when absent.
type ChartOptionsRequest struct {
	HouseSystem      string `json:"house_system" validate:"omitempty,oneof=placidus regiomontanus porphyry equal whole_sign" default:"placidus"`
	IncludeAspects   *bool  `json:"include_aspects"`
	IncludeDominants *bool  `json:"include_dominants"`
	IncludeMinor     bool   `json:"include_minor_aspects"`
	ZodiacType       string `json:"zodiac_type" validate:"omitempty,oneof=tropical" default:"tropical"`
}

// ToOptions converts the request options into the domain type.
func (r ChartOptionsRequest) ToOptions() ChartOptions {
	return ChartOptions{
		HouseSystem:      r.HouseSystem,
		IncludeAspects:   r.IncludeAspects == nil || *r.IncludeAspects,
		IncludeDominants: r.IncludeDominants == nil || *r.IncludeDominants,
		IncludeMinor:     r.IncludeMinor,
		ZodiacType:       r.ZodiacType,
	}
}

// TransitRequest asks for transits to a natal chart at one instant.
// Timestamp defaults to now when empty.
type TransitRequest struct {
	BirthData BirthDataRequest    `json:"birth_data" validate:"required"`
	Options   ChartOptionsRequest `json:"options"`
	Timestamp string              `json:"timestamp" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

// TransitPeriodRequest asks for transits sampled across a window.
type TransitPeriodRequest struct {
	BirthData BirthDataRequest    `json:"birth_data" validate:"required"`
	Options   ChartOptionsRequest `json:"options"`
	Start     string              `json:"start" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	End       string              `json:"end" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	StepDays  int                 `json:"step_days" validate:"min=0,max=30" default:"1"`
}

// ChartSummaryQuery is the GET form of a summary request.
type ChartSummaryQuery struct {
	Datetime    string  `query:"datetime" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Latitude    float64 `query:"latitude" validate:"min=-90,max=90"`
	Longitude   float64 `query:"longitude" validate:"min=-180,max=180"`
	HouseSystem string  `query:"house_system" validate:"omitempty,oneof=placidus regiomontanus porphyry equal whole_sign" default:"placidus"`
}

// PlanetsQuery asks for raw positions. Datetime defaults to now and
// Bodies is a comma separated list defaulting to the full set.
type PlanetsQuery struct {
	Datetime string `query:"datetime" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Bodies   string `query:"bodies" validate:"omitempty,max=256"`
}

// ForecastQuery asks for a multi-year scan of slow-mover transits.
type ForecastQuery struct {
	Datetime  string  `query:"datetime" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Latitude  float64 `query:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `query:"longitude" validate:"min=-180,max=180"`
	Years     int     `query:"years" validate:"min=0,max=10" default:"5"`
	StepDays  int     `query:"step_days" validate:"min=0,max=30" default:"1"`
	Bodies    string  `query:"bodies" validate:"omitempty,max=256"`
}

// TransitStreamQuery opens a live transit stream over a websocket.
type TransitStreamQuery struct {
	Datetime        string  `query:"datetime" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Latitude        float64 `query:"latitude" validate:"min=-90,max=90"`
	Longitude       float64 `query:"longitude" validate:"min=-180,max=180"`
	IntervalSeconds int     `query:"interval_seconds" validate:"min=0,max=3600" default:"60"`
}

// ProgressionRequest asks for a progressed chart.
type ProgressionRequest struct {
	BirthData  BirthDataRequest    `json:"birth_data" validate:"required"`
	Options    ChartOptionsRequest `json:"options"`
	Method     string              `json:"method" validate:"omitempty,oneof=secondary tertiary minor solar_arc" default:"secondary"`
	TargetDate string              `json:"target_date" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}
