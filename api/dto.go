/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. The engine works in
  decimal.Decimal; the wire works in plain JSON numbers, which is what
  the chart and table renderers want. These types are the seam.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data
  carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - forecast/series.go: Source shapes for the series DTOs
*/
package api

import (
	"encoding/json"

	"github.com/warp/cashplan/forecast"
	"github.com/warp/cashplan/supply"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// SavePlanRequest is the push body: the revision the client last pulled
// plus the full replacement payload.
type SavePlanRequest struct {
	Rev  string          `json:"rev"`
	Data json.RawMessage `json:"data"`
}

// SeriesDTO is the flat projection shape for the chart.
type SeriesDTO struct {
	Months      []string  `json:"months"`
	Net         []float64 `json:"net"`
	Closing     []float64 `json:"closing"`
	OpeningList []float64 `json:"openingList"`
	Opening     float64   `json:"opening"`
	Start       string    `json:"start"`
	Horizon     int       `json:"horizon"`
}

// ProjectionPointDTO is one hybrid-series table row. ActualClosing is
// null when no actual has been recorded for the month.
type ProjectionPointDTO struct {
	Month          string   `json:"month"`
	Opening        float64  `json:"opening"`
	Net            float64  `json:"net"`
	PlannedClosing float64  `json:"plannedClosing"`
	Closing        float64  `json:"closing"`
	ActualClosing  *float64 `json:"actualClosing"`
	LockedActual   bool     `json:"lockedActual"`
}

// LeadTimeDTO reports a lead-time resolution and which layer answered.
type LeadTimeDTO struct {
	Value  *float64 `json:"value"`
	Source string   `json:"source"`
}

// ClientConfigDTO tells the frontend how to drive the sync transport.
type ClientConfigDTO struct {
	SchemaVersion       int   `json:"schemaVersion"`
	SyncIntervalMs      int64 `json:"syncIntervalMs"`
	HeartbeatIntervalMs int64 `json:"heartbeatIntervalMs"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// =============================================================================
// CONVERTERS
// =============================================================================

func toSeriesDTO(s forecast.Series) SeriesDTO {
	dto := SeriesDTO{
		Months:      make([]string, len(s.Months)),
		Net:         make([]float64, len(s.Net)),
		Closing:     make([]float64, len(s.Closing)),
		OpeningList: make([]float64, len(s.OpeningList)),
		Opening:     s.Opening.InexactFloat64(),
		Start:       s.Start.String(),
		Horizon:     s.Horizon,
	}
	for i := range s.Months {
		dto.Months[i] = s.Months[i].String()
		dto.Net[i] = s.Net[i].InexactFloat64()
		dto.Closing[i] = s.Closing[i].InexactFloat64()
		dto.OpeningList[i] = s.OpeningList[i].InexactFloat64()
	}
	return dto
}

func toPointDTOs(points []forecast.ProjectionPoint) []ProjectionPointDTO {
	dtos := make([]ProjectionPointDTO, len(points))
	for i, p := range points {
		dto := ProjectionPointDTO{
			Month:          p.Month.String(),
			Opening:        p.Opening.InexactFloat64(),
			Net:            p.Net.InexactFloat64(),
			PlannedClosing: p.PlannedClosing.InexactFloat64(),
			Closing:        p.Closing.InexactFloat64(),
			LockedActual:   p.LockedActual,
		}
		if p.ActualClosing != nil {
			f := p.ActualClosing.InexactFloat64()
			dto.ActualClosing = &f
		}
		dtos[i] = dto
	}
	return dtos
}

func toLeadTimeDTO(r supply.Resolution) LeadTimeDTO {
	dto := LeadTimeDTO{Source: r.Source}
	if r.Value != nil {
		f := r.Value.InexactFloat64()
		dto.Value = &f
	}
	return dto
}
