package config

import (
	"net/http"
	"sort"

	"scenario_projection/pkg/api/response"
	"scenario_projection/pkg/core/period"
	"scenario_projection/pkg/core/projection"
	"scenario_projection/pkg/core/scenario"
	coreUnits "scenario_projection/pkg/core/units"
)

type SectionInfo struct {
	Name   scenario.Section `json:"name"`
	Groups []string         `json:"groups"` // empty: free-form
}

type Response struct {
	PriceTypes  []scenario.PriceType    `json:"priceTypes"`
	Sections    []SectionInfo           `json:"sections"`
	ReportKinds []projection.ReportKind `json:"reportKinds"`
	MaxPeriods  int                     `json:"maxPeriods"`
	Magnitudes  []string                `json:"magnitudes"`
	Storage     string                  `json:"storage"`
}

// Handler holds dependencies for config endpoints
type Handler struct {
	Storage string
}

// NewHandler creates a new config handler. storage names the snapshot backend
// ("postgres", "file" or "none").
func NewHandler(storage string) *Handler {
	return &Handler{Storage: storage}
}

// HandleConfig describes what the engine accepts, so a client can build its editor.
// GET /v1/config
func (h *Handler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	sections := make([]SectionInfo, 0, len(scenario.Sections))
	for _, s := range scenario.Sections {
		groups := scenario.Groups[s]
		if groups == nil {
			groups = []string{}
		}
		sections = append(sections, SectionInfo{Name: s, Groups: groups})
	}

	resp := Response{
		PriceTypes:  scenario.PriceTypes,
		Sections:    sections,
		ReportKinds: projection.ReportKinds,
		MaxPeriods:  period.MaxPeriods,
		Magnitudes:  magnitudes(),
		Storage:     h.Storage,
	}
	response.JSON(w, http.StatusOK, resp)
}

// magnitudes lists the unit suffixes, smallest first.
func magnitudes() []string {
	out := make([]string, 0, len(coreUnits.Magnitudes))
	for suffix := range coreUnits.Magnitudes {
		out = append(out, suffix)
	}
	sort.Slice(out, func(i, j int) bool {
		return coreUnits.Magnitudes[out[i]].LessThan(coreUnits.Magnitudes[out[j]])
	})
	return out
}
