package units

import (
	"errors"
	"net/http"

	"scenario_projection/pkg/api/response"
	coreUnits "scenario_projection/pkg/core/units"
)

type ParseRequest struct {
	Text string `json:"text"`
	Kind string `json:"kind"` // "value" (default) or "percentage"
}

type ParseResponse struct {
	Value float64 `json:"value"`
	Blank bool    `json:"blank,omitempty"`
}

type FormatRequest struct {
	Value float64 `json:"value"`
}

type FormatResponse struct {
	Text string `json:"text"`
}

type NormalizeRequest struct {
	Text      string  `json:"text"`
	Magnitude float64 `json:"magnitude"`
	Inverse   bool    `json:"inverse,omitempty"` // divide instead of multiply
}

// Handler serves the number helpers the scenario editor uses while typing.
type Handler struct {
	MaxBodyBytes int64
}

// NewHandler creates a new units handler
func NewHandler(maxBodyBytes int64) *Handler {
	return &Handler{MaxBodyBytes: maxBodyBytes}
}

// HandleParse parses "23k" or "5%".
// POST /v1/units/parse
func (h *Handler) HandleParse(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if err := response.DecodeJSON(w, r, h.MaxBodyBytes, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if coreUnits.IsBlank(req.Text) {
		response.JSON(w, http.StatusOK, ParseResponse{Blank: true})
		return
	}

	var (
		v   float64
		err error
	)
	switch req.Kind {
	case "", "value":
		v, err = coreUnits.ParseValue(req.Text)
	case "percentage":
		v, err = coreUnits.ParsePercentage(req.Text)
	default:
		response.Error(w, http.StatusBadRequest, "kind must be value or percentage")
		return
	}
	if err != nil {
		writeUnitsError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, ParseResponse{Value: v})
}

// HandleFormat renders a number with its unit.
// POST /v1/units/format
func (h *Handler) HandleFormat(w http.ResponseWriter, r *http.Request) {
	var req FormatRequest
	if err := response.DecodeJSON(w, r, h.MaxBodyBytes, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	response.JSON(w, http.StatusOK, FormatResponse{Text: coreUnits.FormatValueWithUnit(req.Value)})
}

// HandleNormalize rescales typed text by a magnitude.
// POST /v1/units/normalize
func (h *Handler) HandleNormalize(w http.ResponseWriter, r *http.Request) {
	var req NormalizeRequest
	if err := response.DecodeJSON(w, r, h.MaxBodyBytes, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rescale := coreUnits.Normalize
	if req.Inverse {
		rescale = coreUnits.Denormalize
	}
	out, err := rescale(req.Text, req.Magnitude)
	if err != nil {
		writeUnitsError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, FormatResponse{Text: out})
}

func writeUnitsError(w http.ResponseWriter, err error) {
	var iv *coreUnits.ErrInvalidValue
	var ip *coreUnits.ErrInvalidPercentage
	if errors.As(err, &iv) || errors.As(err, &ip) {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	response.Error(w, http.StatusInternalServerError, err.Error())
}
