package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/FrameCraft_Go/internal/domain"
	"github.com/osse101/FrameCraft_Go/internal/pricing"
)

// PricingHandler serves quotes.
type PricingHandler struct {
	service pricing.Service
}

// NewPricingHandler creates a pricing handler.
func NewPricingHandler(service pricing.Service) *PricingHandler {
	return &PricingHandler{service: service}
}

// HandleQuote prices a frame configuration
// @Summary Quote a configuration
// @Description Prices frame, mat, glass and print for one configuration
// @Tags pricing
// @Accept json
// @Produce json
// @Param request body domain.FrameConfiguration true "Configuration"
// @Success 200 {object} pricing.Breakdown
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /api/v1/pricing/quote [post]
func (h *PricingHandler) HandleQuote(w http.ResponseWriter, r *http.Request) {
	cfg, ok := decodeRequest[domain.FrameConfiguration](w, r, "quote")
	if !ok {
		return
	}

	b, err := h.service.Quote(r.Context(), cfg)
	if err != nil {
		respondServiceError(w, r, ErrMsgQuoteFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, b)
}

// HandleSpecialtyQuote prices a specialty frame
// @Summary Quote a specialty frame
// @Description Runs the specialty pipeline; estimated quotes are preview only
// @Tags pricing
// @Accept json
// @Produce json
// @Param type path string true "Specialty type"
// @Param request body pricing.SpecialtyRequest true "Specialty request"
// @Success 200 {object} pricing.SpecialtyBreakdown
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/pricing/specialty/{type} [post]
func (h *PricingHandler) HandleSpecialtyQuote(w http.ResponseWriter, r *http.Request) {
	typ := domain.SpecialtyType(chi.URLParam(r, "type"))
	if !typ.Valid() {
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgUnknownSpecialty, typ))
		return
	}

	req, ok := decodeRequest[pricing.SpecialtyRequest](w, r, "specialty quote")
	if !ok {
		return
	}
	req.Type = typ

	b, err := h.service.SpecialtyQuote(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, ErrMsgQuoteFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, b)
}
