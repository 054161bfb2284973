package handler

import (
	"net/http"

	"github.com/osse101/FrameCraft_Go/internal/domain"
	"github.com/osse101/FrameCraft_Go/internal/serialization"
)

// SerializeRequest is a configuration with an optional specialty.
type SerializeRequest struct {
	Config    domain.FrameConfiguration `json:"config"`
	Specialty *domain.SpecialtyConfig   `json:"specialty,omitempty"`
}

// DeserializeRequest carries line-item attributes.
type DeserializeRequest struct {
	Attributes []domain.Attribute `json:"attributes" validate:"required,min=1"`
}

// HandleSerialize turns a configuration into line-item attributes
// @Summary Serialize a configuration
// @Tags attributes
// @Accept json
// @Produce json
// @Param request body SerializeRequest true "Configuration"
// @Success 200 {array} domain.Attribute
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/attributes/serialize [post]
func HandleSerialize() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeRequest[SerializeRequest](w, r, "serialize")
		if !ok {
			return
		}
		attrs, err := serialization.Serialize(req.Config, req.Specialty)
		if err != nil {
			respondServiceError(w, r, ErrMsgSerializeFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, attrs)
	}
}

// HandleDeserialize rebuilds a configuration from line-item attributes
// @Summary Deserialize attributes
// @Tags attributes
// @Accept json
// @Produce json
// @Param request body DeserializeRequest true "Attributes"
// @Success 200 {object} serialization.Result
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/attributes/deserialize [post]
func HandleDeserialize() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeRequest[DeserializeRequest](w, r, "deserialize")
		if !ok {
			return
		}
		res, err := serialization.Deserialize(r.Context(), req.Attributes)
		if err != nil {
			respondServiceError(w, r, ErrMsgDeserializeFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, res)
	}
}
