package handler

import (
	"net/http"

	"github.com/osse101/FrameCraft_Go/internal/matcatalog"
)

// HandleGetMats returns the mat palette for an artwork size
// @Summary Mat palette for a size
// @Description Picks the sheet size the artwork needs and splits the colors into standard and premium
// @Tags mats
// @Produce json
// @Param width query number true "Artwork width in inches"
// @Param height query number true "Artwork height in inches"
// @Success 200 {object} matcatalog.Palette
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /api/v1/mats [get]
func HandleGetMats(mats matcatalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		width, ok := positiveQueryFloat(w, r, "width")
		if !ok {
			return
		}
		height, ok := positiveQueryFloat(w, r, "height")
		if !ok {
			return
		}

		palette, err := mats.GetMatsBySize(r.Context(), width, height)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetMatsFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, palette)
	}
}
