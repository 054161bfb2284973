package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/osse101/FrameCraft_Go/internal/logger"
)

// ValidationErrorResponse is the 400 body for requests that decode but fail
// field validation. Fields is keyed by JSON field name.
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// decodeRequest reads a JSON body into a T and validates it. When ok is
// false the error response has been written and the handler should return.
//
//	req, ok := decodeRequest[AddItemRequest](w, r, "add item")
//	if !ok {
//		return
//	}
func decodeRequest[T any](w http.ResponseWriter, r *http.Request, action string) (req T, ok bool) {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.Warn(LogMsgBodyTooLarge, "action", action, "limit", tooLarge.Limit)
			respondError(w, http.StatusRequestEntityTooLarge, ErrMsgBodyTooLarge)
			return req, false
		}
		log.Warn(LogMsgDecodeFailed, "action", action, "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return req, false
	}

	if err := GetValidator().ValidateStruct(&req); err != nil {
		fields := FormatValidationError(err)
		log.Debug(LogMsgValidationFailed, "action", action, "fields", fields)
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: fields,
		})
		return req, false
	}
	return req, true
}

// positiveQueryFloat parses a required positive number from the query
// string, writing a 400 when it is missing or malformed.
func positiveQueryFloat(w http.ResponseWriter, r *http.Request, name string) (float64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, name))
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidQueryParam, name))
		return 0, false
	}
	return v, true
}
