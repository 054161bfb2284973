package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeRequest(t *testing.T) {
	run := func(body string, limit int64) (*httptest.ResponseRecorder, UpdateQuantityRequest, bool) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(body))
		if limit > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
		}
		req, ok := decodeRequest[UpdateQuantityRequest](w, r, "update quantity")
		return w, req, ok
	}

	t.Run("valid body", func(t *testing.T) {
		w, req, ok := run(`{"quantity": 3}`, 0)
		assert.True(t, ok)
		assert.Equal(t, 3, req.Quantity)
		assert.Equal(t, http.StatusOK, w.Code, "nothing written")
	})

	t.Run("malformed json", func(t *testing.T) {
		w, _, ok := run(`{"quantity":`, 0)
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgInvalidRequest)
	})

	t.Run("oversized body", func(t *testing.T) {
		w, _, ok := run(`{"quantity": 3, "padding": "`+strings.Repeat("x", 64)+`"}`, 16)
		assert.False(t, ok)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})
}

func TestPositiveQueryFloat(t *testing.T) {
	tests := []struct {
		query string
		want  float64
		ok    bool
	}{
		{"width=8.5", 8.5, true},
		{"", 0, false},
		{"width=0", 0, false},
		{"width=-2", 0, false},
		{"width=abc", 0, false},
		{"width=Inf", 0, false},
		{"width=NaN", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := httptest.NewRecorder()
			got, ok := positiveQueryFloat(w, httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil), "width")
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
			if !ok {
				assert.Equal(t, http.StatusBadRequest, w.Code)
			}
		})
	}
}
