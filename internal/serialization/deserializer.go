package serialization

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/osse101/FrameCraft_Go/internal/domain"
	"github.com/osse101/FrameCraft_Go/internal/logger"
)

// Result is a deserialized line item configuration.
type Result struct {
	Config    domain.FrameConfiguration `json:"config"`
	Specialty *domain.SpecialtyConfig   `json:"specialty,omitempty"`
	// FromJSON is false when the configuration was rebuilt from the
	// human-readable attributes.
	FromJSON bool `json:"fromJson"`
}

// Deserialize reconstructs a configuration from line-item attributes. The
// Configuration JSON is used whenever it parses and validates; otherwise the
// human-readable attributes are parsed field by field and validated with the
// same rules.
func Deserialize(ctx context.Context, attrs []domain.Attribute) (*Result, error) {
	if len(attrs) == 0 {
		return nil, invalid(ErrMsgAttributesRequired)
	}

	if raw := lookup(attrs, KeyConfigurationJSON); raw != "" {
		res, err := fromJSON(raw)
		if err == nil {
			return res, nil
		}
		logger.FromContext(ctx).Warn(LogMsgJSONFallback, "error", err)
	}

	return fromAttributes(attrs)
}

func fromJSON(raw string) (*Result, error) {
	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return nil, fmt.Errorf("failed to parse configuration JSON: %w", err)
	}
	if env.SchemaVersion > SchemaVersion {
		return nil, fmt.Errorf(ErrMsgUnsupportedSchema, env.SchemaVersion)
	}
	if err := Validate(env.FrameConfiguration); err != nil {
		return nil, err
	}

	res := &Result{Config: env.FrameConfiguration, FromJSON: true}
	if env.SpecialtyType != "" {
		specialty, err := domain.DecodeSpecialty(env.SpecialtyType, env.SpecialtyConfig)
		if err != nil {
			return nil, err
		}
		res.Specialty = specialty
	}
	return res, nil
}

func fromAttributes(attrs []domain.Attribute) (*Result, error) {
	m := attributeMap(attrs)
	var c domain.FrameConfiguration

	st := domain.ServiceType(m[KeyServiceType])
	if !st.Valid() {
		return nil, invalid(ErrMsgAttrServiceType)
	}
	c.ServiceType = st

	width, wok := ParseDimension(m[KeyArtworkWidth])
	height, hok := ParseDimension(m[KeyArtworkHeight])
	if !wok || !hok {
		return nil, invalid(ErrMsgAttrArtworkDimensions)
	}
	c.ArtworkWidth = width
	c.ArtworkHeight = height

	if c.FrameStyleID = m[KeyFrameStyle]; c.FrameStyleID == "" {
		return nil, invalid(ErrMsgAttrFrameStyle)
	}

	mt := domain.MatType(m[KeyMatType])
	if !mt.Valid() {
		return nil, invalid(ErrMsgAttrMatType)
	}
	c.MatType = mt

	if c.HasMat() {
		border, ok := ParseDimension(m[KeyMatBorderWidth])
		if !ok {
			return nil, invalid(ErrMsgAttrMatBorderWidth)
		}
		c.MatBorderWidth = border

		if c.MatColorID = m[KeyMatColor]; c.MatColorID == "" {
			return nil, invalid(ErrMsgAttrMatColor)
		}

		if c.MatType == domain.MatDouble {
			if reveal, ok := ParseDimension(m[KeyMatReveal]); ok {
				c.MatRevealWidth = reveal
			}
			c.MatInnerColorID = m[KeyMatInnerColor]
		}
	}

	if c.GlassTypeID = m[KeyGlassType]; c.GlassTypeID == "" {
		return nil, invalid(ErrMsgAttrGlassType)
	}

	c.ImageURL = m[KeyCustomerImage]
	if fit := domain.ImageFit(m[KeyImageFit]); fit.Valid() {
		c.ImageFit = fit
	}
	c.CopyrightAgreed = m[KeyCopyrightAgreed] == ValueYes
	c.OrderSource = m[KeyOrderSource]
	c.BottomWeighted = m[KeyBottomWeighted] == ValueYes

	if err := Validate(c); err != nil {
		return nil, err
	}

	res := &Result{Config: c}
	for _, t := range domain.SpecialtyTypes {
		codec := specialtyCodecs[t]
		if codec.detect(m) {
			res.Specialty = codec.decode(m)
			break
		}
	}
	return res, nil
}

// ParseDimension parses values such as `12.5"`. Quotes and whitespace are
// ignored. Missing, malformed and non-positive values report ok=false.
func ParseDimension(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	cleaned := strings.Map(func(r rune) rune {
		if r == '"' || r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, s)
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || !positive(v) {
		return 0, false
	}
	return v, true
}

// IsValidationError reports whether err came from configuration validation.
func IsValidationError(err error) bool {
	return errors.Is(err, domain.ErrValidation)
}

func lookup(attrs []domain.Attribute, key string) string {
	for _, a := range attrs {
		if a.Key == key {
			return a.Value
		}
	}
	return ""
}

// attributeMap keeps the last value for duplicated keys.
func attributeMap(attrs []domain.Attribute) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		m[a.Key] = a.Value
	}
	return m
}
