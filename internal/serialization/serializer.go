// Package serialization converts frame configurations to and from the flat
// string attributes carried on commerce line items.
package serialization

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/osse101/FrameCraft_Go/internal/domain"
)

// envelope is the Configuration JSON document. The base configuration is
// inlined so older readers that only know FrameConfiguration still parse it.
type envelope struct {
	domain.FrameConfiguration
	SchemaVersion   int                  `json:"schemaVersion,omitempty"`
	SpecialtyType   domain.SpecialtyType `json:"specialtyType,omitempty"`
	SpecialtyConfig json.RawMessage      `json:"specialtyConfig,omitempty"`
}

// Validate applies the configuration rules shared by serialization and both
// deserialization paths. Errors wrap domain.ErrValidation.
func Validate(c domain.FrameConfiguration) error {
	if c.ServiceType == "" {
		return invalid(ErrMsgServiceTypeRequired)
	}
	if !c.ServiceType.Valid() {
		return invalid(fmt.Sprintf(ErrMsgInvalidServiceType, c.ServiceType))
	}
	if !positive(c.ArtworkWidth) {
		return invalid(ErrMsgArtworkWidth)
	}
	if !positive(c.ArtworkHeight) {
		return invalid(ErrMsgArtworkHeight)
	}
	if c.FrameStyleID == "" {
		return invalid(ErrMsgFrameStyleRequired)
	}
	if !c.MatType.Valid() {
		return invalid(fmt.Sprintf(ErrMsgInvalidMatType, c.MatType))
	}
	if c.HasMat() {
		if !positive(c.MatBorderWidth) {
			return invalid(ErrMsgMatBorderWidth)
		}
		if c.MatColorID == "" {
			return invalid(ErrMsgMatColorRequired)
		}
		// zero means not provided
		if c.MatType == domain.MatDouble && (c.MatRevealWidth < 0 || math.IsNaN(c.MatRevealWidth)) {
			return invalid(ErrMsgMatRevealWidth)
		}
	}
	if c.GlassTypeID == "" {
		return invalid(ErrMsgGlassTypeRequired)
	}
	if c.ServiceType == domain.ServicePrintAndFrame && c.ImageURL == "" {
		return invalid(ErrMsgImageURLRequired)
	}
	if c.ImageFit != "" && !c.ImageFit.Valid() {
		return invalid(fmt.Sprintf(ErrMsgInvalidImageFit, c.ImageFit))
	}
	return nil
}

// Serialize validates c and renders it as ordered line-item attributes. The
// human-readable attributes come first, then the specialty attributes, and
// the Configuration JSON is always the final entry.
func Serialize(c domain.FrameConfiguration, specialty *domain.SpecialtyConfig) ([]domain.Attribute, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}

	attrs := make([]domain.Attribute, 0, 16)
	add := func(key, value string) {
		attrs = append(attrs, domain.Attribute{Key: key, Value: value})
	}

	add(KeyServiceType, string(c.ServiceType))
	if c.OrderSource != "" {
		add(KeyOrderSource, c.OrderSource)
	}

	width, err := FormatDimension(c.ArtworkWidth)
	if err != nil {
		return nil, err
	}
	height, err := FormatDimension(c.ArtworkHeight)
	if err != nil {
		return nil, err
	}
	add(KeyArtworkWidth, width)
	add(KeyArtworkHeight, height)
	add(KeyFrameStyle, c.FrameStyleID)

	add(KeyMatType, string(c.MatType))
	if c.HasMat() {
		border, err := FormatDimension(c.MatBorderWidth)
		if err != nil {
			return nil, err
		}
		add(KeyMatBorderWidth, border)
		add(KeyMatColor, c.MatColorID)

		if c.MatType == domain.MatDouble {
			if c.MatRevealWidth > 0 {
				reveal, err := FormatDimension(c.MatRevealWidth)
				if err != nil {
					return nil, err
				}
				add(KeyMatReveal, reveal)
			}
			if c.MatInnerColorID != "" {
				add(KeyMatInnerColor, c.MatInnerColorID)
			}
		}
	}

	add(KeyGlassType, c.GlassTypeID)

	if c.ImageURL != "" {
		add(KeyCustomerImage, c.ImageURL)
	}
	if c.ImageFit != "" {
		add(KeyImageFit, string(c.ImageFit))
	}
	if c.CopyrightAgreed {
		add(KeyCopyrightAgreed, ValueYes)
	}
	if c.BottomWeighted {
		add(KeyBottomWeighted, ValueYes)
	}

	env := envelope{FrameConfiguration: c, SchemaVersion: SchemaVersion}
	if specialty != nil {
		codec, ok := specialtyCodecs[specialty.Type]
		if !ok || specialty.Payload() == nil {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidSpecialty, specialty.Type)
		}
		extra, err := codec.encode(specialty)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, extra...)

		raw, err := json.Marshal(specialty.Payload())
		if err != nil {
			return nil, fmt.Errorf("failed to encode specialty config: %w", err)
		}
		env.SpecialtyType = specialty.Type
		env.SpecialtyConfig = raw
	}

	blob, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}
	add(KeyConfigurationJSON, string(blob))

	return attrs, nil
}

// FormatDimension renders inches as `<number>"` using the shortest exact
// decimal form (12.5 -> 12.5", 16 -> 16").
func FormatDimension(inches float64) (string, error) {
	if math.IsNaN(inches) || math.IsInf(inches, 0) || inches < 0 {
		return "", fmt.Errorf("%w: "+ErrMsgInvalidDimension, domain.ErrValidation, inches)
	}
	return strconv.FormatFloat(inches, 'f', -1, 64) + dimensionUnit, nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", domain.ErrValidation, msg)
}
