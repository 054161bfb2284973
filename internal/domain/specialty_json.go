package domain

import (
	"encoding/json"
	"fmt"
)

type specialtyEnvelope struct {
	SpecialtyType   SpecialtyType   `json:"specialtyType"`
	SpecialtyConfig json.RawMessage `json:"specialtyConfig,omitempty"`
}

// MarshalJSON encodes the union as {specialtyType, specialtyConfig}.
func (s SpecialtyConfig) MarshalJSON() ([]byte, error) {
	payload := s.Payload()
	if payload == nil {
		return nil, fmt.Errorf("%w: specialty %q has no payload", ErrInvalidSpecialty, s.Type)
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(specialtyEnvelope{SpecialtyType: s.Type, SpecialtyConfig: raw})
}

// UnmarshalJSON decodes the {specialtyType, specialtyConfig} form.
func (s *SpecialtyConfig) UnmarshalJSON(data []byte) error {
	var env specialtyEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	decoded, err := DecodeSpecialty(env.SpecialtyType, env.SpecialtyConfig)
	if err != nil {
		return err
	}
	*s = *decoded
	return nil
}

// DecodeSpecialty builds the union for type t from its raw JSON payload.
// An empty payload yields a zero-valued variant.
func DecodeSpecialty(t SpecialtyType, raw json.RawMessage) (*SpecialtyConfig, error) {
	var (
		target any
		out    *SpecialtyConfig
	)
	switch t {
	case SpecialtyShadowbox:
		out = NewShadowboxSpecialty(ShadowboxConfig{})
		target = out.Shadowbox
	case SpecialtyJersey:
		out = NewJerseySpecialty(JerseyConfig{})
		target = out.Jersey
	case SpecialtyCanvasFloat:
		out = NewCanvasFloatSpecialty(CanvasFloatConfig{})
		target = out.CanvasFloat
	case SpecialtyPuzzle:
		out = NewPuzzleSpecialty(PuzzleConfig{})
		target = out.Puzzle
	case SpecialtyComicBook:
		out = NewComicBookSpecialty(ComicBookConfig{})
		target = out.ComicBook
	case SpecialtyPlaybill:
		out = NewPlaybillSpecialty(PlaybillConfig{})
		target = out.Playbill
	default:
		return nil, fmt.Errorf("%w: unknown specialty type %q", ErrInvalidSpecialty, t)
	}

	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, target); err != nil {
			return nil, fmt.Errorf("%w: %s config: %v", ErrInvalidSpecialty, t, err)
		}
	}
	return out, nil
}
