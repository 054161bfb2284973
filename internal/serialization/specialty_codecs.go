package serialization

import (
	"strconv"
	"strings"

	"github.com/osse101/FrameCraft_Go/internal/domain"
)

// specialtyCodec maps one specialty variant to and from its human-readable
// attributes. detectKeys drive inference on the fallback path.
type specialtyCodec struct {
	detectKeys []string
	encode     func(*domain.SpecialtyConfig) ([]domain.Attribute, error)
	decode     func(map[string]string) *domain.SpecialtyConfig
}

func (c specialtyCodec) detect(m map[string]string) bool {
	for _, k := range c.detectKeys {
		if _, ok := m[k]; ok {
			return true
		}
	}
	return false
}

var specialtyCodecs = map[domain.SpecialtyType]specialtyCodec{
	domain.SpecialtyShadowbox: {
		detectKeys: []string{KeyBackingType, KeyDepth, KeyHangingHardware},
		encode: func(s *domain.SpecialtyConfig) ([]domain.Attribute, error) {
			sb := s.Shadowbox
			var b attrBuilder
			b.str(KeyBackingType, sb.BackingType)
			b.str(KeyBackingColor, sb.BackingColor)
			b.str(KeyHangingHardware, string(sb.HangingHardware))
			if err := b.dim(KeyDepth, sb.Depth); err != nil {
				return nil, err
			}
			b.flag(KeyJerseyMount, sb.JerseyMount)
			if len(sb.Accessories) > 0 {
				b.str(KeyAccessories, strings.Join(sb.Accessories, accessoriesSeparator))
			}
			return b.attrs, nil
		},
		decode: func(m map[string]string) *domain.SpecialtyConfig {
			sb := domain.ShadowboxConfig{
				BackingType:  m[KeyBackingType],
				BackingColor: m[KeyBackingColor],
				JerseyMount:  m[KeyJerseyMount] == ValueYes,
			}
			switch hw := domain.HangingHardware(m[KeyHangingHardware]); hw {
			case domain.HardwareStandard, domain.HardwareSecurity:
				sb.HangingHardware = hw
			}
			if d, ok := ParseDimension(m[KeyDepth]); ok {
				sb.Depth = d
			}
			if acc := m[KeyAccessories]; acc != "" {
				for _, a := range strings.Split(acc, accessoriesSeparator) {
					if a != "" {
						sb.Accessories = append(sb.Accessories, a)
					}
				}
			}
			return domain.NewShadowboxSpecialty(sb)
		},
	},
	domain.SpecialtyJersey: {
		detectKeys: []string{KeyJerseySize, KeyMountType, KeyDisplayStyle},
		encode: func(s *domain.SpecialtyConfig) ([]domain.Attribute, error) {
			var b attrBuilder
			b.str(KeyJerseySize, s.Jersey.JerseySize)
			b.str(KeyMountType, s.Jersey.MountType)
			b.str(KeyDisplayStyle, s.Jersey.DisplayStyle)
			return b.attrs, nil
		},
		decode: func(m map[string]string) *domain.SpecialtyConfig {
			return domain.NewJerseySpecialty(domain.JerseyConfig{
				JerseySize:   m[KeyJerseySize],
				MountType:    m[KeyMountType],
				DisplayStyle: m[KeyDisplayStyle],
			})
		},
	},
	domain.SpecialtyCanvasFloat: {
		detectKeys: []string{KeyFloatDepth, KeyCanvasStretcher},
		encode: func(s *domain.SpecialtyConfig) ([]domain.Attribute, error) {
			var b attrBuilder
			if err := b.dim(KeyFloatDepth, s.CanvasFloat.FloatDepth); err != nil {
				return nil, err
			}
			b.flag(KeyCanvasStretcher, s.CanvasFloat.CanvasStretcher)
			return b.attrs, nil
		},
		decode: func(m map[string]string) *domain.SpecialtyConfig {
			cf := domain.CanvasFloatConfig{CanvasStretcher: m[KeyCanvasStretcher] == ValueYes}
			if d, ok := ParseDimension(m[KeyFloatDepth]); ok {
				cf.FloatDepth = d
			}
			return domain.NewCanvasFloatSpecialty(cf)
		},
	},
	domain.SpecialtyPuzzle: {
		detectKeys: []string{KeyPuzzleSize, KeyPuzzlePieceCount},
		encode: func(s *domain.SpecialtyConfig) ([]domain.Attribute, error) {
			var b attrBuilder
			b.str(KeyPuzzleSize, s.Puzzle.PuzzleSize)
			b.count(KeyPuzzlePieceCount, s.Puzzle.PuzzlePieceCount)
			return b.attrs, nil
		},
		decode: func(m map[string]string) *domain.SpecialtyConfig {
			return domain.NewPuzzleSpecialty(domain.PuzzleConfig{
				PuzzleSize:       m[KeyPuzzleSize],
				PuzzlePieceCount: parseCount(m[KeyPuzzlePieceCount]),
			})
		},
	},
	domain.SpecialtyComicBook: {
		detectKeys: []string{KeyComicFormat, KeyComicLayout, KeyNumberOfComics},
		encode: func(s *domain.SpecialtyConfig) ([]domain.Attribute, error) {
			var b attrBuilder
			b.str(KeyComicFormat, s.ComicBook.ComicFormat)
			b.str(KeyComicLayout, s.ComicBook.ComicLayout)
			b.count(KeyNumberOfComics, s.ComicBook.NumberOfComics)
			return b.attrs, nil
		},
		decode: func(m map[string]string) *domain.SpecialtyConfig {
			return domain.NewComicBookSpecialty(domain.ComicBookConfig{
				ComicFormat:    m[KeyComicFormat],
				ComicLayout:    m[KeyComicLayout],
				NumberOfComics: parseCount(m[KeyNumberOfComics]),
			})
		},
	},
	domain.SpecialtyPlaybill: {
		detectKeys: []string{KeyPlaybillSize, KeyLayoutType},
		encode: func(s *domain.SpecialtyConfig) ([]domain.Attribute, error) {
			var b attrBuilder
			b.str(KeyPlaybillSize, s.Playbill.PlaybillSize)
			b.str(KeyLayoutType, s.Playbill.LayoutType)
			return b.attrs, nil
		},
		decode: func(m map[string]string) *domain.SpecialtyConfig {
			return domain.NewPlaybillSpecialty(domain.PlaybillConfig{
				PlaybillSize: m[KeyPlaybillSize],
				LayoutType:   m[KeyLayoutType],
			})
		},
	},
}

// attrBuilder skips zero values so absent options produce no attribute.
type attrBuilder struct {
	attrs []domain.Attribute
}

func (b *attrBuilder) str(key, value string) {
	if value != "" {
		b.attrs = append(b.attrs, domain.Attribute{Key: key, Value: value})
	}
}

func (b *attrBuilder) flag(key string, on bool) {
	if on {
		b.str(key, ValueYes)
	}
}

func (b *attrBuilder) count(key string, n int) {
	if n > 0 {
		b.str(key, strconv.Itoa(n))
	}
}

func (b *attrBuilder) dim(key string, inches float64) error {
	if inches == 0 {
		return nil
	}
	v, err := FormatDimension(inches)
	if err != nil {
		return err
	}
	b.str(key, v)
	return nil
}

func parseCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
