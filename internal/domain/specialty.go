package domain

// SpecialtyType names one of the specialty frame constructions layered on top
// of a base FrameConfiguration.
type SpecialtyType string

const (
	SpecialtyShadowbox   SpecialtyType = "shadowbox"
	SpecialtyJersey      SpecialtyType = "jersey"
	SpecialtyCanvasFloat SpecialtyType = "canvas-float"
	SpecialtyPuzzle      SpecialtyType = "puzzle"
	SpecialtyComicBook   SpecialtyType = "comic-book"
	SpecialtyPlaybill    SpecialtyType = "playbill"
)

// SpecialtyTypes lists every specialty in attribute detection order.
var SpecialtyTypes = []SpecialtyType{
	SpecialtyShadowbox,
	SpecialtyJersey,
	SpecialtyCanvasFloat,
	SpecialtyPuzzle,
	SpecialtyComicBook,
	SpecialtyPlaybill,
}

// Valid reports whether t is a known specialty type.
func (t SpecialtyType) Valid() bool {
	for _, known := range SpecialtyTypes {
		if t == known {
			return true
		}
	}
	return false
}

// HangingHardware grade for shadowbox and specialty frames.
type HangingHardware string

const (
	HardwareStandard HangingHardware = "standard"
	HardwareSecurity HangingHardware = "security"
)

type ShadowboxConfig struct {
	BackingType     string          `json:"backingType,omitempty"`
	BackingColor    string          `json:"backingColor,omitempty"`
	HangingHardware HangingHardware `json:"hangingHardware,omitempty"`
	Depth           float64         `json:"depth,omitempty"`
	JerseyMount     bool            `json:"jerseyMount,omitempty"`
	Accessories     []string        `json:"accessories,omitempty"`
}

type JerseyConfig struct {
	JerseySize   string `json:"jerseySize,omitempty"`
	MountType    string `json:"mountType,omitempty"`
	DisplayStyle string `json:"displayStyle,omitempty"`
}

type CanvasFloatConfig struct {
	FloatDepth      float64 `json:"floatDepth,omitempty"`
	CanvasStretcher bool    `json:"canvasStretcher,omitempty"`
}

type PuzzleConfig struct {
	PuzzleSize       string `json:"puzzleSize,omitempty"`
	PuzzlePieceCount int    `json:"puzzlePieceCount,omitempty"`
}

type ComicBookConfig struct {
	ComicFormat    string `json:"comicFormat,omitempty"`
	ComicLayout    string `json:"comicLayout,omitempty"`
	NumberOfComics int    `json:"numberOfComics,omitempty"`
}

type PlaybillConfig struct {
	PlaybillSize string `json:"playbillSize,omitempty"`
	LayoutType   string `json:"layoutType,omitempty"`
}

// SpecialtyConfig is a closed union: Type names the variant and exactly the
// matching pointer is set. Use the New*Specialty constructors.
type SpecialtyConfig struct {
	Type        SpecialtyType
	Shadowbox   *ShadowboxConfig
	Jersey      *JerseyConfig
	CanvasFloat *CanvasFloatConfig
	Puzzle      *PuzzleConfig
	ComicBook   *ComicBookConfig
	Playbill    *PlaybillConfig
}

func NewShadowboxSpecialty(c ShadowboxConfig) *SpecialtyConfig {
	return &SpecialtyConfig{Type: SpecialtyShadowbox, Shadowbox: &c}
}

func NewJerseySpecialty(c JerseyConfig) *SpecialtyConfig {
	return &SpecialtyConfig{Type: SpecialtyJersey, Jersey: &c}
}

func NewCanvasFloatSpecialty(c CanvasFloatConfig) *SpecialtyConfig {
	return &SpecialtyConfig{Type: SpecialtyCanvasFloat, CanvasFloat: &c}
}

func NewPuzzleSpecialty(c PuzzleConfig) *SpecialtyConfig {
	return &SpecialtyConfig{Type: SpecialtyPuzzle, Puzzle: &c}
}

func NewComicBookSpecialty(c ComicBookConfig) *SpecialtyConfig {
	return &SpecialtyConfig{Type: SpecialtyComicBook, ComicBook: &c}
}

func NewPlaybillSpecialty(c PlaybillConfig) *SpecialtyConfig {
	return &SpecialtyConfig{Type: SpecialtyPlaybill, Playbill: &c}
}

// Payload returns the variant struct selected by Type, or nil when the union
// is empty or inconsistent.
func (s *SpecialtyConfig) Payload() any {
	if s == nil {
		return nil
	}
	switch s.Type {
	case SpecialtyShadowbox:
		if s.Shadowbox != nil {
			return s.Shadowbox
		}
	case SpecialtyJersey:
		if s.Jersey != nil {
			return s.Jersey
		}
	case SpecialtyCanvasFloat:
		if s.CanvasFloat != nil {
			return s.CanvasFloat
		}
	case SpecialtyPuzzle:
		if s.Puzzle != nil {
			return s.Puzzle
		}
	case SpecialtyComicBook:
		if s.ComicBook != nil {
			return s.ComicBook
		}
	case SpecialtyPlaybill:
		if s.Playbill != nil {
			return s.Playbill
		}
	}
	return nil
}

// Clone returns a deep copy of the union.
func (s *SpecialtyConfig) Clone() *SpecialtyConfig {
	if s == nil {
		return nil
	}
	out := &SpecialtyConfig{Type: s.Type}
	if s.Shadowbox != nil {
		sb := *s.Shadowbox
		sb.Accessories = append([]string(nil), s.Shadowbox.Accessories...)
		out.Shadowbox = &sb
	}
	if s.Jersey != nil {
		j := *s.Jersey
		out.Jersey = &j
	}
	if s.CanvasFloat != nil {
		c := *s.CanvasFloat
		out.CanvasFloat = &c
	}
	if s.Puzzle != nil {
		p := *s.Puzzle
		out.Puzzle = &p
	}
	if s.ComicBook != nil {
		c := *s.ComicBook
		out.ComicBook = &c
	}
	if s.Playbill != nil {
		p := *s.Playbill
		out.Playbill = &p
	}
	return out
}
