package domain

// ServiceType selects whether the shop prints the artwork or only frames it.
type ServiceType string

const (
	ServiceFrameOnly     ServiceType = "frame-only"
	ServicePrintAndFrame ServiceType = "print-and-frame"
)

// Valid reports whether s is a known service type.
func (s ServiceType) Valid() bool {
	return s == ServiceFrameOnly || s == ServicePrintAndFrame
}

// MatType is the number of mat layers around the artwork.
type MatType string

const (
	MatNone   MatType = "none"
	MatSingle MatType = "single"
	MatDouble MatType = "double"
)

// Valid reports whether m is a known mat type.
func (m MatType) Valid() bool {
	return m == MatNone || m == MatSingle || m == MatDouble
}

// ImageFit controls how a customer image is placed in the opening.
type ImageFit string

const (
	ImageFitCover   ImageFit = "cover"
	ImageFitContain ImageFit = "contain"
)

// Valid reports whether f is a known image fit.
func (f ImageFit) Valid() bool {
	return f == ImageFitCover || f == ImageFitContain
}

// FrameConfiguration is the canonical description of a single framed item.
// Dimensions are in inches. Mat fields are only meaningful when MatType is
// not none; the reveal and inner color only for double mats.
type FrameConfiguration struct {
	ServiceType     ServiceType `json:"serviceType"`
	ArtworkWidth    float64     `json:"artworkWidth"`
	ArtworkHeight   float64     `json:"artworkHeight"`
	FrameStyleID    string      `json:"frameStyleId"`
	MatType         MatType     `json:"matType"`
	MatBorderWidth  float64     `json:"matBorderWidth"`
	MatRevealWidth  float64     `json:"matRevealWidth"`
	MatColorID      string      `json:"matColorId"`
	MatInnerColorID string      `json:"matInnerColorId,omitempty"`
	GlassTypeID     string      `json:"glassTypeId"`
	ImageURL        string      `json:"imageUrl,omitempty"`
	ImageFit        ImageFit    `json:"imageFit,omitempty"`
	CopyrightAgreed bool        `json:"copyrightAgreed,omitempty"`
	OrderSource     string      `json:"orderSource,omitempty"`
	BottomWeighted  bool        `json:"bottomWeighted,omitempty"`
}

// HasMat reports whether the configuration includes at least one mat layer.
func (c FrameConfiguration) HasMat() bool {
	return c.MatType != MatNone && c.MatType != ""
}

// Attribute is one string key/value pair attached to a remote cart line.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
