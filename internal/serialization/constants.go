package serialization

// Attribute keys in the order they are emitted.
const (
	KeyServiceType     = "Service Type"
	KeyOrderSource     = "Order Source"
	KeyArtworkWidth    = "Artwork Width"
	KeyArtworkHeight   = "Artwork Height"
	KeyFrameStyle      = "Frame Style"
	KeyMatType         = "Mat Type"
	KeyMatBorderWidth  = "Mat Border Width"
	KeyMatColor        = "Mat Color"
	KeyMatReveal       = "Mat Reveal"
	KeyMatInnerColor   = "Mat Inner Color"
	KeyGlassType       = "Glass Type"
	KeyCustomerImage   = "Customer Image"
	KeyImageFit        = "Image Fit"
	KeyCopyrightAgreed = "Copyright Agreed"
	KeyBottomWeighted  = "Bottom Weighted"

	// KeyConfigurationJSON is reserved: always present, always last and
	// authoritative when it parses.
	KeyConfigurationJSON = "Configuration JSON"
)

// Specialty attribute keys.
const (
	KeyBackingType     = "Backing Type"
	KeyBackingColor    = "Backing Color"
	KeyHangingHardware = "Hanging Hardware"
	KeyDepth           = "Depth"
	KeyJerseyMount     = "Jersey Mount"
	KeyAccessories     = "Accessories"

	KeyJerseySize   = "Jersey Size"
	KeyMountType    = "Mount Type"
	KeyDisplayStyle = "Display Style"

	KeyFloatDepth      = "Float Depth"
	KeyCanvasStretcher = "Canvas Stretcher"

	KeyPuzzleSize       = "Puzzle Size"
	KeyPuzzlePieceCount = "Puzzle Piece Count"

	KeyComicFormat    = "Comic Format"
	KeyComicLayout    = "Comic Layout"
	KeyNumberOfComics = "Number of Comics"

	KeyPlaybillSize = "Playbill Size"
	KeyLayoutType   = "Layout Type"
)

const (
	// ValueYes encodes a true boolean flag. False flags are omitted.
	ValueYes = "Yes"

	accessoriesSeparator = ", "
	dimensionUnit        = `"`

	// SchemaVersion is written into the Configuration JSON. Payloads without
	// a version are read as version 1.
	SchemaVersion = 1
)

// Validation messages
const (
	ErrMsgServiceTypeRequired   = "serviceType is required"
	ErrMsgInvalidServiceType    = `Invalid serviceType: %s. Must be "frame-only" or "print-and-frame"`
	ErrMsgArtworkWidth          = "artworkWidth must be a positive number"
	ErrMsgArtworkHeight         = "artworkHeight must be a positive number"
	ErrMsgFrameStyleRequired    = "frameStyleId is required"
	ErrMsgInvalidMatType        = `Invalid matType: %s. Must be "none", "single", or "double"`
	ErrMsgMatBorderWidth        = "matBorderWidth must be a positive number when matType is not 'none'"
	ErrMsgMatColorRequired      = "matColorId is required when matType is not 'none'"
	ErrMsgMatRevealWidth        = "matRevealWidth must be a positive number if provided"
	ErrMsgGlassTypeRequired     = "glassTypeId is required"
	ErrMsgImageURLRequired      = "imageUrl is required for print-and-frame service"
	ErrMsgInvalidImageFit       = `Invalid imageFit: %s. Must be "cover" or "contain"`
	ErrMsgInvalidDimension      = "Invalid dimension: %v"
	ErrMsgUnsupportedSchema     = "unsupported configuration schema version %d"
	ErrMsgAttributesRequired    = "Attributes array is required and cannot be empty"
	ErrMsgAttrServiceType       = "Service Type attribute is required and must be valid"
	ErrMsgAttrArtworkDimensions = "Artwork Width and Artwork Height are required"
	ErrMsgAttrFrameStyle        = "Frame Style attribute is required"
	ErrMsgAttrMatType           = "Mat Type attribute is required and must be valid"
	ErrMsgAttrMatBorderWidth    = "Mat Border Width is required when Mat Type is not 'none'"
	ErrMsgAttrMatColor          = "Mat Color is required when Mat Type is not 'none'"
	ErrMsgAttrGlassType         = "Glass Type attribute is required"
)

// Log messages
const (
	LogMsgJSONFallback = "Failed to parse Configuration JSON, falling back to attribute parsing"
)
