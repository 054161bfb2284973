package pricing

// Shared specialty surcharges.
const (
	SecurityHardwareUpcharge = 8.95
	BrassNameplatePrice      = 29.0
	MatSurchargePerOpening   = 15.0
	SlabDepthModifier        = 25.0
)

// Fallback estimates used when the base frame cannot be priced. Quotes that
// use one are marked Estimated.
const (
	ComicFallbackPrice       = 120.0
	JerseyFallbackPrice      = 180.0
	PuzzleFallbackPrice      = 90.0
	ShadowboxFallbackPrice   = 140.0
	CanvasFloatFallbackPrice = 95.0
	// playbill falls back to outer perimeter x price per inch
	PlaybillFallbackPricePerInch = 2.0
)

// Playbill geometry.
const (
	DefaultFrameMouldingWidth = 1.0
	PlaybillMatBorder         = 2.0
	PlaybillMatReveal         = 0.25
)

// Shadowbox and canvas construction surcharges.
const (
	ShadowboxDeepThreshold      = 1.5
	ShadowboxExtraDeepThreshold = 2.5
	ShadowboxDeepSurcharge      = 20.0
	ShadowboxExtraDeepSurcharge = 35.0
	ShadowboxJerseyMountPrice   = 25.0
	ShadowboxAccessoryPrice     = 5.0

	CanvasDeepFloatThreshold = 1.5
	CanvasDeepFloatSurcharge = 10.0
	CanvasStretcherPrice     = 20.0
)

type dims struct {
	Width  float64
	Height float64
}

// comicLayout gives the opening count and the manufactured rabbet for raw
// (ng) and graded (gr) stock.
type comicLayout struct {
	count int
	ng    dims
	gr    dims
}

var comicLayouts = map[string]comicLayout{
	"single":       {1, dims{10, 14}, dims{12, 17}},
	"2-horizontal": {2, dims{18, 14}, dims{21, 17}},
	"3-horizontal": {3, dims{28.75, 14}, dims{30, 16.5}},
	"4-horizontal": {4, dims{37.5, 14}, dims{39, 16.5}},
	"5-horizontal": {5, dims{44, 14}, dims{44, 15}},
	"6-horizontal": {6, dims{51, 14}, dims{54, 16}},
	"3-vertical":   {3, dims{11.25, 36}, dims{11.75, 43.5}},
	"4-vertical":   {4, dims{11.25, 47}, dims{11.75, 57}},
	"4-quad":       {4, dims{20, 25}, dims{20.75, 30.5}},
	"6-quad":       {6, dims{29, 26}, dims{30, 30}},
	"6-grid":       {6, dims{20, 38.5}, dims{20.75, 44.5}},
	"8-grid":       {8, dims{37.5, 26.5}, dims{39, 30.5}},
}

type comicFormat struct {
	size      dims
	slabbed   bool
	slabDepth float64
}

var comicFormats = map[string]comicFormat{
	"golden-age":  {dims{7, 10.25}, false, 0},
	"silver-age":  {dims{6.75, 10.25}, false, 0},
	"bronze-age":  {dims{6.75, 10.25}, false, 0},
	"modern-age":  {dims{6.625, 10.25}, false, 0},
	"slabbed-cgc": {dims{8.25, 13}, true, 0.75},
}

type playbillLayout struct {
	outer    dims
	openings int
}

// playbillLayouts give the outer frame size and opening count.
var playbillLayouts = map[string]playbillLayout{
	"playbill-single":         {dims{11.5, 14.5}, 1},
	"playbill-ticket-1":       {dims{11.5, 17}, 2},
	"playbill-2h":             {dims{17.5, 14.5}, 2},
	"playbill-2v":             {dims{11.5, 23.5}, 2},
	"playbill-2v-ticket-2":    {dims{11.5, 28.5}, 4},
	"playbill-3h":             {dims{23.5, 14.5}, 3},
	"playbill-3v":             {dims{11.5, 32.5}, 3},
	"playbill-3v-ticket-3":    {dims{11.5, 40}, 6},
	"playbill-4":              {dims{17.5, 23.5}, 4},
	"playbill-4h":             {dims{29.5, 14.5}, 4},
	"playbill-4h-ticket-4":    {dims{29.5, 17}, 8},
	"playbill-4v":             {dims{11.5, 41.5}, 4},
	"playbill-4v-ticket-4":    {dims{11.5, 51.5}, 8},
	"playbill-5h":             {dims{35.5, 14.5}, 5},
	"playbill-5h-ticket-5":    {dims{35.5, 17}, 10},
	"playbill-6h":             {dims{41.5, 14.5}, 6},
	"playbill-6h-ticket-6":    {dims{41.5, 17}, 12},
	"playbill-2-ticket-2":     {dims{17.5, 17}, 4},
	"playbill-3-ticket-3":     {dims{23.5, 17}, 6},
	"playbill-4-ticket-4":     {dims{17.5, 28.5}, 8},
	"playbill-6-2x3":          {dims{17.5, 32.5}, 6},
	"playbill-6-2x3-ticket-6": {dims{17.5, 41}, 12},
	"playbill-6-3x2":          {dims{23.5, 23.5}, 6},
	"playbill-6-3x2-ticket-6": {dims{23.5, 30}, 12},
	"playbill-8-2x4":          {dims{17.5, 41.5}, 8},
	"playbill-8-2x4-ticket-8": {dims{17.5, 51.5}, 16},
	"playbill-8-4x2":          {dims{29.5, 23.5}, 8},
	"playbill-8-4x2-ticket-8": {dims{29.5, 28.5}, 16},
	"playbill-9-3x3":          {dims{23.5, 32.5}, 9},
	"playbill-9-3x3-ticket-9": {dims{23.5, 39}, 18},
	"playbill-12-3x4":         {dims{23.5, 41.5}, 12},
}

// jerseyLayouts are frame interior sizes.
var jerseyLayouts = map[string]dims{
	"classic-small":   {22, 24},
	"classic-regular": {24, 26},
	"classic-large":   {26, 28},
}

type puzzleSize struct {
	pieces int
	size   dims
}

var puzzleSizes = map[string]puzzleSize{
	"puzzle-100":            {100, dims{14.25, 10.25}},
	"puzzle-150":            {150, dims{14.25, 10.25}},
	"puzzle-200":            {200, dims{19.25, 14.25}},
	"puzzle-300":            {300, dims{18, 24}},
	"puzzle-500":            {500, dims{19.25, 14.25}},
	"puzzle-750":            {750, dims{24, 18}},
	"puzzle-1000":           {1000, dims{27, 20}},
	"puzzle-1500":           {1500, dims{32, 24}},
	"puzzle-2000":           {2000, dims{39, 27}},
	"puzzle-500-panoramic":  {500, dims{26, 9}},
	"puzzle-750-panoramic":  {750, dims{37, 12}},
	"puzzle-1000-panoramic": {1000, dims{39, 13}},
	"puzzle-500-square":     {500, dims{21, 21}},
	"puzzle-1000-square":    {1000, dims{25, 25}},
	"puzzle-500-round":      {500, dims{25, 25}},
	"puzzle-1000-round":     {1000, dims{27, 27}},
}

// ComicLayouts lists the comic layout ids.
func ComicLayouts() []string { return sortedKeys(comicLayouts) }

func ComicFormats() []string { return sortedKeys(comicFormats) }

func PlaybillLayouts() []string { return sortedKeys(playbillLayouts) }

func JerseyLayouts() []string { return sortedKeys(jerseyLayouts) }

func PuzzleSizes() []string { return sortedKeys(puzzleSizes) }
