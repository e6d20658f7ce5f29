package option

import "slices"

type ResizeType string

const (
	Fit      ResizeType = "fit"
	Fill     ResizeType = "fill"
	FillDown ResizeType = "fill-down"
	Force    ResizeType = "force"
	Auto     ResizeType = "auto"
)

var resizeTypes = []string{"fit", "fill", "fill-down", "force", "auto"}

type Algorithm string

const (
	Nearest  Algorithm = "nearest"
	Linear   Algorithm = "linear"
	Cubic    Algorithm = "cubic"
	Lanczos2 Algorithm = "lanczos2"
	Lanczos3 Algorithm = "lanczos3"
)

var algorithms = []string{"nearest", "linear", "cubic", "lanczos2", "lanczos3"}

type GravityType string

const (
	North      GravityType = "no"
	South      GravityType = "so"
	East       GravityType = "ea"
	West       GravityType = "we"
	NorthEast  GravityType = "noea"
	NorthWest  GravityType = "nowe"
	SouthEast  GravityType = "soea"
	SouthWest  GravityType = "sowe"
	Center     GravityType = "ce"
	Smart      GravityType = "sm"
	FocusPoint GravityType = "fp"
)

var (
	anchorGravities = []string{"no", "so", "ea", "we", "noea", "nowe", "soea", "sowe", "ce"}
	extendGravities = append(slices.Clone(anchorGravities), "fp")
	gravityTypes    = append(slices.Clone(anchorGravities), "sm", "fp")
)

type WatermarkPosition string

const (
	PositionCenter    WatermarkPosition = "ce"
	PositionNorth     WatermarkPosition = "no"
	PositionSouth     WatermarkPosition = "so"
	PositionEast      WatermarkPosition = "ea"
	PositionWest      WatermarkPosition = "we"
	PositionNorthEast WatermarkPosition = "noea"
	PositionNorthWest WatermarkPosition = "nowe"
	PositionSouthEast WatermarkPosition = "soea"
	PositionSouthWest WatermarkPosition = "sowe"
	PositionReplicate WatermarkPosition = "re"
)

var watermarkPositions = append(slices.Clone(anchorGravities), "re")

type ImageFormat string

const (
	JPEG ImageFormat = "jpg"
	PNG  ImageFormat = "png"
	WebP ImageFormat = "webp"
	AVIF ImageFormat = "avif"
	GIF  ImageFormat = "gif"
	ICO  ImageFormat = "ico"
	SVG  ImageFormat = "svg"
	HEIC ImageFormat = "heic"
	BMP  ImageFormat = "bmp"
	TIFF ImageFormat = "tiff"
	Best ImageFormat = "best"
)

var formats = []string{"jpg", "png", "webp", "avif", "gif", "ico", "svg", "heic", "bmp", "tiff", "best"}

type UnsharpMode string

const (
	UnsharpAuto   UnsharpMode = "auto"
	UnsharpNone   UnsharpMode = "none"
	UnsharpAlways UnsharpMode = "always"
)

var unsharpModes = []string{"auto", "none", "always"}

func oneOf[T ~string](v T, values []string) bool {
	return slices.Contains(values, string(v))
}
