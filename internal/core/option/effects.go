package option

import (
	"math"
	"strings"
)

type background Color

func (b background) Name() string   { return "background" }
func (b background) Args() []string { return []string{Color(b).String()} }

func (b background) Validate() error { return nil }

// Background fills transparent areas and padding with c.
func Background(c Color) Directive {
	return background(c)
}

func BackgroundAlpha(alpha float64) Directive {
	return number{name: "background_alpha", value: alpha, valid: unit, expected: "an alpha between 0 and 1"}
}

// Adjust sets brightness, contrast and saturation at once. Zero contrast or
// saturation leaves the service default in place.
type Adjust struct {
	Brightness int
	Contrast   float64
	Saturation float64
}

func (a Adjust) Name() string { return "adjust" }

func (a Adjust) Args() []string {
	return []string{formatInt(a.Brightness), optionalFloat(a.Contrast), optionalFloat(a.Saturation)}
}

func (a Adjust) Validate() error {
	if a.Brightness < -255 || a.Brightness > 255 {
		return invalid(a.Name(), "a brightness between -255 and 255")
	}
	if !finite(a.Contrast) || !finite(a.Saturation) || a.Contrast < 0 || a.Saturation < 0 {
		return invalid(a.Name(), "non-negative contrast and saturation")
	}
	return nil
}

func Brightness(b int) Directive {
	return integer{name: "brightness", value: b, min: -255, max: 255}
}

func Contrast(c float64) Directive {
	return number{name: "contrast", value: c, valid: positive, expected: "a positive contrast"}
}

func Saturation(s float64) Directive {
	return number{name: "saturation", value: s, valid: positive, expected: "a positive saturation"}
}

func Blur(sigma float64) Directive {
	return number{name: "blur", value: sigma, valid: nonNegative, expected: "a non-negative sigma"}
}

func Sharpen(sigma float64) Directive {
	return number{name: "sharpen", value: sigma, valid: nonNegative, expected: "a non-negative sigma"}
}

func Pixelate(size int) Directive {
	return integer{name: "pixelate", value: size, max: math.MaxInt}
}

// UnsharpMasking overrides the service's unsharp masking configuration.
type UnsharpMasking struct {
	Mode    UnsharpMode
	Weight  float64
	Divider float64
}

func (u UnsharpMasking) Name() string { return "unsharp_masking" }

func (u UnsharpMasking) Args() []string {
	return []string{string(u.Mode), optionalFloat(u.Weight), optionalFloat(u.Divider)}
}

func (u UnsharpMasking) Validate() error {
	if u.Mode != "" && !oneOf(u.Mode, unsharpModes) {
		return invalid(u.Name(), "a mode, one of "+strings.Join(unsharpModes, ", "))
	}
	if !finite(u.Weight) || !finite(u.Divider) || u.Weight < 0 || u.Divider < 0 {
		return invalid(u.Name(), "non-negative weight and divider")
	}
	return nil
}

type detections struct {
	name    string
	first   string
	valid   bool
	classes []string
}

func (d detections) Name() string   { return d.name }
func (d detections) Args() []string { return append([]string{d.first}, d.classes...) }

func (d detections) Validate() error {
	if !d.valid {
		return invalid(d.name, "a non-negative sigma")
	}
	for _, c := range d.classes {
		if c == "" {
			return invalid(d.name, "non-empty class names")
		}
	}
	return nil
}

// BlurDetections blurs detected objects of the given classes, or all detected
// objects when no class is named.
func BlurDetections(sigma float64, classes ...string) Directive {
	return detections{
		name:    "blur_detections",
		first:   formatFloat(sigma),
		valid:   finite(sigma) && sigma >= 0,
		classes: classes,
	}
}

// DrawDetections draws bounding boxes around detected objects.
func DrawDetections(draw bool, classes ...string) Directive {
	return detections{name: "draw_detections", first: formatBool(draw), valid: true, classes: classes}
}

// Watermark places the watermark configured on the service.
type Watermark struct {
	Opacity  float64
	Position WatermarkPosition
	X, Y     float64
	Scale    float64
}

func (w Watermark) Name() string { return "watermark" }

func (w Watermark) Args() []string {
	return []string{formatFloat(w.Opacity), string(w.Position), optionalFloat(w.X), optionalFloat(w.Y),
		optionalFloat(w.Scale)}
}

func (w Watermark) Validate() error {
	if !finite(w.Opacity) || !unit(w.Opacity) {
		return invalid(w.Name(), "an opacity between 0 and 1")
	}
	if w.Position != "" && !oneOf(w.Position, watermarkPositions) {
		return invalid(w.Name(), "a position, one of "+strings.Join(watermarkPositions, ", "))
	}
	if !finite(w.X) || !finite(w.Y) {
		return invalid(w.Name(), "finite offsets")
	}
	if !finite(w.Scale) || w.Scale < 0 {
		return invalid(w.Name(), "a non-negative scale")
	}
	return nil
}
