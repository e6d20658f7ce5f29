package option

import (
	"math"
	"strings"
)

// Gravity anchors cropping and extension. X and Y are offsets for anchor
// gravities; for FocusPoint they are the relative coordinates of the point.
type Gravity struct {
	Type GravityType
	X, Y float64
}

func (g Gravity) Name() string { return "gravity" }

func (g Gravity) Args() []string { return g.args() }

func (g Gravity) Validate() error {
	if g.Type == "" {
		return invalid(g.Name(), "a gravity type, one of "+strings.Join(gravityTypes, ", "))
	}
	return g.validate(g.Name(), true)
}

func (g Gravity) args() []string {
	switch {
	case g.Type == FocusPoint:
		return []string{string(g.Type), formatFloat(g.X), formatFloat(g.Y)}
	case g.X != 0 || g.Y != 0:
		return []string{string(g.Type), formatFloat(g.X), formatFloat(g.Y)}
	default:
		return []string{string(g.Type)}
	}
}

func (g Gravity) validate(owner string, allowSmart bool) error {
	allowed := extendGravities
	if allowSmart {
		allowed = gravityTypes
	}

	if g.Type != "" && !oneOf(g.Type, allowed) {
		return invalid(owner, "a gravity type, one of "+strings.Join(allowed, ", "))
	}

	if !finite(g.X) || !finite(g.Y) {
		return invalid(owner, "finite gravity offsets")
	}

	switch g.Type {
	case Smart:
		if g.X != 0 || g.Y != 0 {
			return invalid(owner, "no offsets with smart gravity")
		}
	case FocusPoint:
		if !unit(g.X) || !unit(g.Y) {
			return invalid(owner, "focus point coordinates between 0 and 1")
		}
	case "":
		if g.X != 0 || g.Y != 0 {
			return invalid(owner, "a gravity type with offsets")
		}
	}

	return nil
}

// gravityArgs renders an optional gravity, omitted when nil.
func gravityArgs(g *Gravity) []string {
	if g == nil {
		return nil
	}
	return g.args()
}

func validateGravity(owner string, g *Gravity, allowSmart bool) error {
	if g == nil {
		return nil
	}
	return g.validate(owner, allowSmart)
}

// Resize is the meta option combining type, dimensions, enlarge and extend.
type Resize struct {
	Type    ResizeType
	Width   int
	Height  int
	Enlarge bool
	Extend  bool
	Gravity *Gravity
}

func (r Resize) Name() string { return "resize" }

func (r Resize) Args() []string {
	args := []string{string(r.Type), formatInt(r.Width), formatInt(r.Height),
		optionalBool(r.Enlarge), optionalBool(r.Extend)}
	return append(args, gravityArgs(r.Gravity)...)
}

func (r Resize) Validate() error {
	if r.Type != "" && !oneOf(r.Type, resizeTypes) {
		return invalid(r.Name(), "a resizing type, one of "+strings.Join(resizeTypes, ", "))
	}
	if r.Width < 0 || r.Height < 0 {
		return invalid(r.Name(), "non-negative width and height")
	}
	return validateGravity(r.Name(), r.Gravity, false)
}

// Size is Resize without the resizing type.
type Size struct {
	Width   int
	Height  int
	Enlarge bool
	Extend  bool
	Gravity *Gravity
}

func (s Size) Name() string { return "size" }

func (s Size) Args() []string {
	args := []string{formatInt(s.Width), formatInt(s.Height), optionalBool(s.Enlarge), optionalBool(s.Extend)}
	return append(args, gravityArgs(s.Gravity)...)
}

func (s Size) Validate() error {
	if s.Width < 0 || s.Height < 0 {
		return invalid(s.Name(), "non-negative width and height")
	}
	return validateGravity(s.Name(), s.Gravity, false)
}

type resizingType ResizeType

func (r resizingType) Name() string   { return "resizing_type" }
func (r resizingType) Args() []string { return []string{string(r)} }

func (r resizingType) Validate() error {
	if !oneOf(r, resizeTypes) {
		return invalid(r.Name(), "one of "+strings.Join(resizeTypes, ", "))
	}
	return nil
}

func ResizingType(t ResizeType) Directive {
	return resizingType(t)
}

type resizingAlgorithm Algorithm

func (r resizingAlgorithm) Name() string   { return "resizing_algorithm" }
func (r resizingAlgorithm) Args() []string { return []string{string(r)} }

func (r resizingAlgorithm) Validate() error {
	if !oneOf(r, algorithms) {
		return invalid(r.Name(), "one of "+strings.Join(algorithms, ", "))
	}
	return nil
}

func ResizingAlgorithm(a Algorithm) Directive {
	return resizingAlgorithm(a)
}

func Width(w int) Directive {
	return integer{name: "width", value: w, max: math.MaxInt}
}

func Height(h int) Directive {
	return integer{name: "height", value: h, max: math.MaxInt}
}

func MinWidth(w int) Directive {
	return integer{name: "min-width", value: w, max: math.MaxInt}
}

func MinHeight(h int) Directive {
	return integer{name: "min-height", value: h, max: math.MaxInt}
}

// Zoom multiplies the resulting dimensions. A zero Y applies X to both axes.
type Zoom struct {
	X, Y float64
}

func (z Zoom) Name() string   { return "zoom" }
func (z Zoom) Args() []string { return []string{formatFloat(z.X), optionalFloat(z.Y)} }

func (z Zoom) Validate() error {
	if !finite(z.X) || !finite(z.Y) || z.X <= 0 || z.Y < 0 {
		return invalid(z.Name(), "positive zoom factors")
	}
	return nil
}

func DPR(dpr float64) Directive {
	return number{name: "dpr", value: dpr, valid: positive, expected: "a positive device pixel ratio"}
}

func Enlarge(enlarge bool) Directive {
	return flag{name: "enlarge", value: enlarge}
}

// Extend pads the image up to the requested size.
type Extend struct {
	Extend  bool
	Gravity *Gravity
}

func (e Extend) Name() string { return "extend" }

func (e Extend) Args() []string {
	return append([]string{formatBool(e.Extend)}, gravityArgs(e.Gravity)...)
}

func (e Extend) Validate() error {
	return validateGravity(e.Name(), e.Gravity, false)
}

// ExtendAspectRatio pads the image up to the requested aspect ratio.
type ExtendAspectRatio struct {
	Extend  bool
	Gravity *Gravity
}

func (e ExtendAspectRatio) Name() string { return "extend_aspect_ratio" }

func (e ExtendAspectRatio) Args() []string {
	return append([]string{formatBool(e.Extend)}, gravityArgs(e.Gravity)...)
}

func (e ExtendAspectRatio) Validate() error {
	return validateGravity(e.Name(), e.Gravity, false)
}

// Crop selects an area before resizing. Dimensions below 1 are relative, zero
// means the full source dimension.
type Crop struct {
	Width   float64
	Height  float64
	Gravity *Gravity
}

func (c Crop) Name() string { return "crop" }

func (c Crop) Args() []string {
	return append([]string{formatFloat(c.Width), formatFloat(c.Height)}, gravityArgs(c.Gravity)...)
}

func (c Crop) Validate() error {
	if !finite(c.Width) || !finite(c.Height) || c.Width < 0 || c.Height < 0 {
		return invalid(c.Name(), "non-negative width and height")
	}
	return validateGravity(c.Name(), c.Gravity, true)
}

// Trim removes a uniform background border.
type Trim struct {
	Threshold       float64
	Color           *Color
	EqualHorizontal bool
	EqualVertical   bool
}

func (t Trim) Name() string { return "trim" }

func (t Trim) Args() []string {
	color := ""
	if t.Color != nil {
		color = t.Color.String()
	}
	return []string{formatFloat(t.Threshold), color, optionalBool(t.EqualHorizontal), optionalBool(t.EqualVertical)}
}

func (t Trim) Validate() error {
	if !finite(t.Threshold) || t.Threshold < 0 {
		return invalid(t.Name(), "a non-negative threshold")
	}
	return nil
}

type padding []int

func (p padding) Name() string { return "padding" }

func (p padding) Args() []string {
	args := make([]string, len(p))
	for i, v := range p {
		args[i] = formatInt(v)
	}
	return args
}

func (p padding) Validate() error {
	if len(p) == 0 || len(p) > 4 {
		return invalid(p.Name(), "between one and four sides: top, right, bottom, left")
	}
	for _, v := range p {
		if v < 0 {
			return invalid(p.Name(), "non-negative sides")
		}
	}
	return nil
}

// Padding uses CSS shorthand: top, then optionally right, bottom and left.
func Padding(top int, sides ...int) Directive {
	return padding(append([]int{top}, sides...))
}

func AutoRotate(rotate bool) Directive {
	return flag{name: "auto_rotate", value: rotate}
}

type rotate int

func (r rotate) Name() string   { return "rotate" }
func (r rotate) Args() []string { return []string{formatInt(int(r))} }

func (r rotate) Validate() error {
	if r%90 != 0 {
		return invalid(r.Name(), "a multiple of 90 degrees")
	}
	return nil
}

func Rotate(angle int) Directive {
	return rotate(angle)
}
