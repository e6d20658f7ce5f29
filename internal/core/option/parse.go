package option

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"imgproxyurl/internal/core/domain"
)

type kind struct {
	label string
	ok    func(string) bool
}

var (
	floatKind = floatWhere("number", func(float64) bool { return true })
	boolKind  = kind{label: "boolean", ok: func(s string) bool {
		_, err := strconv.ParseBool(s)
		return err == nil
	}}
	textKind  = kind{label: "text", ok: func(s string) bool { return s != "" }}
	colorKind = kind{label: "colour", ok: func(s string) bool {
		_, err := ParseColor(s)
		return err == nil
	}}
	channelKind = intIn(0, 255)
	percentKind = intIn(0, 100)
	sizeKind    = intIn(0, math.MaxInt)
	countKind   = intIn(1, math.MaxInt)
	levelKind   = intIn(-255, 255)
	angleKind   = kind{label: "multiple of 90", ok: func(s string) bool {
		n, err := strconv.Atoi(s)
		return err == nil && n%90 == 0
	}}
	positiveKind    = floatWhere("number>0", positive)
	nonNegativeKind = floatWhere("number>=0", nonNegative)
	unitKind        = floatWhere("0-1", unit)
)

func intIn(lo, hi int) kind {
	label := formatInt(lo) + "-" + formatInt(hi)
	if hi == math.MaxInt {
		label = "integer>=" + formatInt(lo)
	}

	return kind{label: label, ok: func(s string) bool {
		n, err := strconv.Atoi(s)
		return err == nil && n >= lo && n <= hi
	}}
}

func floatWhere(label string, valid func(float64) bool) kind {
	return kind{label: label, ok: func(s string) bool {
		f, err := strconv.ParseFloat(s, 64)
		return err == nil && finite(f) && valid(f)
	}}
}

func enumKind(values []string) kind {
	return kind{label: strings.Join(values, "|"), ok: func(s string) bool {
		return slices.Contains(values, s)
	}}
}

// shape describes the arguments a directive accepts. The first required
// positions must be present and non-empty; later positions may be empty.
// Every directive takes at least one non-empty argument. post checks rules
// spanning several arguments.
type shape struct {
	args     []kind
	required int
	rest     *kind
	alt      *shape
	post     func(args []string) bool
}

func (s shape) expected(name string) string {
	if s.alt != nil {
		alt := s
		alt.alt = nil
		return alt.expected(name) + " or " + s.alt.expected(name)
	}

	var b strings.Builder
	b.WriteString(name)
	for i, k := range s.args {
		if i < s.required {
			b.WriteString(":" + k.label)
		} else {
			b.WriteString("[:" + k.label + "]")
		}
	}
	if s.rest != nil {
		b.WriteString("[:" + s.rest.label + "]...")
	}
	return b.String()
}

func (s shape) check(args []string) bool {
	if s.alt != nil && s.alt.check(args) {
		return true
	}

	if len(args) == 0 || len(args) < s.required {
		return false
	}
	if len(args) > len(s.args) && s.rest == nil {
		return false
	}

	for i, arg := range args {
		k := s.rest
		if i < len(s.args) {
			k = &s.args[i]
		}

		if arg == "" {
			if i < s.required {
				return false
			}
			continue
		}

		if !k.ok(arg) {
			return false
		}
	}

	if !slices.ContainsFunc(args, func(arg string) bool { return arg != "" }) {
		return false
	}

	return s.post == nil || s.post(args)
}

// gravityAt checks the gravity type at args[i] against the offsets after it:
// focus point coordinates lie in 0..1, smart or absent gravity takes none.
func gravityAt(i int) func(args []string) bool {
	return func(args []string) bool {
		if len(args) <= i {
			return true
		}

		typ, offsets := args[i], args[i+1:]
		for _, o := range offsets {
			if o == "" {
				continue
			}

			f, _ := strconv.ParseFloat(o, 64)
			switch GravityType(typ) {
			case FocusPoint:
				if !unit(f) {
					return false
				}
			case Smart, "":
				if f != 0 {
					return false
				}
			}
		}
		return true
	}
}

func one(k kind) shape {
	return shape{args: []kind{k}, required: 1}
}

var shapes = map[string]shape{
	"resize": {args: []kind{enumKind(resizeTypes), sizeKind, sizeKind, boolKind, boolKind,
		enumKind(extendGravities), floatKind, floatKind}, post: gravityAt(5)},
	"size": {args: []kind{sizeKind, sizeKind, boolKind, boolKind, enumKind(extendGravities), floatKind,
		floatKind}, post: gravityAt(4)},
	"resizing_type":      one(enumKind(resizeTypes)),
	"resizing_algorithm": one(enumKind(algorithms)),
	"width":              one(sizeKind),
	"height":             one(sizeKind),
	"min-width":          one(sizeKind),
	"min-height":         one(sizeKind),
	"zoom":               {args: []kind{positiveKind, nonNegativeKind}, required: 1},
	"dpr":                one(positiveKind),
	"enlarge":            one(boolKind),
	"extend": {args: []kind{boolKind, enumKind(extendGravities), floatKind, floatKind}, required: 1,
		post: gravityAt(1)},
	"extend_aspect_ratio": {args: []kind{boolKind, enumKind(extendGravities), floatKind, floatKind}, required: 1,
		post: gravityAt(1)},
	"gravity": {args: []kind{enumKind(gravityTypes), floatKind, floatKind}, required: 1, post: gravityAt(0)},
	"crop": {args: []kind{nonNegativeKind, nonNegativeKind, enumKind(gravityTypes), floatKind, floatKind},
		required: 2, post: gravityAt(2)},
	"trim":        {args: []kind{nonNegativeKind, colorKind, boolKind, boolKind}, required: 1},
	"padding":     {args: []kind{sizeKind, sizeKind, sizeKind, sizeKind}, required: 1},
	"auto_rotate": one(boolKind),
	"rotate":      one(angleKind),
	"background": {args: []kind{colorKind}, required: 1,
		alt: &shape{args: []kind{channelKind, channelKind, channelKind}, required: 3}},
	"background_alpha":  one(unitKind),
	"adjust":            {args: []kind{levelKind, nonNegativeKind, nonNegativeKind}},
	"brightness":        one(levelKind),
	"contrast":          one(positiveKind),
	"saturation":        one(positiveKind),
	"blur":              one(nonNegativeKind),
	"sharpen":           one(nonNegativeKind),
	"pixelate":          one(sizeKind),
	"unsharp_masking":   {args: []kind{enumKind(unsharpModes), nonNegativeKind, nonNegativeKind}},
	"blur_detections":   {args: []kind{nonNegativeKind}, required: 1, rest: &textKind},
	"draw_detections":   {args: []kind{boolKind}, required: 1, rest: &textKind},
	"watermark": {args: []kind{unitKind, enumKind(watermarkPositions), floatKind, floatKind, nonNegativeKind},
		required: 1},
	"strip_metadata":                 one(boolKind),
	"keep_copyright":                 one(boolKind),
	"strip_color_profile":            one(boolKind),
	"enforce_thumbnail":              one(boolKind),
	"quality":                        one(percentKind),
	"format":                         one(enumKind(formats)),
	"page":                           one(sizeKind),
	"pages":                          one(countKind),
	"disable_animation":              one(boolKind),
	"raw":                            one(boolKind),
	"cachebuster":                    one(textKind),
	"expires":                        one(countKind),
	"return_attachment":              one(boolKind),
	"preset":                         {args: []kind{textKind}, required: 1, rest: &textKind},
	"max_src_resolution":             one(positiveKind),
	"max_src_file_size":              one(sizeKind),
	"max_animation_frames":           one(countKind),
	"max_animation_frame_resolution": one(nonNegativeKind),
}

var aliases = map[string]string{
	"rs":         "resize",
	"s":          "size",
	"rt":         "resizing_type",
	"ra":         "resizing_algorithm",
	"w":          "width",
	"h":          "height",
	"mw":         "min-width",
	"min_width":  "min-width",
	"mh":         "min-height",
	"min_height": "min-height",
	"z":          "zoom",
	"el":         "enlarge",
	"ex":         "extend",
	"exar":       "extend_aspect_ratio",
	"g":          "gravity",
	"c":          "crop",
	"t":          "trim",
	"pd":         "padding",
	"ar":         "auto_rotate",
	"rot":        "rotate",
	"bg":         "background",
	"bga":        "background_alpha",
	"a":          "adjust",
	"br":         "brightness",
	"co":         "contrast",
	"sa":         "saturation",
	"bl":         "blur",
	"sh":         "sharpen",
	"pix":        "pixelate",
	"ush":        "unsharp_masking",
	"bd":         "blur_detections",
	"dd":         "draw_detections",
	"wm":         "watermark",
	"sm":         "strip_metadata",
	"kcr":        "keep_copyright",
	"scp":        "strip_color_profile",
	"eth":        "enforce_thumbnail",
	"q":          "quality",
	"f":          "format",
	"ext":        "format",
	"pg":         "page",
	"pgs":        "pages",
	"da":         "disable_animation",
	"cb":         "cachebuster",
	"exp":        "expires",
	"att":        "return_attachment",
	"pr":         "preset",
	"msr":        "max_src_resolution",
	"msfs":       "max_src_file_size",
	"maf":        "max_animation_frames",
	"mafr":       "max_animation_frame_resolution",
}

// Parse reads a directive in its path form, e.g. "resize:fit:300:200" or the
// short "rs:fit:300:200", and checks it against the known argument shapes.
// The directive is emitted exactly as written.
func Parse(token string) (Directive, error) {
	if token == "" {
		return nil, &domain.OptionError{Name: "<empty>", Expected: "name:arg[:arg]..."}
	}
	if strings.Contains(token, "/") {
		return nil, &domain.OptionError{Name: token, Expected: "a single directive without '/'"}
	}

	parts := strings.Split(token, ":")
	name, args := parts[0], parts[1:]

	canonical := name
	if alias, ok := aliases[name]; ok {
		canonical = alias
	}

	s, ok := shapes[canonical]
	if !ok {
		return nil, &domain.OptionError{Name: name, Err: errors.New("unknown directive")}
	}

	if !s.check(args) {
		return nil, &domain.OptionError{
			Name:     name,
			Expected: s.expected(name),
			Err:      fmt.Errorf("got %q", token),
		}
	}

	return Custom{Option: name, Values: args}, nil
}

// ParseSet parses each token and adds it to a new Set in order.
func ParseSet(tokens ...string) (*Set, error) {
	s := &Set{}
	for _, token := range tokens {
		d, err := Parse(token)
		if err != nil {
			return nil, err
		}

		if err := s.Add(d); err != nil {
			return nil, err
		}
	}
	return s, nil
}
