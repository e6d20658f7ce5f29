package option

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"imgproxyurl/internal/core/domain"

	"github.com/gofrs/uuid/v5"
)

func StripMetadata(strip bool) Directive {
	return flag{name: "strip_metadata", value: strip}
}

func KeepCopyright(keep bool) Directive {
	return flag{name: "keep_copyright", value: keep}
}

func StripColorProfile(strip bool) Directive {
	return flag{name: "strip_color_profile", value: strip}
}

func EnforceThumbnail(enforce bool) Directive {
	return flag{name: "enforce_thumbnail", value: enforce}
}

// Quality sets the output quality in percent; zero defers to the service.
func Quality(q int) Directive {
	return integer{name: "quality", value: q, max: 100}
}

type format ImageFormat

func (f format) Name() string   { return "format" }
func (f format) Args() []string { return []string{string(f)} }

func (f format) Validate() error {
	if !oneOf(f, formats) {
		return invalid(f.Name(), "one of "+strings.Join(formats, ", "))
	}
	return nil
}

func Format(f ImageFormat) Directive {
	return format(f)
}

func Page(page int) Directive {
	return integer{name: "page", value: page, max: math.MaxInt}
}

func Pages(pages int) Directive {
	return integer{name: "pages", value: pages, min: 1, max: math.MaxInt}
}

func DisableAnimation(disable bool) Directive {
	return flag{name: "disable_animation", value: disable}
}

// Raw asks the service to stream the source unprocessed.
func Raw(raw bool) Directive {
	return flag{name: "raw", value: raw}
}

func CacheBuster(token string) Directive {
	return text{name: "cachebuster", values: []string{token}}
}

// NewCacheBuster returns a cache buster carrying a random UUIDv4 token.
func NewCacheBuster() (Directive, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("generating cache buster: %w", err)
	}

	return CacheBuster(id.String()), nil
}

type expires int64

func (e expires) Name() string   { return "expires" }
func (e expires) Args() []string { return []string{strconv.FormatInt(int64(e), 10)} }

func (e expires) Validate() error {
	if e <= 0 {
		return invalid(e.Name(), "a unix timestamp after the epoch")
	}
	return nil
}

// Expires makes the service reject the URL after t.
func Expires(t time.Time) Directive {
	return expires(t.Unix())
}

func ReturnAttachment(attachment bool) Directive {
	return flag{name: "return_attachment", value: attachment}
}

// Preset references presets defined on the service, applied in order.
func Preset(names ...string) Directive {
	return text{name: "preset", values: names}
}

// MaxSrcResolution overrides the source resolution limit, in megapixels.
func MaxSrcResolution(megapixels float64) Directive {
	return number{name: "max_src_resolution", value: megapixels, valid: positive,
		expected: "a positive resolution in megapixels"}
}

func MaxSrcFileSize(bytes int) Directive {
	return integer{name: "max_src_file_size", value: bytes, max: math.MaxInt}
}

func MaxAnimationFrames(frames int) Directive {
	return integer{name: "max_animation_frames", value: frames, min: 1, max: math.MaxInt}
}

func MaxAnimationFrameResolution(megapixels float64) Directive {
	return number{name: "max_animation_frame_resolution", value: megapixels, valid: nonNegative,
		expected: "a non-negative resolution in megapixels"}
}

// Custom is a directive the package has no dedicated type for. Only the token
// grammar is checked.
type Custom struct {
	Option string
	Values []string
}

func (c Custom) Name() string   { return c.Option }
func (c Custom) Args() []string { return c.Values }

func (c Custom) Validate() error {
	if c.Option == "" {
		return &domain.OptionError{Name: "<empty>", Expected: "a directive name"}
	}
	return nil
}
