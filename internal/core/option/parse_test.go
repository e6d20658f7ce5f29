package option

import (
	"testing"
	"time"

	"imgproxyurl/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var timeOne = time.Unix(1, 0)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		want    string
		wantErr bool
	}{
		{name: "resize", token: "resize:fit:300:200", want: "resize:fit:300:200"},
		{name: "short alias kept as written", token: "rs:fill:640:480:1", want: "rs:fill:640:480:1"},
		{name: "resize with gravity", token: "rs:fit:300:200:0:1:we:0.1:0.2", want: "rs:fit:300:200:0:1:we:0.1:0.2"},
		{name: "middle gaps allowed", token: "resize:fit:300:200::1", want: "resize:fit:300:200::1"},
		{name: "quality", token: "q:80", want: "q:80"},
		{name: "gravity focus point", token: "g:fp:0.5:0.25", want: "g:fp:0.5:0.25"},
		{name: "background hex", token: "bg:ffffff", want: "bg:ffffff"},
		{name: "background channels", token: "bg:255:128:0", want: "bg:255:128:0"},
		{name: "presets are variadic", token: "preset:a:b:c", want: "preset:a:b:c"},
		{name: "boolean spellings", token: "enlarge:true", want: "enlarge:true"},
		{name: "format", token: "format:avif", want: "format:avif"},
		{name: "min width underscore alias", token: "min_width:10", want: "min_width:10"},
		{name: "negative right angle", token: "rot:-90", want: "rot:-90"},
		{name: "quality bounds", token: "q:100", want: "q:100"},
		{name: "adjust brightness only", token: "a:-10", want: "a:-10"},
		{name: "zero offsets with smart gravity", token: "c:0.5:0.5:sm:0:0", want: "c:0.5:0.5:sm:0:0"},
		{name: "crop requires both sides", token: "crop:100", wantErr: true},
		{name: "unknown directive", token: "teleport:1", wantErr: true},
		{name: "bare name", token: "quality", wantErr: true},
		{name: "too many args", token: "quality:80:90", wantErr: true},
		{name: "wrong type", token: "quality:high", wantErr: true},
		{name: "unknown enum", token: "resize:stretch:1:1", wantErr: true},
		{name: "smart gravity in resize", token: "resize:fit:1:1:0:1:sm", wantErr: true},
		{name: "bad colour", token: "trim:10:zzzzzz", wantErr: true},
		{name: "channel out of range", token: "bg:300:0:0", wantErr: true},
		{name: "two channels", token: "bg:255:0", wantErr: true},
		{name: "missing required arg", token: "width:", wantErr: true},
		{name: "resize without arguments", token: "resize:", wantErr: true},
		{name: "size without arguments", token: "size::", wantErr: true},
		{name: "adjust without arguments", token: "adjust::", wantErr: true},
		{name: "unsharp masking without arguments", token: "ush:", wantErr: true},
		{name: "quality above 100", token: "quality:500", wantErr: true},
		{name: "negative quality", token: "q:-3", wantErr: true},
		{name: "rotate off the right angle", token: "rotate:45", wantErr: true},
		{name: "negative width", token: "w:-1", wantErr: true},
		{name: "negative resize height", token: "rs:fit:100:-1", wantErr: true},
		{name: "negative padding side", token: "pd:1:-2", wantErr: true},
		{name: "zero dpr", token: "dpr:0", wantErr: true},
		{name: "alpha above one", token: "bga:1.5", wantErr: true},
		{name: "zero pages", token: "pgs:0", wantErr: true},
		{name: "expires at the epoch", token: "exp:0", wantErr: true},
		{name: "brightness out of range", token: "br:256", wantErr: true},
		{name: "focus point outside the image", token: "g:fp:2:0.5", wantErr: true},
		{name: "smart gravity with offsets", token: "c:100:100:sm:1:1", wantErr: true},
		{name: "offsets without gravity", token: "rs:fit:1:1:0:1::0.5", wantErr: true},
		{name: "slash", token: "q:80/blur:1", wantErr: true},
		{name: "empty", token: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, err := Parse(tc.token)
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrInvalidOption)
				return
			}

			require.NoError(t, err)

			s, err := NewSet(d)
			require.NoError(t, err)
			assert.Equal(t, tc.want, s.Serialize())
		})
	}
}

func TestParseErrorShape(t *testing.T) {
	_, err := Parse("quality:high")
	require.Error(t, err)

	assert.Contains(t, err.Error(), `"quality"`)
	assert.Contains(t, err.Error(), "quality:0-100")
}

func TestParseMatchesTypedRanges(t *testing.T) {
	tests := []struct {
		token string
		typed Directive
	}{
		{token: "quality:500", typed: Quality(500)},
		{token: "rotate:45", typed: Rotate(45)},
		{token: "width:-1", typed: Width(-1)},
		{token: "blur:-1", typed: Blur(-1)},
		{token: "pages:0", typed: Pages(0)},
		{token: "gravity:fp:2:0.5", typed: Gravity{Type: FocusPoint, X: 2, Y: 0.5}},
	}

	for _, tc := range tests {
		t.Run(tc.token, func(t *testing.T) {
			_, typedErr := NewSet(tc.typed)
			require.ErrorIs(t, typedErr, domain.ErrInvalidOption)

			_, err := Parse(tc.token)
			assert.ErrorIs(t, err, domain.ErrInvalidOption)
		})
	}
}

func TestParseSet(t *testing.T) {
	s, err := ParseSet("rs:fit:300:200", "q:80", "f:webp")
	require.NoError(t, err)
	assert.Equal(t, "rs:fit:300:200/q:80/f:webp", s.Serialize())

	_, err = ParseSet("q:80", "nope:1")
	assert.ErrorIs(t, err, domain.ErrInvalidOption)
}

func TestShapesMatchTypedDirectives(t *testing.T) {
	typed := []Directive{
		Resize{Type: Fill, Width: 640, Height: 480, Enlarge: true, Extend: true,
			Gravity: &Gravity{Type: West, X: 0.1, Y: 0.2}},
		Size{Width: 1, Height: 2},
		Gravity{Type: FocusPoint, X: 0.5, Y: 0.5},
		Crop{Width: 10, Height: 10, Gravity: &Gravity{Type: Smart}},
		Trim{Threshold: 1, Color: &Color{R: 1}},
		Padding(1, 2, 3, 4),
		Adjust{Brightness: 1, Contrast: 1, Saturation: 1},
		Watermark{Opacity: 0.5, Position: PositionReplicate, X: 1, Y: 1, Scale: 1},
		UnsharpMasking{Mode: UnsharpAuto, Weight: 1, Divider: 1},
		BlurDetections(1, "face"),
		DrawDetections(false, "face"),
		Extend{Extend: true, Gravity: &Gravity{Type: FocusPoint, X: 0.2, Y: 0.4}},
		ExtendAspectRatio{Extend: true},
		Zoom{X: 1, Y: 2},
		Background(Color{R: 10, G: 20, B: 30}),
		Quality(1), Format(PNG), Expires(timeOne), Preset("a", "b"),
	}

	for _, d := range typed {
		t.Run(d.Name(), func(t *testing.T) {
			s, err := NewSet(d)
			require.NoError(t, err)

			_, err = Parse(s.Serialize())
			assert.NoError(t, err)
		})
	}
}
