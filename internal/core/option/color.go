package option

import (
	"encoding/hex"
	"fmt"
	"strings"

	"imgproxyurl/internal/core/domain"
)

// Color is an RGB colour, rendered as six lowercase hex digits.
type Color struct {
	R, G, B uint8
}

// ParseColor accepts "rrggbb" or "rgb", with or without a leading '#'.
func ParseColor(s string) (Color, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}

	b, err := hex.DecodeString(h)
	if err != nil || len(b) != 3 {
		return Color{}, &domain.OptionError{
			Name:     "color",
			Expected: "a hex colour like ff8800",
			Err:      fmt.Errorf("cannot parse %q", s),
		}
	}

	return Color{R: b[0], G: b[1], B: b[2]}, nil
}

func (c Color) String() string {
	return hex.EncodeToString([]byte{c.R, c.G, c.B})
}
