package domain

import "strings"

// Mode selects how a source reference is embedded in a path.
type Mode string

const (
	Safe      Mode = "safe"
	Plain     Mode = "plain"
	Encrypted Mode = "encrypted"
)

// ParseMode maps a configuration value onto a Mode. The empty string selects Safe.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", Safe:
		return Safe, nil
	case Plain:
		return Plain, nil
	case Encrypted:
		return Encrypted, nil
	default:
		return "", &OptionError{Name: "source.mode", Expected: "one of safe, plain, encrypted"}
	}
}

// Reference is the locator of a source image together with its encoding mode.
type Reference struct {
	URL  string
	Mode Mode
}

// InsecureSignature is the placeholder the remote service accepts in place of a
// signature when verification is disabled.
const InsecureSignature = "insecure"

// SignedPath is the final path, ready to be appended to a service base URL.
type SignedPath string

func (p SignedPath) String() string {
	return string(p)
}

// Split separates the leading signature segment from the path it signs. The
// returned unsigned path keeps its leading slash.
func (p SignedPath) Split() (signature, unsigned string, ok bool) {
	rest, found := strings.CutPrefix(string(p), "/")
	if !found {
		return "", "", false
	}

	signature, unsigned, found = strings.Cut(rest, "/")
	if !found || signature == "" || unsigned == "" {
		return "", "", false
	}

	return signature, "/" + unsigned, true
}
