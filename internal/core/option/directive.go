// Package option models the processing directives of the remote image service
// and their serialisation into path segments.
//
// Each directive family is a distinct Go type; values are validated when they
// are added to a Set, so a Set only ever holds directives the service can parse.
package option

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"imgproxyurl/internal/core/domain"
)

// Directive is a single named processing instruction.
//
// Args returns the positional arguments already rendered as tokens. An empty
// token marks an omitted optional argument; trailing empty tokens are dropped
// when the directive is serialised.
type Directive interface {
	Name() string
	Args() []string
	Validate() error
}

var nameRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// checkTokens enforces the path grammar shared by every directive: tokens are
// separated by ':' and directives by '/', so neither may appear inside a token.
func checkTokens(d Directive) error {
	name := d.Name()
	if !nameRe.MatchString(name) {
		return &domain.OptionError{Name: name, Expected: "a name of letters, digits, '_' or '-'"}
	}

	for i, arg := range d.Args() {
		if strings.ContainsAny(arg, ":/") {
			return &domain.OptionError{
				Name:     name,
				Expected: "argument " + strconv.Itoa(i+1) + " without ':' or '/'",
			}
		}
	}

	return nil
}

func render(d Directive) string {
	args := d.Args()
	for len(args) > 0 && args[len(args)-1] == "" {
		args = args[:len(args)-1]
	}

	if len(args) == 0 {
		return d.Name()
	}

	return d.Name() + ":" + strings.Join(args, ":")
}

func invalid(name, expected string) error {
	return &domain.OptionError{Name: name, Expected: expected}
}

func formatInt(i int) string {
	return strconv.Itoa(i)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// optionalFloat and optionalBool render the zero value as an omitted argument.
func optionalFloat(f float64) string {
	if f == 0 {
		return ""
	}
	return formatFloat(f)
}

func optionalBool(b bool) string {
	if !b {
		return ""
	}
	return "1"
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

type flag struct {
	name  string
	value bool
}

func (f flag) Name() string    { return f.name }
func (f flag) Args() []string  { return []string{formatBool(f.value)} }
func (f flag) Validate() error { return nil }

type integer struct {
	name     string
	value    int
	min, max int
}

func (i integer) Name() string   { return i.name }
func (i integer) Args() []string { return []string{formatInt(i.value)} }

func (i integer) Validate() error {
	if i.value < i.min || i.value > i.max {
		if i.max == math.MaxInt {
			return invalid(i.name, "an integer >= "+formatInt(i.min))
		}
		return invalid(i.name, "an integer between "+formatInt(i.min)+" and "+formatInt(i.max))
	}
	return nil
}

type number struct {
	name     string
	value    float64
	valid    func(float64) bool
	expected string
}

func (n number) Name() string   { return n.name }
func (n number) Args() []string { return []string{formatFloat(n.value)} }

func (n number) Validate() error {
	if !finite(n.value) || !n.valid(n.value) {
		return invalid(n.name, n.expected)
	}
	return nil
}

func positive(f float64) bool    { return f > 0 }
func nonNegative(f float64) bool { return f >= 0 }
func unit(f float64) bool        { return f >= 0 && f <= 1 }

type text struct {
	name   string
	values []string
}

func (t text) Name() string   { return t.name }
func (t text) Args() []string { return t.values }

func (t text) Validate() error {
	if len(t.values) == 0 {
		return invalid(t.name, "at least one value")
	}
	for _, v := range t.values {
		if v == "" {
			return invalid(t.name, "non-empty values")
		}
	}
	return nil
}
