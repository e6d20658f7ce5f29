package option

import (
	"errors"
	"strings"

	"imgproxyurl/internal/core/domain"
)

// Set is an ordered collection of directives. Order is significant to the
// remote service and is preserved exactly; duplicates are kept and emitted in
// the order they were added.
//
// A Set belongs to a single request and must not be mutated concurrently.
type Set struct {
	directives []Directive
}

// NewSet returns a Set holding ds, failing on the first invalid directive.
func NewSet(ds ...Directive) (*Set, error) {
	s := &Set{}
	for _, d := range ds {
		if err := s.Add(d); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add validates d and appends it. An invalid directive leaves the set unchanged.
func (s *Set) Add(d Directive) error {
	if d == nil {
		return &domain.OptionError{Name: "<nil>", Err: errors.New("nil directive")}
	}

	if err := d.Validate(); err != nil {
		return err
	}

	if err := checkTokens(d); err != nil {
		return err
	}

	s.directives = append(s.directives, d)
	return nil
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.directives)
}

// Directives returns the directives in insertion order.
func (s *Set) Directives() []Directive {
	if s == nil {
		return nil
	}
	return append([]Directive(nil), s.directives...)
}

func (s *Set) Clone() *Set {
	return &Set{directives: s.Directives()}
}

// Serialize renders the set as slash-separated directives. An empty set
// renders as the empty string.
func (s *Set) Serialize() string {
	if s.Len() == 0 {
		return ""
	}

	parts := make([]string, len(s.directives))
	for i, d := range s.directives {
		parts[i] = render(d)
	}

	return strings.Join(parts, "/")
}
