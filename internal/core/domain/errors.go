package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidKey           = errors.New("invalid key material")
	ErrInvalidOption        = errors.New("invalid processing option")
	ErrEncoding             = errors.New("invalid encoding")
	ErrEmptySource          = errors.New("empty source reference")
	ErrInvalidSignatureSize = errors.New("invalid signature size")
	ErrSignatureMismatch    = errors.New("signature mismatch")
	ErrInvalidBaseURL       = errors.New("invalid base URL")
)

// OptionError reports a directive that failed validation together with the
// shape it was expected to have.
type OptionError struct {
	Name     string
	Expected string
	Err      error
}

func (e *OptionError) Error() string {
	msg := fmt.Sprintf("invalid option %q", e.Name)
	if e.Expected != "" {
		msg += ", expected " + e.Expected
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *OptionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidOption}
	}
	return []error{ErrInvalidOption, e.Err}
}
