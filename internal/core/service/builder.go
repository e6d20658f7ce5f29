package service

import (
	"fmt"

	"imgproxyurl/internal/core/domain"
	"imgproxyurl/internal/core/option"
	"imgproxyurl/internal/core/port"
)

// Builder assembles signed paths of the form
// /{signature}/{directives}/{source}[.ext]. It holds no per-request state and
// may be shared between goroutines.
type Builder struct {
	signer  port.Signer
	encoder port.SourceEncoder
}

func NewBuilder(signer port.Signer, encoder port.SourceEncoder) *Builder {
	return &Builder{signer: signer, encoder: encoder}
}

// Signing reports whether built paths carry a real signature rather than the
// insecure placeholder.
func (b *Builder) Signing() bool {
	return b.signer.Enabled()
}

// Build returns the signed path for ref processed by set. A nil set applies the
// service defaults only.
func (b *Builder) Build(ref domain.Reference, set *option.Set, extension string) (domain.SignedPath, error) {
	unsigned, err := b.Unsigned(ref, set, extension)
	if err != nil {
		return "", err
	}

	return domain.SignedPath("/" + b.signer.Sign(unsigned) + unsigned), nil
}

// Unsigned returns the path the signature is computed over.
func (b *Builder) Unsigned(ref domain.Reference, set *option.Set, extension string) (string, error) {
	src, err := b.encoder.Encode(ref, extension)
	if err != nil {
		return "", fmt.Errorf("encoding source: %w", err)
	}

	options := set.Serialize()
	if options == "" {
		return src, nil
	}

	return "/" + options + src, nil
}
