package port

import "imgproxyurl/internal/core/domain"

type SourceEncoder interface {
	// Encode renders a source reference, with an optional output extension, as the trailing path segment(s)
	// including the leading slash.
	Encode(ref domain.Reference, extension string) (string, error)
}
