package port

import (
	"imgproxyurl/internal/core/domain"
	"imgproxyurl/internal/core/option"
)

type URLBuilder interface {
	// URL returns the full, signed URL for a source processed by the given directives.
	URL(ref domain.Reference, set *option.Set, extension string) (string, error)
}
