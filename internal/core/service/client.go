package service

import (
	"fmt"
	"net/url"
	"strings"

	"imgproxyurl/internal/core/domain"
	"imgproxyurl/internal/core/option"

	"github.com/rs/zerolog/log"
)

// Client joins built paths onto the base URL of a service deployment.
type Client struct {
	baseURL string
	builder *Builder
}

func NewClient(baseURL string, builder *Builder) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidBaseURL, err)
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q must be an absolute http(s) URL", domain.ErrInvalidBaseURL, baseURL)
	}

	if u.RawQuery != "" || u.Fragment != "" {
		return nil, fmt.Errorf("%w: %q must not carry a query or fragment", domain.ErrInvalidBaseURL, baseURL)
	}

	log.Debug().
		Str("baseURL", baseURL).
		Bool("signing", builder.Signing()).
		Msg("created imgproxy client")

	return &Client{baseURL: strings.TrimRight(baseURL, "/"), builder: builder}, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL builds the path for ref and prefixes it with the base URL.
func (c *Client) URL(ref domain.Reference, set *option.Set, extension string) (string, error) {
	path, err := c.builder.Build(ref, set, extension)
	if err != nil {
		return "", err
	}

	log.Debug().
		Str("mode", string(ref.Mode)).
		Int("directives", set.Len()).
		Str("path", path.String()).
		Msg("built image URL")

	return c.baseURL + path.String(), nil
}
