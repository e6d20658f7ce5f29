package cache

import (
	"fmt"
	"sync/atomic"

	"imgproxyurl/internal/core/port"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"
)

// Signer memoises signatures of a wrapped signer, keyed by the unsigned path.
// Batch inputs often repeat whole lines.
type Signer struct {
	next port.Signer
	lru  *lru.Cache[string, string]
	hits atomic.Uint64
}

func NewSigner(next port.Signer, size int) (*Signer, error) {
	c, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("creating signature cache: %w", err)
	}

	log.Debug().Int("size", size).Msg("created signature cache")

	return &Signer{next: next, lru: c}, nil
}

func (s *Signer) Sign(path string) string {
	if sig, ok := s.lru.Get(path); ok {
		s.hits.Add(1)
		return sig
	}

	sig := s.next.Sign(path)
	s.lru.Add(path, sig)

	return sig
}

func (s *Signer) Enabled() bool {
	return s.next.Enabled()
}

// Hits reports how many signatures were served from the cache.
func (s *Signer) Hits() uint64 {
	return s.hits.Load()
}

func (s *Signer) Len() int {
	return s.lru.Len()
}
