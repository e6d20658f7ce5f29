package handler

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"imgproxyurl/internal/core/domain"
	"imgproxyurl/internal/core/option"
	"imgproxyurl/internal/core/port"

	"github.com/rs/zerolog/log"
)

// ErrEmptyLine is returned by ParseLine for blank lines and comments.
var ErrEmptyLine = errors.New("empty line")

// Result counts the outcome of a batch run.
type Result struct {
	Built  int
	Failed int
}

// Batch turns lines of the form "SOURCE [directive...]" into URLs, one per line.
type Batch struct {
	builder   port.URLBuilder
	mode      domain.Mode
	extension string
}

func NewBatch(builder port.URLBuilder, mode domain.Mode, extension string) *Batch {
	return &Batch{builder: builder, mode: mode, extension: extension}
}

// ParseLine splits a batch line into the source URL and its directive set.
// Directives may be given as separate fields or joined with '/'.
func ParseLine(line string) (string, *option.Set, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return "", nil, ErrEmptyLine
	}

	var tokens []string
	for _, f := range fields[1:] {
		for _, token := range strings.Split(f, "/") {
			if token != "" {
				tokens = append(tokens, token)
			}
		}
	}

	set, err := option.ParseSet(tokens...)
	if err != nil {
		return "", nil, err
	}

	return fields[0], set, nil
}

// Handle reads r to the end and writes a URL for every well-formed line to w.
// Malformed lines are logged and counted, they do not stop the run. Only read,
// write and context errors are returned.
func (b *Batch) Handle(ctx context.Context, r io.Reader, w io.Writer) (Result, error) {
	var res Result

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++

		if err := ctx.Err(); err != nil {
			return res, err
		}

		src, set, err := ParseLine(scanner.Text())
		if errors.Is(err, ErrEmptyLine) {
			continue
		}
		if err != nil {
			log.Err(err).Int("line", line).Msg("skipping malformed line")
			res.Failed++
			continue
		}

		u, err := b.builder.URL(domain.Reference{URL: src, Mode: b.mode}, set, b.extension)
		if err != nil {
			log.Err(err).Int("line", line).Str("source", src).Msg("could not build url")
			res.Failed++
			continue
		}

		if _, err := fmt.Fprintln(w, u); err != nil {
			return res, fmt.Errorf("error writing url %w", err)
		}
		res.Built++
	}

	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("error reading batch input %w", err)
	}

	log.Debug().Int("built", res.Built).Int("failed", res.Failed).Msg("finished batch")

	return res, nil
}
