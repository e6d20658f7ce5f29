package file

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
)

// Stdio is the path naming standard input or output.
const Stdio = "-"

// Open returns a reader for path, or for standard input when path is empty or
// Stdio. Closing the standard input reader is a no-op.
func Open(path string) (io.ReadCloser, error) {
	if path == "" || path == Stdio {
		return io.NopCloser(os.Stdin), nil
	}

	f, err := os.Open(path)
	if err != nil {
		err = fmt.Errorf("error opening input file %w", err)
		log.Error().Err(err).Str("path", path).Send()
		return nil, err
	}

	log.Debug().Str("path", path).Msg("opened input file")

	return f, nil
}

// Create returns a writer for path, truncating an existing file, or for
// standard output when path is empty or Stdio.
func Create(path string) (io.WriteCloser, error) {
	if path == "" || path == Stdio {
		return nopWriteCloser{os.Stdout}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		err = fmt.Errorf("error creating output file %w", err)
		log.Error().Err(err).Str("path", path).Send()
		return nil, err
	}

	log.Debug().Str("path", path).Msg("created output file")

	return f, nil
}

// Close closes c and logs a failure instead of returning it.
func Close(c io.Closer, path string) {
	if err := c.Close(); err != nil {
		log.Warn().Str("path", path).Err(err).Msg("could not close file")
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
