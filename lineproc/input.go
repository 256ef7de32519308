package lineproc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// StdinPath names standard input in OpenInput.
const StdinPath = "-"

// OpenInput opens path for reading. StdinPath reads os.Stdin; ".gz" and
// ".zst" files are decompressed transparently. Failures wrap ErrInput.
func OpenInput(path string) (io.ReadCloser, error) {
	if path == StdinPath {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInput, err)
	}

	rc, err := Decompress(f, path)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	return rc, nil
}

// Decompress wraps r with a decoder chosen by the extension of name.
// Closing the result closes r when r is an io.Closer.
func Decompress(r io.Reader, name string) (io.ReadCloser, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("%w: gzip %s: %w", ErrInput, name, err)
		}
		return &stackedCloser{Reader: zr, closers: []io.Closer{zr, asCloser(r)}}, nil

	case ".zst", ".zstd":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("%w: zstd %s: %w", ErrInput, name, err)
		}
		dec := zr.IOReadCloser()
		return &stackedCloser{Reader: dec, closers: []io.Closer{dec, asCloser(r)}}, nil

	default:
		return &stackedCloser{Reader: r, closers: []io.Closer{asCloser(r)}}, nil
	}
}

// stackedCloser closes the decoder before the underlying reader.
type stackedCloser struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedCloser) Close() error {
	var errs []error
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func asCloser(r io.Reader) io.Closer {
	if c, ok := r.(io.Closer); ok {
		return c
	}

	return io.NopCloser(nil)
}
