// Package reader opens report files with transparent decompression.
package reader

import (
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Open opens a report file for reading. Compression is detected by path
// suffix (.gz, .bz2, .xz, .zst) and decoded transparently; any other suffix
// is read as plain text.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	switch {
	case strings.HasSuffix(path, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("gzip reader for %s: %w", path, err)
		}
		return &decompressed{r: gz, closers: []io.Closer{gz, f}}, nil

	case strings.HasSuffix(path, ".bz2"):
		return &decompressed{r: bzip2.NewReader(f), closers: []io.Closer{f}}, nil

	case strings.HasSuffix(path, ".xz"):
		xzr, err := xz.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("xz reader for %s: %w", path, err)
		}
		return &decompressed{r: xzr, closers: []io.Closer{f}}, nil

	case strings.HasSuffix(path, ".zst"):
		dec, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("zstd reader for %s: %w", path, err)
		}
		zr := dec.IOReadCloser()
		return &decompressed{r: zr, closers: []io.Closer{zr, f}}, nil

	default:
		return f, nil
	}
}

// decompressed pairs a decoding reader with the closers it owns. The
// underlying file is closed last.
type decompressed struct {
	r       io.Reader
	closers []io.Closer
}

func (d *decompressed) Read(p []byte) (int, error) {
	return d.r.Read(p)
}

func (d *decompressed) Close() error {
	var first error
	for _, c := range d.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
