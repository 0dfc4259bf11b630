// Package compression transparently decompresses raw frame dumps.
package compression

import (
	"compress/bzip2"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
)

// Codec identifies a single-stream compression format.
type Codec string

const (
	CodecNone  Codec = "none"
	CodecGzip  Codec = "gzip"
	CodecXz    Codec = "xz"
	CodecBzip2 Codec = "bzip2"
)

// DetectCodec determines the codec from a file extension.
func DetectCodec(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return CodecGzip
	case ".xz":
		return CodecXz
	case ".bz2":
		return CodecBzip2
	default:
		return CodecNone
	}
}

// StripCodecExtension removes a compression suffix, e.g. "frame.nv21.xz" -> "frame.nv21".
func StripCodecExtension(path string) string {
	if DetectCodec(path) == CodecNone {
		return path
	}
	return strings.TrimSuffix(path, filepath.Ext(path))
}

// NewReader wraps r with a decompressor for codec.
func NewReader(r io.Reader, codec Codec) (io.Reader, error) {
	switch codec {
	case CodecNone:
		return r, nil
	case CodecGzip:
		gzr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return gzr, nil
	case CodecXz:
		xzr, err := xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		return xzr, nil
	case CodecBzip2:
		return bzip2.NewReader(r), nil
	default:
		return nil, fmt.Errorf("unsupported codec: %s", codec)
	}
}

// ReadPrefix returns the first n bytes of the file at path, decompressing
// it first when its extension names a codec. Anything past n is never read.
// A file that ends early yields the bytes it had and io.ErrUnexpectedEOF.
func ReadPrefix(path string, n int64) ([]byte, error) {
	file, err := os.Open(path) // #nosec G304 - User-specified frame path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	r, err := NewReader(file, DetectCodec(path))
	if err != nil {
		return nil, err
	}

	buf := make([]byte, n)
	read, err := io.ReadFull(r, buf)
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return buf[:read], io.ErrUnexpectedEOF
	case err != nil:
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return buf, nil
}
