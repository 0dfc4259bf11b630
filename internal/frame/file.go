package frame

import (
	"errors"
	"fmt"
	"io"

	"github.com/colorwaver/colorwaver/internal/compression"
)

// ReadFile loads a raw frame dump. Files ending in .xz, .gz or .bz2 are
// decompressed first. An empty format is inferred from the file name.
// Only the bytes the layout needs are read, so padded dumps are accepted;
// a dump shorter than the layout fails with ErrShortBuffer.
func ReadFile(path string, format Format, width, height int) (*Frame, error) {
	if format == "" {
		inferred, err := FormatFromPath(path)
		if err != nil {
			return nil, fmt.Errorf("cannot infer pixel format from %s: %w", path, err)
		}
		format = inferred
	}

	f := New(format, width, height, nil)
	size, err := f.Size()
	if err != nil {
		return nil, err
	}

	data, err := compression.ReadPrefix(path, int64(size))
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("%w: %s holds %d bytes, %s %dx%d needs %d",
			ErrShortBuffer, path, len(data), format, width, height, size)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read frame %s: %w", path, err)
	}
	f.Data = data
	return f, nil
}
