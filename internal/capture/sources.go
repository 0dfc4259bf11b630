package capture

import (
	"image"

	"github.com/colorwaver/colorwaver/internal/frame"
	imgutil "github.com/colorwaver/colorwaver/internal/image"
)

// ImageFile is a frame stored as an encoded image (PNG, JPEG, ...).
type ImageFile struct {
	Path   string
	Loader imgutil.Loader
}

// Image decodes the file.
func (s ImageFile) Image() (image.Image, error) {
	loader := s.Loader
	if loader == nil {
		loader = imgutil.NewFileLoader()
	}
	return loader.Load(s.Path)
}

// RawFrameFile is a frame stored as a raw (optionally compressed) camera buffer.
type RawFrameFile struct {
	Path   string
	Format frame.Format
	Width  int
	Height int
}

// Image reads and converts the buffer.
func (s RawFrameFile) Image() (image.Image, error) {
	f, err := frame.ReadFile(s.Path, s.Format, s.Width, s.Height)
	if err != nil {
		return nil, err
	}
	return f.Image()
}
