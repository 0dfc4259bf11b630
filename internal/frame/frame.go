// Package frame decodes raw camera frame buffers into images.
//
// Capture pipelines deliver frames in device-native layouts, most commonly
// planar or semi-planar YUV 4:2:0. A Frame describes one such buffer and
// converts it into an image.Image that the palette extractor can rasterise.
// Buffers are assumed tightly packed: row stride equals the plane width.
package frame

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/colorwaver/colorwaver/internal/compression"
)

// Format identifies the pixel layout of a frame buffer.
type Format string

const (
	// FormatRGBA8888 is interleaved 8-bit R, G, B, A (straight alpha).
	FormatRGBA8888 Format = "rgba"
	// FormatBGRA8888 is interleaved 8-bit B, G, R, A (straight alpha).
	FormatBGRA8888 Format = "bgra"
	// FormatNV21 is a full Y plane followed by interleaved V/U at quarter resolution.
	FormatNV21 Format = "nv21"
	// FormatNV12 is a full Y plane followed by interleaved U/V at quarter resolution.
	FormatNV12 Format = "nv12"
	// FormatI420 is Y, U and V planes, chroma at quarter resolution.
	FormatI420 Format = "i420"
)

var (
	// ErrUnsupportedFormat is returned for unknown pixel layouts.
	ErrUnsupportedFormat = errors.New("unsupported pixel format")

	// ErrShortBuffer is returned when the data is smaller than the layout needs.
	ErrShortBuffer = errors.New("frame buffer too small")

	// ErrInvalidDimensions is returned for non-positive width or height.
	ErrInvalidDimensions = errors.New("invalid frame dimensions")
)

// ValidFormats returns all supported pixel formats.
func ValidFormats() []Format {
	return []Format{FormatRGBA8888, FormatBGRA8888, FormatNV21, FormatNV12, FormatI420}
}

// ParseFormat parses a pixel format name (case-insensitive). "yuv420p" is
// accepted as an alias for i420.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "yuv420p" {
		return FormatI420, nil
	}
	for _, f := range ValidFormats() {
		if name == string(f) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q (valid formats: %v)", ErrUnsupportedFormat, s, ValidFormats())
}

// FormatFromPath infers the pixel format from a file extension such as
// "frame.nv21" or "frame.nv21.xz".
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(compression.StripCodecExtension(path))
	return ParseFormat(strings.TrimPrefix(ext, "."))
}

// Frame is one raw camera buffer. Data is borrowed: Image may alias it, so
// the caller must not recycle Data until it is done with the returned image.
type Frame struct {
	Format Format
	Width  int
	Height int
	Data   []byte
}

// New creates a Frame over data.
func New(format Format, width, height int, data []byte) *Frame {
	return &Frame{Format: format, Width: width, Height: height, Data: data}
}

// chromaSize returns the dimensions of a 4:2:0 chroma plane.
func (f *Frame) chromaSize() (int, int) {
	return (f.Width + 1) / 2, (f.Height + 1) / 2
}

// Size returns the number of bytes the frame layout requires.
func (f *Frame) Size() (int, error) {
	if f.Width <= 0 || f.Height <= 0 {
		return 0, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, f.Width, f.Height)
	}

	switch f.Format {
	case FormatRGBA8888, FormatBGRA8888:
		return f.Width * f.Height * 4, nil
	case FormatNV21, FormatNV12, FormatI420:
		cw, ch := f.chromaSize()
		return f.Width*f.Height + 2*cw*ch, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f.Format)
	}
}

// Image converts the frame into an image.Image.
func (f *Frame) Image() (image.Image, error) {
	size, err := f.Size()
	if err != nil {
		return nil, err
	}
	if len(f.Data) < size {
		return nil, fmt.Errorf("%w: %s %dx%d needs %d bytes, got %d",
			ErrShortBuffer, f.Format, f.Width, f.Height, size, len(f.Data))
	}

	rect := image.Rect(0, 0, f.Width, f.Height)
	switch f.Format {
	case FormatRGBA8888:
		return &image.NRGBA{Pix: f.Data[:size], Stride: f.Width * 4, Rect: rect}, nil
	case FormatBGRA8888:
		return f.bgraImage(rect), nil
	case FormatI420:
		return f.planarImage(rect), nil
	case FormatNV12:
		return f.semiPlanarImage(rect, false), nil
	case FormatNV21:
		return f.semiPlanarImage(rect, true), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f.Format)
	}
}

func (f *Frame) bgraImage(rect image.Rectangle) *image.NRGBA {
	img := image.NewNRGBA(rect)
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = f.Data[i+2]
		img.Pix[i+1] = f.Data[i+1]
		img.Pix[i+2] = f.Data[i+0]
		img.Pix[i+3] = f.Data[i+3]
	}
	return img
}

func (f *Frame) planarImage(rect image.Rectangle) *image.YCbCr {
	cw, ch := f.chromaSize()
	ySize := f.Width * f.Height
	cSize := cw * ch
	return &image.YCbCr{
		Y:              f.Data[:ySize],
		Cb:             f.Data[ySize : ySize+cSize],
		Cr:             f.Data[ySize+cSize : ySize+2*cSize],
		YStride:        f.Width,
		CStride:        cw,
		SubsampleRatio: image.YCbCrSubsampleRatio420,
		Rect:           rect,
	}
}

// semiPlanarImage de-interleaves NV12 (UV) or NV21 (VU) chroma into planes.
func (f *Frame) semiPlanarImage(rect image.Rectangle, vFirst bool) *image.YCbCr {
	cw, ch := f.chromaSize()
	ySize := f.Width * f.Height
	img := image.NewYCbCr(rect, image.YCbCrSubsampleRatio420)
	copy(img.Y, f.Data[:ySize])

	chroma := f.Data[ySize : ySize+2*cw*ch]
	for i := 0; i < cw*ch; i++ {
		first, second := chroma[2*i], chroma[2*i+1]
		if vFirst {
			img.Cr[i], img.Cb[i] = first, second
		} else {
			img.Cb[i], img.Cr[i] = first, second
		}
	}
	return img
}
