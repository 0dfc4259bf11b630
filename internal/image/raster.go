package image

import (
	"errors"
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"
)

var (
	// ErrNilImage is returned when no source image was supplied.
	ErrNilImage = errors.New("image cannot be nil")

	// ErrEmptyImage is returned for images with zero width or height.
	ErrEmptyImage = errors.New("image has zero area")

	// ErrConversion is returned when the source pixels could not be read.
	ErrConversion = errors.New("failed to convert image to raster")
)

// ToRaster copies src into a new straight-alpha NRGBA raster anchored at the
// origin. src is only read; the returned raster shares no memory with it.
func (c *Context) ToRaster(src image.Image) (*image.NRGBA, error) {
	return c.RasterAt(src, 0)
}

// RasterAt converts src into a new NRGBA raster at most maxWidth pixels wide
// (0 keeps the source size). Wider sources are resampled straight from src,
// without an intermediate full-size copy.
func (c *Context) RasterAt(src image.Image, maxWidth int) (raster *image.NRGBA, err error) {
	if src == nil {
		return nil, ErrNilImage
	}

	bounds := src.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyImage, bounds.Dx(), bounds.Dy())
	}

	// Decoders and frame wrappers can hand over images whose backing slices
	// are shorter than their bounds claim; reading those panics.
	defer func() {
		if r := recover(); r != nil {
			raster = nil
			err = fmt.Errorf("%w: %v", ErrConversion, r)
		}
	}()

	w, h := ScaledSize(bounds.Dx(), bounds.Dy(), maxWidth)
	raster = image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == bounds.Dx() && h == bounds.Dy() {
		draw.Draw(raster, raster.Bounds(), src, bounds.Min, draw.Src)
	} else {
		c.Interpolator.Scale(raster, raster.Bounds(), src, bounds, draw.Src, nil)
	}
	return raster, nil
}

// ScaledSize returns the dimensions of a w x h raster resized to maxWidth,
// preserving the aspect ratio. Rasters already within maxWidth are unchanged.
func ScaledSize(w, h, maxWidth int) (int, int) {
	if maxWidth <= 0 || w <= maxWidth {
		return w, h
	}
	nh := int(math.Round(float64(h) * float64(maxWidth) / float64(w)))
	return maxWidth, max(nh, 1)
}

// Downsample resizes the raster so its width equals maxWidth. Rasters already
// within maxWidth are returned as-is.
func (c *Context) Downsample(src *image.NRGBA, maxWidth int) *image.NRGBA {
	bounds := src.Bounds()
	w, h := ScaledSize(bounds.Dx(), bounds.Dy(), maxWidth)
	if w == bounds.Dx() && h == bounds.Dy() {
		return src
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	c.Interpolator.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)
	return dst
}

// ToRaster converts src using the process-wide Context.
func ToRaster(src image.Image) (*image.NRGBA, error) {
	return DefaultContext().ToRaster(src)
}

// Downsample resizes using the process-wide Context.
func Downsample(src *image.NRGBA, maxWidth int) *image.NRGBA {
	return DefaultContext().Downsample(src, maxWidth)
}
