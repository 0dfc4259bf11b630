// Package colour provides colour extraction and palette generation functionality.
package colour

import (
	"errors"
	"fmt"
	"image"

	imgutil "github.com/colorwaver/colorwaver/internal/image"
)

var (
	// ErrSourceConversionFailed is returned when no raster could be derived from the input.
	ErrSourceConversionFailed = errors.New("source conversion failed")

	// ErrEmptyInput is returned for zero-area images.
	ErrEmptyInput = errors.New("empty input image")
)

// Source is anything that can produce an image, such as a raw camera frame.
type Source interface {
	Image() (image.Image, error)
}

// ExtractorConfig holds configuration for palette extraction.
type ExtractorConfig struct {
	// VividSaturation is the HSL saturation at or above which a bucket counts as vivid.
	VividSaturation float64

	// VividTolerance is the relative weight band in which a vivid bucket beats
	// a heavier desaturated one (0.15 = within 15% of the leader's weight).
	VividTolerance float64

	// LightnessStep is the L* cell size of the bucket grid (L* in [0, 1]).
	LightnessStep float64

	// ChromaStep is the a*/b* cell size of the bucket grid.
	ChromaStep float64
}

// DefaultExtractorConfig returns the default extractor configuration.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		VividSaturation: 0.35,
		VividTolerance:  0.15,
		LightnessStep:   0.08,
		ChromaStep:      0.12,
	}
}

// Validate validates the extractor configuration.
func (c ExtractorConfig) Validate() error {
	if c.VividSaturation < 0 || c.VividSaturation > 1 {
		return fmt.Errorf("vivid saturation must be between 0 and 1, got %g", c.VividSaturation)
	}
	if c.VividTolerance < 0 || c.VividTolerance >= 1 {
		return fmt.Errorf("vivid tolerance must be in [0, 1), got %g", c.VividTolerance)
	}
	if c.LightnessStep <= 0 {
		return fmt.Errorf("lightness step must be positive, got %g", c.LightnessStep)
	}
	if c.ChromaStep <= 0 {
		return fmt.Errorf("chroma step must be positive, got %g", c.ChromaStep)
	}
	return nil
}

// Extractor derives four-colour palettes from images. It keeps no per-call
// state, so one Extractor may serve concurrent calls on different images.
type Extractor struct {
	config ExtractorConfig
	ctx    *imgutil.Context
	grid   *grid
}

// NewExtractor creates an Extractor using the process-wide conversion context.
func NewExtractor(config ExtractorConfig) (*Extractor, error) {
	return NewExtractorWithContext(config, imgutil.DefaultContext())
}

// NewExtractorWithContext creates an Extractor with an explicit conversion context.
func NewExtractorWithContext(config ExtractorConfig, ctx *imgutil.Context) (*Extractor, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if ctx == nil {
		ctx = imgutil.DefaultContext()
	}
	return &Extractor{config: config, ctx: ctx, grid: gridFor(config.LightnessStep, config.ChromaStep)}, nil
}

// Config returns the extractor configuration.
func (e *Extractor) Config() ExtractorConfig {
	return e.config
}

// Extract returns the palette of img analysed at quality q. img is only
// read and is not retained after the call returns.
func (e *Extractor) Extract(img image.Image, q Quality) (*Palette, error) {
	raster, err := e.Raster(img, q)
	if err != nil {
		return nil, err
	}
	return e.fromRaster(raster), nil
}

// ExtractSource converts src to an image and extracts its palette.
// Conversion errors are reported as ErrSourceConversionFailed.
func (e *Extractor) ExtractSource(src Source, q Quality) (*Palette, error) {
	img, err := src.Image()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceConversionFailed, err)
	}
	return e.Extract(img, q)
}

// Raster returns the raster that Extract analyses for img at quality q.
func (e *Extractor) Raster(img image.Image, q Quality) (*image.NRGBA, error) {
	maxWidth, _ := q.MaxWidth()
	raster, err := e.ctx.RasterAt(img, maxWidth)
	if err != nil {
		if errors.Is(err, imgutil.ErrEmptyImage) {
			return nil, fmt.Errorf("%w: %w", ErrEmptyInput, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrSourceConversionFailed, err)
	}
	return raster, nil
}

// fromRaster buckets the raster and assigns the four slots.
func (e *Extractor) fromRaster(raster *image.NRGBA) *Palette {
	ranked := bucketRaster(raster, e.grid, e.config.VividSaturation)
	if len(ranked) == 1 {
		return NewUniformPalette(ranked[0].mean)
	}

	bg := selectBackground(ranked)
	used := map[*bucket]bool{bg: true}

	primary := selectAccent(ranked, used, e.config.VividTolerance)
	if primary == nil {
		primary = bg
	}
	used[primary] = true

	secondary := selectAccent(ranked, used, e.config.VividTolerance)
	if secondary == nil {
		secondary = primary
	}
	used[secondary] = true

	palette := &Palette{
		Primary:    primary.mean,
		Secondary:  secondary.mean,
		Background: bg.mean,
	}
	if detail, ok := selectDetail(ranked, used, bg); ok {
		palette.Detail = detail.mean
	} else {
		palette.Detail = syntheticDetail(bg.mean)
	}
	return palette
}

// Extract returns the palette of img using the default configuration.
func Extract(img image.Image, q Quality) (*Palette, error) {
	config := DefaultExtractorConfig()
	e := Extractor{
		config: config,
		ctx:    imgutil.DefaultContext(),
		grid:   gridFor(config.LightnessStep, config.ChromaStep),
	}
	return e.Extract(img, q)
}
