package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/colorwaver/colorwaver/internal/colour"
	"github.com/colorwaver/colorwaver/internal/image"
)

func newExtractCmd(global *globalOptions) *cobra.Command {
	opts := &outputOptions{}

	cmd := &cobra.Command{
		Use:   "extract <image>",
		Short: "Extract the four-colour palette of an image",
		Long: `Extract the primary, secondary, background and detail colours of an image.

Supported image formats: JPEG, PNG, GIF, WebP, AVIF. HTTP(S) URLs are fetched.

Examples:
  # Full resolution analysis
  colorwaver extract wallpaper.jpg

  # Fast analysis on a 50px wide raster, as JSON
  colorwaver extract --quality lowest --format json photo.png

  # Include the average colour, sampling every 5th pixel
  colorwaver extract --average photo.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, global, opts, args[0])
		},
	}

	opts.register(cmd)
	return cmd
}

func runExtract(cmd *cobra.Command, global *globalOptions, opts *outputOptions, path string) error {
	logger := global.logger(cmd)

	if err := opts.validate(); err != nil {
		return err
	}
	if err := image.ValidateImagePath(path); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}

	logger.Debug("loading image", "path", path)
	img, err := image.NewSmartLoader().LoadContext(cmd.Context(), path)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	bounds := img.Bounds()
	logger.Debug("image loaded", "width", bounds.Dx(), "height", bounds.Dy())

	extractor, err := colour.NewExtractor(colour.DefaultExtractorConfig())
	if err != nil {
		return err
	}

	quality := colour.ParseQuality(opts.quality)
	start := time.Now()
	palette, err := extractor.Extract(img, quality)
	if err != nil {
		return fmt.Errorf("failed to extract palette: %w", err)
	}
	logger.Debug("palette extracted", "quality", quality.String(), "elapsed", time.Since(start))

	var average *colour.Colour
	if opts.average {
		avg := colour.AverageColour(img, opts.spacing)
		average = &avg
	}

	out, err := formatPalette(palette, opts.format, opts.showPreview(cmd.OutOrStdout()), average)
	if err != nil {
		return err
	}
	return writeOutput(cmd, opts.output, out)
}
