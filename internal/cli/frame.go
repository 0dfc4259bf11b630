package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/colorwaver/colorwaver/internal/colour"
	"github.com/colorwaver/colorwaver/internal/frame"
)

// rawFrameOptions describe raw camera buffers, which carry no header.
type rawFrameOptions struct {
	pixelFormat string
	width       int
	height      int
}

func (o *rawFrameOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.pixelFormat, "pixel-format", "",
		fmt.Sprintf("raw pixel format %v (default: from file extension)", frame.ValidFormats()))
	cmd.Flags().IntVar(&o.width, "width", 0, "raw frame width in pixels")
	cmd.Flags().IntVar(&o.height, "height", 0, "raw frame height in pixels")
}

// format returns the explicit pixel format, or "" to infer it per file.
func (o *rawFrameOptions) format() (frame.Format, error) {
	if o.pixelFormat == "" {
		return "", nil
	}
	return frame.ParseFormat(o.pixelFormat)
}

func newFrameCmd(global *globalOptions) *cobra.Command {
	opts := &outputOptions{}
	raw := &rawFrameOptions{}

	cmd := &cobra.Command{
		Use:   "frame <raw-file>",
		Short: "Extract the palette of a raw camera frame",
		Long: `Extract the palette of a raw camera buffer (RGBA, BGRA, NV21, NV12 or I420).

Raw buffers have no header, so the dimensions must be given. The pixel format
is taken from --pixel-format or the file extension. Dumps compressed with
xz, gzip or bzip2 are decompressed transparently.

Examples:
  colorwaver frame --width 640 --height 480 capture.nv21
  colorwaver frame --width 1920 --height 1080 --quality low capture.i420.xz`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFrame(cmd, global, opts, raw, args[0])
		},
	}

	opts.register(cmd)
	raw.register(cmd)
	_ = cmd.MarkFlagRequired("width")
	_ = cmd.MarkFlagRequired("height")
	return cmd
}

func runFrame(cmd *cobra.Command, global *globalOptions, opts *outputOptions, raw *rawFrameOptions, path string) error {
	logger := global.logger(cmd)

	if err := opts.validate(); err != nil {
		return err
	}
	format, err := raw.format()
	if err != nil {
		return err
	}

	f, err := frame.ReadFile(path, format, raw.width, raw.height)
	if err != nil {
		return err
	}
	logger.Debug("frame loaded", "path", path, "format", f.Format, "width", f.Width, "height", f.Height)

	extractor, err := colour.NewExtractor(colour.DefaultExtractorConfig())
	if err != nil {
		return err
	}

	quality := colour.ParseQuality(opts.quality)
	start := time.Now()
	palette, err := extractor.ExtractSource(f, quality)
	if err != nil {
		return fmt.Errorf("failed to extract palette: %w", err)
	}
	logger.Debug("palette extracted", "quality", quality.String(), "elapsed", time.Since(start))

	var average *colour.Colour
	if opts.average {
		img, err := f.Image()
		if err != nil {
			return fmt.Errorf("failed to convert frame: %w", err)
		}
		avg := colour.AverageColour(img, opts.spacing)
		average = &avg
	}

	out, err := formatPalette(palette, opts.format, opts.showPreview(cmd.OutOrStdout()), average)
	if err != nil {
		return err
	}
	return writeOutput(cmd, opts.output, out)
}
