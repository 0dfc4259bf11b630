package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/colorwaver/colorwaver/internal/capture"
	"github.com/colorwaver/colorwaver/internal/colour"
	"github.com/colorwaver/colorwaver/internal/frame"
	"github.com/colorwaver/colorwaver/internal/image"
)

type watchOptions struct {
	quality  string
	format   string
	interval time.Duration
	settle   time.Duration
	count    int
}

func newWatchCmd(global *globalOptions) *cobra.Command {
	opts := &watchOptions{}
	raw := &rawFrameOptions{}

	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Extract palettes from frames as they are written to a directory",
		Long: `Watch a directory and extract a palette from every image or raw frame
written into it, as a camera capture pipeline would deliver them.

A file is read once it has been quiet for --settle, so frames may be
written in place. Frames arriving faster than --interval are skipped. A frame that cannot be
decoded is logged and skipped; the previous palette stays current.

Raw frames need --width and --height; their format comes from
--pixel-format or the file extension (.nv21, .nv12, .i420, .rgba, .bgra).

Examples:
  colorwaver watch ./frames
  colorwaver watch --quality lowest --interval 300ms --width 640 --height 480 ./frames`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, global, opts, raw, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.quality, "quality", envOr(envQuality, colour.DefaultQuality.String()),
		"analysis quality: lowest, low, high, highest (or 0-3)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "hex", "output format (hex, json)")
	cmd.Flags().DurationVar(&opts.interval, "interval", envDuration(envInterval, capture.DefaultInterval),
		"minimum time between extractions")
	cmd.Flags().DurationVar(&opts.settle, "settle", capture.DefaultSettle,
		"quiet period after the last write before a file is read")
	cmd.Flags().IntVar(&opts.count, "count", 0, "stop after this many palettes (0 = run until interrupted)")
	raw.register(cmd)

	return cmd
}

func runWatch(cmd *cobra.Command, global *globalOptions, opts *watchOptions, raw *rawFrameOptions, dir string) error {
	logger := global.logger(cmd)

	if opts.format != "hex" && opts.format != "json" {
		return fmt.Errorf("unsupported format: %s (supported: hex, json)", opts.format)
	}
	format, err := raw.format()
	if err != nil {
		return err
	}

	extractor, err := colour.NewExtractor(colour.DefaultExtractorConfig())
	if err != nil {
		return err
	}
	processor := capture.NewProcessor(extractor, capture.Options{
		Quality:  colour.ParseQuality(opts.quality),
		Interval: opts.interval,
		Settle:   opts.settle,
		Logger:   logger,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results, err := processor.Watch(ctx, dir, frameDecoder(format, raw.width, raw.height))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	enc := json.NewEncoder(out)
	printed := 0
	for res := range results {
		if !res.Fresh || (opts.count > 0 && printed >= opts.count) {
			continue
		}

		if opts.format == "json" {
			doc := struct {
				Source string `json:"source"`
				colour.HexPalette
			}{Source: res.Source, HexPalette: res.Palette.Hex()}
			if err := enc.Encode(doc); err != nil {
				return fmt.Errorf("failed to write palette: %w", err)
			}
		} else {
			hex := res.Palette.Hex()
			fmt.Fprintf(out, "%s primary=%s secondary=%s background=%s detail=%s\n",
				res.Source, hex.Primary, hex.Secondary, hex.Background, hex.Detail)
		}

		printed++
		if opts.count > 0 && printed >= opts.count {
			cancel()
		}
	}

	stats := processor.Stats()
	logger.Info("watch stopped", "frames", stats.Frames, "extracted", stats.Extracted,
		"failed", stats.Failed, "dropped", stats.Dropped)
	return nil
}

// frameDecoder accepts encoded images by extension, and raw frames when the
// dimensions are known and the pixel format is given or inferable.
func frameDecoder(format frame.Format, width, height int) capture.DecodeFunc {
	loader := image.NewFileLoader()
	return func(path string) (colour.Source, bool) {
		if image.IsImageFile(path) {
			return capture.ImageFile{Path: path, Loader: loader}, true
		}
		if width <= 0 || height <= 0 {
			return nil, false
		}

		f := format
		if f == "" {
			inferred, err := frame.FormatFromPath(path)
			if err != nil {
				return nil, false
			}
			f = inferred
		}
		return capture.RawFrameFile{Path: path, Format: f, Width: width, Height: height}, true
	}
}
