package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/colorwaver/colorwaver/internal/colour"
)

// outputOptions are the flags shared by commands that print a palette.
type outputOptions struct {
	quality   string
	format    string
	output    string
	noPreview bool
	average   bool
	spacing   int
}

func (o *outputOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.quality, "quality", envOr(envQuality, colour.DefaultQuality.String()),
		"analysis quality: lowest, low, high, highest (or 0-3)")
	cmd.Flags().StringVarP(&o.format, "format", "f", "hex", "output format (hex, rgb, json)")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&o.noPreview, "no-preview", false, "never show colour swatches, even on a terminal")
	cmd.Flags().BoolVar(&o.average, "average", false, "also report the average colour")
	cmd.Flags().IntVar(&o.spacing, "pixel-spacing", colour.DefaultPixelSpacing, "sample every Nth pixel for --average")
}

func (o *outputOptions) validate() error {
	switch o.format {
	case "hex", "rgb", "json":
		return nil
	default:
		return fmt.Errorf("unsupported format: %s (supported: hex, rgb, json)", o.format)
	}
}

// showPreview reports whether swatches should be drawn on w.
func (o *outputOptions) showPreview(w io.Writer) bool {
	if o.noPreview || o.output != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// paletteJSON is the JSON document for a single palette.
type paletteJSON struct {
	colour.HexPalette
	Average string `json:"average,omitempty"`
}

// formatPalette renders the palette in the requested format.
func formatPalette(p *colour.Palette, format string, showPreview bool, average *colour.Colour) (string, error) {
	switch format {
	case "hex":
		out := p.StringWithPreview(showPreview)
		if average != nil {
			if showPreview {
				out += colour.FormatColourWithLabel(*average, "average", 8) + "\n"
			} else {
				out += fmt.Sprintf("%-10s %s\n", "average", average.Hex())
			}
		}
		return out, nil
	case "rgb":
		var sb strings.Builder
		for slot, c := range p.All() {
			fmt.Fprintf(&sb, "%-10s %s\n", slot, c.RGB())
		}
		if average != nil {
			fmt.Fprintf(&sb, "%-10s %s\n", "average", average.RGB())
		}
		return sb.String(), nil
	case "json":
		doc := paletteJSON{HexPalette: p.Hex()}
		if average != nil {
			doc.Average = average.Hex()
		}
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(data) + "\n", nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: hex, rgb, json)", format)
	}
}

// writeOutput writes content to the output file, or to the command's stdout.
func writeOutput(cmd *cobra.Command, path, content string) error {
	if path == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), content)
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil { // #nosec G306 - Palette output is not sensitive
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
