// Package capture drives palette extraction over a stream of camera frames.
//
// A Processor applies the capture-loop policy around the stateless
// extractor: frames arriving faster than the configured interval are dropped,
// and a frame that fails to convert never disturbs the palette already shown.
package capture

import (
	"context"
	"errors"
	"image"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/colorwaver/colorwaver/internal/colour"
)

const (
	// DefaultInterval bounds extraction to 5 frames per second.
	DefaultInterval = 200 * time.Millisecond

	// DefaultSettle is how long a watched file must stay quiet before it is
	// read as a frame.
	DefaultSettle = 100 * time.Millisecond
)

// Result is the outcome of offering one frame to a Processor.
type Result struct {
	// Source names the frame, e.g. its file path. May be empty.
	Source string `json:"source,omitempty"`

	// Palette is the palette to display: fresh on success, otherwise the
	// last successful palette or the neutral default.
	Palette *colour.Palette `json:"-"`

	// Fresh is true when Palette was computed from this frame.
	Fresh bool `json:"fresh"`

	// Dropped is true when the frame was skipped by the rate limit.
	Dropped bool `json:"dropped"`

	// Err holds the extraction error for a failed frame.
	Err error `json:"-"`

	// Elapsed is the extraction time.
	Elapsed time.Duration `json:"elapsed"`
}

// Stats counts frames seen by a Processor.
type Stats struct {
	Frames    uint64 `json:"frames"`
	Extracted uint64 `json:"extracted"`
	Failed    uint64 `json:"failed"`
	Dropped   uint64 `json:"dropped"`
}

// Options configures a Processor.
type Options struct {
	// Quality is the analysis tier used for every frame.
	Quality colour.Quality

	// Interval is the minimum time between extractions. Zero selects
	// DefaultInterval; a negative value disables throttling.
	Interval time.Duration

	// Settle is the quiet period Watch waits after the last write to a file
	// before decoding it. Zero selects DefaultSettle.
	Settle time.Duration

	// Logger receives per-frame diagnostics. Nil discards them.
	Logger hclog.Logger
}

// Processor runs frames through an extractor under a rate limit. It is safe
// for concurrent use.
type Processor struct {
	extractor *colour.Extractor
	quality   colour.Quality
	interval  time.Duration
	settle    time.Duration
	logger    hclog.Logger
	now       func() time.Time

	mu      sync.Mutex
	started bool
	last    time.Time
	palette *colour.Palette
	stats   Stats
}

// NewProcessor creates a Processor around extractor.
func NewProcessor(extractor *colour.Extractor, opts Options) *Processor {
	interval := opts.Interval
	if interval == 0 {
		interval = DefaultInterval
	}
	settle := opts.Settle
	if settle <= 0 {
		settle = DefaultSettle
	}
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Processor{
		extractor: extractor,
		quality:   opts.Quality,
		interval:  interval,
		settle:    settle,
		logger:    logger.Named("capture"),
		now:       time.Now,
		palette:   colour.DefaultPalette(),
	}
}

// Palette returns the palette currently on display.
func (p *Processor) Palette() *colour.Palette {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.palette
}

// Stats returns a snapshot of the frame counters.
func (p *Processor) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

// slot is an admitted extraction; it remembers the window it replaced so a
// frame that never converts can hand the window back.
type slot struct {
	at          time.Time
	prevStarted bool
	prevLast    time.Time
}

// admit reserves an extraction slot, reporting false when the frame arrives
// inside the rate-limit window.
func (p *Processor) admit() (slot, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stats.Frames++
	now := p.now()
	if p.started && p.interval > 0 && now.Sub(p.last) < p.interval {
		p.stats.Dropped++
		return slot{}, false
	}
	s := slot{at: now, prevStarted: p.started, prevLast: p.last}
	p.started = true
	p.last = now
	return s, true
}

// release returns the window taken by s unless a later frame took it since.
// Caller holds p.mu.
func (p *Processor) release(s slot) {
	if p.last.Equal(s.at) {
		p.started = s.prevStarted
		p.last = s.prevLast
	}
}

// Process extracts the palette of img unless the frame is throttled. img is
// only borrowed for the duration of the call.
func (p *Processor) Process(ctx context.Context, source string, img image.Image) Result {
	return p.run(ctx, source, func() (*colour.Palette, error) {
		return p.extractor.Extract(img, p.quality)
	})
}

// ProcessSource is Process for frames that still need converting, such as
// raw camera buffers.
func (p *Processor) ProcessSource(ctx context.Context, source string, src colour.Source) Result {
	return p.run(ctx, source, func() (*colour.Palette, error) {
		return p.extractor.ExtractSource(src, p.quality)
	})
}

func (p *Processor) run(ctx context.Context, source string, extract func() (*colour.Palette, error)) Result {
	if err := ctx.Err(); err != nil {
		return Result{Source: source, Palette: p.Palette(), Err: err}
	}

	admitted, ok := p.admit()
	if !ok {
		p.logger.Trace("frame dropped by rate limit", "source", source)
		return Result{Source: source, Palette: p.Palette(), Dropped: true}
	}

	start := p.now()
	palette, err := extract()
	elapsed := p.now().Sub(start)

	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		p.stats.Failed++
		// Unreadable input (a half-written file, a truncated buffer) does
		// not cost the next frame its slot.
		if errors.Is(err, colour.ErrSourceConversionFailed) || errors.Is(err, colour.ErrEmptyInput) {
			p.release(admitted)
		}
		p.logger.Warn("frame skipped, keeping previous palette", "source", source, "error", err)
		return Result{Source: source, Palette: p.palette, Err: err, Elapsed: elapsed}
	}

	p.stats.Extracted++
	p.palette = palette
	p.logger.Debug("palette extracted", "source", source, "quality", p.quality.String(),
		"elapsed", elapsed, "background", palette.Background.Hex())
	return Result{Source: source, Palette: palette, Fresh: true, Elapsed: elapsed}
}
