package capture

import (
	"context"
	"fmt"
	"os"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"

	"github.com/colorwaver/colorwaver/internal/colour"
)

// DecodeFunc turns a file written into a watched directory into a frame.
// Returning ok=false ignores the file.
type DecodeFunc func(path string) (src colour.Source, ok bool)

// Watch treats files created or rewritten in dir as a frame stream. A file is
// read once it has seen no writes for the settle period, and if decode
// accepts it the frame is offered to the processor. Results of frames that
// were not dropped are sent on the returned channel, which is closed once
// ctx is cancelled or the watcher fails.
func (p *Processor) Watch(ctx context.Context, dir string, decode DecodeFunc) (<-chan Result, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access watch directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	p.logger.Info("watching for frames", "dir", dir, "interval", p.interval, "quality", p.quality.String())

	results := make(chan Result)
	go p.watchLoop(ctx, watcher, decode, results)
	return results, nil
}

// watchLoop coalesces the events of each file and decodes it once the file
// has been quiet for the settle period, so frames written in place are read
// complete.
func (p *Processor) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, decode DecodeFunc, results chan<- Result) {
	defer close(results)
	defer watcher.Close()

	pending := make(map[string]func(func()))
	settled := make(chan string, 16)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}

			path := event.Name
			debounced, ok := pending[path]
			if !ok {
				debounced = debounce.New(p.settle)
				pending[path] = debounced
			}
			debounced(func() {
				select {
				case settled <- path:
				case <-ctx.Done():
				}
			})

		case path := <-settled:
			delete(pending, path)

			src, ok := decode(path)
			if !ok {
				continue
			}
			res := p.ProcessSource(ctx, path, src)
			if res.Dropped {
				continue
			}
			select {
			case results <- res:
			case <-ctx.Done():
				return
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("watcher error", "error", err)
		}
	}
}
