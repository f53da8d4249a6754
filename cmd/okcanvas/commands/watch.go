package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/benoitkugler/okcanvas/canvasdraw"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newWatchCmd(a *app) *cobra.Command {
	var (
		flags     renderFlags
		noOverlay bool
	)
	cmd := &cobra.Command{
		Use:   "watch <input.json>",
		Short: "draw the items of a JSON file each time it changes",
		Long: `watch renders the input once, then each time it is written.
While the input is being written, the loading overlay is drawn on top
of the previous items, unless disabled.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "-" {
				return errors.New("watch requires an input file")
			}
			j, err := newJob(a, flags, args[0])
			if err != nil {
				return err
			}
			if j.format == "pdf" || j.output == "-" {
				return errors.New("watch supports png and svg output files only")
			}
			opts := a.cfg.Watch
			if noOverlay {
				opts.Overlay = false
			}
			return watch(cmd.Context(), j, time.Duration(opts.DebounceMs)*time.Millisecond, opts.Overlay)
		},
	}
	flags.register(cmd.Flags())
	cmd.Flags().BoolVar(&noOverlay, "no-overlay", false, "do not draw the loading overlay while the input is written")
	return cmd
}

// watcher redraws the output when the input changes
type watcher struct {
	job     job
	surface surface
	display *canvasdraw.Display
	overlay bool
}

func newWatcher(j job, overlay bool) (*watcher, error) {
	s, err := j.newSurface()
	if err != nil {
		return nil, err
	}
	return &watcher{
		job:     j,
		surface: s,
		display: canvasdraw.NewDisplay(s, j.overlay, j.logger),
		overlay: overlay,
	}, nil
}

// write saves the surface
func (w *watcher) write() {
	err := writeFile(w.job.output, io.Discard, w.surface.writeTo)
	if err != nil {
		w.job.logger.Error("saving output", zap.Error(err))
	}
}

// startLoading shows the overlay, once per batch of writes.
func (w *watcher) startLoading() {
	if !w.overlay || w.display.Loading() {
		return
	}
	w.display.SetLoading(true)
	w.write()
}

// reload reads the input and redraws it if needed.
// Invalid inputs are reported, keeping the previous drawing.
func (w *watcher) reload(force bool) {
	wasLoading := w.display.Loading()
	changed := false
	items, err := w.job.readItems()
	if err != nil {
		w.job.logger.Warn("invalid input, keeping the previous drawing", zap.Error(err))
	} else {
		changed = w.display.SetItems(items)
	}
	w.display.SetLoading(false)
	if changed || wasLoading || force {
		w.write()
		w.job.logger.Info("rendered", zap.Int("items", len(items)), zap.String("output", w.job.output))
	}
}

func watch(ctx context.Context, j job, debounce time.Duration, overlay bool) error {
	input, err := filepath.Abs(j.input)
	if err != nil {
		return err
	}
	w, err := newWatcher(j, overlay)
	if err != nil {
		return err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()
	// watch the directory, since editors often replace the file
	if err := fsw.Add(filepath.Dir(input)); err != nil {
		return fmt.Errorf("watching %s: %w", j.input, err)
	}

	w.reload(true)
	j.logger.Info("watching", zap.String("input", input))

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != input || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			j.logger.Debug("input changed", zap.Stringer("op", event.Op))
			w.startLoading()
			fire = time.After(debounce)
		case <-fire:
			fire = nil
			w.reload(false)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			j.logger.Warn("watching input", zap.Error(err))
		}
	}
}
