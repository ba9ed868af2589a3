// Command start2d draws an example sketch on a canvas measured in physical
// units. By default it exports the sketch as PNG; with -view it shows the
// canvas in the terminal, where it can be panned, zoomed and exported.
//
// Usage:
//
//	start2d [-config canvas.yaml] [-sketch circles] [-out dir] [-view] [-watch] [-v]
//
// With -watch the sketch is drawn again whenever the configuration file
// changes: re-exported in batch mode, reloaded in the viewer otherwise.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gogpu/gg"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/gogpu/start2d"
	"github.com/gogpu/start2d/integration/termview"
)

// watchDelay is the quiet period after the last change to the
// configuration file before the sketch is drawn again.
const watchDelay = 250 * time.Millisecond

// batchContainer is the container size reported to headless artworks.
var batchContainer = start2d.Size{W: 1280, H: 800}

type runOptions struct {
	config string
	sketch string
	out    string
	seed   int64
	view   bool
	watch  bool
}

func main() {
	var (
		config  = flag.String("config", "", "YAML canvas configuration (default: A4 landscape, mm, 300ppi)")
		sketch  = flag.String("sketch", "circles", fmt.Sprintf("sketch to draw %v", sketchNames()))
		out     = flag.String("out", ".", "export directory")
		seed    = flag.Int64("seed", 0, "random seed (0 keeps the configured seed)")
		view    = flag.Bool("view", false, "show the canvas in the terminal")
		watch   = flag.Bool("watch", false, "draw again when the configuration file changes")
		verbose = flag.Bool("v", false, "verbose logging to stderr")
	)
	flag.Parse()

	if *verbose {
		start2d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := runOptions{
		config: *config,
		sketch: *sketch,
		out:    *out,
		seed:   *seed,
		view:   *view,
		watch:  *watch,
	}
	if err := run(ctx, opts); err != nil {
		log.Fatalf("start2d: %v", err)
	}
}

func run(ctx context.Context, o runOptions) error {
	if o.watch && o.config == "" {
		return errors.New("-watch needs -config")
	}
	build, err := builder(ctx, o)
	if err != nil {
		return err
	}
	if o.view {
		return view(ctx, o, build)
	}
	return batch(ctx, o, build)
}

// builder returns a function that loads the configuration and draws the
// sketch into a new artwork. The configuration is read on every call so
// that reloads pick up edits.
func builder(ctx context.Context, o runOptions) (termview.BuildFunc, error) {
	sk, err := lookupSketch(o.sketch)
	if err != nil {
		return nil, err
	}
	return func(host start2d.Host) (*start2d.Artwork, error) {
		cfg := start2d.DefaultConfig()
		if o.config != "" {
			var err error
			if cfg, err = start2d.LoadConfigFile(o.config); err != nil {
				return nil, err
			}
		}
		if o.seed != 0 {
			cfg.Seed = o.seed
		}
		a, err := start2d.New(cfg, host, start2d.WithContext(ctx), start2d.WithExportDir(o.out))
		if err != nil {
			return nil, err
		}
		if err := a.Draw(func(dc *gg.Context, s start2d.Snapshot) { sk(dc, s, a.Rand()) }); err != nil {
			_ = a.Close()
			return nil, err
		}
		return a, nil
	}, nil
}

// exportOnce draws into a headless artwork and exports it.
func exportOnce(build termview.BuildFunc) (string, error) {
	a, err := build(start2d.NewHeadlessHost(batchContainer))
	if err != nil {
		return "", err
	}
	defer func() { _ = a.Close() }()
	return a.Export()
}

func batch(ctx context.Context, o runOptions, build termview.BuildFunc) error {
	path, err := exportOnce(build)
	if err != nil {
		return err
	}
	fmt.Println(path)
	if !o.watch {
		return nil
	}

	changes := make(chan struct{}, 1)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return watchFile(gctx, o.config, func() {
			select {
			case changes <- struct{}{}:
			default:
			}
		})
	})
	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-changes:
				path, err := exportOnce(build)
				if err != nil {
					start2d.Logger().Error("start2d: re-export failed", "error", err)
					continue
				}
				fmt.Println(path)
			}
		}
	})
	return g.Wait()
}

func view(ctx context.Context, o runOptions, build termview.BuildFunc) error {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("-view needs a terminal on stdout")
	}
	cols, rows, err := term.GetSize(fd)
	if err != nil {
		return fmt.Errorf("terminal size: %w", err)
	}

	host := termview.NewHost(cols, rows)
	art, err := build(host)
	if err != nil {
		return err
	}
	viewer := termview.NewViewer(host, art)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// Quitting the viewer stops the watcher too.
		defer cancel()
		return viewer.Run(gctx)
	})
	if o.watch {
		g.Go(func() error {
			return watchFile(gctx, o.config, func() { viewer.Reload(build) })
		})
	}
	return g.Wait()
}

// watchFile calls changed, debounced, whenever path is written or
// replaced, until ctx is done. The directory is watched rather than the
// file because editors often save by renaming a new file into place.
func watchFile(ctx context.Context, path string, changed func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	d := start2d.NewDebouncer(watchDelay)
	defer d.Cancel()
	start2d.Logger().Info("start2d: watching", "path", abs)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			start2d.Logger().Debug("start2d: config changed", "op", ev.Op.String())
			d.Trigger(changed)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			start2d.Logger().Warn("start2d: watch error", "error", err)
		}
	}
}
