package start2d

import (
	"context"
	"time"
)

// Option configures an Artwork during creation.
//
// Example:
//
//	a, err := start2d.New(cfg, host,
//	    start2d.WithExportDir("out"),
//	    start2d.WithResizeDelay(100*time.Millisecond))
type Option func(*options)

type options struct {
	ctx         context.Context
	clock       func() time.Time
	resizeDelay time.Duration
	exportDir   string
	afterFunc   afterFunc
}

func defaultOptions() options {
	return options{
		ctx:         context.Background(),
		clock:       time.Now,
		resizeDelay: DefaultResizeDelay,
		exportDir:   ".",
		afterFunc:   realAfterFunc,
	}
}

// WithContext sets the context that bounds background work such as
// wallpaper loading. Close cancels it as well.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// WithClock sets the time source used for export file names.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.clock = now
		}
	}
}

// WithResizeDelay sets the quiet period after the last container resize
// before the viewport reflows.
func WithResizeDelay(d time.Duration) Option {
	return func(o *options) {
		o.resizeDelay = d
	}
}

// WithExportDir sets the directory Export writes to.
func WithExportDir(dir string) Option {
	return func(o *options) {
		o.exportDir = dir
	}
}
