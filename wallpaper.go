package start2d

import (
	"context"
	"fmt"
	"image"

	"github.com/gogpu/gg"

	"github.com/gogpu/start2d/internal/imageio"
)

// Wallpaper is the background of the canvas container: an image when one
// was loaded, the solid color otherwise.
type Wallpaper struct {
	Color gg.RGBA
	Image image.Image
}

// LoadWallpaper loads src in the background and calls done exactly once:
// with the image on success, with the fallback color alone on failure.
// An empty src calls done synchronously with the color. There is no retry.
//
// done runs on the loading goroutine; hosts marshal it onto their event
// loop.
func LoadWallpaper(ctx context.Context, src string, fallback gg.RGBA, done func(Wallpaper)) {
	if src == "" {
		done(Wallpaper{Color: fallback})
		return
	}
	go func() {
		img, _, err := imageio.Load(ctx, src)
		if err != nil {
			err = fmt.Errorf("%w: background image %q: %w", ErrAssetLoad, src, err)
			Logger().Warn("start2d: wallpaper not loaded, using color", "error", err)
			done(Wallpaper{Color: fallback})
			return
		}
		Logger().Debug("start2d: wallpaper loaded", "src", src, "size", img.Bounds().Size())
		done(Wallpaper{Color: fallback, Image: img})
	}()
}
