// Package imageio loads raster images from files and URLs for start2d.
package imageio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // register BMP
	_ "golang.org/x/image/tiff" // register TIFF
	_ "golang.org/x/image/webp" // register WebP
)

// MaxSize caps the number of bytes read from a single source.
const MaxSize = 64 << 20

// I/O errors.
var (
	// ErrEmptyData is returned when a source yields no bytes.
	ErrEmptyData = errors.New("imageio: empty data")

	// ErrTooLarge is returned when a source exceeds MaxSize.
	ErrTooLarge = errors.New("imageio: image too large")
)

// IsURL reports whether src names an http or https resource.
func IsURL(src string) bool {
	l := strings.ToLower(src)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

// Load reads and decodes the image at src, which is a file path or an
// http(s) URL. The returned string is the format name, e.g. "png".
func Load(ctx context.Context, src string) (image.Image, string, error) {
	data, err := read(ctx, src)
	if err != nil {
		return nil, "", err
	}
	return Decode(data)
}

// Decode decodes an image of any registered format.
func Decode(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", ErrEmptyData
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("imageio: decode: %w", err)
	}
	return img, format, nil
}

func read(ctx context.Context, src string) ([]byte, error) {
	if IsURL(src) {
		return fetch(ctx, src)
	}
	f, err := os.Open(filepath.Clean(src))
	if err != nil {
		return nil, fmt.Errorf("imageio: open file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return readAll(f)
}

func fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("imageio: request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("imageio: fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("imageio: fetch %s: %s", url, resp.Status)
	}
	return readAll(resp.Body)
}

func readAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxSize+1))
	if err != nil {
		return nil, fmt.Errorf("imageio: read: %w", err)
	}
	if len(data) > MaxSize {
		return nil, ErrTooLarge
	}
	return data, nil
}
