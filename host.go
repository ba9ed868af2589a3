package start2d

// Frame is what a host shows for the canvas: its on-screen rectangle, the
// drop shadow and the coordinate readout.
type Frame struct {
	Canvas Rect
	Zoom   float64

	// PixelWidth and PixelHeight are the export size of the canvas; they
	// change on Artwork.Resize.
	PixelWidth, PixelHeight int

	// Shadow is nil when the shadow is hidden.
	Shadow *ShadowStyle

	// Readout is empty when the coordinate readout is hidden.
	Readout string
}

// Host is the page or window an Artwork lives in. It owns the container
// element, the input devices and the event loop.
//
// Every method except Post is called on the host's event loop.
type Host interface {
	// DevicePixelRatio is the number of device pixels per screen pixel.
	DevicePixelRatio() float64

	// ContainerSize is the current size of the canvas container.
	ContainerSize() Size

	// Mount creates the container and attaches a canvas of the given
	// export size.
	Mount(pixelWidth, pixelHeight int) error

	// ApplyWallpaper sets the container background.
	ApplyWallpaper(Wallpaper)

	// Present shows the canvas with the given frame.
	Present(Frame)

	// Events is the target the host dispatches pointer input to.
	Events() *EventTarget

	// Post runs fn on the host's event loop. It may be called from any
	// goroutine.
	Post(fn func())
}
