package start2d

import (
	"errors"
	"fmt"
)

// Common errors returned by start2d operations.
var (
	// ErrConfig is matched by every *ConfigError.
	ErrConfig = errors.New("start2d: invalid configuration")

	// ErrValueParse is matched by every *ValueParseError.
	ErrValueParse = errors.New("start2d: malformed unit value")

	// ErrUnknownUnit is returned for a unit tag other than mm, cm, in or px.
	ErrUnknownUnit = errors.New("start2d: unknown unit")

	// ErrResolution is returned when a pixel conversion has no positive resolution.
	ErrResolution = errors.New("start2d: resolution must be positive")

	// ErrPaperSizeNotFound is returned by LookupPaper for unknown names.
	// Callers recover by falling back to DefaultSize.
	ErrPaperSizeNotFound = errors.New("start2d: paper size not found")

	// ErrAssetLoad is reported when a wallpaper image cannot be loaded.
	// Callers recover by falling back to the wallpaper color.
	ErrAssetLoad = errors.New("start2d: asset load failed")

	// ErrClosed is returned when operations are attempted on a closed artwork.
	ErrClosed = errors.New("start2d: artwork is closed")
)

// ConfigError reports a configuration value that prevents canvas creation.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("start2d: invalid %s", e.Field)
	}
	return fmt.Sprintf("start2d: invalid %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Is reports whether target is ErrConfig.
func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

func configErrorf(field, format string, args ...any) error {
	return &ConfigError{Field: field, Err: fmt.Errorf(format, args...)}
}

// ValueParseError reports a unit value string that could not be parsed.
type ValueParseError struct {
	Input string
	Err   error
}

func (e *ValueParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("start2d: malformed unit value %q", e.Input)
	}
	return fmt.Sprintf("start2d: malformed unit value %q: %v", e.Input, e.Err)
}

func (e *ValueParseError) Unwrap() error { return e.Err }

// Is reports whether target is ErrValueParse.
func (e *ValueParseError) Is(target error) bool { return target == ErrValueParse }
