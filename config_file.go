package start2d

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config with the option names of configuration files.
// Pointer fields distinguish "absent" from a zero value.
type fileConfig struct {
	Size        *SizeSpec `yaml:"size"`
	Orientation *string   `yaml:"orientation"`
	Units       *string   `yaml:"units"`
	ExportPPI   *float64  `yaml:"exportPPI"`
	PPI         *float64  `yaml:"ppi"`

	MinZoom *float64 `yaml:"minZoom"`
	MaxZoom *float64 `yaml:"maxZoom"`
	ZoomInc *float64 `yaml:"zoomInc"`

	ScreenPadding *Value   `yaml:"screenPadding"`
	ScreenPPI     *float64 `yaml:"screenPPI"`

	ShadowVisible *bool   `yaml:"shadowVisible"`
	ShadowColor   *string `yaml:"shadowColor"`
	ShadowX       *Value  `yaml:"shadowX"`
	ShadowY       *Value  `yaml:"shadowY"`
	ShadowBlur    *Value  `yaml:"shadowBlur"`

	WallpaperColor  *string `yaml:"wallpaperColor"`
	WallpaperImage  *string `yaml:"wallpaperImage"`
	BackgroundColor *string `yaml:"backgroundColor"`
	BackgroundImage *string `yaml:"backgroundImage"`

	OutputFileName       *string `yaml:"outputFileName"`
	OutputFileNamePrefix *string `yaml:"outputFileNamePrefix"`
	OutputFileNameSuffix *string `yaml:"outputFileNameSuffix"`

	XYDisplayDecimals *int    `yaml:"xyDisplayDecimals"`
	Seed              *int64  `yaml:"seed"`
	NoiseSeed         *int64  `yaml:"noiseSeed"`
	Renderer          *string `yaml:"renderer"`
}

// LoadConfig reads a YAML configuration. Absent options keep the values of
// DefaultConfig. The result is validated.
func LoadConfig(r io.Reader) (Config, error) {
	var fc fileConfig
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && err != io.EOF {
		return Config{}, &ConfigError{Field: "file", Err: err}
	}
	cfg, err := fc.apply(DefaultConfig())
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile reads a YAML configuration from path.
func LoadConfigFile(path string) (Config, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("start2d: open config: %w", err)
	}
	defer func() { _ = f.Close() }()
	return LoadConfig(f)
}

func (fc fileConfig) apply(cfg Config) (Config, error) {
	if fc.Size != nil {
		cfg.Size = *fc.Size
	}
	if fc.Orientation != nil {
		o, err := ParseOrientation(*fc.Orientation)
		if err != nil {
			return Config{}, err
		}
		cfg.Orientation = o
	}
	if fc.Units != nil {
		u, err := ParseUnit(*fc.Units)
		if err != nil {
			return Config{}, &ConfigError{Field: "units", Err: err}
		}
		cfg.Units = u
	}
	if fc.PPI != nil {
		cfg.ExportPPI = Resolution(*fc.PPI)
	}
	if fc.ExportPPI != nil {
		cfg.ExportPPI = Resolution(*fc.ExportPPI)
	}
	setFloat(&cfg.MinZoom, fc.MinZoom)
	setFloat(&cfg.MaxZoom, fc.MaxZoom)
	setFloat(&cfg.ZoomInc, fc.ZoomInc)
	if fc.ScreenPadding != nil {
		cfg.ScreenPadding = *fc.ScreenPadding
	}
	if fc.ScreenPPI != nil {
		cfg.ScreenPPI = Resolution(*fc.ScreenPPI)
	}
	if fc.ShadowVisible != nil {
		cfg.ShadowVisible = *fc.ShadowVisible
	}
	setString(&cfg.ShadowColor, fc.ShadowColor)
	setValue(&cfg.ShadowX, fc.ShadowX)
	setValue(&cfg.ShadowY, fc.ShadowY)
	setValue(&cfg.ShadowBlur, fc.ShadowBlur)
	setString(&cfg.WallpaperColor, fc.BackgroundColor)
	setString(&cfg.WallpaperColor, fc.WallpaperColor)
	setString(&cfg.WallpaperImage, fc.BackgroundImage)
	setString(&cfg.WallpaperImage, fc.WallpaperImage)

	if fc.OutputFileNamePrefix != nil || fc.OutputFileNameSuffix != nil {
		name := "artwork"
		setString(&name, fc.OutputFileName)
		var prefix, suffix string
		setString(&prefix, fc.OutputFileNamePrefix)
		setString(&suffix, fc.OutputFileNameSuffix)
		cfg.OutputFileName = ComposeTemplate(prefix, name, suffix)
	} else {
		setString(&cfg.OutputFileName, fc.OutputFileName)
	}

	if fc.XYDisplayDecimals != nil {
		cfg.XYDisplayDecimals = *fc.XYDisplayDecimals
	}
	if fc.Seed != nil {
		cfg.Seed = *fc.Seed
	}
	if fc.NoiseSeed != nil {
		cfg.NoiseSeed = *fc.NoiseSeed
	}
	setString(&cfg.Renderer, fc.Renderer)
	return cfg, nil
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setValue(dst *Value, src *Value) {
	if src != nil {
		*dst = *src
	}
}

// UnmarshalYAML reads a number (unit-less) or a string such as "10mm".
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: unit value must be a scalar", node.Line)
	}
	switch node.Tag {
	case "!!int", "!!float":
		f, err := strconv.ParseFloat(node.Value, 64)
		if err != nil {
			return &ValueParseError{Input: node.Value, Err: err}
		}
		*v = Bare(f)
		return nil
	}
	parsed, err := ParseValue(node.Value)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalYAML writes v in the form UnmarshalYAML reads.
func (v Value) MarshalYAML() (any, error) {
	if v.Unit == "" {
		return v.Magnitude, nil
	}
	return v.String(), nil
}

// UnmarshalYAML reads a paper name or a two-element width/height list.
func (s *SizeSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*s = Paper(node.Value)
		return nil
	case yaml.SequenceNode:
		if len(node.Content) != 2 {
			return &ConfigError{Field: "size", Err: fmt.Errorf("line %d: want [width, height], got %d elements", node.Line, len(node.Content))}
		}
		var w, h Value
		if err := node.Content[0].Decode(&w); err != nil {
			return &ConfigError{Field: "size", Err: err}
		}
		if err := node.Content[1].Decode(&h); err != nil {
			return &ConfigError{Field: "size", Err: err}
		}
		*s = Dimensions(w, h)
		return nil
	default:
		return &ConfigError{Field: "size", Err: fmt.Errorf("line %d: want paper name or [width, height]", node.Line)}
	}
}
