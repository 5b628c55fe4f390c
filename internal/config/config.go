package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/artloop/internal/capture"
	"github.com/san-kum/artloop/internal/curve"
	"github.com/san-kum/artloop/internal/neural"
)

const (
	DefaultStep       = 0.03
	DefaultFPS        = 30
	DefaultFrames     = 120
	DefaultRoseEnd    = 10.0
	DefaultRoseOutput = "rose_curves.avi"
	DefaultDataDir    = ".artloop"
	DefaultTheme      = "default"
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Theme    string         `yaml:"theme"`
	DataDir  string         `yaml:"data_dir"`
	Contours ContoursConfig `yaml:"contours"`
	Neural   NeuralConfig   `yaml:"neural"`
	Rose     RoseConfig     `yaml:"rose"`
}

type ContoursConfig struct {
	Width      int              `yaml:"width"`
	Height     int              `yaml:"height"`
	Background string           `yaml:"background"`
	Step       float64          `yaml:"step"`
	FPS        int              `yaml:"fps"`
	Frames     int              `yaml:"frames"`
	XMin       float64          `yaml:"x_min"`
	XMax       float64          `yaml:"x_max"`
	Stride     float64          `yaml:"stride"`
	Rows       int              `yaml:"rows"`
	RowSpacing float64          `yaml:"row_spacing"`
	Amplitude  float64          `yaml:"amplitude"`
	Decay      float64          `yaml:"decay"`
	Harmonics  []curve.Harmonic `yaml:"harmonics"`
	Saturation float64          `yaml:"saturation"`
	LineWidth  float64          `yaml:"line_width"`
}

type NeuralConfig struct {
	Width      int               `yaml:"width"`
	Height     int               `yaml:"height"`
	Background string            `yaml:"background"`
	Layers     []int             `yaml:"layers"`
	Seed       uint64            `yaml:"seed"`
	Keys       map[string]string `yaml:"keys,omitempty"`
}

type RoseConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Background string  `yaml:"background"`
	Frames     int     `yaml:"frames"`
	Start      float64 `yaml:"start"`
	End        float64 `yaml:"end"`
	FPS        int     `yaml:"fps"`
	Codec      string  `yaml:"codec"`
	Output     string  `yaml:"output"`
	Quality    int     `yaml:"quality"`
	FFmpeg     string  `yaml:"ffmpeg"`
	Size       float64 `yaml:"size"`
	// N fixes the petal numerator. Zero modulates it with 4 + sin(t/2).
	N            float64 `yaml:"n"`
	D            float64 `yaml:"d"`
	Passes       int     `yaml:"passes"`
	PassStep     float64 `yaml:"pass_step"`
	StepsPerTurn int     `yaml:"steps_per_turn"`
	LineWidth    float64 `yaml:"line_width"`
}

func DefaultConfig() *Config {
	c := curve.DefaultContour()
	r := curve.DefaultRose()
	return &Config{
		Theme:   DefaultTheme,
		DataDir: DefaultDataDir,
		Contours: ContoursConfig{
			Width:      800,
			Height:     600,
			Background: "#000000",
			Step:       DefaultStep,
			FPS:        DefaultFPS,
			XMin:       c.XMin,
			XMax:       c.XMax,
			Stride:     c.Stride,
			Rows:       c.RowMax,
			RowSpacing: c.RowSpacing,
			Amplitude:  c.BaseAmplitude,
			Decay:      c.AmplitudeDecay,
			Harmonics:  c.Harmonics,
			Saturation: c.Sat,
			LineWidth:  c.Width,
		},
		Neural: NeuralConfig{
			Width:      1000,
			Height:     700,
			Background: "#000000",
			Layers:     neural.DefaultLayers(),
		},
		Rose: RoseConfig{
			Width:        800,
			Height:       800,
			Background:   "#000000",
			Frames:       DefaultFrames,
			End:          DefaultRoseEnd,
			FPS:          DefaultFPS,
			Codec:        string(capture.CodecMJPEG),
			Output:       DefaultRoseOutput,
			Quality:      90,
			FFmpeg:       "ffmpeg",
			Size:         r.Size,
			D:            r.D,
			Passes:       r.Passes,
			PassStep:     r.PassStep,
			StepsPerTurn: r.StepsPerTurn,
			LineWidth:    r.Width,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse reads YAML over the defaults, so a file only needs the keys it
// changes.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve builds the configuration of one run: defaults, then the named
// preset, then the YAML file at path. Empty names skip a layer.
func Resolve(animation, presetName, path string) (*Config, error) {
	cfg := DefaultConfig()
	if presetName != "" {
		p := GetPreset(animation, presetName)
		if p == nil {
			return nil, fmt.Errorf("%w: unknown preset %q for %s (available: %v)",
				ErrInvalid, presetName, animation, ListPresets(animation))
		}
		cfg = p.Clone()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Contours.Harmonics = append([]curve.Harmonic(nil), c.Contours.Harmonics...)
	out.Neural.Layers = append([]int(nil), c.Neural.Layers...)
	if c.Neural.Keys != nil {
		out.Neural.Keys = make(map[string]string, len(c.Neural.Keys))
		for k, v := range c.Neural.Keys {
			out.Neural.Keys[k] = v
		}
	}
	return &out
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Contours.Width > 0 && c.Contours.Height > 0, "contours size %dx%d", c.Contours.Width, c.Contours.Height)
	check(c.Contours.Step > 0, "contours step %g", c.Contours.Step)
	check(c.Contours.FPS >= 0, "contours fps %d", c.Contours.FPS)
	check(c.Contours.Rows >= 0, "contours rows %d", c.Contours.Rows)
	check(c.Neural.Width > 0 && c.Neural.Height > 0, "neural size %dx%d", c.Neural.Width, c.Neural.Height)
	check(c.Rose.Width > 0 && c.Rose.Height > 0, "rose size %dx%d", c.Rose.Width, c.Rose.Height)
	check(c.Rose.Frames > 0, "rose frames %d", c.Rose.Frames)
	check(c.Rose.FPS > 0, "rose fps %d", c.Rose.FPS)
	check(c.Rose.Frames == 1 || c.Rose.End > c.Rose.Start, "rose time range [%g, %g]", c.Rose.Start, c.Rose.End)
	check(validCodec(c.Rose.Codec), "rose codec %q (available: %v)", c.Rose.Codec, capture.Codecs())

	for _, bg := range []string{c.Contours.Background, c.Neural.Background, c.Rose.Background} {
		_, err := colorful.Hex(bg)
		check(err == nil, "background %q", bg)
	}

	if err := c.Neural.Config().Validate(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Neural.Keymap(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func validCodec(name string) bool {
	for _, c := range capture.Codecs() {
		if strings.EqualFold(c, name) {
			return true
		}
	}
	return false
}

// Contour builds the curve generator from the settings.
func (c ContoursConfig) Contour() curve.Contour {
	g := curve.DefaultContour()
	g.XMin, g.XMax, g.Stride = c.XMin, c.XMax, c.Stride
	g.RowMin, g.RowMax = -c.Rows, c.Rows
	g.RowSpacing = c.RowSpacing
	g.BaseAmplitude = c.Amplitude
	g.AmplitudeDecay = c.Decay
	if len(c.Harmonics) > 0 {
		g.Harmonics = c.Harmonics
	}
	g.Sat = c.Saturation
	g.Width = c.LineWidth
	return g
}

func (c ContoursConfig) BackgroundRGB() curve.RGB { return parseRGB(c.Background) }

func (c NeuralConfig) Config() neural.Config {
	return neural.Config{Layers: append([]int(nil), c.Layers...)}
}

// Keymap returns the default bindings overlaid with the configured keys.
func (c NeuralConfig) Keymap() (neural.Keymap, error) {
	keys := neural.DefaultKeymap()
	if len(c.Keys) == 0 {
		return keys, nil
	}
	extra, err := neural.ParseKeymap(c.Keys)
	if err != nil {
		return nil, err
	}
	for k, ev := range extra {
		keys[k] = ev
	}
	return keys, nil
}

func (c NeuralConfig) BackgroundRGB() curve.RGB { return parseRGB(c.Background) }

// Rose builds the curve generator from the settings.
func (c RoseConfig) Rose() curve.Rose {
	g := curve.DefaultRose()
	if c.N > 0 {
		g.Numerator = nil
		g.N = c.N
	}
	g.D = c.D
	g.Size = c.Size
	g.Passes = c.Passes
	g.PassStep = c.PassStep
	g.StepsPerTurn = c.StepsPerTurn
	g.Width = c.LineWidth
	return g
}

func (c RoseConfig) Encoder() capture.Options {
	return capture.Options{
		Path:    c.Output,
		Codec:   capture.Codec(strings.ToLower(c.Codec)),
		FPS:     c.FPS,
		Quality: c.Quality,
		FFmpeg:  c.FFmpeg,
	}
}

func (c RoseConfig) BackgroundRGB() curve.RGB { return parseRGB(c.Background) }

func parseRGB(hex string) curve.RGB {
	col, err := colorful.Hex(hex)
	if err != nil {
		return curve.RGB{}
	}
	return curve.RGB{R: col.R, G: col.G, B: col.B}
}
