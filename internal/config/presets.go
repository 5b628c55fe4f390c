package config

import "sort"

func preset(edit func(c *Config)) *Config {
	c := DefaultConfig()
	edit(c)
	return c
}

// Presets are keyed by animation, then by preset name.
var Presets = map[string]map[string]*Config{
	"contours": {
		"calm": preset(func(c *Config) {
			c.Contours.Step = 0.01
			c.Contours.Amplitude = 60
			c.Contours.Decay = 4
		}),
		"storm": preset(func(c *Config) {
			c.Contours.Step = 0.06
			c.Contours.Amplitude = 140
			c.Contours.Decay = 10
			c.Contours.Stride = 2
		}),
		"sparse": preset(func(c *Config) {
			c.Contours.Rows = 2
			c.Contours.RowSpacing = 120
			c.Contours.LineWidth = 4
		}),
	},
	"neural": {
		"tiny": preset(func(c *Config) {
			c.Neural.Layers = []int{2, 3, 2}
		}),
		"deep": preset(func(c *Config) {
			c.Neural.Layers = []int{3, 8, 8, 8, 3}
		}),
	},
	"rose": {
		"classic": preset(func(c *Config) {
			c.Rose.N = 4
		}),
		"dense": preset(func(c *Config) {
			c.Rose.D = 7
			c.Rose.Frames = 240
			c.Rose.End = 20
		}),
		"preview": preset(func(c *Config) {
			c.Rose.Width, c.Rose.Height = 400, 400
			c.Rose.Size = 150
			c.Rose.PassStep = 10
			c.Rose.Frames = 30
			c.Rose.Codec = "gif"
			c.Rose.Output = "rose_preview.gif"
		}),
	},
}

func GetPreset(animation, name string) *Config {
	animPresets, ok := Presets[animation]
	if !ok {
		return nil
	}
	cfg, ok := animPresets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(animation string) []string {
	animPresets, ok := Presets[animation]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(animPresets))
	for name := range animPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Animations lists the animations that have presets.
func Animations() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
