// Package voice provides the preset catalog of named voice parameter
// bundles consumed by the synthesizer. Presets are immutable; callers
// copy a Config, optionally apply overrides, and hand it to the engine.
package voice

import (
	"fmt"
	"sort"
	"strings"
)

// Config is one fully resolved voice. It is read-only for the duration
// of a synthesis call; concurrent renders each hold their own copy.
type Config struct {
	// Name identifies the preset the config was derived from.
	Name string `json:"name" yaml:"name"`
	// Pitch is the base fundamental frequency in Hz for voiced phonemes.
	Pitch float64 `json:"pitch" yaml:"pitch"`
	// FormantShift multiplies the first three formant frequencies.
	FormantShift float64 `json:"formant_shift" yaml:"formant_shift"`
	// Breathiness is the aspiration noise mix for voiced frames, 0..1.
	Breathiness float64 `json:"breathiness" yaml:"breathiness"`
	// Speed scales phoneme durations; values above 1 speak faster.
	Speed float64 `json:"speed" yaml:"speed"`
	// ReverbMix is consumed at the audio output boundary, not by the
	// synthesizer itself.
	ReverbMix float64 `json:"reverb_mix" yaml:"reverb_mix"`
	// Robotize is the depth of the 30 Hz post-synthesis amplitude
	// modulation, 0..1.
	Robotize float64 `json:"robotize" yaml:"robotize"`
}

// Overrides carries optional per-request adjustments layered on top of
// a preset. Nil fields leave the preset value untouched.
type Overrides struct {
	Pitch        *float64 `json:"pitch,omitempty" yaml:"pitch,omitempty"`
	FormantShift *float64 `json:"formant_shift,omitempty" yaml:"formant_shift,omitempty"`
	Breathiness  *float64 `json:"breathiness,omitempty" yaml:"breathiness,omitempty"`
	Speed        *float64 `json:"speed,omitempty" yaml:"speed,omitempty"`
	ReverbMix    *float64 `json:"reverb_mix,omitempty" yaml:"reverb_mix,omitempty"`
	Robotize     *float64 `json:"robotize,omitempty" yaml:"robotize,omitempty"`
}

const (
	defaultPitch = 120.0
	// DefaultName is the preset used when a request names no voice.
	DefaultName = "default"
)

var presets = map[string]Config{
	"default": {Name: "default", Pitch: 120, FormantShift: 1.0, Speed: 1.0},
	"male":    {Name: "male", Pitch: 100, FormantShift: 0.95, Speed: 1.0},
	"female":  {Name: "female", Pitch: 190, FormantShift: 1.1, Breathiness: 0.1, Speed: 1.0},
	"child":   {Name: "child", Pitch: 250, FormantShift: 1.25, Speed: 1.0},
	"robot":   {Name: "robot", Pitch: 110, FormantShift: 1.0, Robotize: 0.9, Speed: 1.0},
	"glados":  {Name: "glados", Pitch: 175, FormantShift: 1.05, Breathiness: 0.05, Robotize: 0.35, Speed: 0.95},
	"korean":  {Name: "korean", Pitch: 130, FormantShift: 1.0, Speed: 1.05},
}

// Default returns the standard voice.
func Default() Config {
	return presets[DefaultName]
}

// Lookup resolves a preset by name, case-insensitively. An empty name
// resolves to the default preset.
func Lookup(name string) (Config, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = DefaultName
	}
	cfg, ok := presets[key]
	if !ok {
		return Config{}, fmt.Errorf("unknown voice %q (have %s)", name, strings.Join(Names(), ", "))
	}
	return cfg, nil
}

// Names lists the catalog in sorted order.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply layers the non-nil override fields onto c and returns the result.
func (c Config) Apply(o Overrides) Config {
	if o.Pitch != nil {
		c.Pitch = *o.Pitch
	}
	if o.FormantShift != nil {
		c.FormantShift = *o.FormantShift
	}
	if o.Breathiness != nil {
		c.Breathiness = *o.Breathiness
	}
	if o.Speed != nil {
		c.Speed = *o.Speed
	}
	if o.ReverbMix != nil {
		c.ReverbMix = *o.ReverbMix
	}
	if o.Robotize != nil {
		c.Robotize = *o.Robotize
	}
	return c
}

// Normalize clamps a config into the ranges the synthesizer accepts.
// Non-positive pitch, shift, and speed fall back to sane defaults so a
// zero-valued user config still renders.
func (c Config) Normalize() Config {
	if c.Pitch <= 0 {
		c.Pitch = defaultPitch
	}
	if c.FormantShift <= 0 {
		c.FormantShift = 1.0
	}
	if c.Speed <= 0 {
		c.Speed = 1.0
	}
	c.Breathiness = clamp01(c.Breathiness)
	c.ReverbMix = clamp01(c.ReverbMix)
	c.Robotize = clamp01(c.Robotize)
	return c
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
