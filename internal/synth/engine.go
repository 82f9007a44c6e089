package synth

import (
	"math/rand"
	"time"

	"github.com/formantlabs/formant-core/internal/g2p"
	"github.com/formantlabs/formant-core/internal/voice"
)

// Engine is the text-in, samples-out entry point. It bundles the G2P
// converter, the active voice, and one Synth instance. An Engine is not
// safe for concurrent use; give each goroutine its own.
type Engine struct {
	voice voice.Config
	synth *Synth
}

// Option configures a new Engine.
type Option func(*engineOptions)

type engineOptions struct {
	seed     int64
	seeded   bool
	voice    voice.Config
	voiceSet bool
}

// WithSeed fixes the noise source so unvoiced synthesis is
// reproducible. Without it the engine seeds from the clock.
func WithSeed(seed int64) Option {
	return func(o *engineOptions) {
		o.seed = seed
		o.seeded = true
	}
}

// WithVoice starts the engine on the given config instead of the
// default preset.
func WithVoice(cfg voice.Config) Option {
	return func(o *engineOptions) {
		o.voice = cfg
		o.voiceSet = true
	}
}

// NewEngine builds an engine with the default voice.
func NewEngine(opts ...Option) *Engine {
	var o engineOptions
	for _, opt := range opts {
		opt(&o)
	}
	seed := o.seed
	if !o.seeded {
		seed = time.Now().UnixNano()
	}
	v := voice.Default()
	if o.voiceSet {
		v = o.voice.Normalize()
	}
	return &Engine{
		voice: v,
		synth: NewSynth(rand.New(rand.NewSource(seed))),
	}
}

// SetVoice switches the active preset by catalog name.
func (e *Engine) SetVoice(name string) error {
	cfg, err := voice.Lookup(name)
	if err != nil {
		return err
	}
	e.voice = cfg
	return nil
}

// SetVoiceConfig installs a caller-supplied config, normalized into the
// ranges the synthesizer accepts.
func (e *Engine) SetVoiceConfig(cfg voice.Config) {
	e.voice = cfg.Normalize()
}

// Voice returns the active config.
func (e *Engine) Voice() voice.Config {
	return e.voice
}

// Reset clears synthesis state between unrelated utterances. Synthesize
// calls it internally; pooled engines reused across callers should call
// it as well.
func (e *Engine) Reset() {
	e.synth.Reset()
}

// Synthesize converts text to samples at SampleRate Hz. Empty or
// unpronounceable text yields an empty buffer, never an error.
func (e *Engine) Synthesize(text string, lang g2p.Lang) []float64 {
	events := g2p.TextToPhonemes(text, lang, e.voice.Speed)
	e.synth.Reset()
	return e.synth.Render(events, e.voice)
}
