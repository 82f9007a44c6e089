package synth

import (
	"math"
	"math/rand"
)

// source generates the raw excitation for the resonator cascade: a
// glottal-flow-derivative pulse train for voiced frames and uniform
// noise for unvoiced ones. The random source is injected so tests can
// seed it.
type source struct {
	rng        *rand.Rand
	sampleRate float64

	phase float64
	last  float64
}

func newSource(rng *rand.Rand, sampleRate int) *source {
	return &source{rng: rng, sampleRate: float64(sampleRate)}
}

// pulse emits the next voiced excitation sample at fundamental f0. The
// underlying waveform has three phases over one pitch period: a raised
// cosine rise to the peak, a cosine fall through zero, and a closed
// phase that snaps negative and decays back toward the baseline. The
// emitted value is the first difference of that waveform, which carries
// the spectral tilt of a real glottal flow derivative. f0 at or below
// zero emits silence and rewinds the pulse state.
func (s *source) pulse(f0 float64) float64 {
	if f0 <= 0 {
		s.phase = 0
		s.last = 0
		return 0
	}
	period := s.sampleRate / f0
	if s.phase >= period {
		s.phase = math.Mod(s.phase, period)
	}

	t := s.phase / period
	var v float64
	switch {
	case t < 0.4:
		v = 0.5 * (1 - math.Cos(math.Pi*t/0.4))
	case t < 0.5:
		v = math.Cos(math.Pi * (t - 0.4) / 0.2)
	default:
		v = -0.2 * math.Exp(-6*(t-0.5)/0.5)
	}

	out := v - s.last
	s.last = v
	s.phase++
	return out
}

// noise emits one uniform sample in [-0.5, 0.5].
func (s *source) noise() float64 {
	return s.rng.Float64() - 0.5
}

func (s *source) reset() {
	s.phase = 0
	s.last = 0
}
