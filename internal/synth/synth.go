// Package synth renders phoneme event sequences into audio samples
// using cascade formant synthesis: a glottal or noise excitation driven
// through three two-pole resonators in series, framed and interpolated
// so formants glide across phoneme boundaries instead of jumping.
package synth

import (
	"math"
	"math/rand"

	"github.com/formantlabs/formant-core/internal/g2p"
	"github.com/formantlabs/formant-core/internal/voice"
)

const (
	// SampleRate is the output rate in Hz. The encoder and any playback
	// device must agree on it.
	SampleRate = 22050

	frameMs = 10

	// fadeSamples bounds the linear fade applied at both buffer ends.
	fadeSamples = 100

	// blendFraction is the share of an event's frames, at each end,
	// over which formants and amplitude are blended with the
	// neighboring event.
	blendFraction = 0.2

	robotizeHz = 30
)

// Synth owns the mutable per-utterance state: three cascade resonators
// and the excitation source. One Synth renders one utterance at a time;
// call Reset before reusing it for an unrelated one.
type Synth struct {
	sampleRate int
	frameLen   int
	r1, r2, r3 *Resonator
	src        *source
}

// NewSynth builds a synthesizer over the given random source.
func NewSynth(rng *rand.Rand) *Synth {
	return &Synth{
		sampleRate: SampleRate,
		frameLen:   SampleRate * frameMs / 1000,
		r1:         NewResonator(SampleRate),
		r2:         NewResonator(SampleRate),
		r3:         NewResonator(SampleRate),
		src:        newSource(rng, SampleRate),
	}
}

// Reset clears filter history and glottal phase so no audio from a
// previous utterance leaks into the next.
func (s *Synth) Reset() {
	s.r1.Reset()
	s.r2.Reset()
	s.r3.Reset()
	s.src.reset()
}

// frameParams is the interpolated acoustic target for one frame.
type frameParams struct {
	f1, f2, f3 float64
	amp        float64
}

// Render synthesizes the event sequence with the given voice. An empty
// sequence yields an empty buffer. Samples are float64 in [-1, 1].
func (s *Synth) Render(events []g2p.Event, cfg voice.Config) []float64 {
	if len(events) == 0 {
		return nil
	}
	cfg = cfg.Normalize()

	// Allocate frames per event, carrying the rounding remainder so
	// the total length tracks the summed durations to within a frame.
	frameCounts := make([]int, len(events))
	totalFrames := 0
	carry := 0
	for i, ev := range events {
		want := ev.Duration*s.sampleRate/1000 + carry
		n := (want + s.frameLen/2) / s.frameLen
		if n < 1 {
			n = 1
		}
		carry = want - n*s.frameLen
		frameCounts[i] = n
		totalFrames += n
	}

	out := make([]float64, 0, totalFrames*s.frameLen)
	frameIndex := 0
	for i, ev := range events {
		frames := frameCounts[i]
		for f := 0; f < frames; f++ {
			t := float64(f) / float64(frames)
			gpos := float64(frameIndex) / float64(totalFrames)
			frameIndex++

			p := s.frameTarget(events, i, t)

			f0 := 0.0
			if ev.Spec.Voiced {
				f0 = cfg.Pitch * (1 - 0.1*gpos)
			}

			s.r1.SetFormant(p.f1*cfg.FormantShift, ev.Spec.B1)
			s.r2.SetFormant(p.f2*cfg.FormantShift, ev.Spec.B2)
			s.r3.SetFormant(p.f3*cfg.FormantShift, ev.Spec.B3)

			for n := 0; n < s.frameLen; n++ {
				var exc float64
				switch {
				case p.amp <= 0:
					exc = 0
				case ev.Spec.Voiced:
					exc = p.amp * s.src.pulse(f0)
					if cfg.Breathiness > 0 {
						exc += p.amp * cfg.Breathiness * s.src.noise()
					}
				default:
					exc = p.amp * s.src.noise()
				}
				out = append(out, s.r3.Process(s.r2.Process(s.r1.Process(exc))))
			}
		}
	}

	normalize(out)
	fade(out)
	if cfg.Robotize > 0 {
		robotize(out, cfg.Robotize, s.sampleRate)
	}
	return out
}

// frameTarget interpolates formants and amplitude near event edges.
// The first 20% of an event blends in from the previous event and the
// last 20% blends out toward the next one, both on a smoothstep curve.
// Pauses are hard boundaries: a zero-amplitude event neither receives
// nor donates targets, so silence emits no excitation and neighboring
// formants never sweep toward 0 Hz.
func (s *Synth) frameTarget(events []g2p.Event, i int, t float64) frameParams {
	cur := events[i].Spec
	p := frameParams{f1: cur.F1, f2: cur.F2, f3: cur.F3, amp: cur.Amplitude}
	if cur.Amplitude <= 0 {
		return p
	}

	switch {
	case t < blendFraction && i > 0:
		prev := events[i-1].Spec
		if prev.Amplitude <= 0 {
			return p
		}
		w := smoothstep(t / blendFraction)
		p.f1 = prev.F1 + (cur.F1-prev.F1)*w
		p.f2 = prev.F2 + (cur.F2-prev.F2)*w
		p.f3 = prev.F3 + (cur.F3-prev.F3)*w
		p.amp = prev.Amplitude + (cur.Amplitude-prev.Amplitude)*w
	case t >= 1-blendFraction && i < len(events)-1:
		next := events[i+1].Spec
		if next.Amplitude <= 0 {
			return p
		}
		w := smoothstep((t - (1 - blendFraction)) / blendFraction)
		p.f1 = cur.F1 + (next.F1-cur.F1)*w
		p.f2 = cur.F2 + (next.F2-cur.F2)*w
		p.f3 = cur.F3 + (next.F3-cur.F3)*w
		p.amp = cur.Amplitude + (next.Amplitude-cur.Amplitude)*w
	}
	return p
}

func smoothstep(x float64) float64 {
	if x < 0 {
		x = 0
	} else if x > 1 {
		x = 1
	}
	return x * x * (3 - 2*x)
}

// normalize scales the buffer so its loudest sample hits full scale.
// All-silent buffers are left untouched.
func normalize(samples []float64) {
	peak := 0.0
	for _, v := range samples {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	if peak == 0 {
		return
	}
	scale := 1 / peak
	for i := range samples {
		samples[i] *= scale
	}
}

// fade applies a linear ramp over the first and last fadeSamples
// samples, capped at 10% of the buffer, to kill edge clicks.
func fade(samples []float64) {
	n := fadeSamples
	if limit := len(samples) / 10; n > limit {
		n = limit
	}
	for i := 0; i < n; i++ {
		g := float64(i) / float64(n)
		samples[i] *= g
		samples[len(samples)-1-i] *= g
	}
}

// robotize amplitude-modulates the buffer with a fixed 30 Hz cosine.
func robotize(samples []float64, depth float64, sampleRate int) {
	step := 2 * math.Pi * robotizeHz / float64(sampleRate)
	for i := range samples {
		samples[i] *= 1 - depth*0.5*(1-math.Cos(step*float64(i)))
	}
}
