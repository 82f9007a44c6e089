package speech

import (
	"context"
	"fmt"

	"github.com/formantlabs/formant-core/internal/config"
	"github.com/formantlabs/formant-core/internal/g2p"
	"github.com/formantlabs/formant-core/internal/synth"
	"github.com/formantlabs/formant-core/internal/voice"
	"github.com/formantlabs/formant-core/internal/wavio"
)

// formantSynth renders requests with the built-in cascade formant
// engine. Each request gets a fresh engine so concurrent synthesis
// calls never share filter state.
type formantSynth struct {
	cfg config.SpeechConfig
}

// NewFormantSynth builds the default synthesizer backend.
func NewFormantSynth(cfg config.SpeechConfig) (Synthesizer, error) {
	if _, err := voice.Lookup(cfg.Voice); err != nil {
		return nil, fmt.Errorf("speech voice: %w", err)
	}
	return &formantSynth{cfg: cfg}, nil
}

func (f *formantSynth) Synthesize(ctx context.Context, req SynthRequest) (<-chan SynthChunk, <-chan error) {
	chunks := make(chan SynthChunk)
	errs := make(chan error, 1)
	go func() {
		defer close(chunks)
		defer close(errs)

		name := req.Voice
		if name == "" {
			name = f.cfg.Voice
		}
		v, err := voice.Lookup(name)
		if err != nil {
			errs <- err
			return
		}
		if req.Overrides != nil {
			v = v.Apply(*req.Overrides)
		}
		v = v.Normalize()

		langCode := req.Language
		if langCode == "" {
			langCode = f.cfg.Language
		}

		opts := []synth.Option{synth.WithVoice(v)}
		if f.cfg.Seed != 0 {
			opts = append(opts, synth.WithSeed(f.cfg.Seed))
		}
		engine := synth.NewEngine(opts...)

		samples := engine.Synthesize(req.Text, g2p.ParseLang(langCode))
		if v.ReverbMix > 0 {
			samples = ApplyReverb(samples, v.ReverbMix)
		}

		chunkSamples := f.cfg.ChunkDurationMS * synth.SampleRate / 1000
		if chunkSamples <= 0 {
			chunkSamples = synth.SampleRate
		}

		sequence := 0
		for start := 0; start < len(samples); start += chunkSamples {
			end := start + chunkSamples
			if end > len(samples) {
				end = len(samples)
			}
			chunk := SynthChunk{
				SessionID:  req.SessionID,
				Sequence:   sequence,
				SampleRate: synth.SampleRate,
				Channels:   1,
				PCM:        wavio.ToPCM16(samples[start:end]),
				Final:      end == len(samples),
			}
			select {
			case chunks <- chunk:
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			}
			sequence++
		}
		if len(samples) == 0 {
			final := SynthChunk{
				SessionID:  req.SessionID,
				SampleRate: synth.SampleRate,
				Channels:   1,
				PCM:        []byte{},
				Final:      true,
			}
			select {
			case chunks <- final:
			case <-ctx.Done():
				errs <- ctx.Err()
			}
		}
	}()
	return chunks, errs
}

// ApplyReverb mixes a single feedback comb into the buffer. It runs at
// the output boundary only; the synthesis core stays dry.
func ApplyReverb(samples []float64, mix float64) []float64 {
	if len(samples) == 0 {
		return samples
	}
	const (
		delayMS  = 60
		feedback = 0.45
	)
	delay := synth.SampleRate * delayMS / 1000

	wet := make([]float64, len(samples))
	for i := range samples {
		wet[i] = samples[i]
		if i >= delay {
			wet[i] += wet[i-delay] * feedback
		}
	}

	out := make([]float64, len(samples))
	for i := range samples {
		v := (1-mix)*samples[i] + mix*wet[i]
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		out[i] = v
	}
	return out
}
