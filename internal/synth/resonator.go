package synth

import "math"

// Resonator is a two-pole digital resonator in the standard Klatt form.
// One instance models one formant; the synthesizer drives three of them
// in cascade. Not safe for concurrent use.
type Resonator struct {
	sampleRate float64

	b0, a1, a2 float64
	y1, y2     float64
}

// NewResonator returns a resonator configured as a pass-through until
// SetFormant is called.
func NewResonator(sampleRate int) *Resonator {
	return &Resonator{sampleRate: float64(sampleRate), b0: 1}
}

// SetFormant derives the filter coefficients for a formant at freq Hz
// with the given bandwidth. Frequencies at or below zero, or at or
// above Nyquist, degrade to a pass-through instead of producing NaNs.
func (r *Resonator) SetFormant(freq, bandwidth float64) {
	if freq <= 0 || freq >= r.sampleRate/2 {
		r.b0, r.a1, r.a2 = 1, 0, 0
		return
	}
	radius := math.Exp(-math.Pi * bandwidth / r.sampleRate)
	theta := 2 * math.Pi * freq / r.sampleRate
	r.a2 = -radius * radius
	r.a1 = 2 * radius * math.Cos(theta)
	r.b0 = 1 - radius
}

// Process filters one sample.
func (r *Resonator) Process(x float64) float64 {
	y := r.b0*x + r.a1*r.y1 + r.a2*r.y2
	r.y2 = r.y1
	r.y1 = y
	return y
}

// Reset zeroes the filter history. Call it before reusing the resonator
// for an unrelated signal, otherwise the tail of the previous utterance
// rings into the next one.
func (r *Resonator) Reset() {
	r.y1, r.y2 = 0, 0
}
