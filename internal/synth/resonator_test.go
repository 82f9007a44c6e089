package synth

import (
	"math"
	"testing"
)

func TestResonatorPassThroughWhenDegenerate(t *testing.T) {
	for _, freq := range []float64{0, -100, SampleRate / 2, SampleRate} {
		r := NewResonator(SampleRate)
		r.SetFormant(freq, 60)
		for _, x := range []float64{1, -0.5, 0.25} {
			if got := r.Process(x); got != x {
				t.Errorf("freq %v: Process(%v) = %v, want pass-through", freq, x, got)
			}
		}
	}
}

func TestResonatorNewIsPassThrough(t *testing.T) {
	r := NewResonator(SampleRate)
	if got := r.Process(0.7); got != 0.7 {
		t.Fatalf("fresh resonator altered sample: %v", got)
	}
}

func TestResonatorImpulseRings(t *testing.T) {
	r := NewResonator(SampleRate)
	r.SetFormant(500, 60)

	out := make([]float64, 400)
	out[0] = r.Process(1)
	for i := 1; i < len(out); i++ {
		out[i] = r.Process(0)
	}

	ringing := false
	for _, v := range out[1:] {
		if math.Abs(v) > 1e-6 {
			ringing = true
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("unstable filter output: %v", v)
		}
	}
	if !ringing {
		t.Fatal("impulse response should ring after the impulse")
	}

	// A 60 Hz bandwidth decays slowly but the envelope must shrink.
	early := math.Abs(out[10]) + math.Abs(out[11]) + math.Abs(out[12])
	late := math.Abs(out[397]) + math.Abs(out[398]) + math.Abs(out[399])
	if late >= early {
		t.Errorf("impulse response should decay: early %v late %v", early, late)
	}
}

func TestResonatorReset(t *testing.T) {
	r := NewResonator(SampleRate)
	r.SetFormant(800, 80)
	for i := 0; i < 50; i++ {
		r.Process(1)
	}
	r.Reset()
	if got := r.Process(0); got != 0 {
		t.Fatalf("history must be cleared after Reset, got %v", got)
	}
}
