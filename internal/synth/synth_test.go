package synth

import (
	"math"
	"math/rand"
	"testing"

	"github.com/formantlabs/formant-core/internal/g2p"
	"github.com/formantlabs/formant-core/internal/phoneme"
	"github.com/formantlabs/formant-core/internal/voice"
)

func peak(samples []float64) float64 {
	p := 0.0
	for _, v := range samples {
		if a := math.Abs(v); a > p {
			p = a
		}
	}
	return p
}

func equalSamples(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestEmptyTextYieldsEmptyBuffer(t *testing.T) {
	e := NewEngine(WithSeed(1))
	if out := e.Synthesize("", g2p.LangEnglish); len(out) != 0 {
		t.Fatalf("empty text produced %d samples", len(out))
	}
	if out := e.Synthesize("   ", g2p.LangAuto); len(out) != 0 {
		t.Fatalf("blank text produced %d samples", len(out))
	}
}

func TestPeakBound(t *testing.T) {
	e := NewEngine(WithSeed(1))
	out := e.Synthesize("hello", g2p.LangEnglish)
	if len(out) == 0 {
		t.Fatal("empty output")
	}
	p := peak(out)
	if p > 1.0 {
		t.Errorf("peak %v exceeds 1.0", p)
	}
	if p < 0.85 {
		t.Errorf("peak %v below the normalization ceiling", p)
	}
}

func TestTimingTracksEventDurations(t *testing.T) {
	e := NewEngine(WithSeed(1))
	cfg := e.Voice()
	events := g2p.TextToPhonemes("hello there", g2p.LangEnglish, cfg.Speed)
	want := 0
	for _, ev := range events {
		want += ev.Duration * SampleRate / 1000
	}
	out := e.Synthesize("hello there", g2p.LangEnglish)
	frameLen := SampleRate * frameMs / 1000
	if diff := len(out) - want; diff < -frameLen || diff > frameLen {
		t.Errorf("length %d, want %d within one frame (%d)", len(out), want, frameLen)
	}
}

func TestSeededDeterminism(t *testing.T) {
	a := NewEngine(WithSeed(42)).Synthesize("hello", g2p.LangEnglish)
	b := NewEngine(WithSeed(42)).Synthesize("hello", g2p.LangEnglish)
	if !equalSamples(a, b) {
		t.Fatal("same seed, text, and voice must give identical buffers")
	}
}

func TestVoicedPathDeterminism(t *testing.T) {
	// All-voiced Korean input with zero breathiness never touches the
	// noise source, pauses included, so consecutive calls on one
	// engine must match on every sample.
	e := NewEngine(WithSeed(1))
	a := e.Synthesize("아야", g2p.LangKorean)
	b := e.Synthesize("아야", g2p.LangKorean)
	if !equalSamples(a, b) {
		t.Fatal("voiced-only synthesis must be repeatable on one engine")
	}
}

// eventAt maps a sample index back onto the event whose frames cover
// it, replaying the synthesizer's frame allocation.
func eventAt(events []g2p.Event, index int) (g2p.Event, bool) {
	frameLen := SampleRate * frameMs / 1000
	pos := 0
	carry := 0
	for _, ev := range events {
		want := ev.Duration*SampleRate/1000 + carry
		n := (want + frameLen/2) / frameLen
		if n < 1 {
			n = 1
		}
		carry = want - n*frameLen
		pos += n * frameLen
		if index < pos {
			return ev, true
		}
	}
	return g2p.Event{}, false
}

func TestPeakLandsInSoundingEvent(t *testing.T) {
	e := NewEngine(WithSeed(1))
	for _, text := range []string{"hello", "아야"} {
		out := e.Synthesize(text, g2p.LangAuto)
		if len(out) == 0 {
			t.Fatalf("%s: empty output", text)
		}
		peakIdx := 0
		for i, v := range out {
			if math.Abs(v) > math.Abs(out[peakIdx]) {
				peakIdx = i
			}
		}
		events := g2p.TextToPhonemes(text, g2p.LangAuto, e.Voice().Speed)
		ev, ok := eventAt(events, peakIdx)
		if !ok {
			t.Fatalf("%s: peak index %d beyond event layout", text, peakIdx)
		}
		if ev.Spec.Amplitude <= 0 {
			t.Errorf("%s: normalization peak at sample %d sits in silent event %s", text, peakIdx, ev.Spec.Symbol)
		}
	}
}

func TestPausesStaySilent(t *testing.T) {
	// Frames belonging to a pause must emit exact zeros even when the
	// neighboring events are loud.
	e := NewEngine(WithSeed(1))
	out := e.Synthesize("no, go", g2p.LangEnglish)
	events := g2p.TextToPhonemes("no, go", g2p.LangEnglish, e.Voice().Speed)
	for i, v := range out {
		if v == 0 {
			continue
		}
		ev, ok := eventAt(events, i)
		if !ok {
			t.Fatalf("sample %d beyond event layout", i)
		}
		if ev.Spec.Amplitude <= 0 {
			t.Fatalf("pause event %s has signal %v at sample %d", ev.Spec.Symbol, v, i)
		}
	}
}

func TestResetPreventsLeakage(t *testing.T) {
	// Purely voiced events never touch the noise source, so a reset
	// synth must match a fresh one sample for sample.
	cfg := voice.Default()
	events := []g2p.Event{{Spec: phoneme.Lookup("AA"), Duration: 120}}

	s := NewSynth(rand.New(rand.NewSource(1)))
	s.Render([]g2p.Event{{Spec: phoneme.Lookup("IY"), Duration: 120}}, cfg)
	s.Reset()
	reused := s.Render(events, cfg)

	fresh := NewSynth(rand.New(rand.NewSource(1))).Render(events, cfg)
	if !equalSamples(reused, fresh) {
		t.Fatal("reset synth must render like a fresh one")
	}
}

func TestZeroDurationEventGetsOneFrame(t *testing.T) {
	events := []g2p.Event{{Spec: phoneme.Lookup("AA"), Duration: 0}}
	out := NewSynth(rand.New(rand.NewSource(1))).Render(events, voice.Default())
	frameLen := SampleRate * frameMs / 1000
	if len(out) != frameLen {
		t.Fatalf("got %d samples, want one frame (%d)", len(out), frameLen)
	}
}

func TestSilenceConsumesFrames(t *testing.T) {
	events := []g2p.Event{{Spec: phoneme.Lookup(phoneme.SymSilence), Duration: 100}}
	out := NewSynth(rand.New(rand.NewSource(1))).Render(events, voice.Default())
	if len(out) == 0 {
		t.Fatal("silence must still occupy its duration")
	}
	for i, v := range out {
		if v != 0 {
			t.Fatalf("silence frame has signal at sample %d: %v", i, v)
		}
	}
}

func TestKoreanAnnyeongRenders(t *testing.T) {
	e := NewEngine(WithSeed(1))
	out := e.Synthesize("안녕", g2p.LangKorean)
	if len(out) == 0 {
		t.Fatal("empty output")
	}
	events := g2p.TextToPhonemes("안녕", g2p.LangKorean, e.Voice().Speed)
	want := 0
	for _, ev := range events {
		want += ev.Duration * SampleRate / 1000
	}
	frameLen := SampleRate * frameMs / 1000
	if diff := len(out) - want; diff < -frameLen || diff > frameLen {
		t.Errorf("length %d, want %d within one frame", len(out), want)
	}
}

func TestGladosHelloEnvelope(t *testing.T) {
	e := NewEngine(WithSeed(1))
	if err := e.SetVoice("glados"); err != nil {
		t.Fatal(err)
	}
	out := e.Synthesize("hello", g2p.LangEnglish)
	if len(out) == 0 {
		t.Fatal("empty output")
	}
	if p := peak(out); p > 1.0 || p == 0 {
		t.Errorf("peak out of range: %v", p)
	}
	if out[0] != 0 || out[len(out)-1] != 0 {
		t.Errorf("fade must zero both buffer ends: first %v last %v", out[0], out[len(out)-1])
	}
}

// estimatePeriod finds the autocorrelation peak in samples over the
// given lag window.
func estimatePeriod(seg []float64, minLag, maxLag int) int {
	best, bestVal := minLag, math.Inf(-1)
	for lag := minLag; lag <= maxLag; lag++ {
		sum := 0.0
		for i := 0; i+lag < len(seg); i++ {
			sum += seg[i] * seg[i+lag]
		}
		if sum > bestVal {
			bestVal, best = sum, lag
		}
	}
	return best
}

func TestPitchDeclination(t *testing.T) {
	// One long vowel at 175 Hz: pitch should glide down roughly 10%
	// across the utterance, so the period grows toward the end.
	events := []g2p.Event{{Spec: phoneme.Lookup("AA"), Duration: 3000}}
	cfg := voice.Config{Name: "test", Pitch: 175, FormantShift: 1, Speed: 1}
	out := NewSynth(rand.New(rand.NewSource(1))).Render(events, cfg)
	if len(out) < 40000 {
		t.Fatalf("unexpectedly short buffer: %d", len(out))
	}

	early := estimatePeriod(out[2000:6000], 100, 180)
	late := estimatePeriod(out[len(out)-6000:len(out)-2000], 100, 180)
	if late <= early {
		t.Errorf("pitch should decline: early period %d, late period %d", early, late)
	}
}

func TestRobotizeDeepensEnvelopeNulls(t *testing.T) {
	render := func(robotize float64) []float64 {
		cfg := voice.Default()
		cfg.Robotize = robotize
		e := NewEngine(WithSeed(1), WithVoice(cfg))
		return e.Synthesize("아야어여", g2p.LangKorean)
	}
	plain := render(0)
	buzzy := render(1)
	if len(plain) != len(buzzy) {
		t.Fatalf("length changed with robotize: %d vs %d", len(plain), len(buzzy))
	}

	quiet := func(samples []float64) int {
		n := 0
		for _, v := range samples {
			if math.Abs(v) < 0.02 {
				n++
			}
		}
		return n
	}
	if q0, q1 := quiet(plain), quiet(buzzy); q1 <= q0 {
		t.Errorf("robotize must push more samples toward zero: %d vs %d", q0, q1)
	}
}

func TestSetVoice(t *testing.T) {
	e := NewEngine(WithSeed(1))
	if err := e.SetVoice("nope"); err == nil {
		t.Fatal("expected error for unknown voice")
	}
	if err := e.SetVoice("female"); err != nil {
		t.Fatal(err)
	}
	if e.Voice().Name != "female" {
		t.Errorf("active voice = %q", e.Voice().Name)
	}

	e.SetVoiceConfig(voice.Config{Name: "custom", Pitch: -1, Robotize: 3})
	got := e.Voice()
	if got.Pitch <= 0 || got.Robotize > 1 {
		t.Errorf("custom config not normalized: %+v", got)
	}
}
