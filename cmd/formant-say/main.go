// Command formant-say renders text to a WAV file offline, without a
// broker or daemon. Useful for auditioning voices and debugging the
// synthesis pipeline.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/formantlabs/formant-core/internal/g2p"
	"github.com/formantlabs/formant-core/internal/speech"
	"github.com/formantlabs/formant-core/internal/synth"
	"github.com/formantlabs/formant-core/internal/voice"
	"github.com/formantlabs/formant-core/internal/wavio"
)

var version = "0.1.0-dev"

func main() {
	var (
		text        string
		lang        string
		voiceName   string
		output      string
		seed        int64
		pitch       float64
		speed       float64
		robotize    float64
		breathiness float64
		reverb      float64
		listVoices  bool
		showVersion bool
	)

	flag.StringVar(&text, "text", "", "Text to speak (falls back to remaining arguments)")
	flag.StringVar(&lang, "lang", "auto", "Language: auto, en, or ko")
	flag.StringVar(&voiceName, "voice", voice.DefaultName, "Voice preset name")
	flag.StringVar(&output, "o", "out.wav", "Output WAV path")
	flag.Int64Var(&seed, "seed", 0, "Noise seed (0 = random)")
	flag.Float64Var(&pitch, "pitch", 0, "Override base pitch in Hz")
	flag.Float64Var(&speed, "speed", 0, "Override speaking speed multiplier")
	flag.Float64Var(&robotize, "robotize", -1, "Override robotize depth 0..1")
	flag.Float64Var(&breathiness, "breathiness", -1, "Override breathiness 0..1")
	flag.Float64Var(&reverb, "reverb", -1, "Override reverb mix 0..1")
	flag.BoolVar(&listVoices, "list-voices", false, "List voice presets and exit")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Println(version)
		return
	}
	if listVoices {
		for _, name := range voice.Names() {
			fmt.Println(name)
		}
		return
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if text == "" {
		text = strings.Join(flag.Args(), " ")
	}
	if strings.TrimSpace(text) == "" {
		logger.Error("nothing to say: pass -text or trailing arguments")
		os.Exit(2)
	}

	v, err := voice.Lookup(voiceName)
	if err != nil {
		logger.Error("voice lookup failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if pitch > 0 {
		v.Pitch = pitch
	}
	if speed > 0 {
		v.Speed = speed
	}
	if robotize >= 0 {
		v.Robotize = robotize
	}
	if breathiness >= 0 {
		v.Breathiness = breathiness
	}
	if reverb >= 0 {
		v.ReverbMix = reverb
	}

	opts := []synth.Option{synth.WithVoice(v)}
	if seed != 0 {
		opts = append(opts, synth.WithSeed(seed))
	}
	engine := synth.NewEngine(opts...)

	samples := engine.Synthesize(text, g2p.ParseLang(lang))
	if v.ReverbMix > 0 {
		samples = speech.ApplyReverb(samples, v.ReverbMix)
	}

	if err := wavio.WriteFile(output, samples, synth.SampleRate); err != nil {
		logger.Error("failed to write wav", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("rendered",
		slog.String("output", output),
		slog.String("voice", v.Name),
		slog.Int("samples", len(samples)),
		slog.Float64("seconds", float64(len(samples))/float64(synth.SampleRate)))
}
