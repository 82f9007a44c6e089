// Package g2p converts raw text into an ordered phoneme event sequence.
// It handles English (dictionary plus letter rules), Korean (Unicode jamo
// decomposition with coda neutralization) and mixed-script input.
package g2p

import (
	"strings"
	"unicode"

	"github.com/formantlabs/formant-core/internal/phoneme"
)

// Lang selects the conversion path.
type Lang string

const (
	LangAuto    Lang = "auto"
	LangKorean  Lang = "ko"
	LangEnglish Lang = "en"
)

// ParseLang maps a language code onto a supported Lang. Unsupported or
// ambiguous codes fall back to auto-detection rather than failing.
func ParseLang(code string) Lang {
	switch Lang(strings.ToLower(strings.TrimSpace(code))) {
	case LangKorean:
		return LangKorean
	case LangEnglish:
		return LangEnglish
	default:
		return LangAuto
	}
}

// Event is one phoneme occurrence within an utterance: the acoustic spec
// plus its rate-resolved duration and position. Events are built per
// utterance and discarded after synthesis.
type Event struct {
	Spec     phoneme.Spec
	Duration int // resolved duration, ms
	Index    int
}

// TextToPhonemes converts text into phoneme events. rate is the speaking
// speed multiplier (>0); durations are nominal table values divided by
// rate. The conversion is deterministic: identical text, lang and rate
// always produce the identical sequence. Empty text yields nil.
func TextToPhonemes(text string, lang Lang, rate float64) []Event {
	if rate <= 0 {
		rate = 1
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}

	if lang != LangKorean && lang != LangEnglish {
		lang = Detect(text)
	}

	var symbols []sym
	switch lang {
	case LangKorean:
		symbols = koreanRun(text)
	case LangEnglish:
		symbols = englishRun(text)
	default:
		// Mixed script: convert each maximal single-script run.
		for _, run := range splitScriptRuns(text) {
			if run.korean {
				symbols = append(symbols, koreanRun(run.text)...)
			} else {
				symbols = append(symbols, englishRun(run.text)...)
			}
		}
	}
	if len(symbols) == 0 {
		return nil
	}
	if symbols[len(symbols)-1].name != phoneme.SymPause {
		symbols = append(symbols, sym{name: phoneme.SymPause})
	}

	events := make([]Event, 0, len(symbols))
	for _, s := range symbols {
		spec := phoneme.Lookup(s.name)
		dur := int(float64(spec.Duration) / rate)
		if s.halved {
			dur /= 2
		}
		if dur < 1 {
			dur = 1
		}
		events = append(events, Event{Spec: spec, Duration: dur, Index: len(events)})
	}
	return events
}

// sym is a phoneme symbol with coda duration marking.
type sym struct {
	name   string
	halved bool
}

type scriptRun struct {
	text   string
	korean bool
}

// splitScriptRuns segments mixed input into maximal single-script runs.
// Whitespace and punctuation stay attached to the preceding run; leading
// neutral characters join the first scripted run.
func splitScriptRuns(text string) []scriptRun {
	var runs []scriptRun
	var buf strings.Builder
	const (
		scriptNone = iota
		scriptHangul
		scriptLatin
	)
	current := scriptNone

	flush := func() {
		if buf.Len() > 0 {
			runs = append(runs, scriptRun{text: buf.String(), korean: current == scriptHangul})
			buf.Reset()
		}
	}

	for _, r := range text {
		s := scriptNone
		switch {
		case IsHangulSyllable(r):
			s = scriptHangul
		case unicode.IsLetter(r) && r < unicode.MaxASCII:
			s = scriptLatin
		}
		if s == scriptNone {
			buf.WriteRune(r)
			continue
		}
		if current == scriptNone {
			current = s
		} else if s != current {
			flush()
			current = s
		}
		buf.WriteRune(r)
	}
	flush()
	return runs
}

// koreanRun converts one run of (mostly) Hangul text. The onset ㅇ is
// silent and skipped; the final consonant is neutralized and its duration
// halved, since codas are acoustically shorter than onsets.
func koreanRun(text string) []sym {
	var out []sym
	for _, r := range text {
		if initial, vowel, final, ok := DecomposeSyllable(r); ok {
			if s := initialSymbols[initial]; s != "" {
				out = append(out, sym{name: s})
			}
			out = append(out, sym{name: vowelSymbols[vowel]})
			if final != 0 {
				coda := NeutralizeCoda(finalJamo[final])
				out = append(out, sym{name: codaSymbols[coda], halved: true})
			}
			continue
		}
		if s, ok := punctuationSym(r); ok {
			out = append(out, sym{name: s})
		}
	}
	return out
}

// englishRun lowercases and tokenizes one run of Latin text, inserting
// SIL after every word and mapping punctuation like the Korean path.
func englishRun(text string) []sym {
	var out []sym
	var word strings.Builder

	flushWord := func() {
		if word.Len() == 0 {
			return
		}
		for _, p := range englishWord(word.String()) {
			out = append(out, sym{name: p})
		}
		out = append(out, sym{name: phoneme.SymSilence})
		word.Reset()
	}

	for _, r := range strings.ToLower(text) {
		switch {
		case (r >= 'a' && r <= 'z') || r == '\'':
			word.WriteRune(r)
		case unicode.IsSpace(r):
			// The SIL after the word already covers the gap.
			flushWord()
		default:
			flushWord()
			if s, ok := punctuationSym(r); ok {
				out = append(out, sym{name: s})
			}
		}
	}
	flushWord()
	return out
}

func punctuationSym(r rune) (string, bool) {
	switch r {
	case ' ', '\t', '\n', '\r':
		return phoneme.SymSilence, true
	case '.', '!', '?':
		return phoneme.SymPause, true
	case ',', ';', ':':
		return phoneme.SymSilence, true
	}
	return "", false
}

// Detect reports the language of text for the auto path: Korean when it
// contains Hangul and no Latin letters, English when the reverse, and
// auto (mixed) when both scripts appear.
func Detect(text string) Lang {
	var hasHangul, hasLatin bool
	for _, r := range text {
		if IsHangulSyllable(r) {
			hasHangul = true
		} else if unicode.IsLetter(r) && r < unicode.MaxASCII {
			hasLatin = true
		}
	}
	switch {
	case hasHangul && !hasLatin:
		return LangKorean
	case hasLatin && !hasHangul:
		return LangEnglish
	default:
		return LangAuto
	}
}
