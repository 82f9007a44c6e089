// Package phoneme holds the static acoustic tables that drive the formant
// synthesizer: per-phoneme formant frequencies, bandwidths, nominal
// durations and source amplitudes for English (ARPAbet) and Korean
// (jamo-derived) phonemes.
package phoneme

// Spec is the immutable acoustic definition of one phoneme.
//
// The three amplitude/voicing combinations encode the source type:
// amplitude 0 with Voiced=false is silence, amplitude > 0 with
// Voiced=false is a noise-excited fricative or stop, and amplitude > 0
// with Voiced=true is a pulse-excited sonorant.
type Spec struct {
	Symbol string

	F1, F2, F3 float64 // formant center frequencies, Hz
	B1, B2, B3 float64 // formant bandwidths, Hz

	Duration  int     // nominal duration, ms
	Amplitude float64 // source amplitude, 0..1
	Voiced    bool
}

// Well-known pause symbols. SIL is a short inter-word pause, PAU a longer
// sentence-boundary pause.
const (
	SymSilence = "SIL"
	SymPause   = "PAU"
)

// Lookup returns the Spec for symbol. Unknown symbols resolve to the SIL
// entry so the lookup is total and synthesis never fails on bad input.
func Lookup(symbol string) Spec {
	if spec, ok := table[symbol]; ok {
		return spec
	}
	return table[SymSilence]
}

// Known reports whether symbol has a table entry of its own.
func Known(symbol string) bool {
	_, ok := table[symbol]
	return ok
}

// Symbols returns every symbol in the table. Order is unspecified.
func Symbols() []string {
	out := make([]string, 0, len(table))
	for sym := range table {
		out = append(out, sym)
	}
	return out
}

// English formant values follow Klatt (1980) and Peterson & Barney (1952).
var table = map[string]Spec{
	// Vowels (monophthongs)
	"IY": {Symbol: "IY", F1: 270, F2: 2290, F3: 3010, B1: 60, B2: 90, B3: 150, Duration: 120, Amplitude: 1.0, Voiced: true},
	"IH": {Symbol: "IH", F1: 390, F2: 1990, F3: 2550, B1: 60, B2: 90, B3: 150, Duration: 100, Amplitude: 1.0, Voiced: true},
	"EH": {Symbol: "EH", F1: 530, F2: 1840, F3: 2480, B1: 60, B2: 90, B3: 150, Duration: 100, Amplitude: 1.0, Voiced: true},
	"EY": {Symbol: "EY", F1: 440, F2: 2100, F3: 2600, B1: 60, B2: 90, B3: 150, Duration: 140, Amplitude: 1.0, Voiced: true},
	"AE": {Symbol: "AE", F1: 660, F2: 1720, F3: 2410, B1: 60, B2: 90, B3: 150, Duration: 120, Amplitude: 1.0, Voiced: true},
	"AA": {Symbol: "AA", F1: 730, F2: 1090, F3: 2440, B1: 60, B2: 90, B3: 150, Duration: 120, Amplitude: 1.0, Voiced: true},
	"AO": {Symbol: "AO", F1: 570, F2: 840, F3: 2410, B1: 60, B2: 90, B3: 150, Duration: 120, Amplitude: 1.0, Voiced: true},
	"OW": {Symbol: "OW", F1: 490, F2: 1350, F3: 2400, B1: 60, B2: 90, B3: 150, Duration: 140, Amplitude: 1.0, Voiced: true},
	"UH": {Symbol: "UH", F1: 440, F2: 1020, F3: 2240, B1: 60, B2: 90, B3: 150, Duration: 100, Amplitude: 1.0, Voiced: true},
	"UW": {Symbol: "UW", F1: 300, F2: 870, F3: 2240, B1: 60, B2: 90, B3: 150, Duration: 120, Amplitude: 1.0, Voiced: true},
	"AH": {Symbol: "AH", F1: 640, F2: 1190, F3: 2390, B1: 60, B2: 90, B3: 150, Duration: 100, Amplitude: 1.0, Voiced: true},
	"AX": {Symbol: "AX", F1: 500, F2: 1500, F3: 2500, B1: 60, B2: 90, B3: 150, Duration: 60, Amplitude: 0.8, Voiced: true},

	// R-colored vowels
	"ER":  {Symbol: "ER", F1: 490, F2: 1350, F3: 1690, B1: 60, B2: 90, B3: 150, Duration: 120, Amplitude: 1.0, Voiced: true},
	"AXR": {Symbol: "AXR", F1: 500, F2: 1300, F3: 1700, B1: 60, B2: 90, B3: 150, Duration: 80, Amplitude: 0.8, Voiced: true},

	// Diphthongs (steady-state targets; transitions come from frame blending)
	"AY": {Symbol: "AY", F1: 730, F2: 1090, F3: 2440, B1: 60, B2: 90, B3: 150, Duration: 180, Amplitude: 1.0, Voiced: true},
	"AW": {Symbol: "AW", F1: 730, F2: 1090, F3: 2440, B1: 60, B2: 90, B3: 150, Duration: 180, Amplitude: 1.0, Voiced: true},
	"OY": {Symbol: "OY", F1: 570, F2: 840, F3: 2410, B1: 60, B2: 90, B3: 150, Duration: 180, Amplitude: 1.0, Voiced: true},

	// Voiced stops
	"B": {Symbol: "B", F1: 200, F2: 1100, F3: 2150, B1: 60, B2: 90, B3: 150, Duration: 60, Amplitude: 0.9, Voiced: true},
	"D": {Symbol: "D", F1: 200, F2: 1600, F3: 2600, B1: 60, B2: 90, B3: 150, Duration: 60, Amplitude: 0.9, Voiced: true},
	"G": {Symbol: "G", F1: 200, F2: 1990, F3: 2850, B1: 60, B2: 90, B3: 150, Duration: 60, Amplitude: 0.9, Voiced: true},

	// Unvoiced stops
	"P": {Symbol: "P", F1: 200, F2: 1100, F3: 2150, B1: 200, B2: 200, B3: 200, Duration: 80, Amplitude: 0.5, Voiced: false},
	"T": {Symbol: "T", F1: 200, F2: 1600, F3: 2600, B1: 200, B2: 200, B3: 200, Duration: 80, Amplitude: 0.5, Voiced: false},
	"K": {Symbol: "K", F1: 200, F2: 1990, F3: 2850, B1: 200, B2: 200, B3: 200, Duration: 80, Amplitude: 0.5, Voiced: false},

	// Voiced fricatives
	"V":  {Symbol: "V", F1: 220, F2: 1100, F3: 2080, B1: 60, B2: 90, B3: 150, Duration: 80, Amplitude: 0.8, Voiced: true},
	"DH": {Symbol: "DH", F1: 200, F2: 1600, F3: 2600, B1: 60, B2: 90, B3: 150, Duration: 60, Amplitude: 0.8, Voiced: true},
	"Z":  {Symbol: "Z", F1: 200, F2: 1600, F3: 2600, B1: 60, B2: 90, B3: 150, Duration: 80, Amplitude: 0.8, Voiced: true},
	"ZH": {Symbol: "ZH", F1: 200, F2: 1900, F3: 2500, B1: 60, B2: 90, B3: 150, Duration: 80, Amplitude: 0.8, Voiced: true},

	// Unvoiced fricatives
	"F":  {Symbol: "F", F1: 220, F2: 1100, F3: 2080, B1: 200, B2: 200, B3: 200, Duration: 100, Amplitude: 0.6, Voiced: false},
	"TH": {Symbol: "TH", F1: 200, F2: 1600, F3: 2600, B1: 200, B2: 200, B3: 200, Duration: 80, Amplitude: 0.5, Voiced: false},
	"S":  {Symbol: "S", F1: 200, F2: 1600, F3: 2600, B1: 200, B2: 200, B3: 200, Duration: 100, Amplitude: 0.7, Voiced: false},
	"SH": {Symbol: "SH", F1: 200, F2: 1900, F3: 2500, B1: 200, B2: 200, B3: 200, Duration: 100, Amplitude: 0.7, Voiced: false},
	"HH": {Symbol: "HH", F1: 500, F2: 1500, F3: 2500, B1: 200, B2: 200, B3: 200, Duration: 60, Amplitude: 0.4, Voiced: false},

	// Affricates
	"CH": {Symbol: "CH", F1: 200, F2: 1900, F3: 2500, B1: 200, B2: 200, B3: 200, Duration: 120, Amplitude: 0.6, Voiced: false},
	"JH": {Symbol: "JH", F1: 200, F2: 1900, F3: 2500, B1: 60, B2: 90, B3: 150, Duration: 100, Amplitude: 0.8, Voiced: true},

	// Nasals
	"M":  {Symbol: "M", F1: 270, F2: 1000, F3: 2200, B1: 60, B2: 90, B3: 150, Duration: 80, Amplitude: 0.9, Voiced: true},
	"N":  {Symbol: "N", F1: 270, F2: 1600, F3: 2600, B1: 60, B2: 90, B3: 150, Duration: 80, Amplitude: 0.9, Voiced: true},
	"NG": {Symbol: "NG", F1: 270, F2: 1990, F3: 2850, B1: 60, B2: 90, B3: 150, Duration: 80, Amplitude: 0.9, Voiced: true},

	// Liquids
	"L": {Symbol: "L", F1: 310, F2: 1050, F3: 2880, B1: 60, B2: 90, B3: 150, Duration: 80, Amplitude: 0.9, Voiced: true},
	"R": {Symbol: "R", F1: 310, F2: 1060, F3: 1380, B1: 60, B2: 90, B3: 150, Duration: 80, Amplitude: 0.9, Voiced: true},

	// Glides
	"W": {Symbol: "W", F1: 290, F2: 610, F3: 2150, B1: 60, B2: 90, B3: 150, Duration: 60, Amplitude: 0.9, Voiced: true},
	"Y": {Symbol: "Y", F1: 260, F2: 2070, F3: 3020, B1: 60, B2: 90, B3: 150, Duration: 60, Amplitude: 0.9, Voiced: true},

	// Pauses
	SymSilence: {Symbol: SymSilence, B1: 200, B2: 200, B3: 200, Duration: 100},
	SymPause:   {Symbol: SymPause, B1: 200, B2: 200, B3: 200, Duration: 150},
}

func init() {
	for sym, spec := range korean {
		table[sym] = spec
	}
}
