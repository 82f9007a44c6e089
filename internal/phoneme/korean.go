package phoneme

// Korean jamo-derived phonemes. Initial consonants map one-to-one onto
// entries here; the silent onset ㅇ has no entry of its own and is skipped
// by the converter, while KNG covers its coda reading (ŋ). Tense
// consonants (ㄲ ㄸ ㅃ ㅆ ㅉ) get shorter, sharper noise than their plain
// counterparts; aspirates (ㅋ ㅌ ㅍ ㅊ) reuse the unvoiced stop profile.
var korean = map[string]Spec{
	// Initials / codas
	"KG":  {Symbol: "KG", F1: 200, F2: 1990, F3: 2850, B1: 60, B2: 90, B3: 150, Duration: 60, Amplitude: 0.9, Voiced: true},
	"KKG": {Symbol: "KKG", F1: 200, F2: 1990, F3: 2850, B1: 200, B2: 200, B3: 200, Duration: 70, Amplitude: 0.6, Voiced: false},
	"KN":  {Symbol: "KN", F1: 270, F2: 1600, F3: 2600, B1: 60, B2: 90, B3: 150, Duration: 80, Amplitude: 0.9, Voiced: true},
	"KD":  {Symbol: "KD", F1: 200, F2: 1600, F3: 2600, B1: 60, B2: 90, B3: 150, Duration: 60, Amplitude: 0.9, Voiced: true},
	"KDD": {Symbol: "KDD", F1: 200, F2: 1600, F3: 2600, B1: 200, B2: 200, B3: 200, Duration: 70, Amplitude: 0.6, Voiced: false},
	"KR":  {Symbol: "KR", F1: 310, F2: 1200, F3: 2500, B1: 60, B2: 90, B3: 150, Duration: 60, Amplitude: 0.9, Voiced: true},
	"KM":  {Symbol: "KM", F1: 270, F2: 1000, F3: 2200, B1: 60, B2: 90, B3: 150, Duration: 80, Amplitude: 0.9, Voiced: true},
	"KB":  {Symbol: "KB", F1: 200, F2: 1100, F3: 2150, B1: 60, B2: 90, B3: 150, Duration: 60, Amplitude: 0.9, Voiced: true},
	"KBB": {Symbol: "KBB", F1: 200, F2: 1100, F3: 2150, B1: 200, B2: 200, B3: 200, Duration: 70, Amplitude: 0.6, Voiced: false},
	"KS":  {Symbol: "KS", F1: 200, F2: 1600, F3: 2600, B1: 200, B2: 200, B3: 200, Duration: 90, Amplitude: 0.6, Voiced: false},
	"KSS": {Symbol: "KSS", F1: 200, F2: 1600, F3: 2600, B1: 200, B2: 200, B3: 200, Duration: 100, Amplitude: 0.75, Voiced: false},
	"KNG": {Symbol: "KNG", F1: 270, F2: 1990, F3: 2850, B1: 60, B2: 90, B3: 150, Duration: 80, Amplitude: 0.9, Voiced: true},
	"KJ":  {Symbol: "KJ", F1: 200, F2: 1900, F3: 2500, B1: 60, B2: 90, B3: 150, Duration: 90, Amplitude: 0.8, Voiced: true},
	"KJJ": {Symbol: "KJJ", F1: 200, F2: 1900, F3: 2500, B1: 200, B2: 200, B3: 200, Duration: 100, Amplitude: 0.7, Voiced: false},
	"KCH": {Symbol: "KCH", F1: 200, F2: 1900, F3: 2500, B1: 200, B2: 200, B3: 200, Duration: 110, Amplitude: 0.6, Voiced: false},
	"KK":  {Symbol: "KK", F1: 200, F2: 1990, F3: 2850, B1: 200, B2: 200, B3: 200, Duration: 80, Amplitude: 0.5, Voiced: false},
	"KT":  {Symbol: "KT", F1: 200, F2: 1600, F3: 2600, B1: 200, B2: 200, B3: 200, Duration: 80, Amplitude: 0.5, Voiced: false},
	"KP":  {Symbol: "KP", F1: 200, F2: 1100, F3: 2150, B1: 200, B2: 200, B3: 200, Duration: 80, Amplitude: 0.5, Voiced: false},
	"KH":  {Symbol: "KH", F1: 500, F2: 1500, F3: 2500, B1: 200, B2: 200, B3: 200, Duration: 60, Amplitude: 0.4, Voiced: false},

	// Vowels
	"KA":   {Symbol: "KA", F1: 750, F2: 1300, F3: 2500, B1: 60, B2: 90, B3: 150, Duration: 110, Amplitude: 1.0, Voiced: true},
	"KAE":  {Symbol: "KAE", F1: 600, F2: 1900, F3: 2550, B1: 60, B2: 90, B3: 150, Duration: 110, Amplitude: 1.0, Voiced: true},
	"KYA":  {Symbol: "KYA", F1: 650, F2: 1600, F3: 2600, B1: 60, B2: 90, B3: 150, Duration: 130, Amplitude: 1.0, Voiced: true},
	"KYAE": {Symbol: "KYAE", F1: 600, F2: 1950, F3: 2600, B1: 60, B2: 90, B3: 150, Duration: 130, Amplitude: 1.0, Voiced: true},
	"KEO":  {Symbol: "KEO", F1: 560, F2: 1000, F3: 2550, B1: 60, B2: 90, B3: 150, Duration: 110, Amplitude: 1.0, Voiced: true},
	"KE":   {Symbol: "KE", F1: 480, F2: 2000, F3: 2600, B1: 60, B2: 90, B3: 150, Duration: 110, Amplitude: 1.0, Voiced: true},
	"KYEO": {Symbol: "KYEO", F1: 520, F2: 1350, F3: 2600, B1: 60, B2: 90, B3: 150, Duration: 130, Amplitude: 1.0, Voiced: true},
	"KYE":  {Symbol: "KYE", F1: 450, F2: 2050, F3: 2700, B1: 60, B2: 90, B3: 150, Duration: 130, Amplitude: 1.0, Voiced: true},
	"KO":   {Symbol: "KO", F1: 400, F2: 750, F3: 2450, B1: 60, B2: 90, B3: 150, Duration: 110, Amplitude: 1.0, Voiced: true},
	"KWA":  {Symbol: "KWA", F1: 650, F2: 1100, F3: 2500, B1: 60, B2: 90, B3: 150, Duration: 130, Amplitude: 1.0, Voiced: true},
	"KWAE": {Symbol: "KWAE", F1: 580, F2: 1700, F3: 2550, B1: 60, B2: 90, B3: 150, Duration: 130, Amplitude: 1.0, Voiced: true},
	"KOE":  {Symbol: "KOE", F1: 450, F2: 1600, F3: 2450, B1: 60, B2: 90, B3: 150, Duration: 110, Amplitude: 1.0, Voiced: true},
	"KYO":  {Symbol: "KYO", F1: 420, F2: 1050, F3: 2500, B1: 60, B2: 90, B3: 150, Duration: 130, Amplitude: 1.0, Voiced: true},
	"KU":   {Symbol: "KU", F1: 350, F2: 700, F3: 2400, B1: 60, B2: 90, B3: 150, Duration: 110, Amplitude: 1.0, Voiced: true},
	"KWO":  {Symbol: "KWO", F1: 500, F2: 950, F3: 2500, B1: 60, B2: 90, B3: 150, Duration: 130, Amplitude: 1.0, Voiced: true},
	"KWE":  {Symbol: "KWE", F1: 470, F2: 1800, F3: 2550, B1: 60, B2: 90, B3: 150, Duration: 130, Amplitude: 1.0, Voiced: true},
	"KWI":  {Symbol: "KWI", F1: 320, F2: 1900, F3: 2550, B1: 60, B2: 90, B3: 150, Duration: 110, Amplitude: 1.0, Voiced: true},
	"KYU":  {Symbol: "KYU", F1: 340, F2: 1000, F3: 2450, B1: 60, B2: 90, B3: 150, Duration: 130, Amplitude: 1.0, Voiced: true},
	"KEU":  {Symbol: "KEU", F1: 400, F2: 1450, F3: 2400, B1: 60, B2: 90, B3: 150, Duration: 100, Amplitude: 1.0, Voiced: true},
	"KUI":  {Symbol: "KUI", F1: 370, F2: 1750, F3: 2500, B1: 60, B2: 90, B3: 150, Duration: 120, Amplitude: 1.0, Voiced: true},
	"KI":   {Symbol: "KI", F1: 280, F2: 2250, F3: 3000, B1: 60, B2: 90, B3: 150, Duration: 110, Amplitude: 1.0, Voiced: true},
}
