package g2p

// Hangul syllable decomposition follows the standard Unicode algorithm:
// every precomposed syllable in U+AC00..U+D7A3 factors into
// (initial, vowel, final) indices with 19 initials, 21 vowels and 28
// finals (index 0 = no final).
const (
	hangulBase = 0xAC00
	hangulLast = 0xD7A3

	vowelCount = 21
	finalCount = 28
)

// Initial consonant index -> phoneme symbol. The empty entry is the
// silent onset ㅇ, which contributes no phoneme.
var initialSymbols = [19]string{
	"KG", "KKG", "KN", "KD", "KDD", "KR", "KM", "KB", "KBB",
	"KS", "KSS", "", "KJ", "KJJ", "KCH", "KK", "KT", "KP", "KH",
}

// Vowel index -> phoneme symbol, in the Unicode jungseong order
// ㅏㅐㅑㅒㅓㅔㅕㅖㅗㅘㅙㅚㅛㅜㅝㅞㅟㅠㅡㅢㅣ.
var vowelSymbols = [21]string{
	"KA", "KAE", "KYA", "KYAE", "KEO", "KE", "KYEO", "KYE",
	"KO", "KWA", "KWAE", "KOE", "KYO", "KU", "KWO", "KWE",
	"KWI", "KYU", "KEU", "KUI", "KI",
}

// Final consonant index -> compatibility jamo, in the Unicode jongseong
// order. Index 0 means no final.
var finalJamo = [28]rune{
	0,
	'ㄱ', 'ㄲ', 'ㄳ', 'ㄴ', 'ㄵ', 'ㄶ', 'ㄷ', 'ㄹ', 'ㄺ', 'ㄻ',
	'ㄼ', 'ㄽ', 'ㄾ', 'ㄿ', 'ㅀ', 'ㅁ', 'ㅂ', 'ㅄ', 'ㅅ', 'ㅆ',
	'ㅇ', 'ㅈ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ',
}

// Coda neutralization: every one of the 27 possible final letters
// collapses to one of the seven released codas ㄱ ㄴ ㄷ ㄹ ㅁ ㅂ ㅇ.
var codaNeutral = map[rune]rune{
	'ㄱ': 'ㄱ', 'ㄲ': 'ㄱ', 'ㄳ': 'ㄱ', 'ㄺ': 'ㄱ', 'ㅋ': 'ㄱ',
	'ㄴ': 'ㄴ', 'ㄵ': 'ㄴ', 'ㄶ': 'ㄴ',
	'ㄷ': 'ㄷ', 'ㅅ': 'ㄷ', 'ㅆ': 'ㄷ', 'ㅈ': 'ㄷ', 'ㅊ': 'ㄷ', 'ㅌ': 'ㄷ', 'ㅎ': 'ㄷ',
	'ㄹ': 'ㄹ', 'ㄼ': 'ㄹ', 'ㄽ': 'ㄹ', 'ㄾ': 'ㄹ', 'ㅀ': 'ㄹ',
	'ㄻ': 'ㅁ', 'ㅁ': 'ㅁ',
	'ㅂ': 'ㅂ', 'ㅄ': 'ㅂ', 'ㄿ': 'ㅂ',
	'ㅇ': 'ㅇ',
}

// Neutral coda -> phoneme symbol. KNG is the coda reading of ㅇ.
var codaSymbols = map[rune]string{
	'ㄱ': "KG",
	'ㄴ': "KN",
	'ㄷ': "KD",
	'ㄹ': "KR",
	'ㅁ': "KM",
	'ㅂ': "KB",
	'ㅇ': "KNG",
}

// IsHangulSyllable reports whether r is a precomposed Hangul syllable.
func IsHangulSyllable(r rune) bool {
	return r >= hangulBase && r <= hangulLast
}

// DecomposeSyllable splits a precomposed syllable into its initial,
// vowel and final indices. ok is false for non-syllable runes.
func DecomposeSyllable(r rune) (initial, vowel, final int, ok bool) {
	if !IsHangulSyllable(r) {
		return 0, 0, 0, false
	}
	idx := int(r - hangulBase)
	return idx / (vowelCount * finalCount), (idx % (vowelCount * finalCount)) / finalCount, idx % finalCount, true
}

// ComposeSyllable is the inverse of DecomposeSyllable. Out-of-range
// indices return 0.
func ComposeSyllable(initial, vowel, final int) rune {
	if initial < 0 || initial >= len(initialSymbols) ||
		vowel < 0 || vowel >= vowelCount ||
		final < 0 || final >= finalCount {
		return 0
	}
	return rune(hangulBase + (initial*vowelCount+vowel)*finalCount + final)
}

// NeutralizeCoda maps any of the 27 final-consonant letters to its
// neutral released coda. Unknown runes neutralize to ㄷ, the default
// coronal coda, so the mapping is total.
func NeutralizeCoda(final rune) rune {
	if n, ok := codaNeutral[final]; ok {
		return n
	}
	return 'ㄷ'
}
