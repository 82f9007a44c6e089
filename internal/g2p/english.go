package g2p

import "strings"

// Closed dictionary of exact pronunciations for common words. Everything
// not listed here falls through to the letter rules.
var dictionary = map[string][]string{
	"the": {"DH", "AX"}, "a": {"AX"}, "an": {"AE", "N"},
	"and": {"AE", "N", "D"}, "to": {"T", "UW"}, "of": {"AH", "V"},
	"in": {"IH", "N"}, "is": {"IH", "Z"}, "it": {"IH", "T"},
	"you": {"Y", "UW"}, "that": {"DH", "AE", "T"}, "he": {"HH", "IY"},
	"was": {"W", "AA", "Z"}, "for": {"F", "AO", "R"}, "on": {"AA", "N"},
	"are": {"AA", "R"}, "with": {"W", "IH", "DH"}, "as": {"AE", "Z"},
	"his": {"HH", "IH", "Z"}, "they": {"DH", "EY"}, "be": {"B", "IY"},
	"at": {"AE", "T"}, "one": {"W", "AH", "N"}, "have": {"HH", "AE", "V"},
	"this": {"DH", "IH", "S"}, "from": {"F", "R", "AH", "M"},
	"or": {"AO", "R"}, "had": {"HH", "AE", "D"}, "by": {"B", "AY"},
	"not": {"N", "AA", "T"}, "but": {"B", "AH", "T"},
	"what": {"W", "AH", "T"}, "all": {"AO", "L"}, "were": {"W", "ER"},
	"we": {"W", "IY"}, "when": {"W", "EH", "N"}, "your": {"Y", "AO", "R"},
	"can": {"K", "AE", "N"}, "said": {"S", "EH", "D"},
	"there": {"DH", "EH", "R"}, "use": {"Y", "UW", "Z"},
	"each": {"IY", "CH"}, "which": {"W", "IH", "CH"}, "she": {"SH", "IY"},
	"do": {"D", "UW"}, "how": {"HH", "AW"}, "their": {"DH", "EH", "R"},
	"if": {"IH", "F"}, "will": {"W", "IH", "L"}, "up": {"AH", "P"},
	"other": {"AH", "DH", "ER"}, "about": {"AX", "B", "AW", "T"},
	"out": {"AW", "T"}, "many": {"M", "EH", "N", "IY"},
	"then": {"DH", "EH", "N"}, "them": {"DH", "EH", "M"},
	"these": {"DH", "IY", "Z"}, "so": {"S", "OW"},
	"some": {"S", "AH", "M"}, "her": {"HH", "ER"},
	"would": {"W", "UH", "D"}, "make": {"M", "EY", "K"},
	"like": {"L", "AY", "K"}, "him": {"HH", "IH", "M"},
	"into": {"IH", "N", "T", "UW"}, "time": {"T", "AY", "M"},
	"has": {"HH", "AE", "Z"}, "look": {"L", "UH", "K"},
	"two": {"T", "UW"}, "more": {"M", "AO", "R"}, "go": {"G", "OW"},
	"see": {"S", "IY"}, "no": {"N", "OW"}, "way": {"W", "EY"},
	"could": {"K", "UH", "D"}, "my": {"M", "AY"},
	"than": {"DH", "AE", "N"}, "first": {"F", "ER", "S", "T"},
	"been": {"B", "IH", "N"}, "call": {"K", "AO", "L"},
	"who": {"HH", "UW"}, "its": {"IH", "T", "S"}, "now": {"N", "AW"},
	"find": {"F", "AY", "N", "D"}, "long": {"L", "AO", "NG"},
	"down": {"D", "AW", "N"}, "day": {"D", "EY"},
	"did": {"D", "IH", "D"}, "get": {"G", "EH", "T"},
	"come": {"K", "AH", "M"}, "made": {"M", "EY", "D"},
	"may": {"M", "EY"}, "part": {"P", "AA", "R", "T"},
	"hello": {"HH", "AX", "L", "OW"}, "world": {"W", "ER", "L", "D"},
	"yes": {"Y", "EH", "S"}, "know": {"N", "OW"},
	"think": {"TH", "IH", "NG", "K"}, "just": {"JH", "AH", "S", "T"},
	"good": {"G", "UH", "D"}, "new": {"N", "UW"},
	"want": {"W", "AA", "N", "T"}, "because": {"B", "IH", "K", "AO", "Z"},
	"any": {"EH", "N", "IY"}, "give": {"G", "IH", "V"},
	"most": {"M", "OW", "S", "T"}, "only": {"OW", "N", "L", "IY"},
}

type digraph struct {
	spelling string
	phonemes []string
}

// Digraphs are matched greedily left to right before single letters.
// An empty phoneme list marks a silent digraph.
var digraphs = []digraph{
	{"th", []string{"TH"}},
	{"sh", []string{"SH"}},
	{"ch", []string{"CH"}},
	{"ph", []string{"F"}},
	{"wh", []string{"W"}},
	{"ng", []string{"NG"}},
	{"ck", []string{"K"}},
	{"gh", nil},
	{"wr", []string{"R"}},
	{"kn", []string{"N"}},
	{"qu", []string{"K", "W"}},
	{"ee", []string{"IY"}},
	{"ea", []string{"IY"}},
	{"oo", []string{"UW"}},
	{"ou", []string{"AW"}},
	{"ow", []string{"OW"}},
	{"oi", []string{"OY"}},
	{"oy", []string{"OY"}},
	{"ai", []string{"EY"}},
	{"ay", []string{"EY"}},
	{"ie", []string{"IY"}},
	{"ey", []string{"IY"}},
}

var letterMap = map[byte][]string{
	'a': {"AE"}, 'b': {"B"}, 'c': {"K"}, 'd': {"D"}, 'e': {"EH"},
	'f': {"F"}, 'g': {"G"}, 'h': {"HH"}, 'i': {"IH"}, 'j': {"JH"},
	'k': {"K"}, 'l': {"L"}, 'm': {"M"}, 'n': {"N"}, 'o': {"AA"},
	'p': {"P"}, 'q': {"K", "W"}, 'r': {"R"}, 's': {"S"}, 't': {"T"},
	'u': {"AH"}, 'v': {"V"}, 'w': {"W"}, 'x': {"K", "S"}, 'y': {"Y"},
	'z': {"Z"},
}

// englishWord converts one lowercase word to phoneme symbols: dictionary
// hit first, otherwise digraph and letter rules.
func englishWord(word string) []string {
	if phones, ok := dictionary[word]; ok {
		out := make([]string, len(phones))
		copy(out, phones)
		return out
	}
	return spellOut(word)
}

func spellOut(word string) []string {
	var phones []string
	for i := 0; i < len(word); {
		if word[i] == '\'' {
			i++
			continue
		}

		if match, ok := matchDigraph(word[i:]); ok {
			phones = append(phones, match.phonemes...)
			i += len(match.spelling)
			continue
		}

		letter := word[i]
		switch {
		case letter == 'c' && i+1 < len(word) && strings.ContainsRune("eiy", rune(word[i+1])):
			phones = append(phones, "S")
		case letter == 'g' && i+1 < len(word) && strings.ContainsRune("eiy", rune(word[i+1])):
			phones = append(phones, "JH")
		case letter == 'e' && i == len(word)-1:
			// silent final e
		default:
			phones = append(phones, letterMap[letter]...)
		}
		i++
	}
	return phones
}

func matchDigraph(rest string) (digraph, bool) {
	for _, d := range digraphs {
		if strings.HasPrefix(rest, d.spelling) {
			return d, true
		}
	}
	return digraph{}, false
}
