package retrieval

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// minTermLen discards single characters, which are noise for matching.
const minTermLen = 2

// Fold lowercases text and strips nonspacing marks so that accented and
// unaccented spellings of a word compare equal ("recibió" == "recibio").
// The fold is rune-aligned: the result has exactly one rune per input rune,
// so rune offsets computed against the folded text are valid in the
// original text as well. The snippet extractor depends on that.
func Fold(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		b.WriteRune(foldRune(r))
	}
	return b.String()
}

func foldRune(r rune) rune {
	r = unicode.ToLower(r)
	if r < utf8.RuneSelf {
		return r
	}
	for _, d := range norm.NFD.String(string(r)) {
		if unicode.Is(unicode.Mn, d) {
			continue
		}
		return unicode.ToLower(d)
	}
	return r
}

// Tokenize folds text and extracts terms: maximal runs of letters and
// digits, at least minTermLen runes long, with stopwords removed.
// Duplicates are kept in order of appearance. Empty or whitespace-only
// input yields no terms.
func Tokenize(text string) []string {
	var terms []string
	var cur strings.Builder
	runeCount := 0
	flush := func() {
		if runeCount >= minTermLen {
			term := cur.String()
			if _, stop := stopwords[term]; !stop {
				terms = append(terms, term)
			}
		}
		cur.Reset()
		runeCount = 0
	}
	for _, r := range Fold(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			cur.WriteRune(r)
			runeCount++
			continue
		}
		flush()
	}
	flush()
	return terms
}

// Spanish function words plus the clinical units that show up constantly in
// the target document set and carry no relevance signal.
var stopwords = toSet(`
a al algo algunas algunos ante antes como con contra cual cuales cuando de del desde donde dos el
ella ellas ellos en entre era eran es esa esas ese eso esos esta estaba estaban estamos estar este
estos fue fueron ha hasta hay la las le les lo los mas me mi mis mucho muy nada ni no nos o os
otra otros para pero poco por porque que quien quienes se ser si sobre sin su sus te tiene tuvo un
una uno y ya yo tu usted ustedes nosotros vosotros
kg ml mg mcg min hora horas
`)

func toSet(words string) map[string]struct{} {
	m := make(map[string]struct{})
	for _, w := range strings.Fields(words) {
		m[Fold(w)] = struct{}{}
	}
	return m
}
