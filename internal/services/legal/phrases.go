package legal

import (
	"strings"

	"github.com/sudspis/sudspis/internal/models"
)

// keyPhrase is one canonical Croatian legal phrase; matching runs on the
// normalized form, reporting runs on the original text via the index map
type keyPhrase struct {
	slug      string
	canonical string
}

// keyPhrases is the fixed phrase dictionary
var keyPhrases = []keyPhrase{
	{"u-ime-republike-hrvatske", "u ime Republike Hrvatske"},
	{"pravomocnost", "pravomoćnost"},
	{"ovrsni-postupak", "ovršni postupak"},
	{"na-temelju-clanka", "na temelju članka"},
	{"zalba-se-odbija", "žalba se odbija"},
	{"zalba-se-uvazava", "žalba se uvažava"},
	{"presuda-se-potvrdjuje", "presuda se potvrđuje"},
	{"presuda-se-ukida", "presuda se ukida"},
	{"troskovi-postupka", "troškovi postupka"},
	{"privremena-mjera", "privremena mjera"},
	{"pravni-lijek", "pravni lijek"},
	{"glavna-rasprava", "glavna rasprava"},
	{"sudska-nagodba", "sudska nagodba"},
	{"vjestacenje", "vještačenje"},
	{"teret-dokazivanja", "teret dokazivanja"},
	{"zastara", "zastara"},
	{"naknada-stete", "naknada štete"},
	{"stvarna-nadleznost", "stvarna nadležnost"},
	{"zakonska-zatezna-kamata", "zakonska zatezna kamata"},
	{"pritvor", "pritvor"},
}

// ExtractKeyPhrases finds canonical legal phrases in the document text.
// Matching happens on the normalized string; each reported match carries an
// original-text context snippet from the first occurrence.
func ExtractKeyPhrases(text string) []models.KeyPhraseMatch {
	normalized := normalize(text)

	var matches []models.KeyPhraseMatch
	for _, phrase := range keyPhrases {
		needle := normalize(phrase.canonical).text
		if needle == "" {
			continue
		}

		count := 0
		firstIdx := -1
		offset := 0
		for {
			idx := strings.Index(normalized.text[offset:], needle)
			if idx < 0 {
				break
			}
			abs := offset + idx
			leftOK := abs == 0 || normalized.text[abs-1] == ' '
			rightEnd := abs + len(needle)
			rightOK := rightEnd == len(normalized.text) || normalized.text[rightEnd] == ' '
			if leftOK && rightOK {
				if firstIdx < 0 {
					firstIdx = abs
				}
				count++
			}
			offset = abs + len(needle)
		}

		if count == 0 {
			continue
		}

		matches = append(matches, models.KeyPhraseMatch{
			Slug:            phrase.slug,
			CanonicalPhrase: phrase.canonical,
			OccurrenceCount: count,
			ContextSnippet:  normalized.snippet(firstIdx, len(needle)),
		})
	}

	return matches
}
