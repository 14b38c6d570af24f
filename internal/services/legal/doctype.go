package legal

import (
	"sort"

	"github.com/sudspis/sudspis/internal/models"
)

// phraseWeight is the score multiplier for multi-word phrase matches
// relative to single keywords
const phraseWeight = 3

// scoringRule holds the keyword/phrase table for one taxonomy entry.
// All entries are stored in normalized form (lowercase, diacritics folded).
type scoringRule struct {
	keywords []string // weight 1 per occurrence
	phrases  []string // weight 3 per occurrence
}

// documentTypeRules scores the fixed document-type taxonomy
var documentTypeRules = map[models.DocumentType]scoringRule{
	models.DocTypeJudgment: {
		keywords: []string{"presuda", "presudu", "presude", "presudom", "presudi"},
		phrases:  []string{"u ime republike hrvatske", "presuda se potvrdjuje", "sud je presudio"},
	},
	models.DocTypeDecision: {
		keywords: []string{"rjesenje", "rjesenja", "rjesenjem", "rjesenju"},
		phrases:  []string{"donosi se rjesenje", "rjesenje o ovrsi"},
	},
	models.DocTypeRuling: {
		keywords: []string{"odluka", "odluke", "odluku", "odlukom"},
		phrases:  []string{"donosi sljedecu odluku"},
	},
	models.DocTypeMotion: {
		keywords: []string{"prijedlog", "prijedloga", "prijedlogom"},
		phrases:  []string{"podnosi prijedlog", "prijedlog za ovrhu"},
	},
	models.DocTypeComplaint: {
		keywords: []string{"tuzba", "tuzbe", "tuzbu", "tuzbom"},
		phrases:  []string{"tuzbeni zahtjev", "podize tuzbu"},
	},
	models.DocTypeAppeal: {
		keywords: []string{"zalba", "zalbe", "zalbu", "zalbom"},
		phrases:  []string{"zalba se odbija", "podnosi zalbu", "zalba je osnovana"},
	},
	models.DocTypeIndictment: {
		keywords: []string{"optuznica", "optuznice", "optuznicu"},
		phrases:  []string{"podize optuznicu"},
	},
	models.DocTypeContract: {
		keywords: []string{"ugovor", "ugovora", "ugovorom", "ugovoru"},
		phrases:  []string{"ugovorne strane", "sklapaju ovaj ugovor", "predmet ugovora"},
	},
	models.DocTypePowerOfAttorney: {
		keywords: []string{"punomoc", "punomoci", "opunomocujem"},
		phrases:  []string{"ovom punomoci", "daje punomoc"},
	},
	models.DocTypeStatement: {
		keywords: []string{"izjava", "izjave", "izjavljujem"},
		phrases:  []string{"pod punom materijalnom i kaznenom odgovornoscu"},
	},
	models.DocTypeCertificate: {
		keywords: []string{"potvrda", "potvrde", "uvjerenje"},
		phrases:  []string{"izdaje se potvrda", "ova potvrda"},
	},
	models.DocTypeStatute: {
		keywords: []string{"zakon", "zakona", "zakonom"},
		phrases:  []string{"ovaj zakon stupa na snagu", "narodne novine"},
	},
	models.DocTypeOrdinance: {
		keywords: []string{"pravilnik", "pravilnika", "uredba", "uredbe"},
		phrases:  []string{"ovaj pravilnik stupa na snagu", "ova uredba"},
	},
}

// jurisdictionRules scores the disjoint jurisdiction taxonomy with the same
// scoring shape
var jurisdictionRules = map[models.Jurisdiction]scoringRule{
	models.JurisdictionCivil: {
		keywords: []string{"parnicni", "parnicnog", "gradjanski", "gradjanskog"},
		// "naknada stete" declines in captions ("radi naknade stete")
		phrases: []string{"naknada stete", "naknade stete", "naknadu stete", "parnicni postupak", "zakon o obveznim odnosima"},
	},
	models.JurisdictionCriminal: {
		keywords: []string{"kazneni", "kaznenog", "okrivljenik", "optuzenik", "kaznu"},
		phrases:  []string{"kazneni zakon", "kaznenog djela", "kazneni postupak"},
	},
	models.JurisdictionAdministrative: {
		keywords: []string{"upravni", "upravnog", "upravnom"},
		phrases:  []string{"upravni spor", "upravni postupak", "javnopravno tijelo"},
	},
	models.JurisdictionCommercial: {
		keywords: []string{"trgovacki", "trgovackog", "stecaj", "stecajni"},
		phrases:  []string{"trgovacko drustvo", "stecajni postupak", "sudski registar"},
	},
	models.JurisdictionLabor: {
		keywords: []string{"radni", "radnog", "placa", "otkaz"},
		phrases:  []string{"radni odnos", "ugovor o radu", "otkaz ugovora o radu", "zakon o radu"},
	},
	models.JurisdictionFamily: {
		keywords: []string{"brak", "braka", "skrbnistvo", "uzdrzavanje"},
		phrases:  []string{"obiteljski zakon", "roditeljska skrb", "razvod braka"},
	},
	models.JurisdictionConstitutional: {
		keywords: []string{"ustavni", "ustavnog", "ustavnom"},
		phrases:  []string{"ustavna tuzba", "ustavni sud", "povreda ustavnih prava"},
	},
}

// score sums weighted keyword and phrase occurrences in normalized text
func (r scoringRule) score(normalized string) int {
	total := 0
	for _, keyword := range r.keywords {
		total += countOccurrences(normalized, keyword)
	}
	for _, phrase := range r.phrases {
		total += phraseWeight * countOccurrences(normalized, phrase)
	}
	return total
}

// classify runs the generic top-two scoring: the highest positive score
// wins and confidence is top/(top+second), clamped to [0,1]
func classify[T ~string](rules map[T]scoringRule, normalized string) (T, float64) {
	var winner T
	top, second := 0, 0

	// sorted candidate order keeps tie-breaking deterministic across runs
	candidates := make([]T, 0, len(rules))
	for candidate := range rules {
		candidates = append(candidates, candidate)
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })

	for _, candidate := range candidates {
		s := rules[candidate].score(normalized)
		switch {
		case s > top:
			second = top
			top = s
			winner = candidate
		case s > second:
			second = s
		}
	}

	if top <= 0 {
		var zero T
		return zero, 0
	}

	confidence := float64(top) / float64(top+second)
	if confidence > 1 {
		confidence = 1
	}
	return winner, confidence
}

// ClassifyDocumentType scores the document-type taxonomy over the text.
// Returns the zero value with confidence 0 when no type scores above zero.
func ClassifyDocumentType(text string) (models.DocumentType, float64) {
	return classify(documentTypeRules, normalize(text).text)
}

// ClassifyJurisdiction scores the jurisdiction taxonomy over the text
func ClassifyJurisdiction(text string) (models.Jurisdiction, float64) {
	return classify(jurisdictionRules, normalize(text).text)
}
