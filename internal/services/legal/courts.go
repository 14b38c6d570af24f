package legal

import (
	"regexp"
	"strings"

	"github.com/sudspis/sudspis/internal/models"
)

// knownCourt is a fixed dictionary entry for a court name or abbreviation
type knownCourt struct {
	match     string // literal form as it appears in text
	canonical string // full canonical name
	courtType string
}

// knownCourts lists courts and abbreviations matched verbatim
// (case-insensitive) before the generative city patterns run.
var knownCourts = []knownCourt{
	{"Vrhovni sud Republike Hrvatske", "Vrhovni sud Republike Hrvatske", "vrhovni sud"},
	{"VSRH", "Vrhovni sud Republike Hrvatske", "vrhovni sud"},
	{"Ustavni sud Republike Hrvatske", "Ustavni sud Republike Hrvatske", "ustavni sud"},
	{"USRH", "Ustavni sud Republike Hrvatske", "ustavni sud"},
	{"Visoki trgovački sud Republike Hrvatske", "Visoki trgovački sud Republike Hrvatske", "visoki trgovački sud"},
	{"VTSRH", "Visoki trgovački sud Republike Hrvatske", "visoki trgovački sud"},
	{"Visoki upravni sud Republike Hrvatske", "Visoki upravni sud Republike Hrvatske", "visoki upravni sud"},
	{"Visoki kazneni sud Republike Hrvatske", "Visoki kazneni sud Republike Hrvatske", "visoki kazneni sud"},
	{"Visoki prekršajni sud Republike Hrvatske", "Visoki prekršajni sud Republike Hrvatske", "visoki prekršajni sud"},
}

// cityCourtTypes are court types that appear city-qualified, longest first
// so "Općinski građanski sud" wins over "Općinski sud".
var cityCourtTypes = []string{
	"Općinski građanski sud",
	"Općinski kazneni sud",
	"Općinski radni sud",
	"Općinski prekršajni sud",
	"Općinski sud",
	"Županijski sud",
	"Trgovački sud",
	"Upravni sud",
	"Prekršajni sud",
}

// cityCourtPattern matches "<CourtType> u <City>" and "<CourtType> <City>".
// Case-insensitivity is scoped to the court type alternation; the city must
// be one or two capitalized tokens (e.g. "Zagrebu", "Slavonskom Brodu") so
// a lowercase verb after the court type never reads as a city.
var cityCourtPattern = regexp.MustCompile(
	`((?i:` + strings.Join(cityCourtTypes, "|") + `))\s+(?:[uU]\s+)?([A-ZŠĐČĆŽ][a-zšđčćž]+(?:\s+[A-ZŠĐČĆŽ][a-zšđčćž]+)?)`)

// normalizeCourtName produces the dedup key: diacritics folded, lowercased,
// "republike hrvatske" collapsed to the canonical "rh" suffix. "VSRH" and
// "Vrhovni sud Republike Hrvatske" share one key.
func normalizeCourtName(name string) string {
	n := foldString(name)
	n = strings.ReplaceAll(n, "republike hrvatske", "rh")
	n = strings.Join(strings.Fields(n), " ")
	return strings.TrimSpace(n)
}

// DetectCourts finds court mentions in document text, deduplicated by
// normalized name. Dictionary entries win over the generative city pattern
// when both produce the same normalized form.
func DetectCourts(text string) []models.CourtMention {
	var courts []models.CourtMention
	seen := make(map[string]bool)

	folded := foldString(text)
	for _, known := range knownCourts {
		if !strings.Contains(folded, foldString(known.match)) {
			continue
		}
		key := normalizeCourtName(known.canonical)
		if seen[key] {
			continue
		}
		seen[key] = true
		courts = append(courts, models.CourtMention{
			Raw:            known.match,
			NormalizedName: key,
			CourtType:      known.courtType,
		})
	}

	for _, m := range cityCourtPattern.FindAllStringSubmatch(text, -1) {
		raw := strings.TrimSpace(m[0])
		courtType := strings.TrimSpace(m[1])
		city := strings.TrimSpace(m[2])

		// "Republike Hrvatske" after a court type is a national-court
		// suffix already covered by the dictionary, not a city
		if strings.HasPrefix(foldString(city), "republike") || foldString(city) == "hrvatske" {
			continue
		}

		// the key is built from the full matched text so the "u" connective
		// survives; "u Zagrebu" style cities keep their locative form and
		// normalization only needs to be stable, not grammatical
		key := normalizeCourtName(raw)
		if seen[key] {
			continue
		}
		seen[key] = true
		courts = append(courts, models.CourtMention{
			Raw:            raw,
			NormalizedName: key,
			CourtType:      foldString(courtType),
			City:           city,
		})
	}

	return courts
}
