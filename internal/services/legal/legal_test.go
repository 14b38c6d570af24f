package legal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sudspis/sudspis/internal/models"
)

func TestFoldString(t *testing.T) {
	assert.Equal(t, "ccdsz", foldString("čćđšž"))
	assert.Equal(t, "ccdsz", foldString("ČĆĐŠŽ"))
	assert.Equal(t, "opcinski sud u zagrebu", foldString("Općinski sud u Zagrebu"))
}

func TestNormalize(t *testing.T) {
	n := normalize("  Presuda,   br. 12/2023! ")
	assert.Equal(t, "presuda br 12 2023", n.text)

	// every normalized byte maps back into the original
	require.Len(t, n.offsets, len(n.text))
	for i := range n.text {
		assert.Less(t, n.offsets[i], len(n.source))
	}
}

func TestCountOccurrencesWordBoundaries(t *testing.T) {
	haystack := normalize("sud sudionik sud presuda sud").text
	assert.Equal(t, 3, countOccurrences(haystack, "sud"))
	assert.Equal(t, 0, countOccurrences(haystack, "iona"))
	assert.Equal(t, 1, countOccurrences(haystack, "presuda"))
}

func TestSnippetAroundMatch(t *testing.T) {
	text := strings.Repeat("a ", 60) + "pravomoćnost" + strings.Repeat(" b", 60)
	n := normalize(text)
	idx := strings.Index(n.text, "pravomocnost")
	require.GreaterOrEqual(t, idx, 0)

	snippet := n.snippet(idx, len("pravomocnost"))
	assert.Contains(t, snippet, "pravomoćnost")
	assert.True(t, strings.HasPrefix(snippet, "..."))
	assert.True(t, strings.HasSuffix(snippet, "..."))
}

func TestDetectCourtsDeduplicatesAbbreviation(t *testing.T) {
	text := "Protiv presude VSRH podnesena je revizija. " +
		"Vrhovni sud Republike Hrvatske odbio je reviziju kao neosnovanu."

	courts := DetectCourts(text)
	require.Len(t, courts, 1)
	assert.Equal(t, "vrhovni sud rh", courts[0].NormalizedName)
	assert.Equal(t, "vrhovni sud", courts[0].CourtType)
}

func TestDetectCourtsCityQualified(t *testing.T) {
	text := "Općinski sud u Zagrebu donio je presudu koju je " +
		"Županijski sud u Splitu potvrdio."

	courts := DetectCourts(text)
	require.Len(t, courts, 2)

	byKey := make(map[string]models.CourtMention)
	for _, c := range courts {
		byKey[c.NormalizedName] = c
	}
	require.Contains(t, byKey, "opcinski sud u zagrebu")
	assert.Equal(t, "Zagrebu", byKey["opcinski sud u zagrebu"].City)
	require.Contains(t, byKey, "zupanijski sud u splitu")
	assert.Equal(t, "Splitu", byKey["zupanijski sud u splitu"].City)
}

func TestDetectCourtsLowercaseVerbIsNotACity(t *testing.T) {
	// "odbacuje" follows the court type but is not a capitalized city token
	courts := DetectCourts("Općinski sud odbacuje tužbu kao nepravodobnu.")
	assert.Empty(t, courts)
}

func TestDetectCourtsNationalSuffixNotCity(t *testing.T) {
	text := "Visoki trgovački sud Republike Hrvatske ukinuo je rješenje."

	courts := DetectCourts(text)
	require.Len(t, courts, 1)
	assert.Equal(t, "visoki trgovacki sud rh", courts[0].NormalizedName)
	assert.Empty(t, courts[0].City)
}

func TestDetectParties(t *testing.T) {
	text := "Tužitelj: Ivan Horvat, Tuženi: ACME d.o.o."

	parties := DetectParties(text)
	require.Len(t, parties, 2)

	assert.Equal(t, "Ivan Horvat", parties[0].Name)
	assert.Equal(t, models.RolePlaintiff, parties[0].Role)
	assert.Equal(t, models.EntityPerson, parties[0].EntityType)

	assert.Equal(t, "ACME d.o.o.", parties[1].Name)
	assert.Equal(t, models.RoleDefendant, parties[1].Role)
	assert.Equal(t, models.EntityOrganization, parties[1].EntityType)
}

func TestDetectPartiesVersusCaption(t *testing.T) {
	text := "U pravnoj stvari Marko Marić protiv Grad Zagreb radi isplate."

	parties := DetectParties(text)
	require.Len(t, parties, 2)
	assert.Equal(t, "Marko Marić", parties[0].Name)
	assert.Equal(t, models.RolePlaintiff, parties[0].Role)
	assert.Equal(t, "Grad Zagreb", parties[1].Name)
	assert.Equal(t, models.RoleDefendant, parties[1].Role)
	assert.Equal(t, models.EntityOrganization, parties[1].EntityType)
}

func TestDetectPartiesDeduplicatesFirstRoleWins(t *testing.T) {
	text := "Žalitelj: Ana Kovač\nTužitelj: Ana Kovač"

	parties := DetectParties(text)
	require.Len(t, parties, 1)
	// plaintiff pattern runs first in the rule order
	assert.Equal(t, models.RolePlaintiff, parties[0].Role)
}

func TestClassifyDocumentTypeJudgment(t *testing.T) {
	text := "PRESUDA U IME REPUBLIKE HRVATSKE. Ova presuda donosi se " +
		"nakon rasprave. Protiv presude dopuštena je žalba. Presuda se " +
		"dostavlja strankama, a presudom se odlučuje o troškovima."

	docType, confidence := ClassifyDocumentType(text)
	assert.Equal(t, models.DocTypeJudgment, docType)
	assert.Greater(t, confidence, 0.5)
}

func TestClassifyDocumentTypeNoMatch(t *testing.T) {
	docType, confidence := ClassifyDocumentType("lorem ipsum dolor sit amet")
	assert.Equal(t, models.DocumentType(""), docType)
	assert.Zero(t, confidence)
}

func TestClassifyJurisdiction(t *testing.T) {
	text := "Okrivljenik je počinio kazneno djelo iz Kaznenog zakona. " +
		"Kazneni postupak vodi se pred nadležnim sudom."

	jurisdiction, confidence := ClassifyJurisdiction(text)
	assert.Equal(t, models.JurisdictionCriminal, jurisdiction)
	assert.Greater(t, confidence, 0.5)
}

func TestClassifyJurisdictionCivilDeclinedDamages(t *testing.T) {
	jurisdiction, confidence := ClassifyJurisdiction(
		"Spor se vodi radi naknade štete nastale u prometnoj nesreći.")
	assert.Equal(t, models.JurisdictionCivil, jurisdiction)
	assert.Greater(t, confidence, 0.0)
}

func TestExtractKeyPhrases(t *testing.T) {
	text := "Presuda je stekla pravomoćnost. Žalba se odbija kao " +
		"neosnovana. O pravomoćnosti se ne odlučuje ponovno."

	matches := ExtractKeyPhrases(text)
	bySlug := make(map[string]models.KeyPhraseMatch)
	for _, m := range matches {
		bySlug[m.Slug] = m
	}

	require.Contains(t, bySlug, "pravomocnost")
	assert.Equal(t, 1, bySlug["pravomocnost"].OccurrenceCount)
	assert.Contains(t, bySlug["pravomocnost"].ContextSnippet, "pravomoćnost")

	require.Contains(t, bySlug, "zalba-se-odbija")
	assert.Equal(t, 1, bySlug["zalba-se-odbija"].OccurrenceCount)
}

func TestExtractKeyPhrasesCountsRepeats(t *testing.T) {
	text := "Troškovi postupka idu na teret tuženika. Troškovi postupka " +
		"određuju se rješenjem."

	matches := ExtractKeyPhrases(text)
	require.Len(t, matches, 1)
	assert.Equal(t, "troskovi-postupka", matches[0].Slug)
	assert.Equal(t, 2, matches[0].OccurrenceCount)
}

func TestExtractorMergesDetectors(t *testing.T) {
	text := "PRESUDA U IME REPUBLIKE HRVATSKE\n" +
		"Općinski sud u Zagrebu, u pravnoj stvari\n" +
		"Tužitelj: Ivan Horvat, Tuženi: ACME d.o.o.\n" +
		"radi naknade štete, donio je presudu. Presuda je stekla pravomoćnost."

	extractor := NewExtractor(nil)
	metadata := extractor.Extract(text)

	require.NotNil(t, metadata)
	assert.Equal(t, models.DocTypeJudgment, metadata.DocumentType)
	assert.Equal(t, models.JurisdictionCivil, metadata.Jurisdiction)
	assert.Len(t, metadata.Courts, 1)
	assert.Len(t, metadata.Parties, 2)
	assert.NotEmpty(t, metadata.KeyPhrases)
}
