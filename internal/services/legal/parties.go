package legal

import (
	"regexp"
	"strings"

	"github.com/sudspis/sudspis/internal/models"
)

// nameChars matches one candidate name: everything up to the next clause
// separator. Cleanup happens afterwards in cleanPartyName.
const nameChars = `([^,;:\n]+)`

// rolePattern binds a role-prefixed capture to a party role
type rolePattern struct {
	re   *regexp.Regexp
	role models.PartyRole
}

// rolePatterns are applied in order; earlier patterns claim their matches
// first and dedup prevents later reclassification of the same name.
var rolePatterns = []rolePattern{
	{regexp.MustCompile(`(?i)tužitelj(?:ica)?\s*[:\s]\s*` + nameChars), models.RolePlaintiff},
	{regexp.MustCompile(`(?i)tužen(?:ik|i|a|ica)?\s*[:\s]\s*` + nameChars), models.RoleDefendant},
	{regexp.MustCompile(`(?i)podnositelj(?:ica)?(?:\s+zahtjeva)?\s*[:\s]\s*` + nameChars), models.RoleApplicant},
	{regexp.MustCompile(`(?i)predlagatelj(?:ica)?\s*[:\s]\s*` + nameChars), models.RoleProposer},
	{regexp.MustCompile(`(?i)(?:okrivljen(?:ik|a)?|optužen(?:ik|a)?)\s*[:\s]\s*` + nameChars), models.RoleAccused},
	{regexp.MustCompile(`(?i)žalitelj(?:ica)?\s*[:\s]\s*` + nameChars), models.RoleAppellant},
	{regexp.MustCompile(`(?i)protustranka\s*[:\s]\s*` + nameChars), models.RoleOpponent},
	{regexp.MustCompile(`(?i)punomoćnik(?:ica)?\s*[:\s]\s*` + nameChars), models.RoleAttorney},
	{regexp.MustCompile(`(?i)zastupnik(?:ica)?\s*[:\s]\s*` + nameChars), models.RoleRepresentative},
	{regexp.MustCompile(`(?i)svjedok(?:inja)?\s*[:\s]\s*` + nameChars), models.RoleWitness},
	{regexp.MustCompile(`(?i)vještak(?:inja)?\s*[:\s]\s*` + nameChars), models.RoleExpert},
}

// capToken is one name token: a capitalized word or a dotted company
// abbreviation like "d.o.o."
const capToken = `(?:[\p{Lu}][\p{L}]*\.?|\p{Ll}[\p{Ll}]*(?:\.[\p{Ll}.]*)+)`

// nameSeq is a run of name tokens; it stops at the first lowercase
// non-abbreviation word, which keeps surrounding prose out of the capture
const nameSeq = capToken + `(?:\s+` + capToken + `)*`

// betweenPattern matches contract-style "između X i Y" clauses; both sides
// are generic parties
var betweenPattern = regexp.MustCompile(`[iI]zmeđu\s+(` + nameSeq + `)\s+i\s+(` + nameSeq + `)`)

// versusPattern matches case-caption "X protiv Y"; left side sues, right
// side defends
var versusPattern = regexp.MustCompile(`(` + nameSeq + `)\s+protiv\s+(` + nameSeq + `)`)

// trailingFillers are tokens stripped from the end of a candidate name
var trailingFillers = map[string]bool{
	"iz": true, "u": true, "sa": true, "s": true, "kao": true,
	"oib": true, "zastupan": true, "zastupana": true, "vlasnik": true,
	"te": true, "i": true, "protiv": true,
}

// nonNameTokens rejects candidates that are legal boilerplate, not names
var nonNameTokens = map[string]bool{
	"sud": true, "republika hrvatska": true, "republike hrvatske": true,
	"presuda": true, "rjesenje": true, "postupak": true, "stranka": true,
	"dalje": true, "nastavku": true, "tekstu": true,
}

// organizationSuffixes identify registered legal entities
var organizationSuffixes = []string{
	"d.o.o.", "d.o.o", "d.d.", "d.d", "j.d.o.o.", "j.d.o.o", "k.d.",
	"j.t.d.", "obrt",
}

// organizationKeywords identify institutional parties by vocabulary
var organizationKeywords = []string{
	"grad", "opcina", "zupanija", "ministarstvo", "republika", "drzava",
	"udruga", "banka", "osiguranje", "drustvo", "agencija", "zavod",
	"fakultet", "sveuciliste", "bolnica", "skola", "komora", "fond",
	"centar", "institut", "poduzece", "ustanova",
}

// cleanPartyName trims punctuation and trailing filler words from a raw
// capture, returning the empty string when nothing name-like remains
func cleanPartyName(raw string) string {
	name := strings.TrimSpace(raw)
	name = strings.Trim(name, `"'()[]`)
	name = strings.TrimRight(name, "- ")

	// strip a sentence-ending period, but keep abbreviation dots
	// ("ACME d.o.o." stays intact)
	if strings.HasSuffix(name, ".") {
		fields := strings.Fields(name)
		if last := fields[len(fields)-1]; strings.Count(last, ".") == 1 {
			name = strings.TrimRight(name, ". ")
		}
	}

	// drop trailing filler words one at a time
	for {
		fields := strings.Fields(name)
		if len(fields) == 0 {
			return ""
		}
		last := foldString(strings.Trim(fields[len(fields)-1], ".,"))
		if !trailingFillers[last] {
			break
		}
		name = strings.TrimSpace(strings.Join(fields[:len(fields)-1], " "))
	}

	if len([]rune(name)) < 3 {
		return ""
	}
	if nonNameTokens[foldString(name)] {
		return ""
	}
	return name
}

// classifyEntity decides person vs organization: a company suffix, an
// organizational keyword, or more than two capitalized tokens all indicate
// an organization
func classifyEntity(name string) models.EntityType {
	folded := foldString(name)

	for _, suffix := range organizationSuffixes {
		if strings.Contains(folded, suffix) {
			return models.EntityOrganization
		}
	}
	for _, keyword := range organizationKeywords {
		if countOccurrences(normalize(name).text, keyword) > 0 {
			return models.EntityOrganization
		}
	}

	capitalized := 0
	for _, field := range strings.Fields(name) {
		r := []rune(field)[0]
		if r >= 'A' && r <= 'Z' || strings.ContainsRune("ŠĐČĆŽ", r) {
			capitalized++
		}
	}
	if capitalized > 2 {
		return models.EntityOrganization
	}
	return models.EntityPerson
}

// DetectParties extracts party mentions from document text, deduplicated by
// exact cleaned name. The first role claimed for a name wins.
func DetectParties(text string) []models.PartyMention {
	var parties []models.PartyMention
	seen := make(map[string]bool)

	add := func(rawName string, role models.PartyRole) {
		name := cleanPartyName(rawName)
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		parties = append(parties, models.PartyMention{
			Name:       name,
			Role:       role,
			EntityType: classifyEntity(name),
		})
	}

	for _, pattern := range rolePatterns {
		for _, m := range pattern.re.FindAllStringSubmatch(text, -1) {
			add(m[1], pattern.role)
		}
	}

	for _, m := range versusPattern.FindAllStringSubmatch(text, -1) {
		add(m[1], models.RolePlaintiff)
		add(m[2], models.RoleDefendant)
	}

	for _, m := range betweenPattern.FindAllStringSubmatch(text, -1) {
		add(m[1], models.RoleParty)
		add(m[2], models.RoleParty)
	}

	return parties
}
