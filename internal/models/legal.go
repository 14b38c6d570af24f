package models

// DocumentType is the fixed document taxonomy
type DocumentType string

const (
	DocTypeJudgment        DocumentType = "judgment"
	DocTypeDecision        DocumentType = "decision"
	DocTypeRuling          DocumentType = "ruling"
	DocTypeMotion          DocumentType = "motion"
	DocTypeComplaint       DocumentType = "complaint"
	DocTypeAppeal          DocumentType = "appeal"
	DocTypeIndictment      DocumentType = "indictment"
	DocTypeContract        DocumentType = "contract"
	DocTypePowerOfAttorney DocumentType = "power_of_attorney"
	DocTypeStatement       DocumentType = "statement"
	DocTypeCertificate     DocumentType = "certificate"
	DocTypeStatute         DocumentType = "statute"
	DocTypeOrdinance       DocumentType = "ordinance"
)

// Jurisdiction is the fixed jurisdiction taxonomy
type Jurisdiction string

const (
	JurisdictionCivil          Jurisdiction = "civil"
	JurisdictionCriminal       Jurisdiction = "criminal"
	JurisdictionAdministrative Jurisdiction = "administrative"
	JurisdictionCommercial     Jurisdiction = "commercial"
	JurisdictionLabor          Jurisdiction = "labor"
	JurisdictionFamily         Jurisdiction = "family"
	JurisdictionConstitutional Jurisdiction = "constitutional"
)

// PartyRole is the procedural role of a party mention
type PartyRole string

const (
	RolePlaintiff      PartyRole = "plaintiff"
	RoleDefendant      PartyRole = "defendant"
	RoleApplicant      PartyRole = "applicant"
	RoleProposer       PartyRole = "proposer"
	RoleAccused        PartyRole = "accused"
	RoleAppellant      PartyRole = "appellant"
	RoleOpponent       PartyRole = "opponent"
	RoleAttorney       PartyRole = "attorney"
	RoleRepresentative PartyRole = "representative"
	RoleWitness        PartyRole = "witness"
	RoleExpert         PartyRole = "expert"
	RoleParty          PartyRole = "party"
)

// EntityType distinguishes natural persons from organizations
type EntityType string

const (
	EntityPerson       EntityType = "person"
	EntityOrganization EntityType = "organization"
)

// CourtMention is one detected court reference
type CourtMention struct {
	Raw            string `json:"raw"`
	NormalizedName string `json:"normalized_name"`
	CourtType      string `json:"court_type"`
	City           string `json:"city,omitempty"`
}

// PartyMention is one detected party reference
type PartyMention struct {
	Name       string     `json:"name"`
	Role       PartyRole  `json:"role"`
	EntityType EntityType `json:"entity_type"`
}

// KeyPhraseMatch is one canonical legal phrase found in the document
type KeyPhraseMatch struct {
	Slug            string `json:"slug"`
	CanonicalPhrase string `json:"canonical_phrase"`
	OccurrenceCount int    `json:"occurrence_count"`
	ContextSnippet  string `json:"context_snippet,omitempty"`
}

// LegalMetadata is the merged result of the four independent detectors.
// Empty lists and empty type/jurisdiction are valid results, not errors.
type LegalMetadata struct {
	DocumentType           DocumentType     `json:"document_type,omitempty"`
	DocumentTypeConfidence float64          `json:"document_type_confidence,omitempty"`
	Jurisdiction           Jurisdiction     `json:"jurisdiction,omitempty"`
	JurisdictionConfidence float64          `json:"jurisdiction_confidence,omitempty"`
	Courts                 []CourtMention   `json:"courts,omitempty"`
	Parties                []PartyMention   `json:"parties,omitempty"`
	KeyPhrases             []KeyPhraseMatch `json:"key_phrases,omitempty"`
}
