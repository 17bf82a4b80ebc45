package domain

// Rubric is the fixed 12-criterion judgement the oracle must return for a
// hotel reply. Boolean-only on purpose: the aggregate score is derived and
// auditable per criterion instead of trusting a bare number from the model.
type Rubric struct {
	ProfessionalTone    bool `json:"professional_tone"`
	LanguageAppropriate bool `json:"language_appropriate"`
	AddressedPositive   bool `json:"addressed_positive"`
	AddressedNegative   bool `json:"addressed_negative"`
	NamedGuest          bool `json:"named_guest"`
	NamedHotelier       bool `json:"named_hotelier"`
	Kind                bool `json:"kind"`
	Concise             bool `json:"concise"`
	Grateful            bool `json:"grateful"`
	InvitesReturn       bool `json:"invites_return"`
	CorrectSyntax       bool `json:"correct_syntax"`
	Personal            bool `json:"personal"`
}

// RubricCriteria is the number of fields in Rubric.
const RubricCriteria = 12

func (r Rubric) criteria() [RubricCriteria]bool {
	return [RubricCriteria]bool{
		r.ProfessionalTone, r.LanguageAppropriate, r.AddressedPositive,
		r.AddressedNegative, r.NamedGuest, r.NamedHotelier,
		r.Kind, r.Concise, r.Grateful,
		r.InvitesReturn, r.CorrectSyntax, r.Personal,
	}
}

// TrueCount returns how many criteria passed.
func (r Rubric) TrueCount() int {
	n := 0
	for _, ok := range r.criteria() {
		if ok {
			n++
		}
	}
	return n
}

// Score maps the rubric onto 0..100; always a multiple of 100/12.
func (r Rubric) Score() float64 {
	return 100 * float64(r.TrueCount()) / RubricCriteria
}

// Insight is the persisted scoring result, one-to-one with a review.
// Re-scoring overwrites in place.
type Insight struct {
	ReviewID int64
	Rubric   Rubric
	Score    float64
}
