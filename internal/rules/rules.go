package rules

import "strings"

// Ruleset holds the four error rule tables.
// All keys are lowercase; the Add* methods normalize at the boundary so
// callers can extend or override rules at runtime without a rebuild step.
type Ruleset struct {
	medical    map[string][]string // term -> candidate replacements (1+)
	numbers    map[string]string   // numeral token -> single replacement
	qualifiers map[string]struct{} // tokens eligible for omission
	temporal   map[string]string   // token -> semantically opposed replacement
}

// NewRuleset creates an empty ruleset
func NewRuleset() *Ruleset {
	return &Ruleset{
		medical:    make(map[string][]string),
		numbers:    make(map[string]string),
		qualifiers: make(map[string]struct{}),
		temporal:   make(map[string]string),
	}
}

// DefaultRuleset returns a ruleset preloaded with the built-in confusion
// tables: similar-sounding medical terms, commonly misheard numbers,
// omittable qualifiers, and temporal/directional opposites.
func DefaultRuleset() *Ruleset {
	r := NewRuleset()

	for term, candidates := range map[string][]string{
		"hypertension": {"hypotension", "hyperextension"},
		"hypotension":  {"hypertension"},
		"infection":    {"inflammation", "infusion"},
		"inflammation": {"infection"},
		"prescription": {"proscription", "description"},
		"dose":         {"does", "dosage"},
		"tablet":       {"capsule"},
		"capsule":      {"tablet"},
		"chronic":      {"acute"},
		"acute":        {"chronic"},
		"malignant":    {"benign"},
		"benign":       {"malignant"},
		"symptom":      {"syndrome"},
		"diagnosis":    {"prognosis"},
		"prognosis":    {"diagnosis"},
		"allergy":      {"allergic"},
		"breathe":      {"breath"},
		"breath":       {"breathe"},
		"ingest":       {"inject"},
		"inject":       {"ingest"},
		"oral":         {"aural"},
		"bacteria":     {"virus"},
		"virus":        {"bacteria"},
	} {
		r.AddMedicalSubstitution(term, candidates...)
	}

	// Symmetric mishearing pairs, spelled-out and digit forms
	for from, to := range map[string]string{
		"fifteen":  "fifty",
		"fifty":    "fifteen",
		"thirteen": "thirty",
		"thirty":   "thirteen",
		"fourteen": "forty",
		"forty":    "fourteen",
		"15":       "50",
		"50":       "15",
		"13":       "30",
		"30":       "13",
		"14":       "40",
		"40":       "14",
	} {
		r.AddNumberSubstitution(from, to)
	}

	for _, q := range []string{
		"not", "no", "without", "never", "rarely", "sometimes",
		"often", "always", "very", "slightly", "mildly", "severely",
	} {
		r.AddOmittableQualifier(q)
	}

	for from, to := range map[string]string{
		"before":      "after",
		"after":       "before",
		"morning":     "evening",
		"evening":     "morning",
		"daily":       "weekly",
		"weekly":      "daily",
		"increase":    "decrease",
		"decrease":    "increase",
		"start":       "stop",
		"stop":        "start",
		"continue":    "discontinue",
		"discontinue": "continue",
	} {
		r.AddTemporalConfusion(from, to)
	}

	return r
}

// AddMedicalSubstitution adds or overrides the candidate replacements for a
// term. Empty terms and empty candidate lists are ignored.
func (r *Ruleset) AddMedicalSubstitution(term string, candidates ...string) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" || len(candidates) == 0 {
		return
	}
	list := make([]string, len(candidates))
	copy(list, candidates)
	r.medical[term] = list
}

// AddNumberSubstitution adds or overrides a single number confusion.
// Call twice for a symmetric pair.
func (r *Ruleset) AddNumberSubstitution(from, to string) {
	from = strings.ToLower(strings.TrimSpace(from))
	if from == "" || to == "" {
		return
	}
	r.numbers[from] = to
}

// AddOmittableQualifier marks a token as eligible for omission
func (r *Ruleset) AddOmittableQualifier(qualifier string) {
	qualifier = strings.ToLower(strings.TrimSpace(qualifier))
	if qualifier == "" {
		return
	}
	r.qualifiers[qualifier] = struct{}{}
}

// AddTemporalConfusion adds or overrides a single temporal confusion.
// Call twice for a symmetric pair.
func (r *Ruleset) AddTemporalConfusion(from, to string) {
	from = strings.ToLower(strings.TrimSpace(from))
	if from == "" || to == "" {
		return
	}
	r.temporal[from] = to
}

// MedicalCandidates returns the candidate replacements for a cleaned token
func (r *Ruleset) MedicalCandidates(clean string) ([]string, bool) {
	candidates, ok := r.medical[clean]
	return candidates, ok
}

// NumberReplacement returns the replacement for a cleaned numeral token
func (r *Ruleset) NumberReplacement(clean string) (string, bool) {
	replacement, ok := r.numbers[clean]
	return replacement, ok
}

// IsOmittableQualifier reports whether a cleaned token may be omitted
func (r *Ruleset) IsOmittableQualifier(clean string) bool {
	_, ok := r.qualifiers[clean]
	return ok
}

// TemporalReplacement returns the opposed replacement for a cleaned token
func (r *Ruleset) TemporalReplacement(clean string) (string, bool) {
	replacement, ok := r.temporal[clean]
	return replacement, ok
}

// Counts returns the number of entries per table (medical, number,
// qualifier, temporal). Used for diagnostics output.
func (r *Ruleset) Counts() (int, int, int, int) {
	return len(r.medical), len(r.numbers), len(r.qualifiers), len(r.temporal)
}
