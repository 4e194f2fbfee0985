package model

// ErrorType classifies an injected translation error
type ErrorType string

const (
	ErrorMedicalSubstitution ErrorType = "medical_substitution" // Similar-sounding medical term swapped in
	ErrorNumberSubstitution  ErrorType = "number_substitution"  // Dosage/quantity misheard (fifteen vs fifty)
	ErrorQualifierOmission   ErrorType = "qualifier_omission"   // Critical qualifier dropped (not, never, ...)
	ErrorTemporalConfusion   ErrorType = "temporal_confusion"   // Temporal/directional term inverted
)

// Severity indicates the patient-safety impact of an error type
type Severity string

const (
	SeverityMinor    Severity = "minor"
	SeverityCritical Severity = "critical"
)

// Severity classifies the error type by patient-safety impact.
// Number and qualifier errors change dosage or negation and are critical.
func (t ErrorType) Severity() Severity {
	switch t {
	case ErrorNumberSubstitution, ErrorQualifierOmission:
		return SeverityCritical
	default:
		return SeverityMinor
	}
}

// ErrorRecord describes one injected alteration
type ErrorRecord struct {
	Position  int       `json:"position"`             // Zero-based token index within the text
	Original  string    `json:"original"`             // Verbatim token, punctuation and casing intact
	Modified  string    `json:"modified"`             // Replacement token; empty string for omission
	Type      ErrorType `json:"error_type"`           // Which strategy produced the error
	TurnIndex *int      `json:"turn_index,omitempty"` // Conversation turn (only set in conversation mode)
}
