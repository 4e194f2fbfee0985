package model

import "time"

// Report is the complete output of one garbling run
type Report struct {
	Title       string    `json:"title,omitempty"` // Conversation title or a label for plain text
	GeneratedAt time.Time `json:"generated_at"`

	ErrorProbability float64 `json:"error_probability"`
	Seed             *int64  `json:"seed,omitempty"` // Absent for unseeded (non-reproducible) runs

	Original Conversation `json:"original"`
	Garbled  Conversation `json:"garbled"`

	Errors  []ErrorRecord `json:"errors"`
	Summary ErrorSummary  `json:"summary"`
}

// ErrorSummary tallies the injected errors
type ErrorSummary struct {
	Total    int               `json:"total"`
	Critical int               `json:"critical"` // number_substitution + qualifier_omission
	ByType   map[ErrorType]int `json:"by_type,omitempty"`
}

// Summarize tallies a slice of error records
func Summarize(errors []ErrorRecord) ErrorSummary {
	summary := ErrorSummary{
		ByType: make(map[ErrorType]int),
	}
	for _, rec := range errors {
		summary.Total++
		summary.ByType[rec.Type]++
		if rec.Type.Severity() == SeverityCritical {
			summary.Critical++
		}
	}
	if summary.Total == 0 {
		summary.ByType = nil
	}
	return summary
}
