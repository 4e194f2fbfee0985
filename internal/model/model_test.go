package model

import "testing"

func TestErrorTypeSeverity(t *testing.T) {
	tests := []struct {
		errType  ErrorType
		expected Severity
	}{
		{ErrorMedicalSubstitution, SeverityMinor},
		{ErrorNumberSubstitution, SeverityCritical},
		{ErrorQualifierOmission, SeverityCritical},
		{ErrorTemporalConfusion, SeverityMinor},
	}

	for _, tt := range tests {
		if got := tt.errType.Severity(); got != tt.expected {
			t.Errorf("%s: expected severity %s, got %s", tt.errType, tt.expected, got)
		}
	}
}

func TestSummarize(t *testing.T) {
	turnIndex := 0
	records := []ErrorRecord{
		{Position: 1, Original: "asthma", Modified: "anemia", Type: ErrorMedicalSubstitution},
		{Position: 3, Original: "fifteen", Modified: "fifty", Type: ErrorNumberSubstitution, TurnIndex: &turnIndex},
		{Position: 5, Original: "not", Modified: "", Type: ErrorQualifierOmission},
		{Position: 7, Original: "before", Modified: "after", Type: ErrorTemporalConfusion},
	}

	summary := Summarize(records)

	if summary.Total != 4 {
		t.Errorf("expected total 4, got %d", summary.Total)
	}
	if summary.Critical != 2 {
		t.Errorf("expected 2 critical, got %d", summary.Critical)
	}
	for _, errType := range []ErrorType{
		ErrorMedicalSubstitution, ErrorNumberSubstitution,
		ErrorQualifierOmission, ErrorTemporalConfusion,
	} {
		if summary.ByType[errType] != 1 {
			t.Errorf("expected 1 %s, got %d", errType, summary.ByType[errType])
		}
	}
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil)

	if summary.Total != 0 || summary.Critical != 0 {
		t.Errorf("expected zero summary, got %+v", summary)
	}
	if summary.ByType != nil {
		t.Error("empty summaries must not carry an empty by_type map")
	}
}

func TestConversationClone(t *testing.T) {
	original := Conversation{
		Title: "Original",
		Turns: []Turn{
			{Speaker: "Doctor", Text: "Hello."},
			{Speaker: "Patient", Text: "Hi."},
		},
	}

	clone := original.Clone()
	clone.Turns[0].Text = "mutated"

	if original.Turns[0].Text != "Hello." {
		t.Error("mutating a clone must not affect the original")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Inject.ErrorProbability <= 0 || cfg.Inject.ErrorProbability >= 1 {
		t.Errorf("default probability must be in (0,1), got %.2f", cfg.Inject.ErrorProbability)
	}
	if cfg.Concurrency.Workers <= 0 {
		t.Errorf("default workers must be positive, got %d", cfg.Concurrency.Workers)
	}
	if cfg.LLM.Provider != "" {
		t.Error("LLM generation must be disabled by default")
	}
	if !cfg.Cache.Enabled || cfg.Cache.TTLDays <= 0 {
		t.Errorf("default cache settings broken: %+v", cfg.Cache)
	}
}
