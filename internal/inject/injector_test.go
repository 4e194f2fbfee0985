package inject

import (
	"strings"
	"testing"

	"github.com/ppiankov/medgarble/internal/model"
	"github.com/ppiankov/medgarble/internal/rules"
)

func TestInjector_Reproducibility(t *testing.T) {
	injector := NewInjector(0.3)
	text := "The patient has hypertension and takes fifteen milligrams daily."

	result1, errors1 := injector.InjectSeeded(text, 42)
	result2, errors2 := injector.InjectSeeded(text, 42)

	if result1 != result2 {
		t.Errorf("same seed produced different texts:\n  %q\n  %q", result1, result2)
	}
	if len(errors1) != len(errors2) {
		t.Fatalf("same seed produced %d vs %d errors", len(errors1), len(errors2))
	}
	for i := range errors1 {
		if errors1[i].Position != errors2[i].Position ||
			errors1[i].Original != errors2[i].Original ||
			errors1[i].Modified != errors2[i].Modified ||
			errors1[i].Type != errors2[i].Type {
			t.Errorf("record %d differs between runs: %+v vs %+v", i, errors1[i], errors2[i])
		}
	}
}

func TestInjector_DifferentSeedsCanDiffer(t *testing.T) {
	injector := NewInjector(0.5)
	text := "The patient has chronic hypertension and takes fifteen milligrams before meals daily."

	// Not guaranteed for any two seeds, so scan a few
	base, _ := injector.InjectSeeded(text, 1)
	differs := false
	for seed := int64(2); seed < 30; seed++ {
		if result, _ := injector.InjectSeeded(text, seed); result != base {
			differs = true
			break
		}
	}
	if !differs {
		t.Error("expected at least one of 28 seeds to produce a different result")
	}
}

func TestInjector_ZeroProbability(t *testing.T) {
	injector := NewInjector(0.0)
	text := "The patient has chronic hypertension and takes fifteen milligrams daily before breakfast."

	modified, errors := injector.InjectSeeded(text, 100)

	if modified != text {
		t.Errorf("with probability 0 the text must be unchanged, got %q", modified)
	}
	if len(errors) != 0 {
		t.Errorf("with probability 0 no errors may be produced, got %d", len(errors))
	}
}

func TestInjector_NegativeProbabilityNeverInjects(t *testing.T) {
	injector := NewInjector(-1.5)
	text := "Take fifteen milligrams before breakfast daily."

	modified, errors := injector.InjectSeeded(text, 7)
	if modified != text || len(errors) != 0 {
		t.Errorf("negative probability must behave like 0, got %q with %d errors", modified, len(errors))
	}
}

func TestInjector_KnownMedicalSubstitution(t *testing.T) {
	// A ruleset where only one strategy can match makes the outcome
	// deterministic regardless of the shuffle order.
	ruleset := rules.NewRuleset()
	ruleset.AddMedicalSubstitution("asthma", "anemia")

	injector := NewInjectorWithRules(1.0, ruleset)

	modified1, errors1 := injector.InjectSeeded("The patient has asthma.", 42)
	modified2, errors2 := injector.InjectSeeded("The patient has asthma.", 42)

	if modified1 != modified2 {
		t.Errorf("identical seeds must be byte-identical: %q vs %q", modified1, modified2)
	}
	if modified1 != "The patient has anemia." {
		t.Errorf("expected %q, got %q", "The patient has anemia.", modified1)
	}
	if len(errors1) != 1 || len(errors2) != 1 {
		t.Fatalf("expected exactly 1 error, got %d and %d", len(errors1), len(errors2))
	}
	rec := errors1[0]
	if rec.Position != 3 {
		t.Errorf("expected position 3, got %d", rec.Position)
	}
	if rec.Original != "asthma." {
		t.Errorf("expected original %q, got %q", "asthma.", rec.Original)
	}
	if rec.Modified != "anemia." {
		t.Errorf("expected modified %q, got %q", "anemia.", rec.Modified)
	}
	if rec.Type != model.ErrorMedicalSubstitution {
		t.Errorf("expected type %s, got %s", model.ErrorMedicalSubstitution, rec.Type)
	}
	if rec.TurnIndex != nil {
		t.Error("text-level records must not carry a turn index")
	}
}

func TestInjector_KnownNumberSubstitution(t *testing.T) {
	ruleset := rules.NewRuleset()
	ruleset.AddNumberSubstitution("fifteen", "fifty")

	injector := NewInjectorWithRules(1.0, ruleset)

	modified, errors := injector.InjectSeeded("fifteen milligrams", 20)

	if modified != "fifty milligrams" {
		t.Errorf("expected %q, got %q", "fifty milligrams", modified)
	}
	if len(errors) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errors))
	}
	if errors[0].Type != model.ErrorNumberSubstitution {
		t.Errorf("expected type %s, got %s", model.ErrorNumberSubstitution, errors[0].Type)
	}

	// Default tables contain fifteen<->fifty too: the output numeral is
	// never anything but one of the pair.
	injector = NewInjector(1.0)
	for seed := int64(0); seed < 20; seed++ {
		modified, _ := injector.InjectSeeded("fifteen milligrams", seed)
		first := strings.Fields(modified)[0]
		if first != "fifteen" && first != "fifty" {
			t.Errorf("seed %d: numeral became %q, want fifteen or fifty", seed, first)
		}
	}
}

func TestInjector_CapitalizationPreserved(t *testing.T) {
	ruleset := rules.NewRuleset()
	ruleset.AddMedicalSubstitution("hypertension", "hypotension")

	injector := NewInjectorWithRules(1.0, ruleset)

	modified, errors := injector.InjectSeeded("Hypertension", 5)
	if len(errors) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errors))
	}
	if modified != "Hypotension" {
		t.Errorf("expected %q, got %q", "Hypotension", modified)
	}
}

func TestInjector_PunctuationPreserved(t *testing.T) {
	ruleset := rules.NewRuleset()
	ruleset.AddTemporalConfusion("before", "after")

	injector := NewInjectorWithRules(1.0, ruleset)

	modified, errors := injector.InjectSeeded("Before,", 9)
	if len(errors) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errors))
	}
	if modified != "After," {
		t.Errorf("expected %q, got %q", "After,", modified)
	}
	if errors[0].Type != model.ErrorTemporalConfusion {
		t.Errorf("expected type %s, got %s", model.ErrorTemporalConfusion, errors[0].Type)
	}
}

func TestInjector_AtMostOneErrorPerToken(t *testing.T) {
	injector := NewInjector(1.0)
	text := "Do not stop taking fifteen milligrams before breakfast daily without consulting your doctor."

	for seed := int64(0); seed < 50; seed++ {
		_, errors := injector.InjectSeeded(text, seed)
		seen := make(map[int]bool)
		lastPos := -1
		for _, rec := range errors {
			if seen[rec.Position] {
				t.Fatalf("seed %d: position %d appears twice", seed, rec.Position)
			}
			seen[rec.Position] = true
			if rec.Position <= lastPos {
				t.Fatalf("seed %d: records out of order (%d after %d)", seed, rec.Position, lastPos)
			}
			lastPos = rec.Position
		}
	}
}

func TestInjector_OmissionRemovesToken(t *testing.T) {
	ruleset := rules.NewRuleset()
	ruleset.AddOmittableQualifier("not")

	injector := NewInjectorWithRules(1.0, ruleset)
	text := "Do not stop."
	inputTokens := len(strings.Fields(text))

	// The omission itself is behind a 0.3 conditional draw, so scan seeds
	// until one produces it.
	for seed := int64(0); seed < 100; seed++ {
		modified, errors := injector.InjectSeeded(text, seed)
		if len(errors) == 0 {
			if modified != text {
				t.Fatalf("seed %d: no errors recorded but text changed to %q", seed, modified)
			}
			continue
		}

		rec := errors[0]
		if rec.Type != model.ErrorQualifierOmission {
			t.Fatalf("seed %d: unexpected error type %s", seed, rec.Type)
		}
		if rec.Modified != "" {
			t.Errorf("omission record must have empty modified token, got %q", rec.Modified)
		}

		outTokens := strings.Fields(modified)
		if len(outTokens) != inputTokens-1 {
			t.Errorf("omission must drop one token: %d -> %d", inputTokens, len(outTokens))
		}
		if modified != "Do stop." {
			t.Errorf("expected %q, got %q", "Do stop.", modified)
		}
		return
	}
	t.Fatal("no omission produced in 100 seeds; 0.3 conditional draw seems broken")
}

func TestInjector_EmptyText(t *testing.T) {
	injector := NewInjector(1.0)

	modified, errors := injector.InjectSeeded("", 1)
	if modified != "" {
		t.Errorf("empty input must stay empty, got %q", modified)
	}
	if len(errors) != 0 {
		t.Errorf("empty input must produce no errors, got %d", len(errors))
	}
}

func TestInjector_PunctuationOnlyToken(t *testing.T) {
	injector := NewInjector(1.0)

	modified, errors := injector.InjectSeeded("!!! --- ???", 3)
	if modified != "!!! --- ???" {
		t.Errorf("punctuation-only tokens must pass through, got %q", modified)
	}
	if len(errors) != 0 {
		t.Errorf("punctuation-only tokens must produce no errors, got %d", len(errors))
	}
}

func TestInjector_RuntimeRuleExtension(t *testing.T) {
	injector := NewInjector(1.0)

	// Not in the default tables
	modified, errors := injector.InjectSeeded("diabetes", 11)
	if modified != "diabetes" || len(errors) != 0 {
		t.Fatalf("expected no match before extension, got %q with %d errors", modified, len(errors))
	}

	injector.Rules().AddMedicalSubstitution("diabetes", "dialysis")

	modified, errors = injector.InjectSeeded("diabetes", 11)
	if modified != "dialysis" {
		t.Errorf("expected extension to apply, got %q", modified)
	}
	if len(errors) != 1 {
		t.Errorf("expected 1 error after extension, got %d", len(errors))
	}
}

func TestInjector_ConversationStructurePreserved(t *testing.T) {
	injector := NewInjector(0.25)

	turns := []model.Turn{
		{Speaker: "Doctor", Text: "Do you have hypertension?"},
		{Speaker: "Patient", Text: "Yes, I take fifteen milligrams daily."},
		{Speaker: "Doctor", Text: "Good, continue the medication."},
	}

	modified, errors := injector.InjectConversationSeeded(turns, 456)

	if len(modified) != len(turns) {
		t.Fatalf("expected %d turns, got %d", len(turns), len(modified))
	}
	for i, turn := range modified {
		if turn.Speaker != turns[i].Speaker {
			t.Errorf("turn %d: speaker changed from %q to %q", i, turns[i].Speaker, turn.Speaker)
		}
	}
	for _, rec := range errors {
		if rec.TurnIndex == nil {
			t.Fatal("conversation records must carry a turn index")
		}
		if *rec.TurnIndex < 0 || *rec.TurnIndex >= len(turns) {
			t.Errorf("turn index %d out of range [0,%d)", *rec.TurnIndex, len(turns))
		}
	}
}

func TestInjector_ConversationReproducibility(t *testing.T) {
	injector := NewInjector(0.3)

	turns := []model.Turn{
		{Speaker: "Pharmacist", Text: "Take one tablet twice daily, in the morning and evening, after meals."},
		{Speaker: "Patient", Text: "Should I take it before or after meals?"},
		{Speaker: "Pharmacist", Text: "After meals, not before. Never stop without consulting your doctor."},
	}

	modified1, errors1 := injector.InjectConversationSeeded(turns, 789)
	modified2, errors2 := injector.InjectConversationSeeded(turns, 789)

	for i := range modified1 {
		if modified1[i].Text != modified2[i].Text {
			t.Errorf("turn %d differs between identically seeded runs:\n  %q\n  %q",
				i, modified1[i].Text, modified2[i].Text)
		}
	}
	if len(errors1) != len(errors2) {
		t.Fatalf("error counts differ: %d vs %d", len(errors1), len(errors2))
	}
	for i := range errors1 {
		if *errors1[i].TurnIndex != *errors2[i].TurnIndex || errors1[i].Position != errors2[i].Position {
			t.Errorf("record %d differs between runs", i)
		}
	}
}

func TestInjector_ConversationDoesNotMutateInput(t *testing.T) {
	injector := NewInjector(1.0)

	turns := []model.Turn{
		{Speaker: "Doctor", Text: "Your hypertension needs daily medication."},
	}
	originalText := turns[0].Text

	injector.InjectConversationSeeded(turns, 42)

	if turns[0].Text != originalText {
		t.Errorf("input turns must not be mutated, got %q", turns[0].Text)
	}
}
