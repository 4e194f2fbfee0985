package inject

import (
	"math/rand"
	"strings"
	"time"

	"github.com/ppiankov/medgarble/internal/model"
	"github.com/ppiankov/medgarble/internal/rules"
)

// Injector inserts subtle translation errors into medical dialogue text.
//
// Each injector owns its random generator, so separate instances are
// independently reproducible. One instance must not be shared across
// goroutines: seeding and drawing interleaved from two callers would break
// the reproducibility contract.
type Injector struct {
	errorProbability float64
	rules            *rules.Ruleset
	rng              *rand.Rand
	strategies       []strategy
}

// NewInjector creates an injector with the default rule tables.
// errorProbability is the per-token chance of attempting an error; values
// outside [0,1] are not rejected and saturate naturally.
func NewInjector(errorProbability float64) *Injector {
	return NewInjectorWithRules(errorProbability, rules.DefaultRuleset())
}

// NewInjectorWithRules creates an injector with a caller-supplied ruleset
func NewInjectorWithRules(errorProbability float64, ruleset *rules.Ruleset) *Injector {
	inj := &Injector{
		errorProbability: errorProbability,
		rules:            ruleset,
		rng:              rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	inj.strategies = []strategy{
		inj.tryMedicalSubstitution,
		inj.tryNumberSubstitution,
		inj.tryQualifierOmission,
		inj.tryTemporalConfusion,
	}
	return inj
}

// Rules returns the ruleset so callers can add or override entries between
// calls. Mutations take effect immediately; there is no compile step.
func (inj *Injector) Rules() *rules.Ruleset {
	return inj.rules
}

// ErrorProbability returns the configured per-token error probability
func (inj *Injector) ErrorProbability() float64 {
	return inj.errorProbability
}

// Inject inserts errors into a single text. Tokens are whitespace-delimited;
// the result is the tokens rejoined with single spaces, minus any omitted
// ones. Records are ordered by ascending token position, at most one per
// token. The generator continues from its current state, so repeated
// unseeded calls are deliberately non-reproducible.
func (inj *Injector) Inject(text string) (string, []model.ErrorRecord) {
	words := strings.Fields(text)
	modified := make([]string, 0, len(words))
	var records []model.ErrorRecord

	for i, word := range words {
		// The probability draw gates attempting an error, it does not
		// guarantee one: a token matching no table passes through.
		if inj.rng.Float64() < inj.errorProbability {
			if result, ok := inj.applyRandomError(word); ok {
				records = append(records, model.ErrorRecord{
					Position: i,
					Original: word,
					Modified: result.replacement,
					Type:     result.errorType,
				})
				if result.replacement != "" {
					modified = append(modified, result.replacement)
				}
				continue
			}
		}
		modified = append(modified, word)
	}

	return strings.Join(modified, " "), records
}

// InjectSeeded re-seeds the generator and runs Inject. Equal seeds on equal
// text yield byte-identical results.
func (inj *Injector) InjectSeeded(text string, seed int64) (string, []model.ErrorRecord) {
	inj.rng.Seed(seed)
	return inj.Inject(text)
}

// InjectConversation applies Inject to every turn in order on the one
// generator, tagging each record with its turn index. Speaker labels pass
// through unchanged.
func (inj *Injector) InjectConversation(turns []model.Turn) ([]model.Turn, []model.ErrorRecord) {
	modified := make([]model.Turn, 0, len(turns))
	var all []model.ErrorRecord

	for idx, turn := range turns {
		text, records := inj.Inject(turn.Text)
		modified = append(modified, model.Turn{
			Speaker: turn.Speaker,
			Text:    text,
		})
		turnIndex := idx
		for _, rec := range records {
			rec.TurnIndex = &turnIndex
			all = append(all, rec)
		}
	}

	return modified, all
}

// InjectConversationSeeded seeds the generator once, before the first turn,
// then processes the whole conversation sequentially. One top-level seed
// reproduces the entire conversation end to end.
func (inj *Injector) InjectConversationSeeded(turns []model.Turn, seed int64) ([]model.Turn, []model.ErrorRecord) {
	inj.rng.Seed(seed)
	return inj.InjectConversation(turns)
}
