package inject

import (
	"strings"
	"unicode"

	"github.com/ppiankov/medgarble/internal/model"
)

// appliedError is the outcome of a successful strategy attempt.
// An empty replacement means the token is omitted on rejoin.
type appliedError struct {
	replacement string
	errorType   model.ErrorType
}

// strategy attempts one error kind on a token. original is the verbatim
// token; clean is its lowercased, punctuation-stripped form used for table
// lookups.
type strategy func(original, clean string) (appliedError, bool)

// applyRandomError tries the four strategies in a freshly shuffled order and
// returns the first hit. Shuffling per token keeps any one error type from
// always winning on tokens that qualify for more than one table.
func (inj *Injector) applyRandomError(original string) (appliedError, bool) {
	clean := cleanToken(original)

	order := make([]strategy, len(inj.strategies))
	copy(order, inj.strategies)
	inj.rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	for _, try := range order {
		if result, ok := try(original, clean); ok {
			return result, true
		}
	}
	return appliedError{}, false
}

// tryMedicalSubstitution swaps in a similar-sounding medical term, chosen
// uniformly among the candidates for the cleaned token.
func (inj *Injector) tryMedicalSubstitution(original, clean string) (appliedError, bool) {
	candidates, ok := inj.rules.MedicalCandidates(clean)
	if !ok {
		return appliedError{}, false
	}
	replacement := candidates[inj.rng.Intn(len(candidates))]
	replacement = matchCase(original, replacement) + trailingPunctuation(original)
	return appliedError{replacement: replacement, errorType: model.ErrorMedicalSubstitution}, true
}

// tryNumberSubstitution applies the deterministic number confusion.
// Numerals have no case, so only punctuation is reapplied.
func (inj *Injector) tryNumberSubstitution(original, clean string) (appliedError, bool) {
	replacement, ok := inj.rules.NumberReplacement(clean)
	if !ok {
		return appliedError{}, false
	}
	replacement += trailingPunctuation(original)
	return appliedError{replacement: replacement, errorType: model.ErrorNumberSubstitution}, true
}

// tryQualifierOmission drops an omittable qualifier with conditional
// probability 0.3. A failed roll is not a hit: the caller falls through to
// the next strategy in the shuffled order.
func (inj *Injector) tryQualifierOmission(original, clean string) (appliedError, bool) {
	if !inj.rules.IsOmittableQualifier(clean) {
		return appliedError{}, false
	}
	if inj.rng.Float64() < 0.3 {
		return appliedError{replacement: "", errorType: model.ErrorQualifierOmission}, true
	}
	return appliedError{}, false
}

// tryTemporalConfusion applies the deterministic semantically-opposed
// replacement for temporal/directional terms.
func (inj *Injector) tryTemporalConfusion(original, clean string) (appliedError, bool) {
	replacement, ok := inj.rules.TemporalReplacement(clean)
	if !ok {
		return appliedError{}, false
	}
	replacement = matchCase(original, replacement) + trailingPunctuation(original)
	return appliedError{replacement: replacement, errorType: model.ErrorTemporalConfusion}, true
}

// cleanToken lowercases a token and strips everything except letters,
// digits, and underscores. A punctuation-only token cleans to "" and can
// never match a table.
func cleanToken(token string) string {
	var b strings.Builder
	for _, r := range token {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// matchCase uppercases the replacement's first rune when the original
// token starts with an uppercase rune.
func matchCase(original, replacement string) string {
	origRunes := []rune(original)
	if len(origRunes) == 0 || !unicode.IsUpper(origRunes[0]) {
		return replacement
	}
	replRunes := []rune(replacement)
	if len(replRunes) == 0 {
		return replacement
	}
	replRunes[0] = unicode.ToUpper(replRunes[0])
	return string(replRunes)
}

// trailingPunctuation returns the original token's trailing run of
// non-alphanumeric runes, verbatim.
func trailingPunctuation(token string) string {
	runes := []rune(token)
	end := len(runes)
	for end > 0 {
		r := runes[end-1]
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			break
		}
		end--
	}
	return string(runes[end:])
}
