package classify

import (
	"strings"
	"unicode"
)

// AnalyzeSentiment classifies headline-level sentiment from fixed word
// lists. Each negation token ("not", "no", "n't") dampens both running
// tallies by 0.5, floored at 0. Dampening only touches tallies already
// accumulated, so a leading negation is a no-op; this is crude on
// purpose, not real negation scope. The thresholds are asymmetric:
// positive needs diff >= 1.5 while negative only needs diff <= -1.
func (c *Classifier) AnalyzeSentiment(text string) Sentiment {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})

	var positive, negative float64
	for _, word := range words {
		if c.positiveWords[word] {
			positive++
		}
		if c.negativeWords[word] {
			negative++
		}
		if word == "not" || word == "no" || word == "n't" || strings.HasSuffix(word, "n't") {
			positive = max(0, positive-0.5)
			negative = max(0, negative-0.5)
		}
	}

	diff := positive - negative

	switch {
	case diff >= 1.5:
		return SentimentPositive
	case diff <= -1:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}
