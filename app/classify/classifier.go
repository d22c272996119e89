package classify

import (
	"strings"

	"github.com/rs1134/ai-disruption-tracker/app/config"
)

// Classifier is a set of pure keyword heuristics over an immutable
// vocabulary. All methods are deterministic functions of their text input.
type Classifier struct {
	relevanceTerms []string
	categories     []categoryVocab
	positiveWords  map[string]bool
	negativeWords  map[string]bool
	companies      []vocabEntry
	topics         []vocabEntry
}

type categoryVocab struct {
	name     Category
	keywords []string
}

type vocabEntry struct {
	display string
	lower   string
}

func NewClassifier(vocab *config.Vocabulary) *Classifier {
	c := &Classifier{
		relevanceTerms: lowerAll(vocab.RelevanceTerms),
		positiveWords:  make(map[string]bool, len(vocab.PositiveWords)),
		negativeWords:  make(map[string]bool, len(vocab.NegativeWords)),
	}

	for _, cat := range vocab.Categories {
		c.categories = append(c.categories, categoryVocab{
			name:     Category(cat.Name),
			keywords: lowerAll(cat.Keywords),
		})
	}

	for _, w := range vocab.PositiveWords {
		c.positiveWords[strings.ToLower(w)] = true
	}
	for _, w := range vocab.NegativeWords {
		c.negativeWords[strings.ToLower(w)] = true
	}

	// Companies before topics: tag insertion order follows list order.
	for _, name := range vocab.Companies {
		c.companies = append(c.companies, vocabEntry{display: name, lower: strings.ToLower(name)})
	}
	for _, kw := range vocab.Topics {
		c.topics = append(c.topics, vocabEntry{display: kw, lower: strings.ToLower(kw)})
	}

	return c
}

// IsRelevant is a cheap recall-oriented gate: true iff the text contains
// at least one AI-domain term. Substring match, so short terms over-match;
// accepted, since false positives are filtered later and false negatives
// would lose items for good.
func (c *Classifier) IsRelevant(text string) bool {
	lower := strings.ToLower(text)
	for _, term := range c.relevanceTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// DetectCategory scores each category by counting keyword containment
// matches and returns the highest-scoring one. Equal scores resolve to the
// category declared first in the vocabulary, which keeps the result
// deterministic across runs. Zero matches everywhere yields General.
func (c *Classifier) DetectCategory(text string) Category {
	lower := strings.ToLower(text)

	best := CategoryGeneral
	bestScore := 0
	for _, cat := range c.categories {
		score := 0
		for _, kw := range cat.keywords {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		if score > bestScore {
			best = cat.name
			bestScore = score
		}
	}

	return best
}

// ExtractTags returns up to 8 known company names and topic keywords found
// in the text, companies first, in vocabulary order.
func (c *Classifier) ExtractTags(text string) []string {
	lower := strings.ToLower(text)

	var tags []string
	seen := make(map[string]bool)
	for _, entry := range c.companies {
		if strings.Contains(lower, entry.lower) && !seen[entry.display] {
			tags = append(tags, entry.display)
			seen[entry.display] = true
		}
	}
	for _, entry := range c.topics {
		if strings.Contains(lower, entry.lower) && !seen[entry.display] {
			tags = append(tags, entry.display)
			seen[entry.display] = true
		}
	}

	if len(tags) > 8 {
		tags = tags[:8]
	}
	return tags
}

// ExtractMentionedCompanies returns every known company name present in
// the text, in vocabulary order.
func (c *Classifier) ExtractMentionedCompanies(text string) []string {
	lower := strings.ToLower(text)

	var companies []string
	for _, entry := range c.companies {
		if strings.Contains(lower, entry.lower) {
			companies = append(companies, entry.display)
		}
	}
	return companies
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}
