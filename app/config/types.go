package config

// NewsFeed is a single RSS/Atom feed with a curated priority weight used
// as the base engagement score for its articles.
type NewsFeed struct {
	URL      string `yaml:"url"`
	Name     string `yaml:"name"`
	Priority int    `yaml:"priority"`
}

// Sources describes everything the ingestion pipeline pulls from.
type Sources struct {
	Subreddits     []string   `yaml:"subreddits"`
	NewsFeeds      []NewsFeed `yaml:"news_feeds"`
	FundingFeeds   []string   `yaml:"funding_feeds"`
	SocialMaxItems int        `yaml:"social_max_items"`
	NewsMaxItems   int        `yaml:"news_max_items"`
	HackerNewsCap  int        `yaml:"hackernews_cap"`
}

// CategoryKeywords binds a category name to its keyword list. Slice order
// is the deterministic tie-break when two categories score equally.
type CategoryKeywords struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Vocabulary holds every fixed word list the classifier matches against.
// Loaded once at startup and treated as immutable afterwards.
type Vocabulary struct {
	RelevanceTerms []string           `yaml:"relevance_terms"`
	Categories     []CategoryKeywords `yaml:"categories"`
	PositiveWords  []string           `yaml:"positive_words"`
	NegativeWords  []string           `yaml:"negative_words"`
	Companies      []string           `yaml:"companies"`
	Topics         []string           `yaml:"topics"`
}
