package classify

// Category buckets a feed item into exactly one kind of AI-industry event.
type Category string

const (
	CategoryLayoffs       Category = "Layoffs"
	CategoryFunding       Category = "Funding"
	CategoryProductLaunch Category = "Product Launch"
	CategoryRegulation    Category = "Regulation"
	CategoryBreakthrough  Category = "Breakthrough"
	CategoryAcquisition   Category = "Acquisition"
	CategoryGeneral       Category = "General"
)

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)
