package ingest

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/rs1134/ai-disruption-tracker/app/database"
)

// minRoundAmountM filters out sub-$5M rounds, which are mostly noise in
// the news feeds.
const minRoundAmountM = 5

var (
	roundAmountRe = regexp.MustCompile(`(?i)[€$£¥]\s*([\d,.]+)\s*([BMK])`)

	// A funding headline almost always opens with the company name
	// followed by a raise verb.
	companyNameRe = regexp.MustCompile(`^([A-Z][A-Za-z0-9\s.,'&-]{2,40}?)\s+(?i:raises?|secures?|closes?|lands?|gets?|nets?|bags?|announces?|completes?)`)

	seriesRoundRe = regexp.MustCompile(`(?i)series\s+([a-h])`)
	slugStripRe   = regexp.MustCompile(`[^a-z0-9]+`)
)

// FundingFetchResult summarizes one funding ingestion run.
type FundingFetchResult struct {
	Fetched  int      `json:"fetched"`
	Inserted int      `json:"inserted"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}

// FundingAdapter mines funding-focused news feeds for structured
// financing rounds. Headlines that do not parse cleanly are skipped
// rather than guessed at.
type FundingAdapter struct {
	httpClient  *http.Client
	parser      *gofeed.Parser
	feeds       []string
	userAgent   string
	fundingRepo database.FundingRepository
}

func NewFundingAdapter(httpClient *http.Client, feeds []string, userAgent string, fundingRepo database.FundingRepository) *FundingAdapter {
	return &FundingAdapter{
		httpClient:  httpClient,
		parser:      gofeed.NewParser(),
		feeds:       feeds,
		userAgent:   userAgent,
		fundingRepo: fundingRepo,
	}
}

// Run fetches every funding feed, extracts rounds, and upserts them.
// The same round reported by multiple feeds collapses onto one ID.
func (a *FundingAdapter) Run(ctx context.Context) FundingFetchResult {
	result := FundingFetchResult{Errors: []string{}}
	seen := make(map[string]bool)

	for i, url := range a.feeds {
		if i > 0 {
			if err := sleepCtx(ctx, rssStagger); err != nil {
				return result
			}
		}

		data, err := fetchBytes(ctx, a.httpClient, url, a.userAgent, rssAccept)
		if err != nil {
			slog.Error("Funding feed fetch failed", "url", url, "error", err)
			result.Errors = append(result.Errors, err.Error())
			continue
		}

		parsed, err := a.parser.Parse(bytes.NewReader(data))
		if err != nil {
			slog.Error("Funding feed parse failed", "url", url, "error", err)
			result.Errors = append(result.Errors, err.Error())
			continue
		}

		result.Fetched += len(parsed.Items)

		for _, entry := range parsed.Items {
			round, ok := extractRound(entry)
			if !ok || seen[round.ID] {
				result.Skipped++
				continue
			}
			seen[round.ID] = true

			if err := a.fundingRepo.UpsertRound(round); err != nil {
				slog.Error("Funding round upsert failed", "id", round.ID, "error", err)
				result.Errors = append(result.Errors, err.Error())
				continue
			}
			result.Inserted++
		}
	}

	return result
}

// extractRound parses a structured funding round out of a headline and
// its summary. Rounds with no identifiable company or amount are
// rejected.
func extractRound(entry *gofeed.Item) (database.FundingRound, bool) {
	fullText := entry.Title + " " + entry.Description

	amountMatch := roundAmountRe.FindString(fullText)
	if amountMatch == "" {
		return database.FundingRound{}, false
	}

	amountM, ok := parseAmountToM(amountMatch)
	if !ok || amountM < minRoundAmountM {
		return database.FundingRound{}, false
	}

	companyMatch := companyNameRe.FindStringSubmatch(entry.Title)
	if companyMatch == nil {
		return database.FundingRound{}, false
	}
	company := strings.TrimSpace(companyMatch[1])

	display := strings.Join(strings.Fields(amountMatch), "")

	announcedDate := time.Now()
	if entry.PublishedParsed != nil {
		announcedDate = *entry.PublishedParsed
	}

	id := slugify(company) + "-" + slugify(display) + "-" + announcedDate.Format("200601")

	return database.FundingRound{
		ID:            id,
		CompanyName:   company,
		AmountM:       &amountM,
		Display:       display,
		RoundType:     guessRoundType(fullText),
		Industry:      guessIndustry(fullText),
		Location:      guessLocation(fullText),
		AnnouncedDate: announcedDate,
		SourceURL:     entry.Link,
		Description:   entry.Title,
	}, true
}

// parseAmountToM normalizes "$1.5B" style amounts to millions.
func parseAmountToM(raw string) (float64, bool) {
	m := roundAmountRe.FindStringSubmatch(strings.ReplaceAll(raw, ",", ""))
	if m == nil {
		return 0, false
	}

	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}

	switch strings.ToUpper(m[2]) {
	case "B":
		return math.Round(n * 1000), true
	case "M":
		return math.Round(n), true
	case "K":
		return math.Round(n / 1000), true
	}
	return 0, false
}

func guessRoundType(text string) string {
	t := strings.ToLower(text)

	if m := seriesRoundRe.FindStringSubmatch(t); m != nil {
		return "Series " + strings.ToUpper(m[1])
	}

	switch {
	case strings.Contains(t, "pre-seed") || strings.Contains(t, "preseed"):
		return "Pre-Seed"
	case strings.Contains(t, "seed"):
		return "Seed"
	case strings.Contains(t, "strategic"):
		return "Strategic"
	case strings.Contains(t, "ipo") || strings.Contains(t, "public offering"):
		return "IPO"
	case strings.Contains(t, "acquisition") || strings.Contains(t, "acquires") || strings.Contains(t, "acquired"):
		return "Acquisition"
	case strings.Contains(t, "grant"):
		return "Grant"
	}
	return "Undisclosed"
}

var industryRules = []struct {
	industry string
	terms    []string
}{
	{"AI Robotics", []string{"robot"}},
	{"Autonomous Vehicles", []string{"self-driving", "autonomous vehicle", "waymo", "cruise"}},
	{"AI Healthcare", []string{"drug", "pharma", "medic", "health", "genomic"}},
	{"AI Legal", []string{"legal", "law firm", "attorney"}},
	{"AI Security", []string{"security", "cybersec"}},
	{"AI Dev Tools", []string{"code", "coding", "developer", "programming"}},
	{"AI Search", []string{"search", "perplexity"}},
	{"AI Video", []string{"video", "animation"}},
	{"AI Audio", []string{"audio", "voice", "speech", "music"}},
	{"AI Infrastructure", []string{"chip", "semiconductor", "hardware", "inference", "gpu"}},
	{"AI Enterprise", []string{"enterprise", "b2b", "saas"}},
	{"AI Agents", []string{"agent"}},
	{"AI Open Source", []string{"open source", "open-source", "hugging"}},
	{"AI Safety", []string{"safety", "alignment"}},
	{"AI Customer Service", []string{"customer service", "support", "chatbot"}},
	{"AI Data", []string{"data", "dataset", "annotation"}},
	{"AI Foundation Models", []string{"model", "foundation", "llm", "language model"}},
}

func guessIndustry(text string) string {
	t := strings.ToLower(text)

	for _, rule := range industryRules {
		for _, term := range rule.terms {
			if strings.Contains(t, term) {
				return rule.industry
			}
		}
	}
	return "AI Platform"
}

var locationRules = []struct {
	location string
	re       *regexp.Regexp
}{
	{"China", regexp.MustCompile(`(?i)beijing|china|shanghai|hangzhou|shenzhen`)},
	{"London, UK", regexp.MustCompile(`(?i)london|uk|united kingdom`)},
	{"Paris, France", regexp.MustCompile(`(?i)paris|france`)},
	{"Toronto, Canada", regexp.MustCompile(`(?i)toronto|canada`)},
	{"New York, US", regexp.MustCompile(`(?i)new york`)},
	{"Seattle, US", regexp.MustCompile(`(?i)seattle`)},
	{"San Francisco, US", regexp.MustCompile(`(?i)san francisco|sf bay|silicon valley|palo alto|menlo park|mountain view`)},
	{"Tel Aviv, Israel", regexp.MustCompile(`(?i)israel|tel aviv`)},
	{"India", regexp.MustCompile(`(?i)india|bangalore|bengaluru`)},
	{"Singapore", regexp.MustCompile(`(?i)singapore`)},
}

func guessLocation(text string) string {
	for _, rule := range locationRules {
		if rule.re.MatchString(text) {
			return rule.location
		}
	}
	return "US"
}

func slugify(s string) string {
	return strings.Trim(slugStripRe.ReplaceAllString(strings.ToLower(s), "-"), "-")
}
