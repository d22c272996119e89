package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/rs1134/ai-disruption-tracker/app/cache"
	"github.com/rs1134/ai-disruption-tracker/app/config"
	"github.com/rs1134/ai-disruption-tracker/app/database"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// routedTransport serves canned bodies keyed by full request URL.
// Unrouted URLs fail the request, so a test that forgets a source sees
// the adapter's error path instead of touching the network.
func routedTransport(routes map[string]string) http.RoundTripper {
	return roundTripFunc(func(req *http.Request) (*http.Response, error) {
		body, ok := routes[req.URL.String()]
		if !ok {
			return nil, fmt.Errorf("unrouted request: %s", req.URL)
		}
		return &http.Response{
			StatusCode: http.StatusOK,
			Status:     "200 OK",
			Header:     make(http.Header),
			Body:       io.NopCloser(strings.NewReader(body)),
		}, nil
	})
}

const hackerNewsTopStoriesURL = "https://hacker-news.firebaseio.com/v0/topstories.json"

type stubItemRepo struct {
	upserts []database.FeedItem
	failID  string
	sweeps  int
}

func (s *stubItemRepo) UpsertItem(item database.FeedItem) error {
	if s.failID != "" && item.ID == s.failID {
		return fmt.Errorf("upsert rejected")
	}
	s.upserts = append(s.upserts, item)
	return nil
}

func (s *stubItemRepo) GetItems(string, int, int) ([]database.Item, error) { return nil, nil }
func (s *stubItemRepo) GetTopItem() (*database.Item, error)               { return nil, nil }
func (s *stubItemRepo) GetItemCount() (int, error)                        { return len(s.upserts), nil }
func (s *stubItemRepo) GetStats() (*database.FeedStats, error)            { return nil, nil }
func (s *stubItemRepo) GetKeywordCounts(int) ([]database.KeywordCount, error) {
	return nil, nil
}
func (s *stubItemRepo) DeleteExpired() (int64, error) {
	s.sweeps++
	return 0, nil
}

type stubCompanyRepo struct {
	counts     map[string]int
	sentiments map[string]string
	sweeps     int
}

func newStubCompanyRepo() *stubCompanyRepo {
	return &stubCompanyRepo{counts: map[string]int{}, sentiments: map[string]string{}}
}

func (s *stubCompanyRepo) UpsertCompany(name, sentiment string) error {
	s.counts[name]++
	s.sentiments[name] = sentiment
	return nil
}

func (s *stubCompanyRepo) GetTrendingCompanies(int) ([]database.TrendingCompany, error) {
	return nil, nil
}

func (s *stubCompanyRepo) DeleteExpired() (int64, error) {
	s.sweeps++
	return 0, nil
}

type fetchLogEntry struct {
	family string
	status string
	count  int
	errMsg string
}

type stubFetchLogRepo struct {
	entries []fetchLogEntry
}

func (s *stubFetchLogRepo) Append(family, status string, count int, errMsg string, _ int) error {
	s.entries = append(s.entries, fetchLogEntry{family, status, count, errMsg})
	return nil
}

func (s *stubFetchLogRepo) GetRecent(int) ([]database.FetchLog, error) { return nil, nil }
func (s *stubFetchLogRepo) GetLastSuccess() (*time.Time, error)        { return nil, nil }

type refresherFixture struct {
	refresher *Refresher
	items     *stubItemRepo
	companies *stubCompanyRepo
	fetchLogs *stubFetchLogRepo
	cache     *cache.Cache
}

func newRefresherFixture(transport http.RoundTripper, subreddits []string, feeds []config.NewsFeed) *refresherFixture {
	client := &http.Client{Transport: transport}
	classifier := testClassifier()

	fx := &refresherFixture{
		items:     &stubItemRepo{},
		companies: newStubCompanyRepo(),
		fetchLogs: &stubFetchLogRepo{},
		cache:     cache.NewCache(),
	}
	fx.refresher = NewRefresher(
		NewRedditAdapter(client, classifier, subreddits, "test-agent"),
		NewHackerNewsAdapter(client, classifier, "test-agent", 40),
		NewRSSAdapter(client, classifier, feeds, "test-agent"),
		classifier,
		fx.items, fx.companies, fx.fetchLogs, fx.cache,
		100, 80,
	)
	return fx
}

func redditListingJSON(id, title, selftext string, score, comments int, createdAt time.Time) string {
	return fmt.Sprintf(`{"data":{"children":[{"data":{
		"id":%q,"title":%q,"selftext":%q,
		"permalink":"/r/artificial/comments/%s/x/","author":"poster","subreddit":"artificial",
		"score":%d,"num_comments":%d,"upvote_ratio":0.9,"created_utc":%d,
		"thumbnail":"self","stickied":false}}]}}`,
		id, title, selftext, id, score, comments, createdAt.Unix())
}

func rssDocument(entries ...string) string {
	return `<?xml version="1.0"?><rss version="2.0"><channel><title>Wire</title>` +
		strings.Join(entries, "") + `</channel></rss>`
}

func rssEntry(title, link, description string, published time.Time) string {
	return fmt.Sprintf("<item><title>%s</title><link>%s</link><description><![CDATA[%s]]></description><pubDate>%s</pubDate></item>",
		title, link, description, published.Format(time.RFC1123Z))
}

func TestRefresherRunTwoSources(t *testing.T) {
	fresh := time.Now().Add(-2 * time.Hour)

	transport := routedTransport(map[string]string{
		"https://www.reddit.com/r/artificial/hot.json?limit=100": redditListingJSON(
			"abc1", "OpenAI raises $50M Series B", "Amazing breakthrough round for the AI lab.",
			100, 20, fresh),
		hackerNewsTopStoriesURL: "[]",
		"http://feeds.test/wire": rssDocument(rssEntry(
			"OpenAI raises $50M", "https://wire.test/a",
			"<p>An <b>amazing</b> breakthrough for artificial intelligence.</p>", fresh)),
	})

	fx := newRefresherFixture(transport,
		[]string{"artificial"},
		[]config.NewsFeed{{Name: "AI Wire", URL: "http://feeds.test/wire", Priority: 90}})

	fx.cache.Set(cache.KeyFeedAll, "stale", cache.FeedTTL)
	fx.cache.Set(cache.KeyTrending, "stale", cache.TrendingTTL)
	fx.cache.Set(cache.KeyAdminStats, "stale", cache.StatsTTL)

	results := fx.refresher.Run(context.Background())

	if results.Social != 1 || results.News != 1 {
		t.Fatalf("Expected 1 social and 1 news item, got %d and %d", results.Social, results.News)
	}
	if len(results.Errors) != 0 {
		t.Errorf("Expected no errors, got %v", results.Errors)
	}

	if len(fx.items.upserts) != 2 {
		t.Fatalf("Expected 2 upserted items, got %d", len(fx.items.upserts))
	}
	social, news := fx.items.upserts[0], fx.items.upserts[1]

	if social.ID == news.ID {
		t.Errorf("Expected distinct item IDs, both are %q", social.ID)
	}
	if social.ID != "rd_abc1" {
		t.Errorf("Expected Reddit ID 'rd_abc1', got %q", social.ID)
	}
	if !strings.HasPrefix(news.ID, "rss_") {
		t.Errorf("Expected 'rss_' prefixed article ID, got %q", news.ID)
	}

	// score*1 + comments*1.5 for social, priority + category bonus for news.
	if social.EngagementScore != 130 {
		t.Errorf("Expected social engagement 130, got %v", social.EngagementScore)
	}
	if news.EngagementScore != 110 {
		t.Errorf("Expected news engagement 110, got %v", news.EngagementScore)
	}

	for _, item := range []database.FeedItem{social, news} {
		if item.Category != "Funding" {
			t.Errorf("Expected Funding category for %s, got %q", item.ID, item.Category)
		}
		if item.Sentiment != "positive" {
			t.Errorf("Expected positive sentiment for %s, got %q", item.ID, item.Sentiment)
		}
		found := false
		for _, tag := range item.Tags {
			if tag == "OpenAI" {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected 'OpenAI' tag for %s, got %v", item.ID, item.Tags)
		}
	}
	if news.Content != "An amazing breakthrough for artificial intelligence." {
		t.Errorf("Expected HTML stripped from excerpt, got %q", news.Content)
	}

	if fx.companies.counts["OpenAI"] != 2 {
		t.Errorf("Expected OpenAI mention count 2, got %d", fx.companies.counts["OpenAI"])
	}
	if fx.companies.sentiments["OpenAI"] != "positive" {
		t.Errorf("Expected positive company sentiment, got %q", fx.companies.sentiments["OpenAI"])
	}

	want := []fetchLogEntry{
		{"social", "success", 1, ""},
		{"news", "success", 1, ""},
	}
	if len(fx.fetchLogs.entries) != len(want) {
		t.Fatalf("Expected %d fetch log entries, got %d", len(want), len(fx.fetchLogs.entries))
	}
	for i, entry := range fx.fetchLogs.entries {
		if entry != want[i] {
			t.Errorf("Fetch log %d: expected %+v, got %+v", i, want[i], entry)
		}
	}

	if fx.items.sweeps != 1 || fx.companies.sweeps != 1 {
		t.Errorf("Expected one expiry sweep per repository, got %d and %d", fx.items.sweeps, fx.companies.sweeps)
	}
	if fx.cache.Size() != 0 {
		t.Errorf("Expected all cached results invalidated, %d entries remain", fx.cache.Size())
	}
}

func TestRefresherRunPartialSocial(t *testing.T) {
	fresh := time.Now().Add(-2 * time.Hour)

	// Hacker News has no route, so its fetch fails while Reddit delivers.
	transport := routedTransport(map[string]string{
		"https://www.reddit.com/r/artificial/hot.json?limit=100": redditListingJSON(
			"abc2", "OpenAI raises $50M Series B", "Amazing breakthrough round for the AI lab.",
			100, 20, fresh),
	})

	fx := newRefresherFixture(transport, []string{"artificial"}, nil)

	results := fx.refresher.Run(context.Background())

	if results.Social != 1 {
		t.Fatalf("Expected Reddit item stored despite Hacker News failure, got %d", results.Social)
	}
	if len(results.Errors) != 1 || !strings.HasPrefix(results.Errors[0], "Social: ") {
		t.Fatalf("Expected one 'Social: ' prefixed error, got %v", results.Errors)
	}

	social := fx.fetchLogs.entries[0]
	if social.family != "social" || social.status != "partial" {
		t.Errorf("Expected partial social fetch log, got %+v", social)
	}
	if social.errMsg == "" {
		t.Error("Expected fetch log to carry the fetch error")
	}
}

func TestRefresherRunSocialErrorWhenNothingStored(t *testing.T) {
	fx := newRefresherFixture(routedTransport(nil), nil, nil)

	results := fx.refresher.Run(context.Background())

	if results.Social != 0 || results.News != 0 {
		t.Fatalf("Expected nothing stored, got %d and %d", results.Social, results.News)
	}

	social := fx.fetchLogs.entries[0]
	if social.status != "error" {
		t.Errorf("Expected failed social run with zero items logged as error, got %q", social.status)
	}
	news := fx.fetchLogs.entries[1]
	if news.status != "success" || news.count != 0 {
		t.Errorf("Expected empty news run logged as success, got %+v", news)
	}
}

func TestRefresherSkipsFailingItem(t *testing.T) {
	fresh := time.Now().Add(-2 * time.Hour)

	transport := routedTransport(map[string]string{
		"https://www.reddit.com/r/artificial/hot.json?limit=100": redditListingJSON(
			"abc3", "OpenAI raises $50M Series B", "Amazing breakthrough round for the AI lab.",
			100, 20, fresh),
		hackerNewsTopStoriesURL: "[]",
		"http://feeds.test/wire": rssDocument(rssEntry(
			"OpenAI raises $50M", "https://wire.test/a",
			"An amazing breakthrough for artificial intelligence.", fresh)),
	})

	fx := newRefresherFixture(transport,
		[]string{"artificial"},
		[]config.NewsFeed{{Name: "AI Wire", URL: "http://feeds.test/wire", Priority: 90}})
	fx.items.failID = "rd_abc3"

	results := fx.refresher.Run(context.Background())

	if results.Social != 0 {
		t.Errorf("Expected failing social upsert skipped, got %d stored", results.Social)
	}
	if results.News != 1 {
		t.Errorf("Expected news item stored regardless, got %d", results.News)
	}
	if fx.companies.counts["OpenAI"] != 1 {
		t.Errorf("Expected mention counted only for the stored item, got %d", fx.companies.counts["OpenAI"])
	}
}

func TestCapItems(t *testing.T) {
	items := []Item{
		{ID: "a", Title: "First story", EngagementScore: 5},
		{ID: "b", Title: "Second story", EngagementScore: 20},
		{ID: "c", Title: "First story!", EngagementScore: 3}, // same fuzzy key as "a"
		{ID: "d", Title: "Third story", EngagementScore: 20},
	}

	capped := capItems(items, 2)

	if len(capped) != 2 {
		t.Fatalf("Expected 2 items after cap, got %d", len(capped))
	}
	if capped[0].ID != "b" || capped[1].ID != "d" {
		t.Errorf("Expected deduped top-2 [b d] with stable tie order, got [%s %s]", capped[0].ID, capped[1].ID)
	}
}
