package ingest

import (
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
)

func TestExtractRound(t *testing.T) {
	published := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	entry := &gofeed.Item{
		Title:           "Anthropic raises $10B to scale frontier model training",
		Description:     "The San Francisco lab closed the round led by existing investors.",
		Link:            "https://example.com/anthropic-round",
		PublishedParsed: &published,
	}

	round, ok := extractRound(entry)
	if !ok {
		t.Fatal("Expected round to be extracted")
	}

	if round.ID != "anthropic-10b-202603" {
		t.Errorf("Expected ID 'anthropic-10b-202603', got %q", round.ID)
	}
	if round.CompanyName != "Anthropic" {
		t.Errorf("Expected company 'Anthropic', got %q", round.CompanyName)
	}
	if round.AmountM == nil || *round.AmountM != 10000 {
		t.Errorf("Expected amount 10000M, got %v", round.AmountM)
	}
	if round.Display != "$10B" {
		t.Errorf("Expected display '$10B', got %q", round.Display)
	}
	if round.Industry != "AI Foundation Models" {
		t.Errorf("Expected industry 'AI Foundation Models', got %q", round.Industry)
	}
	if round.Location != "San Francisco, US" {
		t.Errorf("Expected San Francisco location, got %q", round.Location)
	}
	if round.SourceURL != entry.Link {
		t.Errorf("Expected source URL carried over, got %q", round.SourceURL)
	}
}

func TestExtractRoundRejections(t *testing.T) {
	tests := []struct {
		name  string
		title string
	}{
		{"no amount", "Acme raises an undisclosed sum"},
		{"below threshold", "Tinystart raises $2M seed round"},
		{"no company verb", "The $50M round that shocked the industry"},
		{"lowercase start", "startup raises $20M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := &gofeed.Item{Title: tt.title}
			if _, ok := extractRound(entry); ok {
				t.Errorf("Expected %q to be rejected", tt.title)
			}
		})
	}
}

func TestParseAmountToM(t *testing.T) {
	tests := []struct {
		raw      string
		expected float64
		ok       bool
	}{
		{"$1.5B", 1500, true},
		{"€600M", 600, true},
		{"$2,500M", 2500, true},
		{"£40 M", 40, true},
		{"$800K", 1, true},
		{"no amount here", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := parseAmountToM(tt.raw)
			if ok != tt.ok {
				t.Fatalf("parseAmountToM(%q) ok = %v, expected %v", tt.raw, ok, tt.ok)
			}
			if got != tt.expected {
				t.Errorf("parseAmountToM(%q) = %v, expected %v", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestGuessRoundType(t *testing.T) {
	tests := []struct {
		text     string
		expected string
	}{
		{"closes oversubscribed Series B round", "Series B"},
		{"raises seed funding", "Seed"},
		{"lands pre-seed backing", "Pre-Seed"},
		{"secures strategic investment", "Strategic"},
		{"files for public offering", "IPO"},
		{"completes acquisition of rival", "Acquisition"},
		{"wins research grant", "Grant"},
		{"raises new capital", "Undisclosed"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := guessRoundType(tt.text); got != tt.expected {
				t.Errorf("guessRoundType(%q) = %q, expected %q", tt.text, got, tt.expected)
			}
		})
	}
}

func TestGuessIndustry(t *testing.T) {
	tests := []struct {
		text     string
		expected string
	}{
		{"humanoid robot maker", "AI Robotics"},
		{"voice assistant startup", "AI Audio"},
		{"pair programming assistant", "AI Dev Tools"},
		{"inference chip designer", "AI Infrastructure"},
		{"frontier language model lab", "AI Foundation Models"},
		{"a new startup", "AI Platform"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := guessIndustry(tt.text); got != tt.expected {
				t.Errorf("guessIndustry(%q) = %q, expected %q", tt.text, got, tt.expected)
			}
		})
	}
}

func TestGuessLocation(t *testing.T) {
	tests := []struct {
		text     string
		expected string
	}{
		{"Beijing-based lab announces round", "China"},
		{"the London startup", "London, UK"},
		{"headquartered in Tel Aviv", "Tel Aviv, Israel"},
		{"a Palo Alto company", "San Francisco, US"},
		{"a new funding milestone", "US"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := guessLocation(tt.text); got != tt.expected {
				t.Errorf("guessLocation(%q) = %q, expected %q", tt.text, got, tt.expected)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"OpenAI", "openai"},
		{"Scale AI & Co.", "scale-ai-co"},
		{"$1.5B", "1-5b"},
		{"  spaced  out  ", "spaced-out"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := slugify(tt.in); got != tt.expected {
				t.Errorf("slugify(%q) = %q, expected %q", tt.in, got, tt.expected)
			}
		})
	}
}
