package database

import (
	"fmt"
	"log/slog"
	"time"
)

type seedRound struct {
	id        string
	company   string
	amountM   float64
	display   string
	round     string
	investors []string
	industry  string
	location  string
	date      string
	desc      string
	valuation string
}

// seedRounds is the curated bootstrap dataset of notable AI financing
// events. It guarantees the funding endpoints return meaningful data
// before the first live fetch completes.
var seedRounds = []seedRound{
	{"openai-110b-2026", "OpenAI", 110000, "$110B", "Strategic", []string{"Amazon", "Nvidia", "SoftBank", "Microsoft"}, "AI Platform", "San Francisco, US", "2026-02-01", "OpenAI raises $110B at $730B pre-money valuation, largest private tech fundraise ever", "$730B"},
	{"anthropic-30b-2026", "Anthropic", 30000, "$30B", "Series G", []string{"Founders Fund", "Coatue", "Nvidia", "Google"}, "AI Safety", "San Francisco, US", "2026-02-01", "Anthropic raises $30B Series G at $380B valuation, led by Founders Fund and Coatue", "$380B"},
	{"waymo-16b-2026", "Waymo", 16000, "$16B", "Strategic", []string{"Alphabet", "Strategic Investors"}, "Autonomous Vehicles", "Mountain View, US", "2026-02-01", "Waymo secures $16B strategic investment round for autonomous driving expansion", "Alphabet subsidiary"},
	{"xai-20b-2026", "xAI", 20000, "$20B", "Strategic", []string{"Nvidia", "Cisco", "Fidelity", "Sequoia Capital", "a16z"}, "AI Platform", "San Francisco, US", "2026-01-15", "Elon Musk's xAI raises $20B at $200B+ valuation from top Silicon Valley firms", "$200B+"},
	{"skild-1b4-2026", "Skild AI", 1400, "$1.4B", "Series C", []string{"SoftBank", "Nvidia", "Bezos Expeditions"}, "AI Robotics", "Pittsburgh, US", "2026-01-10", "Skild AI closes $1.4B Series C at $14B valuation for general-purpose robotics AI models", "$14B"},
	{"physical-intelligence-400m-2026", "Physical Intelligence", 400, "$400M", "Series B", []string{"Sequoia", "Lux Capital", "Thrive Capital"}, "AI Robotics", "San Francisco, US", "2026-01-05", "Physical Intelligence raises $400M Series B to scale robotic foundation models", "$3B"},
	{"openai-40b-2025", "OpenAI", 40000, "$40B", "Strategic", []string{"SoftBank", "Microsoft", "Thrive Capital"}, "AI Platform", "San Francisco, US", "2025-03-15", "OpenAI raises $40B led by SoftBank at $340B valuation", "$340B"},
	{"anysphere-900m-2025", "Anysphere (Cursor)", 900, "$900M", "Series C", []string{"a16z", "Thrive Capital", "Kleiner Perkins"}, "AI Dev Tools", "San Francisco, US", "2025-08-20", "Cursor maker Anysphere raises $900M Series C at $9B valuation", "$9B"},
	{"perplexity-500m-2025", "Perplexity AI", 500, "$500M", "Series D", []string{"SoftBank", "Nvidia", "IVP", "NEA"}, "AI Search", "San Francisco, US", "2025-06-10", "Perplexity AI raises $500M Series D as AI search challenger to Google", "$14B"},
	{"cognition-2b-2025", "Cognition (Devin)", 2000, "$2B", "Series B", []string{"Founders Fund", "a16z", "Khosla Ventures"}, "AI Coding", "San Francisco, US", "2025-04-01", "Cognition raises $2B for Devin, the autonomous AI software engineer", "$4B"},
	{"manus-ai-75m-2025", "Manus AI", 75, "$75M", "Series A", []string{"Peak XV Partners", "SoftBank China", "Qiming Ventures"}, "AI Agents", "Beijing, China", "2025-03-05", "Manus AI raises $75M to scale general-purpose AI agent platform", "$500M"},
	{"runway-308m-2025", "Runway ML", 308, "$308M", "Series D", []string{"General Atlantic", "Google", "Nvidia"}, "AI Video", "New York, US", "2025-02-14", "Runway raises $308M Series D at $4B valuation for generative video AI", "$4B"},
	{"perplexity-250m-2025", "Perplexity AI", 250, "$250M", "Series C", []string{"SoftBank", "Nvidia", "NEA", "Bezos"}, "AI Search", "San Francisco, US", "2025-01-20", "Perplexity raises $250M Series C at $9B valuation", "$9B"},
	{"xai-6b-dec-2024", "xAI", 6000, "$6B", "Series B", []string{"a16z", "Sequoia", "Kingdom Holdings", "Lightspeed"}, "AI Platform", "San Francisco, US", "2024-12-05", "xAI raises $6B Series B valuing Grok maker at $50B", "$50B"},
	{"scale-ai-1b-2024", "Scale AI", 1000, "$1B", "Series F", []string{"Amazon", "Cisco", "Meta", "Accel"}, "AI Data", "San Francisco, US", "2024-05-22", "Scale AI raises $1B Series F at $13.8B valuation, key AI training data provider", "$13.8B"},
	{"cohere-500m-2024", "Cohere", 500, "$500M", "Series D", []string{"Nvidia", "Oracle", "Salesforce Ventures", "Tiger Global"}, "AI Enterprise", "Toronto, Canada", "2024-07-22", "Cohere raises $500M Series D at $5B valuation for enterprise AI", "$5B"},
	{"groq-640m-2024", "Groq", 640, "$640M", "Series D", []string{"BlackRock", "Cisco", "Samsung", "Tiger Global"}, "AI Infrastructure", "San Jose, US", "2024-08-05", "Groq raises $640M for ultra-fast AI inference chips powering LPU technology", "$2.8B"},
	{"mistral-640m-2024", "Mistral AI", 640, "€600M", "Series B", []string{"General Catalyst", "a16z", "BNP Paribas", "Nvidia"}, "AI Foundation Models", "Paris, France", "2024-06-11", "Mistral AI raises €600M ($640M) Series B at $6B valuation", "$6B"},
	{"harvey-300m-2024", "Harvey AI", 300, "$300M", "Series D", []string{"GV", "Kleiner Perkins", "OpenAI Startup Fund", "Sequoia"}, "AI Legal", "San Francisco, US", "2024-09-10", "Harvey raises $300M Series D at $1.5B valuation for AI legal platform", "$1.5B"},
	{"poolside-500m-2024", "Poolside", 500, "$500M", "Series B", []string{"Bain Capital Ventures", "DST Global", "Nvidia"}, "AI Coding", "San Francisco, US", "2024-08-15", "Poolside raises $500M for AI coding assistant at $3B valuation", "$3B"},
	{"pi-400m-2024", "Physical Intelligence", 400, "$400M", "Series A", []string{"Jeff Bezos", "a16z", "OpenAI", "Lux Capital"}, "AI Robotics", "San Francisco, US", "2024-11-04", "Physical Intelligence raises $400M Series A to build general-purpose robot foundation models", "$2.4B"},
	{"sierra-175m-2024", "Sierra AI", 175, "$175M", "Series B", []string{"Sequoia", "a16z", "Benchmark"}, "AI Customer Service", "San Francisco, US", "2024-07-18", "Sierra raises $175M at $4.5B valuation for conversational AI platform", "$4.5B"},
	{"writer-200m-2024", "Writer", 200, "$200M", "Series C", []string{"Iconiq Growth", "Salesforce Ventures", "Citi Ventures"}, "AI Enterprise", "San Francisco, US", "2024-09-17", "Writer raises $200M Series C at $1.9B valuation for enterprise AI platform", "$1.9B"},
	{"glean-260m-2024", "Glean", 260, "$260M", "Series E", []string{"Kleiner Perkins", "Lightspeed", "Sequoia", "General Catalyst"}, "AI Enterprise Search", "Palo Alto, US", "2024-02-27", "Glean raises $260M Series E at $2.2B valuation for AI-powered enterprise search", "$2.2B"},
	{"together-106m-2024", "Together AI", 106, "$106M", "Series A", []string{"Salesforce Ventures", "Nvidia", "a16z", "Kleiner Perkins"}, "AI Infrastructure", "San Francisco, US", "2024-03-13", "Together AI raises $106M to build open-source AI cloud infrastructure", "$1.25B"},
	{"elevenlabs-80m-2024", "ElevenLabs", 80, "$80M", "Series B", []string{"a16z", "Sequoia", "Smash Capital"}, "AI Audio", "New York, US", "2024-01-22", "ElevenLabs raises $80M Series B at $1.1B valuation for AI voice synthesis", "$1.1B"},
	{"synthesia-90m-2024", "Synthesia", 90, "$90M", "Series C", []string{"a16z", "Nvidia", "GV", "Kleiner Perkins"}, "AI Video", "London, UK", "2024-05-08", "Synthesia raises $90M Series C at $1B valuation for AI avatar video platform", "$1B"},
	{"replit-97m-2024", "Replit", 97, "$97M", "Series B", []string{"a16z", "Google Ventures", "Khosla Ventures"}, "AI Dev Tools", "San Francisco, US", "2024-04-05", "Replit raises $97M Series B at $1.16B for AI-powered coding platform", "$1.16B"},
	{"minimax-600m-2024", "MiniMax", 600, "$600M", "Series B", []string{"HongShan", "Tencent", "Alibaba", "IDG Capital"}, "AI Foundation Models", "Shanghai, China", "2024-08-12", "MiniMax raises $600M for multimodal AI platform at $2.5B valuation", "$2.5B"},
	{"moonshot-1b-2024", "Moonshot AI", 1000, "$1B", "Series C", []string{"Alibaba", "HongShan", "Tencent", "Xiaomi"}, "AI Foundation Models", "Beijing, China", "2024-02-19", "Kimi maker Moonshot AI raises $1B at $2.5B valuation in competitive China AI race", "$2.5B"},
	{"pika-80m-2023", "Pika Labs", 80, "$80M", "Series A", []string{"Lightspeed", "Greenoaks", "Elad Gil"}, "AI Video", "Palo Alto, US", "2023-11-27", "Pika Labs raises $80M Series A for AI video generation at $470M valuation", "$470M"},
	{"huggingface-235m-2023", "Hugging Face", 235, "$235M", "Series D", []string{"Google", "Nvidia", "Amazon", "Salesforce", "IBM"}, "AI Open Source", "New York, US", "2023-08-24", "Hugging Face raises $235M Series D at $4.5B valuation", "$4.5B"},
	{"inflection-1b3-2023", "Inflection AI", 1300, "$1.3B", "Strategic", []string{"Microsoft", "Reid Hoffman", "Bill Gates", "Nvidia", "Eric Schmidt"}, "AI Platform", "Palo Alto, US", "2023-06-29", "Inflection AI raises $1.3B from Microsoft and tech titans for Pi AI assistant", "$4B"},
	{"character-ai-150m-2023", "Character AI", 150, "$150M", "Series A", []string{"a16z", "Spark Capital"}, "AI Consumer", "Menlo Park, US", "2023-03-23", "Character.AI raises $150M Series A at $1B valuation for AI character platform", "$1B"},
	{"imbue-200m-2023", "Imbue", 200, "$200M", "Series B", []string{"Astera Institute", "Samsung Next", "NVentures"}, "AI Research", "San Francisco, US", "2023-08-01", "Imbue raises $200M Series B to build reliable AI reasoning agents", "$1B"},
	{"stability-101m-2022", "Stability AI", 101, "$101M", "Seed", []string{"Coatue", "O'Reilly AlphaTech", "Lightspeed"}, "AI Foundation Models", "London, UK", "2022-10-17", "Stability AI raises $101M Seed at $1B valuation, maker of Stable Diffusion", "$1B"},
	{"cohere-270m-2022", "Cohere", 270, "$270M", "Series C", []string{"Nvidia", "Oracle", "SAP", "Tiger Global"}, "AI Enterprise", "Toronto, Canada", "2022-06-01", "Cohere raises $270M Series C to scale enterprise NLP platform", "$2.1B"},
	{"deepseek-strategic-2024", "DeepSeek", 1000, "~$1B", "Strategic", []string{"High-Flyer Capital"}, "AI Foundation Models", "Hangzhou, China", "2024-01-01", "DeepSeek funded by Chinese quant hedge fund High-Flyer, maker of DeepSeek R1", "N/A"},
}

// SeedFundingRounds loads the bootstrap dataset once. Subsequent calls
// are no-ops as long as any seed row survives in the table.
func SeedFundingRounds(repo FundingRepository) (int, error) {
	seeded, err := repo.IsSeeded()
	if err != nil {
		return 0, fmt.Errorf("failed to check funding seed state: %w", err)
	}
	if seeded {
		slog.Debug("Funding rounds already seeded, skipping")
		return 0, nil
	}

	count := 0
	for _, s := range seedRounds {
		date, err := time.Parse("2006-01-02", s.date)
		if err != nil {
			return count, fmt.Errorf("invalid seed date for %q: %w", s.id, err)
		}

		amount := s.amountM
		round := FundingRound{
			ID:               s.id,
			CompanyName:      s.company,
			AmountM:          &amount,
			Display:          s.display,
			RoundType:        s.round,
			Investors:        s.investors,
			Industry:         s.industry,
			Location:         s.location,
			AnnouncedDate:    date,
			Description:      s.desc,
			ValuationDisplay: s.valuation,
			IsSeedData:       true,
		}
		if err := repo.UpsertRound(round); err != nil {
			return count, fmt.Errorf("failed to seed funding round %q: %w", s.id, err)
		}
		count++
	}

	slog.Info("Seeded funding rounds", "count", count)
	return count, nil
}
