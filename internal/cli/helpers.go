package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/nexcai/nexcai/internal/adapter"
	"github.com/nexcai/nexcai/internal/agent"
	"github.com/nexcai/nexcai/internal/calendar"
	"github.com/nexcai/nexcai/internal/config"
	"github.com/nexcai/nexcai/internal/db"
	"github.com/nexcai/nexcai/internal/memory"
	"github.com/nexcai/nexcai/internal/prompt"
	"github.com/nexcai/nexcai/internal/router"
	"github.com/nexcai/nexcai/internal/weather"
)

// assistant bundles the pieces a routed conversation needs. The
// calendar agent is built lazily because it requires OAuth setup.
type assistant struct {
	cfg      config.Config
	database *db.DB
	llm      adapter.LLMAdapter
	store    *memory.LongTermStore
	conv     *memory.Conversation
	router   *router.Router
	general  *agent.General
	weather  *agent.Weather
}

func newAssistant() (*assistant, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	llm, err := buildAdapter(cfg)
	if err != nil {
		return nil, fmt.Errorf("init LLM adapter: %w", err)
	}

	dbPath, err := cfg.DBPath()
	if err != nil {
		return nil, err
	}

	// The vec0 table width must match whatever the configured provider
	// embeds with (768 for Ollama, 1536 for OpenAI).
	database, err := db.Open(dbPath, llm.Info().EmbeddingDimension)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	tokenizer, err := prompt.NewTokenizer()
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("init tokenizer: %w", err)
	}

	store := memory.NewLongTermStore(database, llm, llm, cfg.Memory.DedupThreshold)
	conv := memory.NewConversation(cfg.Memory.MaxTurns)
	builder := prompt.NewBuilder(tokenizer, cfg.Prompt.MaxContextTokens)

	return &assistant{
		cfg:      cfg,
		database: database,
		llm:      llm,
		store:    store,
		conv:     conv,
		router:   router.New(llm),
		general:  agent.NewGeneral(llm, conv, store, builder, cfg.Memory.TopK),
		weather:  agent.NewWeather(llm, weather.New(""), cfg.Weather.ForecastDays),
	}, nil
}

func (a *assistant) Close() {
	a.database.Close()
}

// handle routes one query to the right agent and returns its reply.
func (a *assistant) handle(ctx context.Context, query string) (string, error) {
	switch a.router.Route(ctx, query) {
	case router.IntentWeather:
		return a.weather.Run(ctx, query)
	case router.IntentCalendar:
		cal, err := a.calendarAgent(ctx)
		if err != nil {
			return "", err
		}
		return cal.Run(ctx, query)
	default:
		return a.general.Run(ctx, query)
	}
}

// calendarAgent builds the calendar agent from the cached OAuth token.
func (a *assistant) calendarAgent(ctx context.Context) (agent.Agent, error) {
	tokenPath, err := a.cfg.TokenPath()
	if err != nil {
		return nil, err
	}
	token, err := calendar.LoadToken(tokenPath)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, fmt.Errorf("Google Calendar not connected. Run `nexcai setup` first")
	}

	oauthCfg := calendar.OAuthConfig(a.cfg.Calendar.ClientID, a.cfg.Calendar.ClientSecret)
	service := calendar.NewGoogleService(oauthCfg.Client(ctx, token), a.cfg.Calendar.CalendarID, "")

	timezone, err := time.LoadLocation(a.cfg.Calendar.Timezone)
	if err != nil {
		timezone = time.Local
	}
	return agent.NewCalendar(a.llm, service, timezone), nil
}

// buildAdapter creates the configured LLM adapter.
func buildAdapter(cfg config.Config) (adapter.LLMAdapter, error) {
	provider := cfg.DefaultModel
	return adapter.New(provider, cfg.Ollama.ChatModel, cfg.Ollama.EmbedModel, apiKey(cfg, provider), cfg.Ollama.Host)
}

// apiKey returns the correct API key for the given provider.
func apiKey(cfg config.Config, provider string) string {
	switch provider {
	case adapter.ProviderClaude:
		return cfg.Keys.Anthropic
	case adapter.ProviderOpenAI:
		return cfg.Keys.OpenAI
	default:
		return ""
	}
}
