package agent

import (
	"context"

	"github.com/nexcai/nexcai/internal/adapter"
	"github.com/nexcai/nexcai/internal/memory"
	"github.com/nexcai/nexcai/internal/prompt"
)

// DefaultTopK is how many long-term facts the general agent recalls.
const DefaultTopK = 3

// General handles open conversation. It is the only agent that reads
// and writes both memory layers.
type General struct {
	llm     adapter.Completer
	conv    *memory.Conversation
	store   FactStore
	builder *prompt.Builder
	topK    int
}

// NewGeneral creates a General agent. topK <= 0 selects the default.
func NewGeneral(llm adapter.Completer, conv *memory.Conversation, store FactStore, builder *prompt.Builder, topK int) *General {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &General{llm: llm, conv: conv, store: store, builder: builder, topK: topK}
}

// Run answers the query with recalled facts and the running
// conversation as context, then records the exchange. Recall and the
// post-reply memorisation are best-effort; only the completion itself
// can fail the turn.
func (g *General) Run(ctx context.Context, query string) (string, error) {
	facts, err := g.store.Search(ctx, query, g.topK)
	if err != nil {
		facts = nil
	}

	reply, err := adapter.Chat(ctx, g.llm, g.builder.BuildGeneral(query, facts, g.conv.Context()))
	if err != nil {
		return "", err
	}

	g.conv.Add(memory.RoleUser, query)
	g.conv.Add(memory.RoleAssistant, reply)

	// The gate decides whether the query is worth keeping. A failure
	// here must not eat the reply the user is waiting for.
	_ = g.store.Add(ctx, query)

	return reply, nil
}
