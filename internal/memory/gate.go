package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/nexcai/nexcai/internal/adapter"
)

// relevancePrompt asks the model for a binary judgment on whether a
// statement is worth keeping. The answer is parsed fail-closed: only a
// reply beginning with "yes" stores the fact.
const relevancePrompt = `You are NEXCAI, a highly selective assistant memory filter.

Decide if this statement contains meaningful, personal, or factual information
about the user that should be stored in long-term memory.

Examples of "YES":
- "I live in Munich."
- "I'm studying Data Science at LMU."
- "My favorite weather is rainy."
- "Tomorrow I will have an interview at Sony."

Examples of "NO":
- "Hi"
- "Okay"
- "Thank you"
- "What time is it?"

Respond ONLY with 'YES' or 'NO'.

Text: %q`

// RelevanceGate is the LLM-driven accept/reject judgment applied before
// storing a long-term memory.
type RelevanceGate struct {
	llm adapter.Completer
}

// NewRelevanceGate creates a gate backed by the given completer.
func NewRelevanceGate(llm adapter.Completer) *RelevanceGate {
	return &RelevanceGate{llm: llm}
}

// Memorable returns whether text should be stored. A completion-service
// failure is returned as an error, distinct from a clean "NO", so the
// caller can fail the add rather than silently drop or store the fact.
func (g *RelevanceGate) Memorable(ctx context.Context, text string) (bool, error) {
	reply, err := adapter.Chat(ctx, g.llm, fmt.Sprintf(relevancePrompt, text))
	if err != nil {
		return false, fmt.Errorf("relevance gate: %w", err)
	}
	return acceptsReply(reply), nil
}

// acceptsReply implements the fail-closed parse: anything that does not
// start with "yes" (after trimming and lowercasing) is a NO.
func acceptsReply(reply string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(reply)), "yes")
}
