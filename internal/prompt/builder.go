package prompt

import (
	"strings"
)

// DefaultMaxContextTokens bounds the assembled conversational prompt.
const DefaultMaxContextTokens = 2000

const generalHeader = `You are NEXCAI, a helpful, polite assistant. Respond naturally in English.`

// Builder renders recalled facts and conversation history into a single
// prompt, keeping it under the token budget.
type Builder struct {
	tokenizer *Tokenizer
	maxTokens int
}

// NewBuilder creates a Builder. maxTokens <= 0 selects the default budget.
func NewBuilder(tokenizer *Tokenizer, maxTokens int) *Builder {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxContextTokens
	}
	return &Builder{tokenizer: tokenizer, maxTokens: maxTokens}
}

// BuildGeneral assembles the general-conversation prompt. Facts that
// would blow the budget are dropped; history is trimmed oldest-first so
// the most recent turns survive. The query itself is never trimmed.
func (b *Builder) BuildGeneral(query string, facts []string, history string) string {
	var sections []string
	sections = append(sections, generalHeader)

	tail := "\nUser: " + query
	remaining := b.maxTokens - b.tokenizer.Count(generalHeader) - b.tokenizer.Count(tail)

	if len(facts) > 0 {
		header := "Things you know about the user:"
		budget := remaining - b.tokenizer.Count(header)
		var kept []string
		for _, fact := range facts {
			line := "- " + fact
			cost := b.tokenizer.Count(line)
			if cost > budget {
				continue
			}
			kept = append(kept, line)
			budget -= cost
		}
		if len(kept) > 0 {
			section := header + "\n" + strings.Join(kept, "\n")
			sections = append(sections, section)
			remaining -= b.tokenizer.Count(section)
		}
	}

	history = strings.TrimSpace(history)
	if history != "" {
		header := "Conversation so far:"
		budget := remaining - b.tokenizer.Count(header)
		lines := strings.Split(history, "\n")
		for len(lines) > 0 && b.tokenizer.Count(strings.Join(lines, "\n")) > budget {
			lines = lines[1:]
		}
		if len(lines) > 0 {
			sections = append(sections, header+"\n"+strings.Join(lines, "\n"))
		}
	}

	return strings.Join(sections, "\n\n") + tail
}
