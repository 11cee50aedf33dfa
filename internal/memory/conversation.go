// Package memory implements nexcai's short-term conversation buffer and
// the gated, semantically-searchable long-term store.
package memory

import "strings"

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Display returns the role as it appears in rendered context.
func (r Role) Display() string {
	switch r {
	case RoleUser:
		return "User"
	case RoleAssistant:
		return "Assistant"
	default:
		if r == "" {
			return ""
		}
		return strings.ToUpper(string(r[:1])) + string(r[1:])
	}
}

// Turn is a single (role, content) entry in the conversation buffer.
type Turn struct {
	Role    Role
	Content string
}

// DefaultMaxTurns bounds the conversation buffer when no limit is given.
const DefaultMaxTurns = 10

// Conversation keeps track of the last few chat turns between user and
// assistant. Eviction is strictly FIFO: once the buffer is full, each
// Add drops the single oldest turn. Not safe for concurrent use; each
// agent session owns its own Conversation.
type Conversation struct {
	turns    []Turn
	maxTurns int
}

// NewConversation creates a buffer holding at most maxTurns turns.
func NewConversation(maxTurns int) *Conversation {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &Conversation{maxTurns: maxTurns}
}

// Add appends a turn, evicting the oldest if the buffer is over capacity.
func (c *Conversation) Add(role Role, content string) {
	c.turns = append(c.turns, Turn{Role: role, Content: content})
	if len(c.turns) > c.maxTurns {
		c.turns = c.turns[1:]
	}
}

// Context renders all retained turns as "<Role>: <content>" lines,
// oldest first, newline-joined.
func (c *Conversation) Context() string {
	lines := make([]string, len(c.turns))
	for i, t := range c.turns {
		lines[i] = t.Role.Display() + ": " + t.Content
	}
	return strings.Join(lines, "\n")
}

// Clear empties the buffer.
func (c *Conversation) Clear() {
	c.turns = nil
}

// Len returns the number of retained turns.
func (c *Conversation) Len() int {
	return len(c.turns)
}

// Turns returns a copy of the retained turns, oldest first.
func (c *Conversation) Turns() []Turn {
	out := make([]Turn, len(c.turns))
	copy(out, c.turns)
	return out
}
