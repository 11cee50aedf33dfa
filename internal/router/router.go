// Package router classifies a raw user query into one of the assistant's
// intents with a single completion call.
package router

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nexcai/nexcai/internal/adapter"
)

// Intent is the closed-set category a query is classified into.
type Intent string

const (
	IntentWeather  Intent = "weather"
	IntentCalendar Intent = "calendar"
	IntentGeneral  Intent = "general"
)

// ValidIntent reports whether i is a member of the intent enumeration.
func ValidIntent(i Intent) bool {
	switch i {
	case IntentWeather, IntentCalendar, IntentGeneral:
		return true
	}
	return false
}

const routePrompt = `You are a precise intent classifier for a modular AI assistant called NEXCAI.

Your job is to analyze the user's message and decide which type of agent should handle it.

Available intents:
- weather: when the user asks about weather, temperature, rain, wind, sun, or forecasts.
- calendar: when the user wants to create, list, or delete calendar events or appointments.
- general: for normal conversation, greetings, or anything else that doesn't fit.

Respond **only** in pure JSON format:
{"intent": "weather"}

User message: %q`

// Router maps queries to intents via the completion service.
type Router struct {
	llm adapter.Completer
}

// New creates a Router backed by the given completer.
func New(llm adapter.Completer) *Router {
	return &Router{llm: llm}
}

// Route classifies query. It never fails: a completion error, malformed
// output, or an unknown label all fall back to IntentGeneral, so the
// overall request is never lost to a misbehaving classifier.
func (r *Router) Route(ctx context.Context, query string) Intent {
	reply, err := adapter.Chat(ctx, r.llm, fmt.Sprintf(routePrompt, query))
	if err != nil {
		return IntentGeneral
	}
	return parseIntent(reply)
}

// routeResponse is the JSON shape the classification prompt asks for.
type routeResponse struct {
	Intent string `json:"intent"`
}

// parseIntent extracts the intent label from the model's reply.
// Lenient: takes the first '{' through the last '}' so replies wrapped
// in prose or markdown fences still parse.
func parseIntent(reply string) Intent {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start == -1 || end <= start {
		return IntentGeneral
	}

	var parsed routeResponse
	if err := json.Unmarshal([]byte(reply[start:end+1]), &parsed); err != nil {
		return IntentGeneral
	}

	intent := Intent(strings.ToLower(strings.TrimSpace(parsed.Intent)))
	if !ValidIntent(intent) {
		return IntentGeneral
	}
	return intent
}
