// Package adapter provides a unified interface for LLM providers and embedders.
package adapter

import (
	"context"
	"fmt"
	"strings"
)

// Provider name constants.
const (
	ProviderClaude = "claude"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

// StreamChunk is a single token or error delivered during streaming.
type StreamChunk struct {
	Text  string
	Error error
}

// CompletionRequest holds the parameters for a completion call.
type CompletionRequest struct {
	SystemPrompt string
	UserMessage  string
	Model        string
	MaxTokens    int
	Temperature  float64
	Stream       bool
}

// ModelInfo describes the capabilities of a model.
type ModelInfo struct {
	Name               string
	Provider           string
	MaxContextWindow   int
	SupportsStreaming  bool
	EmbeddingDimension int // 0 if not an embedding model
}

// LLMAdapter is the common interface all provider adapters implement.
type LLMAdapter interface {
	// Complete sends a prompt and streams the response.
	Complete(ctx context.Context, req CompletionRequest) (<-chan StreamChunk, error)

	// Embed generates embeddings for a batch of texts.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Info returns metadata about the adapter/model.
	Info() ModelInfo
}

// New constructs the LLMAdapter for the named provider.
//
//   - provider: "claude", "openai", "ollama"
//   - chatModel: completion model name (used by Ollama; others have SDK defaults)
//   - embedModel: embedding model name (used by Ollama; ignored by others)
//   - apiKey: provider API key (empty = read from env in the concrete adapter)
//   - ollamaHost: base URL for the Ollama server (used only when provider == "ollama")
func New(provider, chatModel, embedModel, apiKey, ollamaHost string) (LLMAdapter, error) {
	switch provider {
	case ProviderClaude:
		return NewClaude(apiKey), nil
	case ProviderOpenAI:
		return NewOpenAI(apiKey), nil
	case ProviderOllama:
		host := ollamaHost
		if host == "" {
			host = "http://localhost:11434"
		}
		if chatModel == "" {
			chatModel = "llama3:8b"
		}
		if embedModel == "" {
			embedModel = "nomic-embed-text"
		}
		return NewOllama(host, chatModel, embedModel), nil
	default:
		return nil, fmt.Errorf("adapter: unknown provider %q; valid providers: claude, openai, ollama", provider)
	}
}

// Chat sends a single prompt and collects the full response text.
// It is the synchronous round trip used by the router, the relevance
// gate, and the agents; none of them need token-level streaming.
func Chat(ctx context.Context, llm Completer, prompt string) (string, error) {
	stream, err := llm.Complete(ctx, CompletionRequest{
		UserMessage: prompt,
		Temperature: 0.2,
		Stream:      false,
	})
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for chunk := range stream {
		if chunk.Error != nil {
			return "", chunk.Error
		}
		sb.WriteString(chunk.Text)
	}
	return strings.TrimSpace(sb.String()), nil
}
