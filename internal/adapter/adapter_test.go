package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNew_ValidProviders(t *testing.T) {
	tests := []struct {
		provider string
	}{
		{ProviderClaude},
		{ProviderOpenAI},
		{ProviderOllama},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			a, err := New(tt.provider, "", "", "test-key", "")
			if err != nil {
				t.Fatalf("New(%q) error: %v", tt.provider, err)
			}
			if a == nil {
				t.Fatalf("New(%q) returned nil adapter", tt.provider)
			}
			info := a.Info()
			if info.Provider != tt.provider {
				t.Errorf("Info().Provider = %q, want %q", info.Provider, tt.provider)
			}
		})
	}
}

func TestNew_InvalidProvider(t *testing.T) {
	_, err := New("invalid", "", "", "key", "")
	if err == nil {
		t.Error("expected error for invalid provider")
	}
}

func TestNew_OllamaDefaults(t *testing.T) {
	a, err := New(ProviderOllama, "", "", "", "")
	if err != nil {
		t.Fatalf("New(ollama) error: %v", err)
	}
	info := a.Info()
	if info.Name != "llama3:8b" {
		t.Errorf("default chat model: got %q, want %q", info.Name, "llama3:8b")
	}
}

func TestOllamaComplete_NonStreaming(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		fmt.Fprintln(w, `{"message":{"role":"assistant","content":"Hello from Ollama!"},"done":true}`)
	}))
	defer server.Close()

	a := NewOllama(server.URL, "llama3:8b", "nomic-embed-text")

	stream, err := a.Complete(context.Background(), CompletionRequest{UserMessage: "Hello"})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	var got string
	for chunk := range stream {
		if chunk.Error != nil {
			t.Fatalf("stream error: %v", chunk.Error)
		}
		got += chunk.Text
	}
	if got != "Hello from Ollama!" {
		t.Errorf("got %q, want %q", got, "Hello from Ollama!")
	}
}

func TestOllamaComplete_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	a := NewOllama(server.URL, "llama3:8b", "nomic-embed-text")

	stream, err := a.Complete(context.Background(), CompletionRequest{UserMessage: "Hello"})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	var streamErr error
	for chunk := range stream {
		if chunk.Error != nil {
			streamErr = chunk.Error
		}
	}
	if streamErr == nil {
		t.Fatal("expected stream error for 500 response")
	}
}

func TestOllamaEmbed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/embed" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		fmt.Fprintln(w, `{"embeddings":[[0.1,0.2,0.3],[0.4,0.5,0.6]]}`)
	}))
	defer server.Close()

	a := NewOllama(server.URL, "llama3:8b", "nomic-embed-text")

	vecs, err := a.Embed(context.Background(), []string{"one", "two"})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(vecs) != 2 {
		t.Fatalf("expected 2 vectors, got %d", len(vecs))
	}
	if len(vecs[0]) != 3 {
		t.Errorf("expected 3-dim vector, got %d", len(vecs[0]))
	}
}

func TestOllamaEmbed_EmptyInput(t *testing.T) {
	a := NewOllama("http://localhost:1", "llama3:8b", "nomic-embed-text")
	vecs, err := a.Embed(context.Background(), nil)
	if err != nil {
		t.Fatalf("Embed(nil): %v", err)
	}
	if vecs != nil {
		t.Errorf("expected nil result for empty input, got %v", vecs)
	}
}

// fakeCompleter returns a canned response (or error) for every prompt.
type fakeCompleter struct {
	reply string
	err   error
}

func (f *fakeCompleter) Complete(_ context.Context, _ CompletionRequest) (<-chan StreamChunk, error) {
	if f.err != nil {
		return nil, f.err
	}
	ch := make(chan StreamChunk, 2)
	ch <- StreamChunk{Text: f.reply}
	close(ch)
	return ch, nil
}

func TestChat_CollectsStream(t *testing.T) {
	got, err := Chat(context.Background(), &fakeCompleter{reply: "  hello world \n"}, "hi")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if got != "hello world" {
		t.Errorf("got %q, want trimmed %q", got, "hello world")
	}
}

func TestChat_PropagatesError(t *testing.T) {
	_, err := Chat(context.Background(), &fakeCompleter{err: errors.New("boom")}, "hi")
	if err == nil {
		t.Fatal("expected error from completer")
	}
}
