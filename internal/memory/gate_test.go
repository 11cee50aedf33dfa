package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/nexcai/nexcai/internal/adapter"
)

// cannedCompleter replies with a fixed string (or fails) for every prompt.
type cannedCompleter struct {
	reply string
	err   error
}

func (c *cannedCompleter) Complete(_ context.Context, _ adapter.CompletionRequest) (<-chan adapter.StreamChunk, error) {
	if c.err != nil {
		return nil, c.err
	}
	ch := make(chan adapter.StreamChunk, 1)
	ch <- adapter.StreamChunk{Text: c.reply}
	close(ch)
	return ch, nil
}

func TestAcceptsReply(t *testing.T) {
	tests := []struct {
		reply string
		want  bool
	}{
		{"YES", true},
		{"yes", true},
		{"Yes.", true},
		{"  YES, definitely", true},
		{"NO", false},
		{"no", false},
		{"maybe", false},
		{"", false},
		{"I think so", false}, // fail-closed on anything but a yes-prefix
	}
	for _, tt := range tests {
		if got := acceptsReply(tt.reply); got != tt.want {
			t.Errorf("acceptsReply(%q): got %v, want %v", tt.reply, got, tt.want)
		}
	}
}

func TestRelevanceGate_Memorable(t *testing.T) {
	gate := NewRelevanceGate(&cannedCompleter{reply: "YES"})
	ok, err := gate.Memorable(context.Background(), "I live in Munich.")
	if err != nil {
		t.Fatalf("Memorable: %v", err)
	}
	if !ok {
		t.Error("expected YES reply to be memorable")
	}
}

func TestRelevanceGate_NotMemorable(t *testing.T) {
	gate := NewRelevanceGate(&cannedCompleter{reply: "NO"})
	ok, err := gate.Memorable(context.Background(), "Hi")
	if err != nil {
		t.Fatalf("Memorable: %v", err)
	}
	if ok {
		t.Error("expected NO reply to be rejected")
	}
}

func TestRelevanceGate_CompletionFailure(t *testing.T) {
	gate := NewRelevanceGate(&cannedCompleter{err: errors.New("model offline")})
	_, err := gate.Memorable(context.Background(), "I live in Munich.")
	if err == nil {
		t.Fatal("expected error when the completion service fails")
	}
}
