package agent

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nexcai/nexcai/internal/calendar"
)

type fakeCalendarService struct {
	events    []calendar.Event
	inserted  []calendar.Event
	deleted   []string
	listReqs  []calendar.ListRequest
	insertErr error
	listErr   error
	deleteErr error
}

func (f *fakeCalendarService) InsertEvent(_ context.Context, event calendar.Event) (calendar.Event, error) {
	if f.insertErr != nil {
		return calendar.Event{}, f.insertErr
	}
	f.inserted = append(f.inserted, event)
	event.ID = "created-1"
	event.HTMLLink = "https://calendar.google.com/event?eid=created-1"
	return event, nil
}

func (f *fakeCalendarService) ListEvents(_ context.Context, req calendar.ListRequest) ([]calendar.Event, error) {
	f.listReqs = append(f.listReqs, req)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.events, nil
}

func (f *fakeCalendarService) DeleteEvent(_ context.Context, eventID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, eventID)
	return nil
}

func newTestCalendar(llm *scriptedCompleter, svc calendar.Service) *Calendar {
	agent := NewCalendar(llm, svc, time.UTC)
	agent.now = func() time.Time {
		return time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	}
	return agent
}

func TestCalendar_CreateEvent(t *testing.T) {
	llm := &scriptedCompleter{replies: []string{`{
		"actions": [{
			"intent": "create",
			"event": {
				"summary": "Dentist",
				"start_time": "2026-09-01T10:00:00+00:00",
				"end_time": "2026-09-01T11:00:00+00:00"
			}
		}]
	}`}}
	svc := &fakeCalendarService{}
	agent := newTestCalendar(llm, svc)

	reply, err := agent.Run(context.Background(), "book a dentist appointment")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := "Event 'Dentist' created! https://calendar.google.com/event?eid=created-1"
	if reply != want {
		t.Errorf("reply: got %q, want %q", reply, want)
	}
	if len(svc.inserted) != 1 || svc.inserted[0].Start.DateTime != "2026-09-01T10:00:00+00:00" {
		t.Errorf("inserted: %+v", svc.inserted)
	}
}

func TestCalendar_ListEvents(t *testing.T) {
	llm := &scriptedCompleter{replies: []string{`{"actions": [{"intent": "list", "days": 3}]}`}}
	svc := &fakeCalendarService{events: []calendar.Event{
		{ID: "a", Summary: "Team Meeting", Start: calendar.EventTime{DateTime: "2026-08-29T09:30:00Z"}},
		{ID: "b", Summary: "Conference", Start: calendar.EventTime{Date: "2026-08-30"}},
	}}
	agent := newTestCalendar(llm, svc)

	reply, err := agent.Run(context.Background(), "what's coming up?")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := "Upcoming events:\n• Team Meeting — 09:30\n• Conference — All day"
	if reply != want {
		t.Errorf("reply:\ngot  %q\nwant %q", reply, want)
	}

	req := svc.listReqs[0]
	if req.TimeMin != "2026-08-28T12:00:00Z" || req.TimeMax != "2026-08-31T12:00:00Z" {
		t.Errorf("default window: %+v", req)
	}
}

func TestCalendar_ListEventsExplicitRange(t *testing.T) {
	llm := &scriptedCompleter{replies: []string{`{"actions": [{
		"intent": "list",
		"start_time": "2026-08-29T00:00:00Z",
		"end_time": "2026-08-29T23:59:59Z"
	}]}`}}
	svc := &fakeCalendarService{}
	agent := newTestCalendar(llm, svc)

	reply, err := agent.Run(context.Background(), "show me tomorrow")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if reply != "No upcoming events found." {
		t.Errorf("reply: got %q", reply)
	}
	if svc.listReqs[0].TimeMin != "2026-08-29T00:00:00Z" {
		t.Errorf("explicit range not used: %+v", svc.listReqs[0])
	}
}

func TestCalendar_DeleteBySubstring(t *testing.T) {
	llm := &scriptedCompleter{replies: []string{`{"actions": [{"intent": "delete", "summary": "meeting"}]}`}}
	svc := &fakeCalendarService{events: []calendar.Event{
		{ID: "a", Summary: "Team Meeting", Start: calendar.EventTime{DateTime: "2026-08-29T09:30:00Z"}},
		{ID: "b", Summary: "Lunch", Start: calendar.EventTime{DateTime: "2026-08-29T12:00:00Z"}},
	}}
	agent := newTestCalendar(llm, svc)

	reply, err := agent.Run(context.Background(), "cancel my meeting")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if reply != "Deleted events: Team Meeting" {
		t.Errorf("reply: got %q", reply)
	}
	if len(svc.deleted) != 1 || svc.deleted[0] != "a" {
		t.Errorf("deleted ids: %v", svc.deleted)
	}
	if svc.listReqs[0].MaxResults != deleteScanLimit {
		t.Errorf("delete scan limit: got %d", svc.listReqs[0].MaxResults)
	}
}

func TestCalendar_DeleteNoMatch(t *testing.T) {
	llm := &scriptedCompleter{replies: []string{`{"actions": [{"intent": "delete", "summary": "yoga"}]}`}}
	svc := &fakeCalendarService{events: []calendar.Event{
		{ID: "a", Summary: "Team Meeting"},
	}}
	agent := newTestCalendar(llm, svc)

	reply, err := agent.Run(context.Background(), "cancel yoga")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if reply != "No event found matching 'yoga'." {
		t.Errorf("reply: got %q", reply)
	}
	if len(svc.deleted) != 0 {
		t.Errorf("nothing should be deleted, got %v", svc.deleted)
	}
}

func TestCalendar_MultipleActions(t *testing.T) {
	llm := &scriptedCompleter{replies: []string{`{"actions": [
		{"intent": "delete", "summary": "standup"},
		{"intent": "list", "days": 1}
	]}`}}
	svc := &fakeCalendarService{events: []calendar.Event{
		{ID: "a", Summary: "Standup", Start: calendar.EventTime{DateTime: "2026-08-28T15:00:00Z"}},
	}}
	agent := newTestCalendar(llm, svc)

	reply, err := agent.Run(context.Background(), "cancel standup and show my day")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	parts := strings.Split(reply, "\n\n")
	if len(parts) != 2 {
		t.Fatalf("expected 2 responses joined by blank line, got %q", reply)
	}
	if parts[0] != "Deleted events: Standup" {
		t.Errorf("first response: got %q", parts[0])
	}
}

func TestCalendar_ServiceFailureFoldsToApology(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		svc   *fakeCalendarService
	}{
		{
			"insert fails",
			`{"actions": [{"intent": "create", "event": {"summary": "Dentist", "start_time": "2026-09-01T10:00:00Z", "end_time": "2026-09-01T11:00:00Z"}}]}`,
			&fakeCalendarService{insertErr: errors.New("network down")},
		},
		{
			"list fails",
			`{"actions": [{"intent": "list", "days": 1}]}`,
			&fakeCalendarService{listErr: errors.New("network down")},
		},
		{
			"delete scan fails",
			`{"actions": [{"intent": "delete", "summary": "meeting"}]}`,
			&fakeCalendarService{listErr: errors.New("network down")},
		},
		{
			"delete fails",
			`{"actions": [{"intent": "delete", "summary": "meeting"}]}`,
			&fakeCalendarService{
				events:    []calendar.Event{{ID: "a", Summary: "Team Meeting"}},
				deleteErr: errors.New("network down"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llm := &scriptedCompleter{replies: []string{tt.reply}}
			agent := newTestCalendar(llm, tt.svc)

			reply, err := agent.Run(context.Background(), "do the thing")
			if err != nil {
				t.Fatalf("external failures must not surface as errors, got: %v", err)
			}
			if reply != replyCalendarUnreachable {
				t.Errorf("reply: got %q, want %q", reply, replyCalendarUnreachable)
			}
		})
	}
}

func TestCalendar_NotUnderstood(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"prose", "Sorry, I can't tell what you want."},
		{"empty actions", `{"actions": []}`},
		{"malformed json", `{"actions": [`},
		{"unknown intents only", `{"actions": [{"intent": "reschedule"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llm := &scriptedCompleter{replies: []string{tt.reply}}
			agent := newTestCalendar(llm, &fakeCalendarService{})

			reply, err := agent.Run(context.Background(), "do something")
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if reply != replyNotUnderstood {
				t.Errorf("reply: got %q, want %q", reply, replyNotUnderstood)
			}
		})
	}
}

func TestCalendar_PromptCarriesLocalTime(t *testing.T) {
	llm := &scriptedCompleter{replies: []string{`{"actions": [{"intent": "list", "days": 1}]}`}}
	agent := newTestCalendar(llm, &fakeCalendarService{})

	if _, err := agent.Run(context.Background(), "show my day"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	prompt := llm.prompts[0]
	if !strings.Contains(prompt, "Friday, August 28, 2026 12:00 UTC") {
		t.Errorf("prompt should carry the pinned local time:\n%s", prompt)
	}
	if !strings.Contains(prompt, `"show my day"`) {
		t.Errorf("prompt should carry the query:\n%s", prompt)
	}
}
