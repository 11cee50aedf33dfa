package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/nexcai/nexcai/internal/adapter"
	"github.com/nexcai/nexcai/internal/calendar"
)

const (
	replyNotUnderstood       = "I couldn't understand your request."
	replyCalendarUnreachable = "Sorry, I couldn't reach your calendar."
)

// deleteScanLimit caps how many upcoming events a delete action scans.
const deleteScanLimit = 20

const interpretPrompt = `You are NEXCAI — a precise AI assistant that controls the user's Google Calendar.

Current local time: %s (%s)
User message: %q

Goals:
- Detect intent: "create" | "list" | "delete".
- For "create": resolve all relative times to ISO 8601 in %[2]s.
- For "list": if the user mentions a specific period like "tomorrow", "today",
  "this week", "next week", "on Monday", etc., return explicit ISO 8601
  "start_time" and "end_time" covering that whole period
  (e.g., "tomorrow" => 00:00 to 23:59:59 of tomorrow in %[2]s).
  If the user says only "next N days", you may return "days": N instead.
- For "delete": return a partial "summary" to match events by title.

Respond ONLY with valid JSON:
{
  "actions": [
    {
      "intent": "create",
      "event": {
        "summary": "Title",
        "start_time": "YYYY-MM-DDTHH:MM:SS+HH:MM",
        "end_time":   "YYYY-MM-DDTHH:MM:SS+HH:MM",
        "description": "optional",
        "location": "optional"
      }
    },
    {
      "intent": "list",
      "start_time": "YYYY-MM-DDTHH:MM:SS+HH:MM",
      "end_time":   "YYYY-MM-DDTHH:MM:SS+HH:MM",
      "days": null
    },
    {
      "intent": "delete",
      "summary": "partial title"
    }
  ]
}

IMPORTANT: Respond only with JSON. No explanations or extra text.`

var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

type calendarEvent struct {
	Summary     string `json:"summary"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

type calendarAction struct {
	Intent    string         `json:"intent"`
	Event     *calendarEvent `json:"event"`
	StartTime string         `json:"start_time"`
	EndTime   string         `json:"end_time"`
	Days      *int           `json:"days"`
	Summary   string         `json:"summary"`
}

// Calendar interprets a query into create/list/delete actions and
// drives the calendar service.
type Calendar struct {
	llm      adapter.Completer
	service  calendar.Service
	timezone *time.Location
	now      func() time.Time
}

// NewCalendar creates a Calendar agent. A nil timezone falls back to
// the local zone.
func NewCalendar(llm adapter.Completer, service calendar.Service, timezone *time.Location) *Calendar {
	if timezone == nil {
		timezone = time.Local
	}
	return &Calendar{llm: llm, service: service, timezone: timezone, now: time.Now}
}

func (c *Calendar) Run(ctx context.Context, query string) (string, error) {
	actions := c.interpret(ctx, query)
	if len(actions) == 0 {
		return replyNotUnderstood, nil
	}

	var responses []string
	for _, action := range actions {
		switch action.Intent {
		case "create":
			if action.Event == nil {
				continue
			}
			responses = append(responses, c.createEvent(ctx, *action.Event))
		case "list":
			responses = append(responses, c.listEvents(ctx, action))
		case "delete":
			responses = append(responses, c.deleteEvents(ctx, action.Summary))
		}
	}

	if len(responses) == 0 {
		return replyNotUnderstood, nil
	}
	return strings.Join(responses, "\n\n"), nil
}

// interpret asks the LLM for the actions array. Malformed output
// yields no actions, which Run folds into the not-understood reply.
func (c *Calendar) interpret(ctx context.Context, query string) []calendarAction {
	now := c.now().In(c.timezone)
	prompt := fmt.Sprintf(interpretPrompt, now.Format("Monday, January 2, 2006 15:04 MST"), c.timezone.String(), query)

	reply, err := adapter.Chat(ctx, c.llm, prompt)
	if err != nil {
		return nil
	}

	block := jsonBlockRe.FindString(reply)
	if block == "" {
		return nil
	}

	var parsed struct {
		Actions []calendarAction `json:"actions"`
	}
	if err := json.Unmarshal([]byte(block), &parsed); err != nil {
		return nil
	}
	return parsed.Actions
}

// The calendar API is an external dependency like the weather service:
// a failure there becomes an apology in the reply, never an error the
// chat loop has to surface.
func (c *Calendar) createEvent(ctx context.Context, ev calendarEvent) string {
	created, err := c.service.InsertEvent(ctx, calendar.Event{
		Summary:     ev.Summary,
		Description: ev.Description,
		Location:    ev.Location,
		Start:       calendar.EventTime{DateTime: ev.StartTime, TimeZone: c.timezone.String()},
		End:         calendar.EventTime{DateTime: ev.EndTime, TimeZone: c.timezone.String()},
	})
	if err != nil {
		return replyCalendarUnreachable
	}
	return fmt.Sprintf("Event '%s' created! %s", created.Summary, created.HTMLLink)
}

func (c *Calendar) listEvents(ctx context.Context, action calendarAction) string {
	start, end := action.StartTime, action.EndTime
	if start == "" || end == "" {
		days := 1
		if action.Days != nil && *action.Days > 0 {
			days = *action.Days
		}
		now := c.now().In(c.timezone)
		start = now.Format(time.RFC3339)
		end = now.AddDate(0, 0, days).Format(time.RFC3339)
	}

	events, err := c.service.ListEvents(ctx, calendar.ListRequest{TimeMin: start, TimeMax: end})
	if err != nil {
		return replyCalendarUnreachable
	}
	if len(events) == 0 {
		return "No upcoming events found."
	}

	lines := make([]string, len(events))
	for i, e := range events {
		lines[i] = fmt.Sprintf("• %s — %s", e.Summary, c.eventTime(e))
	}
	return "Upcoming events:\n" + strings.Join(lines, "\n")
}

// eventTime renders an event's start as a local HH:MM, or "All day"
// for date-only starts.
func (c *Calendar) eventTime(e calendar.Event) string {
	if e.Start.DateTime == "" {
		return "All day"
	}
	t, err := time.Parse(time.RFC3339, e.Start.DateTime)
	if err != nil {
		return "All day"
	}
	return t.In(c.timezone).Format("15:04")
}

func (c *Calendar) deleteEvents(ctx context.Context, summaryPart string) string {
	events, err := c.service.ListEvents(ctx, calendar.ListRequest{
		TimeMin:    c.now().UTC().Format(time.RFC3339),
		MaxResults: deleteScanLimit,
	})
	if err != nil {
		return replyCalendarUnreachable
	}

	needle := strings.ToLower(summaryPart)
	var deleted []string
	for _, e := range events {
		if !strings.Contains(strings.ToLower(e.Summary), needle) {
			continue
		}
		if err := c.service.DeleteEvent(ctx, e.ID); err != nil {
			return replyCalendarUnreachable
		}
		deleted = append(deleted, e.Summary)
	}

	if len(deleted) == 0 {
		return fmt.Sprintf("No event found matching '%s'.", summaryPart)
	}
	return "Deleted events: " + strings.Join(deleted, ", ")
}
