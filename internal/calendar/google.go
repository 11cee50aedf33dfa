package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/oauth2"
)

const (
	defaultBaseURL = "https://www.googleapis.com/calendar/v3"

	// Scope grants full read/write access to the user's calendars.
	Scope = "https://www.googleapis.com/auth/calendar"
)

// OAuthConfig builds the oauth2 config for the Google Calendar API.
// The out-of-band redirect keeps the flow usable on headless machines.
func OAuthConfig(clientID, clientSecret string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     strings.TrimSpace(clientID),
		ClientSecret: strings.TrimSpace(clientSecret),
		RedirectURL:  "urn:ietf:wg:oauth:2.0:oob",
		Scopes:       []string{Scope},
		Endpoint: oauth2.Endpoint{
			AuthURL:  "https://accounts.google.com/o/oauth2/v2/auth",
			TokenURL: "https://oauth2.googleapis.com/token",
		},
	}
}

// GoogleService implements Service against the Calendar v3 REST API.
type GoogleService struct {
	client     *http.Client
	baseURL    string
	calendarID string
}

// NewGoogleService wraps an authenticated HTTP client. calendarID is
// usually "primary"; an empty baseURL selects the public API.
func NewGoogleService(client *http.Client, calendarID, baseURL string) *GoogleService {
	if client == nil {
		client = http.DefaultClient
	}
	if calendarID == "" {
		calendarID = "primary"
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &GoogleService{
		client:     client,
		baseURL:    strings.TrimRight(baseURL, "/"),
		calendarID: calendarID,
	}
}

func (g *GoogleService) eventsURL() string {
	return g.baseURL + "/calendars/" + url.PathEscape(g.calendarID) + "/events"
}

// InsertEvent creates the event and returns the server's version of it,
// including the ID and HTML link.
func (g *GoogleService) InsertEvent(ctx context.Context, event Event) (Event, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return Event{}, fmt.Errorf("calendar: encode event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.eventsURL(), bytes.NewReader(body))
	if err != nil {
		return Event{}, fmt.Errorf("calendar: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return Event{}, fmt.Errorf("calendar: insert event: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return Event{}, err
	}

	var created Event
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return Event{}, fmt.Errorf("calendar: decode event: %w", err)
	}
	return created, nil
}

// ListEvents returns single events in the requested window, ordered by
// start time.
func (g *GoogleService) ListEvents(ctx context.Context, listReq ListRequest) ([]Event, error) {
	q := url.Values{}
	q.Set("singleEvents", "true")
	q.Set("orderBy", "startTime")
	if listReq.TimeMin != "" {
		q.Set("timeMin", listReq.TimeMin)
	}
	if listReq.TimeMax != "" {
		q.Set("timeMax", listReq.TimeMax)
	}
	if listReq.MaxResults > 0 {
		q.Set("maxResults", strconv.Itoa(listReq.MaxResults))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.eventsURL()+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("calendar: build request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calendar: list events: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var payload struct {
		Items []Event `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("calendar: decode listing: %w", err)
	}
	return payload.Items, nil
}

// DeleteEvent cancels the event with the given ID.
func (g *GoogleService) DeleteEvent(ctx context.Context, eventID string) error {
	endpoint := g.eventsURL() + "/" + url.PathEscape(eventID)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("calendar: build request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("calendar: delete event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusOK {
		return nil
	}
	return checkStatus(resp)
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = resp.Status
	}
	return fmt.Errorf("calendar: api error (status %d): %s", resp.StatusCode, msg)
}
