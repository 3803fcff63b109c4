package calendar

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/teemow/frontdesk/internal/google"
	"github.com/teemow/frontdesk/internal/schedule"
)

// Client wraps the Google Calendar service
type Client struct {
	svc           *gcal.Service
	account       string // The account this client is associated with
	tokenProvider google.TokenProvider
}

// Account returns the account name this client is associated with
func (c *Client) Account() string {
	return c.account
}

// HasTokenForAccount checks if a valid OAuth token exists for the specified account
func HasTokenForAccount(account string) bool {
	return google.HasTokenForAccount(account)
}

// HasToken checks if a valid OAuth token exists for the default account
func HasToken() bool {
	return HasTokenForAccount("default")
}

// GetAuthURLForAccount returns the OAuth URL for a specific account
func GetAuthURLForAccount(account string) string {
	return google.GetAuthURLForAccount(account)
}

// NewClientForAccountWithProvider creates a new Calendar client with OAuth2
// authentication for a specific account, using the provided token provider.
func NewClientForAccountWithProvider(ctx context.Context, account string, tokenProvider google.TokenProvider) (*Client, error) {
	if tokenProvider == nil {
		return nil, fmt.Errorf("token provider cannot be nil")
	}

	token, err := tokenProvider.GetTokenForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to get Google OAuth token for account %s: %w", account, err)
	}

	conf := google.GetOAuthConfig()
	tokenSource := conf.TokenSource(ctx, token)
	client := oauth2.NewClient(ctx, tokenSource)

	// Force HTTP/1.1 by disabling HTTP/2
	transport := client.Transport.(*oauth2.Transport)
	transport.Base = &http.Transport{
		ForceAttemptHTTP2: false,
	}

	svc, err := gcal.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}

	return &Client{
		svc:           svc,
		account:       account,
		tokenProvider: tokenProvider,
	}, nil
}

// NewClientForAccount creates a new Calendar client for a specific account
// using the default file-based token provider.
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	return NewClientForAccountWithProvider(ctx, account, google.NewFileTokenProvider())
}

// NewClient creates a new Calendar client for the default account.
func NewClient(ctx context.Context) (*Client, error) {
	return NewClientForAccount(ctx, "default")
}

// ListBusy fetches the events in [timeMin, timeMax) on a calendar and
// returns them as busy intervals in the given location. Recurring events
// are expanded into single instances; cancelled and transparent
// ("free") events are skipped.
func (c *Client) ListBusy(ctx context.Context, calendarID string, timeMin, timeMax time.Time, loc *time.Location) ([]schedule.BusyInterval, error) {
	events, err := c.svc.Events.List(calendarID).
		Context(ctx).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	var busy []schedule.BusyInterval
	for _, event := range events.Items {
		if event.Status == "cancelled" || event.Transparency == "transparent" {
			continue
		}
		if interval, ok := toBusyInterval(event, loc); ok {
			busy = append(busy, interval)
		}
	}

	return busy, nil
}

// InsertEvent creates an appointment event on the calendar. The
// conflict check happens before this call; the calendar itself accepts
// double-bookings silently.
func (c *Client) InsertEvent(ctx context.Context, calendarID string, input AppointmentInput) (*EventRef, error) {
	created, err := c.svc.Events.Insert(calendarID, buildEvent(input)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	ref := toEventRef(created)
	return &ref, nil
}
