package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"strings"

	ggmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/teemow/frontdesk/internal/google"
)

// EmailMessage describes an outgoing email.
type EmailMessage struct {
	To      []string
	Cc      []string
	Subject string
	Body    string
	IsHTML  bool
}

// Client wraps the Gmail Users service
type Client struct {
	svc     *ggmail.UsersService
	account string // The account this client is associated with
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
	return google.HasToken()
}

// NewClientForAccount creates a new Gmail client with OAuth2
// authentication for a specific account.
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	client, err := google.GetHTTPClientForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found for account %s: %w", account, err)
	}

	svc, err := ggmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}

	return &Client{
		svc:     svc.Users,
		account: account,
	}, nil
}

// NewClient creates a new Gmail client for the default account.
func NewClient(ctx context.Context) (*Client, error) {
	return NewClientForAccount(ctx, "default")
}

// Send sends an email through the Gmail API and returns the message ID.
func (c *Client) Send(ctx context.Context, msg *EmailMessage) (string, error) {
	raw, err := buildRawMessage(msg)
	if err != nil {
		return "", err
	}

	sent, err := c.svc.Messages.Send("me", &ggmail.Message{Raw: raw}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	return sent.Id, nil
}

// buildRawMessage assembles the RFC 2822 message and encodes it in the
// base64url form the Gmail API expects.
func buildRawMessage(msg *EmailMessage) (string, error) {
	if msg == nil || len(msg.To) == 0 {
		return "", fmt.Errorf("at least one recipient is required")
	}
	if msg.Subject == "" {
		return "", fmt.Errorf("subject is required")
	}
	if msg.Body == "" {
		return "", fmt.Errorf("body is required")
	}

	var b strings.Builder

	b.WriteString("To: ")
	b.WriteString(strings.Join(msg.To, ", "))
	b.WriteString("\r\n")

	if len(msg.Cc) > 0 {
		b.WriteString("Cc: ")
		b.WriteString(strings.Join(msg.Cc, ", "))
		b.WriteString("\r\n")
	}

	// Encode for non-ASCII characters like umlauts
	b.WriteString("Subject: ")
	b.WriteString(encodeRFC2047(msg.Subject))
	b.WriteString("\r\n")

	if msg.IsHTML {
		b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	} else {
		b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	}
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)

	return base64.URLEncoding.EncodeToString([]byte(b.String())), nil
}

// encodeRFC2047 encodes a header value when it contains non-ASCII
// characters, leaving plain ASCII untouched for readability.
func encodeRFC2047(value string) string {
	for _, r := range value {
		if r > 127 {
			return mime.QEncoding.Encode("UTF-8", value)
		}
	}
	return value
}
