package delivery

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/teemow/frontdesk/internal/drive"
	"github.com/teemow/frontdesk/internal/gmail"
)

// InlinePreviewLimit bounds the inline fallback so a tool reply stays a
// readable size even for long collateral.
const InlinePreviewLimit = 2000

// DocPublisher is the slice of the Drive client the cloud-doc channel
// needs.
type DocPublisher interface {
	UploadDocument(ctx context.Context, name string, content io.Reader, options *drive.UploadOptions) (*drive.FileInfo, error)
}

// MailSender is the slice of the Gmail client the email channel needs.
type MailSender interface {
	Send(ctx context.Context, msg *gmail.EmailMessage) (string, error)
}

// CloudDocChannel publishes collateral as a hosted Google Doc and
// returns its web view link.
type CloudDocChannel struct {
	Publisher DocPublisher
	// FolderID is the optional Drive folder to create documents in.
	FolderID string
}

// Name implements Channel.
func (c *CloudDocChannel) Name() string { return ChannelCloudDoc }

// Publish implements Channel.
func (c *CloudDocChannel) Publish(ctx context.Context, payload Payload) (string, error) {
	if c.Publisher == nil {
		return "", fmt.Errorf("no cloud document backend configured")
	}

	info, err := c.Publisher.UploadDocument(ctx,
		drive.SafeDocumentName(payload.Topic),
		strings.NewReader(payload.Content),
		&drive.UploadOptions{ParentFolder: c.FolderID})
	if err != nil {
		return "", err
	}

	if info.WebViewLink != "" {
		return info.WebViewLink, nil
	}
	return info.ID, nil
}

// EmailChannel mails the collateral to the payload recipient, or to the
// configured fallback address when the request named none.
type EmailChannel struct {
	Sender MailSender
	// FallbackAddress receives collateral when no recipient is given.
	FallbackAddress string
}

// Name implements Channel.
func (c *EmailChannel) Name() string { return ChannelEmail }

// Publish implements Channel.
func (c *EmailChannel) Publish(ctx context.Context, payload Payload) (string, error) {
	if c.Sender == nil {
		return "", fmt.Errorf("no email backend configured")
	}

	to := payload.Recipient
	if to == "" {
		to = c.FallbackAddress
	}
	if to == "" {
		return "", fmt.Errorf("no recipient and no fallback address configured")
	}

	// The reference is the bare message ID; callers phrase the outcome.
	return c.Sender.Send(ctx, &gmail.EmailMessage{
		To:      []string{to},
		Subject: "Generated collateral: " + payload.Topic,
		Body:    payload.Content,
	})
}

// InlineChannel is the terminal fallback: it returns a truncated copy of
// the content directly. It performs no I/O and cannot fail.
type InlineChannel struct {
	// PreviewLimit overrides InlinePreviewLimit when positive.
	PreviewLimit int
}

// Name implements Channel.
func (c *InlineChannel) Name() string { return ChannelInline }

// Publish implements Channel.
func (c *InlineChannel) Publish(_ context.Context, payload Payload) (string, error) {
	limit := c.PreviewLimit
	if limit <= 0 {
		limit = InlinePreviewLimit
	}

	content := payload.Content
	if len(content) > limit {
		// Back off to a rune boundary so the cut never splits a
		// multi-byte character.
		for limit > 0 && !utf8.RuneStart(content[limit]) {
			limit--
		}
		content = content[:limit] + "\n... (truncated)"
	}
	return content, nil
}

// NewDefaultChannels assembles the standard fallback ladder: cloud doc,
// then email, then inline. Nil backends are allowed; their channels then
// fail over at delivery time, which keeps the ladder shape identical
// whether or not Google credentials are present.
func NewDefaultChannels(logger *slog.Logger, docs DocPublisher, mail MailSender, folderID, fallbackAddress string) *Orchestrator {
	return NewOrchestrator(logger,
		&CloudDocChannel{Publisher: docs, FolderID: folderID},
		&EmailChannel{Sender: mail, FallbackAddress: fallbackAddress},
		&InlineChannel{},
	)
}
