package delivery

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/teemow/frontdesk/internal/logging"
)

// Channel names, in fallback order.
const (
	ChannelCloudDoc = "cloud_doc"
	ChannelEmail    = "email"
	ChannelInline   = "inline"
)

// Payload is the content to deliver.
type Payload struct {
	// Topic names the collateral; it becomes the document title or
	// email subject.
	Topic string

	// Content is the generated collateral text.
	Content string

	// Recipient is an optional email address. When empty, the email
	// channel falls back to the configured address.
	Recipient string
}

// Channel is one delivery mechanism. Publish returns a reference for the
// delivered content (a link, a message ID, or the inline preview itself).
type Channel interface {
	Name() string
	Publish(ctx context.Context, payload Payload) (string, error)
}

// Attempt records one channel try. Failed attempts carry the error text
// so the outcome explains how delivery degraded.
type Attempt struct {
	Channel string
	Err     string
}

// Outcome is the result of a delivery run: the channel that won, its
// reference, and the attempts that failed before it. Degraded is set
// when any earlier channel failed.
type Outcome struct {
	Channel   string
	Reference string
	Degraded  bool
	Attempts  []Attempt
}

// Orchestrator tries channels in order and returns the first success.
type Orchestrator struct {
	channels []Channel
	logger   *slog.Logger
}

// NewOrchestrator creates an orchestrator over the given channels, tried
// in slice order. The final channel should be one that cannot fail
// (inline); NewDefaultChannels arranges this.
func NewOrchestrator(logger *slog.Logger, channels ...Channel) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{channels: channels, logger: logger}
}

// Deliver attempts each channel in order and stops at the first success.
// It returns an error only when every channel failed, which cannot
// happen with the inline channel configured last.
func (o *Orchestrator) Deliver(ctx context.Context, payload Payload) (*Outcome, error) {
	outcome := &Outcome{}

	for _, channel := range o.channels {
		ref, err := channel.Publish(ctx, payload)
		if err != nil {
			o.logger.Warn("delivery channel failed, falling back",
				logging.Operation("delivery.publish"),
				slog.String("channel", channel.Name()),
				logging.Err(err))
			outcome.Attempts = append(outcome.Attempts, Attempt{Channel: channel.Name(), Err: err.Error()})
			outcome.Degraded = true
			continue
		}

		outcome.Channel = channel.Name()
		outcome.Reference = ref
		o.logger.Info("collateral delivered",
			logging.Operation("delivery.publish"),
			slog.String("channel", channel.Name()),
			slog.Bool("degraded", outcome.Degraded))
		return outcome, nil
	}

	return nil, fmt.Errorf("all %d delivery channels failed", len(o.channels))
}

// ChannelNames returns the configured channel order, for logging and
// introspection.
func (o *Orchestrator) ChannelNames() []string {
	names := make([]string, len(o.channels))
	for i, c := range o.channels {
		names[i] = c.Name()
	}
	return names
}
