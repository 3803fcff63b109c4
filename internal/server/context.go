package server

import (
	"context"
	"log/slog"
	"sync"

	"github.com/teemow/frontdesk/internal/ai"
	"github.com/teemow/frontdesk/internal/calendar"
	"github.com/teemow/frontdesk/internal/delivery"
	"github.com/teemow/frontdesk/internal/drive"
	"github.com/teemow/frontdesk/internal/gmail"
	"github.com/teemow/frontdesk/internal/instrumentation"
	"github.com/teemow/frontdesk/internal/knowledge"
	"github.com/teemow/frontdesk/internal/schedule"
)

// Config holds the settings the tool handlers need.
type Config struct {
	// HomeZone is the business time zone all naive timestamps are
	// interpreted in.
	HomeZone *schedule.HomeZone

	// CalendarID is the calendar availability and bookings run against.
	// Defaults to "primary".
	CalendarID string

	// KnowledgeDir is the directory the document corpus is loaded from.
	KnowledgeDir string

	// FallbackEmail receives collateral when no recipient is given.
	FallbackEmail string

	// DriveFolderID is the optional Drive folder generated documents
	// are created in.
	DriveFolderID string

	// AI configures the completion provider. Nil uses ai.DefaultConfig.
	AI *ai.Config
}

// ServerContext holds the context for the MCP server.
type ServerContext struct {
	ctx    context.Context
	cancel context.CancelFunc
	config Config

	calendarClients map[string]*calendar.Client // account name -> client
	driveClients    map[string]*drive.Client
	gmailClients    map[string]*gmail.Client

	knowledgeStore *knowledge.Store
	aiProvider     *ai.Provider

	metrics     *instrumentation.Metrics
	auditLogger *instrumentation.AuditLogger

	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext creates a new server context. The knowledge store is
// loaded eagerly so a bad corpus directory fails at startup; Google
// clients are created lazily because accounts may authorize later.
func NewServerContext(ctx context.Context, config Config) (*ServerContext, error) {
	shutdownCtx, cancel := context.WithCancel(ctx)

	if config.HomeZone == nil {
		config.HomeZone = schedule.MustHomeZone(schedule.DefaultHomeOffset)
	}
	if config.CalendarID == "" {
		config.CalendarID = "primary"
	}

	var store *knowledge.Store
	if config.KnowledgeDir != "" {
		var err error
		store, err = knowledge.NewStore(config.KnowledgeDir)
		if err != nil {
			cancel()
			return nil, err
		}
	}

	var provider *ai.Provider
	if config.AI != nil {
		var err error
		provider, err = ai.NewProvider(config.AI)
		if err != nil {
			cancel()
			return nil, err
		}
	}

	return &ServerContext{
		ctx:             shutdownCtx,
		cancel:          cancel,
		config:          config,
		calendarClients: make(map[string]*calendar.Client),
		driveClients:    make(map[string]*drive.Client),
		gmailClients:    make(map[string]*gmail.Client),
		knowledgeStore:  store,
		aiProvider:      provider,
	}, nil
}

// Context returns the server context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Config returns the server configuration.
func (sc *ServerContext) Config() Config {
	return sc.config
}

// HomeZone returns the configured business time zone.
func (sc *ServerContext) HomeZone() *schedule.HomeZone {
	return sc.config.HomeZone
}

// CalendarID returns the configured calendar.
func (sc *ServerContext) CalendarID() string {
	return sc.config.CalendarID
}

// KnowledgeStore returns the document corpus store, or nil when no
// knowledge directory is configured.
func (sc *ServerContext) KnowledgeStore() *knowledge.Store {
	return sc.knowledgeStore
}

// AIProvider returns the completion provider, or nil when AI is not
// configured.
func (sc *ServerContext) AIProvider() *ai.Provider {
	return sc.aiProvider
}

// CalendarClientForAccount returns the Calendar client for a specific
// account, creating and caching it on first use. Returns nil if the
// account has no token.
func (sc *ServerContext) CalendarClientForAccount(account string) *calendar.Client {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if client, ok := sc.calendarClients[account]; ok {
		return client
	}

	if !calendar.HasTokenForAccount(account) {
		return nil
	}

	client, err := calendar.NewClientForAccount(sc.ctx, account)
	if err != nil {
		slog.Warn("failed to create calendar client", "account", account, "error", err)
		return nil
	}

	sc.calendarClients[account] = client
	return client
}

// CalendarClient returns the Calendar client for the default account.
func (sc *ServerContext) CalendarClient() *calendar.Client {
	return sc.CalendarClientForAccount("default")
}

// SetCalendarClientForAccount sets the Calendar client for a specific account.
func (sc *ServerContext) SetCalendarClientForAccount(account string, client *calendar.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.calendarClients[account] = client
}

// DriveClientForAccount returns the Drive client for a specific account,
// creating and caching it on first use. Returns nil if the account has
// no token.
func (sc *ServerContext) DriveClientForAccount(account string) *drive.Client {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if client, ok := sc.driveClients[account]; ok {
		return client
	}

	if !drive.HasTokenForAccount(account) {
		return nil
	}

	client, err := drive.NewClientForAccount(sc.ctx, account)
	if err != nil {
		slog.Warn("failed to create drive client", "account", account, "error", err)
		return nil
	}

	sc.driveClients[account] = client
	return client
}

// DriveClient returns the Drive client for the default account.
func (sc *ServerContext) DriveClient() *drive.Client {
	return sc.DriveClientForAccount("default")
}

// SetDriveClientForAccount sets the Drive client for a specific account.
func (sc *ServerContext) SetDriveClientForAccount(account string, client *drive.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.driveClients[account] = client
}

// GmailClientForAccount returns the Gmail client for a specific account,
// creating and caching it on first use. Returns nil if the account has
// no token.
func (sc *ServerContext) GmailClientForAccount(account string) *gmail.Client {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if client, ok := sc.gmailClients[account]; ok {
		return client
	}

	if !gmail.HasTokenForAccount(account) {
		return nil
	}

	client, err := gmail.NewClientForAccount(sc.ctx, account)
	if err != nil {
		slog.Warn("failed to create gmail client", "account", account, "error", err)
		return nil
	}

	sc.gmailClients[account] = client
	return client
}

// GmailClient returns the Gmail client for the default account.
func (sc *ServerContext) GmailClient() *gmail.Client {
	return sc.GmailClientForAccount("default")
}

// SetGmailClientForAccount sets the Gmail client for a specific account.
func (sc *ServerContext) SetGmailClientForAccount(account string, client *gmail.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.gmailClients[account] = client
}

// OrchestratorForAccount assembles the delivery fallback chain for a
// specific account. Missing clients leave their channel in the chain;
// the channel fails at publish time and delivery degrades past it.
func (sc *ServerContext) OrchestratorForAccount(account string) *delivery.Orchestrator {
	var docs delivery.DocPublisher
	if c := sc.DriveClientForAccount(account); c != nil {
		docs = c
	}

	var mail delivery.MailSender
	if c := sc.GmailClientForAccount(account); c != nil {
		mail = c
	}

	return delivery.NewDefaultChannels(slog.Default(), docs, mail,
		sc.config.DriveFolderID, sc.config.FallbackEmail)
}

// SetMetrics sets the metrics recorder used by the tool handlers.
func (sc *ServerContext) SetMetrics(metrics *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = metrics
}

// Metrics returns the metrics recorder, or nil if instrumentation is
// not configured.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetAuditLogger sets the audit logger used by the tool handlers.
func (sc *ServerContext) SetAuditLogger(logger *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = logger
}

// AuditLogger returns the audit logger, or nil if audit logging is not
// configured.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// IsShutdown returns whether the server has been shutdown.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
