package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/frontdesk/internal/ai"
	"github.com/teemow/frontdesk/internal/instrumentation"
	"github.com/teemow/frontdesk/internal/resources"
	"github.com/teemow/frontdesk/internal/schedule"
	"github.com/teemow/frontdesk/internal/server"
	"github.com/teemow/frontdesk/internal/tools/collateral_tools"
	"github.com/teemow/frontdesk/internal/tools/google_tools"
	"github.com/teemow/frontdesk/internal/tools/knowledge_tools"
	"github.com/teemow/frontdesk/internal/tools/schedule_tools"
)

// serveOptions collects the serve command's configuration.
type serveOptions struct {
	debug            bool
	transport        string
	httpAddr         string
	disableStreaming bool

	homeOffset    string
	calendarID    string
	knowledgeDir  string
	fallbackEmail string
	driveFolder   string

	openaiAPIKey  string
	openaiModel   string
	openaiBaseURL string

	metricsEnabled bool
	metricsAddr    string
}

func newServeCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the frontdesk MCP server, exposing scheduling, document search,
and collateral generation tools for AI assistants.

Supports two transports:
  - stdio: communicate over stdin/stdout (default, for local AI assistants)
  - streamable-http: serve over HTTP for remote clients`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			applyServeEnv(cmd, &opts)
			return runServe(opts)
		},
	}

	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&opts.transport, "transport", "stdio", "Transport type: stdio or streamable-http")
	cmd.Flags().StringVar(&opts.httpAddr, "http-addr", ":8080", "HTTP server address (for streamable-http transport)")
	cmd.Flags().BoolVar(&opts.disableStreaming, "disable-streaming", false, "Disable streaming for HTTP transport (for compatibility with certain clients)")
	cmd.Flags().StringVar(&opts.homeOffset, "home-offset", schedule.DefaultHomeOffset, "Business home time zone as a fixed UTC offset, e.g. '+05:30'. Can also use FRONTDESK_HOME_OFFSET env var.")
	cmd.Flags().StringVar(&opts.calendarID, "calendar-id", "primary", "Calendar to book appointments on. Can also use FRONTDESK_CALENDAR_ID env var.")
	cmd.Flags().StringVar(&opts.knowledgeDir, "knowledge-dir", "", "Directory of .txt/.md documents for the knowledge base. Can also use FRONTDESK_KNOWLEDGE_DIR env var.")
	cmd.Flags().StringVar(&opts.fallbackEmail, "fallback-email", "", "Email address collateral falls back to when no recipient is given. Can also use FRONTDESK_FALLBACK_EMAIL env var.")
	cmd.Flags().StringVar(&opts.driveFolder, "drive-folder", "", "Drive folder ID for generated documents. Can also use FRONTDESK_DRIVE_FOLDER env var.")
	cmd.Flags().StringVar(&opts.openaiAPIKey, "openai-api-key", "", "OpenAI API key for collateral generation. Can also use OPENAI_API_KEY env var.")
	cmd.Flags().StringVar(&opts.openaiModel, "openai-model", "", "Chat model for collateral generation (default: gpt-4o-mini). Can also use OPENAI_MODEL env var.")
	cmd.Flags().StringVar(&opts.openaiBaseURL, "openai-base-url", "", "OpenAI-compatible API base URL. Can also use OPENAI_BASE_URL env var.")
	cmd.Flags().BoolVar(&opts.metricsEnabled, "metrics-enabled", true, "Enable the metrics server on a dedicated port. Can also use METRICS_ENABLED env var.")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", server.DefaultMetricsAddr, "Metrics server address. Can also use METRICS_ADDR env var.")

	return cmd
}

// applyServeEnv fills in options from the environment for flags the user
// did not set explicitly. A .env file in the working directory is loaded
// first, if present.
func applyServeEnv(cmd *cobra.Command, opts *serveOptions) {
	_ = godotenv.Load()

	stringEnv := map[string]*struct {
		flag string
		env  string
		dst  *string
	}{
		"home-offset":     {"home-offset", "FRONTDESK_HOME_OFFSET", &opts.homeOffset},
		"calendar-id":     {"calendar-id", "FRONTDESK_CALENDAR_ID", &opts.calendarID},
		"knowledge-dir":   {"knowledge-dir", "FRONTDESK_KNOWLEDGE_DIR", &opts.knowledgeDir},
		"fallback-email":  {"fallback-email", "FRONTDESK_FALLBACK_EMAIL", &opts.fallbackEmail},
		"drive-folder":    {"drive-folder", "FRONTDESK_DRIVE_FOLDER", &opts.driveFolder},
		"openai-api-key":  {"openai-api-key", "OPENAI_API_KEY", &opts.openaiAPIKey},
		"openai-model":    {"openai-model", "OPENAI_MODEL", &opts.openaiModel},
		"openai-base-url": {"openai-base-url", "OPENAI_BASE_URL", &opts.openaiBaseURL},
	}
	for _, s := range stringEnv {
		if !cmd.Flags().Changed(s.flag) {
			if v := os.Getenv(s.env); v != "" {
				*s.dst = v
			}
		}
	}

	if !cmd.Flags().Changed("metrics-enabled") {
		if v := os.Getenv("METRICS_ENABLED"); v == "false" {
			opts.metricsEnabled = false
		}
	}
	if !cmd.Flags().Changed("metrics-addr") {
		if v := os.Getenv("METRICS_ADDR"); v != "" {
			opts.metricsAddr = v
		}
	}
}

func runServe(opts serveOptions) error {
	// Setup graceful shutdown
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	setupLogging(opts)

	// Initialize instrumentation provider
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(shutdownCtx); err != nil && opts.transport != "stdio" {
			log.Printf("Error during instrumentation shutdown: %v", err)
		}
	}()

	// Start metrics server if enabled and not in stdio mode
	var metricsServer *server.MetricsServer
	if opts.transport != "stdio" && opts.metricsEnabled && provider.Enabled() {
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    opts.metricsAddr,
			Enabled:                 true,
			InstrumentationProvider: provider,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}

		metricsReady := make(chan struct{})
		metricsErr := make(chan error, 1)
		go func() {
			if err := metricsServer.StartWithReadySignal(metricsReady); err != nil && err != http.ErrServerClosed {
				metricsErr <- err
			}
			close(metricsErr)
		}()

		select {
		case <-metricsReady:
			log.Printf("Metrics server started on %s", metricsServer.Addr())
		case err := <-metricsErr:
			return fmt.Errorf("metrics server failed to start: %w", err)
		case <-time.After(5 * time.Second):
			return fmt.Errorf("metrics server startup timed out")
		}
	}

	config, err := buildServerConfig(opts)
	if err != nil {
		return err
	}

	serverContext, err := server.NewServerContext(shutdownCtx, config)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	defer func() {
		if metricsServer != nil {
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				log.Printf("Error during metrics server shutdown: %v", err)
			}
		}
		if err := serverContext.Shutdown(); err != nil && opts.transport != "stdio" {
			log.Printf("Error during server context shutdown: %v", err)
		}
	}()

	serverContext.SetMetrics(provider.Metrics())
	serverContext.SetAuditLogger(
		instrumentation.NewAuditLoggerWithConfig(slog.Default(), instrConfig.AuditLogging))

	// Create MCP server
	mcpSrv := mcpserver.NewMCPServer("frontdesk", version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, false),
	)

	if err := registerAllTools(mcpSrv, serverContext); err != nil {
		return err
	}

	switch opts.transport {
	case "stdio":
		return runStdioServer(mcpSrv)
	case "streamable-http":
		return runHTTPServer(shutdownCtx, mcpSrv, serverContext, opts)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, streamable-http)", opts.transport)
	}
}

// setupLogging routes logs to stderr so the stdio transport keeps stdout
// clean for the protocol.
func setupLogging(opts serveOptions) {
	level := slog.LevelInfo
	if opts.debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	log.SetOutput(os.Stderr)
}

func buildServerConfig(opts serveOptions) (server.Config, error) {
	zone, err := schedule.NewHomeZone(opts.homeOffset)
	if err != nil {
		return server.Config{}, fmt.Errorf("invalid --home-offset: %w", err)
	}

	config := server.Config{
		HomeZone:      zone,
		CalendarID:    opts.calendarID,
		KnowledgeDir:  opts.knowledgeDir,
		FallbackEmail: opts.fallbackEmail,
		DriveFolderID: opts.driveFolder,
	}

	if opts.openaiAPIKey != "" {
		aiConfig := ai.DefaultConfig()
		aiConfig.APIKey = opts.openaiAPIKey
		if opts.openaiModel != "" {
			aiConfig.ChatModel = opts.openaiModel
		}
		if opts.openaiBaseURL != "" {
			aiConfig.BaseURL = opts.openaiBaseURL
		}
		config.AI = aiConfig
	}

	return config, nil
}

func runStdioServer(mcpSrv *mcpserver.MCPServer) error {
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	err := <-serverDone
	if err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}

func runHTTPServer(ctx context.Context, mcpSrv *mcpserver.MCPServer, sc *server.ServerContext, opts serveOptions) error {
	healthChecker := server.NewHealthChecker(sc)

	httpServer := server.NewHTTPServer(mcpSrv, server.HTTPServerConfig{
		Addr:             opts.httpAddr,
		DisableStreaming: opts.disableStreaming,
		HealthChecker:    healthChecker,
	})

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		log.Printf("Starting frontdesk MCP server on %s", opts.httpAddr)
		if err := httpServer.Start(); err != nil && err != http.ErrServerClosed {
			serverDone <- err
		}
	}()

	select {
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("server stopped with error: %w", err)
		}
		return nil
	case <-ctx.Done():
		healthChecker.SetReady(false)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error during server shutdown: %w", err)
		}
		return nil
	}
}

// registerAllTools registers all MCP tools and resources
func registerAllTools(mcpSrv *mcpserver.MCPServer, ctx *server.ServerContext) error {
	type toolRegistration struct {
		name     string
		register func() error
	}

	registrations := []toolRegistration{
		{
			name: "Schedule",
			register: func() error {
				return schedule_tools.RegisterScheduleTools(mcpSrv, ctx)
			},
		},
		{
			name: "Knowledge",
			register: func() error {
				return knowledge_tools.RegisterKnowledgeTools(mcpSrv, ctx)
			},
		},
		{
			name: "Collateral",
			register: func() error {
				return collateral_tools.RegisterCollateralTools(mcpSrv, ctx)
			},
		},
		{
			name: "Google",
			register: func() error {
				return google_tools.RegisterGoogleTools(mcpSrv, ctx)
			},
		},
		{
			name: "Knowledge Resources",
			register: func() error {
				return resources.RegisterKnowledgeResources(mcpSrv, ctx)
			},
		},
	}

	for _, reg := range registrations {
		if err := reg.register(); err != nil {
			return fmt.Errorf("failed to register %s: %w", reg.name, err)
		}
	}

	return nil
}
