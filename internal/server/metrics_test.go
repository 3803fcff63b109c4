package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/frontdesk/internal/instrumentation"
)

func newInstrumentationProvider(t *testing.T) *instrumentation.Provider {
	t.Helper()

	provider, err := instrumentation.NewProvider(context.Background(), instrumentation.Config{
		ServiceName:     "frontdesk-test",
		ServiceVersion:  "test",
		Enabled:         true,
		MetricsExporter: instrumentation.ExporterPrometheus,
		TracingExporter: instrumentation.ExporterNone,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	return provider
}

func TestNewMetricsServer_RequiresProvider(t *testing.T) {
	_, err := NewMetricsServer(MetricsServerConfig{Enabled: true})
	assert.Error(t, err)
}

func TestNewMetricsServer_RequiresEnabledProvider(t *testing.T) {
	disabled, err := instrumentation.NewProvider(context.Background(), instrumentation.Config{Enabled: false})
	require.NoError(t, err)

	_, err = NewMetricsServer(MetricsServerConfig{
		Enabled:                 true,
		InstrumentationProvider: disabled,
	})
	assert.Error(t, err)
}

func TestNewMetricsServer_DefaultAddr(t *testing.T) {
	srv, err := NewMetricsServer(MetricsServerConfig{
		Enabled:                 true,
		InstrumentationProvider: newInstrumentationProvider(t),
	})
	require.NoError(t, err)
	assert.Equal(t, DefaultMetricsAddr, srv.Addr())
}

func TestMetricsServer_ServesMetricsEndpoint(t *testing.T) {
	srv, err := NewMetricsServer(MetricsServerConfig{
		Addr:                    "127.0.0.1:0",
		Enabled:                 true,
		InstrumentationProvider: newInstrumentationProvider(t),
	})
	require.NoError(t, err)

	ready := make(chan struct{})
	serveErr := make(chan error, 1)
	go func() {
		if err := srv.StartWithReadySignal(ready); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ready:
	case err := <-serveErr:
		t.Fatalf("metrics server failed to start: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("metrics server startup timed out")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	if err := <-serveErr; err != nil {
		t.Fatalf("metrics server error: %v", err)
	}
}
