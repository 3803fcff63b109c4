package cmd

import (
	"testing"

	"github.com/teemow/frontdesk/internal/schedule"
)

func TestBuildServerConfig(t *testing.T) {
	tests := []struct {
		name    string
		opts    serveOptions
		wantErr bool
		check   func(t *testing.T, opts serveOptions)
	}{
		{
			name: "default offset and calendar",
			opts: serveOptions{homeOffset: schedule.DefaultHomeOffset, calendarID: "primary"},
			check: func(t *testing.T, opts serveOptions) {
				config, err := buildServerConfig(opts)
				if err != nil {
					t.Fatalf("buildServerConfig() error = %v", err)
				}
				if config.HomeZone == nil {
					t.Fatal("expected home zone to be set")
				}
				if got := config.HomeZone.Offset(); got != schedule.DefaultHomeOffset {
					t.Errorf("home zone offset = %q, want %q", got, schedule.DefaultHomeOffset)
				}
				if config.AI != nil {
					t.Error("expected no AI config without an API key")
				}
			},
		},
		{
			name:    "invalid offset",
			opts:    serveOptions{homeOffset: "half past nine"},
			wantErr: true,
		},
		{
			name:    "offset without sign",
			opts:    serveOptions{homeOffset: "05:30"},
			wantErr: true,
		},
		{
			name: "api key enables AI with default model",
			opts: serveOptions{homeOffset: "+01:00", openaiAPIKey: "sk-test"},
			check: func(t *testing.T, opts serveOptions) {
				config, err := buildServerConfig(opts)
				if err != nil {
					t.Fatalf("buildServerConfig() error = %v", err)
				}
				if config.AI == nil {
					t.Fatal("expected AI config when an API key is set")
				}
				if config.AI.APIKey != "sk-test" {
					t.Errorf("AI API key = %q, want %q", config.AI.APIKey, "sk-test")
				}
				if config.AI.ChatModel == "" {
					t.Error("expected a default chat model")
				}
			},
		},
		{
			name: "model and base URL overrides",
			opts: serveOptions{
				homeOffset:    "+01:00",
				openaiAPIKey:  "sk-test",
				openaiModel:   "gpt-4o",
				openaiBaseURL: "https://llm.internal/v1",
			},
			check: func(t *testing.T, opts serveOptions) {
				config, err := buildServerConfig(opts)
				if err != nil {
					t.Fatalf("buildServerConfig() error = %v", err)
				}
				if config.AI.ChatModel != "gpt-4o" {
					t.Errorf("chat model = %q, want %q", config.AI.ChatModel, "gpt-4o")
				}
				if config.AI.BaseURL != "https://llm.internal/v1" {
					t.Errorf("base URL = %q, want %q", config.AI.BaseURL, "https://llm.internal/v1")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.wantErr {
				if _, err := buildServerConfig(tt.opts); err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			tt.check(t, tt.opts)
		})
	}
}
