package cmd

import (
	"testing"
	"time"
)

func TestGetServiceURLTrimsTrailingSlashes(t *testing.T) {
	saved := serviceURL
	defer func() { serviceURL = saved }()

	tests := []struct {
		url      string
		expected string
		desc     string
	}{
		{"http://localhost:8000", "http://localhost:8000", "no trailing slash"},
		{"http://localhost:8000/", "http://localhost:8000", "single trailing slash"},
		{"http://localhost:8000///", "http://localhost:8000", "multiple trailing slashes"},
		{"https://processor.internal:9000/", "https://processor.internal:9000", "https with port"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			serviceURL = tt.url
			if got := GetServiceURL(); got != tt.expected {
				t.Errorf("GetServiceURL() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestPollRetryConfig(t *testing.T) {
	saved := pollRetries
	defer func() { pollRetries = saved }()

	pollRetries = 0
	if cfg := pollRetryConfig(); cfg.Enabled() {
		t.Errorf("pollRetryConfig() with 0 retries should be disabled, got %+v", cfg)
	}

	pollRetries = 5
	cfg := pollRetryConfig()
	if !cfg.Enabled() {
		t.Fatal("pollRetryConfig() with 5 retries should be enabled")
	}
	if cfg.MaxRetries != 5 {
		t.Errorf("MaxRetries = %d, expected 5", cfg.MaxRetries)
	}
	if cfg.InitialBackoff != time.Second {
		t.Errorf("InitialBackoff = %v, expected %v", cfg.InitialBackoff, time.Second)
	}
}

func TestIsJSONOutput(t *testing.T) {
	saved := jsonOutput
	defer func() { jsonOutput = saved }()

	jsonOutput = false
	if IsJSONOutput() {
		t.Error("IsJSONOutput() = true, expected false")
	}
	jsonOutput = true
	if !IsJSONOutput() {
		t.Error("IsJSONOutput() = false, expected true")
	}
}
