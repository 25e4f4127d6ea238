package logger

import (
	"testing"

	"quizapp_backend/internal/config"

	"go.uber.org/zap"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		mode  string
		level string
		want  string
	}{
		{"debug", "error", "debug"},
		{"release", "warn", "warn"},
		{"release", "", "info"},
		{"release", "nonsense", "info"},
	}
	for _, tc := range cases {
		cfg := &config.Config{Server: config.ServerConfig{Mode: tc.mode}, Log: config.LogConfig{Level: tc.level}}
		if got := ParseLevel(cfg).String(); got != tc.want {
			t.Fatalf("mode=%s level=%q: expected %s, got %s", tc.mode, tc.level, tc.want, got)
		}
	}
}

func TestSetLevelUpdatesAtomicLevel(t *testing.T) {
	SetLevel(&config.Config{Server: config.ServerConfig{Mode: "release"}, Log: config.LogConfig{Level: "error"}})
	if Level() != zap.ErrorLevel {
		t.Fatalf("expected error level, got %s", Level())
	}
	SetLevel(&config.Config{Server: config.ServerConfig{Mode: "release"}, Log: config.LogConfig{Level: "info"}})
	if Level() != zap.InfoLevel {
		t.Fatalf("expected info level, got %s", Level())
	}
}
