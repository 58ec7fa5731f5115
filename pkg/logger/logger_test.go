package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestInit_ExplicitLevel(t *testing.T) {
	if err := Init(&Config{Level: "warn", ServiceName: "test"}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	core := Get().Core()
	if core.Enabled(zapcore.InfoLevel) {
		t.Error("Expected info to be disabled at warn level")
	}
	if !core.Enabled(zapcore.WarnLevel) {
		t.Error("Expected warn to be enabled at warn level")
	}
}

func TestInit_LevelDefaultsByMode(t *testing.T) {
	tests := []struct {
		name         string
		cfg          *Config
		debugEnabled bool
	}{
		{
			name:         "development defaults to debug",
			cfg:          &Config{ServiceName: "test", Development: true},
			debugEnabled: true,
		},
		{
			name:         "production defaults to info",
			cfg:          &Config{ServiceName: "test"},
			debugEnabled: false,
		},
		{
			name:         "explicit level wins over mode",
			cfg:          &Config{Level: "debug", ServiceName: "test"},
			debugEnabled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Init(tt.cfg); err != nil {
				t.Fatalf("Init failed: %v", err)
			}
			if got := Get().Core().Enabled(zapcore.DebugLevel); got != tt.debugEnabled {
				t.Errorf("Expected debug enabled %v, got %v", tt.debugEnabled, got)
			}
		})
	}
}

func TestInit_InvalidLevel(t *testing.T) {
	if err := Init(&Config{Level: "verbose", ServiceName: "test"}); err == nil {
		t.Error("Expected error for unknown level, got nil")
	}
}
