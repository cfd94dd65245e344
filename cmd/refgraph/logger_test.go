package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npratt/refgraph/internal/config"
)

func rotation() config.LogRotationConfig {
	return config.Default().LogRotation
}

func TestSetupTUILogger_WritesToFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "nested", "refgraph.log")

	result, err := SetupTUILogger(logPath, slog.LevelInfo, rotation())
	if err != nil {
		t.Fatalf("SetupTUILogger failed: %v", err)
	}
	defer func() { _ = result.Close() }()

	if result.FilePath != logPath {
		t.Errorf("FilePath = %q, want %q", result.FilePath, logPath)
	}

	result.Logger.Info("test message", "key", "value")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(content), "test message") {
		t.Errorf("log file should contain 'test message', got: %s", content)
	}
	if !strings.Contains(string(content), `"key":"value"`) {
		t.Errorf("log file should contain key=value, got: %s", content)
	}
}

func TestSetupTUILogger_AppendsToExistingFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "refgraph.log")
	if err := os.WriteFile(logPath, []byte("existing content\n"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	result, err := SetupTUILogger(logPath, slog.LevelInfo, rotation())
	if err != nil {
		t.Fatalf("SetupTUILogger failed: %v", err)
	}
	result.Logger.Info("new message")
	_ = result.Close()

	content, _ := os.ReadFile(logPath)
	if !strings.Contains(string(content), "existing content") {
		t.Error("should preserve existing content")
	}
	if !strings.Contains(string(content), "new message") {
		t.Error("should append new message")
	}
}

func TestSetupTUILogger_EmptyPath(t *testing.T) {
	if _, err := SetupTUILogger("", slog.LevelInfo, rotation()); err == nil {
		t.Error("expected error for empty log path")
	}
}

func TestSetupTUILogger_RespectsLogLevel(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "refgraph.log")
	level := &slog.LevelVar{}
	level.Set(slog.LevelWarn)

	result, err := SetupTUILogger(logPath, level, rotation())
	if err != nil {
		t.Fatalf("SetupTUILogger failed: %v", err)
	}
	result.Logger.Info("quiet")
	result.Logger.Warn("loud")
	_ = result.Close()

	content, _ := os.ReadFile(logPath)
	if strings.Contains(string(content), "quiet") {
		t.Error("info message should be filtered at warn level")
	}
	if !strings.Contains(string(content), "loud") {
		t.Error("warn message should be logged")
	}
}

func TestSetupLoggerWithWriter_WritesToWriter(t *testing.T) {
	var buf bytes.Buffer

	logger := SetupLoggerWithWriter(&buf, slog.LevelInfo)
	logger.Info("test message", "foo", "bar")

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Errorf("output should contain 'test message', got: %s", output)
	}
	if !strings.Contains(output, `"foo":"bar"`) {
		t.Errorf("output should contain foo=bar, got: %s", output)
	}
}

func TestTUILoggerResult_CloseWithoutFile(t *testing.T) {
	r := &TUILoggerResult{}
	if err := r.Close(); err != nil {
		t.Errorf("Close() = %v, want nil", err)
	}
}
