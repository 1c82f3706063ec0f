package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestInitTextHandlerWritesToOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := Init(Options{Level: slog.LevelInfo, Output: &buf})
	logger.Info("hello", "key", "value")

	if !strings.Contains(buf.String(), "hello") || !strings.Contains(buf.String(), "key=value") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestInitJSONHandlerProducesParsableLine(t *testing.T) {
	var buf bytes.Buffer
	logger := Init(Options{Level: slog.LevelInfo, JSON: true, Output: &buf})
	logger.Info("structured", "count", 3)

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("json.Unmarshal: %v\noutput: %s", err, buf.String())
	}
	if decoded["msg"] != "structured" {
		t.Errorf("msg = %v", decoded["msg"])
	}
}

func TestGetReturnsDefaultWhenUninitialized(t *testing.T) {
	Teardown()
	logger := Get()
	if logger == nil {
		t.Fatal("expected a non-nil default logger")
	}
}
