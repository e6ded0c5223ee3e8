package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"recode/internal/config"
	"recode/internal/logging"
)

func TestNewConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger = logger.With(logging.String(logging.FieldComponent, "encoder"))
	logger.Info("file encoded",
		logging.Args(
			logging.String("path", "input.txt"),
			logging.Int("size_bytes", 42),
		)...,
	)

	line := buf.String()
	if !strings.Contains(line, " INFO ") {
		t.Fatalf("missing level label: %q", line)
	}
	if !strings.Contains(line, "encoder: file encoded") {
		t.Fatalf("component prefix missing: %q", line)
	}
	if !strings.Contains(line, "path=input.txt") || !strings.Contains(line, "size_bytes=42") {
		t.Fatalf("attributes missing: %q", line)
	}
}

func TestNewConsoleQuotesValues(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("converted", logging.Args(logging.String("path", "my file.txt"))...)

	if !strings.Contains(buf.String(), `path="my file.txt"`) {
		t.Fatalf("expected quoted value: %q", buf.String())
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("file encoded", logging.Args(logging.String("path", "input.txt"))...)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if record["level"] != "info" {
		t.Fatalf("unexpected level: %v", record["level"])
	}
	if record["msg"] != "file encoded" {
		t.Fatalf("unexpected message: %v", record["msg"])
	}
	if record["path"] != "input.txt" {
		t.Fatalf("unexpected path attribute: %v", record["path"])
	}
	if _, ok := record["ts"]; !ok {
		t.Fatal("missing ts field")
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("hidden")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line should be suppressed: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Fatalf("warn line missing: %q", out)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNewFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Level = "debug"

	var buf bytes.Buffer
	logger, err := logging.NewFromConfig(&cfg, &buf)
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}

	logger.Debug("probing input")
	if !strings.Contains(buf.String(), "probing input") {
		t.Fatalf("debug line missing: %q", buf.String())
	}
}

func TestNewNopDiscards(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("nothing to see", logging.Error(nil))
}
