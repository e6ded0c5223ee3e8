package main

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"recode"
)

func TestDetectCommandText(t *testing.T) {
	setupCLIHome(t)
	input := writeInput(t, "plain.txt", []byte("hello world"))

	stdout, _, err := runCLI("detect", input)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	requireContains(t, stdout, input+": ascii (confidence 1.00)")
}

func TestDetectCommandJSON(t *testing.T) {
	setupCLIHome(t)
	input := writeInput(t, "bom.txt", []byte{0xFF, 0xFE, 0x68, 0x00, 0x69, 0x00})

	stdout, _, err := runCLI("detect", "--json", input)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}

	var report struct {
		Path       string  `json:"path"`
		Encoding   string  `json:"encoding"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("parse JSON output %q: %v", stdout, err)
	}
	if report.Path != input {
		t.Fatalf("path = %q, want %q", report.Path, input)
	}
	if report.Encoding != "utf-16le" {
		t.Fatalf("encoding = %q, want utf-16le", report.Encoding)
	}
	if report.Confidence != 1 {
		t.Fatalf("confidence = %v, want 1", report.Confidence)
	}
}

func TestDetectCommandMissingFile(t *testing.T) {
	setupCLIHome(t)
	missing := filepath.Join(t.TempDir(), "absent.txt")

	_, _, err := runCLI("detect", missing)
	if !errors.Is(err, recode.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
