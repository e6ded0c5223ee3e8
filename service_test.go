package recode_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"recode"
)

type stubDetector struct {
	det    recode.Detection
	err    error
	called bool
}

func (d *stubDetector) Detect([]byte) (recode.Detection, error) {
	d.called = true
	if d.err != nil {
		return recode.Detection{}, d.err
	}
	return d.det, nil
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return data
}

func TestEncodeFileToUTF16(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "input.txt", []byte("hi\n"))

	svc := recode.New(recode.Options{})
	out, err := svc.EncodeFile(recode.Request{InputPath: input, Encoding: "utf-16"})
	if err != nil {
		t.Fatalf("EncodeFile: %v", err)
	}
	if want := filepath.Join(dir, "input_encoded.txt"); out != want {
		t.Fatalf("output path = %q, want %q", out, want)
	}

	want := []byte{0xFF, 0xFE, 0x68, 0x00, 0x69, 0x00, 0x0A, 0x00}
	if got := readFile(t, out); !bytes.Equal(got, want) {
		t.Fatalf("output = % X, want % X", got, want)
	}
}

func TestEncodeFileDefaultsToUTF8(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "cafe.txt", []byte{0x63, 0x61, 0x66, 0xE9})

	svc := recode.New(recode.Options{})
	out, err := svc.EncodeFile(recode.Request{InputPath: input, SourceEncoding: "latin-1"})
	if err != nil {
		t.Fatalf("EncodeFile: %v", err)
	}
	if got := readFile(t, out); string(got) != "café" {
		t.Fatalf("output = %q, want %q", got, "café")
	}
}

func TestEncodeFileSourcePinControlsDecoding(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "ambiguous.txt", []byte{0x82, 0xB1})
	svc := recode.New(recode.Options{})

	out, err := svc.EncodeFile(recode.Request{
		InputPath:      input,
		OutputPath:     filepath.Join(dir, "sjis.txt"),
		SourceEncoding: "shift_jis",
	})
	if err != nil {
		t.Fatalf("EncodeFile: %v", err)
	}
	if got := readFile(t, out); string(got) != "こ" {
		t.Fatalf("shift_jis reading = %q, want %q", got, "こ")
	}

	out, err = svc.EncodeFile(recode.Request{
		InputPath:      input,
		OutputPath:     filepath.Join(dir, "latin.txt"),
		SourceEncoding: "latin-1",
	})
	if err != nil {
		t.Fatalf("EncodeFile: %v", err)
	}
	if got := readFile(t, out); string(got) != "\u0082±" {
		t.Fatalf("latin-1 reading = %q", got)
	}
}

func TestEncodeFileMissingInput(t *testing.T) {
	svc := recode.New(recode.Options{})

	_, err := svc.EncodeFile(recode.Request{InputPath: filepath.Join(t.TempDir(), "absent.txt")})
	if !errors.Is(err, recode.ErrNotFound) {
		t.Fatalf("error %v is not ErrNotFound", err)
	}

	if _, err := svc.EncodeFile(recode.Request{}); !errors.Is(err, recode.ErrNotFound) {
		t.Fatalf("empty path error %v is not ErrNotFound", err)
	}
}

func TestEncodeFileUnsupportedEncoding(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "input.txt", []byte("hi"))
	svc := recode.New(recode.Options{})

	_, err := svc.EncodeFile(recode.Request{InputPath: input, Encoding: "klingon"})
	if !errors.Is(err, recode.ErrUnsupportedEncoding) {
		t.Fatalf("error %v is not ErrUnsupportedEncoding", err)
	}
	if !strings.Contains(err.Error(), "supported:") {
		t.Fatalf("error %v does not list the supported encodings", err)
	}

	// Decode-only names are not valid pins.
	_, err = svc.EncodeFile(recode.Request{InputPath: input, SourceEncoding: "utf-16le"})
	if !errors.Is(err, recode.ErrUnsupportedEncoding) {
		t.Fatalf("pin error %v is not ErrUnsupportedEncoding", err)
	}
}

func TestEncodeFileDecodeErrorLeavesNoOutput(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "broken.txt", []byte{0x68, 0xFF})
	svc := recode.New(recode.Options{})

	_, err := svc.EncodeFile(recode.Request{InputPath: input, SourceEncoding: "utf-8"})
	if !errors.Is(err, recode.ErrDecode) {
		t.Fatalf("error %v is not ErrDecode", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "broken_encoded.txt")); !os.IsNotExist(err) {
		t.Fatal("failed conversion left an output file")
	}
}

func TestEncodeFileEncodeErrorLeavesNoOutput(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "accented.txt", []byte("héllo"))
	svc := recode.New(recode.Options{})

	_, err := svc.EncodeFile(recode.Request{InputPath: input, SourceEncoding: "utf-8", Encoding: "ascii"})
	if !errors.Is(err, recode.ErrEncode) {
		t.Fatalf("error %v is not ErrEncode", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "accented_encoded.txt")); !os.IsNotExist(err) {
		t.Fatal("failed conversion left an output file")
	}
}

func TestEncodeFileStripsLeadingBOM(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "bom.txt", []byte("\xEF\xBB\xBFhi"))
	svc := recode.New(recode.Options{})

	out, err := svc.EncodeFile(recode.Request{InputPath: input, SourceEncoding: "utf-8"})
	if err != nil {
		t.Fatalf("EncodeFile: %v", err)
	}
	if got := readFile(t, out); string(got) != "hi" {
		t.Fatalf("output = % X, want the BOM stripped", got)
	}
}

func TestEncodeFileEmptyInput(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "empty.txt", nil)
	svc := recode.New(recode.Options{})

	out, err := svc.EncodeFile(recode.Request{InputPath: input, Encoding: "utf-16"})
	if err != nil {
		t.Fatalf("EncodeFile: %v", err)
	}
	if got := readFile(t, out); !bytes.Equal(got, []byte{0xFF, 0xFE}) {
		t.Fatalf("output = % X, want the BOM alone", got)
	}
}

func TestEncodeFileConsultsDetector(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "detected.txt", []byte{0xE9})

	stub := &stubDetector{det: recode.Detection{Encoding: "latin-1", Confidence: 0.9}}
	svc := recode.New(recode.Options{Detector: stub})

	out, err := svc.EncodeFile(recode.Request{InputPath: input})
	if err != nil {
		t.Fatalf("EncodeFile: %v", err)
	}
	if !stub.called {
		t.Fatal("detector was not consulted")
	}
	if got := readFile(t, out); string(got) != "é" {
		t.Fatalf("output = %q, want %q", got, "é")
	}
}

func TestEncodeFileDetectorFailure(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "opaque.bin", []byte{0xE9})

	stub := &stubDetector{err: errors.New("no clue")}
	svc := recode.New(recode.Options{Detector: stub})

	_, err := svc.EncodeFile(recode.Request{InputPath: input})
	if !errors.Is(err, recode.ErrDetectionFailed) {
		t.Fatalf("error %v is not ErrDetectionFailed", err)
	}
}

func TestEncodeFileRejectsLowConfidence(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "murky.txt", []byte{0xE9})

	stub := &stubDetector{det: recode.Detection{Encoding: "latin-1", Confidence: 0.4}}
	svc := recode.New(recode.Options{Detector: stub, MinConfidence: 0.8})

	_, err := svc.EncodeFile(recode.Request{InputPath: input})
	if !errors.Is(err, recode.ErrDetectionFailed) {
		t.Fatalf("error %v is not ErrDetectionFailed", err)
	}
	if !strings.Contains(err.Error(), "below threshold") {
		t.Fatalf("error %v does not mention the threshold", err)
	}
}

func TestEncodeFileDirectoryInput(t *testing.T) {
	svc := recode.New(recode.Options{})
	if _, err := svc.EncodeFile(recode.Request{InputPath: t.TempDir()}); !errors.Is(err, recode.ErrIO) {
		t.Fatalf("error %v is not ErrIO", err)
	}
}

func TestEncodeFileMissingOutputDirectory(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "input.txt", []byte("hi"))
	svc := recode.New(recode.Options{})

	_, err := svc.EncodeFile(recode.Request{
		InputPath:  input,
		OutputPath: filepath.Join(dir, "missing", "out.txt"),
	})
	if !errors.Is(err, recode.ErrIO) {
		t.Fatalf("error %v is not ErrIO", err)
	}
}

func TestEncodeFileWithSequentialDetector(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "wide.txt", []byte{0xFF, 0xFE, 0x68, 0x00, 0x69, 0x00})

	det, err := recode.NewSequentialDetector()
	if err != nil {
		t.Fatalf("NewSequentialDetector: %v", err)
	}
	svc := recode.New(recode.Options{Detector: det})

	out, err := svc.EncodeFile(recode.Request{InputPath: input})
	if err != nil {
		t.Fatalf("EncodeFile: %v", err)
	}
	if got := readFile(t, out); string(got) != "hi" {
		t.Fatalf("output = % X, want plain %q", got, "hi")
	}
}

func TestEncodeFileIdempotent(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "input.txt", []byte("same text"))
	svc := recode.New(recode.Options{})

	req := recode.Request{InputPath: input, Encoding: "utf-16"}
	out1, err := svc.EncodeFile(req)
	if err != nil {
		t.Fatalf("first EncodeFile: %v", err)
	}
	first := readFile(t, out1)

	out2, err := svc.EncodeFile(req)
	if err != nil {
		t.Fatalf("second EncodeFile: %v", err)
	}
	if out1 != out2 {
		t.Fatalf("output paths differ: %q vs %q", out1, out2)
	}
	if got := readFile(t, out2); !bytes.Equal(got, first) {
		t.Fatalf("repeat run produced different bytes: % X vs % X", got, first)
	}
}

func TestDetect(t *testing.T) {
	dir := t.TempDir()

	// Trivial inputs resolve before the detector runs; a failing stub proves
	// the precedence.
	stub := &stubDetector{err: errors.New("should not run")}
	svc := recode.New(recode.Options{Detector: stub})

	empty := writeFile(t, dir, "empty.txt", nil)
	det, err := svc.Detect(empty)
	if err != nil {
		t.Fatalf("Detect empty: %v", err)
	}
	if det.Encoding != "utf-8" || det.Confidence != 1 {
		t.Fatalf("Detect empty = %+v", det)
	}

	plain := writeFile(t, dir, "plain.txt", []byte("nothing fancy\n"))
	det, err = svc.Detect(plain)
	if err != nil {
		t.Fatalf("Detect ascii: %v", err)
	}
	if det.Encoding != "ascii" || det.Confidence != 1 {
		t.Fatalf("Detect ascii = %+v", det)
	}
	if stub.called {
		t.Fatal("detector ran for trivial input")
	}

	stub.det = recode.Detection{Encoding: "shift_jis", Confidence: 0.77}
	stub.err = nil
	wide := writeFile(t, dir, "wide.txt", []byte{0x82, 0xB1})
	det, err = svc.Detect(wide)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if det.Encoding != "shift_jis" || det.Confidence != 0.77 {
		t.Fatalf("Detect = %+v", det)
	}

	if _, err := svc.Detect(filepath.Join(dir, "absent.txt")); !errors.Is(err, recode.ErrNotFound) {
		t.Fatalf("error %v is not ErrNotFound", err)
	}
}

func TestDeriveOutputPath(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{filepath.Join("docs", "report.txt"), filepath.Join("docs", "report_encoded.txt")},
		{"report", "report_encoded"},
		{".bashrc", ".bashrc_encoded"},
		{"archive.tar.gz", "archive.tar_encoded.gz"},
		{filepath.Join("docs", "notes.TXT"), filepath.Join("docs", "notes_encoded.TXT")},
	}
	for _, tc := range cases {
		if got := recode.DeriveOutputPath(tc.in); got != tc.want {
			t.Fatalf("DeriveOutputPath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPackageLevelHelpers(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "note.txt", []byte("plain\n"))

	out, err := recode.EncodeFile(input, "", "")
	if err != nil {
		t.Fatalf("EncodeFile: %v", err)
	}
	if want := filepath.Join(dir, "note_encoded.txt"); out != want {
		t.Fatalf("output path = %q, want %q", out, want)
	}
	if got := readFile(t, out); string(got) != "plain\n" {
		t.Fatalf("output = %q", got)
	}

	det, err := recode.DetectFile(input)
	if err != nil {
		t.Fatalf("DetectFile: %v", err)
	}
	if det.Encoding != "ascii" || det.Confidence != 1 {
		t.Fatalf("DetectFile = %+v", det)
	}
}
