package recode

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"recode/internal/fileutil"
)

// lowConfidenceWarning is the detection confidence below which a conversion
// proceeds but logs a warning.
const lowConfidenceWarning = 0.5

// Options configures a Service. Zero values select the defaults.
type Options struct {
	// Detector overrides the default statistical detector.
	Detector Detector
	// Logger receives progress and diagnostic records. Nil discards them.
	Logger *slog.Logger
	// MinConfidence rejects detections scoring below it. Zero disables the
	// check.
	MinConfidence float64
}

// Service converts text files between character encodings. Construct with
// New; a Service is safe for concurrent use.
type Service struct {
	detector      Detector
	logger        *slog.Logger
	minConfidence float64
}

// New constructs a Service.
func New(opts Options) *Service {
	s := &Service{
		detector:      opts.Detector,
		logger:        opts.Logger,
		minConfidence: opts.MinConfidence,
	}
	if s.detector == nil {
		s.detector = NewDetector()
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	return s
}

// Request describes one file conversion.
type Request struct {
	// InputPath is the file to convert. Required.
	InputPath string
	// OutputPath is the destination. Empty selects the derived
	// "<stem>_encoded<ext>" path next to the input.
	OutputPath string
	// Encoding is the target encoding name. Empty selects DefaultEncoding.
	Encoding string
	// SourceEncoding pins the source encoding instead of running detection.
	// It must name a supported codec.
	SourceEncoding string
}

// EncodeFile converts the requested file and returns the path the encoded
// output was written to. The destination appears atomically: on any failure
// it is left untouched.
func (s *Service) EncodeFile(req Request) (string, error) {
	input := strings.TrimSpace(req.InputPath)
	if input == "" {
		return "", wrapErr(ErrNotFound, "no input path given", nil)
	}

	log := s.logger.With(
		slog.String("component", "encoder"),
		slog.String("request_id", uuid.NewString()),
	)

	info, err := os.Stat(input)
	if err != nil {
		if os.IsNotExist(err) {
			return "", wrapErr(ErrNotFound, input, err)
		}
		return "", wrapErr(ErrIO, "stat "+input, err)
	}
	if info.IsDir() {
		return "", wrapErr(ErrIO, input+" is a directory", nil)
	}

	targetName := strings.TrimSpace(req.Encoding)
	if targetName == "" {
		targetName = DefaultEncoding
	}
	target, ok := LookupCodec(targetName)
	if !ok {
		return "", unsupportedErr(targetName)
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return "", wrapErr(ErrIO, "read "+input, err)
	}

	det, src, err := s.resolveSource(log, input, data, req.SourceEncoding)
	if err != nil {
		return "", err
	}

	log.Debug("decoding input",
		slog.String("path", input),
		slog.String("source_encoding", det.Encoding),
		slog.Float64("confidence", det.Confidence),
		slog.Int("size_bytes", len(data)),
	)

	text, err := src.decode(data)
	if err != nil {
		return "", wrapErr(ErrDecode, fmt.Sprintf("%s as %s", input, det.Encoding), err)
	}
	// A leading BOM is encoding metadata, not content; the target codec
	// decides whether the output carries one.
	text = strings.TrimPrefix(text, "\ufeff")

	encoded, err := target.encode(text)
	if err != nil {
		return "", wrapErr(ErrEncode, fmt.Sprintf("%s to %s", input, target.Name), err)
	}

	outputPath := strings.TrimSpace(req.OutputPath)
	if outputPath == "" {
		outputPath = DeriveOutputPath(input)
	}
	if err := fileutil.WriteFileAtomic(outputPath, encoded, 0o644); err != nil {
		return "", wrapErr(ErrIO, "write "+outputPath, err)
	}

	log.Info("file encoded",
		slog.String("path", input),
		slog.String("output", outputPath),
		slog.String("source_encoding", det.Encoding),
		slog.String("target_encoding", target.Name),
		slog.Int("size_bytes", len(encoded)),
	)
	return outputPath, nil
}

// Detect reports the best-guess encoding of the file at path. Empty files
// detect as UTF-8 with full confidence.
func (s *Service) Detect(path string) (Detection, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Detection{}, wrapErr(ErrNotFound, "no input path given", nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Detection{}, wrapErr(ErrNotFound, path, err)
		}
		return Detection{}, wrapErr(ErrIO, "read "+path, err)
	}
	log := s.logger.With(slog.String("component", "detector"))
	return s.detect(log, path, data)
}

func (s *Service) resolveSource(log *slog.Logger, path string, data []byte, pinned string) (Detection, Codec, error) {
	if pinned = strings.TrimSpace(pinned); pinned != "" {
		c, ok := LookupCodec(pinned)
		if !ok {
			return Detection{}, Codec{}, unsupportedErr(pinned)
		}
		return Detection{Encoding: c.Name, Confidence: 1}, c, nil
	}
	det, err := s.detect(log, path, data)
	if err != nil {
		return Detection{}, Codec{}, err
	}
	src, ok := lookupSource(det.Encoding)
	if !ok {
		return Detection{}, Codec{}, wrapErr(ErrDetectionFailed, fmt.Sprintf("no decoder for detected encoding %q", det.Encoding), nil)
	}
	return det, src, nil
}

// detect applies the shared detection policy: trivial inputs resolve without
// consulting the detector, and detector results are gated on the confidence
// threshold.
func (s *Service) detect(log *slog.Logger, path string, data []byte) (Detection, error) {
	if len(data) == 0 {
		return Detection{Encoding: "utf-8", Confidence: 1}, nil
	}
	if isASCII(data) {
		return Detection{Encoding: "ascii", Confidence: 1}, nil
	}
	det, err := s.detector.Detect(data)
	if err != nil {
		return Detection{}, wrapErr(ErrDetectionFailed, path, err)
	}
	if det.Encoding == "" {
		return Detection{}, wrapErr(ErrDetectionFailed, path+": detector returned no result", nil)
	}
	if s.minConfidence > 0 && det.Confidence < s.minConfidence {
		detail := fmt.Sprintf("%s: confidence %.2f below threshold %.2f", path, det.Confidence, s.minConfidence)
		return Detection{}, wrapErr(ErrDetectionFailed, detail, nil)
	}
	if det.Confidence < lowConfidenceWarning {
		log.Warn("low confidence detection",
			slog.String("path", path),
			slog.String("encoding", det.Encoding),
			slog.Float64("confidence", det.Confidence),
		)
	}
	return det, nil
}

// DeriveOutputPath returns the default destination for an input path: the
// file's stem suffixed with "_encoded", keeping the extension and directory.
func DeriveOutputPath(inputPath string) string {
	dir := filepath.Dir(inputPath)
	base := filepath.Base(inputPath)
	ext := filepath.Ext(base)
	if ext == base {
		// Dotfiles keep their whole name as the stem.
		ext = ""
	}
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, stem+"_encoded"+ext)
}

// defaultService backs the package-level helpers. It holds no per-request
// state and is safe to share.
var defaultService = New(Options{})

// EncodeFile converts inputPath using the default service. An empty
// outputPath selects the derived "<stem>_encoded<ext>" destination and an
// empty encoding selects DefaultEncoding.
func EncodeFile(inputPath, outputPath, encoding string) (string, error) {
	return defaultService.EncodeFile(Request{
		InputPath:  inputPath,
		OutputPath: outputPath,
		Encoding:   encoding,
	})
}

// DetectFile reports the best-guess encoding of the file at path using the
// default service.
func DetectFile(path string) (Detection, error) {
	return defaultService.Detect(path)
}
