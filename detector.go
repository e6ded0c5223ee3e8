package recode

import (
	"errors"
	"fmt"
	"strings"

	"github.com/saintfish/chardet"
)

// Detection is a detector's best guess at the encoding of a byte stream.
// Confidence ranges from 0.0 (pure guess) to 1.0 (certain).
type Detection struct {
	Encoding   string  `json:"encoding"`
	Confidence float64 `json:"confidence"`
}

// Detector guesses the character encoding of raw file contents.
// Implementations must be safe for concurrent use.
type Detector interface {
	Detect(data []byte) (Detection, error)
}

// NewDetector returns the default detector, backed by the chardet statistical
// charset prober.
func NewDetector() Detector {
	return &statisticalDetector{inner: chardet.NewTextDetector()}
}

type statisticalDetector struct {
	inner *chardet.Detector
}

func (d *statisticalDetector) Detect(data []byte) (Detection, error) {
	res, err := d.inner.DetectBest(data)
	if err != nil {
		return Detection{}, err
	}
	return Detection{
		Encoding:   normalizeDetected(res.Charset),
		Confidence: float64(res.Confidence) / 100,
	}, nil
}

// detectorLabels fixes prober spellings that the decode-side resolver would
// otherwise not recognize.
var detectorLabels = map[string]string{
	"gb-18030": "gb18030",
}

// normalizeDetected folds a detector charset label into the canonical name
// when it belongs to the supported set, and otherwise reports it lowercased
// so names like "utf-16le" keep their endianness for the decode side.
func normalizeDetected(label string) string {
	name := strings.ToLower(strings.TrimSpace(label))
	if c, ok := LookupCodec(name); ok {
		return c.Name
	}
	if mapped, ok := detectorLabels[name]; ok {
		return mapped
	}
	return name
}

// defaultCandidates is the classic trial order: Unicode forms first, then the
// permissive single-byte encodings. latin-1 accepts any byte, so it and the
// entries after it make the trial effectively total.
var defaultCandidates = []string{
	"utf-8",
	"utf-16le",
	"utf-16be",
	"utf-16",
	"latin-1",
	"cp1252",
	"ascii",
}

// NewSequentialDetector builds a detector that trial-decodes candidates in
// order and reports the first encoding that accepts the input cleanly. With
// no arguments the default candidate order is used; otherwise candidates are
// tried exactly as given. Unknown candidate names are rejected.
func NewSequentialDetector(candidates ...string) (Detector, error) {
	names := candidates
	if len(names) == 0 {
		names = defaultCandidates
	}
	resolved := make([]Codec, 0, len(names))
	for _, name := range names {
		c, ok := lookupSource(name)
		if !ok {
			return nil, wrapErr(ErrUnsupportedEncoding, fmt.Sprintf("detector candidate %q", name), nil)
		}
		resolved = append(resolved, c)
	}
	return &sequentialDetector{candidates: resolved}, nil
}

type sequentialDetector struct {
	candidates []Codec
}

func (d *sequentialDetector) Detect(data []byte) (Detection, error) {
	// A BOM settles the question before any trial decode. Without this pass a
	// big-endian BOM would be claimed by utf-16le, whose decoder accepts the
	// BOM bytes as ordinary code units.
	for _, c := range d.candidates {
		if c.hasBOMPrefix(data) {
			return Detection{Encoding: c.Name, Confidence: 1}, nil
		}
	}
	for _, c := range d.candidates {
		if _, err := c.decode(data); err != nil {
			continue
		}
		return Detection{Encoding: c.Name, Confidence: trialConfidence(c, data)}, nil
	}
	return Detection{}, errors.New("no candidate encoding decodes the input")
}

// trialConfidence scores a successful trial decode: valid multi-byte UTF-8 is
// a strong signal, anything else is merely plausible. BOM matches are settled
// at confidence 1 before trial decoding begins.
func trialConfidence(c Codec, data []byte) float64 {
	if c.utf8 && !isASCII(data) {
		return 0.7
	}
	return 0.5
}
