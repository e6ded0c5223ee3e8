package recode

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound marks conversions whose input file does not exist.
	ErrNotFound = errors.New("input file not found")
	// ErrUnsupportedEncoding marks requests naming an encoding outside the
	// supported set.
	ErrUnsupportedEncoding = errors.New("unsupported encoding")
	// ErrDetectionFailed marks inputs whose source encoding could not be
	// determined.
	ErrDetectionFailed = errors.New("encoding detection failed")
	// ErrDecode marks inputs containing byte sequences that are invalid for
	// the source encoding.
	ErrDecode = errors.New("decode failed")
	// ErrEncode marks text that cannot be represented in the target encoding.
	ErrEncode = errors.New("encode failed")
	// ErrIO marks filesystem failures while reading or writing.
	ErrIO = errors.New("io failure")
)

// wrapErr builds an error message around detail while tagging it with the
// provided marker so callers can classify failures with errors.Is. The marker
// should be one of the exported sentinel errors above.
func wrapErr(marker error, detail string, err error) error {
	detail = strings.TrimSpace(detail)
	if detail == "" {
		detail = "conversion failure"
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func unsupportedErr(name string) error {
	detail := fmt.Sprintf("%q (supported: %s)", name, strings.Join(Names(), ", "))
	return wrapErr(ErrUnsupportedEncoding, detail, nil)
}
