// Package recode converts text files between character encodings.
//
// A Service reads a file, determines its source encoding (detected via a
// pluggable Detector or pinned by the caller), decodes it strictly, and
// writes the re-encoded bytes to the destination atomically so that a
// partial output file never becomes visible. The package-level EncodeFile
// and DetectFile helpers cover the common one-shot cases.
//
// Decoding is deliberately strict: byte sequences that are invalid for the
// source encoding fail the conversion instead of being replaced with
// substitution characters, so an output file is always a faithful
// re-encoding of the input.
package recode
