package recode

import (
	"errors"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// asciiEncoding is a strict 7-bit US-ASCII implementation. The WHATWG label
// registry resolves "ascii" to windows-1252, which accepts every byte, so a
// dedicated transform is needed to reject bytes above 0x7F.
type asciiEncoding struct{}

func (asciiEncoding) NewDecoder() *encoding.Decoder {
	return &encoding.Decoder{Transformer: asciiTransformer{}}
}

func (asciiEncoding) NewEncoder() *encoding.Encoder {
	return &encoding.Encoder{Transformer: asciiTransformer{}}
}

var errASCIIRange = errors.New("byte outside 7-bit ASCII range")

// asciiTransformer copies bytes through unchanged and stops at the first byte
// outside the 7-bit range. ASCII is a subset of UTF-8, so the same transform
// serves both directions.
type asciiTransformer struct{}

func (asciiTransformer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	n := len(src)
	if n > len(dst) {
		n = len(dst)
		err = transform.ErrShortDst
	}
	for i := 0; i < n; i++ {
		if src[i] >= 0x80 {
			return i, i, errASCIIRange
		}
		dst[i] = src[i]
	}
	return n, n, err
}

func (asciiTransformer) Reset() {}

func isASCII(data []byte) bool {
	for _, b := range data {
		if b >= 0x80 {
			return false
		}
	}
	return true
}
