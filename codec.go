package recode

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// DefaultEncoding is the conversion target used when a request does not name
// one.
const DefaultEncoding = "utf-8"

// Codec binds a supported encoding name to its transform tables. Codecs are
// comparable by Name; the zero value is not usable.
type Codec struct {
	// Name is the canonical encoding name.
	Name string
	// Aliases are additional accepted spellings of Name.
	Aliases []string
	// Description is a short human-readable summary for listings.
	Description string

	impl encoding.Encoding
	utf8 bool // validate bytes directly instead of transforming

	// boms are byte-order-mark prefixes that identify this encoding in input
	// data. Decoding handles them; they only inform detection confidence.
	boms [][]byte
	// fffdSeqs are the byte sequences that legitimately decode to U+FFFD in
	// this encoding. Any other replacement character in decoder output means
	// the input was invalid.
	fffdSeqs [][]byte
}

// The conversion targets, in listing order. The table is fixed at build time
// and never mutated; lookups go through codecIndex.
var codecs = []Codec{
	{
		Name:        "utf-8",
		Aliases:     []string{"utf8"},
		Description: "Unicode UTF-8",
		utf8:        true,
		boms:        [][]byte{{0xEF, 0xBB, 0xBF}},
	},
	{
		Name:        "utf-16",
		Aliases:     []string{"utf16"},
		Description: "Unicode UTF-16 (BOM, little-endian default)",
		impl:        unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
		boms:        [][]byte{{0xFF, 0xFE}, {0xFE, 0xFF}},
		fffdSeqs:    [][]byte{{0xFD, 0xFF}, {0xFF, 0xFD}},
	},
	{
		Name:        "utf-32",
		Aliases:     []string{"utf32"},
		Description: "Unicode UTF-32 (BOM, little-endian default)",
		impl:        utf32.UTF32(utf32.LittleEndian, utf32.UseBOM),
		boms:        [][]byte{{0xFF, 0xFE, 0x00, 0x00}, {0x00, 0x00, 0xFE, 0xFF}},
		fffdSeqs:    [][]byte{{0xFD, 0xFF, 0x00, 0x00}, {0x00, 0x00, 0xFF, 0xFD}},
	},
	{
		Name:        "ascii",
		Aliases:     []string{"us-ascii"},
		Description: "7-bit US-ASCII",
		impl:        asciiEncoding{},
	},
	{
		Name:        "latin-1",
		Aliases:     []string{"iso-8859-1", "latin1"},
		Description: "ISO 8859-1 Western European",
		impl:        charmap.ISO8859_1,
	},
	{
		Name:        "cp1252",
		Aliases:     []string{"windows-1252", "windows1252"},
		Description: "Windows code page 1252",
		impl:        charmap.Windows1252,
	},
	{
		Name:        "big5",
		Description: "Big5 traditional Chinese",
		impl:        traditionalchinese.Big5,
	},
	{
		Name:        "gb2312",
		Description: "GB 2312 simplified Chinese (GBK tables)",
		impl:        simplifiedchinese.GBK,
	},
	{
		Name:        "shift_jis",
		Aliases:     []string{"shift-jis", "sjis"},
		Description: "Shift JIS Japanese",
		impl:        japanese.ShiftJIS,
	},
}

// sourceCodecs are decode-only entries for encodings a detector can report
// but that are not offered as conversion targets.
var sourceCodecs = []Codec{
	{
		Name:     "utf-16le",
		impl:     unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
		boms:     [][]byte{{0xFF, 0xFE}},
		fffdSeqs: [][]byte{{0xFD, 0xFF}},
	},
	{
		Name:     "utf-16be",
		impl:     unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
		boms:     [][]byte{{0xFE, 0xFF}},
		fffdSeqs: [][]byte{{0xFF, 0xFD}},
	},
	{
		Name:     "utf-32le",
		impl:     utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM),
		boms:     [][]byte{{0xFF, 0xFE, 0x00, 0x00}},
		fffdSeqs: [][]byte{{0xFD, 0xFF, 0x00, 0x00}},
	},
	{
		Name:     "utf-32be",
		impl:     utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM),
		boms:     [][]byte{{0x00, 0x00, 0xFE, 0xFF}},
		fffdSeqs: [][]byte{{0x00, 0x00, 0xFF, 0xFD}},
	},
	{
		Name:     "gb18030",
		impl:     simplifiedchinese.GB18030,
		fffdSeqs: [][]byte{{0x84, 0x31, 0xA4, 0x37}},
	},
}

var (
	codecIndex  = buildIndex(codecs)
	sourceIndex = buildIndex(sourceCodecs)
)

func buildIndex(list []Codec) map[string]Codec {
	index := make(map[string]Codec, len(list)*2)
	for _, c := range list {
		index[normalizeName(c.Name)] = c
		for _, alias := range c.Aliases {
			index[normalizeName(alias)] = c
		}
	}
	return index
}

func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(name, "_", "-")
}

// LookupCodec resolves an encoding name against the supported set. Matching
// is case-insensitive and treats hyphens and underscores as interchangeable,
// so "Shift-JIS" and "shift_jis" name the same codec.
func LookupCodec(name string) (Codec, bool) {
	c, ok := codecIndex[normalizeName(name)]
	return c, ok
}

// lookupSource resolves an encoding name for the decode side of a
// conversion. It accepts every supported codec, the decode-only variants, and
// finally anything the WHATWG label registry can resolve, so detector output
// like "euc-jp" still decodes even though it is not a conversion target.
func lookupSource(name string) (Codec, bool) {
	key := normalizeName(name)
	if c, ok := codecIndex[key]; ok {
		return c, true
	}
	if c, ok := sourceIndex[key]; ok {
		return c, true
	}
	if impl, canonical := charset.Lookup(key); impl != nil {
		return Codec{Name: canonical, impl: impl}, true
	}
	return Codec{}, false
}

// Codecs returns the supported encodings in listing order.
func Codecs() []Codec {
	out := make([]Codec, len(codecs))
	copy(out, codecs)
	for i := range out {
		out[i].Aliases = append([]string(nil), out[i].Aliases...)
	}
	return out
}

// Names returns the canonical names of the supported encodings in listing
// order.
func Names() []string {
	names := make([]string, len(codecs))
	for i, c := range codecs {
		names[i] = c.Name
	}
	return names
}

var errInvalidUTF8 = errors.New("invalid UTF-8 byte sequence")

// decode converts data from this encoding into text. Byte sequences that are
// invalid for the encoding fail the decode; x/text decoders substitute U+FFFD
// for them, so decoder output is scanned for replacement characters that the
// input could not have produced on purpose.
func (c Codec) decode(data []byte) (string, error) {
	if c.utf8 {
		if !utf8.Valid(data) {
			return "", errInvalidUTF8
		}
		return string(data), nil
	}
	out, err := c.impl.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	if bytes.ContainsRune(out, utf8.RuneError) && !c.decodesReplacement(data) {
		return "", fmt.Errorf("byte sequence not valid for %s", c.Name)
	}
	return string(out), nil
}

func (c Codec) decodesReplacement(data []byte) bool {
	for _, seq := range c.fffdSeqs {
		if bytes.Contains(data, seq) {
			return true
		}
	}
	return false
}

// encode converts text into this encoding. Runes outside the target
// repertoire surface as transformer errors rather than substitutions.
func (c Codec) encode(text string) ([]byte, error) {
	if c.utf8 {
		return []byte(text), nil
	}
	return c.impl.NewEncoder().Bytes([]byte(text))
}

func (c Codec) hasBOMPrefix(data []byte) bool {
	for _, bom := range c.boms {
		if bytes.HasPrefix(data, bom) {
			return true
		}
	}
	return false
}
