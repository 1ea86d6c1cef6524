package convert

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/h2non/filetype"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// enough for all filetype matchers
const headerSize = 262

var cssType = filetype.NewType("css", "text/css")

func init() {
	// style sheets have no magic, but explicit @charset is close enough
	filetype.AddMatcher(cssType, func(buf []byte) bool {
		return bytes.HasPrefix(bytes.TrimPrefix(buf, utf8BOM), charsetPrefix)
	})
}

func readHeader(r io.Reader) ([]byte, error) {
	buf := make([]byte, headerSize)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return buf[:n], nil
}

// isArchiveFile checks file content (not name) for zip signature.
func isArchiveFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	head, err := readHeader(f)
	if err != nil {
		return false, err
	}
	return filetype.Is(head, "zip"), nil
}

// isStylesheetData rejects content recognized as some known binary format,
// so that an image or font misnamed as .css is not parsed.
func isStylesheetData(head []byte) bool {
	if len(head) == 0 {
		return true
	}
	kind, err := filetype.Match(head)
	if err != nil {
		return false
	}
	return kind == filetype.Unknown || kind == cssType
}

type srcEncoding int

const (
	encUnknown srcEncoding = iota
	encUTF8
	encUTF16BigEndian
	encUTF16LittleEndian
	encUTF32BigEndian
	encUTF32LittleEndian
)

func (e srcEncoding) String() string {
	switch e {
	case encUTF8:
		return "utf-8 (bom)"
	case encUTF16BigEndian:
		return "utf-16be (bom)"
	case encUTF16LittleEndian:
		return "utf-16le (bom)"
	case encUTF32BigEndian:
		return "utf-32be (bom)"
	case encUTF32LittleEndian:
		return "utf-32le (bom)"
	}
	return "unknown"
}

// encoding returns codec which strips BOM on decoding and writes it back on
// encoding.
func (e srcEncoding) encoding() encoding.Encoding {
	switch e {
	case encUTF8:
		return unicode.UTF8BOM
	case encUTF16BigEndian:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	case encUTF16LittleEndian:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case encUTF32BigEndian:
		return utf32.UTF32(utf32.BigEndian, utf32.UseBOM)
	case encUTF32LittleEndian:
		return utf32.UTF32(utf32.LittleEndian, utf32.UseBOM)
	case encUnknown:
		return nil
	}
	// this should never happen
	panic(fmt.Sprintf("unsupported source encoding %d", int(e)))
}

var (
	utf8BOM       = []byte{0xEF, 0xBB, 0xBF}
	charsetPrefix = []byte(`@charset "`)
)

// detectUTF looks for byte order mark. UTF-32LE must be checked before
// UTF-16LE as it shares the first two bytes.
func detectUTF(buf []byte) srcEncoding {
	switch {
	case bytes.HasPrefix(buf, utf8BOM):
		return encUTF8
	case bytes.HasPrefix(buf, []byte{0x00, 0x00, 0xFE, 0xFF}):
		return encUTF32BigEndian
	case bytes.HasPrefix(buf, []byte{0xFF, 0xFE, 0x00, 0x00}):
		return encUTF32LittleEndian
	case bytes.HasPrefix(buf, []byte{0xFE, 0xFF}):
		return encUTF16BigEndian
	case bytes.HasPrefix(buf, []byte{0xFF, 0xFE}):
		return encUTF16LittleEndian
	}
	return encUnknown
}

// declaredCharset returns encoding name from leading @charset rule, empty
// when there is none.
func declaredCharset(buf []byte) string {
	if !bytes.HasPrefix(buf, charsetPrefix) {
		return ""
	}
	rest := buf[len(charsetPrefix):]
	end := bytes.Index(rest, []byte(`";`))
	if end <= 0 {
		return ""
	}
	return string(rest[:end])
}

// sourceText is decoded (UTF-8) style sheet together with the way to encode
// results back into the original encoding.
type sourceText struct {
	data    []byte
	enc     encoding.Encoding
	charset string // for logging
}

// decodeSource determines style sheet encoding the way browsers do: BOM
// first, then @charset rule, UTF-8 otherwise. Charsets declaring UTF-16 are
// treated as UTF-8 since without BOM the rule itself was readable as ASCII.
func decodeSource(data []byte) (sourceText, error) {
	if bom := detectUTF(data); bom != encUnknown {
		enc := bom.encoding()
		out, err := enc.NewDecoder().Bytes(data)
		if err != nil {
			return sourceText{}, fmt.Errorf("unable to decode %s text: %w", bom, err)
		}
		return sourceText{data: out, enc: enc, charset: bom.String()}, nil
	}

	name := declaredCharset(data)
	if name == "" || strings.HasPrefix(strings.ToLower(name), "utf-16") {
		return sourceText{data: data, charset: "utf-8"}, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return sourceText{}, fmt.Errorf("unknown charset %q: %w", name, err)
	}
	if enc == nil {
		return sourceText{}, fmt.Errorf("unsupported charset %q", name)
	}
	if enc == unicode.UTF8 {
		return sourceText{data: data, charset: name}, nil
	}

	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return sourceText{}, fmt.Errorf("unable to decode %s text: %w", name, err)
	}
	return sourceText{data: out, enc: enc, charset: name}, nil
}

// encode converts UTF-8 text back into source encoding.
func (s sourceText) encode(text []byte) ([]byte, error) {
	if s.enc == nil {
		return text, nil
	}
	out, err := s.enc.NewEncoder().Bytes(text)
	if err != nil {
		return nil, fmt.Errorf("unable to encode result as %s: %w", s.charset, err)
	}
	return out, nil
}
