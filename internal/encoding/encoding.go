// Package encoding normalizes uploaded text to UTF-8 so CSV files
// exported from spreadsheets survive the trip regardless of charset.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// sniffLen is how many bytes are inspected for BOMs and charset
// heuristics before handing the stream on.
const sniffLen = 4096

// NewUTF8Reader wraps r in a reader that yields UTF-8, deciding how by:
// BOM if present, then a validity check, then chardet heuristics, and
// finally a Windows-1252 guess for anything unidentifiable.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peek: %w", err)
	}

	if decoded, ok := fromBOM(br, head); ok {
		return decoded, nil
	}

	if utf8.Valid(head) {
		return br, nil
	}

	return fromHeuristics(br, head), nil
}

// fromBOM handles byte-order-marked input. A UTF-8 BOM is stripped;
// UTF-16 is decoded in the indicated byte order.
func fromBOM(br *bufio.Reader, head []byte) (io.Reader, bool) {
	switch {
	case bytes.HasPrefix(head, []byte{0xEF, 0xBB, 0xBF}):
		_, _ = br.Discard(3)
		return br, true
	case bytes.HasPrefix(head, []byte{0xFF, 0xFE}):
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		return transform.NewReader(br, dec), true
	case bytes.HasPrefix(head, []byte{0xFE, 0xFF}):
		dec := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
		return transform.NewReader(br, dec), true
	}

	return nil, false
}

// fromHeuristics picks a single-byte charset for BOM-less, non-UTF-8
// input. Windows-1252 is the fallback: it decodes any byte sequence and
// matches most Latin-script spreadsheet exports.
func fromHeuristics(br *bufio.Reader, head []byte) io.Reader {
	result, err := chardet.NewTextDetector().DetectBest(head)
	if err == nil {
		switch result.Charset {
		case "UTF-8":
			return br
		case "ISO-8859-1", "windows-1252":
			return transform.NewReader(br, charmap.Windows1252.NewDecoder())
		case "ISO-8859-15":
			return transform.NewReader(br, charmap.ISO8859_15.NewDecoder())
		}
	}

	return transform.NewReader(br, charmap.Windows1252.NewDecoder())
}
