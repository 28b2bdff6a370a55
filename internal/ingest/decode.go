package ingest

import (
	"bytes"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Decode wraps raw file bytes in a UTF-8 reader. A byte order mark selects
// the matching Unicode decoding and is dropped; otherwise valid UTF-8 passes
// through and anything else is treated as Windows-1252, the spreadsheet
// export default on the lab PCs.
func Decode(data []byte) io.Reader {
	var fallback transform.Transformer = unicode.UTF8.NewDecoder()
	if !utf8.Valid(data) {
		fallback = charmap.Windows1252.NewDecoder()
	}
	return transform.NewReader(bytes.NewReader(data), unicode.BOMOverride(fallback))
}
