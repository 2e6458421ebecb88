package subtitles

import (
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Decode converts raw subtitle bytes to text. Invalid UTF-8 sequences are
// replaced with U+FFFD rather than rejected, and a leading byte order mark is
// removed.
func Decode(raw []byte) string {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	decoded, _, err := transform.Bytes(decoder, raw)
	if err != nil {
		return strings.ToValidUTF8(strings.TrimPrefix(string(raw), "\uFEFF"), "\uFFFD")
	}
	return string(decoded)
}
