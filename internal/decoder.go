package internal

import (
	"encoding/base64"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
)

// DecodedText is the outcome of running a payload through the decode cascade.
// Validated means the text passed the meaningful-run heuristic; a fallback
// result is the raw bytes reinterpreted one byte per rune and may be garbage.
type DecodedText struct {
	Value     string
	Encoding  string
	Validated bool
}

// CharsetAttempt is one entry in the ordered charset list. A nil Enc means
// plain UTF-8 checked with utf8.Valid.
type CharsetAttempt struct {
	Name string
	Enc  encoding.Encoding
	// EvenOnly skips payloads with an odd byte count (UTF-16 code units).
	EvenOnly bool
}

// DefaultCharsets is the compiled-in charset attempt order: Unicode first,
// then the legacy mainland encodings the desktop client historically used.
var DefaultCharsets = []CharsetAttempt{
	{Name: "utf-8"},
	{Name: "utf-16le", Enc: unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), EvenOnly: true},
	{Name: "utf-16be", Enc: unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), EvenOnly: true},
	{Name: "gbk", Enc: simplifiedchinese.GBK},
	{Name: "gb18030", Enc: simplifiedchinese.GB18030},
}

// Decoder turns undocumented binary payloads into text by trying a fixed
// cascade of decodings and accepting the first one that looks meaningful.
// The zero value is not usable; construct with NewDecoder.
type Decoder struct {
	charsets []CharsetAttempt
}

// NewDecoder returns a Decoder using the default charset order. Tests can
// substitute an alternate order with NewDecoderWithCharsets.
func NewDecoder() *Decoder {
	return NewDecoderWithCharsets(DefaultCharsets)
}

// NewDecoderWithCharsets returns a Decoder with an explicit charset list.
func NewDecoderWithCharsets(charsets []CharsetAttempt) *Decoder {
	return &Decoder{charsets: charsets}
}

// Decode runs the full cascade over payload. It never fails: when no attempt
// validates it returns the payload reinterpreted byte-per-rune with
// Validated=false. The cascade order is charsets, embedded tag re-scan,
// base64 (std and url) followed by the charsets again, then symbol-range
// extraction.
func (d *Decoder) Decode(payload []byte) DecodedText {
	if len(payload) == 0 {
		return DecodedText{Value: "", Encoding: "raw", Validated: false}
	}

	if dt, ok := d.tryCharsets(payload); ok {
		return dt
	}

	// A payload is sometimes a fragment of markup rather than bare text.
	if v, ok := extractTagValue(lossyUTF8(payload), "title"); ok {
		if cleaned, ok := acceptDecoded(v); ok {
			return DecodedText{Value: cleaned, Encoding: "embedded-xml", Validated: true}
		}
	}

	trimmed := strings.TrimSpace(lossyUTF8(payload))
	for _, b64 := range []struct {
		name string
		enc  *base64.Encoding
	}{
		{"base64", base64.StdEncoding},
		{"base64url", base64.URLEncoding},
	} {
		decoded, err := b64.enc.DecodeString(trimmed)
		if err != nil || len(decoded) == 0 {
			continue
		}
		if dt, ok := d.tryCharsets(decoded); ok {
			dt.Encoding = b64.name + "+" + dt.Encoding
			return dt
		}
	}

	if sym := extractSymbolRun(lossyUTF8(payload)); sym != "" {
		return DecodedText{Value: sym, Encoding: "symbols", Validated: true}
	}

	return DecodedText{Value: rawString(payload), Encoding: "raw", Validated: false}
}

// tryCharsets runs the ordered charset attempts and returns the first
// decoding that validates.
func (d *Decoder) tryCharsets(payload []byte) (DecodedText, bool) {
	for _, attempt := range d.charsets {
		if attempt.EvenOnly && len(payload)%2 != 0 {
			continue
		}

		var text string
		if attempt.Enc == nil {
			if !utf8.Valid(payload) {
				continue
			}
			text = string(payload)
		} else {
			decoded, err := attempt.Enc.NewDecoder().Bytes(payload)
			if err != nil {
				continue
			}
			text = string(decoded)
		}

		if cleaned, ok := acceptDecoded(text); ok {
			return DecodedText{Value: cleaned, Encoding: attempt.Name, Validated: true}, true
		}
	}
	return DecodedText{}, false
}

// acceptDecoded applies the validation heuristic and control stripping.
// A candidate is accepted only if, after stripping, it still contains a run
// of at least three meaningful characters and is non-empty.
func acceptDecoded(text string) (string, bool) {
	if !hasMeaningfulRun(text) {
		return "", false
	}
	cleaned := StripControls(text)
	if cleaned == "" || !hasMeaningfulRun(cleaned) {
		return "", false
	}
	return cleaned, true
}

// hasMeaningfulRun reports whether s contains at least three consecutive
// characters drawn from CJK ideographs, ASCII letters, or ASCII digits.
// This run-length heuristic is the sole acceptance test; it is deliberately
// permissive because the true encoding is unknowable up front.
func hasMeaningfulRun(s string) bool {
	run := 0
	for _, r := range s {
		if isMeaningfulRune(r) {
			run++
			if run >= 3 {
				return true
			}
		} else {
			run = 0
		}
	}
	return false
}

func isMeaningfulRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r >= 0x4E00 && r <= 0x9FFF: // CJK unified ideographs
		return true
	}
	return false
}

// longestMeaningfulRun returns the longest run of meaningful characters in
// s, or "" when the longest run is shorter than three characters.
func longestMeaningfulRun(s string) string {
	var best, cur []rune
	for _, r := range s {
		if isMeaningfulRune(r) {
			cur = append(cur, r)
			continue
		}
		if len(cur) > len(best) {
			best = cur
		}
		cur = nil
	}
	if len(cur) > len(best) {
		best = cur
	}
	if len(best) < 3 {
		return ""
	}
	return string(best)
}

// StripControls removes C0 and C1 control characters.
func StripControls(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || (r >= 0x7F && r <= 0x9F) {
			return -1
		}
		return r
	}, s)
}

// extractSymbolRun pulls out a contiguous stretch of symbol or emoji range
// characters, the last-resort signal that a payload held a sticker-like
// message rather than prose.
func extractSymbolRun(s string) string {
	var run []rune
	for _, r := range s {
		if isSymbolRune(r) {
			run = append(run, r)
			continue
		}
		if len(run) > 0 {
			return string(run)
		}
	}
	return string(run)
}

func isSymbolRune(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1FAFF: // emoji blocks
		return true
	case r >= 0x2600 && r <= 0x27BF: // misc symbols and dingbats
		return true
	case r >= 0x2190 && r <= 0x21FF: // arrows
		return true
	}
	return false
}

// lossyUTF8 drops any bytes that do not form valid UTF-8, mirroring a
// decode with errors ignored.
func lossyUTF8(b []byte) string {
	return strings.ToValidUTF8(string(b), "")
}

// rawString reinterprets bytes one byte per rune, the most permissive
// single-byte reading. Used only for fallback results.
func rawString(b []byte) string {
	runes := make([]rune, len(b))
	for i, c := range b {
		runes[i] = rune(c)
	}
	return string(runes)
}

// extractTagValue returns the text between <tag> and </tag> in s.
func extractTagValue(s, tag string) (string, bool) {
	openTag := "<" + tag + ">"
	closeTag := "</" + tag + ">"
	start := strings.Index(s, openTag)
	if start < 0 {
		return "", false
	}
	start += len(openTag)
	end := strings.Index(s[start:], closeTag)
	if end < 0 {
		return "", false
	}
	value := strings.TrimSpace(s[start : start+end])
	if value == "" {
		return "", false
	}
	return value, true
}
