package internal

import (
	"bytes"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// QuotedMessage is a recovered reply-to payload: the quoted text, capped at
// maxQuoteLen characters, plus the quoted sender's account id when the blob
// carried one.
type QuotedMessage struct {
	Content  string
	SenderID string
}

// QuoteStage identifies which step of the fallback chain produced a result.
// The public contract is only present/absent, but the stage is reported so
// tests and the inspect command can tell the steps apart.
type QuoteStage int

const (
	StageNone QuoteStage = iota
	StageXML
	StageLossyXML
	StageWholeText
	StageBinaryScan
)

func (s QuoteStage) String() string {
	switch s {
	case StageXML:
		return "xml"
	case StageLossyXML:
		return "lossy-xml"
	case StageWholeText:
		return "whole-text"
	case StageBinaryScan:
		return "binary-scan"
	default:
		return "none"
	}
}

const maxQuoteLen = 100

// QuoteExtractor recovers quoted-reply text from a CompressContent blob.
// The blob is sometimes an XML document, sometimes raw bytes in an unknown
// encoding; the extractor works through an ordered fallback chain and never
// returns an error, only absent.
type QuoteExtractor struct {
	sigs []Signature
	dec  *Decoder
}

// NewQuoteExtractor returns an extractor over the default quote signature
// table and decode cascade.
func NewQuoteExtractor() *QuoteExtractor {
	return NewQuoteExtractorWith(DefaultQuoteSignatures, NewDecoder())
}

// NewQuoteExtractorWith returns an extractor with an explicit signature
// table and decoder, for tests.
func NewQuoteExtractorWith(sigs []Signature, dec *Decoder) *QuoteExtractor {
	return &QuoteExtractor{sigs: sigs, dec: dec}
}

// Extract runs the fallback chain over blobB. Each stage is attempted only
// when the previous one produced nothing. A nil result means no stage found
// anything; the returned stage says which one succeeded.
func (e *QuoteExtractor) Extract(blobB []byte) (*QuotedMessage, QuoteStage) {
	if len(blobB) == 0 {
		return nil, StageNone
	}

	if q := e.extractXML(blobB); q != nil {
		return q, StageXML
	}
	if q := e.extractLossyXML(blobB); q != nil {
		return q, StageLossyXML
	}
	if q := e.extractWholeText(blobB); q != nil {
		return q, StageWholeText
	}
	if q := e.extractBinaryScan(blobB); q != nil {
		return q, StageBinaryScan
	}

	return nil, StageNone
}

// extractXML looks for the reply markup directly in the raw bytes: the
// quoted text lives in <title>, occasionally in <content>, and the quoted
// sender in a sourceid attribute.
func (e *QuoteExtractor) extractXML(blob []byte) *QuotedMessage {
	content, ok := bytesTagValue(blob, "title")
	if !ok {
		content, ok = bytesTagValue(blob, "content")
	}
	if !ok {
		return nil
	}

	text := tidyQuote(lossyUTF8(content))
	if text == "" {
		return nil
	}

	q := &QuotedMessage{Content: text}
	if id, ok := bytesAttrValue(blob, "sourceid"); ok {
		q.SenderID = lossyUTF8(id)
	}
	return q
}

// extractLossyXML re-decodes the whole blob as UTF-8 with invalid bytes
// dropped and re-scans at the text level. Markup split by binary framing
// bytes sometimes only becomes visible after the lossy pass.
func (e *QuoteExtractor) extractLossyXML(blob []byte) *QuotedMessage {
	text := lossyUTF8(blob)
	value, ok := extractTagValue(text, "title")
	if !ok {
		value, ok = extractTagValue(text, "content")
	}
	if !ok {
		return nil
	}
	tidied := tidyQuote(value)
	if tidied == "" {
		return nil
	}
	return &QuotedMessage{Content: tidied}
}

// extractWholeText decodes the entire blob as UTF-8 and then UTF-16LE and
// keeps the longest run of meaningful-script characters.
func (e *QuoteExtractor) extractWholeText(blob []byte) *QuotedMessage {
	if run := longestMeaningfulRun(lossyUTF8(blob)); run != "" {
		return &QuotedMessage{Content: tidyQuote(run)}
	}

	if len(blob)%2 == 0 {
		decoded, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(blob)
		if err == nil {
			if run := longestMeaningfulRun(string(decoded)); run != "" {
				return &QuotedMessage{Content: tidyQuote(run)}
			}
		}
	}

	return nil
}

// extractBinaryScan is the last resort: scan for generic length-prefixed
// signatures and push each candidate through the decode cascade, stopping
// at the first validated result.
func (e *QuoteExtractor) extractBinaryScan(blob []byte) *QuotedMessage {
	for _, c := range Scan(blob, e.sigs) {
		payload, valid := ReadLengthPrefixed(c.Raw)
		if !valid {
			payload = c.Raw
		}

		dt := e.dec.Decode(payload)
		if !dt.Validated {
			continue
		}
		if text := tidyQuote(dt.Value); text != "" {
			return &QuotedMessage{Content: text}
		}
	}
	return nil
}

// tidyQuote applies the shared post-processing: strip control characters,
// cut at a leftover tag delimiter, trim, and cap the length.
func tidyQuote(s string) string {
	s = StripControls(s)
	if i := strings.IndexByte(s, '<'); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimSpace(s)
	return truncateQuote(s, maxQuoteLen)
}

// truncateQuote caps s at max characters, replacing the tail with a
// three-character ellipsis when it is too long. Counting is in runes so a
// multi-byte character is never split.
func truncateQuote(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// bytesTagValue finds <tag>...</tag> in raw bytes.
func bytesTagValue(blob []byte, tag string) ([]byte, bool) {
	open := []byte("<" + tag + ">")
	closing := []byte("</" + tag + ">")
	start := bytes.Index(blob, open)
	if start < 0 {
		return nil, false
	}
	start += len(open)
	end := bytes.Index(blob[start:], closing)
	if end < 0 {
		return nil, false
	}
	return blob[start : start+end], true
}

// bytesAttrValue finds attr="..." in raw bytes.
func bytesAttrValue(blob []byte, attr string) ([]byte, bool) {
	marker := []byte(attr + `="`)
	start := bytes.Index(blob, marker)
	if start < 0 {
		return nil, false
	}
	start += len(marker)
	end := bytes.IndexByte(blob[start:], '"')
	if end < 0 {
		return nil, false
	}
	value := blob[start : start+end]
	if len(value) == 0 {
		return nil, false
	}
	return value, true
}
