package internal

import (
	"regexp"
	"strings"
	"time"
)

var (
	htmlTagPattern = regexp.MustCompile(`<[^>]+>`)
	apiKeyPattern  = regexp.MustCompile(`\bsk-[a-zA-Z0-9_-]{20,}`)
	quotedNameRe   = regexp.MustCompile(`"([^"]+)"(?:邀请|修改|撤回|发起|说)`)
	atNameRe       = regexp.MustCompile(`@([^\s@]+)`)
	colonNameRe    = regexp.MustCompile(`^([^:：]+)[：:]`)
)

// ShouldSkip reports whether a message's visible content is noise: markup
// payloads, leaked key fragments, and media placeholders the client stores
// instead of text.
func ShouldSkip(content string) bool {
	content = strings.TrimSpace(content)
	if content == "" {
		return true
	}
	if strings.HasPrefix(content, "<") || strings.HasPrefix(content, "sk") {
		return true
	}
	if content == "收到一条图片" || content == "收到一条视频" {
		return true
	}
	return strings.HasPrefix(content, "[语音]")
}

// CleanContent strips markup and masks anything shaped like an API key.
func CleanContent(content string) string {
	content = htmlTagPattern.ReplaceAllString(content, "")
	content = apiKeyPattern.ReplaceAllString(content, "x")
	return strings.TrimSpace(content)
}

// FormatTimestamp renders a Unix timestamp in local time.
func FormatTimestamp(ts int64) string {
	if ts <= 0 {
		return "无效时间戳"
	}
	return time.Unix(ts, 0).Format("2006-01-02 15:04:05")
}

// NamesFromContent pulls likely participant names out of system-style
// message text: quoted names before action verbs, @mentions, and a leading
// "name:" prefix. A fallback when the binary sender id is unrecoverable.
func NamesFromContent(content string) []string {
	var names []string

	for _, m := range quotedNameRe.FindAllStringSubmatch(content, -1) {
		names = append(names, m[1])
	}
	for _, m := range atNameRe.FindAllStringSubmatch(content, -1) {
		name := m[1]
		if name != "所有人" && len([]rune(name)) < 20 {
			names = append(names, name)
		}
	}
	if m := colonNameRe.FindStringSubmatch(content); m != nil {
		name := strings.TrimSpace(m[1])
		if len([]rune(name)) < 20 {
			names = append(names, name)
		}
	}

	return names
}

// BuildOptions carries the naming configuration for transcript assembly.
type BuildOptions struct {
	IsGroup  bool
	SelfName string // rendered for self-authored messages
	PeerName string // private chat fallback when the peer is unmapped
	SelfID   string // the local account id, never pseudonymized
}

// TranscriptBuilder turns raw message rows into a resolved transcript. It
// composes the two blob extractors with the contact book; all per-message
// decoding is pure, so the builder itself carries no cross-message state
// beyond the pseudonym cache inside the book.
type TranscriptBuilder struct {
	sender *SenderExtractor
	quote  *QuoteExtractor
	book   *ContactBook
	opts   BuildOptions
}

// NewTranscriptBuilder wires the default extractors to a contact book.
func NewTranscriptBuilder(book *ContactBook, opts BuildOptions) *TranscriptBuilder {
	if opts.SelfName == "" {
		opts.SelfName = "我"
	}
	if opts.PeerName == "" {
		opts.PeerName = "对方"
	}
	return &TranscriptBuilder{
		sender: NewSenderExtractor(),
		quote:  NewQuoteExtractor(),
		book:   book,
		opts:   opts,
	}
}

// Build assembles a transcript from message rows. Rows whose content is
// noise are dropped unless a quoted reply can be recovered from their
// CompressContent blob.
func (tb *TranscriptBuilder) Build(talker string, records []MessageRecord) *Transcript {
	t := &Transcript{Talker: talker, IsGroup: tb.opts.IsGroup}

	for _, rec := range records {
		quoted, _ := tb.quote.Extract(rec.CompressContent)

		if ShouldSkip(rec.Content) && quoted == nil {
			continue
		}

		entry := Entry{
			Time:    FormatTimestamp(rec.CreateTime),
			Name:    tb.resolveName(rec),
			Content: CleanContent(rec.Content),
		}
		if quoted != nil {
			entry.Quote = &QuoteDisplay{Content: quoted.Content}
			if quoted.SenderID != "" {
				entry.Quote.Sender = tb.book.Resolve(quoted.SenderID)
			}
		}
		if entry.Content == "" && entry.Quote == nil {
			continue
		}

		t.Entries = append(t.Entries, entry)
	}

	return t
}

// resolveName picks the display name for one message.
func (tb *TranscriptBuilder) resolveName(rec MessageRecord) string {
	if rec.IsSender {
		return tb.opts.SelfName
	}

	if tb.opts.IsGroup {
		if id, ok := tb.sender.Extract(rec.BytesExtra, rec.IsSender); ok {
			if id == tb.opts.SelfID {
				return tb.opts.SelfName
			}
			return tb.book.Resolve(id)
		}
		// No recoverable id: try names mentioned in the content itself
		// before settling for a pseudonym of the group id.
		if names := NamesFromContent(CleanContent(rec.Content)); len(names) > 0 {
			return names[0]
		}
		return tb.book.Resolve(rec.TalkerID)
	}

	if tb.book.Known(rec.TalkerID) {
		return tb.book.Resolve(rec.TalkerID)
	}
	return tb.opts.PeerName
}
