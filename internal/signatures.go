package internal

// Signature describes one empirically observed byte pattern that precedes a
// field of interest inside an undocumented blob: a fixed prefix, an optional
// bounded wildcard span, a fixed suffix, and a capture region of bounded
// length starting right after the suffix. The tables below were reverse
// engineered from real databases; they are not a complete enumeration of the
// wire format and new client versions may need new entries.
type Signature struct {
	ID          string
	Prefix      []byte
	WildcardMin int
	WildcardMax int
	Suffix      []byte
	// CaptureMax caps how far past the suffix a candidate may extend, so a
	// bogus length byte can never make the scanner walk the whole buffer.
	CaptureMax int
}

// Candidate is one scanner hit: the capture region of a signature match.
type Candidate struct {
	Offset      int    // offset of the capture region within the scanned buffer
	SignatureID string // which signature matched
	Raw         []byte // capture region, at most CaptureMax bytes
}

// DefaultSenderSignatures are the known BytesExtra patterns that precede a
// length-prefixed sender account id. Order is priority order: the standard
// pattern is tried before the special group-message one.
var DefaultSenderSignatures = []Signature{
	{
		ID:          "standard",
		Prefix:      []byte{0x1A},
		WildcardMin: 1,
		WildcardMax: 2,
		Suffix:      []byte{0x08, 0x01, 0x12},
		CaptureMax:  30,
	},
	{
		// Seen on some group chat message types. Single fixed sequence, no
		// wildcards; kept as one table entry rather than a guarantee.
		ID:         "group",
		Prefix:     []byte{0x0A, 0x04, 0x08, 0x05, 0x10, 0x01, 0x1A, 0x0E, 0x08, 0x01, 0x12},
		CaptureMax: 30,
	},
}

// DefaultQuoteSignatures are generic length-prefixed patterns tried as the
// last resort when a CompressContent blob has no recognizable XML payload.
var DefaultQuoteSignatures = []Signature{
	{
		ID:          "quote-nested",
		Prefix:      []byte{0x12},
		WildcardMin: 1,
		WildcardMax: 1,
		Suffix:      []byte{0x0A},
		CaptureMax:  100,
	},
	{
		ID:          "quote-leading",
		Prefix:      []byte{0x0A},
		WildcardMin: 1,
		WildcardMax: 1,
		Suffix:      []byte{0x12},
		CaptureMax:  100,
	},
	{
		ID:          "quote-bare",
		Prefix:      []byte{0x1A},
		WildcardMin: 1,
		WildcardMax: 1,
		CaptureMax:  100,
	},
}
