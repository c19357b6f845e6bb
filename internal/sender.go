package internal

import "strings"

// SenderExtractor recovers the sender's account id from a message's
// BytesExtra blob. Group messages store the real sender there; the MSG row
// itself only names the group. The extractor is a pure function of its
// inputs and holds only an immutable signature table.
type SenderExtractor struct {
	sigs []Signature
}

// NewSenderExtractor returns an extractor over the default signature table.
func NewSenderExtractor() *SenderExtractor {
	return NewSenderExtractorWithSignatures(DefaultSenderSignatures)
}

// NewSenderExtractorWithSignatures returns an extractor over an explicit
// signature table, for tests and for future client versions.
func NewSenderExtractorWithSignatures(sigs []Signature) *SenderExtractor {
	return &SenderExtractor{sigs: sigs}
}

// Extract returns the sender id embedded in blobA, or false when there is
// none. Self-authored messages never carry an embedded id, so isSelf short
// circuits to absent regardless of the blob contents.
func (e *SenderExtractor) Extract(blobA []byte, isSelf bool) (string, bool) {
	id, _, ok := e.ExtractDetail(blobA, isSelf)
	return id, ok
}

// ExtractDetail is Extract plus the id of the signature that matched, for
// the inspect command and for tests that assert signature priority.
func (e *SenderExtractor) ExtractDetail(blobA []byte, isSelf bool) (id, signatureID string, ok bool) {
	if isSelf || len(blobA) == 0 {
		return "", "", false
	}

	for _, c := range Scan(blobA, e.sigs) {
		payload, valid := ReadLengthPrefixed(c.Raw)
		if !valid {
			continue
		}
		// Sender ids are expected ASCII/UTF-8; anything that is not valid
		// UTF-8 is dropped rather than substituted.
		id := strings.ToValidUTF8(string(payload), "")
		if id != "" {
			return id, c.SignatureID, true
		}
	}

	return "", "", false
}
