package internal

import "bytes"

// Scan finds all matches of the given signatures in buf and returns their
// capture regions as candidates. Signatures are tried in priority order;
// within one signature matches are found left to right and do not overlap.
// An empty result means nothing matched, which is a normal outcome.
func Scan(buf []byte, sigs []Signature) []Candidate {
	var candidates []Candidate

	for _, sig := range sigs {
		pos := 0
		for pos < len(buf) {
			start, capLen := matchAt(buf, pos, sig)
			if start < 0 {
				break
			}
			candidates = append(candidates, Candidate{
				Offset:      start,
				SignatureID: sig.ID,
				Raw:         buf[start : start+capLen],
			})
			// Skip past the whole capture region so matches never overlap.
			pos = start + capLen
		}
	}

	return candidates
}

// matchAt searches buf from pos for the next occurrence of sig and returns
// the offset and length of its capture region, or (-1, 0) when the signature
// does not occur again. The capture is clamped to both CaptureMax and the
// end of the buffer and is always at least one byte.
func matchAt(buf []byte, pos int, sig Signature) (int, int) {
	for i := pos; i < len(buf); i++ {
		rel := bytes.Index(buf[i:], sig.Prefix)
		if rel < 0 {
			return -1, 0
		}
		i += rel

		for w := sig.WildcardMin; w <= sig.WildcardMax; w++ {
			suffixAt := i + len(sig.Prefix) + w
			if suffixAt+len(sig.Suffix) > len(buf) {
				continue
			}
			if !bytes.Equal(buf[suffixAt:suffixAt+len(sig.Suffix)], sig.Suffix) {
				continue
			}

			capStart := suffixAt + len(sig.Suffix)
			if capStart >= len(buf) {
				continue
			}
			capLen := sig.CaptureMax
			if capStart+capLen > len(buf) {
				capLen = len(buf) - capStart
			}
			return capStart, capLen
		}
	}
	return -1, 0
}

// ReadLengthPrefixed interprets the first byte of raw as an unsigned payload
// length and returns the payload when it fits inside raw. The second return
// value is false for an empty slice, a zero length, or a length that would
// run past the end of raw.
func ReadLengthPrefixed(raw []byte) ([]byte, bool) {
	if len(raw) < 2 {
		return nil, false
	}
	n := int(raw[0])
	if n == 0 || n >= len(raw) {
		return nil, false
	}
	return raw[1 : 1+n], true
}
