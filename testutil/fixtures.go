package testutil

import "fmt"

// SenderBlob builds a BytesExtra blob carrying id behind the standard
// signature: 0x1A, one filler byte, 0x08 0x01 0x12, then the
// length-prefixed id.
func SenderBlob(id string) []byte {
	blob := []byte{0x0A, 0x04, 0x08, 0x10, 0x10, 0x00}
	blob = append(blob, 0x1A, byte(len(id)+6), 0x08, 0x01, 0x12, byte(len(id)))
	blob = append(blob, []byte(id)...)
	return blob
}

// GroupSenderBlob builds a BytesExtra blob carrying id behind the special
// group-message signature.
func GroupSenderBlob(id string) []byte {
	blob := []byte{0x0A, 0x04, 0x08, 0x05, 0x10, 0x01, 0x1A, 0x0E, 0x08, 0x01, 0x12, byte(len(id))}
	blob = append(blob, []byte(id)...)
	return blob
}

// QuoteXMLBlob builds a CompressContent blob with the reply markup the
// client produces, wrapped in some binary framing noise.
func QuoteXMLBlob(title, sourceID string) []byte {
	xml := fmt.Sprintf(`<msg><appmsg><title>%s</title><refermsg sourceid="%s"/></appmsg></msg>`, title, sourceID)
	blob := []byte{0x08, 0x02, 0x12, 0x00, 0xFF}
	blob = append(blob, []byte(xml)...)
	blob = append(blob, 0x00, 0xFE)
	return blob
}

// LengthPrefixedBlob builds a buffer of tag byte, length byte, payload —
// the synthetic shape used by the scanner/reader round-trip tests.
func LengthPrefixedBlob(tag byte, payload []byte) []byte {
	blob := []byte{tag, byte(len(payload))}
	return append(blob, payload...)
}
