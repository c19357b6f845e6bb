package internal

import "testing"

// senderFixture is a real-shaped BytesExtra buffer: framing bytes, the
// standard signature, then the length-prefixed account id.
func senderFixture(id string) []byte {
	blob := []byte{0x0A, 0x04, 0x08, 0x10, 0x10, 0x00}
	blob = append(blob, 0x1A, 0x16, 0x08, 0x01, 0x12, byte(len(id)))
	blob = append(blob, id...)
	return blob
}

func TestSenderExtract_StandardSignature(t *testing.T) {
	blob := senderFixture("wxid_examplexxxx")

	id, sig, ok := NewSenderExtractor().ExtractDetail(blob, false)
	if !ok {
		t.Fatal("ExtractDetail() found nothing")
	}
	if id != "wxid_examplexxxx" {
		t.Errorf("id = %q, want wxid_examplexxxx", id)
	}
	if sig != "standard" {
		t.Errorf("signature = %q, want standard", sig)
	}
}

func TestSenderExtract_SelfAuthoredShortCircuit(t *testing.T) {
	tests := []struct {
		name string
		blob []byte
	}{
		{"nil blob", nil},
		{"valid blob", senderFixture("wxid_examplexxxx")},
		{"junk blob", []byte{0xDE, 0xAD, 0xBE, 0xEF}},
	}

	e := NewSenderExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if id, ok := e.Extract(tt.blob, true); ok {
				t.Errorf("Extract(isSelf=true) = %q, want absent", id)
			}
		})
	}
}

func TestSenderExtract_Absent(t *testing.T) {
	tests := []struct {
		name string
		blob []byte
	}{
		{"empty blob", nil},
		{"no signature", []byte{0x01, 0x02, 0x03}},
		{"signature with zero length", []byte{0x1A, 0x01, 0x08, 0x01, 0x12, 0x00, 0x41}},
		{"signature with oversized length", []byte{0x1A, 0x01, 0x08, 0x01, 0x12, 0xFF, 0x41}},
	}

	e := NewSenderExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if id, ok := e.Extract(tt.blob, false); ok {
				t.Errorf("Extract() = %q, want absent", id)
			}
		})
	}
}

func TestSenderExtract_GroupSignature(t *testing.T) {
	blob := []byte{0x0A, 0x04, 0x08, 0x05, 0x10, 0x01, 0x1A, 0x0E, 0x08, 0x01, 0x12}
	blob = append(blob, byte(len("wxid_member01")))
	blob = append(blob, "wxid_member01"...)

	id, ok := NewSenderExtractor().Extract(blob, false)
	if !ok {
		t.Fatal("Extract() found nothing")
	}
	if id != "wxid_member01" {
		t.Errorf("id = %q, want wxid_member01", id)
	}

	// Scanning with the group signature alone must also recover the id.
	e := NewSenderExtractorWithSignatures(DefaultSenderSignatures[1:])
	id, sig, ok := e.ExtractDetail(blob, false)
	if !ok {
		t.Fatal("ExtractDetail() with group signature only found nothing")
	}
	if id != "wxid_member01" {
		t.Errorf("id = %q, want wxid_member01", id)
	}
	if sig != "group" {
		t.Errorf("signature = %q, want group", sig)
	}
}

func TestSenderExtract_SignaturePriority(t *testing.T) {
	// Both signatures match; the one listed first in the table must win
	// even though the other occurs earlier in the buffer.
	sigs := []Signature{
		{ID: "high", Prefix: []byte{0xAA}, CaptureMax: 30},
		{ID: "low", Prefix: []byte{0xBB}, CaptureMax: 30},
	}

	blob := []byte{0xBB, 0x03, 'l', 'o', 'w', 0xAA, 0x04, 'h', 'i', 'g', 'h'}

	id, sig, ok := NewSenderExtractorWithSignatures(sigs).ExtractDetail(blob, false)
	if !ok {
		t.Fatal("ExtractDetail() found nothing")
	}
	if sig != "high" {
		t.Errorf("signature = %q, want high", sig)
	}
	if id != "high" {
		t.Errorf("id = %q, want high", id)
	}
}

func TestSenderExtract_Deterministic(t *testing.T) {
	blob := senderFixture("wxid_determinism")
	e := NewSenderExtractor()

	first, ok1 := e.Extract(blob, false)
	second, ok2 := e.Extract(blob, false)
	if ok1 != ok2 || first != second {
		t.Errorf("Extract() not deterministic: (%q, %v) then (%q, %v)", first, ok1, second, ok2)
	}
}

func TestSenderExtract_SkipsInvalidThenFindsValid(t *testing.T) {
	// First match has a bogus length byte; a later match, past the first
	// capture window, carries the id.
	blob := []byte{0x1A, 0x01, 0x08, 0x01, 0x12, 0xFF}
	blob = append(blob, make([]byte, 30)...)
	blob = append(blob, senderFixture("wxid_second")...)

	id, ok := NewSenderExtractor().Extract(blob, false)
	if !ok {
		t.Fatal("Extract() found nothing")
	}
	if id != "wxid_second" {
		t.Errorf("id = %q, want wxid_second", id)
	}
}
