package internal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/wxbak/wechat-session/testutil"
)

func TestQueryMessages_Rows(t *testing.T) {
	db := testutil.CreateMsgDB(t)
	defer db.Close()

	extra := testutil.SenderBlob("wxid_member01")
	compress := testutil.QuoteXMLBlob("quoted text", "wxid_quoted01")
	testutil.InsertMessage(t, db, 1700000000, 0, "你好", "12345@chatroom", 1, extra, compress)

	records, err := QueryMessages(db, QueryOptions{})
	if err != nil {
		t.Fatalf("QueryMessages() error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}

	rec := records[0]
	if rec.CreateTime != 1700000000 {
		t.Errorf("CreateTime = %d, want 1700000000", rec.CreateTime)
	}
	if rec.IsSender {
		t.Error("IsSender = true, want false")
	}
	if rec.Content != "你好" {
		t.Errorf("Content = %q, want 你好", rec.Content)
	}
	if rec.TalkerID != "12345@chatroom" {
		t.Errorf("TalkerID = %q, want 12345@chatroom", rec.TalkerID)
	}

	// Blobs must round-trip through the driver intact.
	if id, ok := NewSenderExtractor().Extract(rec.BytesExtra, rec.IsSender); !ok || id != "wxid_member01" {
		t.Errorf("sender from stored blob = (%q, %v), want wxid_member01", id, ok)
	}
	if q, _ := NewQuoteExtractor().Extract(rec.CompressContent); q == nil || q.Content != "quoted text" {
		t.Errorf("quote from stored blob = %+v, want quoted text", q)
	}
}

func TestQueryMessages_ChronologicalOrder(t *testing.T) {
	db := testutil.CreateMsgDB(t)
	defer db.Close()

	testutil.InsertMessage(t, db, 300, 0, "third", "wxid_x", 1, nil, nil)
	testutil.InsertMessage(t, db, 100, 0, "first", "wxid_x", 1, nil, nil)
	testutil.InsertMessage(t, db, 200, 0, "second", "wxid_x", 1, nil, nil)

	records, err := QueryMessages(db, QueryOptions{})
	if err != nil {
		t.Fatalf("QueryMessages() error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("len(records) = %d, want 3", len(records))
	}
	for i, want := range []string{"first", "second", "third"} {
		if records[i].Content != want {
			t.Errorf("records[%d].Content = %q, want %q", i, records[i].Content, want)
		}
	}
}

func TestQueryMessages_Limit(t *testing.T) {
	db := testutil.CreateMsgDB(t)
	defer db.Close()

	for i := int64(1); i <= 5; i++ {
		testutil.InsertMessage(t, db, i, 0, "msg", "wxid_x", 1, nil, nil)
	}

	records, err := QueryMessages(db, QueryOptions{Limit: 2})
	if err != nil {
		t.Fatalf("QueryMessages() error: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("len(records) = %d, want 2", len(records))
	}
}

func TestQueryMessages_DateFilters(t *testing.T) {
	db := testutil.CreateMsgDB(t)
	defer db.Close()

	// The rows sit weeks apart so the filter outcome does not depend on
	// the local timezone.
	testutil.InsertMessage(t, db, 1700000000, 0, "november", "wxid_x", 1, nil, nil)
	testutil.InsertMessage(t, db, 1705000000, 0, "january", "wxid_x", 1, nil, nil)

	records, err := QueryMessages(db, QueryOptions{FromDate: "2023-12-01"})
	if err != nil {
		t.Fatalf("QueryMessages(from) error: %v", err)
	}
	if len(records) != 1 || records[0].Content != "january" {
		t.Errorf("from-date filter kept %v, want only january", contents(records))
	}

	records, err = QueryMessages(db, QueryOptions{ToDate: "2023-12-01"})
	if err != nil {
		t.Fatalf("QueryMessages(to) error: %v", err)
	}
	if len(records) != 1 || records[0].Content != "november" {
		t.Errorf("to-date filter kept %v, want only november", contents(records))
	}
}

func TestQueryMessages_InvalidDateIgnored(t *testing.T) {
	db := testutil.CreateMsgDB(t)
	defer db.Close()

	testutil.InsertMessage(t, db, 1700000000, 0, "kept", "wxid_x", 1, nil, nil)

	records, err := QueryMessages(db, QueryOptions{FromDate: "not-a-date", ToDate: "also bad"})
	if err != nil {
		t.Fatalf("QueryMessages() error: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("len(records) = %d, want 1 (bad dates ignored)", len(records))
	}
}

func contents(records []MessageRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Content
	}
	return out
}

func TestLoadContacts_Priority(t *testing.T) {
	db := testutil.CreateContactDB(t)
	defer db.Close()

	testutil.InsertContact(t, db, "wxid_a", "备注名", "昵称", "alias_a")
	testutil.InsertContact(t, db, "wxid_b", "", "昵称b", "")

	contacts, err := LoadContacts(db)
	if err != nil {
		t.Fatalf("LoadContacts() error: %v", err)
	}
	if len(contacts) != 2 {
		t.Fatalf("len(contacts) = %d, want 2", len(contacts))
	}
	if got := contacts["wxid_a"].DisplayName(); got != "备注名" {
		t.Errorf("wxid_a name = %q, want 备注名", got)
	}
	if got := contacts["wxid_b"].DisplayName(); got != "昵称b" {
		t.Errorf("wxid_b name = %q, want 昵称b", got)
	}
}

func TestLoadContacts_HeadImgFallback(t *testing.T) {
	db := testutil.CreateContactDB(t)
	defer db.Close()

	// Contact table exists but is empty; names come from the avatar table.
	testutil.InsertHeadImgContact(t, db, "wxid_c", "头像昵称")
	testutil.InsertHeadImgContact(t, db, "wxid_d", "")

	contacts, err := LoadContacts(db)
	if err != nil {
		t.Fatalf("LoadContacts() error: %v", err)
	}
	if len(contacts) != 1 {
		t.Fatalf("len(contacts) = %d, want 1 (empty names dropped)", len(contacts))
	}
	if got := contacts["wxid_c"].DisplayName(); got != "头像昵称" {
		t.Errorf("wxid_c name = %q, want 头像昵称", got)
	}
}

func TestOpenDatabase_Missing(t *testing.T) {
	_, err := OpenDatabase(filepath.Join(t.TempDir(), "nope.db"))
	if err == nil {
		t.Fatal("OpenDatabase() on a missing file succeeded")
	}
	var serr *StorageError
	if !errors.As(err, &serr) {
		t.Errorf("error type = %T, want *StorageError", err)
	}
}

func TestFindContactDB(t *testing.T) {
	dir := t.TempDir()
	multi := filepath.Join(dir, "Msg", "Multi")
	if err := os.MkdirAll(multi, 0o755); err != nil {
		t.Fatal(err)
	}
	msgPath := filepath.Join(multi, "MSG.db")
	if err := os.WriteFile(msgPath, []byte{}, 0o644); err != nil {
		t.Fatal(err)
	}

	if got := FindContactDB(msgPath); got != "" {
		t.Errorf("FindContactDB() = %q, want empty before MicroMsg.db exists", got)
	}

	contactPath := filepath.Join(dir, "Msg", "MicroMsg.db")
	if err := os.WriteFile(contactPath, []byte{}, 0o644); err != nil {
		t.Fatal(err)
	}
	if got := FindContactDB(msgPath); got != contactPath {
		t.Errorf("FindContactDB() = %q, want %q", got, contactPath)
	}
}
