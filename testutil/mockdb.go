package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// CreateMsgDB creates an in-memory database with an empty MSG table in the
// desktop client's schema.
func CreateMsgDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create in-memory database: %v", err)
	}

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS MSG (
		CreateTime INTEGER,
		IsSender INTEGER,
		StrContent TEXT,
		StrTalker TEXT,
		Type INTEGER,
		BytesExtra BLOB,
		CompressContent BLOB
	)`
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		t.Fatalf("Failed to create MSG table: %v", err)
	}

	return db
}

// InsertMessage inserts one MSG row.
func InsertMessage(t *testing.T, db *sql.DB, createTime int64, isSender int, content, talker string, msgType int, bytesExtra, compressContent []byte) {
	t.Helper()
	insertSQL := `INSERT INTO MSG (CreateTime, IsSender, StrContent, StrTalker, Type, BytesExtra, CompressContent)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	if _, err := db.Exec(insertSQL, createTime, isSender, content, talker, msgType, bytesExtra, compressContent); err != nil {
		t.Fatalf("Failed to insert message: %v", err)
	}
}

// CreateContactDB creates an in-memory database with Contact and
// ContactHeadImgUrl tables.
func CreateContactDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create in-memory database: %v", err)
	}

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS Contact (
			UserName TEXT PRIMARY KEY,
			Remark TEXT,
			NickName TEXT,
			Alias TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS ContactHeadImgUrl (
			UserName TEXT PRIMARY KEY,
			NickName TEXT
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			t.Fatalf("Failed to create contact table: %v", err)
		}
	}

	return db
}

// InsertContact inserts one Contact row.
func InsertContact(t *testing.T, db *sql.DB, userName, remark, nickName, alias string) {
	t.Helper()
	insertSQL := "INSERT INTO Contact (UserName, Remark, NickName, Alias) VALUES (?, ?, ?, ?)"
	if _, err := db.Exec(insertSQL, userName, remark, nickName, alias); err != nil {
		t.Fatalf("Failed to insert contact: %v", err)
	}
}

// InsertHeadImgContact inserts one ContactHeadImgUrl row.
func InsertHeadImgContact(t *testing.T, db *sql.DB, userName, nickName string) {
	t.Helper()
	insertSQL := "INSERT INTO ContactHeadImgUrl (UserName, NickName) VALUES (?, ?)"
	if _, err := db.Exec(insertSQL, userName, nickName); err != nil {
		t.Fatalf("Failed to insert head img contact: %v", err)
	}
}
