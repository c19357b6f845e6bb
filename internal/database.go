package internal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const dateLayout = "2006-01-02"

// OpenDatabase opens a SQLite database in read-only mode
func OpenDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return nil, &StorageError{Path: path, Op: "open", Err: err}
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &StorageError{Path: path, Op: "open", Err: err}
	}

	return db, nil
}

// QueryOptions narrows which MSG rows are read.
type QueryOptions struct {
	Limit    int
	FromDate string // YYYY-MM-DD, inclusive
	ToDate   string // YYYY-MM-DD, inclusive through end of day
}

// QueryMessages reads message rows in chronological order. Malformed date
// filters are logged as warnings and ignored rather than failing the run.
func QueryMessages(db *sql.DB, opts QueryOptions) ([]MessageRecord, error) {
	query := `SELECT CreateTime, IsSender, StrContent, StrTalker, Type, BytesExtra, CompressContent
		FROM MSG WHERE 1=1`
	var args []interface{}

	if opts.FromDate != "" {
		if t, err := time.ParseInLocation(dateLayout, opts.FromDate, time.Local); err == nil {
			query += " AND CreateTime >= ?"
			args = append(args, t.Unix())
		} else {
			LogWarn("Ignoring invalid from-date %q (want YYYY-MM-DD)", opts.FromDate)
		}
	}
	if opts.ToDate != "" {
		if t, err := time.ParseInLocation(dateLayout, opts.ToDate, time.Local); err == nil {
			endOfDay := t.Add(24*time.Hour - time.Second)
			query += " AND CreateTime <= ?"
			args = append(args, endOfDay.Unix())
		} else {
			LogWarn("Ignoring invalid to-date %q (want YYYY-MM-DD)", opts.ToDate)
		}
	}

	query += " ORDER BY CreateTime ASC"
	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, &StorageError{Path: "MSG", Op: "query", Err: err}
	}
	defer rows.Close()

	var records []MessageRecord
	for rows.Next() {
		var (
			rec      MessageRecord
			isSender int
			content  sql.NullString
			talker   sql.NullString
			msgType  sql.NullInt64
		)
		if err := rows.Scan(&rec.CreateTime, &isSender, &content, &talker, &msgType, &rec.BytesExtra, &rec.CompressContent); err != nil {
			return nil, &StorageError{Path: "MSG", Op: "scan", Err: err}
		}
		rec.IsSender = isSender == 1
		rec.Content = content.String
		rec.TalkerID = talker.String
		rec.Type = int(msgType.Int64)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Path: "MSG", Op: "scan", Err: err}
	}

	return records, nil
}

// LoadContacts reads the contact map from a MicroMsg database. When the
// Contact table is unreadable or empty it falls back to the avatar table,
// which at least carries nicknames.
func LoadContacts(db *sql.DB) (map[string]Contact, error) {
	contacts := make(map[string]Contact)

	rows, err := db.Query("SELECT UserName, Remark, NickName, Alias FROM Contact")
	if err == nil {
		defer rows.Close()
		for rows.Next() {
			var c Contact
			var remark, nick, alias sql.NullString
			if err := rows.Scan(&c.UserName, &remark, &nick, &alias); err != nil {
				return nil, &StorageError{Path: "Contact", Op: "scan", Err: err}
			}
			c.Remark = remark.String
			c.NickName = nick.String
			c.Alias = alias.String
			contacts[c.UserName] = c
		}
		if err := rows.Err(); err != nil {
			return nil, &StorageError{Path: "Contact", Op: "scan", Err: err}
		}
	} else {
		LogWarn("Reading Contact table failed: %v", err)
	}

	if len(contacts) > 0 {
		return contacts, nil
	}

	// Fallback only when the primary table yielded nothing.
	rows, err = db.Query("SELECT UserName, NickName FROM ContactHeadImgUrl")
	if err != nil {
		return contacts, nil
	}
	defer rows.Close()
	for rows.Next() {
		var userName string
		var nick sql.NullString
		if err := rows.Scan(&userName, &nick); err != nil {
			break
		}
		if nick.String != "" {
			contacts[userName] = Contact{UserName: userName, NickName: nick.String}
		}
	}

	return contacts, nil
}

// FindContactDB locates MicroMsg.db relative to a MSG.db path. The desktop
// client keeps them two directory levels apart (Msg/Multi/MSG.db vs
// Msg/MicroMsg.db); an empty string means it was not found.
func FindContactDB(msgPath string) string {
	candidate := filepath.Join(filepath.Dir(filepath.Dir(msgPath)), "MicroMsg.db")
	if _, err := os.Stat(candidate); err != nil {
		return ""
	}
	return candidate
}
