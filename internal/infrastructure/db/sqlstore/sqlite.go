package sqlstore

import (
	"bytes"
	"database/sql"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// sqliteDriverName is a go-sqlite3 driver whose lower() folds Unicode the way
// strings.ToLower does. The built-in one only folds ASCII, which breaks
// search on accented names.
const sqliteDriverName = "sqlite3_rib"

func init() {
	sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("lower", unicodeLower, true)
		},
	})
}

// unicodeLower keeps NULL as NULL. go-sqlite3 hands NULL over as a nil []byte.
func unicodeLower(v any) any {
	switch s := v.(type) {
	case string:
		return strings.ToLower(s)
	case []byte:
		if s == nil {
			return nil
		}
		return bytes.ToLower(s)
	default:
		return v
	}
}
