package database

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// OpenDatabase opens a SQLite database at the given path and applies pragmas.
// Uses _txlock=immediate so that BEGIN acquires a RESERVED lock up front,
// serializing write transactions. Read-then-write sequences such as the
// login-attempt counter and the share view counter rely on this.
func OpenDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_txlock=immediate")
	if err != nil {
		return nil, err
	}

	if err := ApplyPragmas(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// InitStore opens or creates the application database and initializes the schema.
func InitStore(path string) (*sql.DB, error) {
	db, err := OpenDatabase(path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(GetSchema()); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
