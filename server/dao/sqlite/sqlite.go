// Package sqlite provides DAO repositories that persist to SQLite database
// files in a data directory.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dekarrin/cmdbook/server/dao"
	"modernc.org/sqlite"
)

// sqliteConstraint is the SQLITE_CONSTRAINT primary result code.
const sqliteConstraint = 19

type store struct {
	dbFilename string

	db *sql.DB

	users *UsersDB
	gives *GivesDB
}

// NewDatastore opens (creating if needed) the database in storageDir and
// returns a Store backed by it.
func NewDatastore(storageDir string) (dao.Store, error) {
	st := &store{
		dbFilename: "data.db",
	}

	fileName := filepath.Join(storageDir, st.dbFilename)

	var err error
	st.db, err = sql.Open("sqlite", fileName)
	if err != nil {
		return nil, wrapDBError(err)
	}

	st.users = &UsersDB{db: st.db}
	if err := st.users.init(); err != nil {
		st.db.Close()
		return nil, fmt.Errorf("users: %w", err)
	}

	st.gives = &GivesDB{db: st.db}
	if err := st.gives.init(); err != nil {
		st.db.Close()
		return nil, fmt.Errorf("gives: %w", err)
	}

	return st, nil
}

func (s *store) Users() dao.UserRepository {
	return s.users
}

func (s *store) Gives() dao.GiveRepository {
	return s.gives
}

func (s *store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("%s: %w", s.dbFilename, err)
	}
	return nil
}

func wrapDBError(err error) error {
	sqliteErr := &sqlite.Error{}
	if errors.As(err, &sqliteErr) {
		// extended result codes keep the primary code in the low byte.
		if sqliteErr.Code()&0xff == sqliteConstraint {
			return dao.ErrConstraintViolation
		}
		if msg, ok := sqlite.ErrorCodeString[sqliteErr.Code()]; ok && msg != "" {
			return fmt.Errorf("%s: %w", msg, err)
		}
		return fmt.Errorf("%s", sqliteErr.Error())
	} else if errors.Is(err, sql.ErrNoRows) {
		return dao.ErrNotFound
	}
	return err
}
