package database

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

type PgGroupSpaceRepository struct {
	conn *sql.DB
}

func NewPgGroupSpaceRepository(dsn string) (*PgGroupSpaceRepository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &PgGroupSpaceRepository{conn: db}, nil
}

func (db *PgGroupSpaceRepository) Ping() error {
	return db.conn.Ping()
}

func (db *PgGroupSpaceRepository) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// IsUniqueViolation reports whether err is a unique-constraint violation.
// Duplicate usernames and concurrent membership inserts both surface here:
// the pre-checks in the api layer are advisory only, the constraints in the
// schema are the actual enforcement.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
