package repository

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	booksTableName = `books`
	usersTableName = `users`
)

// newID mints a 24-char lower-hex identifier, the public id format for
// every record.
func newID() string {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		panic(err) // crypto/rand does not fail on supported platforms
	}
	return hex.EncodeToString(buf)
}
