package app

import (
	"context"

	"github.com/asanbekov/book-catalog/books/config"
	"github.com/asanbekov/book-catalog/books/internal/model"
	"github.com/asanbekov/book-catalog/books/internal/repository"
	"github.com/asanbekov/book-catalog/books/internal/service"
	"github.com/asanbekov/book-catalog/books/migrations"
	"github.com/asanbekov/book-catalog/pkg/logger"
	"github.com/asanbekov/book-catalog/pkg/postgres"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	seedUsername = "prueba"
	seedEmail    = "admin@libros.com"
	seedPassword = "admin1234"
)

var seedBooks = []model.Book{
	{Title: "Cien años de soledad", Author: "Gabriel García Márquez", PublicationYear: 1967, State: model.StateAvailable},
	{Title: "Don Quijote de la Mancha", Author: "Miguel de Cervantes", PublicationYear: 1605, State: model.StateReserved},
	{Title: "Ficciones", Author: "Jorge Luis Borges", PublicationYear: 1944, State: model.StateAvailable},
}

// Seed wipes both collections and loads the sample catalogue and account.
func Seed(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "seed")
	ctx := context.Background()

	db, err := postgres.NewPostgresDB(ctx, &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}
	defer db.Close()

	repo, err := repository.NewRepository(db, log)
	if err != nil {
		log.Fatal("repo", zap.Error(err))
	}

	log.Info("clearing existing data")
	if _, err := db.ExecContext(ctx, `truncate books, users`); err != nil {
		log.Fatal("truncate", zap.Error(err))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), service.PasswordHashCost)
	if err != nil {
		log.Fatal("hash seed password", zap.Error(err))
	}
	user, err := repo.CreateUser(ctx, model.User{
		Username:     seedUsername,
		Email:        seedEmail,
		PasswordHash: string(hash),
	})
	if err != nil {
		log.Fatal("seed user", zap.Error(err))
	}
	log.Info("user created", zap.String("id", user.ID), zap.String("username", user.Username))

	for _, book := range seedBooks {
		created, err := repo.CreateBook(ctx, book)
		if err != nil {
			log.Fatal("seed book", zap.String("title", book.Title), zap.Error(err))
		}
		log.Info("book created", zap.String("id", created.ID), zap.String("title", created.Title))
	}

	log.Info("seeding finished",
		zap.String("email", seedEmail),
		zap.String("password", seedPassword),
	)
}
