package handler

import (
	"context"

	"github.com/asanbekov/book-catalog/books/internal/model"
	"github.com/asanbekov/book-catalog/books/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type BookService interface {
	List(ctx context.Context, filter model.BookFilter) ([]model.Book, error)
	Recent(ctx context.Context, limit int) ([]model.BookSummary, error)
	Get(ctx context.Context, id string) (model.Book, error)
	Create(ctx context.Context, req model.CreateBookRequest) (model.Book, error)
	Update(ctx context.Context, id string, req model.UpdateBookRequest) (model.Book, error)
	Delete(ctx context.Context, id string) (model.Book, error)
	ChangeState(ctx context.Context, id string, state model.State) (model.Book, error)
}

type AuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (model.AuthResponse, error)
	Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error)
}

var _ BookService = (*service.BookService)(nil)
var _ AuthService = (*service.AuthService)(nil)
