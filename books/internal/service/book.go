package service

import (
	"context"
	"regexp"

	"github.com/asanbekov/book-catalog/books/internal/errs"
	"github.com/asanbekov/book-catalog/books/internal/model"
	"github.com/asanbekov/book-catalog/books/internal/repository"
	"github.com/asanbekov/book-catalog/pkg/kafka"
	"go.uber.org/zap"
)

// EventPublisher pushes book lifecycle events to the broker.
// A nil publisher disables eventing.
type EventPublisher interface {
	Publish(event kafka.BookEvent) error
}

const (
	EventBookCreated = "book.created"
	EventBookUpdated = "book.updated"
	EventBookDeleted = "book.deleted"
)

const defaultRecentLimit = 10

// idPattern is the public identifier shape. Malformed ids are rejected
// before any query runs so the storage engine never sees them.
var idPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

type BookService struct {
	log    *zap.Logger
	repo   repository.BookRepository
	events EventPublisher
}

func NewBookService(repo repository.BookRepository, events EventPublisher, log *zap.Logger) *BookService {
	return &BookService{
		log:    log.Named("books"),
		repo:   repo,
		events: events,
	}
}

func (s *BookService) List(ctx context.Context, filter model.BookFilter) ([]model.Book, error) {
	books, err := s.repo.ListBooks(ctx, filter)
	if err != nil {
		return nil, errs.Classify(err, "list books")
	}
	return books, nil
}

func (s *BookService) Recent(ctx context.Context, limit int) ([]model.BookSummary, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	books, err := s.repo.RecentBooks(ctx, limit)
	if err != nil {
		return nil, errs.Classify(err, "list recent books")
	}
	return books, nil
}

func (s *BookService) Get(ctx context.Context, id string) (model.Book, error) {
	if err := checkID(id); err != nil {
		return model.Book{}, err
	}
	book, err := s.repo.GetBook(ctx, id)
	if err != nil {
		return model.Book{}, errs.Classify(err, "book")
	}
	return book, nil
}

func (s *BookService) Create(ctx context.Context, req model.CreateBookRequest) (model.Book, error) {
	if req.State == "" {
		req.State = model.StateAvailable
	}
	book, err := s.repo.CreateBook(ctx, model.Book{
		Title:           req.Title,
		Author:          req.Author,
		PublicationYear: req.PublicationYear,
		State:           req.State,
	})
	if err != nil {
		return model.Book{}, errs.Classify(err, "create book")
	}
	s.publish(EventBookCreated, book.ID)
	return book, nil
}

func (s *BookService) Update(ctx context.Context, id string, req model.UpdateBookRequest) (model.Book, error) {
	if err := checkID(id); err != nil {
		return model.Book{}, err
	}
	if req.Empty() {
		return model.Book{}, errs.Validation("at least one field must be provided")
	}
	book, err := s.repo.UpdateBook(ctx, id, req)
	if err != nil {
		return model.Book{}, errs.Classify(err, "update book")
	}
	s.publish(EventBookUpdated, book.ID)
	return book, nil
}

func (s *BookService) Delete(ctx context.Context, id string) (model.Book, error) {
	if err := checkID(id); err != nil {
		return model.Book{}, err
	}
	book, err := s.repo.DeleteBook(ctx, id)
	if err != nil {
		return model.Book{}, errs.Classify(err, "delete book")
	}
	s.publish(EventBookDeleted, book.ID)
	return book, nil
}

// ChangeState toggles between AVAILABLE and RESERVED. Both states accept a
// transition to the other; there is no terminal state.
func (s *BookService) ChangeState(ctx context.Context, id string, state model.State) (model.Book, error) {
	if !state.Valid() {
		return model.Book{}, errs.Validation("invalid book state",
			errs.FieldViolation{Field: "state", Message: "state must be one of: AVAILABLE, RESERVED"})
	}
	return s.Update(ctx, id, model.UpdateBookRequest{State: &state})
}

func (s *BookService) publish(event, bookID string) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(kafka.BookEvent{Event: event, BookID: bookID}); err != nil {
		s.log.Warn("publish event", zap.String("event", event), zap.Error(err))
	}
}

func checkID(id string) error {
	if !idPattern.MatchString(id) {
		return errs.Validation("invalid book id")
	}
	return nil
}
