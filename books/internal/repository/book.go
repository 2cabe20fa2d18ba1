package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/asanbekov/book-catalog/books/internal/errs"
	"github.com/asanbekov/book-catalog/books/internal/model"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type BookRepository interface {
	CreateBook(ctx context.Context, book model.Book) (model.Book, error)
	GetBook(ctx context.Context, id string) (model.Book, error)
	ListBooks(ctx context.Context, filter model.BookFilter) ([]model.Book, error)
	RecentBooks(ctx context.Context, limit int) ([]model.BookSummary, error)
	UpdateBook(ctx context.Context, id string, upd model.UpdateBookRequest) (model.Book, error)
	DeleteBook(ctx context.Context, id string) (model.Book, error)
}

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func (r *repository) CreateBook(ctx context.Context, book model.Book) (model.Book, error) {
	q, args, err := qb.Insert(booksTableName).
		Columns("id", "title", "author", "publication_year", "state").
		Values(newID(), book.Title, book.Author, book.PublicationYear, book.State).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var created model.Book
	if err := r.db.GetContext(ctx, &created, q, args...); err != nil {
		r.log.Error("CreateBook", zap.String("q", q), zap.Any("args", args))
		return model.Book{}, err
	}
	return created, nil
}

func (r *repository) GetBook(ctx context.Context, id string) (model.Book, error) {
	q, args, err := qb.Select("*").
		From(booksTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var book model.Book
	if err := r.db.GetContext(ctx, &book, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errs.NotFound("book not found")
		}
		return model.Book{}, err
	}
	return book, nil
}

func (r *repository) ListBooks(ctx context.Context, filter model.BookFilter) ([]model.Book, error) {
	q := qb.Select("*").
		From(booksTableName).
		OrderBy("created_at desc")

	if filter.State != nil {
		q = q.Where(sq.Eq{"state": *filter.State})
	}
	if filter.Author != "" {
		q = q.Where(sq.ILike{"author": "%" + filter.Author + "%"})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	r.log.Debug("ListBooks", zap.String("query", query), zap.Any("args", args))

	books := make([]model.Book, 0)
	if err := r.db.SelectContext(ctx, &books, query, args...); err != nil {
		return nil, err
	}
	return books, nil
}

func (r *repository) RecentBooks(ctx context.Context, limit int) ([]model.BookSummary, error) {
	q, args, err := qb.Select("id", "title", "author", "publication_year", "state", "created_at").
		From(booksTableName).
		OrderBy("created_at desc").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}

	books := make([]model.BookSummary, 0)
	if err := r.db.SelectContext(ctx, &books, q, args...); err != nil {
		return nil, err
	}
	return books, nil
}

func (r *repository) UpdateBook(ctx context.Context, id string, upd model.UpdateBookRequest) (model.Book, error) {
	q := qb.Update(booksTableName).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("returning *")

	if upd.Title != nil {
		q = q.Set("title", *upd.Title)
	}
	if upd.Author != nil {
		q = q.Set("author", *upd.Author)
	}
	if upd.PublicationYear != nil {
		q = q.Set("publication_year", *upd.PublicationYear)
	}
	if upd.State != nil {
		q = q.Set("state", *upd.State)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var book model.Book
	if err := r.db.GetContext(ctx, &book, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errs.NotFound("book not found")
		}
		r.log.Error("UpdateBook", zap.String("q", query), zap.Any("args", args))
		return model.Book{}, err
	}
	return book, nil
}

func (r *repository) DeleteBook(ctx context.Context, id string) (model.Book, error) {
	q, args, err := qb.Delete(booksTableName).
		Where(sq.Eq{"id": id}).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var book model.Book
	if err := r.db.GetContext(ctx, &book, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errs.NotFound("book not found")
		}
		return model.Book{}, err
	}
	return book, nil
}
