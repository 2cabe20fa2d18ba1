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

type UserRepository interface {
	CreateUser(ctx context.Context, user model.User) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	GetUserByUsernameOrEmail(ctx context.Context, username, email string) (model.User, error)
}

func (r *repository) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	q, args, err := qb.Insert(usersTableName).
		Columns("id", "username", "email", "password_hash").
		Values(newID(), user.Username, user.Email, user.PasswordHash).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.User{}, err
	}

	var created model.User
	if err := r.db.GetContext(ctx, &created, q, args...); err != nil {
		r.log.Error("CreateUser", zap.String("q", q), zap.String("username", user.Username))
		return model.User{}, err
	}
	return created, nil
}

func (r *repository) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	q, args, err := qb.Select("*").
		From(usersTableName).
		Where(sq.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.User{}, err
	}

	var user model.User
	if err := r.db.GetContext(ctx, &user, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, errs.NotFound("user not found")
		}
		return model.User{}, err
	}
	return user, nil
}

func (r *repository) GetUserByUsernameOrEmail(ctx context.Context, username, email string) (model.User, error) {
	q, args, err := qb.Select("*").
		From(usersTableName).
		Where(sq.Or{sq.Eq{"username": username}, sq.Eq{"email": email}}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.User{}, err
	}

	var user model.User
	if err := r.db.GetContext(ctx, &user, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, errs.NotFound("user not found")
		}
		return model.User{}, err
	}
	return user, nil
}
