package service

import (
	"context"

	"github.com/asanbekov/book-catalog/books/internal/errs"
	"github.com/asanbekov/book-catalog/books/internal/model"
	"github.com/asanbekov/book-catalog/books/internal/repository"
	"github.com/asanbekov/book-catalog/pkg/auth"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// PasswordHashCost is the bcrypt work factor for every stored password,
// the seeder included.
const PasswordHashCost = 12

const invalidCredentials = "invalid credentials"

type AuthService struct {
	log    *zap.Logger
	repo   repository.UserRepository
	tokens *auth.TokenManager

	// dummyHash keeps the login path constant-time when the account
	// does not exist.
	dummyHash []byte
}

func NewAuthService(repo repository.UserRepository, tokens *auth.TokenManager, log *zap.Logger) (*AuthService, error) {
	dummy, err := bcrypt.GenerateFromPassword([]byte("timing-equalizer"), PasswordHashCost)
	if err != nil {
		return nil, errors.Wrap(err, "bcrypt dummy hash")
	}
	return &AuthService{
		log:       log.Named("auth"),
		repo:      repo,
		tokens:    tokens,
		dummyHash: dummy,
	}, nil
}

// Register creates an account with a hashed password and issues a session
// token. A username or email collision fails with DUPLICATE_ERROR naming
// the colliding field.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.AuthResponse, error) {
	req.Sanitize()

	existing, err := s.repo.GetUserByUsernameOrEmail(ctx, req.Username, req.Email)
	if err == nil {
		field := "username"
		if existing.Email == req.Email {
			field = "email"
		}
		return model.AuthResponse{}, errs.AlreadyExists(field, field+" already in use")
	}
	classified := errs.Classify(err, "register user")
	var appErr *errs.Error
	if !errors.As(classified, &appErr) || appErr.Kind != errs.KindNotFound {
		return model.AuthResponse{}, classified
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), PasswordHashCost)
	if err != nil {
		return model.AuthResponse{}, errs.Internal("hash password", err)
	}

	// a concurrent register can still win the race; the unique index
	// violation is re-classified to the same DUPLICATE_ERROR
	user, err := s.repo.CreateUser(ctx, model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return model.AuthResponse{}, errs.Classify(err, "register user")
	}

	return s.withToken(user)
}

// Login authenticates by lower-cased email. Unknown email and wrong
// password produce the same error, and both paths run one bcrypt compare.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	req.Sanitize()

	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		classified := errs.Classify(err, "user")
		var appErr *errs.Error
		if errors.As(classified, &appErr) && appErr.Kind == errs.KindNotFound {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(req.Password))
			return model.AuthResponse{}, errs.Authentication(invalidCredentials)
		}
		return model.AuthResponse{}, classified
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return model.AuthResponse{}, errs.Authentication(invalidCredentials)
	}

	return s.withToken(user)
}

func (s *AuthService) withToken(user model.User) (model.AuthResponse, error) {
	token, expiresAt, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return model.AuthResponse{}, errs.Internal("issue token", err)
	}
	return model.AuthResponse{
		User:      user,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
