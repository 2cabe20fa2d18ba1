package model

import (
	"strings"
	"time"
)

type State string

const (
	StateAvailable State = "AVAILABLE"
	StateReserved  State = "RESERVED"
)

func (s State) Valid() bool {
	return s == StateAvailable || s == StateReserved
}

type Book struct {
	ID              string    `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	Author          string    `json:"author" db:"author"`
	PublicationYear int       `json:"publicationYear" db:"publication_year"`
	State           State     `json:"state" db:"state"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

// BookSummary is the reduced projection served by the recent-books listing.
type BookSummary struct {
	ID              string    `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	Author          string    `json:"author" db:"author"`
	PublicationYear int       `json:"publicationYear" db:"publication_year"`
	State           State     `json:"state" db:"state"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}

type CreateBookRequest struct {
	Title           string `json:"title" validate:"required,min=1,max=200"`
	Author          string `json:"author" validate:"required,min=1,max=100"`
	PublicationYear int    `json:"publicationYear" validate:"required,min=1000,currentyear"`
	State           State  `json:"state" validate:"omitempty,oneof=AVAILABLE RESERVED"`
}

func (r *CreateBookRequest) Sanitize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Author = strings.TrimSpace(r.Author)
}

type UpdateBookRequest struct {
	Title           *string `json:"title" validate:"omitempty,min=1,max=200"`
	Author          *string `json:"author" validate:"omitempty,min=1,max=100"`
	PublicationYear *int    `json:"publicationYear" validate:"omitempty,min=1000,currentyear"`
	State           *State  `json:"state" validate:"omitempty,oneof=AVAILABLE RESERVED"`
}

func (r *UpdateBookRequest) Sanitize() {
	if r.Title != nil {
		*r.Title = strings.TrimSpace(*r.Title)
	}
	if r.Author != nil {
		*r.Author = strings.TrimSpace(*r.Author)
	}
}

// Empty reports whether the partial update carries no fields at all.
func (r *UpdateBookRequest) Empty() bool {
	return r.Title == nil && r.Author == nil && r.PublicationYear == nil && r.State == nil
}

type ChangeStateRequest struct {
	State State `json:"state" validate:"required,oneof=AVAILABLE RESERVED"`
}

// BookFilter narrows a listing; zero value means list everything.
type BookFilter struct {
	State  *State
	Author string
}

type User struct {
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (r *RegisterRequest) Sanitize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Sanitize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type AuthResponse struct {
	User      User      `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Response is the success envelope every endpoint renders.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}
