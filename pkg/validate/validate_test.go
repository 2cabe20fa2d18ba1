package validate_test

import (
	"testing"
	"time"

	"github.com/asanbekov/book-catalog/pkg/validate"
	"github.com/stretchr/testify/require"
)

// payload structs local to the test: the validator is schema-generic, it
// only sees the tags.
type createBookPayload struct {
	Title           string `json:"title" validate:"required,min=1,max=200"`
	Author          string `json:"author" validate:"required,min=1,max=100"`
	PublicationYear int    `json:"publicationYear" validate:"required,min=1000,currentyear"`
	State           string `json:"state" validate:"omitempty,oneof=AVAILABLE RESERVED"`
}

type updateBookPayload struct {
	Title           *string `json:"title" validate:"omitempty,min=1,max=200"`
	Author          *string `json:"author" validate:"omitempty,min=1,max=100"`
	PublicationYear *int    `json:"publicationYear" validate:"omitempty,min=1000,currentyear"`
}

type registerPayload struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func violatedFields(t *testing.T, err error) []string {
	t.Helper()
	require.Error(t, err)
	violations, ok := err.(*validate.Violations)
	require.True(t, ok, "expected *validate.Violations, got %T", err)
	fields := make([]string, 0, len(violations.Items))
	for _, v := range violations.Items {
		fields = append(fields, v.Field)
	}
	return fields
}

func TestCustomValidator_CreateBook(t *testing.T) {
	t.Parallel()
	cv := validate.NewCustomValidator()

	t.Run("valid payload passes", func(t *testing.T) {
		require.NoError(t, cv.Validate(&createBookPayload{
			Title:           "Ficciones",
			Author:          "Jorge Luis Borges",
			PublicationYear: 1944,
		}))
	})

	t.Run("current year is allowed", func(t *testing.T) {
		require.NoError(t, cv.Validate(&createBookPayload{
			Title:           "New Release",
			Author:          "Somebody",
			PublicationYear: time.Now().Year(),
		}))
	})

	t.Run("all broken rules are reported at once", func(t *testing.T) {
		err := cv.Validate(&createBookPayload{
			Title:           "",
			Author:          "",
			PublicationYear: 999,
		})
		require.Equal(t, []string{"title", "author", "publicationYear"}, violatedFields(t, err))
	})

	t.Run("future year is rejected", func(t *testing.T) {
		err := cv.Validate(&createBookPayload{
			Title:           "Ficciones",
			Author:          "Jorge Luis Borges",
			PublicationYear: 3000,
		})
		require.Equal(t, []string{"publicationYear"}, violatedFields(t, err))
	})

	t.Run("unknown state is rejected", func(t *testing.T) {
		err := cv.Validate(&createBookPayload{
			Title:           "Ficciones",
			Author:          "Jorge Luis Borges",
			PublicationYear: 1944,
			State:           "LOST",
		})
		require.Equal(t, []string{"state"}, violatedFields(t, err))
	})
}

func TestCustomValidator_UpdateBook(t *testing.T) {
	t.Parallel()
	cv := validate.NewCustomValidator()

	t.Run("absent fields are skipped", func(t *testing.T) {
		title := "Ficciones"
		require.NoError(t, cv.Validate(&updateBookPayload{Title: &title}))
	})

	t.Run("empty string behind a pointer is rejected", func(t *testing.T) {
		title := ""
		err := cv.Validate(&updateBookPayload{Title: &title})
		require.Equal(t, []string{"title"}, violatedFields(t, err))
		violations := err.(*validate.Violations)
		require.Equal(t, "title must be at least 1 characters", violations.Items[0].Message)
	})

	t.Run("present fields are still validated", func(t *testing.T) {
		year := 999
		err := cv.Validate(&updateBookPayload{PublicationYear: &year})
		require.Equal(t, []string{"publicationYear"}, violatedFields(t, err))
	})
}

func TestCustomValidator_Register(t *testing.T) {
	t.Parallel()
	cv := validate.NewCustomValidator()

	err := cv.Validate(&registerPayload{
		Username: "ab",
		Email:    "not-an-email",
		Password: "123",
	})
	require.Equal(t, []string{"username", "email", "password"}, violatedFields(t, err))

	require.NoError(t, cv.Validate(&registerPayload{
		Username: "prueba",
		Email:    "admin@libros.com",
		Password: "admin1234",
	}))
}
