package errs_test

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/asanbekov/book-catalog/books/internal/errs"
	"github.com/asanbekov/book-catalog/pkg/validate"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		err       error
		wantKind  errs.Kind
		wantField string
	}{
		{
			name:     "no rows becomes not found",
			err:      sql.ErrNoRows,
			wantKind: errs.KindNotFound,
		},
		{
			name:      "unique violation becomes duplicate with the colliding field",
			err:       &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"},
			wantKind:  errs.KindDuplicate,
			wantField: "email",
		},
		{
			name:     "check violation becomes validation",
			err:      &pgconn.PgError{Code: pgerrcode.CheckViolation, ConstraintName: "books_publication_year_check"},
			wantKind: errs.KindValidation,
		},
		{
			name:     "connection fault becomes internal",
			err:      &pgconn.PgError{Code: pgerrcode.ConnectionFailure},
			wantKind: errs.KindInternal,
		},
		{
			name:     "unknown fault becomes internal",
			err:      errors.New("boom"),
			wantKind: errs.KindInternal,
		},
		{
			name:     "already classified passes through",
			err:      errs.Authentication("invalid credentials"),
			wantKind: errs.KindAuthentication,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := errs.Classify(tt.err, "op")
			var appErr *errs.Error
			require.ErrorAs(t, got, &appErr)
			require.Equal(t, tt.wantKind, appErr.Kind)
			if tt.wantField != "" {
				require.Equal(t, tt.wantField, appErr.Field)
			}
		})
	}
}

func TestClassify_WrapsCause(t *testing.T) {
	t.Parallel()
	cause := errors.New("tcp reset")
	got := errs.Classify(cause, "list books")

	var appErr *errs.Error
	require.ErrorAs(t, got, &appErr)
	require.Equal(t, errs.KindInternal, appErr.Kind)
	require.ErrorIs(t, got, cause)
	// the client-facing message never carries driver detail
	require.NotContains(t, appErr.Message, "tcp reset")
}

func TestFromValidation(t *testing.T) {
	t.Parallel()
	err := errs.FromValidation(&validate.Violations{Items: []validate.Violation{
		{Field: "title", Message: "title is required"},
		{Field: "publicationYear", Message: "publicationYear must be at least 1000"},
	}})

	var appErr *errs.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, errs.KindValidation, appErr.Kind)
	require.Len(t, appErr.Violations, 2)
	require.Equal(t, "title", appErr.Violations[0].Field)
}

func TestHTTPErrorHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		err          error
		debug        bool
		expectedCode int
		expectedBody string
	}{
		{
			name:         "not found",
			err:          errs.NotFound("book not found"),
			expectedCode: http.StatusNotFound,
			expectedBody: `{"success":false,"message":"book not found","errorType":"NOT_FOUND_ERROR"}`,
		},
		{
			name:         "duplicate carries the field",
			err:          errs.AlreadyExists("email", "email already in use"),
			expectedCode: http.StatusConflict,
			expectedBody: `{"success":false,"message":"email already in use","errorType":"DUPLICATE_ERROR","details":{"field":"email"}}`,
		},
		{
			name:         "authorization",
			err:          errs.Authorization("insufficient permissions"),
			expectedCode: http.StatusForbidden,
			expectedBody: `{"success":false,"message":"insufficient permissions","errorType":"AUTHORIZATION_ERROR"}`,
		},
		{
			name:         "internal hides the cause in production",
			err:          errs.Internal("list books failed", errors.New("tcp reset")),
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"success":false,"message":"list books failed","errorType":"INTERNAL_SERVER_ERROR"}`,
		},
		{
			name:         "internal shows the cause in debug",
			err:          errs.Internal("list books failed", errors.New("tcp reset")),
			debug:        true,
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"success":false,"message":"list books failed","errorType":"INTERNAL_SERVER_ERROR","debug":"tcp reset"}`,
		},
		{
			name:         "echo http error is normalized",
			err:          echo.NewHTTPError(http.StatusUnauthorized, "no authorization header"),
			expectedCode: http.StatusUnauthorized,
			expectedBody: `{"success":false,"message":"no authorization header","errorType":"AUTHENTICATION_ERROR"}`,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := echo.New()
			e.HTTPErrorHandler = errs.NewHTTPErrorHandler(zap.NewExample().Named("test"), tt.debug)
			e.GET("/fail", func(echo.Context) error { return tt.err })

			r := httptest.NewRequest(http.MethodGet, "/fail", http.NoBody)
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.expectedCode, w.Code)
			require.Equal(t, tt.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}
