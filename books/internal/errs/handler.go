package errs

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrorResponse is the normalized failure payload.
type ErrorResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	ErrorType Kind        `json:"errorType"`
	Details   interface{} `json:"details,omitempty"`
	Debug     string      `json:"debug,omitempty"`
}

type duplicateDetails struct {
	Field string `json:"field"`
}

type validationDetails struct {
	ValidationErrors []FieldViolation `json:"validationErrors"`
}

// NewHTTPErrorHandler is the single translation stage between typed
// failures and transport responses. With debug enabled the wrapped cause
// is attached to the payload; in production it stays in the logs only.
func NewHTTPErrorHandler(log *zap.Logger, debug bool) echo.HTTPErrorHandler {
	log = log.Named("errors")
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		resp := ErrorResponse{
			Success:   false,
			Message:   "internal server error",
			ErrorType: KindInternal,
		}

		var (
			appErr  *Error
			httpErr *echo.HTTPError
		)
		switch {
		case errors.As(err, &appErr):
			status = statusOf(appErr.Kind)
			resp.Message = appErr.Message
			resp.ErrorType = appErr.Kind
			switch {
			case len(appErr.Violations) > 0:
				resp.Details = validationDetails{ValidationErrors: appErr.Violations}
			case appErr.Field != "":
				resp.Details = duplicateDetails{Field: appErr.Field}
			}
			if debug && appErr.Unwrap() != nil {
				resp.Debug = appErr.Unwrap().Error()
			}
		case errors.As(err, &httpErr):
			status = httpErr.Code
			resp.Message = fmt.Sprintf("%v", httpErr.Message)
			resp.ErrorType = kindOf(status)
		default:
			if debug {
				resp.Debug = err.Error()
			}
		}

		if status >= http.StatusInternalServerError {
			log.Error("request failed", zap.Error(err), zap.String("path", c.Path()))
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, resp)
		}
		if err != nil {
			log.Error("write error response", zap.Error(err))
		}
	}
}

func statusOf(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindDuplicate:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func kindOf(status int) Kind {
	switch status {
	case http.StatusBadRequest:
		return KindValidation
	case http.StatusUnauthorized:
		return KindAuthentication
	case http.StatusForbidden:
		return KindAuthorization
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusConflict:
		return KindDuplicate
	default:
		return KindInternal
	}
}
