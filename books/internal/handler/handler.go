package handler

import (
	"net/http"
	"strconv"

	"github.com/asanbekov/book-catalog/books/internal/errs"
	"github.com/asanbekov/book-catalog/books/internal/model"
	"github.com/asanbekov/book-catalog/pkg/auth"
	md "github.com/asanbekov/book-catalog/pkg/middleware"
	"github.com/asanbekov/book-catalog/pkg/validate"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Handler struct {
	books  BookService
	auth   AuthService
	tokens *auth.TokenManager
	log    *zap.Logger
	debug  bool
}

func New(books BookService, authSvc AuthService, tokens *auth.TokenManager, log *zap.Logger, debug bool) *Handler {
	return &Handler{
		books:  books,
		auth:   authSvc,
		tokens: tokens,
		log:    log,
		debug:  debug,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))
	e.HTTPErrorHandler = errs.NewHTTPErrorHandler(h.log, h.debug)
	e.Validator = validate.NewCustomValidator()

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)

	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig()),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)

	api.GET("/books", h.ListBooks)
	api.GET("/books/available", h.AvailableBooks)
	api.GET("/books/reserved", h.ReservedBooks)
	api.GET("/books/recent", h.RecentBooks)
	api.GET("/books/author/:author", h.BooksByAuthor)
	api.GET("/books/:id", h.GetBook)

	protected := api.Group("", md.JwtAuthentication(h.tokens))
	protected.POST("/books", h.CreateBook)
	protected.PUT("/books/:id", h.UpdateBook)
	protected.DELETE("/books/:id", h.DeleteBook)
	protected.PATCH("/books/:id/state", h.ChangeBookState)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) ListBooks(c echo.Context) error {
	var filter model.BookFilter
	if stateParam := c.QueryParam("state"); stateParam != "" {
		state := model.State(stateParam)
		if !state.Valid() {
			return errs.Validation("invalid state filter",
				errs.FieldViolation{Field: "state", Message: "state must be one of: AVAILABLE, RESERVED"})
		}
		filter.State = &state
	}
	filter.Author = c.QueryParam("author")

	books, err := h.books.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, model.Response{Success: true, Message: "books retrieved", Data: books})
}

func (h *Handler) AvailableBooks(c echo.Context) error {
	return h.listByState(c, model.StateAvailable)
}

func (h *Handler) ReservedBooks(c echo.Context) error {
	return h.listByState(c, model.StateReserved)
}

func (h *Handler) listByState(c echo.Context, state model.State) error {
	books, err := h.books.List(c.Request().Context(), model.BookFilter{State: &state})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, model.Response{Success: true, Message: "books retrieved", Data: books})
}

func (h *Handler) RecentBooks(c echo.Context) error {
	var limit int
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		var err error
		if limit, err = strconv.Atoi(limitParam); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.New("limit is invalid"))
		}
	}
	books, err := h.books.Recent(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, model.Response{Success: true, Message: "books retrieved", Data: books})
}

func (h *Handler) BooksByAuthor(c echo.Context) error {
	author := c.Param("author")
	if author == "" {
		return echo.NewHTTPError(http.StatusBadRequest, errors.New("author is required"))
	}
	books, err := h.books.List(c.Request().Context(), model.BookFilter{Author: author})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, model.Response{Success: true, Message: "books retrieved", Data: books})
}

func (h *Handler) GetBook(c echo.Context) error {
	book, err := h.books.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, model.Response{Success: true, Data: book})
}

func (h *Handler) CreateBook(c echo.Context) error {
	var req model.CreateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	req.Sanitize()
	if err := c.Validate(&req); err != nil {
		return errs.FromValidation(err)
	}

	book, err := h.books.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, model.Response{Success: true, Message: "book created", Data: book})
}

func (h *Handler) UpdateBook(c echo.Context) error {
	var req model.UpdateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	req.Sanitize()
	if err := c.Validate(&req); err != nil {
		return errs.FromValidation(err)
	}

	book, err := h.books.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, model.Response{Success: true, Message: "book updated", Data: book})
}

func (h *Handler) DeleteBook(c echo.Context) error {
	book, err := h.books.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, model.Response{Success: true, Message: "book deleted", Data: book})
}

func (h *Handler) ChangeBookState(c echo.Context) error {
	var req model.ChangeStateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return errs.FromValidation(err)
	}

	book, err := h.books.ChangeState(c.Request().Context(), c.Param("id"), req.State)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, model.Response{Success: true, Message: "book updated", Data: book})
}
