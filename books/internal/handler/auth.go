package handler

import (
	"net/http"

	"github.com/asanbekov/book-catalog/books/internal/errs"
	"github.com/asanbekov/book-catalog/books/internal/model"
	"github.com/labstack/echo/v4"
)

func (h *Handler) Register(c echo.Context) error {
	var req model.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	req.Sanitize()
	if err := c.Validate(&req); err != nil {
		return errs.FromValidation(err)
	}

	resp, err := h.auth.Register(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, model.Response{Success: true, Message: "user registered", Data: resp})
}

func (h *Handler) Login(c echo.Context) error {
	var req model.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	req.Sanitize()
	if err := c.Validate(&req); err != nil {
		return errs.FromValidation(err)
	}

	resp, err := h.auth.Login(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, model.Response{Success: true, Message: "login successful", Data: resp})
}
