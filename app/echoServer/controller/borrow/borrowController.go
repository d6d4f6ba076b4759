package borrow

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Washington-NKE/Bookvault/service/circulation"
	viewsvc "github.com/Washington-NKE/Bookvault/service/view"
)

type Controller struct {
	Svc  circulation.Service
	View viewsvc.Service
	V    *validator.Validate
	Log  *slog.Logger
}

func httpStatus(code circulation.ErrCode) (int, string) {
	switch code {
	case circulation.ErrNotEligible:
		return http.StatusForbidden, "account not approved for borrowing"
	case circulation.ErrOutOfStock:
		return http.StatusConflict, "no copies available"
	case circulation.ErrDuplicateLoan:
		return http.StatusConflict, "you already hold this book"
	case circulation.ErrNotFound:
		return http.StatusNotFound, "not found"
	case circulation.ErrInvalidTransition:
		return http.StatusConflict, "invalid status change"
	case circulation.ErrConflict:
		return http.StatusConflict, "conflict, please retry"
	}
	return http.StatusInternalServerError, "internal error"
}

// POST /v1/borrows/checkout
func (h *Controller) Checkout(c echo.Context) error {
	var req BorrowReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	uid, _ := c.Get("user_id").(string)

	rec, err := h.Svc.Checkout(c.Request().Context(), uid, req.BookID)
	if err != nil {
		if code := circulation.Code(err); code != "" {
			status, msg := httpStatus(code)
			return c.JSON(status, echo.Map{"message": msg, "code": code})
		}
		h.Log.Error("checkout", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, rec)
}

// POST /v1/borrows/request
func (h *Controller) Request(c echo.Context) error {
	var req BorrowReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	uid, _ := c.Get("user_id").(string)

	rec, err := h.Svc.RequestBorrow(c.Request().Context(), uid, req.BookID)
	if err != nil {
		if code := circulation.Code(err); code != "" {
			status, msg := httpStatus(code)
			return c.JSON(status, echo.Map{"message": msg, "code": code})
		}
		h.Log.Error("borrow request", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, rec)
}

// POST /v1/borrows/:id/return
func (h *Controller) Return(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	rec, err := h.Svc.MarkReturned(c.Request().Context(), id)
	if err != nil {
		if code := circulation.Code(err); code != "" {
			status, msg := httpStatus(code)
			return c.JSON(status, echo.Map{"message": msg, "code": code})
		}
		h.Log.Error("return", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, rec)
}

// GET /v1/borrows/my
func (h *Controller) My(c echo.Context) error {
	uid, _ := c.Get("user_id").(string)
	rows, err := h.View.BorrowedBooks(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("borrow history", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/borrows/:id/receipt
func (h *Controller) Receipt(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	rcpt, err := h.View.Receipt(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, viewsvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "receipt not found"})
		}
		h.Log.Error("receipt", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, rcpt)
}
