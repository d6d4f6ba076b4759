package admin

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Washington-NKE/Bookvault/model"
	accountsvc "github.com/Washington-NKE/Bookvault/service/account"
	"github.com/Washington-NKE/Bookvault/service/circulation"
	viewsvc "github.com/Washington-NKE/Bookvault/service/view"
)

type Controller struct {
	Accounts accountsvc.Service
	Circ     circulation.Service
	View     viewsvc.Service
	V        *validator.Validate
	Log      *slog.Logger
}

func isAdmin(c echo.Context) bool {
	role, _ := c.Get("role").(string)
	return role == string(model.RoleAdmin)
}

// GET /v1/admin/registrations
func (h *Controller) PendingRegistrations(c echo.Context) error {
	if !isAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	rows, err := h.Accounts.PendingRegistrations(c.Request().Context())
	if err != nil {
		h.Log.Error("pending registrations", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// POST /v1/admin/users/:id/approve
func (h *Controller) ApproveUser(c echo.Context) error {
	return h.setUserStatus(c, h.Accounts.Approve, "approved")
}

// POST /v1/admin/users/:id/reject
func (h *Controller) RejectUser(c echo.Context) error {
	return h.setUserStatus(c, h.Accounts.Reject, "rejected")
}

func (h *Controller) setUserStatus(c echo.Context, fn func(ctx context.Context, userID string) error, verb string) error {
	if !isAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := fn(c.Request().Context(), id); err != nil {
		if errors.Is(err, accountsvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
		}
		h.Log.Error("set user status", "err", err, "user_id", id)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": verb})
}

// GET /v1/admin/borrows/requests
func (h *Controller) PendingRequests(c echo.Context) error {
	if !isAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	rows, err := h.View.PendingRequests(c.Request().Context())
	if err != nil {
		h.Log.Error("pending borrow requests", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// POST /v1/admin/borrows/:id/status
func (h *Controller) SetBorrowStatus(c echo.Context) error {
	if !isAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req SetBorrowStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	rec, err := h.Circ.AdminSetStatus(c.Request().Context(), id, model.BorrowStatus(req.Status))
	if err != nil {
		switch circulation.Code(err) {
		case circulation.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "borrow record not found"})
		case circulation.ErrInvalidTransition:
			return c.JSON(http.StatusConflict, echo.Map{"message": "invalid status change"})
		case circulation.ErrOutOfStock:
			return c.JSON(http.StatusConflict, echo.Map{"message": "no copies available"})
		case circulation.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"message": "conflict, please retry"})
		default:
			h.Log.Error("set borrow status", "err", err, "record_id", id)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, rec)
}

// GET /v1/admin/stats
func (h *Controller) Stats(c echo.Context) error {
	if !isAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	stats, err := h.View.DashboardStats(c.Request().Context())
	if err != nil {
		h.Log.Error("dashboard stats", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, stats)
}
