package admin

import (
	"log/slog"
	"net/http"
	"strconv"

	"vtunigeria/model"
	adminsvc "vtunigeria/service/admin"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc adminsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// GET /v1/admin/dashboard
func (h *Controller) Dashboard(c echo.Context) error {
	out, err := h.Svc.Dashboard(c.Request().Context())
	if err != nil {
		h.Log.Error("Dashboard failed", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, out)
}

// GET /v1/admin/transactions?limit=50
func (h *Controller) Transactions(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	rows, err := h.Svc.Transactions(c.Request().Context(), limit)
	if err != nil {
		h.Log.Error("Transactions failed", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// PATCH /v1/admin/users/:id/status
func (h *Controller) SetUserStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	var req model.SetUserStatusReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := h.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	}

	if err := h.Svc.SetUserStatus(c.Request().Context(), id, req.Status); err != nil {
		h.Log.Error("SetUserStatus failed", "err", err, "user_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "status updated"})
}
