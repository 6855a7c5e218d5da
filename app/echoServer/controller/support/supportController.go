package support

import (
	"context"
	"log/slog"
	"net/http"

	"vtunigeria/model"
	supportsvc "vtunigeria/service/support"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Users interface {
	Me(ctx context.Context, userID int64) (*model.User, error)
}

type Controller struct {
	Svc   supportsvc.Service
	Users Users
	V     *validator.Validate
	Log   *slog.Logger
}

// POST /v1/support
func (h *Controller) Submit(c echo.Context) error {
	var req model.SupportReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := h.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	}

	userID := c.Get("user_id").(int64)
	u, err := h.Users.Me(c.Request().Context(), userID)
	if err != nil {
		h.Log.Error("Submit user lookup failed", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	t, err := h.Svc.Submit(c.Request().Context(), userID, u.Email, req)
	if err != nil {
		h.Log.Error("Submit failed", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "ticket created", "ticket": t})
}

// GET /v1/support
func (h *Controller) History(c echo.Context) error {
	userID := c.Get("user_id").(int64)
	rows, err := h.Svc.History(c.Request().Context(), userID)
	if err != nil {
		h.Log.Error("History failed", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
