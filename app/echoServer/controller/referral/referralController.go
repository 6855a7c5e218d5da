package referral

import (
	"log/slog"
	"net/http"

	referralsvc "vtunigeria/service/referral"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc referralsvc.Service
	Log *slog.Logger
}

// GET /v1/referrals
func (h *Controller) Overview(c echo.Context) error {
	userID := c.Get("user_id").(int64)
	out, err := h.Svc.Overview(c.Request().Context(), userID)
	if err != nil {
		if err == referralsvc.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		h.Log.Error("Overview failed", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, out)
}
