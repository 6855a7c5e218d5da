package payment

import (
	"io"
	"log/slog"
	"net/http"

	paymentsvc "vtunigeria/service/payment"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc paymentsvc.Service
	Log *slog.Logger
}

func (h *Controller) HandlePaystack(c echo.Context) error {
	sig := c.Request().Header.Get("x-paystack-signature")
	raw, _ := io.ReadAll(c.Request().Body)

	if err := h.Svc.HandlePaystack(c.Request().Context(), sig, raw); err != nil {
		h.Log.Error("payment webhook error", "err", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "webhook rejected"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "ok"})
}
