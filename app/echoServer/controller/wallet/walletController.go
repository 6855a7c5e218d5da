package wallet

import (
	"context"
	"log/slog"
	"net/http"

	"vtunigeria/model"
	walletsvc "vtunigeria/service/wallet"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Users resolves the funding email for the gateway checkout page.
type Users interface {
	Me(ctx context.Context, userID int64) (*model.User, error)
}

type Controller struct {
	Svc   walletsvc.Service
	Users Users
	V     *validator.Validate
	Log   *slog.Logger
}

// POST /v1/wallet/fund
// @Summary Create a wallet funding checkout (Paystack)
// @Success 201 {object} map[string]any
// @Failure 400,401,500
func (h *Controller) Fund(c echo.Context) error {
	var req model.FundReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  map[string]string{"amount": "required, minimum 100"},
		})
	}

	userID := c.Get("user_id").(int64)
	u, err := h.Users.Me(c.Request().Context(), userID)
	if err != nil {
		h.Log.Error("Fund user lookup failed", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}

	res, err := h.Svc.CreateTopup(c.Request().Context(), userID, u.Email, req.Amount)
	if err != nil {
		if err == walletsvc.ErrInvalidAmount {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "minimum funding is 100"})
		}
		h.Log.Error("Fund failed", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"reference":    res.Reference,
		"payment_link": res.PaymentLink,
		"expires_at":   res.ExpiresAt,
	})
}

// GET /v1/wallet
func (h *Controller) Balance(c echo.Context) error {
	userID := c.Get("user_id").(int64)
	bal, err := h.Svc.Balance(c.Request().Context(), userID)
	if err != nil {
		h.Log.Error("Balance failed", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"balance": bal})
}

// GET /v1/wallet/transactions
func (h *Controller) Transactions(c echo.Context) error {
	userID := c.Get("user_id").(int64)
	rows, err := h.Svc.Ledger(c.Request().Context(), userID)
	if err != nil {
		h.Log.Error("Transactions failed", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
