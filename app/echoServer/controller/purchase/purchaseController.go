package purchase

import (
	"log/slog"
	"net/http"

	"vtunigeria/model"
	purchasesvc "vtunigeria/service/purchase"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc purchasesvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/purchases/airtime
// @Summary Buy airtime
// @Success 201 {object} map[string]any
// @Failure 400,401,402,500
func (h *Controller) Airtime(c echo.Context) error {
	var req model.AirtimeReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := h.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	}
	userID := c.Get("user_id").(int64)
	o, err := h.Svc.BuyAirtime(c.Request().Context(), userID, req)
	if err != nil {
		return h.fail(c, "airtime", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "purchase successful", "order": o})
}

// POST /v1/purchases/data
func (h *Controller) Data(c echo.Context) error {
	var req model.DataReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := h.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	}
	userID := c.Get("user_id").(int64)
	o, err := h.Svc.BuyData(c.Request().Context(), userID, req)
	if err != nil {
		return h.fail(c, "data", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "purchase successful", "order": o})
}

// POST /v1/purchases/tv
func (h *Controller) TV(c echo.Context) error {
	var req model.TVReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := h.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	}
	userID := c.Get("user_id").(int64)
	o, err := h.Svc.PayTV(c.Request().Context(), userID, req)
	if err != nil {
		return h.fail(c, "tv", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "subscription successful", "order": o})
}

// POST /v1/purchases/electricity
func (h *Controller) Electricity(c echo.Context) error {
	var req model.ElectricityReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := h.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	}
	userID := c.Get("user_id").(int64)
	o, err := h.Svc.PayElectricity(c.Request().Context(), userID, req)
	if err != nil {
		return h.fail(c, "electricity", err)
	}
	// o.Token carries the prepaid meter token when applicable.
	return c.JSON(http.StatusCreated, echo.Map{"message": "payment successful", "order": o})
}

// POST /v1/purchases/education
func (h *Controller) Education(c echo.Context) error {
	var req model.EducationReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := h.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	}
	userID := c.Get("user_id").(int64)
	o, err := h.Svc.BuyExamPin(c.Request().Context(), userID, req)
	if err != nil {
		return h.fail(c, "education", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "purchase successful", "order": o})
}

// POST /v1/validate/smartcard
func (h *Controller) ValidateSmartCard(c echo.Context) error {
	var req model.ValidateCustomerReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := h.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	}
	info, err := h.Svc.ValidateSmartCard(c.Request().Context(), req.Provider, req.Account)
	if err != nil {
		return h.fail(c, "validate smartcard", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"customer": info})
}

// POST /v1/validate/meter
func (h *Controller) ValidateMeter(c echo.Context) error {
	var req model.ValidateCustomerReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := h.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	}
	info, err := h.Svc.ValidateMeter(c.Request().Context(), req.Provider, req.Account)
	if err != nil {
		return h.fail(c, "validate meter", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"customer": info})
}

// GET /v1/orders
func (h *Controller) Orders(c echo.Context) error {
	userID := c.Get("user_id").(int64)
	rows, err := h.Svc.History(c.Request().Context(), userID)
	if err != nil {
		h.Log.Error("Orders failed", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

func (h *Controller) fail(c echo.Context, op string, err error) error {
	switch purchasesvc.Code(err) {
	case purchasesvc.ErrInvalidAmount:
		return echo.NewHTTPError(http.StatusBadRequest, "invalid amount")
	case purchasesvc.ErrUnknownNetwork, purchasesvc.ErrUnknownProvider, purchasesvc.ErrPlanNotFound:
		return echo.NewHTTPError(http.StatusNotFound, "unknown provider or plan")
	case purchasesvc.ErrInsufficientBalance:
		return echo.NewHTTPError(http.StatusPaymentRequired, "insufficient balance")
	case purchasesvc.ErrProviderFailed:
		h.Log.Error("provider delivery failed", "op", op, "err", err)
		return echo.NewHTTPError(http.StatusBadGateway, "provider unavailable")
	default:
		rid := c.Response().Header().Get(echo.HeaderXRequestID)
		h.Log.Error("purchase failed", "op", op, "err", err, "req_id", rid)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
