package flight

import (
	"log/slog"
	"net/http"

	"vtunigeria/model"
	flightsvc "vtunigeria/service/flight"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc flightsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// GET /v1/flights/cities
func (h *Controller) Cities(c echo.Context) error {
	out, err := h.Svc.Cities(c.Request().Context())
	if err != nil {
		h.Log.Error("Cities failed", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

// POST /v1/flights/search
func (h *Controller) Search(c echo.Context) error {
	var req model.FlightSearchReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := h.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	}

	rows, err := h.Svc.Search(c.Request().Context(), req)
	if err != nil {
		switch flightsvc.Code(err) {
		case flightsvc.ErrSameCity:
			return echo.NewHTTPError(http.StatusBadRequest, "origin and destination must differ")
		case flightsvc.ErrUnknownCity:
			return echo.NewHTTPError(http.StatusNotFound, "unknown city")
		default:
			h.Log.Error("Search failed", "err", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// POST /v1/flights/book
func (h *Controller) Book(c echo.Context) error {
	var req model.FlightBookReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := h.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	}

	userID := c.Get("user_id").(int64)
	o, err := h.Svc.Book(c.Request().Context(), userID, req)
	if err != nil {
		switch flightsvc.Code(err) {
		case flightsvc.ErrFlightNotFound:
			return echo.NewHTTPError(http.StatusNotFound, "flight not found")
		case flightsvc.ErrInsufficientBalance:
			return echo.NewHTTPError(http.StatusPaymentRequired, "insufficient balance")
		default:
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			h.Log.Error("Book failed", "err", err, "req_id", rid)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "booking confirmed", "order": o})
}
