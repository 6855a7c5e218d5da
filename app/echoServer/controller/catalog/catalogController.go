package catalog

import (
	"log/slog"
	"net/http"

	catalogrepo "vtunigeria/repository/catalog"

	"github.com/labstack/echo/v4"
)

// Controller serves the read-only service catalogs the purchase screens are
// built from. No service layer in between: these are plain lookups.
type Controller struct {
	Repo catalogrepo.Repo
	Log  *slog.Logger
}

// GET /v1/networks
func (h *Controller) Networks(c echo.Context) error {
	out, err := h.Repo.Networks(c.Request().Context())
	if err != nil {
		h.Log.Error("Networks failed", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

// GET /v1/networks/:id/plans
func (h *Controller) DataPlans(c echo.Context) error {
	out, err := h.Repo.DataPlans(c.Request().Context(), c.Param("id"))
	if err != nil {
		h.Log.Error("DataPlans failed", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

// GET /v1/tv/providers
func (h *Controller) TVProviders(c echo.Context) error {
	out, err := h.Repo.TVProviders(c.Request().Context())
	if err != nil {
		h.Log.Error("TVProviders failed", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

// GET /v1/tv/providers/:id/plans
func (h *Controller) TVPlans(c echo.Context) error {
	out, err := h.Repo.TVPlans(c.Request().Context(), c.Param("id"))
	if err != nil {
		h.Log.Error("TVPlans failed", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

// GET /v1/discos
func (h *Controller) Discos(c echo.Context) error {
	out, err := h.Repo.Discos(c.Request().Context())
	if err != nil {
		h.Log.Error("Discos failed", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

// GET /v1/education/services
func (h *Controller) ExamServices(c echo.Context) error {
	out, err := h.Repo.ExamServices(c.Request().Context())
	if err != nil {
		h.Log.Error("ExamServices failed", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}
