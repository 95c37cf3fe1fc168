package molecularprofile

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/portal/portal/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/molecular-profiles", h.ListMolecularProfiles)
	api.GET("/molecular-profiles/:molecularProfileId", h.GetMolecularProfile)
}

func (h *Handler) GetMolecularProfile(c echo.Context) error {
	m, err := h.svc.GetMolecularProfile(c.Request().Context(), c.Param("molecularProfileId"))
	if errors.Is(err, ErrMolecularProfileNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, m)
}

func (h *Handler) ListMolecularProfiles(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListMolecularProfiles(c.Request().Context(), c.QueryParam("studyId"), pg.Limit(), pg.Offset())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []*MolecularProfile{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg))
}
