package moleculardata

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/portal/portal/pkg/projection"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/molecular-profiles/:molecularProfileId/molecular-data/fetch", h.FetchMolecularData)
}

type molecularDataFilter struct {
	SampleIDs     []string `json:"sampleIds"`
	SampleListID  string   `json:"sampleListId"`
	EntrezGeneIDs []int    `json:"entrezGeneIds"`
}

func (h *Handler) FetchMolecularData(c echo.Context) error {
	proj, err := projection.Parse(c.QueryParam("projection"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	var req molecularDataFilter
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if (req.SampleListID == "") == (req.SampleIDs == nil) {
		return echo.NewHTTPError(http.StatusBadRequest, "exactly one of sampleIds or sampleListId is required")
	}
	if len(req.EntrezGeneIDs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "entrezGeneIds is required")
	}

	ctx := c.Request().Context()
	profileID := c.Param("molecularProfileId")
	var data []*GeneMolecularData
	if req.SampleListID != "" {
		data, err = h.svc.GetMolecularData(ctx, profileID, req.SampleListID, req.EntrezGeneIDs, proj)
	} else {
		data, err = h.svc.FetchMolecularData(ctx, profileID, req.SampleIDs, req.EntrezGeneIDs, proj)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, data)
}
