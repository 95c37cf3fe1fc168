package copynumber

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/portal/portal/internal/domain/molecularprofile"
	"github.com/portal/portal/pkg/projection"
)

const HeaderTotalCount = "X-Total-Count"

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/molecular-profiles/:molecularProfileId/discrete-copy-number", h.GetDiscreteCopyNumbers)
	api.POST("/molecular-profiles/:molecularProfileId/discrete-copy-number/fetch", h.FetchDiscreteCopyNumbers)
}

type discreteCopyNumberFilter struct {
	SampleListID  string   `json:"sampleListId"`
	SampleIDs     []string `json:"sampleIds"`
	EntrezGeneIDs []int    `json:"entrezGeneIds"`
}

func (h *Handler) GetDiscreteCopyNumbers(c echo.Context) error {
	sampleListID := c.QueryParam("sampleListId")
	if sampleListID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "sampleListId is required")
	}
	eventType, proj, err := parseQuery(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	profileID := c.Param("molecularProfileId")
	if proj == projection.Meta {
		meta, err := h.svc.GetMetaDiscreteCopyNumbersInMolecularProfileBySampleListID(ctx, profileID, sampleListID, nil, eventType.Alterations())
		if err != nil {
			return mapError(err)
		}
		return writeMeta(c, meta)
	}
	data, err := h.svc.GetDiscreteCopyNumbersInMolecularProfileBySampleListID(ctx, profileID, sampleListID, nil, eventType.Alterations(), proj)
	if err != nil {
		return mapError(err)
	}
	return writeData(c, data)
}

func (h *Handler) FetchDiscreteCopyNumbers(c echo.Context) error {
	eventType, proj, err := parseQuery(c)
	if err != nil {
		return err
	}
	var req discreteCopyNumberFilter
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if (req.SampleListID == "") == (req.SampleIDs == nil) {
		return echo.NewHTTPError(http.StatusBadRequest, "exactly one of sampleIds or sampleListId is required")
	}

	ctx := c.Request().Context()
	profileID := c.Param("molecularProfileId")
	alterations := eventType.Alterations()
	if proj == projection.Meta {
		var meta *BaseMeta
		if req.SampleListID != "" {
			meta, err = h.svc.GetMetaDiscreteCopyNumbersInMolecularProfileBySampleListID(ctx, profileID, req.SampleListID, req.EntrezGeneIDs, alterations)
		} else {
			meta, err = h.svc.FetchMetaDiscreteCopyNumbersInMolecularProfile(ctx, profileID, req.SampleIDs, req.EntrezGeneIDs, alterations)
		}
		if err != nil {
			return mapError(err)
		}
		return writeMeta(c, meta)
	}

	var data []*DiscreteCopyNumberData
	if req.SampleListID != "" {
		data, err = h.svc.GetDiscreteCopyNumbersInMolecularProfileBySampleListID(ctx, profileID, req.SampleListID, req.EntrezGeneIDs, alterations, proj)
	} else {
		data, err = h.svc.FetchDiscreteCopyNumbersInMolecularProfile(ctx, profileID, req.SampleIDs, req.EntrezGeneIDs, alterations, proj)
	}
	if err != nil {
		return mapError(err)
	}
	return writeData(c, data)
}

func parseQuery(c echo.Context) (DiscreteCopyNumberEventType, projection.Projection, error) {
	eventType, err := ParseEventType(c.QueryParam("discreteCopyNumberEventType"))
	if err != nil {
		return "", "", echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	proj, err := projection.Parse(c.QueryParam("projection"))
	if err != nil {
		return "", "", echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return eventType, proj, nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, molecularprofile.ErrMolecularProfileNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrMolecularProfileNotAllowed):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func writeMeta(c echo.Context, meta *BaseMeta) error {
	c.Response().Header().Set(HeaderTotalCount, strconv.Itoa(meta.TotalCount))
	return c.NoContent(http.StatusOK)
}

func writeData(c echo.Context, data []*DiscreteCopyNumberData) error {
	if data == nil {
		data = []*DiscreteCopyNumberData{}
	}
	return c.JSON(http.StatusOK, data)
}
