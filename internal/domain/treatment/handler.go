package treatment

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc    *Service
	filter *SampleFilter
}

func NewHandler(svc *Service, filter *SampleFilter) *Handler {
	return &Handler{svc: svc, filter: filter}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/treatments", h.ListTreatmentNames)
	api.POST("/treatments/sample-rows", h.FetchSampleTreatmentRows)
	api.POST("/samples/treatment-filter", h.FilterSamples)
}

type sampleRowsRequest struct {
	Treatments []string           `json:"treatments"`
	Timings    []TemporalRelation `json:"timings"`
	Samples    []SampleKey        `json:"samples"`
}

type treatmentFilterRequest struct {
	Samples []SampleKey `json:"samples"`
	Filter  AndedGroups `json:"filter"`
}

func (h *Handler) ListTreatmentNames(c echo.Context) error {
	studyIDs := c.QueryParams()["studyId"]
	if len(studyIDs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "studyId is required")
	}
	names, err := h.svc.GetTreatmentNames(c.Request().Context(), studyIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if names == nil {
		names = []string{}
	}
	return c.JSON(http.StatusOK, names)
}

func (h *Handler) FetchSampleTreatmentRows(c echo.Context) error {
	var req sampleRowsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rows, err := h.svc.GetSampleTreatmentRows(c.Request().Context(), req.Treatments, req.Timings, req.Samples)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *Handler) FilterSamples(c echo.Context) error {
	var req treatmentFilterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	samples, err := h.filter.Filter(c.Request().Context(), req.Samples, req.Filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, samples)
}
