package pagination

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultPageSize = 10000000
	MaxPageSize     = 10000000
)

// Params holds page parameters extracted from a request. PageNumber is zero based.
type Params struct {
	PageSize   int
	PageNumber int
}

// FromContext reads pageSize and pageNumber query parameters, falling back to
// defaults for missing or invalid values.
func FromContext(c echo.Context) Params {
	size, err := strconv.Atoi(c.QueryParam("pageSize"))
	if err != nil || size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	number, err := strconv.Atoi(c.QueryParam("pageNumber"))
	if err != nil || number < 0 {
		number = 0
	}

	return Params{PageSize: size, PageNumber: number}
}

// Limit and Offset translate the page into SQL terms.
func (p Params) Limit() int  { return p.PageSize }
func (p Params) Offset() int { return p.PageSize * p.PageNumber }

// HasNext returns true if there are more results after the current page.
func (p Params) HasNext(total int) bool {
	return p.Offset()+p.PageSize < total
}

// Response wraps a paged API response.
type Response struct {
	Data       interface{} `json:"data"`
	Total      int         `json:"total"`
	PageSize   int         `json:"pageSize"`
	PageNumber int         `json:"pageNumber"`
	HasMore    bool        `json:"hasMore"`
}

func NewResponse(data interface{}, total int, p Params) *Response {
	return &Response{
		Data:       data,
		Total:      total,
		PageSize:   p.PageSize,
		PageNumber: p.PageNumber,
		HasMore:    p.HasNext(total),
	}
}
