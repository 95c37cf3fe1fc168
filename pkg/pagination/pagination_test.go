package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func paramsFor(query string) Params {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/"+query, nil)
	rec := httptest.NewRecorder()
	return FromContext(e.NewContext(req, rec))
}

func TestFromContext_Defaults(t *testing.T) {
	p := paramsFor("")
	if p.PageSize != DefaultPageSize {
		t.Errorf("expected default page size %d, got %d", DefaultPageSize, p.PageSize)
	}
	if p.PageNumber != 0 {
		t.Errorf("expected page 0, got %d", p.PageNumber)
	}
}

func TestFromContext_CustomValues(t *testing.T) {
	p := paramsFor("?pageSize=50&pageNumber=2")
	if p.PageSize != 50 {
		t.Errorf("expected page size 50, got %d", p.PageSize)
	}
	if p.PageNumber != 2 {
		t.Errorf("expected page 2, got %d", p.PageNumber)
	}
	if p.Offset() != 100 {
		t.Errorf("expected offset 100, got %d", p.Offset())
	}
}

func TestFromContext_InvalidValues(t *testing.T) {
	p := paramsFor("?pageSize=-5&pageNumber=abc")
	if p.PageSize != DefaultPageSize {
		t.Errorf("expected default page size, got %d", p.PageSize)
	}
	if p.PageNumber != 0 {
		t.Errorf("expected page 0, got %d", p.PageNumber)
	}
}

func TestNewResponse_HasMore(t *testing.T) {
	p := Params{PageSize: 10, PageNumber: 1}
	if r := NewResponse([]string{}, 25, p); !r.HasMore {
		t.Error("expected more results after page 1 of 25 items")
	}
	if r := NewResponse([]string{}, 20, p); r.HasMore {
		t.Error("expected no more results after page 1 of 20 items")
	}
}
