package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func paramsFor(t *testing.T, target string) *Params {
	t.Helper()

	app := fiber.New()
	var got *Params
	app.Get("/", func(c *fiber.Ctx) error {
		got = GetParams(c)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	return got
}

func TestGetParamsDefaults(t *testing.T) {
	p := paramsFor(t, "/")
	if p.Page != 1 || p.Limit != DefaultLimit {
		t.Errorf("got page=%d limit=%d, want 1/%d", p.Page, p.Limit, DefaultLimit)
	}
	if p.Offset != 0 {
		t.Errorf("offset = %d, want 0", p.Offset)
	}
}

func TestGetParamsExplicit(t *testing.T) {
	p := paramsFor(t, "/?page=3&pageSize=25")
	if p.Page != 3 || p.Limit != 25 {
		t.Errorf("got page=%d limit=%d, want 3/25", p.Page, p.Limit)
	}
	if p.Offset != 50 {
		t.Errorf("offset = %d, want 50", p.Offset)
	}
}

func TestGetParamsClamped(t *testing.T) {
	p := paramsFor(t, "/?page=0&pageSize=10000")
	if p.Page != 1 {
		t.Errorf("page = %d, want 1", p.Page)
	}
	if p.Limit != MaxLimit {
		t.Errorf("limit = %d, want %d", p.Limit, MaxLimit)
	}
}

func TestNewResponseMeta(t *testing.T) {
	params := &Params{Page: 2, Limit: 10, Offset: 10}
	resp := NewResponse([]string{"a", "b"}, params, 25)

	if resp.Meta.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", resp.Meta.TotalPages)
	}
	if resp.Meta.Total != 25 {
		t.Errorf("Total = %d, want 25", resp.Meta.Total)
	}
	if resp.Meta.Page != 2 {
		t.Errorf("Page = %d, want 2", resp.Meta.Page)
	}
}
