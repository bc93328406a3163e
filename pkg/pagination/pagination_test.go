package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func paramsFor(t *testing.T, target string) Params {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return FromContext(e.NewContext(req, rec))
}

func TestFromContext_Defaults(t *testing.T) {
	p := paramsFor(t, "/requests")
	if p.Limit != DefaultLimit {
		t.Errorf("expected default limit %d, got %d", DefaultLimit, p.Limit)
	}
	if p.Offset != 0 {
		t.Errorf("expected offset 0, got %d", p.Offset)
	}
}

func TestFromContext_ExplicitValues(t *testing.T) {
	p := paramsFor(t, "/requests?limit=30&offset=60")
	if p.Limit != 30 {
		t.Errorf("expected limit 30, got %d", p.Limit)
	}
	if p.Offset != 60 {
		t.Errorf("expected offset 60, got %d", p.Offset)
	}
}

func TestFromContext_CapsLimit(t *testing.T) {
	p := paramsFor(t, "/requests?limit=5000")
	if p.Limit != MaxLimit {
		t.Errorf("expected limit capped at %d, got %d", MaxLimit, p.Limit)
	}
}

func TestFromContext_RejectsNegative(t *testing.T) {
	p := paramsFor(t, "/requests?limit=-5&offset=-10")
	if p.Limit != DefaultLimit {
		t.Errorf("expected default limit for negative input, got %d", p.Limit)
	}
	if p.Offset != 0 {
		t.Errorf("expected offset 0 for negative input, got %d", p.Offset)
	}
}

func TestNewResponse(t *testing.T) {
	resp := NewResponse([]string{"a", "b"}, 10, 2, 0)
	if resp.Total != 10 {
		t.Errorf("expected total 10, got %d", resp.Total)
	}
	if !resp.HasMore {
		t.Error("expected has_more true")
	}

	resp = NewResponse([]string{"a", "b"}, 2, 2, 0)
	if resp.HasMore {
		t.Error("expected has_more false")
	}
}

func TestParams_Offsets(t *testing.T) {
	p := Params{Limit: 20, Offset: 40}
	if p.NextOffset() != 60 {
		t.Errorf("expected next offset 60, got %d", p.NextOffset())
	}
	if p.PreviousOffset() != 20 {
		t.Errorf("expected previous offset 20, got %d", p.PreviousOffset())
	}

	p = Params{Limit: 20, Offset: 10}
	if p.PreviousOffset() != 0 {
		t.Errorf("expected previous offset clamped to 0, got %d", p.PreviousOffset())
	}

	if !p.HasNext(100) {
		t.Error("expected HasNext true")
	}
	if p.HasNext(30) {
		t.Error("expected HasNext false")
	}
}
