package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cosiedzieje/markers-api/internal/core/domain"
)

type stubMarkerService struct {
	createFn    func(ctx context.Context, marker *domain.Marker, ownerID int64) error
	listAllFn   func(ctx context.Context) ([]domain.Marker, error)
	listOwnerFn func(ctx context.Context, ownerID int64) ([]domain.Marker, error)
	listCityFn  func(ctx context.Context, city string) ([]domain.Marker, error)
	proximityFn func(ctx context.Context, lat, lon, radiusKm float64) ([]domain.MarkerWithDistance, error)
	deleteFn    func(ctx context.Context, ownerID, markerID int64) (*domain.Marker, error)
}

func (s *stubMarkerService) Create(ctx context.Context, marker *domain.Marker, ownerID int64) error {
	return s.createFn(ctx, marker, ownerID)
}

func (s *stubMarkerService) ListAll(ctx context.Context) ([]domain.Marker, error) {
	return s.listAllFn(ctx)
}

func (s *stubMarkerService) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Marker, error) {
	return s.listOwnerFn(ctx, ownerID)
}

func (s *stubMarkerService) ListByCity(ctx context.Context, city string) ([]domain.Marker, error) {
	return s.listCityFn(ctx, city)
}

func (s *stubMarkerService) ListByProximity(ctx context.Context, lat, lon, radiusKm float64) ([]domain.MarkerWithDistance, error) {
	return s.proximityFn(ctx, lat, lon, radiusKm)
}

func (s *stubMarkerService) Delete(ctx context.Context, ownerID, markerID int64) (*domain.Marker, error) {
	return s.deleteFn(ctx, ownerID, markerID)
}

const createMarkerBody = `{
	"latitude": 52.23,
	"longitude": 21.01,
	"title": "Street cleanup",
	"description": "Help clean the park",
	"type": "NeighborHelp",
	"addTime": 1234,
	"startTime": 1700000000,
	"endTime": null,
	"address": {"street": "Main", "number": "12", "city": "Warsaw"},
	"contactInfo": {
		"name": "Jan",
		"surname": "Kowalski",
		"address": {"street": "Main", "number": "12", "city": "Warsaw"},
		"method": {"type": "Email", "val": "jan@example.com"}
	}
}`

func TestMarkerHandler_List_All(t *testing.T) {
	e := newTestEcho()
	stub := &stubMarkerService{
		listAllFn: func(ctx context.Context) ([]domain.Marker, error) {
			return []domain.Marker{{ID: 1, Title: "Street cleanup"}}, nil
		},
	}
	h := NewMarkerHandler(stub, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/markers", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	env := decodeEnvelope(t, rec)
	if env.Status != "ok" || !strings.Contains(string(env.Res), "Street cleanup") {
		t.Fatalf("unexpected envelope: %s", rec.Body.String())
	}
}

func TestMarkerHandler_List_Proximity(t *testing.T) {
	e := newTestEcho()
	stub := &stubMarkerService{
		proximityFn: func(ctx context.Context, lat, lon, radiusKm float64) ([]domain.MarkerWithDistance, error) {
			if lat != 52.23 || lon != 21.01 || radiusKm != 5 {
				t.Fatalf("unexpected args: %f %f %f", lat, lon, radiusKm)
			}
			return []domain.MarkerWithDistance{
				{Marker: domain.Marker{ID: 1}, DistanceInKm: 1.5},
			}, nil
		},
	}
	h := NewMarkerHandler(stub, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/markers?lat=52.23&long=21.01&dist=5", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	env := decodeEnvelope(t, rec)
	if env.Status != "ok" || !strings.Contains(string(env.Res), "distanceInKm") {
		t.Fatalf("unexpected envelope: %s", rec.Body.String())
	}
}

func TestMarkerHandler_List_ProximityBadParams(t *testing.T) {
	cases := []struct {
		name  string
		query string
	}{
		{"non-numeric lat", "lat=abc&long=21.01&dist=5"},
		{"non-numeric dist", "lat=52.23&long=21.01&dist=far"},
		{"negative dist", "lat=52.23&long=21.01&dist=-1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEcho()
			stub := &stubMarkerService{
				proximityFn: func(ctx context.Context, lat, lon, radiusKm float64) ([]domain.MarkerWithDistance, error) {
					t.Fatalf("should not be called")
					return nil, nil
				},
			}
			h := NewMarkerHandler(stub, zerolog.Nop())

			req := httptest.NewRequest(http.MethodGet, "/api/markers?"+tc.query, nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			if err := h.List(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			if env := decodeEnvelope(t, rec); env.Status != "error" {
				t.Fatalf("expected error envelope, got %s", rec.Body.String())
			}
		})
	}
}

func TestMarkerHandler_List_PartialProximityParamsListAll(t *testing.T) {
	// An incomplete lat/long/dist set is treated as no proximity query at
	// all, not as a malformed one.
	queries := []string{"lat=52.23", "lat=52.23&long=21.01", "dist=5", "long=21.01&dist=5"}
	for _, q := range queries {
		e := newTestEcho()
		stub := &stubMarkerService{
			listAllFn: func(ctx context.Context) ([]domain.Marker, error) {
				return []domain.Marker{{ID: 1, Title: "Street cleanup"}}, nil
			},
			proximityFn: func(ctx context.Context, lat, lon, radiusKm float64) ([]domain.MarkerWithDistance, error) {
				t.Fatalf("%s: proximity search should not run", q)
				return nil, nil
			},
		}
		h := NewMarkerHandler(stub, zerolog.Nop())

		req := httptest.NewRequest(http.MethodGet, "/api/markers?"+q, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := h.List(c); err != nil {
			t.Fatalf("%s: handler error: %v", q, err)
		}
		env := decodeEnvelope(t, rec)
		if env.Status != "ok" || !strings.Contains(string(env.Res), "Street cleanup") {
			t.Fatalf("%s: unexpected envelope: %s", q, rec.Body.String())
		}
	}
}

func TestMarkerHandler_ListByCity(t *testing.T) {
	e := newTestEcho()
	stub := &stubMarkerService{
		listCityFn: func(ctx context.Context, city string) ([]domain.Marker, error) {
			if city != "Warsaw" {
				t.Fatalf("unexpected city: %s", city)
			}
			return []domain.Marker{{ID: 1, Address: domain.Address{City: "Warsaw"}}}, nil
		},
	}
	h := NewMarkerHandler(stub, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/markers/Warsaw", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("city")
	c.SetParamValues("Warsaw")

	if err := h.ListByCity(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if env := decodeEnvelope(t, rec); env.Status != "ok" {
		t.Fatalf("unexpected envelope: %s", rec.Body.String())
	}
}

func TestMarkerHandler_Create(t *testing.T) {
	e := newTestEcho()
	stub := &stubMarkerService{
		createFn: func(ctx context.Context, marker *domain.Marker, ownerID int64) error {
			if ownerID != 7 {
				t.Fatalf("unexpected owner: %d", ownerID)
			}
			if marker.Title != "Street cleanup" || marker.Type != domain.EventNeighborHelp {
				t.Fatalf("unexpected marker: %+v", marker)
			}
			if marker.ContactInfo.Method.Type != domain.ContactEmail {
				t.Fatalf("unexpected contact method: %+v", marker.ContactInfo.Method)
			}
			if !marker.AddTime.IsZero() {
				t.Fatalf("client addTime must be discarded, got %v", marker.AddTime)
			}
			if marker.StartTime == nil || marker.StartTime.Unix() != 1700000000 {
				t.Fatalf("unexpected start time: %+v", marker.StartTime)
			}
			if marker.EndTime != nil && !marker.EndTime.IsZero() {
				t.Fatalf("expected empty end time, got %+v", marker.EndTime)
			}
			return nil
		},
	}
	h := NewMarkerHandler(stub, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPut, "/api/markers", strings.NewReader(createMarkerBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", int64(7))

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if env := decodeEnvelope(t, rec); env.Status != "ok" {
		t.Fatalf("unexpected envelope: %s", rec.Body.String())
	}
}

func TestMarkerHandler_Create_Validation(t *testing.T) {
	e := newTestEcho()
	stub := &stubMarkerService{
		createFn: func(ctx context.Context, marker *domain.Marker, ownerID int64) error {
			t.Fatalf("should not be called")
			return nil
		},
	}
	h := NewMarkerHandler(stub, zerolog.Nop())

	body := `{"latitude": 123.0, "longitude": 21.01, "title": "x", "description": "y", "type": "Happening",
		"address": {"street": "a", "number": "1", "city": "c"},
		"contactInfo": {"name": "n", "surname": "s",
			"address": {"street": "a", "number": "1", "city": "c"},
			"method": {"type": "Email", "val": "v"}}}`
	req := httptest.NewRequest(http.MethodPut, "/api/markers", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", int64(7))

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	env := decodeEnvelope(t, rec)
	if env.Status != "error" || !strings.Contains(string(env.Res), "latitude") {
		t.Fatalf("unexpected envelope: %s", rec.Body.String())
	}
}

func TestMarkerHandler_Create_RequiresSession(t *testing.T) {
	e := newTestEcho()
	h := NewMarkerHandler(&stubMarkerService{}, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPut, "/api/markers", strings.NewReader(createMarkerBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 error, got %v", err)
	}
}

func TestMarkerHandler_Delete(t *testing.T) {
	e := newTestEcho()
	stub := &stubMarkerService{
		deleteFn: func(ctx context.Context, ownerID, markerID int64) (*domain.Marker, error) {
			if ownerID != 7 || markerID != 3 {
				t.Fatalf("unexpected args: %d %d", ownerID, markerID)
			}
			return &domain.Marker{ID: 3, Title: "Street cleanup", UserID: 7}, nil
		},
	}
	h := NewMarkerHandler(stub, zerolog.Nop())

	req := httptest.NewRequest(http.MethodDelete, "/api/markers/3", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", int64(7))
	c.SetParamNames("marker_id")
	c.SetParamValues("3")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	env := decodeEnvelope(t, rec)
	if env.Status != "ok" {
		t.Fatalf("unexpected envelope: %s", rec.Body.String())
	}
	var res struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(env.Res, &res); err != nil || res.ID != 3 {
		t.Fatalf("expected deleted marker in response, got %s", env.Res)
	}
}

func TestMarkerHandler_Delete_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubMarkerService{
		deleteFn: func(ctx context.Context, ownerID, markerID int64) (*domain.Marker, error) {
			return nil, domain.ErrMarkerNotFound
		},
	}
	h := NewMarkerHandler(stub, zerolog.Nop())

	req := httptest.NewRequest(http.MethodDelete, "/api/markers/99", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", int64(7))
	c.SetParamNames("marker_id")
	c.SetParamValues("99")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Status != "error" || !strings.Contains(string(env.Res), "marker not found") {
		t.Fatalf("unexpected envelope: %s", rec.Body.String())
	}
}

func TestMarkerHandler_ListOwn(t *testing.T) {
	e := newTestEcho()
	stub := &stubMarkerService{
		listOwnerFn: func(ctx context.Context, ownerID int64) ([]domain.Marker, error) {
			if ownerID != 7 {
				t.Fatalf("unexpected owner: %d", ownerID)
			}
			return []domain.Marker{{ID: 1, UserID: 7}}, nil
		},
	}
	h := NewMarkerHandler(stub, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/user_markers", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", int64(7))

	if err := h.ListOwn(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if env := decodeEnvelope(t, rec); env.Status != "ok" {
		t.Fatalf("unexpected envelope: %s", rec.Body.String())
	}
}
