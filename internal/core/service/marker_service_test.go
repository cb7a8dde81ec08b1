package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/cosiedzieje/markers-api/internal/core/domain"
	"github.com/cosiedzieje/markers-api/internal/core/ports"
	"github.com/cosiedzieje/markers-api/internal/infrastructure/db/inmemory"
)

func testMarker(lat, lon float64) *domain.Marker {
	return &domain.Marker{
		Latitude:    lat,
		Longitude:   lon,
		Title:       "garage sale",
		Description: "old furniture",
		Type:        domain.EventHappening,
		Address:     domain.Address{Street: "Main", Number: "1", City: "Warsaw"},
		ContactInfo: domain.ContactInfo{
			Name:    "Anna",
			Surname: "Nowak",
			Address: domain.Address{Street: "Main", Number: "1", City: "Warsaw"},
			Method:  domain.ContactMethod{Type: domain.ContactEmail, Val: "anna@example.com"},
		},
	}
}

func TestMarkerService_Create_StampsServerTime(t *testing.T) {
	repo := inmemory.NewMarkerRepository()
	svc := NewMarkerService(repo, zerolog.Nop())
	serverNow := time.Date(2026, 8, 1, 12, 0, 0, 500_000_000, time.UTC)
	svc.now = func() time.Time { return serverNow }

	m := testMarker(52.2, 21.0)
	// A hostile client claims the marker was added long ago.
	m.AddTime = domain.NewUnixTime(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))
	m.ID = 777

	if err := svc.Create(context.Background(), m, 5); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if m.UserID != 5 {
		t.Fatalf("owner not stamped: %d", m.UserID)
	}
	// Server time wins, truncated to whole seconds.
	want := serverNow.Truncate(time.Second)
	if !m.AddTime.Time.Equal(want) {
		t.Fatalf("add time = %v, want %v", m.AddTime.Time, want)
	}
	if m.ID == 777 {
		t.Fatalf("client-supplied id survived")
	}
}

func TestMarkerService_Delete_OwnershipEnforced(t *testing.T) {
	repo := inmemory.NewMarkerRepository()
	svc := NewMarkerService(repo, zerolog.Nop())

	m := testMarker(52.2, 21.0)
	if err := svc.Create(context.Background(), m, 1); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// A different user must not be able to delete it.
	if _, err := svc.Delete(context.Background(), 2, m.ID); err != domain.ErrMarkerNotFound {
		t.Fatalf("expected ErrMarkerNotFound for foreign owner, got %v", err)
	}
	// And the row must still be there.
	own, err := svc.ListByOwner(context.Background(), 1)
	if err != nil || len(own) != 1 {
		t.Fatalf("marker vanished after failed delete: %v %v", own, err)
	}

	deleted, err := svc.Delete(context.Background(), 1, m.ID)
	if err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if deleted.Title != "garage sale" || deleted.ID != m.ID {
		t.Fatalf("unexpected deleted record: %+v", deleted)
	}

	own, err = svc.ListByOwner(context.Background(), 1)
	if err != nil || len(own) != 0 {
		t.Fatalf("expected no markers after delete, got %v %v", own, err)
	}
}

func TestMarkerService_ListByCity(t *testing.T) {
	repo := inmemory.NewMarkerRepository()
	svc := NewMarkerService(repo, zerolog.Nop())

	m := testMarker(52.2, 21.0)
	m.Address.City = "X"
	if err := svc.Create(context.Background(), m, 1); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := svc.ListByCity(context.Background(), "X")
	if err != nil || len(got) != 1 {
		t.Fatalf("expected marker in city X, got %v %v", got, err)
	}
	got, err = svc.ListByCity(context.Background(), "Y")
	if err != nil || len(got) != 0 {
		t.Fatalf("expected no markers in city Y, got %v %v", got, err)
	}
}

func TestMarkerService_Proximity(t *testing.T) {
	repo := inmemory.NewMarkerRepository()
	svc := NewMarkerService(repo, zerolog.Nop())
	ctx := context.Background()

	const qLat, qLon = 52.2, 21.0

	// One marker at the query point, one ~2 km north, one far away.
	exact := testMarker(qLat, qLon)
	near := testMarker(qLat+0.018, qLon)
	far := testMarker(53.5, 23.0)
	for _, m := range []*domain.Marker{near, exact, far} {
		if err := svc.Create(ctx, m, 1); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	got, err := svc.ListByProximity(ctx, qLat, qLon, 5)
	if err != nil {
		t.Fatalf("proximity failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].ID != exact.ID || got[0].DistanceInKm > 0.001 {
		t.Fatalf("nearest should be the exact-point marker with distance ~0, got %+v", got[0])
	}
	if got[1].ID != near.ID || got[1].DistanceInKm <= got[0].DistanceInKm {
		t.Fatalf("results not sorted ascending: %+v", got)
	}
}

func TestMarkerService_ProximityCap(t *testing.T) {
	repo := inmemory.NewMarkerRepository()
	svc := NewMarkerService(repo, zerolog.Nop())
	ctx := context.Background()

	// 20 qualifying markers, increasingly far from the query point.
	for i := 0; i < 20; i++ {
		m := testMarker(52.2+float64(i)*0.0001, 21.0)
		m.Title = fmt.Sprintf("marker %d", i)
		if err := svc.Create(ctx, m, 1); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	got, err := svc.ListByProximity(ctx, 52.2, 21.0, 5)
	if err != nil {
		t.Fatalf("proximity failed: %v", err)
	}
	if len(got) != ports.ProximityLimit {
		t.Fatalf("expected cap at %d, got %d", ports.ProximityLimit, len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].DistanceInKm < got[i-1].DistanceInKm {
			t.Fatalf("results not sorted at %d: %v < %v", i, got[i].DistanceInKm, got[i-1].DistanceInKm)
		}
	}
}
