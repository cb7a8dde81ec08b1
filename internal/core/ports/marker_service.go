package ports

import (
	"context"

	"github.com/cosiedzieje/markers-api/internal/core/domain"
)

type MarkerService interface {
	// Create stamps ownership and the server-side add time on the marker,
	// then persists it. Any client-supplied add time is discarded.
	Create(ctx context.Context, marker *domain.Marker, ownerID int64) error

	ListAll(ctx context.Context) ([]domain.Marker, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Marker, error)
	ListByCity(ctx context.Context, city string) ([]domain.Marker, error)
	ListByProximity(ctx context.Context, lat, lon, radiusKm float64) ([]domain.MarkerWithDistance, error)

	// Delete removes the caller's marker and returns the deleted record.
	Delete(ctx context.Context, ownerID, markerID int64) (*domain.Marker, error)
}
