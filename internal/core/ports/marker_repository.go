package ports

import (
	"context"

	"github.com/cosiedzieje/markers-api/internal/core/domain"
)

// ProximityLimit caps proximity search results to the nearest N markers.
const ProximityLimit = 15

// MarkerRepository is the persistence interface for markers, including the
// geospatial query.
type MarkerRepository interface {
	// Create inserts one marker row. The marker's AddTime must already be
	// server-stamped by the caller. Reports false when no row was inserted.
	Create(ctx context.Context, marker *domain.Marker) (bool, error)

	ListAll(ctx context.Context) ([]domain.Marker, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Marker, error)

	// ListByCity matches the city field inside the embedded address exactly.
	ListByCity(ctx context.Context, city string) ([]domain.Marker, error)

	// ListByProximity pre-filters with a conservative bounding box, ranks by
	// exact great-circle distance ascending and caps at ProximityLimit.
	ListByProximity(ctx context.Context, lat, lon, radiusKm float64) ([]domain.MarkerWithDistance, error)

	// Delete removes the marker and returns its pre-delete content. The
	// ownership check is part of the delete predicate; a marker owned by a
	// different user yields domain.ErrMarkerNotFound.
	Delete(ctx context.Context, ownerID, markerID int64) (*domain.Marker, error)
}
