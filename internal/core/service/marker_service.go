package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/cosiedzieje/markers-api/internal/core/domain"
	"github.com/cosiedzieje/markers-api/internal/core/ports"
)

// MarkerService implements marker publication, the list/search queries and
// owner-scoped deletion.
type MarkerService struct {
	repo   ports.MarkerRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewMarkerService(repo ports.MarkerRepository, logger zerolog.Logger) *MarkerService {
	return &MarkerService{repo: repo, logger: logger, now: time.Now}
}

// Create persists a new marker owned by ownerID. The add time is stamped
// here from the server clock; whatever the client sent is overwritten, since
// a client-supplied creation time cannot be trusted.
func (s *MarkerService) Create(ctx context.Context, marker *domain.Marker, ownerID int64) error {
	marker.ID = 0
	marker.UserID = ownerID
	marker.AddTime = domain.NewUnixTime(s.now())

	added, err := s.repo.Create(ctx, marker)
	if err != nil {
		return err
	}
	if !added {
		s.logger.Warn().Int64("user_id", ownerID).Msg("zero rows affected, marker not added")
		return domain.ErrMarkerNotFound
	}

	s.logger.Info().
		Int64("user_id", ownerID).
		Str("type", string(marker.Type)).
		Msg("marker created")
	return nil
}

func (s *MarkerService) ListAll(ctx context.Context) ([]domain.Marker, error) {
	return s.repo.ListAll(ctx)
}

func (s *MarkerService) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Marker, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *MarkerService) ListByCity(ctx context.Context, city string) ([]domain.Marker, error) {
	return s.repo.ListByCity(ctx, city)
}

func (s *MarkerService) ListByProximity(ctx context.Context, lat, lon, radiusKm float64) ([]domain.MarkerWithDistance, error) {
	return s.repo.ListByProximity(ctx, lat, lon, radiusKm)
}

// Delete removes one of the caller's own markers and returns its pre-delete
// content as confirmation. Ownership is enforced inside the repository's
// delete predicate, so there is no window between check and removal.
func (s *MarkerService) Delete(ctx context.Context, ownerID, markerID int64) (*domain.Marker, error) {
	marker, err := s.repo.Delete(ctx, ownerID, markerID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", ownerID).Int64("marker_id", markerID).Msg("marker deleted")
	return marker, nil
}
