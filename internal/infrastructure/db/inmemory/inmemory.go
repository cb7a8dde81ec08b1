// Package inmemory provides map-backed implementations of the repository
// ports with the same observable semantics as the Postgres ones: unique
// email/name, transactional register (all-or-nothing by construction),
// ownership-predicated delete, and the bounding-box + haversine proximity
// search. They back the service and handler tests, which must not need a
// running database.
package inmemory

import (
	"context"
	"sort"
	"sync"

	"github.com/cosiedzieje/markers-api/internal/core/domain"
	"github.com/cosiedzieje/markers-api/internal/core/ports"
	"github.com/cosiedzieje/markers-api/internal/geo"
)

type userRecord struct {
	user    domain.User
	profile domain.UserProfile
}

// UserRepository is an in-memory ports.UserRepository.
type UserRepository struct {
	mu    sync.Mutex
	seq   int64
	users map[int64]*userRecord
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[int64]*userRecord)}
}

func (r *UserRepository) Register(_ context.Context, user *domain.User, profile *domain.UserProfile) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range r.users {
		if rec.user.Email == user.Email {
			return false, domain.ErrEmailTaken
		}
		if rec.user.Name == user.Name {
			return false, domain.ErrNameTaken
		}
	}

	r.seq++
	user.ID = r.seq
	r.users[user.ID] = &userRecord{user: *user, profile: *profile}
	return true, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range r.users {
		if rec.user.Email == email {
			u := rec.user
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) PublicProfile(_ context.Context, userID int64) (*domain.PublicProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &domain.PublicProfile{
		Username:   rec.user.Name,
		Name:       rec.profile.Name,
		Surname:    rec.profile.Surname,
		Sex:        rec.profile.Sex,
		Reputation: rec.profile.Reputation,
	}, nil
}

func (r *UserRepository) PrivateProfile(_ context.Context, userID int64) (*domain.PrivateProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &domain.PrivateProfile{
		Username:   rec.user.Name,
		Name:       rec.profile.Name,
		Surname:    rec.profile.Surname,
		Email:      rec.user.Email,
		Sex:        rec.profile.Sex,
		Address:    rec.profile.Address,
		Reputation: rec.profile.Reputation,
	}, nil
}

// MarkerRepository is an in-memory ports.MarkerRepository.
type MarkerRepository struct {
	mu      sync.Mutex
	seq     int64
	markers map[int64]domain.Marker
}

func NewMarkerRepository() *MarkerRepository {
	return &MarkerRepository{markers: make(map[int64]domain.Marker)}
}

func (r *MarkerRepository) Create(_ context.Context, marker *domain.Marker) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	marker.ID = r.seq
	r.markers[marker.ID] = *marker
	return true, nil
}

func (r *MarkerRepository) ListAll(_ context.Context) ([]domain.Marker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.collect(func(domain.Marker) bool { return true }), nil
}

func (r *MarkerRepository) ListByOwner(_ context.Context, ownerID int64) ([]domain.Marker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.collect(func(m domain.Marker) bool { return m.UserID == ownerID }), nil
}

func (r *MarkerRepository) ListByCity(_ context.Context, city string) ([]domain.Marker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.collect(func(m domain.Marker) bool { return m.Address.City == city }), nil
}

// ListByProximity mirrors the SQL implementation: a conservative bounding
// box narrows the candidate set, then the exact haversine distance ranks the
// survivors ascending, capped at ports.ProximityLimit. Candidates in the box
// corners are kept even when slightly beyond radiusKm.
func (r *MarkerRepository) ListByProximity(_ context.Context, lat, lon, radiusKm float64) ([]domain.MarkerWithDistance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	box := geo.Bounds(lat, lon, radiusKm)
	results := make([]domain.MarkerWithDistance, 0)
	for _, m := range r.markers {
		if !box.Contains(m.Latitude, m.Longitude) {
			continue
		}
		results = append(results, domain.MarkerWithDistance{
			Marker:       m,
			DistanceInKm: geo.Distance(lat, lon, m.Latitude, m.Longitude),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].DistanceInKm < results[j].DistanceInKm
	})
	if len(results) > ports.ProximityLimit {
		results = results[:ports.ProximityLimit]
	}
	return results, nil
}

func (r *MarkerRepository) Delete(_ context.Context, ownerID, markerID int64) (*domain.Marker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.markers[markerID]
	if !ok || m.UserID != ownerID {
		return nil, domain.ErrMarkerNotFound
	}
	delete(r.markers, markerID)
	return &m, nil
}

func (r *MarkerRepository) collect(keep func(domain.Marker) bool) []domain.Marker {
	out := make([]domain.Marker, 0)
	for _, m := range r.markers {
		if keep(m) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
