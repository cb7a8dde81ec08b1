package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/cosiedzieje/markers-api/internal/core/domain"
	"github.com/cosiedzieje/markers-api/internal/core/ports"
	"github.com/cosiedzieje/markers-api/internal/geo"
)

const markerColumns = `id, latitude, longitude, title, description, type,
	add_time, start_time, end_time, address, contact_info, user_id`

// MarkerRepository implements ports.MarkerRepository on PostgreSQL.
type MarkerRepository struct {
	db *sql.DB
}

func NewMarkerRepository(db *sql.DB) *MarkerRepository {
	return &MarkerRepository{db: db}
}

// Create inserts one marker row. The structured address and contact-info
// fields are serialized to their JSON storage representation here; AddTime
// is expected to be server-stamped already.
func (r *MarkerRepository) Create(ctx context.Context, m *domain.Marker) (bool, error) {
	typeCode, err := m.Type.Code()
	if err != nil {
		return false, err
	}
	addressJSON, err := json.Marshal(m.Address)
	if err != nil {
		return false, fmt.Errorf("serialize address: %w", err)
	}
	contactJSON, err := json.Marshal(m.ContactInfo)
	if err != nil {
		return false, fmt.Errorf("serialize contact info: %w", err)
	}

	var startTime, endTime sql.NullTime
	if m.StartTime != nil {
		startTime = sql.NullTime{Time: m.StartTime.Time, Valid: true}
	}
	if m.EndTime != nil {
		endTime = sql.NullTime{Time: m.EndTime.Time, Valid: true}
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO markers
		 (latitude, longitude, title, description, type, add_time, start_time, end_time, address, contact_info, user_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		m.Latitude, m.Longitude, m.Title, m.Description, typeCode,
		m.AddTime.Time, startTime, endTime, addressJSON, contactJSON, m.UserID,
	)
	if err != nil {
		return false, fmt.Errorf("insert marker: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *MarkerRepository) ListAll(ctx context.Context) ([]domain.Marker, error) {
	return r.list(ctx, `SELECT `+markerColumns+` FROM markers`)
}

func (r *MarkerRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Marker, error) {
	return r.list(ctx, `SELECT `+markerColumns+` FROM markers WHERE user_id = $1`, ownerID)
}

// ListByCity extracts the city from the embedded JSON address server-side;
// this is an exact match, not a text search.
func (r *MarkerRepository) ListByCity(ctx context.Context, city string) ([]domain.Marker, error) {
	return r.list(ctx, `SELECT `+markerColumns+` FROM markers WHERE address ->> 'city' = $1`, city)
}

// ListByProximity narrows candidates with a conservative bounding box in SQL
// so the exact distance is never computed for the whole table, then ranks
// the survivors by haversine distance ascending, capped at the 15 nearest.
func (r *MarkerRepository) ListByProximity(ctx context.Context, lat, lon, radiusKm float64) ([]domain.MarkerWithDistance, error) {
	box := geo.Bounds(lat, lon, radiusKm)

	candidates, err := r.list(ctx,
		`SELECT `+markerColumns+` FROM markers
		 WHERE latitude BETWEEN $1 AND $2 AND longitude BETWEEN $3 AND $4`,
		box.MinLat, box.MaxLat, box.MinLon, box.MaxLon,
	)
	if err != nil {
		return nil, err
	}

	results := make([]domain.MarkerWithDistance, 0, len(candidates))
	for _, m := range candidates {
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

// Delete reads and removes the marker in one transaction. Both statements
// carry the `id AND user_id` predicate, so a marker belonging to another
// user is simply not found and there is no check-then-act window.
func (r *MarkerRepository) Delete(ctx context.Context, ownerID, markerID int64) (*domain.Marker, error) {
	var marker *domain.Marker
	err := withTx(ctx, r.db, func(tx DBTX) error {
		row := tx.QueryRowContext(ctx,
			`SELECT `+markerColumns+` FROM markers WHERE id = $1 AND user_id = $2`,
			markerID, ownerID,
		)
		m, err := scanMarker(row)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrMarkerNotFound
			}
			return err
		}

		res, err := tx.ExecContext(ctx,
			`DELETE FROM markers WHERE id = $1 AND user_id = $2`,
			markerID, ownerID,
		)
		if err != nil {
			return fmt.Errorf("delete marker: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n != 1 {
			return domain.ErrMarkerNotFound
		}

		marker = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return marker, nil
}

func (r *MarkerRepository) list(ctx context.Context, query string, args ...any) ([]domain.Marker, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list markers: %w", err)
	}
	defer rows.Close()

	markers := make([]domain.Marker, 0)
	for rows.Next() {
		m, err := scanMarker(rows)
		if err != nil {
			return nil, err
		}
		markers = append(markers, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list markers: %w", err)
	}
	return markers, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanMarker(row scanner) (*domain.Marker, error) {
	var (
		m           domain.Marker
		typeCode    string
		addTime     sql.NullTime
		startTime   sql.NullTime
		endTime     sql.NullTime
		addressJSON []byte
		contactJSON []byte
	)
	err := row.Scan(&m.ID, &m.Latitude, &m.Longitude, &m.Title, &m.Description,
		&typeCode, &addTime, &startTime, &endTime, &addressJSON, &contactJSON, &m.UserID)
	if err != nil {
		return nil, err
	}

	if m.Type, err = domain.EventTypeFromCode(typeCode); err != nil {
		return nil, err
	}
	if addTime.Valid {
		m.AddTime = domain.NewUnixTime(addTime.Time)
	}
	if startTime.Valid {
		t := domain.NewUnixTime(startTime.Time)
		m.StartTime = &t
	}
	if endTime.Valid {
		t := domain.NewUnixTime(endTime.Time)
		m.EndTime = &t
	}
	if err := json.Unmarshal(addressJSON, &m.Address); err != nil {
		return nil, fmt.Errorf("deserialize address: %w", err)
	}
	if err := json.Unmarshal(contactJSON, &m.ContactInfo); err != nil {
		return nil, fmt.Errorf("deserialize contact info: %w", err)
	}
	return &m, nil
}
