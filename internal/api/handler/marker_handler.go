package handler

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cosiedzieje/markers-api/internal/api/metrics"
	"github.com/cosiedzieje/markers-api/internal/core/domain"
	"github.com/cosiedzieje/markers-api/internal/core/ports"
)

// MarkerHandler handles marker publication, the list/search queries and
// owner-scoped deletion.
type MarkerHandler struct {
	markers ports.MarkerService
	logger  zerolog.Logger
}

func NewMarkerHandler(markers ports.MarkerService, logger zerolog.Logger) *MarkerHandler {
	return &MarkerHandler{markers: markers, logger: logger}
}

// List handles GET /api/markers. With all of lat, long and dist present it
// performs the proximity search; an incomplete parameter set falls through
// to the plain listing, same as no parameters at all.
func (h *MarkerHandler) List(c echo.Context) error {
	if c.QueryParam("lat") != "" && c.QueryParam("long") != "" && c.QueryParam("dist") != "" {
		return h.listByProximity(c)
	}

	markers, err := h.markers.ListAll(c.Request().Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("list markers failed")
		return fail(c, msgUnexpected)
	}
	metrics.MarkerSearchesTotal.WithLabelValues("all").Inc()
	return ok(c, markers)
}

func (h *MarkerHandler) listByProximity(c echo.Context) error {
	lat, errLat := strconv.ParseFloat(c.QueryParam("lat"), 64)
	lon, errLon := strconv.ParseFloat(c.QueryParam("long"), 64)
	dist, errDist := strconv.ParseFloat(c.QueryParam("dist"), 64)
	if errLat != nil || errLon != nil || errDist != nil || dist < 0 {
		return fail(c, "invalid lat, long or dist parameter")
	}

	markers, err := h.markers.ListByProximity(c.Request().Context(), lat, lon, dist)
	if err != nil {
		h.logger.Error().Err(err).Msg("proximity search failed")
		return fail(c, msgUnexpected)
	}
	metrics.MarkerSearchesTotal.WithLabelValues("proximity").Inc()
	return ok(c, markers)
}

// ListByCity handles GET /api/markers/:city.
func (h *MarkerHandler) ListByCity(c echo.Context) error {
	markers, err := h.markers.ListByCity(c.Request().Context(), c.Param("city"))
	if err != nil {
		h.logger.Error().Err(err).Str("city", c.Param("city")).Msg("list markers by city failed")
		return fail(c, msgUnexpected)
	}
	metrics.MarkerSearchesTotal.WithLabelValues("city").Inc()
	return ok(c, markers)
}

// ListOwn handles GET /api/user_markers: the caller's own markers.
func (h *MarkerHandler) ListOwn(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	markers, err := h.markers.ListByOwner(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error().Err(err).Int64("user_id", userID).Msg("list own markers failed")
		return fail(c, msgUnexpected)
	}
	metrics.MarkerSearchesTotal.WithLabelValues("own").Inc()
	return ok(c, markers)
}

// Create handles PUT /api/markers.
func (h *MarkerHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createMarkerRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, msgInvalidBody)
	}
	if err := c.Validate(&req); err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			return fail(c, ve.Fields...)
		}
		h.logger.Error().Err(err).Msg("validator failure")
		return fail(c, msgUnexpected)
	}

	marker := toMarker(req)
	if err := h.markers.Create(c.Request().Context(), marker, userID); err != nil {
		h.logger.Error().Err(err).Int64("user_id", userID).Msg("create marker failed")
		return fail(c, msgUnexpected)
	}

	metrics.MarkersCreatedTotal.WithLabelValues(string(marker.Type)).Inc()
	return ok(c, nil)
}

// Delete handles DELETE /api/markers/:marker_id. On success the response
// carries the deleted record as confirmation.
func (h *MarkerHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	markerID, err := strconv.ParseInt(c.Param("marker_id"), 10, 64)
	if err != nil {
		return fail(c, "invalid marker id")
	}

	marker, err := h.markers.Delete(c.Request().Context(), userID, markerID)
	if err != nil {
		if errors.Is(err, domain.ErrMarkerNotFound) {
			return fail(c, "marker not found")
		}
		h.logger.Error().Err(err).Int64("user_id", userID).Int64("marker_id", markerID).Msg("delete marker failed")
		return fail(c, msgUnexpected)
	}

	metrics.MarkersDeletedTotal.Inc()
	return ok(c, marker)
}
