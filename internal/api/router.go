package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/cosiedzieje/markers-api/internal/api/handler"
	"github.com/cosiedzieje/markers-api/internal/api/middleware"
	"github.com/cosiedzieje/markers-api/internal/auth"
	"github.com/cosiedzieje/markers-api/internal/config"
	"github.com/cosiedzieje/markers-api/internal/core/ports"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	users ports.UserService,
	markers ports.MarkerService,
	session *auth.SessionIssuer,
	cfg *config.Config,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowCredentials: true,
		AllowHeaders:     []string{echo.HeaderAccept, echo.HeaderContentType},
		AllowMethods: []string{
			http.MethodPost, http.MethodGet, http.MethodDelete,
			http.MethodOptions, http.MethodPut,
		},
	}))
	// Request metrics get a registry per router instance; the domain counters
	// live on the default registry and are gathered alongside.
	promRegistry := prometheus.NewRegistry()
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "markers",
		Registerer: promRegistry,
	}))

	// --- Dependencies ---
	userHandler := handler.NewUserHandler(users, session, log)
	markerHandler := handler.NewMarkerHandler(markers, log)
	healthHandler := handler.NewHealthHandler()
	authRequired := middleware.Session(session)

	// --- Probes and metrics (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{promRegistry, prometheus.DefaultGatherer},
	}))

	// --- Frontend assets ---
	e.Static("/", cfg.StaticDir)

	// --- API routes ---
	api := e.Group("/api")

	api.POST("/register", userHandler.Register)
	api.POST("/login", userHandler.Login)
	api.GET("/logout", userHandler.Logout)
	api.GET("/is_logged", userHandler.IsLogged, authRequired)
	api.GET("/user_data", userHandler.PrivateProfile, authRequired)
	api.GET("/user/:id", userHandler.PublicProfile)

	api.GET("/markers", markerHandler.List)
	api.GET("/markers/:city", markerHandler.ListByCity)
	api.GET("/user_markers", markerHandler.ListOwn, authRequired)
	api.PUT("/markers", markerHandler.Create, authRequired)
	api.DELETE("/markers/:marker_id", markerHandler.Delete, authRequired)

	return e
}
