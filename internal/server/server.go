package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/eventscribe/backend/internal/api/middleware"
	"github.com/eventscribe/backend/internal/config"
	"github.com/eventscribe/backend/internal/fetch"
	handlers "github.com/eventscribe/backend/internal/http"
	"github.com/eventscribe/backend/internal/infrastructure/monitoring"
	"github.com/eventscribe/backend/internal/logging"
	"github.com/eventscribe/backend/internal/providers"
	"github.com/eventscribe/backend/internal/service"
	"github.com/eventscribe/backend/internal/ws"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	registry *service.Registry
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
	httpSrv  *http.Server
}

// New creates a new server instance
func New(cfg *config.Config) (*Server, error) {
	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		logger = logging.NewDefault()
	}

	logger.Info("Initializing EventScribe server",
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port),
	)

	metrics := monitoring.NewMetrics()

	fetcher := fetch.New(fetch.Config{
		Timeout:   cfg.Fetch.Timeout,
		MaxBytes:  cfg.Fetch.MaxBytes,
		UserAgent: cfg.Fetch.UserAgent,
	})

	// Providers
	extractor := providers.NewExtractor(fetcher)
	calendarProvider := providers.NewCalendar()
	settingsProvider := providers.NewSettings(cfg.Settings.Path)
	cache := providers.NewCache(cfg.Cache.TTL)

	serviceRegistry := service.NewRegistry()
	for _, p := range []service.Provider{extractor, calendarProvider, settingsProvider, cache} {
		if err := serviceRegistry.Register(p); err != nil {
			logger.Warn("failed to register provider", zap.Error(err))
		}
	}
	logger.Info("Service providers registered",
		zap.Any("stats", serviceRegistry.Stats()))

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	h := handlers.NewHandlers(
		extractor.Engine(),
		calendarProvider.Formatter(),
		fetcher,
		serviceRegistry,
		cache,
		settingsProvider,
		metrics,
	)
	wsHandler := ws.NewHandler(
		extractor.Engine(),
		calendarProvider.Formatter(),
		cache,
		metrics,
		logger,
		cfg.WS.RequestTimeout,
	)

	// Health
	router.GET("/", h.Root)
	router.GET("/health", h.Health)

	// Extraction
	router.POST("/extract", h.Extract)
	router.GET("/extract/last", h.LastExtraction)

	// Calendar
	router.POST("/calendar/link", h.CalendarLink)

	// Service management
	router.GET("/services", h.ListServices)
	router.POST("/services/discover", h.DiscoverServices)
	router.POST("/services/execute", h.ExecuteService)

	// Settings
	router.GET("/settings", h.GetSettings)
	router.POST("/settings", h.UpdateSetting)

	// WebSocket
	router.GET("/stream", wsHandler.HandleConnection)

	// Metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	logger.Info("Server initialized successfully")

	return &Server{
		router:   router,
		registry: serviceRegistry,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
	}, nil
}

// Handler exposes the router, for integration tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the HTTP server and blocks until it stops.
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))

	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	defer s.logger.Sync()

	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}
