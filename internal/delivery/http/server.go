package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/geo-engine/internal/config"
	"github.com/geo-engine/internal/delivery/http/handler"
	"github.com/geo-engine/internal/delivery/http/middleware"
	"github.com/geo-engine/internal/metrics"
	"github.com/geo-engine/internal/pkg/errors"
	"github.com/geo-engine/internal/pkg/utils"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app     *fiber.App
	config  *config.Config
	logger  *zap.Logger
	metrics *metrics.Metrics

	// Handlers
	geocodeHandler  *handler.GeocodeHandler
	provinceHandler *handler.ProvinceHandler
	analysisHandler *handler.AnalysisHandler
	taskHandler     *handler.TaskHandler
	healthHandler   *handler.HealthHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	m *metrics.Metrics,
	geocodeHandler *handler.GeocodeHandler,
	provinceHandler *handler.ProvinceHandler,
	analysisHandler *handler.AnalysisHandler,
	taskHandler *handler.TaskHandler,
	healthHandler *handler.HealthHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Geo Engine",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		// имена провинций приходят в пути в percent-encoding
		UnescapePath: true,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:             app,
		config:          cfg,
		logger:          logger,
		metrics:         m,
		geocodeHandler:  geocodeHandler,
		provinceHandler: provinceHandler,
		analysisHandler: analysisHandler,
		taskHandler:     taskHandler,
		healthHandler:   healthHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.Metrics(s.metrics))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	if s.metrics != nil {
		s.app.Get("/metrics", adaptor.HTTPHandler(s.metrics.Handler()))
	}

	s.app.Get("/", s.healthHandler.Root)

	api := s.app.Group("/api")
	api.Get("/health", s.healthHandler.Health)

	// Geocoding
	api.Get("/geocode", s.geocodeHandler.Geocode)
	api.Get("/reverse-geocode", s.geocodeHandler.ReverseGeocode)

	// Regions
	api.Get("/provinces", s.provinceHandler.ListProvinces)
	api.Get("/provinces/:province_name/cities", s.provinceHandler.CitiesInProvince)

	// Analysis
	analysis := api.Group("/analysis")
	analysis.Post("/buffer", s.analysisHandler.Buffer)
	analysis.Post("/intersecting-cities", s.analysisHandler.IntersectingCities)
	analysis.Post("/slow-task", s.analysisHandler.SlowTask)

	// Tasks
	api.Get("/tasks/:task_id", s.taskHandler.GetTask)
}

// App - доступ к fiber.App для тестов
func (s *Server) App() *fiber.App {
	return s.app
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - ошибки Fiber (нет маршрута, неверный метод, паника) в общем конверте
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if e, ok := err.(*fiber.Error); ok {
			return utils.SendError(c, logger, errors.New(httpErrorCode(e.Code), e.Message, e.Code))
		}
		return utils.SendError(c, logger, err)
	}
}

func httpErrorCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "ROUTE_NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "REQUEST_TOO_LARGE"
	default:
		if status >= fiber.StatusInternalServerError {
			return errors.ErrInternalServer.Code
		}
		return errors.ErrInvalidRequest.Code
	}
}
