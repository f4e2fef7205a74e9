package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/city-tourism-backend/internal/config"
	"github.com/city-tourism-backend/internal/delivery/http/handler"
	"github.com/city-tourism-backend/internal/delivery/http/middleware"
	"github.com/city-tourism-backend/internal/pkg/errors"
	"github.com/city-tourism-backend/internal/pkg/token"
	"github.com/city-tourism-backend/internal/pkg/utils"

	_ "github.com/city-tourism-backend/docs"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger
	tokens *token.Manager

	// Handlers
	cityPointHandler *handler.CityPointHandler
	typeHandler      *handler.TypeHandler
	subtypeHandler   *handler.SubtypeHandler
	facilityHandler  *handler.FacilityHandler
	userHandler      *handler.UserHandler
	authHandler      *handler.AuthHandler
	fileHandler      *handler.FileHandler
	emailHandler     *handler.EmailHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	tokens *token.Manager,
	cityPointHandler *handler.CityPointHandler,
	typeHandler *handler.TypeHandler,
	subtypeHandler *handler.SubtypeHandler,
	facilityHandler *handler.FacilityHandler,
	userHandler *handler.UserHandler,
	authHandler *handler.AuthHandler,
	fileHandler *handler.FileHandler,
	emailHandler *handler.EmailHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "City Tourism Backend",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    32 * 1024 * 1024,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:              app,
		config:           cfg,
		logger:           logger,
		tokens:           tokens,
		cityPointHandler: cityPointHandler,
		typeHandler:      typeHandler,
		subtypeHandler:   subtypeHandler,
		facilityHandler:  facilityHandler,
		userHandler:      userHandler,
		authHandler:      authHandler,
		fileHandler:      fileHandler,
		emailHandler:     emailHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.AllowOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/docs/*", fiberSwagger.WrapHandler)

	// Health check
	s.app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	authRequired := middleware.JWT(s.tokens)
	adminOnly := middleware.RequireRoles("ADMIN")

	// Auth routes
	auth := s.app.Group("/auth")
	auth.Post("/login", s.authHandler.Login)
	auth.Post("/refresh", s.authHandler.Refresh)
	auth.Post("/logout", authRequired, s.authHandler.Logout)
	auth.Post("/forgot-password", s.authHandler.ForgotPassword)
	auth.Post("/reset-password", s.authHandler.ResetPassword)

	// City point of interest routes
	points := s.app.Group("/city-point-of-interest")
	points.Get("/", s.cityPointHandler.FindAll)
	points.Get("/all", authRequired, adminOnly, s.cityPointHandler.FindAllWithDeleted)
	points.Get("/deleted", authRequired, adminOnly, s.cityPointHandler.FindDeleted)
	points.Get("/events", s.cityPointHandler.FindEvents)
	points.Get("/:id", s.cityPointHandler.FindOne)
	points.Post("/", authRequired, s.cityPointHandler.Create)
	points.Patch("/restore/:id", authRequired, adminOnly, s.cityPointHandler.Restore)
	points.Patch("/:id", authRequired, s.cityPointHandler.Update)
	points.Delete("/:id", authRequired, s.cityPointHandler.Remove)

	// Taxonomy routes
	types := s.app.Group("/type-entity")
	types.Get("/", s.typeHandler.FindAll)
	types.Get("/:id", s.typeHandler.FindOne)
	types.Post("/", authRequired, adminOnly, s.typeHandler.Create)
	types.Patch("/:id", authRequired, adminOnly, s.typeHandler.Update)
	types.Delete("/:id", authRequired, adminOnly, s.typeHandler.Remove)

	subtypes := s.app.Group("/subtypes")
	subtypes.Get("/", s.subtypeHandler.FindAll)
	subtypes.Get("/:id", s.subtypeHandler.FindOne)
	subtypes.Post("/", authRequired, adminOnly, s.subtypeHandler.Create)
	subtypes.Patch("/:id", authRequired, adminOnly, s.subtypeHandler.Update)
	subtypes.Delete("/:id", authRequired, adminOnly, s.subtypeHandler.Remove)

	facilities := s.app.Group("/facilities")
	facilities.Get("/", s.facilityHandler.FindAll)
	facilities.Get("/:id", s.facilityHandler.FindOne)
	facilities.Post("/", authRequired, adminOnly, s.facilityHandler.Create)
	facilities.Patch("/:id", authRequired, adminOnly, s.facilityHandler.Update)
	facilities.Delete("/:id", authRequired, adminOnly, s.facilityHandler.Remove)

	// User routes
	users := s.app.Group("/user")
	users.Post("/", s.userHandler.Create)
	users.Get("/", authRequired, adminOnly, s.userHandler.FindAll)
	users.Get("/:id", authRequired, s.userHandler.FindOne)
	users.Patch("/:id", authRequired, s.userHandler.Update)
	users.Delete("/:id", authRequired, adminOnly, s.userHandler.Remove)

	// File routes
	files := s.app.Group("/files")
	files.Post("/upload/:path", authRequired, s.fileHandler.Upload)
	files.Get("/:path/:filename", s.fileHandler.Download)
	files.Delete("/:path/:filename", authRequired, s.fileHandler.Delete)

	// Email routes
	s.app.Post("/email/send", authRequired, adminOnly, s.emailHandler.Send)
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

// App exposes the fiber instance for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Error(err),
		)

		if e, ok := err.(*fiber.Error); ok {
			return c.Status(e.Code).JSON(utils.ErrorResponse{
				Error: errors.New(errors.CodeInternalServer, e.Message, e.Code),
			})
		}

		return utils.SendError(c, err)
	}
}
