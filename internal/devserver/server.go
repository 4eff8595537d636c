// Package devserver is a lightweight stand-in for the contract review
// service, used for local development and integration tests. It implements
// the collaborator endpoints the client consumes; it is not the production
// server.
package devserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pactlens/pactlens/internal/auth"
	"github.com/pactlens/pactlens/internal/config"
)

// Server represents the development HTTP server
type Server struct {
	router *gin.Engine
	db     *gorm.DB
	config *config.Config
	logger zerolog.Logger
}

// New creates a new server instance
func New(cfg *config.Config, zlog zerolog.Logger) (*Server, error) {
	db, err := gorm.Open(sqlite.Open(cfg.Database.URL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	auth.InitializeJWT(cfg.Auth.JWTSecret)

	s := &Server{
		db:     db,
		config: cfg,
		logger: zlog,
	}

	if err := s.seed(); err != nil {
		return nil, fmt.Errorf("failed to seed database: %w", err)
	}

	s.setupRouter()
	return s, nil
}

func (s *Server) setupRouter() {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	api := router.Group("/api")
	{
		api.POST("/auth/login/", s.login)

		protected := api.Group("")
		protected.Use(JWTAuthMiddleware(s.db, s.logger))
		{
			protected.GET("/users/users/me/", s.me)
			protected.GET("/contracts/", s.listContracts)
			protected.GET("/reviews/", s.listReviews)
			protected.GET("/rules/", s.listRules)

			admin := protected.Group("")
			admin.Use(RequireRole(s.logger, "admin"))
			{
				admin.GET("/users/users/", s.listUsers)
			}
		}
	}

	s.router = router
}

// Router exposes the handler for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// DB exposes the database handle for tests.
func (s *Server) DB() *gorm.DB {
	return s.db
}

// Start runs the HTTP server (blocks)
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:              s.config.Server.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info().Str("addr", s.config.Server.Addr).Msg("Development server listening")
	return srv.ListenAndServe()
}
