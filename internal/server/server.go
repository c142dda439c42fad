package server

import (
	"log"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/javipalanca/burrocracia/internal/config"
	"github.com/javipalanca/burrocracia/internal/server/handlers"
	"github.com/javipalanca/burrocracia/internal/store"
)

// Server is the HTTP server.
type Server struct {
	router   *gin.Engine
	store    *store.Store
	handlers *handlers.Handlers
}

// NewServer wires the store and the API handlers.
func NewServer(cfg *config.AppConfig) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		dataDir = cfg.Data.DataDir
	}

	st, err := store.New(filepath.Join(dataDir, "burrocracia.db"))
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	s := &Server{
		router:   gin.Default(),
		store:    st,
		handlers: handlers.New(cfg, st, dataDir),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	api := s.router.Group("/api")
	{
		s.handlers.RegisterRoutes(api)
	}
}

// Run starts the server.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close releases the server's resources.
func (s *Server) Close() error {
	return s.store.Close()
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
