package server

import (
	"strings"
	"time"

	"github.com/danmuck/bitsctl/internal/auth"
	"github.com/danmuck/bitsctl/internal/config"
	"github.com/danmuck/bitsctl/internal/observability"
	"github.com/danmuck/bitsctl/internal/transmission"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const version = "0.1.0"

// Server exposes the transmission decoder over HTTP.
type Server struct {
	Name     string
	Addr     string
	Appeared time.Time

	decoder *transmission.Decoder
	router  *gin.Engine
	gate    gin.HandlersChain
}

func New(cfg config.ServerConfig, logger zerolog.Logger) *Server {
	observability.RegisterMetrics()
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestID())
	r.Use(observability.RequestLogger(logger))
	r.Use(observability.RequestMetricsMiddleware(cfg.Name))
	r.Use(cors.New(cors.Config{
		AllowOrigins:  normalizeOrigins(cfg.CorsOrigins),
		AllowMethods:  []string{"GET", "POST"},
		AllowHeaders:  []string{"Origin", "Content-Type", observability.HeaderRequestID},
		ExposeHeaders: []string{observability.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}))
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	limits := transmission.Limits{MaxHexDigits: cfg.MaxHexDigits, MaxDepth: cfg.MaxDepth}
	s := &Server{
		Name:     cfg.Name,
		Addr:     cfg.Addr,
		Appeared: time.Now(),
		decoder:  transmission.NewDecoder(limits, logger),
		router:   r,
	}
	if token := strings.TrimSpace(cfg.DecodeToken); token != "" {
		s.gate = gin.HandlersChain{auth.Require(auth.StaticToken{Token: token})}
	}
	s.RegisterRoutes()
	return s
}

func (s *Server) HTTPRouter() *gin.Engine {
	return s.router
}

func (s *Server) Serve() error {
	return s.router.Run(s.Addr)
}

func normalizeOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"http://localhost:3000"}
	}
	return origins
}
