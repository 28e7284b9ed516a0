package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/vishwajithsandaru/govhack-2025-factshield/app"
	"github.com/vishwajithsandaru/govhack-2025-factshield/internal"
	"github.com/vishwajithsandaru/govhack-2025-factshield/internal/config"
)

// Server owns the HTTP surface: routing, CORS, and auth middleware.
// All domain behavior lives in the app services it fronts.
type Server struct {
	engine *gin.Engine
	port   string
	logger *internal.Logger
}

func NewServer(cfg *config.ServerConfig, claims *app.ClaimService, auth *app.AuthService, logger *internal.Logger) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	h := &handlers{claims: claims, auth: auth, logger: logger}

	engine.POST("/auth/signin", h.signIn)
	engine.POST("/check-claim", h.checkClaim)
	engine.POST("/claims", h.submitClaim)
	engine.GET("/claims", h.listClaims)
	engine.GET("/claims/escalated", h.listEscalated)
	engine.GET("/claims/:id", h.getClaim)
	engine.POST("/claims/:id/judge", h.judgeClaim)

	authed := engine.Group("/", requireAuth(auth))
	authed.GET("/fact-checkers/:user_id/escalated", h.escalatedForUser)
	authed.POST("/claims/:id/vote", h.castVote)

	return &Server{engine: engine, port: cfg.Port, logger: logger}
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() *gin.Engine {
	return s.engine
}

func (s *Server) Run() error {
	s.logger.Info("http server listening on :%s", s.port)
	return s.engine.Run(":" + s.port)
}
