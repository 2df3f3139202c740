package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/agoralabs/agora/backend/internal/auth"
	"github.com/agoralabs/agora/backend/internal/config"
	"github.com/agoralabs/agora/backend/internal/database"
	"github.com/agoralabs/agora/backend/internal/handlers"
	"github.com/agoralabs/agora/backend/internal/middleware"
	"github.com/agoralabs/agora/backend/internal/payments"
)

type Server struct {
	cfg      *config.Config
	db       database.Service
	handler  *handlers.Handler
	verifier auth.Verifier
	limiter  *middleware.IPRateLimiter
}

// New wires the handler stack onto injected dependencies.
func New(cfg *config.Config, db database.Service, verifier auth.Verifier, provider payments.Provider) *Server {
	return &Server{
		cfg:      cfg,
		db:       db,
		handler:  handlers.NewHandler(db.GetDB(), provider, cfg.MaxPageSize),
		verifier: verifier,
		limiter:  middleware.NewIPRateLimiter(rate.Limit(1), 5),
	}
}

// HTTPServer wraps the router in an http.Server with sane timeouts.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         "0.0.0.0:" + s.cfg.ServerPort,
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.db.Health())
	})

	gormDB := s.db.GetDB()
	authed := middleware.RequireAuth(s.verifier)
	admin := middleware.RequireAdmin(gormDB)
	notBanned := middleware.RequireNotBanned(gormDB)
	self := middleware.SelfMatch()
	writeLimit := middleware.RateLimit(s.limiter)

	// Public reads
	r.GET("/posts", s.handler.Post.GetPosts)
	r.GET("/posts/:id", s.handler.Post.GetPost)
	r.GET("/comments/:postId", s.handler.Comment.GetComments)
	r.GET("/users/:email", s.handler.User.GetUserProfile)
	r.GET("/users/:email/posts/count", s.handler.Post.CountUserPosts)
	r.GET("/tags", s.handler.Tag.GetTags)
	r.GET("/tags/trending", s.handler.Stats.TrendingTags)
	r.GET("/announcements", s.handler.Announcement.GetAnnouncements)
	r.GET("/announcements/count", s.handler.Announcement.CountAnnouncements)
	r.GET("/community/impact", s.handler.Stats.CommunityImpact)
	r.GET("/community/top-contributors", s.handler.Stats.TopContributors)
	r.GET("/community/featured", s.handler.Stats.FeaturedMembers)

	// First-contact upsert; the client has a verified identity but no stored
	// record yet, so no middleware beyond rate limiting.
	r.POST("/register", writeLimit, s.handler.User.Register)

	// Authenticated, acting on own resources
	r.GET("/get-user", authed, self, s.handler.User.GetUser)
	r.GET("/get-user-role", authed, self, s.handler.User.GetUserRole)
	r.GET("/my-posts", authed, self, s.handler.Post.GetPostsByUser)
	r.POST("/posts", authed, notBanned, writeLimit, s.handler.Post.CreatePost)
	r.PATCH("/posts/:id/vote", authed, notBanned, self, s.handler.Post.VotePost)
	r.DELETE("/posts/:id", authed, self, s.handler.Post.DeletePost)
	r.POST("/posts/:id/comments", authed, notBanned, self, writeLimit, s.handler.Comment.CreateComment)
	r.PATCH("/comments/report/:id", authed, self, s.handler.Comment.ReportComment)
	r.PATCH("/badge/upgrade", authed, self, s.handler.User.UpgradeBadge)
	r.POST("/create-payment-intent", authed, s.handler.Payment.CreatePaymentIntent)

	// Admin
	r.GET("/users", authed, admin, s.handler.User.GetUsers)
	r.PATCH("/users/:id/ban", authed, admin, s.handler.User.BanUser)
	r.PATCH("/users/:id/make-admin", authed, admin, s.handler.User.MakeAdmin)
	r.POST("/tags", authed, admin, s.handler.Tag.CreateTag)
	r.POST("/announcements", authed, admin, s.handler.Announcement.CreateAnnouncement)
	r.GET("/reported/comments", authed, admin, s.handler.Comment.GetReportedComments)
	r.PATCH("/comments/dismiss/:id", authed, admin, s.handler.Comment.DismissReport)
	r.DELETE("/comments/:id", authed, admin, s.handler.Comment.DeleteComment)
	r.GET("/admin/stats", authed, admin, s.handler.Stats.AdminStats)

	return r
}
