package server

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/trivora/trivora/internal/config"
	"github.com/trivora/trivora/internal/database"
	"github.com/trivora/trivora/internal/handlers"
	"github.com/trivora/trivora/internal/indexer"
	"github.com/trivora/trivora/internal/media"
	"github.com/trivora/trivora/internal/middleware"
	"github.com/trivora/trivora/internal/session"
)

// MaxUploadBytes caps request bodies (and therefore image uploads).
const MaxUploadBytes = 16 << 20 // 16 MiB

type Server struct {
	cfg      *config.Config
	db       database.Service
	handler  *handlers.Handler
	sessions *session.Manager
}

// NewServer wires the whole application and returns a configured HTTP
// server.
func NewServer(cfg *config.Config) (*http.Server, error) {
	db, err := database.New(cfg)
	if err != nil {
		return nil, err
	}
	log.Println("Database connected")

	uploader, err := media.NewFromConfig(cfg.Media)
	if err != nil {
		return nil, err
	}
	if uploader == nil {
		log.Println("No media backend configured; posts will be created without images")
	}

	notifier := indexer.New(cfg.Indexing.PingURL, cfg.Indexing.PingTimeout)
	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionDays)
	handler := handlers.NewHandler(db.GetDB(), cfg, sessions, uploader, notifier)

	newServer := &Server{
		cfg:      cfg,
		db:       db,
		handler:  handler,
		sessions: sessions,
	}

	router := newServer.RegisterRoutes()

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server, nil
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.Default()

	r.MaxMultipartMemory = MaxUploadBytes
	r.Use(middleware.BodyLimit(MaxUploadBytes))

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * 3600,
	}))

	r.Use(middleware.CurrentUser(s.sessions))

	r.LoadHTMLGlob(s.cfg.TemplatesGlob)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.db.Health())
	})

	r.GET("/", s.handler.Post.Home)

	r.GET("/signup", s.handler.Auth.SignupPage)
	r.POST("/signup", s.handler.Auth.Signup)
	r.GET("/login", s.handler.Auth.LoginPage)
	r.POST("/login", s.handler.Auth.Login)
	r.GET("/logout", s.handler.Auth.Logout)

	r.GET("/category/:name", s.handler.Post.Category)

	r.GET("/upload", middleware.RequireAuth(), s.handler.Post.UploadPage)
	r.POST("/upload", middleware.RequireAuth(), s.handler.Post.Upload)

	// /post/:id serves the detail page; /post/delete/:id and
	// /post/edit/:id land on the dispatch routes (see PostHandler).
	r.GET("/post/:id", s.handler.Post.Detail)
	r.GET("/post/:id/:sub", s.handler.Post.DispatchGet)
	r.POST("/post/:id/:sub", s.handler.Post.DispatchPost)

	r.GET("/sitemap.xml", s.handler.Page.Sitemap)
	r.GET("/contact", s.handler.Page.Contact)
	r.GET("/privacy-policy", s.handler.Page.Privacy)

	// Site-ownership verification for the indexing service.
	if body := s.cfg.Indexing.VerificationBody; body != "" {
		r.GET(s.cfg.Indexing.VerificationPath, func(c *gin.Context) {
			c.String(http.StatusOK, body)
		})
	}

	return r
}
