package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sssmarthaat/haat/internal/core/domain"
	"github.com/sssmarthaat/haat/internal/logger"
)

// AdminPasswordHeader carries the admin password on admin routes.
const AdminPasswordHeader = "X-Admin-Password"

// maxUploadBytes bounds multipart photo uploads.
const maxUploadBytes = 20 << 20

// Server is the REST API server.
type Server struct {
	ports  *Ports
	engine *gin.Engine
}

// NewServer creates a new API server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())
	engine.MaxMultipartMemory = maxUploadBytes

	s := &Server{ports: ports, engine: engine}
	s.registerRoutes()
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = domain.DefaultHTTPAddr
	}
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Info("http api listening on %s", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) registerRoutes() {
	s.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.engine.Group("/api")
	api.GET("/products", s.listProducts)
	api.GET("/products/:id", s.getProduct)
	api.GET("/categories", s.listCategories)
	api.GET("/banners", s.listBanners)
	api.GET("/settings", s.publicSettings)
	api.POST("/orders", s.placeOrder)
	api.GET("/chat/:session", s.getThread)
	api.POST("/chat/:session", s.customerMessage)
	api.GET("/chat/:session/stream", s.streamThread)
	api.POST("/style", s.styleAdvice)

	admin := api.Group("/admin", s.requireAdmin)
	admin.GET("/orders", s.listOrders)
	admin.GET("/orders/:id", s.getOrder)
	admin.POST("/orders/:id/confirm", s.confirmOrder)
	admin.POST("/orders/:id/cancel", s.cancelOrder)
	admin.POST("/orders/:id/deliver", s.deliverOrder)
	admin.DELETE("/orders/:id", s.deleteOrder)
	admin.GET("/orders/:id/invoice", s.downloadInvoice)

	admin.POST("/products", s.createProduct)
	admin.PUT("/products/:id", s.updateProduct)
	admin.PUT("/products/:id/stock", s.setStock)
	admin.DELETE("/products/:id", s.deleteProduct)
	admin.POST("/photos", s.uploadPhoto)

	admin.POST("/categories", s.createCategory)
	admin.DELETE("/categories/:id", s.deleteCategory)
	admin.POST("/banners", s.createBanner)
	admin.DELETE("/banners/:id", s.deleteBanner)

	admin.GET("/chats", s.listThreads)
	admin.POST("/chats/:session", s.adminReply)

	admin.GET("/settings", s.adminSettings)
	admin.PATCH("/settings", s.updateSettings)
	admin.GET("/stats", s.stats)
}

// requireAdmin checks the admin password header against the site settings.
func (s *Server) requireAdmin(c *gin.Context) {
	if err := s.ports.Gate.Unlocked(c.Request.Context(), c.GetHeader(AdminPasswordHeader)); err != nil {
		abortWithError(c, err)
		return
	}
	c.Next()
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

// unavailable answers for an optional port that was not wired.
func unavailable(c *gin.Context, what string) {
	abortWithError(c, fmt.Errorf("%s: %w", what, domain.ErrNotImplemented))
}
