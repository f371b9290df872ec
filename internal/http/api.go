package http

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"sellerdesk/internal/apperr"
	"sellerdesk/internal/notify"
	"sellerdesk/internal/repository"
	"sellerdesk/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	pipeline  *Pipeline
	users     service.UserService
	products  service.ProductService
	orders    service.OrderService
	posts     service.PostService
	invoices  service.InvoiceService
	social    service.SocialService
	analytics service.AnalyticsService
	notifier  *notify.Notifier

	db            *sql.DB
	sessionCookie string
	secureCookies bool
	logger        *logrus.Logger
	startedAt     time.Time
}

type HandlerConfig struct {
	Pipeline      *Pipeline
	Users         service.UserService
	Products      service.ProductService
	Orders        service.OrderService
	Posts         service.PostService
	Invoices      service.InvoiceService
	Social        service.SocialService
	Analytics     service.AnalyticsService
	Notifier      *notify.Notifier
	DB            *sql.DB
	SessionCookie string
	SecureCookies bool
	Logger        *logrus.Logger
}

func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		pipeline:      cfg.Pipeline,
		users:         cfg.Users,
		products:      cfg.Products,
		orders:        cfg.Orders,
		posts:         cfg.Posts,
		invoices:      cfg.Invoices,
		social:        cfg.Social,
		analytics:     cfg.Analytics,
		notifier:      cfg.Notifier,
		db:            cfg.DB,
		sessionCookie: cfg.SessionCookie,
		secureCookies: cfg.SecureCookies,
		logger:        cfg.Logger,
		startedAt:     time.Now(),
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware(), requestIDMiddleware(h.logger))

	// public tier: rate limit, CSRF on mutations, optional session
	api := router.Group("/api", h.pipeline.RateLimit(), h.pipeline.CSRF(), h.pipeline.Session())
	{
		api.GET("/auth/me", h.me)
		api.POST("/auth/logout", h.logout)
		api.GET("/system/health", h.health)
	}

	protected := api.Group("", h.pipeline.RequireUser())
	{
		protected.GET("/products", h.listProducts)
		protected.GET("/products/:id", h.getProduct)
		protected.POST("/products", h.createProduct)
		protected.PATCH("/products/:id", h.updateProduct)
		protected.DELETE("/products/:id", h.deleteProduct)
		protected.POST("/products/:id/stock", h.adjustStock)

		protected.GET("/orders", h.listOrders)
		protected.GET("/orders/:id", h.getOrder)
		protected.POST("/orders", h.createOrder)
		protected.PATCH("/orders/:id/status", h.updateOrderStatus)

		protected.GET("/posts", h.listPosts)
		protected.GET("/posts/:id", h.getPost)
		protected.POST("/posts", h.createPost)
		protected.POST("/posts/:id/publish", h.publishPost)
		protected.DELETE("/posts/:id", h.deletePost)

		protected.GET("/invoices", h.listInvoices)
		protected.GET("/invoices/:id", h.getInvoice)
		protected.POST("/invoices", h.createInvoice)
		protected.PATCH("/invoices/:id/status", h.updateInvoiceStatus)

		protected.GET("/social/connections", h.listConnections)
		protected.GET("/social/connections/:platform", h.getConnection)
		protected.POST("/social/connections", h.connectAccount)
		protected.DELETE("/social/connections/:platform", h.disconnectAccount)

		protected.GET("/analytics/sales", h.salesData)
		protected.GET("/analytics/platforms", h.platformStats)
		protected.GET("/dashboard/stats", h.dashboardStats)
		protected.GET("/dashboard/activity", h.activityFeed)
	}

	admin := protected.Group("", h.pipeline.RequireAdmin())
	{
		admin.POST("/system/notify-owner", h.notifyOwner)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			// cookies require a concrete origin, not a wildcard
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Vary", "Origin")
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, "+csrfHeaderName)
		c.Writer.Header().Set("Access-Control-Expose-Headers", csrfHeaderName)
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func requestIDMiddleware(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Request.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-ID", id)

		start := time.Now()
		c.Next()

		logger.WithFields(logrus.Fields{
			"request_id": id,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start).String(),
		}).Debug("request")
	}
}

// pathID parses the numeric :id route parameter, rejecting non-positive
// values before any lookup runs.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		abortWithError(c, apperr.New(apperr.KindBadRequest, "invalid id"))
		return 0, false
	}
	return id, true
}

func pageFrom(c *gin.Context) repository.Page {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	return repository.Page{Limit: limit, Offset: offset}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	v := formatTime(*t)
	return &v
}
