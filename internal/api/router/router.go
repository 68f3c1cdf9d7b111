package router

import (
	"net/http"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/content-gallery/config"
	"github.com/d60-Lab/content-gallery/internal/api/handler"
	"github.com/d60-Lab/content-gallery/internal/api/middleware"
	"github.com/d60-Lab/content-gallery/internal/service"
	"github.com/d60-Lab/content-gallery/pkg/response"
)

// New assembles the gin engine: middleware stack, method/route policy
// and the versioned API surface.
func New(cfg *config.Config, h *handler.Handler, auth service.AuthService) *gin.Engine {
	if cfg.Server.Mode != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLog())
	if cfg.Sentry.DSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	if cfg.Tracing.Endpoint != "" {
		r.Use(otelgin.Middleware("content-gallery"))
	}
	r.Use(middleware.CORS())
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// known path, unrouted method
	r.HandleMethodNotAllowed = true
	r.NoMethod(response.MethodNotAllowed)
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// locally stored uploads are served from here; a hosted object store
	// would hand out absolute URLs instead
	if cfg.Upload.Dir != "" && cfg.Upload.BaseURL == "/uploads" {
		r.Static("/uploads", cfg.Upload.Dir)
	}

	v1 := r.Group("/api/v1")
	{
		v1.POST("/auth/login", h.Login)

		content := v1.Group("/content")
		{
			content.POST("/submit",
				middleware.RateLimit(cfg.RateLimit.SubmitRPS, cfg.RateLimit.SubmitBurst), h.Submit)
			content.GET("/approved", h.Approved)

			adminContent := content.Group("", middleware.RequireAdmin(auth))
			{
				adminContent.GET("/pending", h.Pending)
				adminContent.GET("/rejected", h.Rejected)
				adminContent.GET("/stats", h.Stats)
				adminContent.PUT("/approve", h.Decide)
				adminContent.DELETE("/:id", h.Delete)
			}
		}

		v1.POST("/upload/image", middleware.RequireAdmin(auth), h.UploadImage)
	}

	return r
}
