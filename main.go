package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/aioli-app/backend/ai"
	"github.com/aioli-app/backend/analyzer"
	"github.com/aioli-app/backend/config"
	"github.com/aioli-app/backend/logging"
	"github.com/aioli-app/backend/middleware"
	"github.com/aioli-app/backend/wcag"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load configuration: %v", err)
	}

	if cfg.GinMode == "" {
		cfg.GinMode = gin.ReleaseMode
	}
	gin.SetMode(cfg.GinMode)

	log := logging.New()

	var completer ai.Completer
	if cfg.AnthropicAPIKey != "" {
		settings := ai.DefaultSettings()
		if cfg.Settings.Audit.Model != "" {
			settings.Model = cfg.Settings.Audit.Model
		}
		settings.MaxTokens = cfg.Settings.Audit.MaxTokens
		settings.Temperature = cfg.Settings.Audit.Temperature
		client, err := ai.NewClient(cfg.AnthropicAPIKey, settings)
		if err != nil {
			log.Fatalf("failed to create AI client: %v", err)
		}
		completer = client
	} else {
		log.Warn("ANTHROPIC_API_KEY not set; AI-assisted WCAG criteria will be reported as not-checked")
	}

	app, err := analyzer.New(cfg.DataDir, log, analyzer.Options{
		CacheTTL:  time.Duration(cfg.Settings.Cache.TTLMinutes) * time.Minute,
		Completer: completer,
		Audit: wcag.AuditOptions{
			MaxParallel:   cfg.Settings.Audit.MaxParallel,
			ContentTokens: cfg.Settings.Audit.ContentMaxTokens,
		},
	})
	if err != nil {
		log.Fatalf("failed to create analyzer: %v", err)
	}

	rateLimiter := middleware.NewRateLimiter(2, 5) // 2 requests per second, bucket size of 5

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.ErrorHandler(log))
	r.Use(rateLimiter.RateLimit())

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		api.POST("/analyze", analyzeHandler(app, log))
		api.POST("/wcag-audit", auditHandler(app, log))
		api.GET("/criteria", criteriaHandler)

		api.GET("/statistics", func(c *gin.Context) {
			c.JSON(http.StatusOK, app.Stats().GetCurrentStats())
		})
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	srv.Shutdown(ctx)
	if err := app.Shutdown(); err != nil {
		log.WithField("error", err).Warn("analyzer shutdown incomplete")
	}
}

func analyzeHandler(app *analyzer.Analyzer, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request struct {
			URL string `json:"url" binding:"required,url"`
		}
		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid URL provided"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 60*time.Second)
		defer cancel()

		analysis, err := app.Analyze(ctx, request.URL)
		if err != nil {
			log.WithFields(logrus.Fields{"url": request.URL, "error": err}).Error("analysis failed")
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to analyze URL"})
			return
		}

		c.JSON(http.StatusOK, analysis)
	}
}

func auditHandler(app *analyzer.Analyzer, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request struct {
			URL     string `json:"url" binding:"required,url"`
			Level   string `json:"level"`
			Version string `json:"version"`
		}
		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid URL provided"})
			return
		}
		if request.Level == "" {
			request.Level = string(wcag.LevelAA)
		}
		if request.Version == "" {
			request.Version = string(wcag.Version22)
		}
		switch wcag.Level(request.Level) {
		case wcag.LevelA, wcag.LevelAA, wcag.LevelAAA:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid WCAG level"})
			return
		}
		switch wcag.Version(request.Version) {
		case wcag.Version21, wcag.Version22:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid WCAG version"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Minute)
		defer cancel()

		report, err := app.Audit(ctx, request.URL, wcag.Level(request.Level), wcag.Version(request.Version))
		if err != nil {
			log.WithFields(logrus.Fields{"url": request.URL, "error": err}).Error("audit failed")
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to audit URL"})
			return
		}

		c.JSON(http.StatusOK, report)
	}
}

func criteriaHandler(c *gin.Context) {
	level := wcag.Level(c.DefaultQuery("level", string(wcag.LevelAA)))
	version := wcag.Version(c.DefaultQuery("version", string(wcag.Version22)))
	c.JSON(http.StatusOK, wcag.CriteriaByLevelAndVersion(level, version))
}
