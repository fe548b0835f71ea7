// Package server exposes the scraping pipeline over HTTP.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"clipscribe/internal/platform"
	"clipscribe/internal/scraper"
	"clipscribe/internal/version"
)

// Response is the standard API response structure
type Response struct {
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

// ScrapeRequest is the request body for POST /api/scrape. Platform is
// a numeric hint (0=unknown, 1=tiktok, 2=youtube, 3=instagram, 4=web)
// and is advisory only.
type ScrapeRequest struct {
	URL        string `json:"url" binding:"required"`
	Platform   int32  `json:"platform,omitempty"`
	Transcribe bool   `json:"transcribe,omitempty"`
}

// Server is the HTTP front end for clipscribe.
type Server struct {
	port     int
	apiKey   string
	registry *scraper.Registry
	server   *http.Server
	engine   *gin.Engine
}

// NewServer creates a new HTTP server around a scraper registry.
func NewServer(port int, apiKey string, registry *scraper.Registry) *Server {
	return &Server{
		port:     port,
		apiKey:   apiKey,
		registry: registry,
	}
}

// buildEngine wires middleware and routes.
func (s *Server) buildEngine() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(s.loggingMiddleware())
	if s.apiKey != "" {
		engine.Use(s.authMiddleware())
	}

	api := engine.Group("/api")
	api.GET("/health", s.handleHealth)
	api.POST("/scrape", s.handleScrape)

	return engine
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)
	s.engine = s.buildEngine()

	s.server = &http.Server{
		Addr:        fmt.Sprintf(":%d", s.port),
		Handler:     s.engine,
		ReadTimeout: 30 * time.Second,
		// Scrapes can legitimately take minutes (download + STT), so
		// no write timeout.
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Starting clipscribe server on port %d", s.port)
	if s.apiKey != "" {
		log.Printf("API key authentication enabled")
	}

	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Middleware

func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("%s %s %s", c.Request.Method, c.Request.URL.Path, time.Since(start))
	}
}

func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Health endpoint doesn't require auth
		if c.Request.URL.Path == "/api/health" {
			c.Next()
			return
		}

		if c.GetHeader("X-API-Key") != s.apiKey {
			c.JSON(http.StatusUnauthorized, Response{
				Code:    401,
				Data:    nil,
				Message: "invalid or missing API key",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// Handlers

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Code: 200,
		Data: gin.H{
			"status":  "ok",
			"version": version.Version,
		},
		Message: "everything is good",
	})
}

func (s *Server) handleScrape(c *gin.Context) {
	var req ScrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Code:    400,
			Data:    nil,
			Message: "invalid request body: url is required",
		})
		return
	}

	if !platform.IsValid(req.URL) {
		c.JSON(http.StatusBadRequest, Response{
			Code:    400,
			Data:    nil,
			Message: "url must include a scheme and host",
		})
		return
	}

	log.Printf("[api] scrape request for %s", platform.Normalize(req.URL))

	result := s.scrape(c.Request.Context(), req)

	message := "ok"
	if result.Error != "" {
		message = "scrape failed"
	}

	c.JSON(http.StatusOK, Response{
		Code:    200,
		Data:    result,
		Message: message,
	})
}

// scrape runs the pipeline for one request. Whatever goes wrong inside,
// the caller gets a well-formed result with the URL echoed back, never
// a transport-level fault.
func (s *Server) scrape(ctx context.Context, req ScrapeRequest) (result scraper.Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[scrape] panic handling %s: %v", req.URL, r)
			result = scraper.Result{
				OriginalURL: req.URL,
				Metadata:    map[string]string{},
				Error:       "internal error",
			}
		}
	}()

	hint := platform.FromCode(req.Platform)
	sc := s.registry.Get(req.URL, hint)
	return sc.Scrape(ctx, req.URL, req.Transcribe)
}
