// Package server - HTTP-Router und Server-Setup fuer den Scoring-Adapter
// Beinhaltet: Server-Struct, Router-Registrierung, Middleware, Server-Start
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mlserve/tgiscore/envconfig"
	"github.com/mlserve/tgiscore/logutil"
	"github.com/mlserve/tgiscore/mlmodel"
	"github.com/mlserve/tgiscore/scoring"
	"github.com/mlserve/tgiscore/tgi"
	"github.com/mlserve/tgiscore/version"
)

var mode string = gin.ReleaseMode

func init() {
	switch mode {
	case gin.DebugMode:
	case gin.ReleaseMode:
	case gin.TestMode:
	default:
		mode = gin.ReleaseMode
	}

	gin.SetMode(mode)
}

// Server verwaltet den HTTP-Server und das Backend-Handle
type Server struct {
	backend    *tgi.Server
	dispatcher *scoring.Dispatcher
}

// requestIDMiddleware vergibt pro Request eine ID fuer Logs und Antwort
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-Id", id)
		c.Next()
	}
}

// ScoreHandler nimmt die rohe Payload entgegen und gibt die rohen Bytes des
// Dispatchers zurueck. Fehler stecken im Envelope, nie im HTTP-Status.
func (s *Server) ScoreHandler(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Data(http.StatusOK, "application/json", scoring.Envelope{
			Error:     "Error in processing request",
			Exception: err.Error(),
		}.Bytes())
		return
	}

	start := time.Now()
	out := s.dispatcher.Run(c.Request.Context(), body)
	slog.Info("score request", "request_id", c.GetString("request_id"), "duration", time.Since(start))

	c.Data(http.StatusOK, "application/json", out)
}

// HealthHandler meldet Readiness des Backends
func (s *Server) HealthHandler(c *gin.Context) {
	if s.backend == nil || s.backend.HasExited() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "backend not running"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GenerateRoutes erstellt und konfiguriert den HTTP-Router
func (s *Server) GenerateRoutes() http.Handler {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowWildcard = true
	corsConfig.AllowBrowserExtensions = true
	corsConfig.AllowHeaders = []string{
		"Authorization",
		"Content-Type",
		"User-Agent",
		"Accept",
		"X-Requested-With",
		"X-Request-Id",
	}
	corsConfig.AllowAllOrigins = true

	r := gin.Default()
	r.HandleMethodNotAllowed = true
	r.Use(
		cors.New(corsConfig),
		requestIDMiddleware(),
	)

	r.HEAD("/", func(c *gin.Context) { c.String(http.StatusOK, "tgiscore is running") })
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "tgiscore is running") })
	r.GET("/version", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"version": version.Version}) })

	r.POST("/score", s.ScoreHandler)
	r.GET("/health", s.HealthHandler)

	return r
}

// Serve startet Supervisor und HTTP-Server und blockiert bis zum Shutdown
func Serve(ln net.Listener) error {
	slog.SetDefault(logutil.NewLogger(os.Stderr, envconfig.LogLevel()))
	slog.Info("server config", "env", envconfig.Values())

	descriptor, err := mlmodel.Load(envconfig.ModelDir())
	if err != nil {
		return err
	}
	task, err := descriptor.TaskType()
	if err != nil {
		return err
	}
	slog.Info("resolved task type", "task", task)

	ctx, done := context.WithCancel(context.Background())
	defer done()

	backend, err := tgi.Start(ctx, envconfig.ModelPath())
	if err != nil {
		return err
	}

	s := &Server{
		backend:    backend,
		dispatcher: scoring.NewDispatcher(backend.Client(), task),
	}

	slog.Info(fmt.Sprintf("Listening on %s (version %s)", ln.Addr(), version.Version))
	srvr := &http.Server{
		Handler: s.GenerateRoutes(),
	}

	// Ctrl+C beendet Server und Launcher
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		srvr.Close()
		backend.Close()
		done()
	}()

	if err := srvr.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
