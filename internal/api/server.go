// Package api exposes the tracker over HTTP with fiber.
package api

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/manav03panchal/daybook/internal/logging"
	"github.com/manav03panchal/daybook/internal/model"
	"github.com/manav03panchal/daybook/internal/storage"
)

// Service is the set of tracker operations the API serves.
type Service interface {
	CreateEntry(ctx context.Context, in model.EntryInput) (model.Entry, error)
	UpdateEntry(ctx context.Context, id string, in model.EntryInput) (model.Entry, error)
	DeleteEntry(ctx context.Context, id string) error
	Reindex(ctx context.Context) (int, error)

	GetDay(ctx context.Context, date string) (*model.DayBucket, error)
	GetWeek(ctx context.Context, start string) (map[string]*model.DayBucket, error)
	GetWeekStats(ctx context.Context, start string) (*model.Stats, error)
	GetRangeStats(ctx context.Context, from, to string) (*model.Stats, error)

	ListLabels(ctx context.Context, kind model.LabelKind) ([]string, error)
	AddLabel(ctx context.Context, kind model.LabelKind, name string) ([]string, error)
	SyncLabels(ctx context.Context, kind model.LabelKind, names []string) ([]string, error)
	GetAllColors(ctx context.Context) (model.ColorSet, error)
	SetColor(ctx context.Context, kind model.LabelKind, name, color string) (model.LabelColor, error)

	Check(ctx context.Context) *storage.HealthStatus

	Timer(ctx context.Context) (model.TimerStatus, error)
	StartTimer(ctx context.Context, in model.EntryInput) (*model.ActiveTimer, *model.Entry, error)
	StopTimer(ctx context.Context, end time.Time, note string) (model.Entry, error)
	CancelTimer(ctx context.Context) (*model.ActiveTimer, error)
}

// Config wraps the knobs that impact runtime behavior.
type Config struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	// CORSOrigins lists allowed origins; empty or "*" allows any.
	CORSOrigins []string
	// AccessLog receives one line per request. Nil means stderr.
	AccessLog io.Writer
}

// Server exposes the Fiber application.
type Server struct {
	app     *fiber.App
	svc     Service
	cfg     Config
	metrics *Metrics
}

// NewServer wires handlers and middleware.
func NewServer(cfg Config, svc Service) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "daybook",
		DisableStartupMessage: true,
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		ErrorHandler:          errorHandler,
		UnescapePath:          true,
		Immutable:             true,
	})

	accessLog := cfg.AccessLog
	if accessLog == nil {
		accessLog = os.Stderr
	}

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: logging.GenerateRequestID}))
	app.Use(logger.New(logger.Config{
		Format: "${time} | ${status} | ${latency} | ${method} ${path} | ${respHeader:X-Request-ID}\n",
		Output: accessLog,
	}))
	app.Use(cors.New(cors.Config{AllowOrigins: allowOrigins(cfg.CORSOrigins)}))
	app.Use(withRequestContext)

	srv := &Server{app: app, svc: svc, cfg: cfg, metrics: NewMetrics()}
	app.Use(srv.metrics.middleware)
	srv.registerRoutes()
	return srv
}

// App returns the underlying fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Metrics returns the server's request metrics.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Run starts listening for HTTP traffic until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		timeout := s.cfg.ShutdownTimeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		if err := s.app.ShutdownWithTimeout(timeout); err != nil {
			logging.Error("shutdown failed", logging.KeyError, err)
		}
	}()

	logging.Info("daybook listening", "addr", s.cfg.Addr)
	return s.app.Listen(s.cfg.Addr)
}

func (s *Server) registerRoutes() {
	s.app.Get("/", s.handleRoot)
	s.app.Get("/healthz", s.handleHealth)

	api := s.app.Group("/api")

	api.Post("/timers", s.handleCreateEntry)
	api.Get("/timers/week/:start_date", s.handleGetWeek)
	api.Get("/timers/:date", s.handleGetDay)
	api.Put("/timers/:id", s.handleUpdateEntry)
	api.Delete("/timers/:id", s.handleDeleteEntry)

	api.Get("/timer", s.handleTimerStatus)
	api.Post("/timer/start", s.handleStartTimer)
	api.Post("/timer/stop", s.handleStopTimer)
	api.Delete("/timer", s.handleCancelTimer)

	api.Get("/stats/week/:start_date", s.handleWeekStats)
	api.Get("/stats/range", s.handleRangeStats)

	api.Get("/projects", s.handleListLabels(model.KindProject))
	api.Post("/projects", s.handleAddLabel(model.KindProject))
	api.Put("/projects", s.handleSyncLabels(model.KindProject))
	api.Get("/categories", s.handleListLabels(model.KindCategory))
	api.Post("/categories", s.handleAddLabel(model.KindCategory))
	api.Put("/categories", s.handleSyncLabels(model.KindCategory))

	api.Get("/colors", s.handleGetColors)
	api.Put("/colors/projects/:name", s.handleSetColor(model.KindProject))
	api.Put("/colors/categories/:name", s.handleSetColor(model.KindCategory))

	api.Post("/admin/reindex", s.handleReindex)
	api.Get("/admin/metrics", s.handleMetrics)
}

// withRequestContext puts the request id and route on the user context so
// service logs carry them.
func withRequestContext(c *fiber.Ctx) error {
	uc := logging.WithOperation(c.UserContext(), c.Method()+" "+c.Path())
	if id := c.GetRespHeader(fiber.HeaderXRequestID); id != "" {
		uc = logging.WithRequestID(uc, id)
	}
	c.SetUserContext(uc)
	return c.Next()
}

func allowOrigins(origins []string) string {
	if len(origins) == 0 {
		return "*"
	}
	return strings.Join(origins, ",")
}
