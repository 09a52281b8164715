// Package dashboard serves the web dashboard: a JSON API over the groupmaker
// CLI, with per-session state and advisory caching.
package dashboard

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"

	"github.com/tinkertanker/groupmaker/internal/config"
	"github.com/tinkertanker/groupmaker/internal/credentials"
	"github.com/tinkertanker/groupmaker/internal/metrics"
	"github.com/tinkertanker/groupmaker/internal/session"
	"github.com/tinkertanker/groupmaker/internal/webapi"
)

const sessionCookie = "groupmaker_session"

// Server wires the dashboard handlers together.
type Server struct {
	cfg       *config.Config
	api       *webapi.API
	resolver  *credentials.Resolver
	sessions  *session.Manager
	emitter   *metrics.Emitter
	app       *fiber.App
	startTime time.Time
}

// New creates a dashboard server. emitter may be nil (metrics disabled).
func New(cfg *config.Config, api *webapi.API, resolver *credentials.Resolver, emitter *metrics.Emitter) *Server {
	s := &Server{
		cfg:       cfg,
		api:       api,
		resolver:  resolver,
		sessions:  session.NewManager(time.Duration(cfg.Dashboard.CacheTTLSeconds) * time.Second),
		emitter:   emitter,
		startTime: time.Now(),
	}

	app := fiber.New(fiber.Config{
		AppName: "Group Maker Dashboard",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			logrus.WithError(err).Error("unhandled dashboard error")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal server error",
			})
		},
	})

	app.Use(fiberlogger.New())
	app.Use(cors.New())
	app.Use(s.withSession)

	app.Get("/health", s.handleHealth)
	app.Get("/ready", s.handleReady)

	api1 := app.Group("/api")
	api1.Get("/auth/ping", s.handlePingAuth)

	api1.Get("/groups", s.handleListGroups)
	api1.Post("/groups", s.handleCreateGroup)
	api1.Patch("/groups/:group", s.handleRenameGroup)
	api1.Delete("/groups/:group", s.handleDeleteGroup)

	api1.Get("/groups/:group/members", s.handleListMembers)
	api1.Post("/groups/:group/members", s.handleAddMembers)
	api1.Delete("/groups/:group/members/:email", s.handleRemoveMember)

	api1.Get("/session", s.handleGetSession)
	api1.Put("/session", s.handleUpdateSession)

	api1.Get("/settings", s.handleGetSettings)
	api1.Put("/settings", s.handleUpdateSettings)

	api1.Get("/credentials", s.handleCredentialsStatus)
	api1.Post("/credentials", s.handleCredentialsUpload)

	s.app = app
	return s
}

// Listen starts serving on the configured port and blocks.
func (s *Server) Listen() error {
	addr := fmt.Sprintf(":%d", s.cfg.Dashboard.Port)
	logrus.WithField("addr", addr).Info("dashboard listening")
	return s.app.Listen(addr)
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// withSession attaches the caller's session, issuing a cookie on first
// contact.
func (s *Server) withSession(c *fiber.Ctx) error {
	sess, id := s.sessions.Get(c.Cookies(sessionCookie))
	if id != c.Cookies(sessionCookie) {
		c.Cookie(&fiber.Cookie{
			Name:     sessionCookie,
			Value:    id,
			HTTPOnly: true,
			SameSite: "Lax",
		})
	}
	c.Locals("session", sess)
	return c.Next()
}

func (s *Server) session(c *fiber.Ctx) *session.Session {
	sess, _ := c.Locals("session").(*session.Session)
	return sess
}

// observe reports one operation to the metrics emitter.
func (s *Server) observe(c *fiber.Ctx, operation string, start time.Time, failed bool) {
	s.emitter.EmitOperation(c.Context(), operation, time.Since(start), failed)
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}

func operationFailed(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
}
