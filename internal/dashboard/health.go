package dashboard

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tinkertanker/groupmaker/internal/credentials"
)

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":         "healthy",
		"service":        "groupmaker-dashboard",
		"uptime_seconds": int64(time.Since(s.startTime).Seconds()),
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"sessions":       s.sessions.Count(),
		"domain":         s.cfg.Domain,
	})
}

func (s *Server) handleReady(c *fiber.Ctx) error {
	ready := fiber.Map{
		"ready":     true,
		"service":   "groupmaker-dashboard",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	resolution := s.resolver.Resolve()
	ready["credentials_source"] = resolution.Source
	if resolution.Source == credentials.SourceNone {
		ready["ready"] = false
		ready["reason"] = "no valid credentials in any source"
		return c.Status(fiber.StatusServiceUnavailable).JSON(ready)
	}

	return c.JSON(ready)
}

func (s *Server) handlePingAuth(c *fiber.Ctx) error {
	start := time.Now()
	err := s.api.PingAuth(c.Context())
	s.observe(c, "ping_auth", start, err != nil)
	if err != nil {
		return operationFailed(c, err)
	}
	return c.JSON(fiber.Map{"authenticated": true})
}
