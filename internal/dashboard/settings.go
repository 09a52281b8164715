package dashboard

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/tinkertanker/groupmaker/internal/config"
	"github.com/tinkertanker/groupmaker/internal/credentials"
)

func (s *Server) handleGetSession(c *fiber.Ctx) error {
	sess := s.session(c)
	return c.JSON(fiber.Map{
		"session_id":     sess.ID(),
		"selected_group": sess.SelectedGroup(),
		"debug":          sess.Debug(),
	})
}

func (s *Server) handleUpdateSession(c *fiber.Ctx) error {
	var req struct {
		SelectedGroup *string `json:"selected_group"`
		Debug         *bool   `json:"debug"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}

	sess := s.session(c)
	if req.SelectedGroup != nil {
		sess.SetSelectedGroup(*req.SelectedGroup)
	}
	if req.Debug != nil {
		sess.SetDebug(*req.Debug)
	}
	return s.handleGetSession(c)
}

func (s *Server) handleGetSettings(c *fiber.Ctx) error {
	credsPresent := credentials.FileExists(s.cfg.CredentialsFile)
	return c.JSON(fiber.Map{
		"default_email": s.cfg.DefaultEmail,
		"domain":        s.cfg.Domain,
		"admin_email":   s.cfg.Delegate(),
		"credentials":   credsPresent,
		"issues":        config.Issues(s.cfg, credsPresent),
	})
}

func (s *Server) handleUpdateSettings(c *fiber.Ctx) error {
	var values map[string]string
	if err := c.BodyParser(&values); err != nil {
		return badRequest(c, err)
	}

	if err := config.SaveSettings(s.cfg.SettingsFile, values); err != nil {
		return operationFailed(c, err)
	}

	cfg, err := config.Load(s.cfg.SettingsFile)
	if err != nil {
		return operationFailed(c, err)
	}
	s.cfg.DefaultEmail = cfg.DefaultEmail
	s.cfg.Domain = cfg.Domain
	s.cfg.DomainSet = cfg.DomainSet
	s.cfg.AdminEmail = cfg.AdminEmail

	return s.handleGetSettings(c)
}

func (s *Server) handleCredentialsStatus(c *fiber.Ctx) error {
	resolution := s.resolver.Resolve()
	status := fiber.Map{
		"source":   resolution.Source,
		"metadata": resolution.Metadata,
		"valid":    resolution.Source != credentials.SourceNone,
	}
	if resolution.Credentials != nil {
		// Never echo the private key back to the browser.
		status["project_id"] = resolution.Credentials["project_id"]
		status["client_email"] = resolution.Credentials["client_email"]
	}
	return c.JSON(status)
}

func (s *Server) handleCredentialsUpload(c *fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return badRequest(c, errors.New("credentials JSON body is required"))
	}

	// store=secrets targets the [google_service_account] section of the
	// local secrets file; the default is the flat JSON file.
	if c.Query("store") == "secrets" {
		var creds credentials.Candidate
		if err := json.Unmarshal(body, &creds); err != nil {
			return badRequest(c, fmt.Errorf("invalid credentials JSON: %w", err))
		}
		if err := credentials.WriteSecretsSection(s.resolver.SecretsFile, creds); err != nil {
			return operationFailed(c, err)
		}
	} else if err := credentials.SaveCredentialsFile(s.cfg.CredentialsFile, body); err != nil {
		return operationFailed(c, err)
	}

	resolution := s.resolver.Resolve()
	if resolution.Source == credentials.SourceNone {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":    "uploaded credentials did not validate",
			"metadata": resolution.Metadata,
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"source": resolution.Source})
}
