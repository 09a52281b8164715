package dashboard

import (
	"errors"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tinkertanker/groupmaker/internal/models"
)

type addMembersRequest struct {
	// Email adds a single address; Emails is free-form text holding one or
	// more addresses (bulk add). Exactly one should be set.
	Email  string `json:"email"`
	Emails string `json:"emails"`
	Role   string `json:"role"`
}

func (s *Server) handleListMembers(c *fiber.Ctx) error {
	group, err := groupParam(c)
	if err != nil {
		return badRequest(c, err)
	}
	sess := s.session(c)
	refresh := c.QueryBool("refresh")
	includeDerived := c.QueryBool("include_derived")
	maxResults := c.QueryInt("max_results", 100)

	cacheable := !includeDerived
	if cacheable && !refresh {
		if cached := sess.CachedMembers(group); cached != nil {
			return c.JSON(fiber.Map{"members": cached, "cached": true, "active": activeCount(cached)})
		}
	}

	start := time.Now()
	members, err := s.api.ListMembers(c.Context(), group, includeDerived, maxResults)
	s.observe(c, "list_members", start, err != nil)
	if err != nil {
		return operationFailed(c, err)
	}

	models.SortMembersByRole(members)
	if cacheable {
		sess.StoreMembers(group, members)
	}
	return c.JSON(fiber.Map{"members": members, "cached": false, "active": activeCount(members)})
}

// activeCount counts active user accounts, excluding suspended users and
// nested groups.
func activeCount(members []models.Member) int {
	n := 0
	for i := range members {
		if members[i].IsActive() {
			n++
		}
	}
	return n
}

func (s *Server) handleAddMembers(c *fiber.Ctx) error {
	group, err := groupParam(c)
	if err != nil {
		return badRequest(c, err)
	}
	var req addMembersRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	role := req.Role
	if role == "" {
		role = models.RoleMember
	}

	start := time.Now()
	switch {
	case req.Emails != "":
		result, err := s.api.AddMembers(c.Context(), group, req.Emails, role)
		s.observe(c, "add_members", start, err != nil)
		if err != nil {
			return badRequest(c, err)
		}
		s.session(c).ClearMembers(group)
		return c.Status(fiber.StatusCreated).JSON(result)
	case req.Email != "":
		result, err := s.api.AddMember(c.Context(), group, req.Email, role)
		s.observe(c, "add_member", start, err != nil)
		if err != nil {
			return operationFailed(c, err)
		}
		s.session(c).ClearMembers(group)
		return c.Status(fiber.StatusCreated).JSON(result)
	default:
		return badRequest(c, errors.New("email or emails is required"))
	}
}

func (s *Server) handleRemoveMember(c *fiber.Ctx) error {
	group, err := groupParam(c)
	if err != nil {
		return badRequest(c, err)
	}
	email, err := url.QueryUnescape(c.Params("email"))
	if err != nil || email == "" {
		return badRequest(c, errors.New("email is required"))
	}

	start := time.Now()
	result, err := s.api.RemoveMember(c.Context(), group, email)
	s.observe(c, "remove_member", start, err != nil)
	if err != nil {
		return operationFailed(c, err)
	}

	s.session(c).ClearMembers(group)
	return c.JSON(result)
}
