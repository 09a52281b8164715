package dashboard

import (
	"errors"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
)

type createGroupRequest struct {
	GroupName    string `json:"group_name"`
	TrainerEmail string `json:"trainer_email"`
	Domain       string `json:"domain"`
	Description  string `json:"description"`
	SkipSelf     bool   `json:"skip_self"`
}

func (s *Server) handleListGroups(c *fiber.Ctx) error {
	sess := s.session(c)
	refresh := c.QueryBool("refresh")
	query := c.Query("query")
	domain := c.Query("domain")
	maxResults := c.QueryInt("max_results", 100)

	// The cache only serves the unfiltered listing; filtered queries always
	// go to the CLI.
	cacheable := query == "" && domain == ""
	if cacheable && !refresh {
		if cached := sess.CachedGroups(); cached != nil {
			return c.JSON(fiber.Map{"groups": cached, "cached": true})
		}
	}

	start := time.Now()
	groups, err := s.api.ListGroups(c.Context(), query, domain, maxResults)
	s.observe(c, "list_groups", start, err != nil)
	if err != nil {
		return operationFailed(c, err)
	}

	if cacheable {
		sess.StoreGroups(groups)
	}
	return c.JSON(fiber.Map{"groups": groups, "cached": false})
}

func (s *Server) handleCreateGroup(c *fiber.Ctx) error {
	var req createGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}

	start := time.Now()
	result, err := s.api.CreateGroup(c.Context(), req.GroupName, req.TrainerEmail, req.Domain, req.Description, req.SkipSelf)
	s.observe(c, "create_group", start, err != nil)
	if err != nil {
		return operationFailed(c, err)
	}

	sess := s.session(c)
	sess.ClearGroups()
	sess.SetSelectedGroup(req.GroupName)
	return c.Status(fiber.StatusCreated).JSON(result)
}

func (s *Server) handleRenameGroup(c *fiber.Ctx) error {
	group, err := groupParam(c)
	if err != nil {
		return badRequest(c, err)
	}
	var req struct {
		NewName string `json:"new_name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}

	start := time.Now()
	result, err := s.api.RenameGroup(c.Context(), group, req.NewName)
	s.observe(c, "rename_group", start, err != nil)
	if err != nil {
		return operationFailed(c, err)
	}

	sess := s.session(c)
	sess.ClearGroups()
	sess.ClearMembers(group)
	return c.JSON(result)
}

func (s *Server) handleDeleteGroup(c *fiber.Ctx) error {
	group, err := groupParam(c)
	if err != nil {
		return badRequest(c, err)
	}

	start := time.Now()
	result, err := s.api.DeleteGroup(c.Context(), group)
	s.observe(c, "delete_group", start, err != nil)
	if err != nil {
		return operationFailed(c, err)
	}

	sess := s.session(c)
	sess.ClearGroups()
	sess.ClearMembers(group)
	if sess.SelectedGroup() == group {
		sess.SetSelectedGroup("")
	}
	return c.JSON(result)
}

func groupParam(c *fiber.Ctx) (string, error) {
	group, err := url.QueryUnescape(c.Params("group"))
	if err != nil || group == "" {
		return "", errors.New("group is required")
	}
	return group, nil
}
