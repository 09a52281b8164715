// Package webapi is the dashboard's typed wrapper over the groupmaker CLI:
// it validates input, runs the CLI as a subprocess, and parses its tabular
// output into records.
package webapi

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/tinkertanker/groupmaker/internal/cliout"
	"github.com/tinkertanker/groupmaker/internal/models"
	"github.com/tinkertanker/groupmaker/internal/runner"
)

type cliRunner interface {
	Run(ctx context.Context, args ...string) (runner.Result, error)
}

// API exposes group operations to the dashboard handlers.
type API struct {
	run cliRunner
}

// New creates an API backed by the given CLI runner.
func New(run cliRunner) *API {
	return &API{run: run}
}

func (a *API) cli(ctx context.Context, fallback string, args ...string) (runner.Result, error) {
	result, err := a.run.Run(ctx, args...)
	if err != nil {
		return result, err
	}
	if !result.Success {
		return result, fmt.Errorf("%s", result.Diagnostic(fallback))
	}
	return result, nil
}

// PingAuth verifies that the CLI can authenticate by listing a single group.
func (a *API) PingAuth(ctx context.Context) error {
	_, err := a.cli(ctx, "Authentication failed", "list", "--max-results", "1")
	return err
}

// CreateGroup creates a group and adds the trainer (and, unless skipSelf,
// the configured default email).
func (a *API) CreateGroup(ctx context.Context, groupName, trainerEmail, domain, description string, skipSelf bool) (*models.OperationResult, error) {
	if msg := cliout.ValidateGroupName(groupName); msg != "" {
		return nil, fmt.Errorf("%s", msg)
	}
	if !cliout.ValidEmail(trainerEmail) {
		return nil, fmt.Errorf("invalid email address: %s", trainerEmail)
	}

	args := []string{"create", groupName, trainerEmail}
	if domain != "" {
		args = append(args, "--domain", domain)
	}
	if description != "" {
		args = append(args, "--description", description)
	}
	if skipSelf {
		args = append(args, "--skip-self")
	}

	result, err := a.cli(ctx, "Failed to create group", args...)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"group": groupName, "trainer": trainerEmail}).Info("group created")
	return &models.OperationResult{
		Success: true,
		Message: strings.TrimSpace(result.Stdout),
		Group:   groupName,
		Email:   trainerEmail,
	}, nil
}

// ListGroups returns structured group records.
func (a *API) ListGroups(ctx context.Context, query, domain string, maxResults int) ([]models.Group, error) {
	args := []string{"list", "--max-results", strconv.Itoa(maxResults)}
	if domain != "" {
		args = append(args, "--domain", domain)
	}
	if query != "" {
		args = append(args, "--query", query)
	}

	result, err := a.cli(ctx, "Failed to list groups", args...)
	if err != nil {
		return nil, err
	}
	return cliout.ParseGroups(result.Stdout), nil
}

// ListMembers returns structured member records for a group.
func (a *API) ListMembers(ctx context.Context, group string, includeDerived bool, maxResults int) ([]models.Member, error) {
	args := []string{"members", group, "--max-results", strconv.Itoa(maxResults)}
	if includeDerived {
		args = append(args, "--include-derived")
	}

	result, err := a.cli(ctx, "Failed to list members", args...)
	if err != nil {
		return nil, err
	}
	return cliout.ParseMembers(result.Stdout), nil
}

// AddMember adds one member to a group with the given role.
func (a *API) AddMember(ctx context.Context, group, email, role string) (*models.OperationResult, error) {
	if !cliout.ValidEmail(email) {
		return nil, fmt.Errorf("invalid email address: %s", email)
	}
	switch role {
	case models.RoleMember, models.RoleManager, models.RoleOwner:
	default:
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	result, err := a.cli(ctx, "Failed to add member", "add", group, email, "--role", role)
	if err != nil {
		return nil, err
	}

	return &models.OperationResult{
		Success: true,
		Message: strings.TrimSpace(result.Stdout),
		Group:   group,
		Email:   email,
		Role:    role,
	}, nil
}

// AddMembers parses a free-form email list and adds each address in turn.
// Individual failures do not stop the batch; they are reported per email.
func (a *API) AddMembers(ctx context.Context, group, text, role string) (*models.BulkAddResult, error) {
	emails := cliout.ParseEmailList(text)
	if len(emails) == 0 {
		return nil, fmt.Errorf("no valid email addresses found")
	}

	result := &models.BulkAddResult{}
	for _, email := range emails {
		if _, err := a.AddMember(ctx, group, email, role); err != nil {
			if result.Failed == nil {
				result.Failed = map[string]string{}
			}
			result.Failed[email] = err.Error()
			continue
		}
		result.Added = append(result.Added, email)
	}
	return result, nil
}

// RemoveMember removes a member from a group.
func (a *API) RemoveMember(ctx context.Context, group, email string) (*models.OperationResult, error) {
	if !cliout.ValidEmail(email) {
		return nil, fmt.Errorf("invalid email address: %s", email)
	}

	result, err := a.cli(ctx, "Failed to remove member", "remove", group, email)
	if err != nil {
		return nil, err
	}

	return &models.OperationResult{
		Success: true,
		Message: strings.TrimSpace(result.Stdout),
		Group:   group,
		Email:   email,
	}, nil
}

// RenameGroup renames an existing group.
func (a *API) RenameGroup(ctx context.Context, oldName, newName string) (*models.OperationResult, error) {
	if msg := cliout.ValidateGroupName(newName); msg != "" {
		return nil, fmt.Errorf("%s", msg)
	}

	result, err := a.cli(ctx, "Failed to rename group", "rename", oldName, newName)
	if err != nil {
		return nil, err
	}

	return &models.OperationResult{
		Success: true,
		Message: strings.TrimSpace(result.Stdout),
		OldName: oldName,
		NewName: newName,
	}, nil
}

// DeleteGroup deletes a group, bypassing the CLI's interactive confirmation.
func (a *API) DeleteGroup(ctx context.Context, group string) (*models.OperationResult, error) {
	if msg := cliout.ValidateGroupName(group); msg != "" {
		return nil, fmt.Errorf("%s", msg)
	}

	result, err := a.cli(ctx, "Failed to delete group", "delete", group, "--yes")
	if err != nil {
		return nil, err
	}

	logrus.WithField("group", group).Info("group deleted")
	return &models.OperationResult{
		Success: true,
		Message: strings.TrimSpace(result.Stdout),
		Group:   group,
	}, nil
}
