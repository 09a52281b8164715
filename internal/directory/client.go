// Package directory wraps the Google Admin SDK Directory API for group
// lifecycle and membership operations.
package directory

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2/google"
	admin "google.golang.org/api/admin/directory/v1"
	"google.golang.org/api/googleapi"
	groupssettings "google.golang.org/api/groupssettings/v1"
	"google.golang.org/api/option"

	"github.com/tinkertanker/groupmaker/internal/models"
)

const (
	groupsScope   = "https://www.googleapis.com/auth/admin.directory.group"
	membersScope  = "https://www.googleapis.com/auth/admin.directory.group.member"
	settingsScope = "https://www.googleapis.com/auth/apps.groups.settings"
)

// propagationDelay is how long to wait before the single retry of a
// membership insert that races a just-created group.
const propagationDelay = 5 * time.Second

type groupsAPI interface {
	Insert(ctx context.Context, group *admin.Group) (*admin.Group, error)
	List(ctx context.Context, domain, query string, maxResults int64, pageToken string) ([]*admin.Group, string, error)
	Patch(ctx context.Context, groupKey string, patch *admin.Group) (*admin.Group, error)
	Delete(ctx context.Context, groupKey string) error
}

type membersAPI interface {
	List(ctx context.Context, groupKey string, includeDerived bool, maxResults int64, pageToken string) ([]*admin.Member, string, error)
	Insert(ctx context.Context, groupKey string, member *admin.Member) (*admin.Member, error)
	Delete(ctx context.Context, groupKey, memberKey string) error
}

type settingsAPI interface {
	Patch(ctx context.Context, groupEmail string, settings *groupssettings.Groups) error
}

// Client implements Google group lifecycle operations.
type Client struct {
	groups   groupsAPI
	members  membersAPI
	settings settingsAPI

	// retryDelay overrides propagationDelay in tests.
	retryDelay time.Duration
}

// NewClient creates an Admin SDK client using domain-wide delegation.
func NewClient(ctx context.Context, credentialsJSON []byte, adminEmail string) (*Client, error) {
	if len(credentialsJSON) == 0 {
		return nil, fmt.Errorf("credentials JSON is required")
	}
	if adminEmail == "" {
		return nil, fmt.Errorf("admin email is required")
	}

	config, err := google.JWTConfigFromJSON(credentialsJSON, groupsScope, membersScope, settingsScope)
	if err != nil {
		return nil, err
	}
	config.Subject = adminEmail

	svc, err := admin.NewService(ctx, option.WithTokenSource(config.TokenSource(ctx)))
	if err != nil {
		return nil, err
	}
	settingsSvc, err := groupssettings.NewService(ctx, option.WithTokenSource(config.TokenSource(ctx)))
	if err != nil {
		return nil, err
	}

	return &Client{
		groups:     &groupsService{svc: svc},
		members:    &membersService{svc: svc},
		settings:   &settingsService{svc: settingsSvc},
		retryDelay: propagationDelay,
	}, nil
}

// defaultGroupSettings is the fixed policy applied to newly created groups:
// external members allowed, invite-only joining, members can view and post.
func defaultGroupSettings() *groupssettings.Groups {
	return &groupssettings.Groups{
		AllowExternalMembers:       "true",
		WhoCanJoin:                 "INVITED_CAN_JOIN",
		WhoCanViewMembership:       "ALL_MANAGERS_CAN_VIEW",
		WhoCanViewGroup:            "ALL_MEMBERS_CAN_VIEW",
		WhoCanPostMessage:          "ALL_MEMBERS_CAN_POST",
		AllowWebPosting:            "true",
		IncludeInGlobalAddressList: "true",
	}
}

// CreateGroup creates name@domain and applies the default group policy.
// A settings failure does not fail the create; the group already exists.
func (c *Client) CreateGroup(ctx context.Context, name, domain, description string) (*models.Group, error) {
	email := fmt.Sprintf("%s@%s", name, domain)

	var created *admin.Group
	err := retryOnAPIError(ctx, func() error {
		var insertErr error
		created, insertErr = c.groups.Insert(ctx, &admin.Group{
			Email:       email,
			Name:        name,
			Description: description,
		})
		return insertErr
	})
	if err != nil {
		return nil, fmt.Errorf("create group %s: %w", email, err)
	}

	if err := c.settings.Patch(ctx, email, defaultGroupSettings()); err != nil {
		logrus.WithError(err).WithField("group", email).Warn("group created but settings update failed")
	}

	return &models.Group{Email: created.Email, Name: created.Name, Description: created.Description}, nil
}

// ListGroups returns up to maxResults groups for the domain, optionally
// filtered by a search query.
func (c *Client) ListGroups(ctx context.Context, domain, query string, maxResults int64) ([]models.Group, error) {
	if domain == "" {
		return nil, fmt.Errorf("domain is required")
	}

	var groups []models.Group
	pageToken := ""
	for {
		var (
			items     []*admin.Group
			nextToken string
		)
		err := retryOnAPIError(ctx, func() error {
			var listErr error
			items, nextToken, listErr = c.groups.List(ctx, domain, query, maxResults, pageToken)
			return listErr
		})
		if err != nil {
			return nil, fmt.Errorf("list groups: %w", err)
		}
		for _, g := range items {
			groups = append(groups, models.Group{Email: g.Email, Name: g.Name, Description: g.Description})
			if int64(len(groups)) >= maxResults {
				return groups, nil
			}
		}
		if nextToken == "" {
			break
		}
		pageToken = nextToken
	}

	return groups, nil
}

// ListMembers returns up to maxResults members of the group.
func (c *Client) ListMembers(ctx context.Context, groupKey string, includeDerived bool, maxResults int64) ([]models.Member, error) {
	if groupKey == "" {
		return nil, fmt.Errorf("group is required")
	}

	var members []models.Member
	pageToken := ""
	for {
		var (
			items     []*admin.Member
			nextToken string
		)
		err := retryOnAPIError(ctx, func() error {
			var listErr error
			items, nextToken, listErr = c.members.List(ctx, groupKey, includeDerived, maxResults, pageToken)
			return listErr
		})
		if err != nil {
			return nil, fmt.Errorf("list members of %s: %w", groupKey, err)
		}
		for _, m := range items {
			members = append(members, models.Member{
				Email:  m.Email,
				Role:   m.Role,
				Type:   m.Type,
				Status: m.Status,
			})
			if int64(len(members)) >= maxResults {
				return members, nil
			}
		}
		if nextToken == "" {
			break
		}
		pageToken = nextToken
	}

	return members, nil
}

// AddMember inserts a member with the given role.
func (c *Client) AddMember(ctx context.Context, groupKey, email, role string) (*models.Member, error) {
	return c.addMember(ctx, groupKey, email, role, false)
}

// AddMemberAfterCreate inserts a member into a group that was just created.
// If the backend does not see the group yet (propagation race) the insert is
// retried exactly once after a fixed delay.
func (c *Client) AddMemberAfterCreate(ctx context.Context, groupKey, email, role string) (*models.Member, error) {
	return c.addMember(ctx, groupKey, email, role, true)
}

func (c *Client) addMember(ctx context.Context, groupKey, email, role string, retryNotFound bool) (*models.Member, error) {
	body := &admin.Member{
		Email:            email,
		Role:             role,
		DeliverySettings: "ALL_MAIL",
	}

	var added *admin.Member
	insert := func() error {
		return retryOnAPIError(ctx, func() error {
			var insertErr error
			added, insertErr = c.members.Insert(ctx, groupKey, body)
			return insertErr
		})
	}

	err := insert()
	if err != nil && retryNotFound && isNotFound(err) {
		logrus.WithFields(logrus.Fields{
			"group": groupKey,
			"email": email,
		}).Info("group not visible yet, retrying member add once")

		delay := c.retryDelay
		if delay == 0 {
			delay = propagationDelay
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		err = insert()
	}
	if err != nil {
		return nil, fmt.Errorf("add %s to %s: %w", email, groupKey, err)
	}

	return &models.Member{Email: added.Email, Role: added.Role, Type: added.Type, Status: added.Status}, nil
}

// RemoveMember deletes a member from the group.
func (c *Client) RemoveMember(ctx context.Context, groupKey, memberKey string) error {
	err := retryOnAPIError(ctx, func() error {
		return c.members.Delete(ctx, groupKey, memberKey)
	})
	if err != nil {
		return fmt.Errorf("remove %s from %s: %w", memberKey, groupKey, err)
	}
	return nil
}

// RenameGroup updates the group's display name, and its email address when
// newName is a bare name (qualified with domain).
func (c *Client) RenameGroup(ctx context.Context, groupKey, newName, domain string) (*models.Group, error) {
	patch := &admin.Group{Name: newName}
	if domain != "" {
		patch.Email = fmt.Sprintf("%s@%s", newName, domain)
	}

	var updated *admin.Group
	err := retryOnAPIError(ctx, func() error {
		var patchErr error
		updated, patchErr = c.groups.Patch(ctx, groupKey, patch)
		return patchErr
	})
	if err != nil {
		return nil, fmt.Errorf("rename group %s: %w", groupKey, err)
	}

	return &models.Group{Email: updated.Email, Name: updated.Name, Description: updated.Description}, nil
}

// DeleteGroup deletes the group.
func (c *Client) DeleteGroup(ctx context.Context, groupKey string) error {
	err := retryOnAPIError(ctx, func() error {
		return c.groups.Delete(ctx, groupKey)
	})
	if err != nil {
		return fmt.Errorf("delete group %s: %w", groupKey, err)
	}
	return nil
}

// retryOnAPIError retries transient Directory API failures (rate limit,
// service unavailable) with bounded backoff.
func retryOnAPIError(ctx context.Context, fn func() error) error {
	const maxRetries = 3
	backoff := 200 * time.Millisecond
	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if !isRetryable(err) || attempt == maxRetries {
			return err
		}
		if backoff > 2*time.Second {
			backoff = 2 * time.Second
		}
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		backoff *= 2
	}
	return nil
}

func isRetryable(err error) bool {
	apiErr, ok := err.(*googleapi.Error)
	if !ok {
		return false
	}
	return apiErr.Code == 429 || apiErr.Code == 503
}

func isNotFound(err error) bool {
	apiErr, ok := err.(*googleapi.Error)
	return ok && apiErr.Code == 404
}

type groupsService struct {
	svc *admin.Service
}

func (g *groupsService) Insert(ctx context.Context, group *admin.Group) (*admin.Group, error) {
	return g.svc.Groups.Insert(group).Context(ctx).Do()
}

func (g *groupsService) List(ctx context.Context, domain, query string, maxResults int64, pageToken string) ([]*admin.Group, string, error) {
	call := g.svc.Groups.List().Domain(domain).MaxResults(maxResults)
	if query != "" {
		call = call.Query(query)
	}
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}
	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, "", err
	}
	return resp.Groups, resp.NextPageToken, nil
}

func (g *groupsService) Patch(ctx context.Context, groupKey string, patch *admin.Group) (*admin.Group, error) {
	return g.svc.Groups.Patch(groupKey, patch).Context(ctx).Do()
}

func (g *groupsService) Delete(ctx context.Context, groupKey string) error {
	return g.svc.Groups.Delete(groupKey).Context(ctx).Do()
}

type membersService struct {
	svc *admin.Service
}

func (m *membersService) List(ctx context.Context, groupKey string, includeDerived bool, maxResults int64, pageToken string) ([]*admin.Member, string, error) {
	call := m.svc.Members.List(groupKey).IncludeDerivedMembership(includeDerived).MaxResults(maxResults)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}
	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, "", err
	}
	return resp.Members, resp.NextPageToken, nil
}

func (m *membersService) Insert(ctx context.Context, groupKey string, member *admin.Member) (*admin.Member, error) {
	return m.svc.Members.Insert(groupKey, member).Context(ctx).Do()
}

func (m *membersService) Delete(ctx context.Context, groupKey, memberKey string) error {
	return m.svc.Members.Delete(groupKey, memberKey).Context(ctx).Do()
}

type settingsService struct {
	svc *groupssettings.Service
}

func (s *settingsService) Patch(ctx context.Context, groupEmail string, settings *groupssettings.Groups) error {
	_, err := s.svc.Groups.Patch(groupEmail, settings).Context(ctx).Do()
	return err
}
