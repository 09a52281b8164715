// Package session holds per-session dashboard state: the selected group, the
// debug flag, and advisory TTL caches for group and member listings.
//
// State lives in an explicit Session object with named accessors, created
// when a browser first connects and torn down on expiry. Caches are advisory:
// clearing them never affects correctness, only freshness.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/tinkertanker/groupmaker/internal/models"
)

// Session is one dashboard user's state.
type Session struct {
	id string

	mu            sync.Mutex
	selectedGroup string
	debug         bool
	lastSeen      time.Time

	cacheTTL     time.Duration
	groupsCache  *groupsEntry
	membersCache map[string]*membersEntry
}

type groupsEntry struct {
	groups  []models.Group
	fetched time.Time
}

type membersEntry struct {
	members []models.Member
	fetched time.Time
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// SelectedGroup returns the group the user is working with.
func (s *Session) SelectedGroup() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedGroup
}

// SetSelectedGroup records the group the user is working with.
func (s *Session) SetSelectedGroup(group string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedGroup = group
}

// Debug returns whether verbose output is enabled for this session.
func (s *Session) Debug() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.debug
}

// SetDebug toggles verbose output for this session.
func (s *Session) SetDebug(debug bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.debug = debug
}

// CachedGroups returns the cached group list, or nil if absent or expired.
func (s *Session) CachedGroups() []models.Group {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.groupsCache == nil || time.Since(s.groupsCache.fetched) >= s.cacheTTL {
		s.groupsCache = nil
		return nil
	}
	return s.groupsCache.groups
}

// StoreGroups caches the group list.
func (s *Session) StoreGroups(groups []models.Group) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groupsCache = &groupsEntry{groups: groups, fetched: time.Now()}
}

// ClearGroups drops the cached group list; called after create, rename, and
// delete so the next listing reflects the change.
func (s *Session) ClearGroups() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groupsCache = nil
}

// CachedMembers returns the cached member list for a group, or nil.
func (s *Session) CachedMembers(group string) []models.Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := s.membersCache[group]
	if entry == nil || time.Since(entry.fetched) >= s.cacheTTL {
		delete(s.membersCache, group)
		return nil
	}
	return entry.members
}

// StoreMembers caches the member list for a group.
func (s *Session) StoreMembers(group string, members []models.Member) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.membersCache[group] = &membersEntry{members: members, fetched: time.Now()}
}

// ClearMembers drops the member cache for one group, or all groups when
// group is empty.
func (s *Session) ClearMembers(group string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if group == "" {
		s.membersCache = map[string]*membersEntry{}
		return
	}
	delete(s.membersCache, group)
}

// Manager owns all live sessions.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	cacheTTL time.Duration
	maxIdle  time.Duration
}

// DefaultMaxIdle is how long a session may stay untouched before teardown.
const DefaultMaxIdle = 30 * time.Minute

// NewManager creates a session manager with the given cache TTL.
func NewManager(cacheTTL time.Duration) *Manager {
	return &Manager{
		sessions: map[string]*Session{},
		cacheTTL: cacheTTL,
		maxIdle:  DefaultMaxIdle,
	}
}

// Get returns the session for id, creating one when the id is unknown or
// empty. The second return value is the id to hand back to the client.
func (m *Manager) Get(id string) (*Session, string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.evictIdleLocked()

	if s, ok := m.sessions[id]; ok {
		s.mu.Lock()
		s.lastSeen = time.Now()
		s.mu.Unlock()
		return s, id
	}

	newID := newSessionID()
	s := &Session{
		id:           newID,
		lastSeen:     time.Now(),
		cacheTTL:     m.cacheTTL,
		membersCache: map[string]*membersEntry{},
	}
	m.sessions[newID] = s
	return s, newID
}

// End tears a session down explicitly.
func (m *Manager) End(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) evictIdleLocked() {
	for id, s := range m.sessions {
		s.mu.Lock()
		idle := time.Since(s.lastSeen)
		s.mu.Unlock()
		if idle > m.maxIdle {
			delete(m.sessions, id)
		}
	}
}

func newSessionID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return hex.EncodeToString([]byte(time.Now().String()))
	}
	return hex.EncodeToString(buf)
}
