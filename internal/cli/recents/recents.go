package recents

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/pactlens/pactlens/internal/cli/api"
)

// MaxRecent is the capacity of the recent-accounts list. The oldest entry is
// evicted once a sixth account authenticates.
const MaxRecent = 5

// FileName is the persisted recent-accounts file under the user config dir.
const FileName = "recent_users.json"

// Entry is a snapshot of a previously-authenticated account. The embedded
// credential is a copy taken at login time, not a live reference; it can go
// stale independently of the active session.
type Entry struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	RealName      string    `json:"real_name"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	ReviewerLevel string    `json:"reviewer_level,omitempty"`
	Token         string    `json:"token"`
	LoginAt       time.Time `json:"login_at"`
}

// DisplayName returns the name to show in account listings.
func (e Entry) DisplayName() string {
	if e.RealName != "" {
		return e.RealName
	}
	return e.Username
}

// Cache maintains the persisted, most-recently-used-first account list.
// It has no network access; list maintenance and persistence only.
type Cache struct {
	path string
	log  zerolog.Logger
	now  func() time.Time
}

// New creates a cache persisting to the given file path.
func New(path string, log zerolog.Logger) *Cache {
	return &Cache{
		path: path,
		log:  log,
		now:  time.Now,
	}
}

// List returns the persisted entries, most recent first. A missing or
// unparsable file yields an empty list; corruption never propagates to the
// caller.
func (c *Cache) List() []Entry {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if !os.IsNotExist(err) {
			c.log.Warn().Err(err).Str("path", c.path).Msg("failed to read recent accounts")
		}
		return nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		c.log.Warn().Err(err).Str("path", c.path).Msg("recent accounts file is corrupted, starting fresh")
		return nil
	}
	return entries
}

// Upsert records a successful authentication for the given account: any
// existing entry with the same id is dropped, a fresh snapshot is inserted at
// the front, and the list is truncated to MaxRecent.
func (c *Cache) Upsert(profile api.Profile, token string) error {
	entries := c.List()

	kept := make([]Entry, 0, len(entries)+1)
	kept = append(kept, Entry{
		ID:            profile.ID,
		Username:      profile.Username,
		RealName:      profile.RealName,
		Email:         profile.Email,
		Role:          profile.Role,
		ReviewerLevel: profile.ReviewerLevel,
		Token:         token,
		LoginAt:       c.now(),
	})
	for _, e := range entries {
		if e.ID != profile.ID {
			kept = append(kept, e)
		}
	}
	if len(kept) > MaxRecent {
		kept = kept[:MaxRecent]
	}

	return c.save(kept)
}

// Remove drops the entry with the given id. Removing an absent id is a no-op.
func (c *Cache) Remove(id string) error {
	entries := c.List()

	kept := entries[:0]
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return nil
	}

	return c.save(kept)
}

func (c *Cache) save(entries []Entry) error {
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal recent accounts: %w", err)
	}

	if err := os.WriteFile(c.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write recent accounts: %w", err)
	}
	return nil
}
