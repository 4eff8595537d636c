// Package session owns the single active credential and user profile. It is
// the only component that starts or ends a session.
package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/pactlens/pactlens/internal/cli/api"
	"github.com/pactlens/pactlens/internal/cli/recents"
	"github.com/pactlens/pactlens/internal/cli/tokenstore"
)

// ErrNotAuthenticated is returned by operations that require an active
// credential when none is present.
var ErrNotAuthenticated = errors.New("not authenticated")

// API is the slice of the HTTP client the session depends on.
type API interface {
	Login(username, password string) (string, error)
	Me() (*api.Profile, error)
}

// Store holds the session state: the active credential and, once fetched, the
// user profile. The credential survives restarts via the token store; the
// profile never does and is re-fetched on demand.
type Store struct {
	api     API
	tokens  tokenstore.Store
	recents *recents.Cache
	log     zerolog.Logger

	mu      sync.Mutex
	token   string
	profile *api.Profile
}

// New creates the session store, seeding the credential from persisted
// storage so restarts are transparent.
func New(client API, tokens tokenstore.Store, cache *recents.Cache, log zerolog.Logger) *Store {
	s := &Store{
		api:     client,
		tokens:  tokens,
		recents: cache,
		log:     log,
	}

	token, err := tokens.Load()
	if err != nil && !errors.Is(err, tokenstore.ErrNotFound) {
		log.Warn().Err(err).Msg("failed to load stored credential")
	}
	s.token = token
	return s
}

// HasCredential reports whether a credential is present. The credential is
// not necessarily proven valid; that only happens on first use.
func (s *Store) HasCredential() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}

// Token returns the active credential, or the empty string.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Profile returns the fetched profile, or nil when none has been fetched.
func (s *Store) Profile() *api.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// Login authenticates with the server. On success the credential is stored
// and persisted, the profile is fetched, and the account is recorded in the
// recent-accounts list. On failure the session is left unchanged and the
// error is returned for the caller to display.
func (s *Store) Login(username, password string) error {
	token, err := s.api.Login(username, password)
	if err != nil {
		return err
	}

	if err := s.adopt(token); err != nil {
		return err
	}

	if err := s.FetchProfile(); err != nil {
		// Credential established but unproven; the account cannot be recorded
		// without a profile.
		s.log.Warn().Err(err).Msg("failed to fetch profile after login")
		return nil
	}

	s.rememberActive()
	return nil
}

// Logout clears the credential and profile, in memory and in persisted
// storage. The account stays in the recent-accounts list; logging out is
// distinct from forgetting an account.
func (s *Store) Logout() {
	s.mu.Lock()
	s.token = ""
	s.profile = nil
	s.mu.Unlock()

	if err := s.tokens.Delete(); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear stored credential")
	}
}

// FetchProfile fetches the current user's profile. On failure the profile
// stays absent and the credential is retained; only the HTTP client clears a
// credential, and only on a proven-invalid response.
func (s *Store) FetchProfile() error {
	if !s.HasCredential() {
		return ErrNotAuthenticated
	}

	p, err := s.api.Me()
	if err != nil {
		return fmt.Errorf("failed to fetch profile: %w", err)
	}

	s.mu.Lock()
	s.profile = p
	s.mu.Unlock()
	return nil
}

// SwitchAccount adopts the credential snapshot of a recent account. On
// success the account is promoted to the front of the recent-accounts list.
// If the snapshot is rejected, the stale entry is removed, the credential is
// cleared, and the failure is re-raised; a failed switch is never treated as
// success.
func (s *Store) SwitchAccount(entry recents.Entry) error {
	if err := s.adopt(entry.Token); err != nil {
		return err
	}

	if err := s.FetchProfile(); err != nil {
		if rerr := s.recents.Remove(entry.ID); rerr != nil {
			s.log.Warn().Err(rerr).Str("username", entry.Username).Msg("failed to remove stale account")
		}
		// Idempotent with the HTTP client's teardown on 401.
		s.mu.Lock()
		s.token = ""
		s.profile = nil
		s.mu.Unlock()
		if derr := s.tokens.Delete(); derr != nil {
			s.log.Warn().Err(derr).Msg("failed to clear stored credential")
		}
		return fmt.Errorf("switch to %s failed: %w", entry.Username, err)
	}

	s.rememberActive()
	return nil
}

// ExpireSession clears the session after the server proves the credential
// invalid. It reports whether this call performed the clear, so that
// notification and redirect fire exactly once when several in-flight requests
// fail together.
func (s *Store) ExpireSession() bool {
	s.mu.Lock()
	if s.token == "" {
		s.mu.Unlock()
		return false
	}
	s.token = ""
	s.profile = nil
	s.mu.Unlock()

	if err := s.tokens.Delete(); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear stored credential")
	}
	return true
}

// Recents returns the recently used accounts, most recent first, excluding
// the currently active profile.
func (s *Store) Recents() []recents.Entry {
	s.mu.Lock()
	activeID := ""
	if s.profile != nil {
		activeID = s.profile.ID
	}
	s.mu.Unlock()

	var out []recents.Entry
	for _, e := range s.recents.List() {
		if e.ID != activeID {
			out = append(out, e)
		}
	}
	return out
}

// adopt installs a credential as active and persists it. Any previously
// fetched profile no longer matches and is dropped.
func (s *Store) adopt(token string) error {
	s.mu.Lock()
	s.token = token
	s.profile = nil
	s.mu.Unlock()

	if err := s.tokens.Save(token); err != nil {
		return err
	}
	return nil
}

// rememberActive records the active account in the recent-accounts list.
// Requires a fetched profile; called only after a successful login or switch.
func (s *Store) rememberActive() {
	s.mu.Lock()
	p := s.profile
	token := s.token
	s.mu.Unlock()

	if p == nil {
		return
	}
	if err := s.recents.Upsert(*p, token); err != nil {
		s.log.Warn().Err(err).Str("username", p.Username).Msg("failed to record recent account")
	}
}
