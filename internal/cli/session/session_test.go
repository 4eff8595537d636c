package session

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/pactlens/pactlens/internal/cli/api"
	"github.com/pactlens/pactlens/internal/cli/recents"
	"github.com/pactlens/pactlens/internal/cli/tokenstore"
)

type fakeAPI struct {
	loginToken string
	loginErr   error
	profile    *api.Profile
	meErr      error
	meCalls    int
}

func (f *fakeAPI) Login(username, password string) (string, error) {
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return f.loginToken, nil
}

func (f *fakeAPI) Me() (*api.Profile, error) {
	f.meCalls++
	if f.meErr != nil {
		return nil, f.meErr
	}
	p := *f.profile
	return &p, nil
}

func testProfile(id, username, role string) *api.Profile {
	return &api.Profile{
		ID:       id,
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
	}
}

func newTestStore(t *testing.T, client API) (*Store, *tokenstore.Memory, *recents.Cache) {
	t.Helper()
	tokens := &tokenstore.Memory{}
	cache := recents.New(filepath.Join(t.TempDir(), recents.FileName), zerolog.Nop())
	return New(client, tokens, cache, zerolog.Nop()), tokens, cache
}

func TestNew_SeedsCredentialFromStorage(t *testing.T) {
	tokens := &tokenstore.Memory{}
	if err := tokens.Save("persisted-token"); err != nil {
		t.Fatal(err)
	}
	cache := recents.New(filepath.Join(t.TempDir(), recents.FileName), zerolog.Nop())

	s := New(&fakeAPI{}, tokens, cache, zerolog.Nop())
	if s.Token() != "persisted-token" {
		t.Errorf("expected seeded credential, got %q", s.Token())
	}
	if s.Profile() != nil {
		t.Error("profile must never be seeded from storage")
	}
}

func TestLogin_Success(t *testing.T) {
	client := &fakeAPI{loginToken: "tok-1", profile: testProfile("u1", "alice", api.RoleAdmin)}
	s, tokens, cache := newTestStore(t, client)

	if err := s.Login("alice", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}

	if s.Token() != "tok-1" {
		t.Errorf("expected active credential, got %q", s.Token())
	}
	if stored, _ := tokens.Load(); stored != "tok-1" {
		t.Errorf("expected persisted credential, got %q", stored)
	}
	if p := s.Profile(); p == nil || p.Username != "alice" {
		t.Errorf("expected fetched profile, got %+v", p)
	}

	entries := cache.List()
	if len(entries) != 1 || entries[0].ID != "u1" || entries[0].Token != "tok-1" {
		t.Errorf("expected recorded recent account, got %+v", entries)
	}
}

func TestLogin_FailureLeavesStateUnchanged(t *testing.T) {
	client := &fakeAPI{loginErr: errors.New("bad credentials")}
	s, tokens, cache := newTestStore(t, client)

	err := s.Login("alice", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}

	if s.HasCredential() {
		t.Error("credential must stay absent after failed login")
	}
	if _, err := tokens.Load(); !errors.Is(err, tokenstore.ErrNotFound) {
		t.Error("nothing must be persisted after failed login")
	}
	if len(cache.List()) != 0 {
		t.Error("no recent account must be recorded after failed login")
	}
}

func TestLogout_KeepsRecentAccounts(t *testing.T) {
	client := &fakeAPI{loginToken: "tok-1", profile: testProfile("u1", "alice", api.RoleAdmin)}
	s, tokens, cache := newTestStore(t, client)
	if err := s.Login("alice", "secret"); err != nil {
		t.Fatal(err)
	}

	s.Logout()

	if s.HasCredential() || s.Profile() != nil {
		t.Error("logout must clear credential and profile")
	}
	if _, err := tokens.Load(); !errors.Is(err, tokenstore.ErrNotFound) {
		t.Error("logout must clear the persisted credential")
	}
	if len(cache.List()) != 1 {
		t.Error("logout must not forget the account")
	}
}

func TestFetchProfile_RequiresCredential(t *testing.T) {
	s, _, _ := newTestStore(t, &fakeAPI{})
	if err := s.FetchProfile(); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestFetchProfile_FailureKeepsCredential(t *testing.T) {
	client := &fakeAPI{meErr: errors.New("boom")}
	tokens := &tokenstore.Memory{}
	if err := tokens.Save("tok-1"); err != nil {
		t.Fatal(err)
	}
	cache := recents.New(filepath.Join(t.TempDir(), recents.FileName), zerolog.Nop())
	s := New(client, tokens, cache, zerolog.Nop())

	if err := s.FetchProfile(); err == nil {
		t.Fatal("expected error")
	}

	// Session is degraded, not destroyed: only the HTTP client clears a
	// credential, on a proven-invalid response.
	if !s.HasCredential() {
		t.Error("credential must be retained after a failed profile fetch")
	}
	if s.Profile() != nil {
		t.Error("profile must stay absent after a failed fetch")
	}
}

func TestSwitchAccount_Success(t *testing.T) {
	client := &fakeAPI{loginToken: "tok-a", profile: testProfile("ua", "alice", api.RoleAdmin)}
	s, _, cache := newTestStore(t, client)
	if err := s.Login("alice", "secret"); err != nil {
		t.Fatal(err)
	}

	// bob authenticated earlier; his snapshot is in the cache.
	if err := cache.Upsert(*testProfile("ub", "bob", api.RoleReviewer), "tok-b"); err != nil {
		t.Fatal(err)
	}

	client.profile = testProfile("ub", "bob", api.RoleReviewer)
	entries := s.Recents()
	if len(entries) != 1 || entries[0].Username != "bob" {
		t.Fatalf("expected bob in recents, got %+v", entries)
	}

	if err := s.SwitchAccount(entries[0]); err != nil {
		t.Fatalf("switch: %v", err)
	}

	if s.Token() != "tok-b" {
		t.Errorf("expected adopted snapshot, got %q", s.Token())
	}
	if p := s.Profile(); p == nil || p.Username != "bob" {
		t.Errorf("expected bob's profile, got %+v", p)
	}
	if got := cache.List(); got[0].ID != "ub" {
		t.Errorf("expected bob promoted to front, got %+v", got)
	}
}

func TestSwitchAccount_StaleSnapshot(t *testing.T) {
	client := &fakeAPI{meErr: errors.New("token rejected")}
	s, tokens, cache := newTestStore(t, client)

	stale := recents.Entry{ID: "ub", Username: "bob", Token: "stale-token"}
	if err := cache.Upsert(api.Profile{ID: "ub", Username: "bob"}, "stale-token"); err != nil {
		t.Fatal(err)
	}

	err := s.SwitchAccount(stale)
	if err == nil {
		t.Fatal("a failed switch must not be treated as success")
	}

	if s.HasCredential() {
		t.Error("credential must be cleared after a failed switch")
	}
	if _, lerr := tokens.Load(); !errors.Is(lerr, tokenstore.ErrNotFound) {
		t.Error("persisted credential must be cleared after a failed switch")
	}
	if len(cache.List()) != 0 {
		t.Error("the stale entry must be removed")
	}
}

func TestExpireSession_ExactlyOnce(t *testing.T) {
	client := &fakeAPI{loginToken: "tok-1", profile: testProfile("u1", "alice", api.RoleAdmin)}
	s, _, _ := newTestStore(t, client)
	if err := s.Login("alice", "secret"); err != nil {
		t.Fatal(err)
	}

	// Several in-flight requests detect the failure together; only one may
	// win the teardown.
	const concurrent = 8
	var wg sync.WaitGroup
	results := make(chan bool, concurrent)
	for i := 0; i < concurrent; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- s.ExpireSession()
		}()
	}
	wg.Wait()
	close(results)

	wins := 0
	for r := range results {
		if r {
			wins++
		}
	}
	if wins != 1 {
		t.Errorf("expected exactly one teardown, got %d", wins)
	}
	if s.HasCredential() {
		t.Error("credential must be cleared")
	}
}

func TestRecents_ExcludesActiveProfile(t *testing.T) {
	client := &fakeAPI{loginToken: "tok-1", profile: testProfile("u1", "alice", api.RoleAdmin)}
	s, _, cache := newTestStore(t, client)
	if err := s.Login("alice", "secret"); err != nil {
		t.Fatal(err)
	}
	if err := cache.Upsert(*testProfile("u2", "bob", api.RoleDrafter), "tok-2"); err != nil {
		t.Fatal(err)
	}

	entries := s.Recents()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].ID != "u2" {
		t.Errorf("active account must be excluded, got %s", entries[0].ID)
	}

	// The active account stays in persisted storage.
	if len(cache.List()) != 2 {
		t.Error("active account must be retained in storage")
	}
}

func TestRecents_NoProfileExcludesNothing(t *testing.T) {
	s, _, cache := newTestStore(t, &fakeAPI{})
	for i := 1; i <= 2; i++ {
		p := testProfile(fmt.Sprintf("u%d", i), fmt.Sprintf("user%d", i), api.RoleDrafter)
		if err := cache.Upsert(*p, "t"); err != nil {
			t.Fatal(err)
		}
	}
	if got := s.Recents(); len(got) != 2 {
		t.Errorf("expected 2 entries with no active profile, got %d", len(got))
	}
}
