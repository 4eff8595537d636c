package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pactlens/pactlens/internal/cli/api"
	"github.com/pactlens/pactlens/internal/cli/nav"
	"github.com/pactlens/pactlens/internal/cli/notify"
	"github.com/pactlens/pactlens/internal/cli/recents"
	"github.com/pactlens/pactlens/internal/cli/session"
	"github.com/pactlens/pactlens/internal/cli/tokenstore"
	"github.com/pactlens/pactlens/internal/cli/userconfig"
	"github.com/pactlens/pactlens/internal/logger"
)

const routesFileName = "routes.yaml"

// stack is the wired client-side subsystem a command operates on.
type stack struct {
	client  *api.Client
	session *session.Store
	recents *recents.Cache
	guard   *nav.Guard
}

// buildStack constructs the session service and its collaborators once per
// command invocation and wires the auth-failure feedback path: a rejected
// credential tears the session down, announces it once, and sends the user
// back through the login route.
func buildStack() (*stack, error) {
	log := logger.GetLogger()

	cfg, err := userconfig.Load()
	if err != nil {
		return nil, err
	}
	if cfg.ServerURL == "" {
		return nil, fmt.Errorf("no server configured. Run 'pactlens init <server-url>' first")
	}

	dir, err := userconfig.Dir()
	if err != nil {
		return nil, err
	}

	cache := recents.New(filepath.Join(dir, recents.FileName), log)
	client := api.New(cfg.ServerURL)
	sess := session.New(client, tokenstore.Keyring{}, cache, log)

	notifier := notify.NewConsole()
	client.Notifier = notifier
	client.TokenFunc = sess.Token
	client.OnAuthFailure = func() {
		if sess.ExpireSession() {
			notifier.SessionExpired()
		}
	}

	table, err := loadRouteTable(dir)
	if err != nil {
		return nil, err
	}

	return &stack{
		client:  client,
		session: sess,
		recents: cache,
		guard:   nav.NewGuard(table, sess, log),
	}, nil
}

// loadRouteTable loads routes.yaml from the config dir when present,
// otherwise the built-in table.
func loadRouteTable(dir string) (*nav.Table, error) {
	f, err := os.Open(filepath.Join(dir, routesFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nav.DefaultTable(), nil
		}
		return nil, fmt.Errorf("failed to open route table: %w", err)
	}
	defer f.Close()

	table, err := nav.LoadTable(f)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", routesFileName, err)
	}
	return table, nil
}

// findRecent resolves a recent account by username.
func findRecent(entries []recents.Entry, username string) (recents.Entry, bool) {
	for _, e := range entries {
		if e.Username == username {
			return e, true
		}
	}
	return recents.Entry{}, false
}
