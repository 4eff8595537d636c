// Package nav gates view transitions on session and role state.
package nav

import (
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/pactlens/pactlens/internal/cli/api"
)

// Session is the session state the guard consults.
type Session interface {
	HasCredential() bool
	Profile() *api.Profile
	FetchProfile() error
	Logout()
}

// Action is the outcome of a guard evaluation.
type Action int

const (
	Allow Action = iota
	Redirect
)

// Decision is the result of evaluating a transition. Target names the
// redirect destination when Action is Redirect.
type Decision struct {
	Action Action
	Target string
	Reason string
}

// Guard decides allow/redirect before every view transition. It holds no
// state of its own; its only persistent input is the session.
type Guard struct {
	table   *Table
	session Session
	log     zerolog.Logger
}

// NewGuard creates a guard over the given route table and session.
func NewGuard(table *Table, s Session, log zerolog.Logger) *Guard {
	return &Guard{table: table, session: s, log: log}
}

// CheckName evaluates a transition to the named route.
func (g *Guard) CheckName(name string) (Decision, error) {
	route, ok := g.table.Route(name)
	if !ok {
		return Decision{}, fmt.Errorf("unknown view %q", name)
	}
	return g.Check(route), nil
}

// Check evaluates a transition to the destination route. The evaluation runs
// to completion, including any profile fetch, before the decision is
// returned. Overlapping evaluations are not cancelled; the last writer wins.
func (g *Guard) Check(dest Route) Decision {
	if dest.RequiresAuth && !g.session.HasCredential() {
		return Decision{Action: Redirect, Target: LoginRoute, Reason: "authentication required"}
	}

	if dest.Name == LoginRoute && g.session.HasCredential() {
		return Decision{Action: Redirect, Target: DefaultRoute, Reason: "already authenticated"}
	}

	// A credential without a profile has not been proven yet; fetch lazily.
	if g.session.HasCredential() && g.session.Profile() == nil {
		if err := g.session.FetchProfile(); err != nil {
			g.log.Warn().Err(err).Str("view", dest.Name).Msg("profile fetch failed during navigation")
			g.session.Logout()
			if dest.RequiresAuth {
				return Decision{Action: Redirect, Target: LoginRoute, Reason: "session could not be verified"}
			}
			return Decision{Action: Allow}
		}
	}

	if len(dest.Roles) > 0 {
		p := g.session.Profile()
		if p == nil || !slices.Contains(dest.Roles, p.Role) {
			// No dedicated forbidden view; under-privileged attempts land on
			// the default destination.
			return Decision{Action: Redirect, Target: DefaultRoute, Reason: "insufficient role"}
		}
	}

	return Decision{Action: Allow}
}
