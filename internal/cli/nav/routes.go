package nav

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/pactlens/pactlens/internal/cli/api"
)

// Well-known route names. The login route and the default authenticated
// destination are fixed redirect targets and must exist in every table.
const (
	LoginRoute   = "login"
	DefaultRoute = "dashboard"
)

// Route describes a navigable view and its access requirements.
type Route struct {
	Name         string   `yaml:"name"`
	Path         string   `yaml:"path"`
	RequiresAuth bool     `yaml:"requires_auth"`
	Roles        []string `yaml:"roles,omitempty"`
}

// Table is a validated set of routes, looked up by name.
type Table struct {
	routes map[string]Route
	order  []string
}

// NewTable validates the given routes and builds a table. Validation happens
// here, at construction time, so guard evaluation never sees malformed
// metadata.
func NewTable(routes []Route) (*Table, error) {
	t := &Table{routes: make(map[string]Route, len(routes))}

	for _, r := range routes {
		if r.Name == "" {
			return nil, fmt.Errorf("route with path %q has no name", r.Path)
		}
		if r.Path == "" {
			return nil, fmt.Errorf("route %q has no path", r.Name)
		}
		if _, dup := t.routes[r.Name]; dup {
			return nil, fmt.Errorf("duplicate route %q", r.Name)
		}
		if len(r.Roles) > 0 && !r.RequiresAuth {
			return nil, fmt.Errorf("route %q restricts roles but does not require auth", r.Name)
		}
		t.routes[r.Name] = r
		t.order = append(t.order, r.Name)
	}

	login, ok := t.routes[LoginRoute]
	if !ok {
		return nil, fmt.Errorf("route table has no %q route", LoginRoute)
	}
	if login.RequiresAuth {
		return nil, fmt.Errorf("the %q route must not require auth", LoginRoute)
	}
	if _, ok := t.routes[DefaultRoute]; !ok {
		return nil, fmt.Errorf("route table has no %q route", DefaultRoute)
	}

	return t, nil
}

// DefaultTable returns the built-in route table.
func DefaultTable() *Table {
	t, err := NewTable([]Route{
		{Name: LoginRoute, Path: "/login"},
		{Name: DefaultRoute, Path: "/dashboard", RequiresAuth: true},
		{Name: "contracts", Path: "/contracts", RequiresAuth: true},
		{Name: "reviews", Path: "/reviews", RequiresAuth: true},
		{Name: "rules", Path: "/rules", RequiresAuth: true},
		{Name: "users", Path: "/users", RequiresAuth: true, Roles: []string{api.RoleAdmin}},
	})
	if err != nil {
		// The built-in table is fixed; a validation failure is a programming
		// error.
		panic(err)
	}
	return t
}

// LoadTable reads a YAML route list and builds a validated table.
func LoadTable(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read route table: %w", err)
	}

	var routes []Route
	if err := yaml.Unmarshal(data, &routes); err != nil {
		return nil, fmt.Errorf("failed to parse route table: %w", err)
	}
	return NewTable(routes)
}

// Route looks up a route by name.
func (t *Table) Route(name string) (Route, bool) {
	r, ok := t.routes[name]
	return r, ok
}

// Routes returns all routes in declaration order.
func (t *Table) Routes() []Route {
	out := make([]Route, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.routes[name])
	}
	return out
}
