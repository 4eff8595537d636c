package nav

import (
	"strings"
	"testing"
)

func TestNewTable_Validation(t *testing.T) {
	valid := []Route{
		{Name: LoginRoute, Path: "/login"},
		{Name: DefaultRoute, Path: "/dashboard", RequiresAuth: true},
	}

	tests := []struct {
		name    string
		routes  []Route
		wantErr string
	}{
		{
			name:   "minimal valid table",
			routes: valid,
		},
		{
			name:    "missing login route",
			routes:  []Route{{Name: DefaultRoute, Path: "/dashboard", RequiresAuth: true}},
			wantErr: "no \"login\" route",
		},
		{
			name:    "missing default route",
			routes:  []Route{{Name: LoginRoute, Path: "/login"}},
			wantErr: "no \"dashboard\" route",
		},
		{
			name:    "duplicate name",
			routes:  append(valid, Route{Name: LoginRoute, Path: "/other"}),
			wantErr: "duplicate route",
		},
		{
			name:    "empty name",
			routes:  append(valid, Route{Path: "/x"}),
			wantErr: "no name",
		},
		{
			name:    "empty path",
			routes:  append(valid, Route{Name: "x"}),
			wantErr: "no path",
		},
		{
			name:    "roles without auth",
			routes:  append(valid, Route{Name: "x", Path: "/x", Roles: []string{"admin"}}),
			wantErr: "does not require auth",
		},
		{
			name: "login requiring auth",
			routes: []Route{
				{Name: LoginRoute, Path: "/login", RequiresAuth: true},
				{Name: DefaultRoute, Path: "/dashboard", RequiresAuth: true},
			},
			wantErr: "must not require auth",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.routes)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadTable_YAML(t *testing.T) {
	yaml := `
- name: login
  path: /login
- name: dashboard
  path: /dashboard
  requires_auth: true
- name: users
  path: /users
  requires_auth: true
  roles: [admin]
`
	table, err := LoadTable(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	users, ok := table.Route("users")
	if !ok {
		t.Fatal("missing users route")
	}
	if !users.RequiresAuth || len(users.Roles) != 1 || users.Roles[0] != "admin" {
		t.Errorf("unexpected users route: %+v", users)
	}

	if got := len(table.Routes()); got != 3 {
		t.Errorf("expected 3 routes, got %d", got)
	}
}

func TestLoadTable_InvalidYAML(t *testing.T) {
	if _, err := LoadTable(strings.NewReader("{nope")); err == nil {
		t.Error("expected parse error")
	}
}

func TestDefaultTable(t *testing.T) {
	table := DefaultTable()
	for _, name := range []string{LoginRoute, DefaultRoute, "contracts", "reviews", "rules", "users"} {
		if _, ok := table.Route(name); !ok {
			t.Errorf("missing built-in route %q", name)
		}
	}
}
