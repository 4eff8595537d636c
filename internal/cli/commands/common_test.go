package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pactlens/pactlens/internal/cli/recents"
)

func TestFindRecent(t *testing.T) {
	entries := []recents.Entry{
		{ID: "u1", Username: "alice"},
		{ID: "u2", Username: "bob"},
	}

	e, ok := findRecent(entries, "bob")
	if !ok || e.ID != "u2" {
		t.Errorf("expected bob, got %+v ok=%v", e, ok)
	}

	if _, ok := findRecent(entries, "carol"); ok {
		t.Error("expected no match for carol")
	}

	if _, ok := findRecent(nil, "alice"); ok {
		t.Error("expected no match on empty list")
	}
}

func TestLoadRouteTable_FallsBackToDefault(t *testing.T) {
	table, err := loadRouteTable(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := table.Route("contracts"); !ok {
		t.Error("expected built-in table")
	}
}

func TestLoadRouteTable_ReadsOverride(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
- name: login
  path: /login
- name: dashboard
  path: /dashboard
  requires_auth: true
`)
	if err := os.WriteFile(filepath.Join(dir, routesFileName), yaml, 0600); err != nil {
		t.Fatal(err)
	}

	table, err := loadRouteTable(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := table.Route("contracts"); ok {
		t.Error("override table must replace the built-in one")
	}
	if _, ok := table.Route("dashboard"); !ok {
		t.Error("expected dashboard route from override")
	}
}

func TestLoadRouteTable_InvalidOverride(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, routesFileName), []byte("- name: only\n  path: /x\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := loadRouteTable(dir); err == nil {
		t.Error("expected validation error for table without login route")
	}
}
