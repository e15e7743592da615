package db

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestListMigrationsOrdersAndFilters(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"0002_add_index.sql", "0001_init.sql", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("-- sql"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "archive.sql"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	names, err := ListMigrations(dir)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"0001_init.sql", "0002_add_index.sql"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
}

func TestListMigrationsMissingDir(t *testing.T) {
	if _, err := ListMigrations(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
