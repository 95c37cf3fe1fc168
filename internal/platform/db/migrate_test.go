package db

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/portal/portal/migrations"
)

func TestLoadMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"001_core.sql":     {Data: []byte("CREATE TABLE cancer_study (cancer_study_id SERIAL PRIMARY KEY);")},
		"002_profiles.sql": {Data: []byte("CREATE TABLE genetic_profile (genetic_profile_id SERIAL PRIMARY KEY);")},
		"003_events.sql":   {Data: []byte("CREATE TABLE clinical_event (clinical_event_id SERIAL PRIMARY KEY);")},
	}

	got, err := NewMigrator(nil, fsys).LoadMigrations()
	if err != nil {
		t.Fatalf("LoadMigrations() error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 migrations, got %d", len(got))
	}
	if got[0].Version != 1 || got[0].Name != "001_core.sql" {
		t.Errorf("unexpected first migration: %+v", got[0])
	}
	if !strings.Contains(got[2].SQL, "clinical_event") {
		t.Errorf("unexpected SQL content: %s", got[2].SQL)
	}
}

func TestLoadMigrations_SortOrder(t *testing.T) {
	fsys := fstest.MapFS{
		"010_tables.sql": {Data: []byte("SELECT 10;")},
		"002_second.sql": {Data: []byte("SELECT 2;")},
		"001_first.sql":  {Data: []byte("SELECT 1;")},
		"005_middle.sql": {Data: []byte("SELECT 5;")},
	}

	got, err := NewMigrator(nil, fsys).LoadMigrations()
	if err != nil {
		t.Fatalf("LoadMigrations() error: %v", err)
	}
	want := []int{1, 2, 5, 10}
	if len(got) != len(want) {
		t.Fatalf("expected %d migrations, got %d", len(want), len(got))
	}
	for i, v := range want {
		if got[i].Version != v {
			t.Errorf("migrations[%d].Version = %d, want %d", i, got[i].Version, v)
		}
	}
}

func TestLoadMigrations_SkipsNonMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"001_core.sql":   {Data: []byte("SELECT 1;")},
		"README.md":      {Data: []byte("docs")},
		"seed.sql":       {Data: []byte("SELECT 0;")},
		"abc_nonnum.sql": {Data: []byte("SELECT 0;")},
		"sub/002_x.sql":  {Data: []byte("SELECT 2;")},
	}

	got, err := NewMigrator(nil, fsys).LoadMigrations()
	if err != nil {
		t.Fatalf("LoadMigrations() error: %v", err)
	}
	if len(got) != 1 || got[0].Version != 1 {
		t.Errorf("expected only 001_core.sql, got %+v", got)
	}
}

func TestLoadMigrations_DuplicateVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"001_core.sql": {Data: []byte("SELECT 1;")},
		"1_again.sql":  {Data: []byte("SELECT 1;")},
	}

	if _, err := NewMigrator(nil, fsys).LoadMigrations(); err == nil {
		t.Fatal("expected error for duplicate version")
	}
}

func TestLoadMigrations_Embedded(t *testing.T) {
	got, err := NewMigrator(nil, migrations.FS).LoadMigrations()
	if err != nil {
		t.Fatalf("LoadMigrations() error: %v", err)
	}
	if len(got) == 0 || got[0].Version != 1 {
		t.Fatalf("expected embedded migrations starting at version 1, got %+v", got)
	}
	for _, table := range []string{"genetic_alteration", "sample_cna_event", "clinical_event_data"} {
		if !strings.Contains(got[0].SQL, table) {
			t.Errorf("expected core migration to create %s", table)
		}
	}
}

func TestSchemaPattern(t *testing.T) {
	valid := []string{"portal", "cbioportal_2024", "_private"}
	for _, s := range valid {
		if !schemaPattern.MatchString(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}
	invalid := []string{"", "1portal", "portal; DROP TABLE sample", "a-b"}
	for _, s := range invalid {
		if schemaPattern.MatchString(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}
