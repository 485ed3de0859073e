package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenNothingElseSet(t *testing.T) {
	cfg, err := Load("", "", "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Default()
	if cfg != want {
		t.Fatalf("cfg = %+v, want %+v", cfg, want)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tinysql.toml")
	content := "db_path = \"custom.pesapal\"\nlog_level = \"debug\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := Load(path, "", "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBPath != "custom.pesapal" || cfg.LogLevel != "debug" {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"), "", "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tinysql.toml")
	if err := os.WriteFile(path, []byte("db_path = \"from_file.pesapal\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("TINYSQL_DB_PATH", "from_env.pesapal")

	cfg, err := Load(path, "", "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBPath != "from_env.pesapal" {
		t.Fatalf("DBPath = %q, want from_env.pesapal", cfg.DBPath)
	}
}

func TestLoadFlagOverridesEverything(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tinysql.toml")
	if err := os.WriteFile(path, []byte("db_path = \"from_file.pesapal\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("TINYSQL_DB_PATH", "from_env.pesapal")

	cfg, err := Load(path, "from_flag.pesapal", "warn")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBPath != "from_flag.pesapal" || cfg.LogLevel != "warn" {
		t.Fatalf("cfg = %+v", cfg)
	}
}
