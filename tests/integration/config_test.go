// Integration tests for configuration loading and precedence.
package integration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestDataDirFlagOverridesConfig verifies --data-dir wins over config.yaml.
func TestDataDirFlagOverridesConfig(t *testing.T) {
	env := NewTestEnv(t)
	flagDir := filepath.Join(env.TempDir, "flag-data")

	result := env.RunRaw(nil, "", "--config-dir", env.ConfigDir, "--data-dir", flagDir, "init")
	if result.ExitCode != 0 {
		t.Fatalf("init failed: %s", result.Stderr)
	}

	if _, err := os.Stat(filepath.Join(flagDir, "references.db")); err != nil {
		t.Errorf("expected store under flag data dir: %v", err)
	}
	if _, err := os.Stat(filepath.Join(env.DataDir, "references.db")); !os.IsNotExist(err) {
		t.Error("config data dir should not have been used")
	}
}

// TestDataDirEnvFallback verifies UNIQUEREF_DATA_DIR is used when neither
// flag nor config names a data directory.
func TestDataDirEnvFallback(t *testing.T) {
	env := NewTestEnv(t)
	configDir := filepath.Join(env.TempDir, "bare-config")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte("backend: sqlite\n"), 0644); err != nil {
		t.Fatal(err)
	}
	envDir := filepath.Join(env.TempDir, "env-data")

	result := env.RunRaw([]string{"UNIQUEREF_DATA_DIR=" + envDir}, "", "--config-dir", configDir, "init")
	if result.ExitCode != 0 {
		t.Fatalf("init failed: %s", result.Stderr)
	}
	if _, err := os.Stat(filepath.Join(envDir, "references.db")); err != nil {
		t.Errorf("expected store under env data dir: %v", err)
	}
}

// TestParentFromConfig verifies the parent record id can come from config.yaml.
func TestParentFromConfig(t *testing.T) {
	env := NewTestEnv(t)
	content := "backend: sqlite\ndata_dir: " + env.DataDir + "\nparent: page-home\n"
	if err := os.WriteFile(filepath.Join(env.ConfigDir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	env.Seed()

	result := env.MustRun("list")
	if !strings.Contains(result.Stdout, "No entries linked") {
		t.Errorf("expected empty list for configured parent, got:\n%s", result.Stdout)
	}
}

// TestParentRequired verifies commands fail cleanly without a parent.
func TestParentRequired(t *testing.T) {
	env := NewTestEnv(t)
	env.Seed()

	result := env.Run("list")
	if result.ExitCode == 0 {
		t.Error("expected non-zero exit without a parent")
	}
	if !strings.Contains(result.Stderr, "parent") {
		t.Errorf("expected parent hint in error, got:\n%s", result.Stderr)
	}
}

// TestDefaultConfigWritten verifies a default config.yaml appears on first run.
func TestDefaultConfigWritten(t *testing.T) {
	env := NewTestEnv(t)
	configDir := filepath.Join(env.TempDir, "fresh-config")

	result := env.RunRaw(nil, "", "--config-dir", configDir, "--data-dir", env.DataDir, "init")
	if result.ExitCode != 0 {
		t.Fatalf("init failed: %s", result.Stderr)
	}
	data, err := os.ReadFile(filepath.Join(configDir, "config.yaml"))
	if err != nil {
		t.Fatalf("expected default config.yaml: %v", err)
	}
	if !strings.Contains(string(data), "backend: sqlite") {
		t.Errorf("unexpected default config content:\n%s", data)
	}
}

// TestAllowedTypesRestrictLinking verifies the allow-list rejects other types.
func TestAllowedTypesRestrictLinking(t *testing.T) {
	env := NewTestEnv(t)
	content := "backend: sqlite\ndata_dir: " + env.DataDir + "\nallowed_types:\n  - article\n"
	if err := os.WriteFile(filepath.Join(env.ConfigDir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	env.Seed()

	types := env.MustRun("--parent", "page-home", "types")
	if strings.Contains(types.Stdout, "Author") {
		t.Errorf("expected allow-list to hide authors, got:\n%s", types.Stdout)
	}

	result := env.Run("--parent", "page-home", "add", "page-about")
	if result.ExitCode == 0 {
		t.Error("expected non-zero exit when linking a disallowed type")
	}

	env.MustRun("--parent", "page-home", "add", "article-go")
	if rows := env.ListRows("page-home"); len(rows) != 1 || rows[0].TargetID != "article-go" {
		t.Errorf("expected allowed type linked, got %v", TargetIDs(rows))
	}
}
