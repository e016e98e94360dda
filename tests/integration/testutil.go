// Package integration provides CLI integration tests for uniqueref.
package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

var (
	// uniquerefBin is the path to the built uniqueref binary.
	uniquerefBin string
	// buildErr captures any build error.
	buildErr error
)

// BuildError wraps a build error with output.
type BuildError struct {
	Err    error
	Output string
}

func (e *BuildError) Error() string {
	return e.Err.Error() + ": " + e.Output
}

// FindProjectRoot finds the project root by walking up and looking for go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		goModPath := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// SetUniquerefBin sets the path to the uniqueref binary (called from TestMain).
func SetUniquerefBin(path string) {
	uniquerefBin = path
}

// SetBuildErr sets the build error (called from TestMain).
func SetBuildErr(err error) {
	buildErr = err
}

// TestEnv provides an isolated test environment with its own config and data
// directory.
type TestEnv struct {
	t         *testing.T
	TempDir   string
	ConfigDir string
	DataDir   string
}

// NewTestEnv creates a new isolated test environment.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	if buildErr != nil {
		t.Fatalf("failed to build uniqueref: %v", buildErr)
	}
	if uniquerefBin == "" {
		t.Fatal("uniqueref binary not built (uniquerefBin is empty)")
	}

	tempDir := t.TempDir()
	dataDir := filepath.Join(tempDir, "data")
	configDir := filepath.Join(tempDir, "config")

	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	configContent := "backend: sqlite\ndata_dir: " + dataDir + "\nfield: related\nlocale: en-US\n"
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	return &TestEnv{
		t:         t,
		TempDir:   tempDir,
		ConfigDir: configDir,
		DataDir:   dataDir,
	}
}

// CmdResult holds the result of a uniqueref command execution.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Run executes the uniqueref CLI with the test environment's config and data
// directories plus the given arguments.
func (e *TestEnv) Run(args ...string) CmdResult {
	e.t.Helper()
	allArgs := append([]string{"--config-dir", e.ConfigDir, "--data-dir", e.DataDir}, args...)
	return e.RunRaw(nil, "", allArgs...)
}

// RunStdin is Run with the given string piped to stdin.
func (e *TestEnv) RunStdin(stdin string, args ...string) CmdResult {
	e.t.Helper()
	allArgs := append([]string{"--config-dir", e.ConfigDir, "--data-dir", e.DataDir}, args...)
	return e.RunRaw(nil, stdin, allArgs...)
}

// RunRaw executes the uniqueref CLI with exactly the given arguments and
// optional extra environment variables, no implicit flags.
func (e *TestEnv) RunRaw(extraEnv []string, stdin string, args ...string) CmdResult {
	e.t.Helper()

	cmd := exec.Command(uniquerefBin, args...)
	if len(extraEnv) > 0 {
		cmd.Env = append(os.Environ(), extraEnv...)
	}
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			e.t.Fatalf("failed to run uniqueref: %v", err)
		}
	}

	return CmdResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}

// MustRun executes the uniqueref CLI and fails the test if it returns non-zero.
func (e *TestEnv) MustRun(args ...string) CmdResult {
	e.t.Helper()
	result := e.Run(args...)
	if result.ExitCode != 0 {
		e.t.Fatalf("uniqueref %v failed with exit code %d:\nstdout: %s\nstderr: %s",
			args, result.ExitCode, result.Stdout, result.Stderr)
	}
	return result
}

// Seed initializes the store and loads the demo types and entries.
func (e *TestEnv) Seed() {
	e.t.Helper()
	e.MustRun("init")
	e.MustRun("seed")
}

// ParseJSON parses JSON output into the target type.
func ParseJSON[T any](t *testing.T, jsonStr string) T {
	t.Helper()
	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		t.Fatalf("failed to parse JSON %q: %v", jsonStr, err)
	}
	return result
}

// Row mirrors the JSON shape of one list entry.
type Row struct {
	LocalKey  string `json:"LocalKey"`
	TargetID  string `json:"TargetID"`
	Title     string `json:"Title"`
	Status    string `json:"Status"`
	Duplicate bool   `json:"Duplicate"`
	Missing   bool   `json:"Missing"`
}

// ListRows runs list --json for the given parent and parses the rows.
func (e *TestEnv) ListRows(parent string) []Row {
	e.t.Helper()
	result := e.MustRun("--parent", parent, "--json", "list")
	return ParseJSON[[]Row](e.t, result.Stdout)
}

// TargetIDs projects rows to their target ids in order.
func TargetIDs(rows []Row) []string {
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.TargetID)
	}
	return ids
}
