// Integration tests for linking entries: add, duplicates, cross-parent
// conflicts and create-and-link.
package integration

import (
	"strings"
	"testing"
)

// TestAddAndList verifies adding entries and the rendered rows.
func TestAddAndList(t *testing.T) {
	env := NewTestEnv(t)
	env.Seed()

	env.MustRun("--parent", "page-home", "add", "article-go", "article-sync")

	rows := env.ListRows("page-home")
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].TargetID != "article-go" || rows[1].TargetID != "article-sync" {
		t.Errorf("unexpected order: %v", TargetIDs(rows))
	}
	if rows[0].Title != "Why Go" {
		t.Errorf("expected resolved title, got %q", rows[0].Title)
	}
	if rows[0].Status != "published" {
		t.Errorf("expected published status, got %q", rows[0].Status)
	}
	if rows[1].Status != "draft" {
		t.Errorf("expected draft status, got %q", rows[1].Status)
	}
}

// TestAddPersistsAcrossInvocations verifies the field value survives the
// process that wrote it.
func TestAddPersistsAcrossInvocations(t *testing.T) {
	env := NewTestEnv(t)
	env.Seed()

	env.MustRun("--parent", "page-home", "add", "article-go")
	env.MustRun("--parent", "page-home", "add", "article-sync")

	rows := env.ListRows("page-home")
	if got := TargetIDs(rows); len(got) != 2 || got[0] != "article-go" || got[1] != "article-sync" {
		t.Errorf("unexpected list after two invocations: %v", got)
	}
}

// TestAddDuplicateSkipped verifies that re-adding a linked entry is skipped
// with a warning and without an error.
func TestAddDuplicateSkipped(t *testing.T) {
	env := NewTestEnv(t)
	env.Seed()

	env.MustRun("--parent", "page-home", "add", "article-go")
	result := env.MustRun("--parent", "page-home", "add", "article-go")

	if !strings.Contains(result.Stdout, "already") {
		t.Errorf("expected already-linked warning, got:\n%s", result.Stdout)
	}
	rows := env.ListRows("page-home")
	if len(rows) != 1 {
		t.Errorf("expected 1 row after duplicate add, got %d", len(rows))
	}
}

// TestAddUnknownEntry verifies that adding a missing entry fails.
func TestAddUnknownEntry(t *testing.T) {
	env := NewTestEnv(t)
	env.Seed()

	result := env.Run("--parent", "page-home", "add", "no-such-entry")
	if result.ExitCode == 0 {
		t.Error("expected non-zero exit for unknown entry")
	}
}

// TestConflictMoveConfirmed verifies the move path: confirming the prompt
// unlinks the entry from the previous parent and links it here.
func TestConflictMoveConfirmed(t *testing.T) {
	env := NewTestEnv(t)
	env.Seed()

	env.MustRun("--parent", "page-home", "add", "article-go")
	env.MustRun("--parent", "page-about", "add", "article-go", "--yes")

	if rows := env.ListRows("page-home"); len(rows) != 0 {
		t.Errorf("expected previous parent emptied, got %v", TargetIDs(rows))
	}
	rows := env.ListRows("page-about")
	if len(rows) != 1 || rows[0].TargetID != "article-go" {
		t.Errorf("expected article-go on new parent, got %v", TargetIDs(rows))
	}
}

// TestConflictMoveDeclined verifies the skip path: declining the prompt
// leaves both parents unchanged and exits cleanly.
func TestConflictMoveDeclined(t *testing.T) {
	env := NewTestEnv(t)
	env.Seed()

	env.MustRun("--parent", "page-home", "add", "article-go")
	result := env.RunStdin("skip\n", "--parent", "page-about", "add", "article-go")
	if result.ExitCode != 0 {
		t.Fatalf("declined add should exit zero, got %d:\n%s", result.ExitCode, result.Stderr)
	}
	if !strings.Contains(result.Stdout, "already linked") {
		t.Errorf("expected move prompt, got:\n%s", result.Stdout)
	}

	if rows := env.ListRows("page-home"); len(rows) != 1 {
		t.Errorf("expected previous parent untouched, got %v", TargetIDs(rows))
	}
	if rows := env.ListRows("page-about"); len(rows) != 0 {
		t.Errorf("expected declined entry absent, got %v", TargetIDs(rows))
	}
}

// TestConflictPromptAccepted verifies typing "move" at the prompt works the
// same as --yes.
func TestConflictPromptAccepted(t *testing.T) {
	env := NewTestEnv(t)
	env.Seed()

	env.MustRun("--parent", "page-home", "add", "article-sync")
	result := env.RunStdin("move\n", "--parent", "page-about", "add", "article-sync")
	if result.ExitCode != 0 {
		t.Fatalf("confirmed add failed: %s", result.Stderr)
	}

	if rows := env.ListRows("page-about"); len(rows) != 1 || rows[0].TargetID != "article-sync" {
		t.Errorf("expected article-sync moved, got %v", TargetIDs(rows))
	}
}

// TestCreateAndLink verifies creating a blank entry links it as a draft with
// the fallback title.
func TestCreateAndLink(t *testing.T) {
	env := NewTestEnv(t)
	env.Seed()

	env.MustRun("--parent", "page-home", "create", "article")

	rows := env.ListRows("page-home")
	if len(rows) != 1 {
		t.Fatalf("expected 1 row after create, got %d", len(rows))
	}
	if rows[0].Title != "Untitled" {
		t.Errorf("expected fallback title, got %q", rows[0].Title)
	}
	if rows[0].Status != "draft" {
		t.Errorf("expected draft status, got %q", rows[0].Status)
	}
}

// TestCreateUnknownType verifies creating with a missing type fails.
func TestCreateUnknownType(t *testing.T) {
	env := NewTestEnv(t)
	env.Seed()

	result := env.Run("--parent", "page-home", "create", "no-such-type")
	if result.ExitCode == 0 {
		t.Error("expected non-zero exit for unknown type")
	}
}
