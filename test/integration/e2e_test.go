//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var allTargets = []string{
	"GEMINI.md",
	"CLAUDE.md",
	".github/copilot-instructions.md",
	".cursorrules",
	".clinerules",
	".windsurfrules",
}

// TestFullFlowFromScratch runs setup non-interactively in an empty project and
// checks every link, the canonical document, and the ignore file.
func TestFullFlowFromScratch(t *testing.T) {
	env := setupTestEnv(t)

	res := env.run(t, "", "--yes")
	if res.ExitCode != 0 {
		t.Fatalf("exit code %d\nstdout:\n%s\nstderr:\n%s", res.ExitCode, res.Stdout, res.Stderr)
	}

	canonical := filepath.Join(env.ProjectDir, "Instructions.md")
	assertFileExists(t, canonical)
	assertFileContains(t, canonical, "# AI Agent Instructions")

	for _, p := range allTargets {
		link := filepath.Join(env.ProjectDir, filepath.FromSlash(p))
		want := "Instructions.md"
		if strings.Contains(p, "/") {
			want = "../Instructions.md"
		}
		assertSymlinkTo(t, link, want)
	}

	ignore := readFile(t, filepath.Join(env.ProjectDir, ".gitignore"))
	if ignore != strings.Join(allTargets, "\n")+"\n" {
		t.Errorf("unexpected .gitignore:\n%s", ignore)
	}
}

// TestFullFlowIdempotent runs setup twice and expects no change the second time.
func TestFullFlowIdempotent(t *testing.T) {
	env := setupTestEnv(t)
	writeFile(t, filepath.Join(env.ProjectDir, ".gitignore"), "node_modules/\r\n")

	if res := env.run(t, "", "--yes"); res.ExitCode != 0 {
		t.Fatalf("first run failed: %s", res.Stderr)
	}
	first := readFile(t, filepath.Join(env.ProjectDir, ".gitignore"))

	res := env.run(t, "", "--yes")
	if res.ExitCode != 0 {
		t.Fatalf("second run failed: %s", res.Stderr)
	}
	if !strings.Contains(res.Stdout, "All symlinks already in .gitignore") {
		t.Errorf("expected no ignore changes, got:\n%s", res.Stdout)
	}
	if second := readFile(t, filepath.Join(env.ProjectDir, ".gitignore")); second != first {
		t.Errorf(".gitignore changed:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
	if !strings.HasPrefix(first, "node_modules/\r\n") {
		t.Errorf("existing line was rewritten:\n%q", first)
	}
}

// TestFullFlowKeepsExistingCanonical checks that a user's document is never
// overwritten.
func TestFullFlowKeepsExistingCanonical(t *testing.T) {
	env := setupTestEnv(t)
	canonical := filepath.Join(env.ProjectDir, "Instructions.md")
	writeFile(t, canonical, "my rules\n")

	res := env.run(t, "", "--yes")
	if res.ExitCode != 0 {
		t.Fatalf("exit code %d: %s", res.ExitCode, res.Stderr)
	}
	if !strings.Contains(res.Stdout, "Instructions.md already exists") {
		t.Errorf("missing existing-document message:\n%s", res.Stdout)
	}
	if got := readFile(t, canonical); got != "my rules\n" {
		t.Errorf("canonical document changed: %q", got)
	}
	if got := readFile(t, filepath.Join(env.ProjectDir, "CLAUDE.md")); got != "my rules\n" {
		t.Errorf("CLAUDE.md does not read through to the canonical document: %q", got)
	}
}

// TestInteractiveDeclineReplacement answers the line prompts: keep the
// selection, skip the ignore file, and refuse to replace a real file.
func TestInteractiveDeclineReplacement(t *testing.T) {
	env := setupTestEnv(t)
	writeFile(t, filepath.Join(env.ProjectDir, ".cursorrules"), "X")
	writeFile(t, filepath.Join(env.ProjectDir, ".ailink.yaml"), "targets:\n  - GEMINI.md\n  - .cursorrules\n")

	res := env.run(t, "\nn\nn\n", "--no-tui")
	if res.ExitCode != 0 {
		t.Fatalf("exit code %d: %s", res.ExitCode, res.Stderr)
	}

	if got := readFile(t, filepath.Join(env.ProjectDir, ".cursorrules")); got != "X" {
		t.Errorf(".cursorrules changed: %q", got)
	}
	assertSymlinkTo(t, filepath.Join(env.ProjectDir, "GEMINI.md"), "Instructions.md")
	assertNotExists(t, filepath.Join(env.ProjectDir, ".gitignore"))
}

// TestNothingSelectedExitsZero selects no files.
func TestNothingSelectedExitsZero(t *testing.T) {
	env := setupTestEnv(t)

	res := env.run(t, "none\n")
	if res.ExitCode != 0 {
		t.Fatalf("exit code %d: %s", res.ExitCode, res.Stderr)
	}
	if !strings.Contains(res.Stdout, "No files selected. Exiting...") {
		t.Errorf("missing exit message:\n%s", res.Stdout)
	}
	assertNotExists(t, filepath.Join(env.ProjectDir, "CLAUDE.md"))
}

// TestAllFailedExitsOne makes the only target impossible to link.
func TestAllFailedExitsOne(t *testing.T) {
	env := setupTestEnv(t)
	if err := os.MkdirAll(filepath.Join(env.ProjectDir, "CLAUDE.md"), 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(env.ProjectDir, ".ailink.yaml"), "targets: [CLAUDE.md]\n")

	res := env.run(t, "", "--yes")
	if res.ExitCode != 1 {
		t.Fatalf("exit code %d, want 1\nstdout:\n%s", res.ExitCode, res.Stdout)
	}
	if !strings.Contains(res.Stderr, "Error:") {
		t.Errorf("missing error report on stderr:\n%s", res.Stderr)
	}
}

// TestStatusAndUnlink links, inspects, and removes the links again.
func TestStatusAndUnlink(t *testing.T) {
	env := setupTestEnv(t)

	if res := env.run(t, "", "--yes"); res.ExitCode != 0 {
		t.Fatalf("setup failed: %s", res.Stderr)
	}

	res := env.run(t, "", "status")
	if res.ExitCode != 0 {
		t.Fatalf("status failed: %s", res.Stderr)
	}
	if !strings.Contains(res.Stdout, "6 of 6 files linked to Instructions.md") {
		t.Errorf("unexpected status:\n%s", res.Stdout)
	}

	res = env.run(t, "", "--yes", "unlink")
	if res.ExitCode != 0 {
		t.Fatalf("unlink failed: %s", res.Stderr)
	}
	for _, p := range allTargets {
		assertNotExists(t, filepath.Join(env.ProjectDir, filepath.FromSlash(p)))
	}
	assertFileExists(t, filepath.Join(env.ProjectDir, "Instructions.md"))
}

// TestVersionFromLdflags checks the injected build version.
func TestVersionFromLdflags(t *testing.T) {
	env := setupTestEnv(t)

	res := env.run(t, "", "version", "--short")
	if res.ExitCode != 0 {
		t.Fatalf("version failed: %s", res.Stderr)
	}
	if strings.TrimSpace(res.Stdout) != "1.0.0" {
		t.Errorf("version = %q, want 1.0.0", res.Stdout)
	}
}
