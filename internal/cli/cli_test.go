package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentx-labs/ailink/internal/project"
	"github.com/agentx-labs/ailink/internal/reconcile"
	"github.com/agentx-labs/ailink/internal/targets"
)

// isolate points HOME at a temp dir and turns off file logging so commands
// never touch the real user's settings.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("AILINK_LOG_FILE", "-")
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	viper.Reset()

	cmd := newRootCmd(buildInfo{version: "1.2.3", commit: "abc123", date: "2026-01-02"})
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func linkTarget(t *testing.T, path string) string {
	t.Helper()
	target, err := os.Readlink(path)
	require.NoError(t, err, "%s should be a symlink", path)
	return target
}

func TestRootYesLinksEveryTarget(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	out, _, err := execute(t, "", "-C", dir, "--yes")
	require.NoError(t, err)

	assert.Contains(t, out, "Instructions.md created successfully")
	assert.Contains(t, out, "Done! All selected files are now linked to Instructions.md")
	assert.Equal(t, "Instructions.md", linkTarget(t, filepath.Join(dir, "CLAUDE.md")))
	assert.Equal(t, "../Instructions.md", linkTarget(t, filepath.Join(dir, ".github", "copilot-instructions.md")))

	ignore, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, strings.Join(targets.Paths(targets.Default()), "\n")+"\n", string(ignore))
}

func TestRootPipedInputUsesDefaults(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	out, _, err := execute(t, "", "-C", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "Select files to link to Instructions.md:")
	assert.Contains(t, out, "Add symlink files to .gitignore? [Y/n]")
	assert.Equal(t, "Instructions.md", linkTarget(t, filepath.Join(dir, "GEMINI.md")))
	assert.FileExists(t, filepath.Join(dir, ".gitignore"))
}

func TestRootNothingSelectedExitsCleanly(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	out, _, err := execute(t, "none\n", "-C", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "No files selected. Exiting...")
	assert.FileExists(t, filepath.Join(dir, "Instructions.md"))
	assert.NoFileExists(t, filepath.Join(dir, ".gitignore"))
	_, err = os.Lstat(filepath.Join(dir, "CLAUDE.md"))
	assert.True(t, os.IsNotExist(err))
}

func TestRootDeclinedReplacementKeepsFile(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".cursorrules"), "X")
	writeFile(t, filepath.Join(dir, ".ailink.yaml"), "targets: [.cursorrules, CLAUDE.md]\n")

	// Select all, add to ignore file, decline the replacement.
	out, _, err := execute(t, "\ny\nn\n", "-C", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, ".cursorrules"))
	require.NoError(t, err)
	assert.Equal(t, "X", string(data))
	assert.Contains(t, out, "Skipped .cursorrules")

	ignore, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, "CLAUDE.md\n", string(ignore))
}

func TestRootAllFailedReturnsError(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "CLAUDE.md"), 0755))
	writeFile(t, filepath.Join(dir, ".ailink.yaml"), "targets: [CLAUDE.md]\n")

	_, _, err := execute(t, "", "-C", dir, "--yes")
	assert.ErrorIs(t, err, reconcile.ErrAllFailed)
}

func TestRootProjectFileSettings(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".ailink.yaml"), `canonical: docs/AI.md
extra_targets:
  - AGENTS.md
exclude:
  - windsurf
`)

	_, _, err := execute(t, "", "-C", dir, "--yes")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "docs", "AI.md"))
	assert.NoFileExists(t, filepath.Join(dir, "Instructions.md"))
	assert.Equal(t, "docs/AI.md", linkTarget(t, filepath.Join(dir, "GEMINI.md")))
	assert.Equal(t, "docs/AI.md", linkTarget(t, filepath.Join(dir, "AGENTS.md")))
	_, err = os.Lstat(filepath.Join(dir, ".windsurfrules"))
	assert.True(t, os.IsNotExist(err))
}

func TestRootFlagOverridesProjectFile(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".ailink.yaml"), "canonical: docs/AI.md\ntargets: [CLAUDE.md]\n")

	_, _, err := execute(t, "", "-C", dir, "--yes", "--canonical", "RULES.md")
	require.NoError(t, err)

	assert.Equal(t, "RULES.md", linkTarget(t, filepath.Join(dir, "CLAUDE.md")))
	assert.NoFileExists(t, filepath.Join(dir, "docs", "AI.md"))
}

func TestRootEnvironmentEnablesYes(t *testing.T) {
	isolate(t)
	t.Setenv("AILINK_YES", "true")
	t.Setenv("AILINK_IGNORE_FILE", ".git/info/exclude")
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git", "info"), 0755))

	out, _, err := execute(t, "", "-C", dir)
	require.NoError(t, err)

	assert.NotContains(t, out, "Select files to link")
	assert.NoFileExists(t, filepath.Join(dir, ".gitignore"))
	assert.FileExists(t, filepath.Join(dir, ".git", "info", "exclude"))
}

func TestRootInvalidProjectFile(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".ailink.yaml"), "bogus: 1\n")

	_, _, err := execute(t, "", "-C", dir, "--yes")
	var invalid *project.InvalidError
	require.ErrorAs(t, err, &invalid)
	assert.NoFileExists(t, filepath.Join(dir, "Instructions.md"))
}

func TestRootUnsatisfiedRequires(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".ailink.yaml"), "requires: \">= 9.0.0\"\n")

	_, _, err := execute(t, "", "-C", dir, "--yes")
	assert.ErrorIs(t, err, project.ErrVersionUnsatisfied)
}

func TestRootMissingDirectory(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "", "-C", filepath.Join(t.TempDir(), "missing"), "--yes")
	assert.Error(t, err)
}

func TestRootRejectsArguments(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "", "extra")
	assert.Error(t, err)
}

func TestStatusCommand(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	out, _, err := execute(t, "", "-C", dir, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Instructions.md not found")
	assert.Contains(t, out, "0 of 6 files linked to Instructions.md")

	_, _, err = execute(t, "", "-C", dir, "--yes")
	require.NoError(t, err)

	out, _, err = execute(t, "", "-C", dir, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Instructions.md exists")
	assert.Contains(t, out, ".github/copilot-instructions.md")
	assert.Contains(t, out, "linked")
	assert.Contains(t, out, "6 of 6 files linked to Instructions.md")
}

func TestUnlinkCommand(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	_, _, err := execute(t, "", "-C", dir, "--yes")
	require.NoError(t, err)

	out, _, err := execute(t, "n\n", "-C", dir, "unlink", "CLAUDE.md")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing removed")
	linkTarget(t, filepath.Join(dir, "CLAUDE.md"))

	out, _, err = execute(t, "", "-C", dir, "--yes", "unlink")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed symlink: CLAUDE.md")
	for _, p := range targets.Paths(targets.Default()) {
		_, err := os.Lstat(filepath.Join(dir, filepath.FromSlash(p)))
		assert.True(t, os.IsNotExist(err), p)
	}
	assert.FileExists(t, filepath.Join(dir, "Instructions.md"))

	ignore, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(string(ignore)))
}

func TestVersionCommand(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "ailink version 1.2.3 (commit: abc123, built: 2026-01-02)\n", out)

	out, _, err = execute(t, "", "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3\n", out)

	out, _, err = execute(t, "", "version", "--json")
	require.NoError(t, err)
	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "1.2.3", info["version"])
	assert.Equal(t, "abc123", info["commit"])
	assert.NotEmpty(t, info["go"])
}

func TestConfigCommands(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "", "config", "get", "canonical")
	require.NoError(t, err)
	assert.Equal(t, "Instructions.md\n", out)

	out, _, err = execute(t, "", "config", "set", "canonical", "AI.md")
	require.NoError(t, err)
	assert.Equal(t, "Set canonical = AI.md\n", out)

	out, _, err = execute(t, "", "config", "get", "canonical")
	require.NoError(t, err)
	assert.Equal(t, "AI.md\n", out)

	out, _, err = execute(t, "", "config", "path")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(os.Getenv("HOME"), ".ailink", "config.yaml")+"\n", out)

	_, _, err = execute(t, "", "config", "set", "nope", "x")
	assert.ErrorContains(t, err, "unknown config key")
}

func TestUserConfigIsUsedByRoot(t *testing.T) {
	isolate(t)
	_, _, err := execute(t, "", "config", "set", "canonical", "AI.md")
	require.NoError(t, err)

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".ailink.yaml"), "targets: [CLAUDE.md]\n")
	_, _, err = execute(t, "", "-C", dir, "--yes")
	require.NoError(t, err)
	assert.Equal(t, "AI.md", linkTarget(t, filepath.Join(dir, "CLAUDE.md")))
}

func TestDoctorCommand(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	out, _, err := execute(t, "", "-C", dir, "doctor")
	require.Error(t, err)
	assert.Contains(t, out, "[MISS] Instructions.md does not exist")

	out, _, err = execute(t, "", "-C", dir, "doctor", "--fix")
	require.NoError(t, err)
	assert.Contains(t, out, "[FIX ] Created Instructions.md")
	assert.FileExists(t, filepath.Join(dir, "Instructions.md"))
}

func TestRootAbsoluteCanonicalFlag(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	canonicalAbs := filepath.Join(dir, "CLAUDE.md")
	writeFile(t, canonicalAbs, "precious")

	out, _, err := execute(t, "", "-C", dir, "--yes", "--canonical", canonicalAbs)
	require.NoError(t, err)

	data, err := os.ReadFile(canonicalAbs)
	require.NoError(t, err)
	assert.Equal(t, "precious", string(data))
	assert.Equal(t, "CLAUDE.md", linkTarget(t, filepath.Join(dir, "GEMINI.md")))
	assert.NotContains(t, out, "CLAUDE.md → CLAUDE.md")
	assert.Contains(t, out, "Done! All selected files are now linked to")
}

func TestConfigHelpListsEnvironmentVariables(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "", "config", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "AILINK_CANONICAL")
	assert.Contains(t, out, "AILINK_LOG_LEVEL")
	assert.Contains(t, out, "AILINK_NO_TUI")
}
