package e2e

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// locateBinary finds the meditrack binary in MEDITRACK_BIN_DIR or ../../bin.
func locateBinary(t *testing.T) string {
	t.Helper()

	binDir := os.Getenv("MEDITRACK_BIN_DIR")
	if binDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			t.Fatalf("Failed to get cwd: %v", err)
		}
		binDir = filepath.Join(cwd, "..", "..", "bin")
	}
	binDir, _ = filepath.Abs(binDir)

	cliPath := filepath.Join(binDir, "meditrack")
	if _, err := os.Stat(cliPath); os.IsNotExist(err) {
		t.Skipf("CLI binary not found at %s. Build it with 'go build -o bin/meditrack ./cmd/meditrack'.", cliPath)
	}
	return cliPath
}

// isolatedEnv points HOME at tempDir so the default store and config file
// never touch the real user directory.
func isolatedEnv(tempDir string) []string {
	var env []string
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, "HOME=") || strings.HasPrefix(e, "XDG_CONFIG_HOME=") || strings.HasPrefix(e, "MEDITRACK_") {
			continue
		}
		env = append(env, e)
	}
	return append(env,
		fmt.Sprintf("HOME=%s", tempDir),
		fmt.Sprintf("XDG_CONFIG_HOME=%s", tempDir),
		fmt.Sprintf("MEDITRACK_STORE=%s", filepath.Join(tempDir, "meditrack", "meditrack.db")),
	)
}

func runCmd(t *testing.T, path string, env []string, args ...string) string {
	t.Helper()

	cmd := exec.Command(path, args...)
	cmd.Env = env
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Command %s %v failed: %v\nOutput: %s", path, args, err, out)
	}
	return string(out)
}

func runCmdExpectFailure(t *testing.T, path string, env []string, args ...string) string {
	t.Helper()

	cmd := exec.Command(path, args...)
	cmd.Env = env
	out, err := cmd.CombinedOutput()
	if err == nil {
		t.Fatalf("Command %s %v succeeded, expected failure\nOutput: %s", path, args, out)
	}
	return string(out)
}

func assertContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Fatalf("expected output to contain %q, got:\n%s", want, output)
	}
}

func TestEndToEndWorkflow(t *testing.T) {
	cliPath := locateBinary(t)
	tempDir := t.TempDir()
	env := isolatedEnv(tempDir)

	t.Log("Initializing storage...")
	out := runCmd(t, cliPath, env, "init")
	assertContains(t, out, "Initialized meditrack storage")

	t.Log("Applying a plan with a broken line...")
	badPath := filepath.Join(tempDir, "bad.csv")
	if err := os.WriteFile(badPath, []byte("2024-01-04,soon\n2024-01-05,20\n"), 0644); err != nil {
		t.Fatalf("Failed to write plan: %v", err)
	}
	out = runCmdExpectFailure(t, cliPath, env, "plan", "apply", "--file", badPath)
	assertContains(t, out, "Plan applied: 1 day(s) from 2024-01-05 to 2024-01-05")
	assertContains(t, out, "Line 1: duration should be a positive number.")

	planPath := filepath.Join(tempDir, "plan.csv")
	plan := "date,duration,note\n2024-01-05,20,first sit\n2024-01-06,25\n"
	if err := os.WriteFile(planPath, []byte(plan), 0644); err != nil {
		t.Fatalf("Failed to write plan: %v", err)
	}

	t.Log("Applying plan...")
	out = runCmd(t, cliPath, env, "plan", "apply", "--file", planPath)
	assertContains(t, out, "Plan applied: 2 day(s) from 2024-01-05 to 2024-01-06")

	t.Log("Editing days...")
	runCmd(t, cliPath, env, "day", "set", "2024-01-07", "30", "--note", "weekend")
	runCmd(t, cliPath, env, "day", "toggle", "2024-01-05")

	out = runCmd(t, cliPath, env, "plan", "show")
	assertContains(t, out, "2024-01-07")
	assertContains(t, out, "override")

	out = runCmd(t, cliPath, env, "calendar", "--month", "2024-01")
	assertContains(t, out, "January 2024")
	assertContains(t, out, "5 20m ✓")

	out = runCmd(t, cliPath, env, "summary", "--month", "2024-01")
	assertContains(t, out, "1 / 3")

	t.Log("Creating a backup...")
	out = runCmd(t, cliPath, env, "backup", "create")
	assertContains(t, out, "Backup created")
	out = runCmd(t, cliPath, env, "backup", "list")
	assertContains(t, out, "1 total")

	t.Log("Resetting the plan...")
	runCmd(t, cliPath, env, "plan", "reset", "--yes")
	out = runCmd(t, cliPath, env, "plan", "show")
	assertContains(t, out, "No plan applied")
}
