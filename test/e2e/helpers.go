// Package e2e provides end-to-end testing utilities for the cleanfiles CLI
package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TestTrees represents a temporary X tree plus Y trees for E2E testing
type TestTrees struct {
	Root       string
	X          string
	Home       string
	t          *testing.T
	binaryPath string
}

// NewTestTrees creates an empty X tree and a private home directory
func NewTestTrees(t *testing.T) *TestTrees {
	t.Helper()

	root := t.TempDir()
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	trees := &TestTrees{
		Root:       root,
		X:          filepath.Join(root, "x"),
		Home:       filepath.Join(root, "home"),
		t:          t,
		binaryPath: ensureBinary(t),
	}
	for _, dir := range []string{trees.X, trees.Home} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}
	return trees
}

// ensureBinary builds the cleanfiles binary if it doesn't exist and returns its path
func ensureBinary(t *testing.T) string {
	t.Helper()

	projectRoot := getProjectRoot(t)
	binaryPath := filepath.Join(projectRoot, "cleanfiles")

	if _, err := os.Stat(binaryPath); err == nil {
		return binaryPath
	}

	t.Logf("Building cleanfiles binary...")
	cmd := exec.Command("go", "build", "-o", binaryPath, ".")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Failed to build cleanfiles binary: %v\nOutput: %s", err, output)
	}

	return binaryPath
}

// getProjectRoot finds the project root directory
func getProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("Could not find project root (no go.mod found)")
		}
		dir = parent
	}
}

// Y returns the path of a secondary tree, creating it if needed
func (tt *TestTrees) Y(t *testing.T, name string) string {
	t.Helper()

	dir := filepath.Join(tt.Root, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create %s: %v", dir, err)
	}
	return dir
}

// Run runs cleanfiles with stdin and HOME pointing at the private home
func (tt *TestTrees) Run(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	cmd := exec.Command(tt.binaryPath, args...)
	cmd.Dir = tt.Root
	cmd.Stdin = strings.NewReader(stdin)
	cmd.Env = append(os.Environ(), "HOME="+tt.Home, "NO_COLOR=1")

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err = cmd.Run()
	stdout = outBuf.String()
	stderr = errBuf.String()

	if t.Failed() || testing.Verbose() {
		t.Logf("Command: cleanfiles %s", strings.Join(args, " "))
		t.Logf("Exit Code: %v", err)
		if stdout != "" {
			t.Logf("Stdout:\n%s", stdout)
		}
		if stderr != "" {
			t.Logf("Stderr:\n%s", stderr)
		}
	}

	return stdout, stderr, err
}

// CreateFile creates a test file relative to the trees' root
func (tt *TestTrees) CreateFile(t *testing.T, relativePath, content string) string {
	t.Helper()

	fullPath := filepath.Join(tt.Root, relativePath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		t.Fatalf("Failed to create directories for %s: %v", relativePath, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create file %s: %v", relativePath, err)
	}

	return fullPath
}

// AssertOutputContains checks if output contains expected string
func AssertOutputContains(t *testing.T, output, expected, context string) {
	t.Helper()

	if !strings.Contains(output, expected) {
		t.Errorf("%s: output does not contain expected string.\nExpected substring: %q\nActual output:\n%s",
			context, expected, output)
	}
}

// AssertCommandSuccess checks if command succeeded
func AssertCommandSuccess(t *testing.T, err error, stderr, context string) {
	t.Helper()

	if err != nil {
		t.Fatalf("%s: command failed: %v\nStderr: %s", context, err, stderr)
	}
}

// AssertCommandFails checks if command failed as expected
func AssertCommandFails(t *testing.T, err error, context string) {
	t.Helper()

	if err == nil {
		t.Fatalf("%s: expected command to fail, but it succeeded", context)
	}
}

// AssertExists checks whether path exists
func AssertExists(t *testing.T, path string, want bool, context string) {
	t.Helper()

	_, err := os.Stat(path)
	if exists := err == nil; exists != want {
		t.Errorf("%s: %s exists = %v, want %v", context, path, exists, want)
	}
}
