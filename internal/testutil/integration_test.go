package testutil

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestRepoRootHoldsGoMod(t *testing.T) {
	root := RepoRoot(t)
	if _, err := os.Stat(filepath.Join(root, "go.mod")); err != nil {
		t.Fatalf("expected go.mod under %s: %v", root, err)
	}
}

func TestBinaryRejectsInvalidConfiguration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping build in short mode")
	}
	bin := BuildBinary(t)
	cmd := exec.Command(bin, "-preset", "drums", "-log-file", filepath.Join(t.TempDir(), "patchmenu.log"))
	out, err := cmd.CombinedOutput()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected non-zero exit, got %v", err)
	}
	if exitErr.ExitCode() != 2 {
		t.Fatalf("expected exit code 2, got %d", exitErr.ExitCode())
	}
	if !strings.Contains(string(out), `unknown preset "drums"`) {
		t.Fatalf("expected preset error in output, got %q", out)
	}
}

func TestAssertGoldenStripsStyling(t *testing.T) {
	AssertGolden(t, "lcd_ready.golden", "\x1b[1m┌────────────────┐\x1b[0m\n│Snd:Level       │\n│████████████████│\n└────────────────┘")
}
