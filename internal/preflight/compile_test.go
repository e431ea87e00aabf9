package preflight

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

const guardDiagnostic = "Only libzmq >= 3.3.0 is supported."

func guardHeader(t *testing.T) string {
	t.Helper()
	path, err := filepath.Abs(filepath.Join("..", "..", "zmqguard", "zmq_version_guard.h"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("guard header missing: %v", err)
	}
	return path
}

func requireCC(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("cc"); err != nil {
		t.Skip("no C compiler on PATH")
	}
}

func TestCompileGuard(t *testing.T) {
	requireCC(t)
	header := guardHeader(t)

	cases := []struct {
		major, minor, patch int
		ok                  bool
	}{
		{3, 3, 0, true},
		{3, 4, 0, true},
		{3, 9, 2, true},
		{3, 2, 9, false},
		{3, 0, 0, false},
		{2, 9, 0, false},
		{4, 0, 0, false},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("%d.%d.%d", tc.major, tc.minor, tc.patch), func(t *testing.T) {
			dir := t.TempDir()
			writeZMQHeader(t, dir, tc.major, tc.minor, tc.patch)

			err := CompileGuard(context.Background(), "cc", header, []string{dir})
			if tc.ok {
				if err != nil {
					t.Fatalf("guard rejected a supported version: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrGuardFailed) {
				t.Fatalf("expected ErrGuardFailed, got: %v", err)
			}
			if !strings.Contains(err.Error(), guardDiagnostic) {
				t.Fatalf("diagnostic missing from compiler output: %v", err)
			}
		})
	}
}

func TestCompileGuardIncludedTwice(t *testing.T) {
	requireCC(t)
	header := guardHeader(t)

	for _, minor := range []int{3, 2} {
		dir := t.TempDir()
		writeZMQHeader(t, dir, 3, minor, 0)

		twice := filepath.Join(dir, "twice.h")
		src := fmt.Sprintf("#include %q\n#include %q\n", header, header)
		if err := os.WriteFile(twice, []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}

		once := CompileGuard(context.Background(), "cc", header, []string{dir})
		both := CompileGuard(context.Background(), "cc", twice, []string{dir})
		if (once == nil) != (both == nil) {
			t.Fatalf("3.%d: single include %v, double include %v", minor, once, both)
		}
		if both != nil {
			if n := countDiagnostics(both); n != 1 {
				t.Fatalf("3.%d: diagnostic reported %d times: %v", minor, n, both)
			}
		}
	}
}

// countDiagnostics counts error lines carrying the guard message. Source
// excerpts echoed by the compiler are not counted.
func countDiagnostics(err error) int {
	n := 0
	for _, line := range strings.Split(err.Error(), "\n") {
		if strings.Contains(line, "error:") && strings.Contains(line, guardDiagnostic) {
			n++
		}
	}
	return n
}

func TestCompileGuardWithPkgConfigIncludeDirs(t *testing.T) {
	requireCC(t)
	header := guardHeader(t)

	dir := t.TempDir()
	writeZMQHeader(t, dir, 3, 3, 0)
	fakeCommands(t, map[string]string{
		"pkg-config --cflags-only-I libzmq": "-I" + dir + "\n",
	})

	res, err := Run(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Run returned %v", err)
	}
	if err := CompileGuard(context.Background(), "cc", header, res.IncludeDirs); err != nil {
		t.Fatalf("guard did not see the pkg-config include dir: %v", err)
	}
}
