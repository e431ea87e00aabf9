// Package preflight checks the installed libzmq before `go build` reaches the
// cgo guard, so build scripts can fail early with the same diagnostic.
package preflight

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/getkawai/zmqguard/zmqversion"
)

// ErrNotFound is returned when no source yields a libzmq version.
var ErrNotFound = errors.New("libzmq version not found")

// Result describes the version that was checked and where it came from.
type Result struct {
	Version zmqversion.Version
	Source  string
	// IncludeDirs are the directories the compiler needs to find the same
	// zmq.h. Empty means the compiler's default search path.
	IncludeDirs []string
}

// runCommand is replaced in tests.
var runCommand = func(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, msg)
		}
		return nil, fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return out, nil
}

// Run resolves the libzmq version and applies zmqversion.Check. The returned
// Result is populated whenever a version was found, even if it is rejected.
func Run(ctx context.Context, opts Options) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	opts.normalize()

	res, err := resolve(ctx, opts)
	if err != nil {
		return Result{}, err
	}
	return res, zmqversion.Check(res.Version)
}

func resolve(ctx context.Context, opts Options) (Result, error) {
	if opts.Version != "" {
		v, err := zmqversion.Parse(opts.Version)
		if err != nil {
			return Result{}, err
		}
		return Result{Version: v, Source: "--version", IncludeDirs: opts.IncludeDirs}, nil
	}

	if opts.Header != "" {
		return fromHeader(opts.Header, []string{filepath.Dir(opts.Header)})
	}

	if path := findHeader(opts.IncludeDirs); path != "" {
		return fromHeader(path, opts.IncludeDirs)
	}

	dirs, cflagsErr := pkgConfigIncludeDirs(ctx, opts)
	if cflagsErr == nil {
		if path := findHeader(dirs); path != "" {
			return fromHeader(path, dirs)
		}
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	out, err := runCommand(ctx, opts.PkgConfig, "--modversion", opts.Package)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	v, err := zmqversion.Parse(strings.TrimSpace(string(out)))
	if err != nil {
		return Result{}, err
	}
	return Result{Version: v, Source: opts.PkgConfig + " --modversion " + opts.Package, IncludeDirs: dirs}, nil
}

func fromHeader(path string, dirs []string) (Result, error) {
	v, err := zmqversion.ReadHeaderFile(path)
	if err != nil {
		return Result{}, err
	}
	return Result{Version: v, Source: path, IncludeDirs: dirs}, nil
}

func findHeader(dirs []string) string {
	for _, dir := range dirs {
		path := filepath.Join(dir, "zmq.h")
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

func pkgConfigIncludeDirs(ctx context.Context, opts Options) ([]string, error) {
	out, err := runCommand(ctx, opts.PkgConfig, "--cflags-only-I", opts.Package)
	if err != nil {
		return nil, err
	}
	return parseIncludeFlags(string(out)), nil
}

// parseIncludeFlags collects the directories of -I flags. An empty result
// means the package lives in the compiler's default search path.
func parseIncludeFlags(cflags string) []string {
	var dirs []string
	fields := strings.Fields(cflags)
	for i := 0; i < len(fields); i++ {
		f := fields[i]
		if !strings.HasPrefix(f, "-I") {
			continue
		}
		dir := strings.TrimPrefix(f, "-I")
		if dir == "" && i+1 < len(fields) {
			i++
			dir = fields[i]
		}
		if dir != "" {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}
