package preflight

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrGuardFailed is returned by CompileGuard when the compiler rejects the
// guard header.
var ErrGuardFailed = errors.New("libzmq version guard failed")

// CompileGuard runs the C compiler over header in syntax-only mode, the same
// evaluation cgo performs during `go build`. On failure the compiler output
// is carried verbatim in the error.
func CompileGuard(ctx context.Context, cc, header string, includeDirs []string) error {
	if cc == "" {
		cc = "cc"
	}

	args := []string{"-fsyntax-only"}
	for _, dir := range includeDirs {
		args = append(args, "-I"+dir)
	}
	args = append(args, "-x", "c", header)

	out, err := exec.CommandContext(ctx, cc, args...).CombinedOutput()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return fmt.Errorf("run %s: %w", cc, err)
		}
		return fmt.Errorf("%w: %s", ErrGuardFailed, strings.TrimSpace(string(out)))
	}
	return nil
}
