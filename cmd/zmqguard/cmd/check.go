package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getkawai/zmqguard/internal/preflight"
)

func newCheckCmd() *cobra.Command {
	var (
		opts    preflight.Options
		compile bool
		cc      string
		guard   string
	)

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Fail unless libzmq >= 3.3.0 (and < 4.0) is installed",
		Long: `Resolve the installed libzmq version and apply the compatibility rule.

The version is taken from the first source that is set:
  --version, --header, zmq.h in an -I directory,
  pkg-config --cflags-only-I, pkg-config --modversion.

Exit codes:
  0 - libzmq is supported
  1 - libzmq is unsupported or could not be found

Examples:
  zmqguard check
  zmqguard check --version 4.3.5
  zmqguard check -I /opt/zmq/include --compile --guard zmqguard/zmq_version_guard.h`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr())
			ctx := cmd.Context()

			res, err := preflight.Run(ctx, opts)
			if err != nil {
				// The diagnostic is printed at every log level.
				if res.Source != "" {
					fmt.Fprintf(cmd.ErrOrStderr(), "%v (source: %s)\n", err, res.Source)
				} else {
					fmt.Fprintln(cmd.ErrOrStderr(), err)
				}
				return reported(err)
			}
			logger.Debug().Str("source", res.Source).Str("libzmq", res.Version.String()).
				Strs("include", res.IncludeDirs).Msg("libzmq supported")

			if !compile {
				return nil
			}
			if err := preflight.CompileGuard(ctx, cc, guard, res.IncludeDirs); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%v (guard: %s)\n", err, guard)
				return reported(err)
			}
			logger.Debug().Str("guard", guard).Msg("guard header compiled")
			return nil
		},
	}

	f := checkCmd.Flags()
	f.StringVar(&opts.Version, "version", "", "libzmq version to check instead of detecting it")
	f.StringVar(&opts.Header, "header", "", "Path to zmq.h")
	f.StringArrayVarP(&opts.IncludeDirs, "include", "I", nil, "Directory to search for zmq.h (repeatable)")
	f.StringVar(&opts.PkgConfig, "pkg-config", "pkg-config", "pkg-config binary")
	f.StringVar(&opts.Package, "package", "libzmq", "pkg-config module name of libzmq")
	f.BoolVar(&compile, "compile", false, "Also compile the guard header with the C compiler")
	f.StringVar(&cc, "cc", "cc", "C compiler used by --compile")
	f.StringVar(&guard, "guard", "zmqguard/zmq_version_guard.h", "Guard header used by --compile")
	return checkCmd
}
