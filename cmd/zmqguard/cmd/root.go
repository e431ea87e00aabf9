package cmd

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var logLevel string

// NewRootCmd builds the zmqguard command tree.
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "zmqguard",
		Short: "Check the installed libzmq against the binding's minimum version",
		Long: `zmqguard applies the libzmq compatibility rule used by the cgo
guard: the build may proceed only for libzmq 3.x at or above 3.3.0.

Run it from a build script before go build to fail early.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := zerolog.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			zerolog.SetGlobalLevel(level)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newVersionCmd(version))
	return rootCmd
}

// reportedError marks an error whose message was already written to stderr.
type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

func reported(err error) error { return reportedError{err: err} }

// Execute runs root and writes any error not yet reported to its stderr.
func Execute(root *cobra.Command) error {
	err := root.Execute()
	if err == nil {
		return nil
	}
	var re reportedError
	if !errors.As(err, &re) {
		fmt.Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}
