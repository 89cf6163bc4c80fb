package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func newVersionCommand(globalOptions *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `
The "version" command prints the version of this software and the build
environment.

EXIT STATUS
===========

Exit status is 0 if the command was successful, and non-zero if there was any error.
`,
		DisableAutoGenTag: true,
		Run: func(*cobra.Command, []string) {
			_, _ = fmt.Fprintf(globalOptions.stdout, "%s %s compiled with %v on %v/%v\n",
				appName, version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
	return cmd
}
