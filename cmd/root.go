package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewRootCmd builds the csvcombine command tree. Running the root command
// without a subcommand combines the working directory.
func NewRootCmd(logger *zap.Logger) *cobra.Command {
	opts := &combineOptions{}

	rootCmd := &cobra.Command{
		Use:   "csvcombine",
		Short: "csvcombine merges every CSV file under the current directory into one",
		Long: `csvcombine walks the current directory recursively, reads every file with the
configured extension (csv by default) and writes all of their rows into
<directory>-combined.<ext> in the same directory.

The header of the first file read is used for the whole output. Malformed
records are reported and skipped. Every output field is quoted.

The combined file is itself picked up by later runs. List it in
.combineignore to keep re-runs from reading it back in.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCombine(cmd, opts, logger)
		},
	}

	opts.bindFlags(rootCmd)
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// Execute runs the root command with the process arguments.
func Execute(logger *zap.Logger) error {
	return NewRootCmd(logger).Execute()
}
