package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose int

	rootCmd := &cobra.Command{
		Use:          "fastcsv",
		Short:        "Parse delimited text into rows or records",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(verbose, nil)
		},
	}
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "log verbosity (repeat for more)")

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newServeCmd())

	return rootCmd
}
