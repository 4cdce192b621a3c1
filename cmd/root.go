package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	macroFile string
	timeout   time.Duration

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:              "tgrep [query] [paths...]",
	Short:            "tgrep - search parse trees for TGrep2-style patterns",
	TraverseChildren: true, // Prioritize subcommands
	Run: func(cmd *cobra.Command, args []string) {
		// no subcommand
		if len(args) == 0 {
			// display help when only 'tgrep' is entered
			_ = cmd.Help()
			return
		}
		// Format: tgrep [query path1 ...] => behaves like the search subcommand
		searchCmd.Run(searchCmd, args)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	logger, _ = zap.NewProduction()

	rootCmd.PersistentFlags().StringVar(&macroFile, "macros", "", "YAML macro library to load")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Timeout for the whole search")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(watchCmd)
}
