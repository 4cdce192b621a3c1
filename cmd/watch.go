package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/treebank-labs/tgrep/corpus"
	"github.com/treebank-labs/tgrep/formatter"
)

var watchCmd = &cobra.Command{
	Use:   "watch <query> [dirs...]",
	Short: "Re-run a query whenever corpus files change",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 2 {
			fmt.Println("error: Please provide a query and directory paths")
			os.Exit(1)
		}
		query, dirs := args[0], args[1:]

		searcher, err := newSearcher(query)
		if err != nil {
			logger.Fatal("Failed to compile query", zap.Error(err))
		}

		watcher, err := corpus.NewWatcher(searcher, dirs, func(matches []corpus.Match) {
			fmt.Println(formatter.GenerateFormattedMatches(matches))
		})
		if err != nil {
			logger.Fatal("Failed to create watcher", zap.Error(err))
		}
		if err := watcher.StartWatching(); err != nil {
			logger.Fatal("Failed to start watching", zap.Error(err))
		}
		defer watcher.StopWatching()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
	},
}
