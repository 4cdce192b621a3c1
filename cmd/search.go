package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/treebank-labs/tgrep"
	"github.com/treebank-labs/tgrep/corpus"
	"github.com/treebank-labs/tgrep/formatter"
)

var (
	searchJSONOutput bool
	searchOutPath    string
	noLeaves         bool
	extensions       string
)

var searchCmd = &cobra.Command{
	Use:   "search <query> [paths...]",
	Short: "Run a query over treebank files or directories",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 2 {
			fmt.Println("error: Please provide a query and file or directory paths")
			os.Exit(1)
		}
		query, paths := args[0], args[1:]

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		searcher, err := newSearcher(query)
		if err != nil {
			logger.Fatal("Failed to compile query", zap.Error(err))
		}

		matches, err := corpus.ProcessFiles(ctx, logger, searcher, paths)
		if err != nil {
			logger.Error("Error processing files", zap.Error(err))
			os.Exit(1)
		}

		printMatches(logger, matches, searchJSONOutput, searchOutPath)

		if len(matches) == 0 {
			os.Exit(1)
		}
	},
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSONOutput, "json", false, "Output matches in JSON format")
	searchCmd.Flags().StringVarP(&searchOutPath, "output", "o", "", "Output path (when using JSON)")
	searchCmd.Flags().BoolVar(&noLeaves, "no-leaves", false, "Do not match leaf positions")
	searchCmd.Flags().StringVar(&extensions, "extensions", "", "Comma-separated corpus file extensions")
}

// newSearcher compiles the query, merging in the macro library when one
// was given, and applies the shared searcher flags.
func newSearcher(query string) (*corpus.Searcher, error) {
	var compiled *tgrep.CompiledQuery
	var err error
	if macroFile != "" {
		macros, merr := tgrep.LoadMacroLibrary(macroFile)
		if merr != nil {
			return nil, merr
		}
		compiled, err = tgrep.CompileWithMacros(query, macros)
	} else {
		compiled, err = tgrep.Compile(query)
	}
	if err != nil {
		return nil, err
	}

	searcher := corpus.NewSearcher(compiled, !noLeaves)
	if extensions != "" {
		var exts []string
		for _, e := range strings.Split(extensions, ",") {
			exts = append(exts, strings.TrimSpace(e))
		}
		searcher.SetExtensions(exts)
	}
	return searcher, nil
}

func printMatches(logger *zap.Logger, matches []corpus.Match, isJSON bool, jsonOutput string) {
	if !isJSON {
		fmt.Println(formatter.GenerateFormattedMatches(matches))
		return
	}

	d, err := json.Marshal(matches)
	if err != nil {
		logger.Error("Error marshalling matches to JSON", zap.Error(err))
		return
	}
	if jsonOutput == "" {
		fmt.Println(string(d))
		return
	}
	f, err := os.Create(jsonOutput)
	if err != nil {
		logger.Error("Error creating JSON output file", zap.Error(err))
		return
	}
	defer f.Close()
	if _, err := f.Write(d); err != nil {
		logger.Error("Error writing JSON output file", zap.Error(err))
	}
}
