package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/treebank-labs/tgrep"
	"github.com/treebank-labs/tgrep/formatter"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize <query>",
	Short: "Show the raw tokens of a query (diagnostic)",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println("error: Please provide exactly one query")
			os.Exit(1)
		}

		tokens, err := tgrep.Tokenize(args[0])
		if err != nil {
			logger.Fatal("Failed to tokenize query", zap.Error(err))
		}
		fmt.Print(formatter.FormatTokens(tokens))
	},
}
