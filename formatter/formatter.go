// Package formatter renders query matches for terminal output.
package formatter

import (
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/treebank-labs/tgrep"
	"github.com/treebank-labs/tgrep/corpus"
)

var (
	fileStyle     = color.New(color.FgCyan, color.Bold)
	treeStyle     = color.New(color.FgHiBlue)
	positionStyle = color.New(color.FgHiBlue, color.Bold)
	labelStyle    = color.New(color.FgYellow, color.Bold)
	sentenceStyle = color.New(color.FgWhite)
	countStyle    = color.New(color.FgGreen, color.Bold)
)

// GenerateFormattedMatches renders matches grouped by file, one line per
// match, with a trailing total. Color is controlled globally through
// color.NoColor.
func GenerateFormattedMatches(matches []corpus.Match) string {
	var builder strings.Builder
	lastFile := ""
	for _, m := range matches {
		if m.File != lastFile {
			builder.WriteString(fileStyle.Sprint(m.File))
			builder.WriteByte('\n')
			lastFile = m.File
		}
		builder.WriteString(formatMatch(m))
	}
	builder.WriteString(countStyle.Sprintf("%d match(es)", len(matches)))
	builder.WriteByte('\n')
	return builder.String()
}

func formatMatch(m corpus.Match) string {
	var builder strings.Builder
	builder.WriteString("  ")
	builder.WriteString(treeStyle.Sprintf("tree %d", m.TreeIndex))
	builder.WriteByte(' ')
	builder.WriteString(positionStyle.Sprint(m.Position.String()))
	builder.WriteByte(' ')
	builder.WriteString(labelStyle.Sprint(m.Label))
	if m.Sentence != "" {
		builder.WriteString(sentenceStyle.Sprintf("  # %s", truncate(m.Sentence, 72)))
	}
	builder.WriteByte('\n')
	return builder.String()
}

// FormatTokens renders a token stream for the tokenize diagnostic.
func FormatTokens(tokens []tgrep.Token) string {
	var builder strings.Builder
	for _, tok := range tokens {
		builder.WriteString(tok.String())
		builder.WriteByte('\n')
	}
	return builder.String()
}

// truncate shortens s to at most max bytes, cutting on a rune boundary
// so the output stays valid UTF-8.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
