// Package corpus runs a compiled query across treebank files on disk:
// file discovery, a bounded worker pool with progress reporting, and a
// watch mode that re-searches files as they change.
package corpus

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/treebank-labs/tgrep"
	"github.com/treebank-labs/tgrep/scanner"
	"github.com/treebank-labs/tgrep/tree"
)

// Match is one query hit: the file and tree it occurred in, the matched
// node's position and value, and the sentence (terminal yield) of the
// containing tree.
type Match struct {
	File      string        `json:"file"`
	TreeIndex int           `json:"tree"`
	Position  tree.Position `json:"position"`
	Label     string        `json:"label"`
	Sentence  string        `json:"sentence"`
}

// Searcher applies one compiled query to corpus files.
type Searcher struct {
	query         *tgrep.CompiledQuery
	includeLeaves bool
	extensions    []string
}

// NewSearcher wraps a compiled query. The query is reusable, so one
// Searcher serves any number of files.
func NewSearcher(query *tgrep.CompiledQuery, includeLeaves bool) *Searcher {
	return &Searcher{
		query:         query,
		includeLeaves: includeLeaves,
		extensions:    scanner.DefaultExtensions,
	}
}

// SetExtensions overrides the treebank file extensions searched when a
// directory is expanded.
func (s *Searcher) SetExtensions(exts []string) {
	if len(exts) > 0 {
		s.extensions = exts
	}
}

// SearchFile parses every tree in a corpus file and returns the matches
// in pre-order within each tree, trees in file order.
func (s *Searcher) SearchFile(path string) ([]Match, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	trees, err := tree.ReadTrees(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	var matches []Match
	for i, root := range trees {
		positions, err := s.query.Positions(root, s.includeLeaves)
		if err != nil {
			return nil, fmt.Errorf("searching %s: %w", path, err)
		}
		sentence := strings.Join(root.Leaves(), " ")
		for _, pos := range positions {
			matches = append(matches, Match{
				File:      path,
				TreeIndex: i,
				Position:  pos,
				Label:     root.At(pos).Value(),
				Sentence:  sentence,
			})
		}
	}
	return matches, nil
}

// ProcessFiles searches each path in turn, expanding directories, and
// concatenates the matches.
func ProcessFiles(ctx context.Context, logger *zap.Logger, s *Searcher, paths []string) ([]Match, error) {
	var all []Match
	for _, path := range paths {
		matches, err := ProcessPath(ctx, logger, s, path)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return nil, err
		}
		all = append(all, matches...)
	}
	return all, nil
}

// ProcessPath searches a single file, or every corpus file under a
// directory using a bounded worker pool with a progress bar. A failure
// in any file aborts the whole call: one bad query or unreadable corpus
// is not silently skipped.
func ProcessPath(ctx context.Context, logger *zap.Logger, s *Searcher, path string) ([]Match, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		return s.SearchFile(path)
	}

	files, err := scanner.New(path, s.extensions...).Scan()
	if err != nil {
		return nil, fmt.Errorf("error scanning directory %s: %w", path, err)
	}

	resultChan := make(chan []Match, len(files))
	errorChan := make(chan error, len(files))

	maxWorkers := runtime.NumCPU()
	sem := make(chan struct{}, maxWorkers)

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	for _, file := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
			sem <- struct{}{}
			go func(fp string) {
				defer func() { <-sem }()

				fileMatches, err := s.SearchFile(fp)
				if err != nil {
					if logger != nil {
						logger.Error("Error searching file", zap.String("file", fp), zap.Error(err))
					}
					errorChan <- err
					resultChan <- nil
				} else {
					resultChan <- fileMatches
					errorChan <- nil
				}
				bar.Add(1)
			}(file.Path)
		}
	}

	var matches []Match
	var firstErr error
	for range files {
		if err := <-errorChan; err != nil && firstErr == nil {
			firstErr = err
		}
		if result := <-resultChan; result != nil {
			matches = append(matches, result...)
		}
	}
	fmt.Println()

	if firstErr != nil {
		return nil, firstErr
	}
	return matches, nil
}
