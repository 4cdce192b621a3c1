package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// FileInfo describes one discovered treebank file.
type FileInfo struct {
	Path string
	Size int64
}

// Scanner walks a directory tree collecting treebank corpus files by
// extension.
type Scanner struct {
	rootDir    string
	extensions []string
}

// DefaultExtensions are the corpus file extensions searched when none
// are given.
var DefaultExtensions = []string{".mrg", ".psd", ".txt"}

func New(rootDir string, extensions ...string) *Scanner {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	return &Scanner{
		rootDir:    rootDir,
		extensions: extensions,
	}
}

// Scan returns every matching file under the root directory, sorted by
// path so search output is deterministic.
func (s *Scanner) Scan() ([]FileInfo, error) {
	var (
		files []FileInfo
		mutex sync.Mutex
		wg    sync.WaitGroup
	)

	err := filepath.Walk(s.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		if s.isTargetFile(path) {
			wg.Add(1)
			go func() {
				defer wg.Done()
				fileInfo := FileInfo{
					Path: path,
					Size: info.Size(),
				}
				mutex.Lock()
				files = append(files, fileInfo)
				mutex.Unlock()
			}()
		}
		return nil
	})

	wg.Wait()
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, err
}

func (s *Scanner) isTargetFile(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range s.extensions {
		if ext == e {
			return true
		}
	}
	return false
}
