package corpus

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher re-runs a searcher over corpus files as they change on disk.
type Watcher struct {
	searcher *Searcher
	watcher  *fsnotify.Watcher
	dirs     []string
	watching atomic.Bool
	report   func([]Match)
}

// NewWatcher creates a Watcher over the given directories. The report
// callback receives the matches of each re-search; if nil, match counts
// are logged instead.
func NewWatcher(searcher *Searcher, dirs []string, report func([]Match)) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		searcher: searcher,
		watcher:  fsWatcher,
		dirs:     dirs,
		report:   report,
	}, nil
}

func (w *Watcher) StartWatching() error {
	if w.watching.Load() {
		return fmt.Errorf("already watching")
	}

	for _, dir := range w.dirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return w.watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	w.watching.Store(true)
	go w.watchLoop()
	return nil
}

func (w *Watcher) StopWatching() error {
	if !w.watching.Load() {
		log.Println("not watching")
	}

	w.watching.Store(false)
	return w.watcher.Close()
}

func (w *Watcher) watchLoop() {
	for w.watching.Load() {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFileEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("error: %v", err)
		}
	}
}

func (w *Watcher) handleFileEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Write != fsnotify.Write {
		return
	}
	if !w.isCorpusFile(event.Name) {
		return
	}

	// wait for a while after file change to consider multiple changes as one
	time.Sleep(100 * time.Millisecond)
	matches, err := w.searcher.SearchFile(event.Name)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	w.reportMatches(event.Name, matches)
}

func (w *Watcher) isCorpusFile(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range w.searcher.extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func (w *Watcher) reportMatches(filename string, matches []Match) {
	if w.report != nil {
		w.report(matches)
		return
	}
	if len(matches) == 0 {
		log.Printf("no matches in %s", filename)
		return
	}
	log.Printf("found %d matches in %s", len(matches), filename)
	for _, m := range matches {
		log.Printf("- tree %d %s: %s", m.TreeIndex, m.Position, m.Label)
	}
}
