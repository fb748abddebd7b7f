// Package watch offers a best-effort notifier for "the store changed under
// you": it watches 90_index for writes from another process (another BWT
// call, a hand edit) and is never consulted by the BWT engine itself,
// which relies on its own residue check instead.
package watch

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Notifier watches a store's index directory and emits a debounced signal
// on Changed whenever records.jsonl, manifest.json, or records_digest.txt
// is written.
type Notifier struct {
	watcher *fsnotify.Watcher
	Changed chan string

	debounce time.Duration
	last     map[string]time.Time
}

// New starts watching root's 90_index directory. Callers must call Close
// when done. A failure to start the underlying watcher (e.g. inotify
// limits exhausted) is returned rather than silently degrading — the
// caller decides whether a missing watcher is fatal.
func New(root string) (*Notifier, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	indexDir := filepath.Join(root, "90_index")
	if err := w.Add(indexDir); err != nil {
		_ = w.Close()
		return nil, err
	}

	n := &Notifier{
		watcher:  w,
		Changed:  make(chan string, 8),
		debounce: 200 * time.Millisecond,
		last:     map[string]time.Time{},
	}
	go n.run()
	return n, nil
}

func (n *Notifier) run() {
	interesting := map[string]bool{
		"records.jsonl":      true,
		"manifest.json":      true,
		"records_digest.txt": true,
	}
	for {
		select {
		case ev, ok := <-n.watcher.Events:
			if !ok {
				close(n.Changed)
				return
			}
			name := filepath.Base(ev.Name)
			if !interesting[name] {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			now := time.Now()
			if last, ok := n.last[name]; ok && now.Sub(last) < n.debounce {
				continue
			}
			n.last[name] = now
			select {
			case n.Changed <- name:
			default:
			}
		case _, ok := <-n.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// Close stops the watcher.
func (n *Notifier) Close() error {
	return n.watcher.Close()
}
