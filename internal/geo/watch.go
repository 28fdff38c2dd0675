package geo

import (
	"context"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the dataset and rebuilds the province index when the
// GeoJSON file changes on disk. The rebuilt index is handed to onSwap, which
// is responsible for publishing it atomically; an index itself is never
// mutated in place.
type Watcher struct {
	path   string
	onSwap func(*FeatureCollection, *Index)
}

// NewWatcher creates a watcher for the dataset at path.
func NewWatcher(path string, onSwap func(*FeatureCollection, *Index)) *Watcher {
	return &Watcher{path: filepath.Clean(path), onSwap: onSwap}
}

// Start begins watching until ctx is cancelled. The watch is on the parent
// directory since editors and atomic writers replace the file inode.
func (w *Watcher) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != w.path {
					continue
				}
				if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				fc, err := LoadDataset(w.path)
				if err != nil {
					log.Printf("[geo] dataset reload failed: %v", err)
					continue
				}
				log.Printf("[geo] dataset changed, rebuilding index (%d features)", len(fc.Features))
				w.onSwap(fc, BuildIndex(fc))
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("[geo] watch error: %v", err)
			}
		}
	}()

	return watcher.Add(filepath.Dir(w.path))
}
