package codebase

import (
	"io/fs"
	"path/filepath"
	"strings"
	"time"
)

// FileWatcher polls the codebase root and rescans sources whose
// modification time changed.
type FileWatcher struct {
	codebase     *Codebase
	stopCh       chan struct{}
	doneCh       chan struct{}
	pollInterval time.Duration
	modTimes     map[string]time.Time
	onChange     func(path string, f *FileInfo)
}

func NewFileWatcher(c *Codebase) *FileWatcher {
	return &FileWatcher{
		codebase:     c,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
		pollInterval: 1 * time.Second,
		modTimes:     make(map[string]time.Time),
	}
}

// SetPollInterval changes how often the root is polled. Call it before
// Start.
func (w *FileWatcher) SetPollInterval(d time.Duration) {
	w.pollInterval = d
}

// OnChange registers fn to run after a file is rescanned or, with a nil
// FileInfo, removed. Call it before Start.
func (w *FileWatcher) OnChange(fn func(path string, f *FileInfo)) {
	w.onChange = fn
}

func (w *FileWatcher) Start() {
	go w.run()
}

// Stop ends polling and waits for the current scan to finish.
func (w *FileWatcher) Stop() {
	close(w.stopCh)
	<-w.doneCh
}

func (w *FileWatcher) run() {
	defer close(w.doneCh)
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.Scan()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.Scan()
		}
	}
}

// Scan polls the root once.
func (w *FileWatcher) Scan() {
	current := make(map[string]bool)

	filepath.WalkDir(w.codebase.RootDir(), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != w.codebase.RootDir() && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsSource(path) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}

		current[path] = true

		lastMod, known := w.modTimes[path]
		if !known || !info.ModTime().Equal(lastMod) {
			w.modTimes[path] = info.ModTime()
			if err := w.codebase.ScanFile(path); err != nil {
				log.Warningf("rescan %s: %s", path, err)
				return nil
			}
			w.notify(path, w.codebase.GetFile(path))
		}
		return nil
	})

	for path := range w.modTimes {
		if !current[path] {
			delete(w.modTimes, path)
			w.codebase.RemoveFile(path)
			w.notify(path, nil)
		}
	}
}

func (w *FileWatcher) notify(path string, f *FileInfo) {
	if w.onChange != nil {
		w.onChange(path, f)
	}
}
