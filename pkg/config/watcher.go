package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/dd0wney/vizaj/pkg/logging"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses the burst of events an editor save produces
const DefaultDebounce = 200 * time.Millisecond

// Watcher reloads a parameters file whenever it changes on disk
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func(Params)
	logger   logging.Logger

	fs   *fsnotify.Watcher
	done chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

// Watch starts watching path. onChange receives every successfully loaded
// and validated parameter set; invalid edits are logged and skipped. The
// parent directory is watched so that editors replacing the file by rename
// are seen.
func Watch(path string, debounce time.Duration, logger logging.Logger, onChange func(Params)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", abs, err)
	}

	w := &Watcher{
		path:     abs,
		debounce: debounce,
		onChange: onChange,
		logger:   logger.With(logging.Component("config")),
		fs:       fsw,
		done:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()

	w.logger.Info("watching parameters", logging.Path(abs))
	return w, nil
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var pending <-chan time.Time
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.logger.Debug("parameters file changed",
				logging.Path(event.Name),
				logging.String("op", event.Op.String()))
			pending = time.After(w.debounce)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", logging.Error(err))

		case <-pending:
			pending = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	p, err := Load(w.path)
	if err != nil {
		w.logger.Warn("parameters reload failed", logging.Path(w.path), logging.Error(err))
		return
	}
	w.logger.Info("parameters reloaded", logging.Path(w.path))
	w.onChange(p)
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
		w.wg.Wait()
	})
	return err
}
