/*
Package watch notifies changes to a file, so that a tree can be grown
again every time its input is edited.
*/
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/zerr"
)

// Watcher reports changes to a single file.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	debounce  time.Duration
}

/*
New takes the path of a file and a debounce duration and returns a Watcher
for it or an error. The file's directory is watched rather than the file,
so that editors replacing the file on save are followed. Events on the file
within debounce of each other are reported as a single change.
*/
func New(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "resolving watched file"), "path", path)
	}
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, "creating file watcher")
	}
	err = fsWatcher.Add(filepath.Dir(abs))
	if err != nil {
		fsWatcher.Close()
		return nil, zerr.With(zerr.Wrap(err, "watching directory"), "path", filepath.Dir(abs))
	}
	return &Watcher{fsWatcher, abs, debounce}, nil
}

/*
Run sends a value on changes every time the file is written, created or
renamed into place, until the context is done or the underlying watcher
fails. It always returns a non-nil error, the context's when it is done.
The Watcher is closed when Run returns.
*/
func (w *Watcher) Run(ctx context.Context, changes chan<- struct{}) error {
	defer w.Close()
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return zerr.Wrap(fsnotify.ErrClosed, "watching file")
			}
			if filepath.Clean(event.Name) != w.path || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			fire = time.After(w.debounce)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return zerr.Wrap(fsnotify.ErrClosed, "watching file")
			}
			return zerr.With(zerr.Wrap(err, "watching file"), "path", w.path)
		case <-fire:
			fire = nil
			select {
			case changes <- struct{}{}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

// Close stops watching the file.
func (w *Watcher) Close() error {
	return w.fsWatcher.Close()
}
