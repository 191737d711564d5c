// Package watch auto-registers template documents dropped into an
// inbox directory. Files that register cleanly move to the done
// directory; files that fail move to review for a human to look at.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jackzampolin/stencil/internal/config"
	"github.com/jackzampolin/stencil/internal/pipeline"
)

// Watcher monitors the inbox for new .docx templates.
type Watcher struct {
	cfg    config.WatchConfig
	svc    *pipeline.Service
	log    *slog.Logger
	settle time.Duration
}

// New returns a watcher over cfg's inbox.
func New(cfg config.WatchConfig, svc *pipeline.Service, log *slog.Logger) *Watcher {
	if log == nil {
		log = slog.Default()
	}
	settle := time.Duration(cfg.SettleMillis) * time.Millisecond
	if settle <= 0 {
		settle = 500 * time.Millisecond
	}
	return &Watcher{cfg: cfg, svc: svc, log: log, settle: settle}
}

// Run processes any templates already sitting in the inbox, then blocks
// watching for new ones until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	for _, dir := range []string{w.cfg.Inbox, w.cfg.Done, w.cfg.Review} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	entries, err := os.ReadDir(w.cfg.Inbox)
	if err != nil {
		return fmt.Errorf("reading inbox: %w", err)
	}
	for _, e := range entries {
		if !e.IsDir() && isTemplateFile(e.Name()) {
			w.process(ctx, filepath.Join(w.cfg.Inbox, e.Name()))
		}
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.cfg.Inbox); err != nil {
		return fmt.Errorf("watching %s: %w", w.cfg.Inbox, err)
	}
	w.log.Info("watching inbox", "dir", w.cfg.Inbox)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			if !isTemplateFile(ev.Name) {
				continue
			}
			if !w.waitSettled(ctx, ev.Name) {
				continue
			}
			w.process(ctx, ev.Name)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Error("watch error", "err", err)
		}
	}
}

// waitSettled waits for the file to stop growing. Editors and network
// copies emit a burst of writes; registering mid-copy reads a torn zip.
func (w *Watcher) waitSettled(ctx context.Context, path string) bool {
	var lastSize int64 = -1
	for {
		select {
		case <-ctx.Done():
			return false
		case <-time.After(w.settle):
		}
		info, err := os.Stat(path)
		if err != nil {
			return false
		}
		if info.Size() == lastSize {
			return true
		}
		lastSize = info.Size()
	}
}

func (w *Watcher) process(ctx context.Context, path string) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if _, err := w.svc.Register(ctx, path, name); err != nil {
		w.log.Error("registration failed", "file", path, "err", err)
		w.move(path, w.cfg.Review)
		return
	}
	w.move(path, w.cfg.Done)
}

func (w *Watcher) move(path, dir string) {
	dst := filepath.Join(dir, filepath.Base(path))
	if err := os.Rename(path, dst); err != nil {
		w.log.Error("moving file", "from", path, "to", dst, "err", err)
	}
}

func isTemplateFile(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, "~$") || strings.HasPrefix(base, ".") {
		return false
	}
	return strings.EqualFold(filepath.Ext(base), ".docx")
}
