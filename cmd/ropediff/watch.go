package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dshills/ropekit/internal/watch"
)

// Snapshot names for the two sides of the comparison.
const (
	snapOld = "old"
	snapNew = "new"
)

// watch diffs the files once and again after every change until ctx is
// cancelled. Each change is also diffed against the previous version of
// the changed file and logged.
func (d *differ) watch(ctx context.Context, oldPath, newPath string) error {
	roles := make(map[string]string, 2)
	for role, path := range map[string]string{snapOld: oldPath, snapNew: newPath} {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		roles[abs] = role
		text, err := readText(path)
		if err != nil {
			return err
		}
		if _, err := d.eng.Snapshot(role, text); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	names := map[string]string{snapOld: oldPath, snapNew: newPath}

	fw, err := watch.NewFileWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()
	for abs := range roles {
		if err := fw.Watch(abs); err != nil && !errors.Is(err, watch.ErrAlreadyWatching) {
			return fmt.Errorf("watch %s: %w", abs, err)
		}
	}

	deb := watch.NewDebouncer(fw.Events(), d.cfg.Debounce())
	defer deb.Close()

	if err := d.diffSnapshots(names); err != nil {
		return err
	}
	d.logger.Info("watching for changes", "old", oldPath, "new", newPath)

	for {
		select {
		case <-ctx.Done():
			d.logger.Debug("watch stopped")
			return nil
		case err, ok := <-fw.Errors():
			if !ok {
				return nil
			}
			d.logger.Warn("watcher error", "error", err)
		case ev, ok := <-deb.Events():
			if !ok {
				return nil
			}
			role, known := roles[ev.Path]
			if !known {
				continue
			}
			changed, err := d.refresh(role, ev)
			if err != nil {
				d.logger.Warn("skipping change", "path", ev.Path, "op", ev.Op.String(), "error", err)
				continue
			}
			if !changed {
				continue
			}
			if err := d.diffSnapshots(names); err != nil {
				d.logger.Error("diff failed", "error", err)
			}
		}
	}
}

// refresh re-reads a changed file, logs how it changed since the last
// snapshot and replaces the snapshot. It reports whether the text changed.
func (d *differ) refresh(role string, ev watch.Event) (bool, error) {
	text, err := readText(ev.Path)
	if err != nil {
		return false, err
	}
	res, err := d.eng.DiffSince(role, text)
	if err != nil {
		return false, err
	}
	if !res.HasChanges() {
		d.logger.Debug("file unchanged", "path", ev.Path, "op", ev.Op.String())
		return false, nil
	}
	d.logger.Info("file changed",
		"path", ev.Path,
		"op", ev.Op.String(),
		"inserted", res.Inserted(),
		"deleted", res.Deleted(),
	)
	if _, err := d.eng.Snapshot(role, text); err != nil {
		return false, err
	}
	return true, nil
}

// diffSnapshots diffs the current old and new snapshots and renders the
// report.
func (d *differ) diffSnapshots(names map[string]string) error {
	res, err := d.eng.DiffSnapshots(snapOld, snapNew)
	if err != nil {
		return err
	}
	return d.emit(res, names[snapOld], names[snapNew])
}
