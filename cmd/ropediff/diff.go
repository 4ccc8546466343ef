package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dshills/ropekit/internal/config"
	"github.com/dshills/ropekit/internal/engine"
	"github.com/dshills/ropekit/internal/report"
)

// differ diffs files and writes reports.
type differ struct {
	eng    *engine.Engine
	cfg    *config.Config
	logger *slog.Logger
	out    io.Writer
	format report.Format
	color  bool
}

// diffFiles diffs two files and renders the report. It reports whether
// the files differ.
func (d *differ) diffFiles(oldPath, newPath string) (bool, error) {
	oldText, err := readText(oldPath)
	if err != nil {
		return false, err
	}
	newText, err := readText(newPath)
	if err != nil {
		return false, err
	}

	res, err := d.eng.Diff(oldText, newText)
	if err != nil {
		return false, fmt.Errorf("diff %s %s: %w", oldPath, newPath, err)
	}
	if err := d.emit(res, oldPath, newPath); err != nil {
		return false, err
	}
	return res.HasChanges(), nil
}

// emit verifies res if configured and renders its report.
func (d *differ) emit(res *engine.Result, oldName, newName string) error {
	if d.cfg.Diff.Verify {
		if err := res.Verify(); err != nil {
			return err
		}
		d.logger.Debug("edit script verified", "edits", len(res.Edits))
	}

	rep := report.New(res,
		report.WithNames(oldName, newName),
		report.WithDigestKey(d.cfg.Output.DigestKey),
	)
	if err := rep.Render(d.out, d.format, report.WithColor(d.color)); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
