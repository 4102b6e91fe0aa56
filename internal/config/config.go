// Package config loads the run configuration from a JSON5 file, merged
// with an optional `.local.` override next to it.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/titanous/json5"

	"github.com/justinlbrj23/onyotpisot/internal/sheets"
)

// Browser holds the externalized browser settings. Bin and ProfileDir are
// deliberately configuration, not guessed defaults: empty values defer to
// rod's own browser resolution and the OS temp directory.
type Browser struct {
	Bin        string `json:"bin"`
	ProfileDir string `json:"profileDir"`
	Headless   *bool  `json:"headless"`
	ProxyURL   string `json:"proxy"`
	NoSandbox  bool   `json:"noSandbox"`
}

// Sheet selects the spreadsheet backend and its ranges.
type Sheet struct {
	// Backend is "google" or "excel".
	Backend    string              `json:"backend"`
	Google     sheets.GoogleConfig `json:"google"`
	Workbook   string              `json:"workbook"`
	SheetName  string              `json:"sheetName"`
	KeyRange   string              `json:"keyRange"`
	CheckRange string              `json:"checkRange"`
}

// Config is the whole run configuration for one site batch.
type Config struct {
	Site        string        `json:"site"`
	Sheet       Sheet         `json:"sheet"`
	Browser     Browser       `json:"browser"`
	Timeout     time.Duration `json:"-"`
	TimeoutText string        `json:"timeout"`
	SnapshotDir string        `json:"snapshotDir"`
}

// Headless reports the effective headless setting, defaulting to true.
func (b Browser) IsHeadless() bool {
	return b.Headless == nil || *b.Headless
}

// Read loads `name` and merges `<name without ext>.local.<ext>` over it,
// the local file winning. A missing local file is fine; both missing is
// os.ErrNotExist.
func Read(name string) (Config, error) {
	var out Config
	allNotFound := true

	raw, err := os.ReadFile(name)
	if err != nil && !os.IsNotExist(err) {
		return out, err
	}
	if len(raw) > 0 {
		if err := json5.Unmarshal(raw, &out); err != nil {
			return out, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		allNotFound = false
	}

	localPath := localName(name)
	localRaw, err := os.ReadFile(localPath)
	if err != nil && !os.IsNotExist(err) {
		return out, err
	}
	if len(localRaw) > 0 {
		var override Config
		if err := json5.Unmarshal(localRaw, &override); err != nil {
			return out, fmt.Errorf("failed to parse %s: %w", localPath, err)
		}
		if err := mergo.Merge(&out, override, mergo.WithOverride); err != nil {
			return out, err
		}
		slog.Info("merging config with local overrides", "local", localPath)
		allNotFound = false
	}

	if allNotFound {
		return out, os.ErrNotExist
	}

	if out.TimeoutText != "" {
		out.Timeout, err = time.ParseDuration(out.TimeoutText)
		if err != nil {
			return out, fmt.Errorf("invalid timeout %q: %w", out.TimeoutText, err)
		}
	}
	return out, nil
}

func localName(name string) string {
	dir := filepath.Dir(name)
	base := filepath.Base(name)
	ext := filepath.Ext(base)
	prefix := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, prefix+".local"+ext)
}
