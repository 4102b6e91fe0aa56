// Package browser wraps go-rod behind a small session type. Every session
// owns its own browser process and temporary profile directory; Close tears
// both down on every exit path.
package browser

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/shirou/gopsutil/v4/process"
)

// Config controls how a browser session is launched.
type Config struct {
	// Bin is the browser executable path. Empty defers to rod's own
	// browser resolution.
	Bin string
	// ProfileDir is the base directory for per-session profiles. Empty
	// uses the OS temp directory.
	ProfileDir string
	Headless   bool
	ProxyURL   string
	// NoSandbox is required in container-style execution environments.
	NoSandbox bool
	// UserAgent overrides the rotated pool pick when non-empty.
	UserAgent string
}

const (
	profileRemoveAttempts = 5
	profileRemoveBackoff  = 200 * time.Millisecond
)

// Browser is one launched browser instance plus its temporary profile.
type Browser struct {
	browser    *rod.Browser
	launcher   *launcher.Launcher
	profileDir string
	userAgent  string
}

// New launches a browser with a fresh isolated profile directory.
func New(cfg Config) (*Browser, error) {
	profileDir, err := os.MkdirTemp(cfg.ProfileDir, "profile-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create profile dir: %w", err)
	}

	l := launcher.New().
		Headless(cfg.Headless).
		UserDataDir(profileDir).
		NoSandbox(cfg.NoSandbox)
	if cfg.Bin != "" {
		l = l.Bin(cfg.Bin)
	}
	if cfg.ProxyURL != "" {
		l = l.Proxy(cfg.ProxyURL)
	}

	url, err := l.Launch()
	if err != nil {
		removeProfileDir(profileDir)
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	b := rod.New().ControlURL(url)
	if err := b.Connect(); err != nil {
		l.Kill()
		removeProfileDir(profileDir)
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	ua := cfg.UserAgent
	if ua == "" {
		ua = PickUserAgent()
	}

	return &Browser{
		browser:    b,
		launcher:   l,
		profileDir: profileDir,
		userAgent:  ua,
	}, nil
}

// UserAgent returns the user agent applied to pages of this session.
func (b *Browser) UserAgent() string {
	return b.userAgent
}

// NewPage creates a page with the session user agent and webdriver masking
// applied before any document loads.
func (b *Browser) NewPage() (*rod.Page, error) {
	page, err := b.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	_ = page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: b.userAgent})
	_, _ = page.EvalOnNewDocument(`Object.defineProperty(navigator, 'webdriver', {get: () => undefined});`)
	return page, nil
}

// Close shuts the browser down and cleans up everything it owned: the CDP
// connection, the launcher's process, any process still holding our profile
// directory, and the directory itself. Failure to remove the directory is
// logged, not fatal.
func (b *Browser) Close() error {
	var closeErr error
	if b.browser != nil {
		closeErr = b.browser.Close()
	}
	if b.launcher != nil {
		b.launcher.Kill()
	}
	reapLingering(b.profileDir)
	removeProfileDir(b.profileDir)
	return closeErr
}

// reapLingering kills browser processes that survived launcher.Kill. A
// process is ours only if its command line references this session's
// profile directory.
func reapLingering(profileDir string) {
	if profileDir == "" {
		return
	}
	procs, err := process.Processes()
	if err != nil {
		return
	}
	for _, p := range procs {
		cmdline, err := p.Cmdline()
		if err != nil || cmdline == "" {
			continue
		}
		if strings.Contains(cmdline, profileDir) {
			if err := p.Kill(); err == nil {
				slog.Warn("reaped lingering browser process", "pid", p.Pid)
			}
		}
	}
}

// removeProfileDir retries removal a few times since the OS may not have
// released file locks the instant the browser exits.
func removeProfileDir(dir string) {
	if dir == "" {
		return
	}
	var err error
	for attempt := 0; attempt < profileRemoveAttempts; attempt++ {
		err = os.RemoveAll(dir)
		if err == nil {
			return
		}
		time.Sleep(profileRemoveBackoff * time.Duration(attempt+1))
	}
	slog.Warn("failed to remove profile dir", "dir", dir, "error", err)
}
