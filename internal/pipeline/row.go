package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/justinlbrj23/onyotpisot/internal/sheets"
)

const (
	defaultNavTimeout    = 30 * time.Second
	defaultInputTimeout  = 60 * time.Second
	defaultResultTimeout = 60 * time.Second
	defaultDialogTimeout = 5 * time.Second
	defaultFieldTimeout  = 10 * time.Second
)

// ProcessRow drives one input row through
// NAVIGATE -> SUBMIT_SEARCH -> DISMISS_WARNING -> WAIT_RESULT -> EXTRACT_FIELDS
// and returns the cells to write. Any returned error means the row FAILED
// and nothing must be written: extraction is all-or-nothing for required
// fields. Session release is the caller's job so it happens on every exit
// path, including panics above this frame.
func ProcessRow(ctx context.Context, d Driver, site Site, row sheets.InputRow) ([]sheets.Cell, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// NAVIGATE. Network-level failures and blocked (CAPTCHA) responses
	// are the only retried class; a plain load timeout fails the row at
	// once.
	target := site.SearchURL
	if site.KeyIsURL {
		target = row.Key
		if site.KeyToURL != nil {
			target = site.KeyToURL(row.Key)
		}
	}
	navTimeout := site.NavTimeout
	if navTimeout == 0 {
		navTimeout = defaultNavTimeout
	}
	err := Retry(ctx, DefaultRetryAttempts, DefaultRetryBase, isTransient, func() error {
		if err := d.Navigate(target, navTimeout); err != nil {
			return classifyNavError(err)
		}
		return checkBlocked(d, site)
	})
	if err != nil {
		return nil, err
	}

	if site.WarningFirst {
		dismissWarning(d, site.Warning)
	}

	// SUBMIT_SEARCH.
	if !site.KeyIsURL && !site.SearchInput.IsZero() {
		inputTimeout := site.InputTimeout
		if inputTimeout == 0 {
			inputTimeout = defaultInputTimeout
		}
		if err := d.Fill(site.SearchInput, row.Key, true, inputTimeout); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInputNotFound, err)
		}
	}

	if site.Pace > 0 {
		time.Sleep(site.Pace)
	}

	// DISMISS_WARNING: best effort, never fails the row.
	if !site.WarningFirst {
		dismissWarning(d, site.Warning)
	}

	// WAIT_RESULT.
	if !site.ResultMarker.IsZero() {
		resultTimeout := site.ResultTimeout
		if resultTimeout == 0 {
			resultTimeout = defaultResultTimeout
		}
		if err := d.WaitFor(site.ResultMarker, resultTimeout); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrResultNotFound, err)
		}
	}

	if err := runActions(d, site, site.Detail); err != nil {
		return nil, err
	}

	// EXTRACT_FIELDS.
	var cells []sheets.Cell
	for _, field := range site.Fields {
		if err := runActions(d, site, field.Before); err != nil {
			return nil, err
		}
		fieldTimeout := field.Timeout
		if fieldTimeout == 0 {
			fieldTimeout = defaultFieldTimeout
		}
		text, err := d.ReadText(field.Locator, fieldTimeout)
		if err != nil {
			if field.Required {
				return nil, fmt.Errorf("%w: field %s: %v", ErrFieldExtraction, field.Name, err)
			}
			text = NotFound
		}
		cells = append(cells, sheets.Cell{
			Row:    row.Index,
			Column: field.Column,
			Value:  strings.TrimSpace(text),
		})
	}

	if site.Groups != nil {
		g := *site.Groups
		groupTimeout := g.Timeout
		if groupTimeout == 0 {
			groupTimeout = defaultFieldTimeout
		}
		html, err := d.HTML(g.Container, groupTimeout)
		if err != nil {
			return nil, fmt.Errorf("%w: group container: %v", ErrFieldExtraction, err)
		}
		items, err := ParseGroups(html, g)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFieldExtraction, err)
		}
		cells = append(cells, GroupCells(items, g, row.Index)...)
	}

	return cells, nil
}

func isTransient(err error) bool {
	return errors.Is(err, ErrNetworkProtocol)
}

// classifyNavError separates transient network failures (retryable) from
// plain load timeouts (not retried). Rod surfaces Chromium network errors
// as "net::ERR_*" strings.
func classifyNavError(err error) error {
	msg := err.Error()
	if strings.Contains(msg, "net::ERR_") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "protocol error") {
		return fmt.Errorf("%w: %v", ErrNetworkProtocol, err)
	}
	return fmt.Errorf("%w: %v", ErrNavigationTimeout, err)
}

// checkBlocked treats a CAPTCHA interstitial as a transient fetch failure
// so the navigate retry loop gets another shot at it.
func checkBlocked(d Driver, site Site) error {
	if len(site.BlockPhrases) == 0 {
		return nil
	}
	html, err := d.PageHTML()
	if err != nil {
		return nil
	}
	lower := strings.ToLower(html)
	for _, phrase := range site.BlockPhrases {
		if strings.Contains(lower, strings.ToLower(phrase)) {
			return fmt.Errorf("%w: blocked response (%q)", ErrNetworkProtocol, phrase)
		}
	}
	return nil
}

// dismissWarning handles the site's transient pop-up. It may or may not
// appear; absence must never fail the row.
func dismissWarning(d Driver, w *Warning) {
	if w == nil {
		return
	}
	timeout := w.Timeout
	if timeout == 0 {
		timeout = defaultDialogTimeout
	}
	if !w.Wait.IsZero() {
		if err := d.WaitFor(w.Wait, timeout); err != nil {
			return
		}
	}
	_ = d.Click(w.Dismiss, timeout)
}

// runActions executes a site's detail script. Any failing step fails the
// row: the later field reads would be against the wrong page.
func runActions(d Driver, site Site, actions []Action) error {
	for _, a := range actions {
		timeout := a.Timeout
		if timeout == 0 {
			timeout = defaultResultTimeout
		}
		switch a.Kind {
		case ActionClick:
			if err := d.Click(a.Locator, timeout); err != nil {
				return fmt.Errorf("%w: click %s: %v", ErrFieldExtraction, a.Locator.Value, err)
			}
		case ActionFollowHref:
			href, err := d.ReadAttr(a.Locator, "href", timeout)
			if err != nil || href == "" {
				return fmt.Errorf("%w: href %s: %v", ErrFieldExtraction, a.Locator.Value, err)
			}
			navTimeout := site.NavTimeout
			if navTimeout == 0 {
				navTimeout = defaultNavTimeout
			}
			if err := d.Navigate(href, navTimeout); err != nil {
				return classifyNavError(err)
			}
		case ActionPause:
			time.Sleep(a.Pause)
		default:
			return fmt.Errorf("unknown action kind %q", a.Kind)
		}
	}
	return nil
}
