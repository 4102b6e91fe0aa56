package pipeline

import (
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"

	"github.com/justinlbrj23/onyotpisot/internal/browser"
)

// RodSession implements Session on a real browser page.
type RodSession struct {
	browser *browser.Browser
	page    *rod.Page
}

// NewRodSession launches a browser and opens its page.
func NewRodSession(cfg browser.Config) (*RodSession, error) {
	b, err := browser.New(cfg)
	if err != nil {
		return nil, err
	}
	page, err := b.NewPage()
	if err != nil {
		b.Close()
		return nil, err
	}
	return &RodSession{browser: b, page: page}, nil
}

// RodFactory adapts NewRodSession to the SessionFactory shape.
func RodFactory(cfg browser.Config) SessionFactory {
	return func() (Session, error) {
		return NewRodSession(cfg)
	}
}

// Close releases the page and everything the browser owns.
func (s *RodSession) Close() error {
	if s.page != nil {
		_ = s.page.Close()
	}
	return s.browser.Close()
}

func (s *RodSession) element(loc Locator, timeout time.Duration) (*rod.Element, error) {
	// Rod's element lookups poll until the element appears; without a
	// deadline a missing element would stall the batch forever.
	if timeout <= 0 {
		timeout = defaultFieldTimeout
	}
	page := s.page.Timeout(timeout)
	switch loc.Kind {
	case XPath:
		return page.ElementX(loc.Value)
	case ID:
		return page.Element(fmt.Sprintf("[id=%q]", loc.Value))
	default:
		return page.Element(loc.Value)
	}
}

func (s *RodSession) Navigate(url string, timeout time.Duration) error {
	page := s.page.Timeout(timeout)
	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("failed to navigate: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("failed to wait for page load: %w", err)
	}
	return nil
}

func (s *RodSession) WaitFor(loc Locator, timeout time.Duration) error {
	if _, err := s.element(loc, timeout); err != nil {
		return fmt.Errorf("failed to wait for element %q: %w", loc.Value, err)
	}
	return nil
}

func (s *RodSession) ReadText(loc Locator, timeout time.Duration) (string, error) {
	el, err := s.element(loc, timeout)
	if err != nil {
		return "", fmt.Errorf("element %q not found: %w", loc.Value, err)
	}
	text, err := el.Text()
	if err != nil {
		return "", fmt.Errorf("failed to read text of %q: %w", loc.Value, err)
	}
	return text, nil
}

func (s *RodSession) ReadAttr(loc Locator, attr string, timeout time.Duration) (string, error) {
	el, err := s.element(loc, timeout)
	if err != nil {
		return "", fmt.Errorf("element %q not found: %w", loc.Value, err)
	}
	value, err := el.Attribute(attr)
	if err != nil {
		return "", fmt.Errorf("failed to read %s of %q: %w", attr, loc.Value, err)
	}
	if value == nil {
		return "", nil
	}
	return *value, nil
}

func (s *RodSession) Click(loc Locator, timeout time.Duration) error {
	el, err := s.element(loc, timeout)
	if err != nil {
		return fmt.Errorf("element %q not found: %w", loc.Value, err)
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("failed to click %q: %w", loc.Value, err)
	}
	return nil
}

func (s *RodSession) Fill(loc Locator, text string, submit bool, timeout time.Duration) error {
	el, err := s.element(loc, timeout)
	if err != nil {
		return fmt.Errorf("element %q not found: %w", loc.Value, err)
	}
	if err := el.Input(text); err != nil {
		return fmt.Errorf("failed to type into %q: %w", loc.Value, err)
	}
	if submit {
		if err := el.Type(input.Enter); err != nil {
			return fmt.Errorf("failed to submit %q: %w", loc.Value, err)
		}
	}
	return nil
}

func (s *RodSession) HTML(loc Locator, timeout time.Duration) (string, error) {
	el, err := s.element(loc, timeout)
	if err != nil {
		return "", fmt.Errorf("element %q not found: %w", loc.Value, err)
	}
	html, err := el.HTML()
	if err != nil {
		return "", fmt.Errorf("failed to read html of %q: %w", loc.Value, err)
	}
	return html, nil
}

func (s *RodSession) PageHTML() (string, error) {
	return s.page.HTML()
}
