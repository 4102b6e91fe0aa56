package pipeline

import (
	"fmt"
	"time"
)

// fakeDriver is an in-memory Driver for exercising the row state machine
// without a browser. Element lookups resolve against the locator value.
type fakeDriver struct {
	// texts maps locator value -> element text.
	texts map[string]string
	// attrs maps "locator|attr" -> value.
	attrs map[string]string
	// html maps locator value -> outer HTML.
	html map[string]string
	// pageHTML is returned by PageHTML, used for block-phrase checks.
	pageHTML string

	// navErrs is consumed one per Navigate call; nil entries succeed.
	navErrs []error

	navigated []string
	filled    []string
	clicked   []string
	closed    int

	// readTimeouts and htmlTimeouts record the bound passed with each
	// ReadText/HTML call, keyed by locator value.
	readTimeouts map[string]time.Duration
	htmlTimeouts map[string]time.Duration
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		texts:        map[string]string{},
		attrs:        map[string]string{},
		html:         map[string]string{},
		readTimeouts: map[string]time.Duration{},
		htmlTimeouts: map[string]time.Duration{},
	}
}

func (d *fakeDriver) Navigate(url string, _ time.Duration) error {
	var err error
	if len(d.navErrs) > 0 {
		err = d.navErrs[0]
		d.navErrs = d.navErrs[1:]
	}
	if err != nil {
		return err
	}
	d.navigated = append(d.navigated, url)
	return nil
}

func (d *fakeDriver) WaitFor(loc Locator, _ time.Duration) error {
	if _, ok := d.texts[loc.Value]; ok {
		return nil
	}
	if _, ok := d.html[loc.Value]; ok {
		return nil
	}
	return fmt.Errorf("element %q not found", loc.Value)
}

func (d *fakeDriver) ReadText(loc Locator, timeout time.Duration) (string, error) {
	d.readTimeouts[loc.Value] = timeout
	text, ok := d.texts[loc.Value]
	if !ok {
		return "", fmt.Errorf("element %q not found", loc.Value)
	}
	return text, nil
}

func (d *fakeDriver) ReadAttr(loc Locator, attr string, _ time.Duration) (string, error) {
	value, ok := d.attrs[loc.Value+"|"+attr]
	if !ok {
		return "", fmt.Errorf("element %q not found", loc.Value)
	}
	return value, nil
}

func (d *fakeDriver) Click(loc Locator, _ time.Duration) error {
	if _, ok := d.texts[loc.Value]; !ok {
		return fmt.Errorf("element %q not found", loc.Value)
	}
	d.clicked = append(d.clicked, loc.Value)
	return nil
}

func (d *fakeDriver) Fill(loc Locator, text string, _ bool, _ time.Duration) error {
	if _, ok := d.texts[loc.Value]; !ok {
		return fmt.Errorf("element %q not found", loc.Value)
	}
	d.filled = append(d.filled, text)
	return nil
}

func (d *fakeDriver) HTML(loc Locator, timeout time.Duration) (string, error) {
	d.htmlTimeouts[loc.Value] = timeout
	html, ok := d.html[loc.Value]
	if !ok {
		return "", fmt.Errorf("element %q not found", loc.Value)
	}
	return html, nil
}

func (d *fakeDriver) PageHTML() (string, error) {
	return d.pageHTML, nil
}

func (d *fakeDriver) Close() error {
	d.closed++
	return nil
}
