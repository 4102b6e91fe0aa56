package pipeline

import "time"

// LocatorKind selects the selector language of a Locator.
type LocatorKind string

const (
	CSS   LocatorKind = "css"
	XPath LocatorKind = "xpath"
	ID    LocatorKind = "id"
)

// Locator addresses one element on a page.
type Locator struct {
	Kind  LocatorKind
	Value string
}

// IsZero reports whether the locator is unset.
func (l Locator) IsZero() bool { return l.Value == "" }

// Css is shorthand for a CSS locator.
func Css(sel string) Locator { return Locator{Kind: CSS, Value: sel} }

// Xp is shorthand for an XPath locator.
func Xp(expr string) Locator { return Locator{Kind: XPath, Value: expr} }

// ByID is shorthand for an element-id locator.
func ByID(id string) Locator { return Locator{Kind: ID, Value: id} }

// Driver is the narrow browser capability the row processor runs against.
// Keeping it this small lets the whole state machine be tested with a fake
// instead of a real browser. All waits are bounded by the given timeout.
type Driver interface {
	Navigate(url string, timeout time.Duration) error
	WaitFor(loc Locator, timeout time.Duration) error
	ReadText(loc Locator, timeout time.Duration) (string, error)
	ReadAttr(loc Locator, attr string, timeout time.Duration) (string, error)
	Click(loc Locator, timeout time.Duration) error
	// Fill types text into an element, optionally pressing Enter after.
	Fill(loc Locator, text string, submit bool, timeout time.Duration) error
	// HTML returns the outer HTML of the located element.
	HTML(loc Locator, timeout time.Duration) (string, error)
	// PageHTML returns the current document's HTML, used for block-phrase
	// detection and failure snapshots.
	PageHTML() (string, error)
}

// Session is a Driver whose underlying browser resources must be released
// exactly once, on every exit path.
type Session interface {
	Driver
	Close() error
}

// SessionFactory acquires a fresh session. The runner decides whether one
// session spans the whole batch or each row gets its own.
type SessionFactory func() (Session, error)
