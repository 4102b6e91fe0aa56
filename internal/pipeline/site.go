package pipeline

import (
	"strings"
	"time"
)

// FieldSelector configures one text field to extract and the output column
// it lands in.
type FieldSelector struct {
	Name    string
	Locator Locator
	// Timeout bounds the wait for the element. Zero falls back to a short
	// default; every wait the row processor issues is bounded, since an
	// unbounded element lookup would stall the whole batch.
	Timeout time.Duration
	// Required fields fail the whole row when absent; optional fields
	// yield the NotFound placeholder instead.
	Required bool
	// Column is the output column letter for this field.
	Column string
	// Before runs page actions (tab clicks, pauses) ahead of reading this
	// field.
	Before []Action
}

// NotFound is the placeholder written for optional fields whose element
// never appeared.
const NotFound = "Not Found"

// ActionKind enumerates the scripted page actions a site may need between
// the results marker and field extraction.
type ActionKind string

const (
	// ActionClick clicks an element.
	ActionClick ActionKind = "click"
	// ActionFollowHref reads an element's href and navigates to it.
	ActionFollowHref ActionKind = "follow-href"
	// ActionPause sleeps for Pause to mimic human pacing.
	ActionPause ActionKind = "pause"
)

// Action is one step of a site's detail script.
type Action struct {
	Kind    ActionKind
	Locator Locator
	Timeout time.Duration
	Pause   time.Duration
}

// Warning describes a site's transient modal/pop-up. Dismissal is best
// effort: absence is never an error.
type Warning struct {
	// Wait optionally gates dismissal on another element's presence.
	Wait    Locator
	Dismiss Locator
	Timeout time.Duration
}

// Groups configures extraction of a variable-length list of link items
// (href/text pairs) out of a container element. The k-th item's href lands
// at column BaseColumn + k*Stride, its text one column after.
type Groups struct {
	Container Locator
	// ItemSelector is a goquery selector for the link elements inside the
	// container.
	ItemSelector string
	// HrefPrefix absolutizes relative hrefs.
	HrefPrefix string
	// BaseColumn is the 0-based index of the first item's href column.
	BaseColumn int
	// Stride is the number of columns per item, at least 2.
	Stride int
	// Timeout bounds the wait for the container. Zero falls back to the
	// same short default as field reads.
	Timeout time.Duration
}

// Site is the declarative adapter record for one target website: base URL,
// selectors, column mapping, and session scope. The row processor consumes
// it; nothing site-specific lives outside these records.
type Site struct {
	Name string

	// SearchURL is the search page loaded for every row. Ignored when
	// KeyIsURL is set, in which case the row key is itself the URL.
	SearchURL string
	KeyIsURL  bool

	// KeyToURL, when set with KeyIsURL, normalizes a row key into the
	// target URL, so keys may also be raw addresses or names rather than
	// pre-built links.
	KeyToURL func(key string) string

	NavTimeout time.Duration

	// SearchInput receives the row key followed by Enter.
	SearchInput  Locator
	InputTimeout time.Duration

	// Warning, when present, is dismissed after submitting the search, or
	// before it when WarningFirst is set.
	Warning      *Warning
	WarningFirst bool

	// ResultMarker gates extraction: if it never appears the row fails
	// with no partial writes.
	ResultMarker  Locator
	ResultTimeout time.Duration

	// Detail runs after the result marker and before field extraction.
	Detail []Action

	Fields []FieldSelector
	Groups *Groups

	// SharedSession keeps one browser for the whole batch; the processor
	// then fully re-navigates per row. Sites whose page state bleeds
	// between searches must leave this unset.
	SharedSession bool

	// Pace inserts a fixed pause after search submission.
	Pace time.Duration

	// BlockPhrases mark a fetched page as blocked (CAPTCHA interstitial);
	// a match is treated as a transient fetch failure and retried.
	BlockPhrases []string
}

var registry = map[string]Site{}

// Register adds a site adapter under its lowercased name. Site packages
// call it from init.
func Register(s Site) {
	registry[strings.ToLower(s.Name)] = s
}

// Lookup returns a registered site adapter.
func Lookup(name string) (Site, bool) {
	s, ok := registry[strings.ToLower(name)]
	return s, ok
}

// Names lists the registered adapters in no particular order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
