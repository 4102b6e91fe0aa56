// Package truepeople adapts truepeoplesearch.com. Rows carry pre-built
// search URLs or raw street addresses (normalized into address-search URLs)
// instead of keys to type, and the output is a variable-length
// list of person links laid out columnwise at a fixed stride. The site
// serves CAPTCHA interstitials under load; those are treated as transient
// fetch failures and retried with a fresh attempt.
package truepeople

import (
	"net/url"
	"strings"
	"time"

	"github.com/justinlbrj23/onyotpisot/internal/pipeline"
	"github.com/justinlbrj23/onyotpisot/internal/sheets"
)

func init() {
	pipeline.Register(Site())
}

// SearchURLFor builds the search URL for a row key. Keys that already are
// full URLs pass through untouched; anything else is treated as a street
// address and formatted into the site's address-search path, with
// underscores normalized to hyphens.
func SearchURLFor(key string) string {
	if strings.HasPrefix(key, "http://") || strings.HasPrefix(key, "https://") {
		return key
	}
	address := strings.ReplaceAll(key, "_", "-")
	return "https://www.truepeoplesearch.com/find/address/" + url.PathEscape(address)
}

// Site returns the adapter record.
func Site() pipeline.Site {
	return pipeline.Site{
		Name:     "truepeople",
		KeyIsURL: true,
		KeyToURL: SearchURLFor,

		NavTimeout: 20 * time.Second,

		Groups: &pipeline.Groups{
			Container:    pipeline.Css("body"),
			ItemSelector: `a[href^="/find/person/"]`,
			HrefPrefix:   "https://www.truepeoplesearch.com",
			// First person link lands in column T; three columns per
			// person leave a spare column between entries for manual
			// notes.
			BaseColumn: sheets.ColumnIndex("T"),
			Stride:     3,
			Timeout:    10 * time.Second,
		},

		BlockPhrases: []string{"captcha", "are you a human"},

		// Let the person list finish rendering before reading it.
		Pace: 3 * time.Second,
	}
}
