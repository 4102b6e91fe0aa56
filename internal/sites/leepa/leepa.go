// Package leepa adapts the Lee County property appraiser search (leepa.org).
// The flow is the longest of the adapters: submit an owner name, dismiss the
// occasional issues pop-up, follow the first result into the parcel detail
// page, click the reveal image for the ownership block, and pull the value
// off the Values tab. Search results leak page state between owners, so
// every row gets its own session.
package leepa

import (
	"time"

	"github.com/justinlbrj23/onyotpisot/internal/pipeline"
)

func init() {
	pipeline.Register(Site())
}

const resultLink = `//*[@id="ctl00_BodyContentPlaceHolder_WebTab1"]/div/div[1]/div[1]/table/tbody/tr/td[4]/div/div[1]/a`

// Site returns the adapter record.
func Site() pipeline.Site {
	return pipeline.Site{
		Name:      "leepa",
		SearchURL: "https://www.leepa.org/Search/PropertySearch.aspx",

		SearchInput:  pipeline.ByID("ctl00_BodyContentPlaceHolder_WebTab1_tmpl0_STRAPTextBox"),
		InputTimeout: 60 * time.Second,

		Warning: &pipeline.Warning{
			Wait:    pipeline.ByID("ctl00_BodyContentPlaceHolder_pnlIssues"),
			Dismiss: pipeline.ByID("ctl00_BodyContentPlaceHolder_btnWarning"),
			Timeout: 10 * time.Second,
		},

		ResultMarker:  pipeline.Xp(resultLink),
		ResultTimeout: 60 * time.Second,

		Detail: []pipeline.Action{
			{Kind: pipeline.ActionFollowHref, Locator: pipeline.Xp(resultLink), Timeout: 60 * time.Second},
			{Kind: pipeline.ActionPause, Pause: time.Second},
			{Kind: pipeline.ActionClick, Locator: pipeline.Xp(`//*[@id="divDisplayParcelOwner"]/div[1]/div/div[1]/a[2]/img`), Timeout: 60 * time.Second},
			{Kind: pipeline.ActionPause, Pause: time.Second},
		},

		Fields: []pipeline.FieldSelector{
			{
				Name:     "ownership",
				Locator:  pipeline.Xp(`//*[@id="ownershipDiv"]/div/ul`),
				Timeout:  10 * time.Second,
				Required: true,
				Column:   "C",
			},
			{
				Name:     "mailing_address",
				Locator:  pipeline.Xp(`//*[@id="divDisplayParcelOwner"]/div[1]/div/div[2]/div`),
				Timeout:  10 * time.Second,
				Required: true,
				Column:   "D",
			},
			{
				Name: "property_value",
				Before: []pipeline.Action{
					{Kind: pipeline.ActionClick, Locator: pipeline.ByID("ValuesHyperLink"), Timeout: 10 * time.Second},
				},
				Locator:  pipeline.Xp(`//*[@id="valueGrid"]/tbody/tr[2]/td[4]`),
				Timeout:  60 * time.Second,
				Required: true,
				Column:   "E",
			},
			{
				Name:     "building_info",
				Locator:  pipeline.Xp(`//*[@id="divDisplayParcelOwner"]/div[3]/table[1]/tbody/tr[3]/td`),
				Timeout:  10 * time.Second,
				Required: false,
				Column:   "F",
			},
			{
				Name:     "site_address",
				Locator:  pipeline.Xp(`//*[@id="divDisplayParcelOwner"]/div[2]/div[3]`),
				Timeout:  10 * time.Second,
				Required: false,
				Column:   "S",
			},
		},

		Pace: time.Second,
	}
}
