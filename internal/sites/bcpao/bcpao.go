// Package bcpao adapts the Brevard County property appraiser search
// (bcpao.us). Parcel IDs go into the PID search box; the details pane holds
// the fields. One browser serves the whole batch: the site carries no state
// between searches as long as every row re-navigates to the search root.
package bcpao

import (
	"time"

	"github.com/justinlbrj23/onyotpisot/internal/pipeline"
)

func init() {
	pipeline.Register(Site())
}

// Site returns the adapter record.
func Site() pipeline.Site {
	return pipeline.Site{
		Name:      "bcpao",
		SearchURL: "https://www.bcpao.us/propertysearch/#/nav/Search",

		SearchInput:  pipeline.Css("#txtPropertySearch_Pid"),
		InputTimeout: 60 * time.Second,

		ResultMarker:  pipeline.Xp(`//*[@id="cssDetails_Top_Outer"]/div[2]/div/div[1]/div[2]/div[1]`),
		ResultTimeout: 60 * time.Second,

		Fields: []pipeline.FieldSelector{
			{
				Name:     "ownership",
				Locator:  pipeline.Xp(`//*[@id="cssDetails_Top_Outer"]/div[2]/div/div[1]/div[2]/div[1]`),
				Timeout:  10 * time.Second,
				Required: true,
				Column:   "C",
			},
			{
				Name:     "mailing_address",
				Locator:  pipeline.Xp(`//*[@id="cssDetails_Top_Outer"]/div[2]/div/div[2]/div[2]/div`),
				Timeout:  10 * time.Second,
				Required: true,
				Column:   "D",
			},
			{
				Name:     "last_sale",
				Locator:  pipeline.Xp(`//*[@id="tSalesTransfers"]/tbody/tr[1]/td[2]`),
				Timeout:  10 * time.Second,
				Required: false,
				Column:   "E",
			},
			{
				Name:     "building_info",
				Locator:  pipeline.Xp(`//*[@id="cssDetails_Top_Outer"]/div[2]/div/div[7]/div[2]`),
				Timeout:  10 * time.Second,
				Required: false,
				Column:   "F",
			},
		},

		SharedSession: true,
	}
}
