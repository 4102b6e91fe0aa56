// Package beacon adapts the Schneider Beacon portal for Hendry County
// parcel searches. The terms-of-use dialog shows up before anything else,
// so it is dismissed ahead of the search submit. The portal tolerates a
// shared browser as long as each row re-navigates to the application URL.
package beacon

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
		Name:      "beacon",
		SearchURL: "https://beacon.schneidercorp.com/Application.aspx?AppID=1105&LayerID=27399&PageTypeID=2&PageID=11144",

		Warning: &pipeline.Warning{
			Dismiss: pipeline.Xp(`//*[@id="appBody"]/div[4]/div/div/div[2]/div[2]/a[1]`),
			Timeout: 5 * time.Second,
		},
		WarningFirst: true,

		SearchInput:  pipeline.Xp(`//*[@id="ctlBodyPane_ctl02_ctl01_txtParcelID"]`),
		InputTimeout: 60 * time.Second,

		ResultMarker:  pipeline.Css("#ctlBodyPane_ctl02_ctl01_rptOwner_ctl00_sprOwnerName1_lnkUpmSearchLinkSuppressed_lnkSearch"),
		ResultTimeout: 60 * time.Second,

		Fields: []pipeline.FieldSelector{
			{
				Name:     "owner_1",
				Locator:  pipeline.Css("#ctlBodyPane_ctl02_ctl01_rptOwner_ctl00_sprOwnerName1_lnkUpmSearchLinkSuppressed_lnkSearch"),
				Timeout:  10 * time.Second,
				Required: true,
				Column:   "Z",
			},
			{
				Name:     "owner_2",
				Locator:  pipeline.Css("#ctlBodyPane_ctl02_ctl01_rptOwner_ctl00_sprOwnerName2_lnkUpmSearchLinkSuppressed_lnkSearch"),
				Timeout:  10 * time.Second,
				Required: false,
				Column:   "AA",
			},
			{
				Name:     "owner_address",
				Locator:  pipeline.Xp(`//*[@id="ctlBodyPane_ctl02_ctl01_rptOwner_ctl00_lblOwnerAddress"]`),
				Timeout:  10 * time.Second,
				Required: false,
				Column:   "AB",
			},
			{
				Name:     "first_sale",
				Locator:  pipeline.Xp(`//*[@id="ctlBodyPane_ctl11_ctl01_grdSales"]/tbody/tr[1]/td[1]`),
				Timeout:  10 * time.Second,
				Required: false,
				Column:   "AC",
			},
			{
				Name:     "building_info",
				Locator:  pipeline.Xp(`//*[@id="ctlBodyPane_ctl03_ctl01_grdValuation"]/tbody/tr[5]/td[1]`),
				Timeout:  10 * time.Second,
				Required: false,
				Column:   "AD",
			},
		},

		SharedSession: true,
		// The portal throttles rapid-fire searches; a short pause after
		// each submit keeps the pacing human.
		Pace: 3 * time.Second,
	}
}
