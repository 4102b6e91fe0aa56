package pipeline

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/justinlbrj23/onyotpisot/internal/sheets"
)

// GroupItem is one extracted link: a href plus its visible text.
type GroupItem struct {
	Href string
	Text string
}

// ParseGroups extracts the configured link items from a container's HTML.
func ParseGroups(html string, g Groups) ([]GroupItem, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse container html: %w", err)
	}

	var items []GroupItem
	doc.Find(g.ItemSelector).Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || href == "" {
			return
		}
		if g.HrefPrefix != "" && strings.HasPrefix(href, "/") {
			href = g.HrefPrefix + href
		}
		text := strings.Join(strings.Fields(sel.Text()), " ")
		items = append(items, GroupItem{Href: href, Text: text})
	})
	return items, nil
}

// GroupCells lays the items out at their deterministic columns for the
// given row: item k's href at BaseColumn + k*Stride, text one column after.
func GroupCells(items []GroupItem, g Groups, row int) []sheets.Cell {
	stride := g.Stride
	if stride < 2 {
		stride = 2
	}
	cells := make([]sheets.Cell, 0, len(items)*2)
	for k, item := range items {
		cells = append(cells,
			sheets.Cell{Row: row, Column: sheets.ColumnLetter(g.BaseColumn + k*stride), Value: item.Href},
			sheets.Cell{Row: row, Column: sheets.ColumnLetter(g.BaseColumn + k*stride + 1), Value: strings.TrimSpace(item.Text)},
		)
	}
	return cells
}
