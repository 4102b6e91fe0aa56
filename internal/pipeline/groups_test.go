package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/justinlbrj23/onyotpisot/internal/sheets"
)

const groupHTML = `
<div id="results">
  <a href="/find/person/abc"><span class="h4">John  Doe</span> 52, Cape Coral FL</a>
  <a href="/find/person/def"><span class="h4">Jane Doe</span> 48, Fort Myers FL</a>
  <a href="/about">ignored</a>
  <a>no href</a>
</div>`

func groupConfig() Groups {
	return Groups{
		Container:    Css("#results"),
		ItemSelector: `a[href^="/find/person/"]`,
		HrefPrefix:   "https://people.test",
		BaseColumn:   19,
		Stride:       3,
	}
}

func TestParseGroups(t *testing.T) {
	items, err := ParseGroups(groupHTML, groupConfig())
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "https://people.test/find/person/abc", items[0].Href)
	// Inner whitespace collapses to single spaces.
	require.Equal(t, "John Doe 52, Cape Coral FL", items[0].Text)
	require.Equal(t, "https://people.test/find/person/def", items[1].Href)
}

func TestParseGroupsAbsoluteHrefKept(t *testing.T) {
	html := `<a href="https://elsewhere.test/find/person/x">X</a>`
	g := groupConfig()
	g.ItemSelector = "a"

	items, err := ParseGroups(html, g)
	require.NoError(t, err)
	require.Equal(t, "https://elsewhere.test/find/person/x", items[0].Href)
}

func TestParseGroupsEmpty(t *testing.T) {
	items, err := ParseGroups("<div></div>", groupConfig())
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestGroupCellsStride(t *testing.T) {
	items := []GroupItem{
		{Href: "h0", Text: "t0"},
		{Href: "h1", Text: "t1"},
	}

	cells := GroupCells(items, groupConfig(), 3)
	require.Equal(t, []sheets.Cell{
		{Row: 3, Column: "T", Value: "h0"},
		{Row: 3, Column: "U", Value: "t0"},
		{Row: 3, Column: "W", Value: "h1"},
		{Row: 3, Column: "X", Value: "t1"},
	}, cells)
}

func TestGroupCellsMinimumStride(t *testing.T) {
	g := groupConfig()
	g.BaseColumn = 26
	g.Stride = 0 // misconfigured; falls back to 2

	cells := GroupCells([]GroupItem{{Href: "h", Text: "t"}, {Href: "h2", Text: "t2"}}, g, 2)
	require.Equal(t, "AA", cells[0].Column)
	require.Equal(t, "AB", cells[1].Column)
	require.Equal(t, "AC", cells[2].Column)
	require.Equal(t, "AD", cells[3].Column)
}
