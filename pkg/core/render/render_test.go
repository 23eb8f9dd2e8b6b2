package render

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scenario_projection/pkg/core/projection"
	"scenario_projection/pkg/core/series"
)

func sampleReports() []projection.Report {
	return []projection.Report{
		{
			Kind:    projection.KindProfitAndLoss,
			Title:   "Profit & Loss",
			Periods: []string{"2016", "2017"},
			Items: []projection.LineItem{
				{ID: "revenues", Name: "Revenues", Values: series.Series{"2016": 15000, "2017": 1250000}},
				{ID: "netResult", Name: "Net result", Values: series.Series{"2016": -1500, "2017": 42}, ClassName: projection.ClassGrandTotal},
			},
		},
		{
			Kind:    projection.KindCashflow,
			Title:   "Cashflow",
			Periods: []string{"2016", "2017"},
			Items: []projection.LineItem{
				{ID: "netCashflow", Name: "Net cashflow", Values: series.Series{}, Placeholder: true},
			},
		},
		{
			Kind:  projection.KindBalanceSheet,
			Title: "Balance Sheet",
			Error: `category "Rent": invalid value "x"`,
		},
	}
}

func TestMarkdown(t *testing.T) {
	md := Markdown(sampleReports(), Options{Title: "Acme", Currency: "EUR"})

	assert.True(t, strings.HasPrefix(md, "# Acme\n\nAll amounts in EUR.\n\n## Profit & Loss\n"))
	assert.Contains(t, md, "| Item | 2016 | 2017 |\n|---|---:|---:|\n")
	assert.Contains(t, md, "| Revenues | 15k | 1.3M |\n")
	assert.Contains(t, md, "| **Net result** | **-1.5k** | **42** |\n")
	assert.Contains(t, md, "| Net cashflow | n/a | n/a |\n")
	assert.Contains(t, md, "> **Error:** category \"Rent\": invalid value \"x\"")
}

func TestMarkdown_EscapesTableSyntax(t *testing.T) {
	md := ReportMarkdown(projection.Report{
		Title:   "P|L",
		Periods: []string{"1"},
		Items:   []projection.LineItem{{Name: "a|b_c", Values: series.Series{"1": 1}}},
	})
	assert.Contains(t, md, `## P\|L`)
	assert.Contains(t, md, `| a\|b\_c | 1 |`)
}

func TestHTML(t *testing.T) {
	html, err := HTML(sampleReports(), Options{Title: "Acme"})
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	assert.Equal(t, "Acme", doc.Find("h1").Text())
	var titles []string
	doc.Find("h2").Each(func(_ int, s *goquery.Selection) {
		titles = append(titles, s.Text())
	})
	assert.Equal(t, []string{"Profit & Loss", "Cashflow", "Balance Sheet"}, titles)

	tables := doc.Find("table")
	require.Equal(t, 2, tables.Length())

	var header []string
	tables.First().Find("thead th").Each(func(_ int, s *goquery.Selection) {
		header = append(header, s.Text())
	})
	assert.Equal(t, []string{"Item", "2016", "2017"}, header)

	firstRow := tables.First().Find("tbody tr").First().Find("td")
	assert.Equal(t, "Revenues", firstRow.Eq(0).Text())
	assert.Equal(t, "15k", firstRow.Eq(1).Text())

	total := tables.First().Find("tbody tr").Eq(1)
	assert.Equal(t, 3, total.Find("strong").Length())

	assert.Contains(t, doc.Find("blockquote").Text(), "invalid value")
}
