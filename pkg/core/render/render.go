// Package render turns computed reports into Markdown tables and HTML.
package render

import (
	"fmt"
	"strings"

	"scenario_projection/pkg/core/projection"
	"scenario_projection/pkg/core/units"
	"scenario_projection/pkg/core/utils"
)

// NotAvailable is shown for cells of rows that have no formula yet.
const NotAvailable = "n/a"

// Options control the document header.
type Options struct {
	Title    string
	Currency string
}

// Markdown renders the reports as one Markdown document with a table per report.
func Markdown(reports []projection.Report, opts Options) string {
	var b strings.Builder
	if opts.Title != "" {
		b.WriteString("# ")
		b.WriteString(escape(opts.Title))
		b.WriteString("\n\n")
	}
	if opts.Currency != "" {
		fmt.Fprintf(&b, "All amounts in %s.\n\n", escape(opts.Currency))
	}
	for i, r := range reports {
		if i > 0 {
			b.WriteString("\n")
		}
		writeReport(&b, r)
	}
	return b.String()
}

// ReportMarkdown renders a single report.
func ReportMarkdown(r projection.Report) string {
	var b strings.Builder
	writeReport(&b, r)
	return b.String()
}

// HTML renders the reports to an HTML fragment.
func HTML(reports []projection.Report, opts Options) (string, error) {
	return utils.MarkdownToHTML(Markdown(reports, opts))
}

func writeReport(b *strings.Builder, r projection.Report) {
	fmt.Fprintf(b, "## %s\n\n", escape(r.Title))
	if r.Failed() {
		fmt.Fprintf(b, "> **Error:** %s\n", escape(r.Error))
		return
	}
	if len(r.Periods) == 0 {
		b.WriteString("_No periods to show._\n")
		return
	}

	b.WriteString("| Item |")
	for _, p := range r.Periods {
		fmt.Fprintf(b, " %s |", escape(p))
	}
	b.WriteString("\n|---|")
	for range r.Periods {
		b.WriteString("---:|")
	}
	b.WriteString("\n")

	for _, it := range r.Items {
		bold := it.ClassName == projection.ClassTotal || it.ClassName == projection.ClassGrandTotal
		fmt.Fprintf(b, "| %s |", emphasize(escape(it.Name), bold))
		for _, p := range r.Periods {
			fmt.Fprintf(b, " %s |", emphasize(cell(it, p), bold))
		}
		b.WriteString("\n")
	}
}

func cell(it projection.LineItem, period string) string {
	v, ok := it.Values[period]
	if !ok {
		if it.Placeholder {
			return NotAvailable
		}
		return ""
	}
	return units.FormatValueWithUnit(v)
}

func emphasize(s string, bold bool) string {
	if !bold || s == "" {
		return s
	}
	return "**" + s + "**"
}

var escaper = strings.NewReplacer("|", `\|`, "*", `\*`, "_", `\_`, "\n", " ")

func escape(s string) string { return escaper.Replace(s) }
