package export

import (
	"fmt"
	"strings"

	"demandlens/domain/dataset"
	"demandlens/domain/profile"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// BriefingMarkdown writes the profile as a short markdown briefing for
// planners: dimensions, quality, readiness verdict, and the business
// insights the profiler surfaced.
func BriefingMarkdown(ds *dataset.Dataset, p *profile.Profile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Dataset Briefing: %s\n\n", ds.OriginalFilename)
	fmt.Fprintf(&b, "%d rows x %d columns, spanning %d days of history.\n\n",
		p.Dimensions.Rows, p.Dimensions.Columns, p.Dimensions.TimeSpanDays)

	fmt.Fprintf(&b, "## Data Quality\n\n")
	fmt.Fprintf(&b, "- Completeness: **%.1f%%** (%d missing cells)\n",
		p.DataQuality.Completeness, p.DataQuality.MissingCount)
	// Walk the summary, not the map, so columns keep their table order.
	for _, cs := range p.StatisticalSummary {
		if count := p.DataQuality.MissingByColumn[cs.Name]; count > 0 {
			fmt.Fprintf(&b, "- `%s`: %d missing\n", cs.Name, count)
		}
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Forecasting Readiness\n\n")
	verdict := "Not ready"
	if p.ForecastingReadiness.Ready {
		verdict = "Ready"
	}
	fmt.Fprintf(&b, "**%s.** %s\n\n", verdict, p.ForecastingReadiness.Message)
	if len(p.ForecastingReadiness.Strengths) > 0 {
		b.WriteString("Strengths:\n\n")
		for _, s := range p.ForecastingReadiness.Strengths {
			fmt.Fprintf(&b, "- %s\n", s)
		}
		b.WriteString("\n")
	}
	if len(p.ForecastingReadiness.Recommendations) > 0 {
		b.WriteString("Recommendations:\n\n")
		for _, r := range p.ForecastingReadiness.Recommendations {
			fmt.Fprintf(&b, "- %s\n", r)
		}
		b.WriteString("\n")
	}

	if len(p.BusinessInsights) > 0 {
		fmt.Fprintf(&b, "## Insights\n\n")
		for _, insight := range p.BusinessInsights {
			fmt.Fprintf(&b, "- %s\n", insight)
		}
	}

	return b.String()
}

// BriefingHTML renders the markdown briefing to HTML for the dashboard
func BriefingHTML(ds *dataset.Dataset, p *profile.Profile) []byte {
	md := BriefingMarkdown(ds, p)

	mdParser := parser.NewWithExtensions(parser.CommonExtensions | parser.NoEmptyLineBeforeBlock)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(md), mdParser, renderer)
}
