package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/pips/pkg/dist"
	"github.com/charmbracelet/glamour"
)

// MarkdownTable formats a distribution as a markdown table with one row
// per outcome carrying its raw weight and normalized probability.
func MarkdownTable(d *dist.Distribution, title string) (string, error) {
	percent, err := d.Normalized(100.0)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if title != "" {
		fmt.Fprintf(&sb, "## %s\n\n", title)
	}
	sb.WriteString("| Outcome | Weight | Probability |\n")
	sb.WriteString("|---------|--------|-------------|\n")
	for _, outcome := range d.Outcomes() {
		fmt.Fprintf(&sb, "| %g | %g | %.2f%% |\n", outcome, d.Weight(outcome), percent.Weight(outcome))
	}

	if ev, err := d.ExpectedValue(); err == nil {
		fmt.Fprintf(&sb, "\n**Expected value:** %.4f\n", ev)
	}
	if sd, err := d.StdDev(); err == nil {
		fmt.Fprintf(&sb, "**Std deviation:** %.4f\n", sd)
	}

	return sb.String(), nil
}

// RenderMarkdown renders markdown for the terminal with automatic
// light/dark style detection. Falls back to the raw markdown if the
// renderer cannot be constructed.
func RenderMarkdown(markdown string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return markdown
	}

	out, err := r.Render(markdown)
	if err != nil {
		return markdown
	}
	return out
}

// RenderTable builds the markdown table and renders it for the terminal.
func RenderTable(d *dist.Distribution, title string) (string, error) {
	md, err := MarkdownTable(d, title)
	if err != nil {
		return "", err
	}
	return RenderMarkdown(md), nil
}
