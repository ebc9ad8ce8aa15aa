package graph

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aretw0/pips/pkg/dist"
)

// Renderer produces a Mermaid xychart from a distribution.
// The output is plain text, renderable by any Mermaid-aware viewer
// (documentation sites, editors, chat clients).
type Renderer struct{}

// NewRenderer creates a new Mermaid chart renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderChart implements ports.ChartRenderer.
func (r *Renderer) RenderChart(d *dist.Distribution, title string) (string, error) {
	return GenerateMermaid(d, title)
}

// GenerateMermaid produces Mermaid xychart syntax for the distribution as a
// bar chart of probabilities in percent, outcomes ascending on the x-axis.
func GenerateMermaid(d *dist.Distribution, title string) (string, error) {
	percent, err := d.Normalized(100.0)
	if err != nil {
		return "", fmt.Errorf("cannot chart: %w", err)
	}

	outcomes := percent.Outcomes()
	maxWeight := 0.0
	for _, outcome := range outcomes {
		if w := percent.Weight(outcome); w > maxWeight {
			maxWeight = w
		}
	}

	var sb strings.Builder
	sb.WriteString("xychart-beta\n")
	if title != "" {
		sb.WriteString(fmt.Sprintf("    title \"%s\"\n", sanitizeTitle(title)))
	}

	sb.WriteString("    x-axis [")
	for i, outcome := range outcomes {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(formatNumber(outcome))
	}
	sb.WriteString("]\n")

	// Headroom above the tallest bar keeps the chart readable.
	ceiling := math.Ceil(maxWeight + 1)
	sb.WriteString(fmt.Sprintf("    y-axis \"Probability (%%)\" 0 --> %s\n", formatNumber(ceiling)))

	sb.WriteString("    bar [")
	for i, outcome := range outcomes {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(formatNumber(round4(percent.Weight(outcome))))
	}
	sb.WriteString("]\n")

	return sb.String(), nil
}

func sanitizeTitle(title string) string {
	return strings.ReplaceAll(title, "\"", "'")
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
