package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/pips/pkg/dist"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const (
	defaultWidth = 80
	minBarWidth  = 10
)

// Histogram renders a distribution as a colored terminal bar chart.
// It implements ports.ChartRenderer.
type Histogram struct {
	width   int
	profile termenv.Profile
}

// Option configures the Histogram.
type Option func(*Histogram)

// WithWidth overrides the detected terminal width.
func WithWidth(width int) Option {
	return func(h *Histogram) {
		h.width = width
	}
}

// NewHistogram creates a histogram renderer sized to the current terminal.
// Falls back to 80 columns when stdout is not a terminal.
func NewHistogram(opts ...Option) *Histogram {
	h := &Histogram{
		width:   defaultWidth,
		profile: termenv.ColorProfile(),
	}

	if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			h.width = w
		}
	}

	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RenderChart draws one row per outcome, ascending, with the bar length
// proportional to the outcome's share of the total mass.
func (h *Histogram) RenderChart(d *dist.Distribution, title string) (string, error) {
	percent, err := d.Normalized(100.0)
	if err != nil {
		return "", fmt.Errorf("cannot chart: %w", err)
	}

	outcomes := percent.Outcomes()
	maxWeight := 0.0
	labelWidth := 0
	for _, outcome := range outcomes {
		if w := percent.Weight(outcome); w > maxWeight {
			maxWeight = w
		}
		if l := len(formatOutcome(outcome)); l > labelWidth {
			labelWidth = l
		}
	}

	// label + " │" + bar + " 99.99%"
	barWidth := h.width - labelWidth - 10
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}

	var sb strings.Builder
	if title != "" {
		sb.WriteString(termenv.String(title).Foreground(h.profile.Color("#818cf8")).Bold().String())
		sb.WriteString("\n")
	}

	for _, outcome := range outcomes {
		weight := percent.Weight(outcome)
		filled := 0
		if maxWeight > 0 {
			filled = int(weight / maxWeight * float64(barWidth))
		}

		bar := termenv.String(strings.Repeat("█", filled)).Foreground(h.profile.Color("#a78bfa")).String()
		sb.WriteString(fmt.Sprintf("%*s │%s %.2f%%\n", labelWidth, formatOutcome(outcome), bar, weight))
	}

	return sb.String(), nil
}

func formatOutcome(v float64) string {
	return fmt.Sprintf("%g", v)
}
