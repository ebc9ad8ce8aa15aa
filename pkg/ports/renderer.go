package ports

import "github.com/aretw0/pips/pkg/dist"

// ChartRenderer turns a distribution into a renderable artifact (terminal
// histogram, mermaid chart source, ...). Implementations receive the full
// distribution and read its sorted mapping; they must not mutate it.
type ChartRenderer interface {
	RenderChart(d *dist.Distribution, title string) (string, error)
}
