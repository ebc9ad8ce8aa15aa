package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/pips"
	"github.com/aretw0/pips/internal/presentation/graph"
	"github.com/aretw0/pips/internal/presentation/tui"
	"github.com/aretw0/pips/pkg/ports"
	"github.com/spf13/cobra"
)

var chartCmd = &cobra.Command{
	Use:   "chart <expression>",
	Short: "Render a distribution as a chart",
	Long:  `Draws the distribution as a terminal histogram, or as a Mermaid chart definition with --mermaid for embedding in Markdown.`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		expression := strings.Join(args, " ")
		mermaid, _ := cmd.Flags().GetBool("mermaid")

		dice, err := pips.New(expression)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		var renderer ports.ChartRenderer
		if mermaid {
			renderer = &graph.Renderer{}
		} else {
			renderer = tui.NewHistogram()
		}

		chart, err := dice.Chart(renderer)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(chart)
	},
}

func init() {
	rootCmd.AddCommand(chartCmd)
	chartCmd.Flags().Bool("mermaid", false, "Emit a Mermaid xychart definition instead of a histogram")
}
