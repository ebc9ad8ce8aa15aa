package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/pips"
	"github.com/aretw0/pips/internal/compiler"
	"github.com/aretw0/pips/internal/presentation/graph"
	loamAdapter "github.com/aretw0/pips/pkg/adapters/loam"
	mcpAdapter "github.com/aretw0/pips/pkg/adapters/mcp"
	"github.com/aretw0/pips/pkg/ports"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server on stdio",
	Long:  `Exposes expression evaluation, rolling, comparison, and charting as Model Context Protocol tools for AI agents.`,
	Run: func(cmd *cobra.Command, args []string) {
		libraryPath, _ := cmd.Flags().GetString("library")

		var library ports.Library
		if libraryPath != "" {
			lib, err := loamAdapter.New(libraryPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error opening library: %v\n", err)
				os.Exit(1)
			}
			library = lib
		}

		server := mcpAdapter.NewServer(
			compiler.NewParser(),
			&graph.Renderer{},
			library,
			pips.Version,
		)

		if err := server.ServeStdio(); err != nil {
			fmt.Fprintf(os.Stderr, "MCP server error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("library", "", "Path to a saved-expression library directory")
}
