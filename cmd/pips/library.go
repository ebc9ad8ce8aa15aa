package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/pips"
	"github.com/aretw0/pips/internal/presentation/tui"
	loamAdapter "github.com/aretw0/pips/pkg/adapters/loam"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Work with saved dice expressions",
	Long:  `A library is a directory of Markdown or JSON documents, each describing a named dice expression.`,
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved expressions",
	Run: func(cmd *cobra.Command, args []string) {
		path, _ := cmd.Flags().GetString("path")

		library, err := loamAdapter.New(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening library: %v\n", err)
			os.Exit(1)
		}

		entries, err := library.List(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		for _, entry := range entries {
			if entry.Description != "" {
				fmt.Printf("%-20s %-12s %s\n", entry.ID, entry.Expression, entry.Description)
				continue
			}
			fmt.Printf("%-20s %s\n", entry.ID, entry.Expression)
		}
	},
}

var libraryShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Evaluate a saved expression and print its distribution",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path, _ := cmd.Flags().GetString("path")

		library, err := loamAdapter.New(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening library: %v\n", err)
			os.Exit(1)
		}

		entry, err := library.Get(context.Background(), args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		dice, err := pips.New(entry.Expression)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		table, err := tui.RenderTable(dice.Distribution(), entry.ID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(table)
	},
}

func init() {
	rootCmd.AddCommand(libraryCmd)
	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(libraryShowCmd)
	libraryCmd.PersistentFlags().String("path", "./library", "Library directory")
}
