package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/pips"
	"github.com/aretw0/pips/pkg/dist"
	"github.com/spf13/cobra"
)

var rollCmd = &cobra.Command{
	Use:   "roll <expression>",
	Short: "Sample outcomes from a dice expression",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		expression := strings.Join(args, " ")
		count, _ := cmd.Flags().GetInt("count")
		seed, _ := cmd.Flags().GetInt64("seed")

		if count < 1 {
			fmt.Fprintln(os.Stderr, "Error: count must be at least 1")
			os.Exit(1)
		}

		opts := []pips.Option{}
		if cmd.Flags().Changed("seed") {
			opts = append(opts, pips.WithSource(dist.NewSeededSource(seed)))
		}

		dice, err := pips.New(expression, opts...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		results, err := dice.RollN(count)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		for _, v := range results {
			fmt.Printf("%g\n", v)
		}
	},
}

func init() {
	rootCmd.AddCommand(rollCmd)
	rollCmd.Flags().IntP("count", "n", 1, "Number of rolls")
	rollCmd.Flags().Int64("seed", 0, "Seed for reproducible rolls")
}
