package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/pips"
	"github.com/aretw0/pips/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Evaluate a dice expression into its distribution",
	Long:  `Evaluates an expression like "2D6+1" and prints the exact distribution as a table, or as JSON with --json.`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		expression := strings.Join(args, " ")
		jsonOut, _ := cmd.Flags().GetBool("json")

		dice, err := pips.New(expression)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOut {
			data, err := dice.Distribution().MarshalJSON()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(string(data))
			return
		}

		table, err := tui.RenderTable(dice.Distribution(), expression)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(table)
	},
}

func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().Bool("json", false, "Print the distribution as JSON")
}
