package main

import (
	"fmt"

	"github.com/aretw0/pips"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of pips",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pips version %s\n", pips.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
