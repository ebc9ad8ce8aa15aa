package main

import (
	"fmt"
	"os"

	"github.com/aretw0/pips/internal/cli"
	"github.com/aretw0/pips/internal/config"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive expression shell",
	Long:  `Opens a shell where expressions can be evaluated, named with "let", rolled, and charted. Definitions persist per session.`,
	Run: func(cmd *cobra.Command, args []string) {
		sessionID, _ := cmd.Flags().GetString("session")
		redisAddr, _ := cmd.Flags().GetString("redis")
		encryptionKey, _ := cmd.Flags().GetString("encryption-key")
		configPath, _ := cmd.Flags().GetString("config")
		debug, _ := cmd.Flags().GetBool("debug")

		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		opts := cli.RunOptions{
			SessionID:     sessionID,
			RedisAddr:     redisAddr,
			EncryptionKey: encryptionKey,
			Debug:         debug,
		}.WithConfig(cfg)

		err = cli.RunREPL(opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
	replCmd.Flags().StringP("session", "s", "default", "Session ID to resume or create")
	replCmd.Flags().String("redis", "", "Redis address for persistent sessions (e.g. localhost:6379)")
	replCmd.Flags().String("encryption-key", "", "Base64-encoded 32-byte key to encrypt session state at rest")
	replCmd.Flags().StringP("config", "c", "pips.yaml", "Path to the configuration file")
}
