// Copilot is an Ableton Live assistant daemon. It answers production
// questions with the first available AI backend and falls back to built-in
// answers when none responds.
//
// Usage:
//
//	copilot [serve] [flags]
//	copilot ask "how do I sidechain a bass" --model groq
//	copilot backends --config /path/to/copilot.yaml
//
// @title       Ableton AI Copilot API
// @version     1.0
// @description Answers Ableton Live production questions using the first available AI backend.
// @BasePath    /
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nadzzz/copilot/internal/config"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	configFile string
	envFile    string
)

// rootCmd runs the daemon when no subcommand is given.
var rootCmd = &cobra.Command{
	Use:   "copilot",
	Short: "Ableton Live AI copilot",
	Long: `Answers Ableton Live production questions over HTTP, WebSocket and gRPC.

Backends are tried in the order given by AI_PROVIDERS (default
groq,ollama,grok,claude,openai). When none answers, built-in replies for
common Ableton topics are used.`,
	SilenceUsage: true,
	RunE:         runServe,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "copilot %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to config file (e.g. configs/copilot.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(backendsCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the configuration and installs the default logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile, envFile)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	config.SetupLogging(cfg.Logging)
	return cfg, nil
}
