package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/nadzzz/copilot/internal/answer"
	"github.com/nadzzz/copilot/internal/backend"
	"github.com/nadzzz/copilot/internal/client"
)

var (
	askModel   string
	askServer  string
	askTimeout time.Duration
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a single question",
	Long: `Ask one question and print the answer.

Without --server the backends are called directly from this process using the
local configuration. With --server the question is sent to a running daemon
over its WebSocket endpoint (e.g. ws://localhost:12345/ws).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

var sourceStyle = lipgloss.NewStyle().Faint(true)

func init() {
	askCmd.Flags().StringVarP(&askModel, "model", "m", "", "preferred backend (ollama, groq, grok, claude, openai)")
	askCmd.Flags().StringVar(&askServer, "server", "", "WebSocket URL of a running daemon")
	askCmd.Flags().DurationVar(&askTimeout, "timeout", 3*time.Minute, "overall timeout")
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")

	ctx, cancel := context.WithTimeout(cmd.Context(), askTimeout)
	defer cancel()

	if askServer != "" {
		c, err := client.Dial(ctx, askServer)
		if err != nil {
			return err
		}
		defer c.Close()

		reply, err := c.Ask(ctx, question, askModel)
		if err != nil {
			return err
		}
		printAnswer(cmd, reply.Message, reply.Source)
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	engine := answer.New(backend.FromConfig(cfg.Backends), answer.WithBudget(cfg.Backends.Budget()))
	res := engine.Resolve(ctx, question, askModel)
	printAnswer(cmd, res.Message, string(res.Kind))
	return nil
}

func printAnswer(cmd *cobra.Command, text, source string) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, text)
	if source != "" {
		fmt.Fprintln(out, sourceStyle.Render("("+source+")"))
	}
}
