package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/nadzzz/copilot/internal/backend"
)

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "Show which AI backends are configured",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		reg := backend.FromConfig(cfg.Backends)
		fmt.Fprintf(cmd.OutOrStdout(), "priority: %v\n\n", reg.Priority())
		return writeStatus(cmd.OutOrStdout(), reg.Status())
	},
}

var (
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	missingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// writeStatus prints one row per backend. The styled status is the last
// column so escape sequences never affect alignment.
func writeStatus(w io.Writer, list []backend.Status) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "BACKEND\tPOSITION\tCREDENTIAL\tSTATUS")
	for _, s := range list {
		pos := "-"
		if s.Position >= 0 {
			pos = strconv.Itoa(s.Position + 1)
		}
		status := missingStyle.Render("unavailable")
		if s.Available {
			status = okStyle.Render("available")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.Backend, pos, s.Backend.CredentialEnv(), status)
	}
	return tw.Flush()
}
