package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridboard/pkg/session"
)

// sessionCommand manages the boards saved by "gridboard play" and by a
// server running with the file store.
func (c *CLI) sessionCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage saved board sessions",
	}
	cmd.PersistentFlags().StringVar(&dir, "dir", "", "session directory (default: XDG state dir)")

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the session directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := session.NewFileStore(dir)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), store.Path())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := session.NewFileStore(dir)
			if err != nil {
				return err
			}
			sessions, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				printInfo("No sessions")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), sessionTable(sessions, time.Now()))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all saved sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := session.NewFileStore(dir)
			if err != nil {
				return err
			}
			n, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			printSuccess("Removed %d sessions", n)
			printDetail("Directory: %s", store.Path())
			return nil
		},
	})

	return cmd
}

func sessionTable(sessions []*session.Session, now time.Time) string {
	rows := make([][]string, len(sessions))
	for i, s := range sessions {
		expires := "expired"
		if s.ExpiresAt.After(now) {
			expires = "in " + s.ExpiresAt.Sub(now).Round(time.Minute).String()
		}
		rows[i] = []string{
			s.ID,
			fmt.Sprint(len(s.Board.Components)),
			s.UpdatedAt.Format("Jan 2 15:04"),
			expires,
		}
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Session", "Components", "Updated", "Expires").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Foreground(colorGray).Bold(true)
			}
			return lipgloss.NewStyle()
		}).
		String()
}
