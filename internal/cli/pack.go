package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridboard/pkg/board"
	"github.com/matzehuels/gridboard/pkg/grid"
	"github.com/matzehuels/gridboard/pkg/io"
	"github.com/matzehuels/gridboard/pkg/service"
)

type packOpts struct {
	columns int
	fixed   bool
	json    bool
	noCache bool
}

// packCommand places the components of a layout file and prints their cells.
func (c *CLI) packCommand() *cobra.Command {
	var opts packOpts

	cmd := &cobra.Command{
		Use:   "pack [file]",
		Short: "Place the components of a layout file on the grid",
		Long: `Place the components of a layout file (.json, .toml, .yaml) on the grid
in file order, first fit, and print the assigned cells.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPack(cmd, args[0], opts)
		},
	}

	cmd.Flags().IntVar(&opts.columns, "columns", 0, "grid width (default: file value or 8)")
	cmd.Flags().BoolVar(&opts.fixed, "fixed-rows", false, "fail instead of growing the scratch grid")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the placed board as JSON")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the placement cache")

	return cmd
}

func (c *CLI) runPack(cmd *cobra.Command, path string, opts packOpts) error {
	ctx := cmd.Context()
	prog := newProgress(contextLogger(cmd))

	l, err := io.Import(path)
	if err != nil {
		return err
	}
	if opts.columns > 0 {
		l.Columns = opts.columns
	}

	svc := c.newService(opts.noCache)
	defer svc.Close()

	res, err := svc.Pack(ctx, service.PackRequest{Sizes: l.Sizes(), Columns: l.Columns, Fixed: opts.fixed})
	if err != nil {
		return err
	}
	prog.done("Placed components", "count", len(res.Cells), "cached", res.CacheHit)

	// Reuse the computed cells rather than placing again.
	placed := func([]grid.Size, ...grid.Option) ([]grid.Cell, error) { return res.Cells, nil }
	b, err := l.Board(board.WithPlacer(placed))
	if err != nil {
		return err
	}

	if opts.json {
		return io.WriteJSON(b, cmd.OutOrStdout())
	}
	fmt.Fprintln(cmd.OutOrStdout(), placementTable(b.Components()))
	fmt.Fprintln(cmd.OutOrStdout(), boardStats(b.Len(), b.Rows(), res.CacheHit))
	if b.Len() > 0 {
		printNextStep("Render it", "gridboard render "+path)
	}
	return nil
}

// placementTable formats the placed components with their screen boxes.
func placementTable(cs []board.Component) string {
	rows := make([][]string, len(cs))
	for i, c := range cs {
		box := c.Bounds()
		rows[i] = []string{
			c.ID,
			fmt.Sprintf("%d×%d", c.RowSpan, c.ColSpan),
			c.Cell().String(),
			fmt.Sprintf("%.0f,%.0f %.0f×%.0f", box.Left, box.Top, box.Width, box.Height),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Component", "Span", "Cell", "Box").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return lipgloss.NewStyle().Foreground(componentColor(cs[row].ID))
			case col == 2:
				return StyleNumber
			}
			return lipgloss.NewStyle()
		}).
		String()
}

// isTerminal reports whether stdout is a character device.
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
