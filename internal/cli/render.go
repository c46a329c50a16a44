package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridboard/pkg/board"
	"github.com/matzehuels/gridboard/pkg/io"
	"github.com/matzehuels/gridboard/pkg/render"
)

const (
	formatJSON    = "json" // placed board export
	defaultOutput = "board"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string   // output file (single format) or base path (multiple)
	formats []string // svg, dot, neato, png, pdf, json
	size    int      // random board size when no file is given
	seed    uint64   // random seed; 0 picks one
	columns int      // grid width override
	labels  bool     // draw component IDs
	scale   float64  // PNG scale factor
}

// renderCommand draws a board from a layout file or a random board.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{size: board.DefaultSize, labels: true, scale: 2}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a board to SVG, DOT, PNG, PDF or JSON",
		Long: `Render a board. With a layout file the components are placed in file
order; without one a random board of --size components is generated.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return runRender(cmd.Context(), input, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, neato, png, pdf, json (comma-separated)")
	cmd.Flags().IntVarP(&opts.size, "size", "n", opts.size, "number of random components when no file is given")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed (0: random)")
	cmd.Flags().IntVar(&opts.columns, "columns", 0, "grid width (default: file value or 8)")
	cmd.Flags().BoolVar(&opts.labels, "labels", opts.labels, "draw component IDs")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")

	return cmd
}

// parseFormats parses the --format flag. If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{string(render.FormatSVG)}
	}
	return strings.Split(s, ",")
}

func validFormat(f string) bool {
	if f == formatJSON {
		return true
	}
	_, err := render.ParseFormat(f)
	return err == nil
}

// validateFormats checks that all requested formats are supported.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormat(f) {
			return fmt.Errorf("invalid format: %s (must be svg, dot, neato, png, pdf or json)", f)
		}
	}
	return nil
}

// basePath derives the base output path. Without an output it strips the
// extension from input, or uses "board" for random boards. A known format
// extension on output is stripped.
func basePath(output, input string) string {
	if output == "" {
		if input == "" {
			return defaultOutput
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if validFormat(strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// extension returns the file extension for an output format.
func extension(format string) string {
	if format == formatJSON {
		return ".json"
	}
	f, _ := render.ParseFormat(format)
	return f.Extension()
}

// loadBoard places the input file, or a random board when input is empty.
func loadBoard(input string, opts *renderOpts) (*board.Board, error) {
	if input == "" {
		return board.NewRandom(opts.size, newPlayRand(opts.seed), columnOpts(opts.columns)...)
	}
	l, err := io.Import(input)
	if err != nil {
		return nil, err
	}
	if opts.columns > 0 {
		l.Columns = opts.columns
	}
	return l.Board()
}

func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	b, err := loadBoard(input, opts)
	if err != nil {
		return err
	}
	prog.done("Placed board", "components", b.Len(), "rows", b.Rows())

	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		path := base + extension(format)
		if len(opts.formats) == 1 && opts.output != "" {
			path = opts.output
		}
		if err := renderAndWrite(ctx, b, format, path, opts); err != nil {
			return err
		}
		logger.Debug("wrote output", "format", format, "path", path)
		printFile(path)
	}
	return nil
}

func renderAndWrite(ctx context.Context, b *board.Board, format, path string, opts *renderOpts) error {
	data, err := renderBoard(ctx, b, format, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func renderBoard(ctx context.Context, b *board.Board, format string, opts *renderOpts) ([]byte, error) {
	if format == formatJSON {
		var buf bytes.Buffer
		if err := io.WriteJSON(b, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	f, err := render.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	ropts := []render.Option{render.WithColumns(b.Columns()), render.WithScale(opts.scale)}
	if opts.labels {
		ropts = append(ropts, render.WithLabels())
	}

	// Conversions shell out and can take a moment.
	if (f == render.FormatPNG || f == render.FormatPDF) && isTerminal() {
		spin := newSpinner(ctx, "Converting to "+format+"...")
		spin.Start()
		defer spin.Stop()
	}
	return render.Render(ctx, f, b.Components(), ropts...)
}
