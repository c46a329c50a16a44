package cli

import (
	"fmt"
	"math/rand/v2"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridboard/pkg/board"
	"github.com/matzehuels/gridboard/pkg/io"
	"github.com/matzehuels/gridboard/pkg/session"
)

type playOpts struct {
	file    string
	size    int
	seed    uint64
	columns int
	resume  string
	noSave  bool
}

// playCommand starts the interactive board. The final layout is saved as a
// session that a later "play --resume" picks up again.
func (c *CLI) playCommand() *cobra.Command {
	opts := playOpts{size: board.DefaultSize}

	cmd := &cobra.Command{
		Use:   "play [file]",
		Short: "Rearrange a board interactively in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.file = args[0]
			}
			return c.runPlay(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.size, "size", "n", opts.size, "number of random components")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed (0: random)")
	cmd.Flags().IntVar(&opts.columns, "columns", 0, "grid width (default 8)")
	cmd.Flags().StringVar(&opts.resume, "resume", "", "continue a saved session")
	cmd.Flags().BoolVar(&opts.noSave, "no-save", false, "do not save the board on exit")

	return cmd
}

func (c *CLI) runPlay(cmd *cobra.Command, opts playOpts) error {
	ctx := cmd.Context()
	logger := contextLogger(cmd)

	store, err := session.NewFileStore("")
	if err != nil {
		return err
	}
	defer store.Close()

	rng := newPlayRand(opts.seed)
	var sess *session.Session
	var b *board.Board

	switch {
	case opts.resume != "":
		sess, err = store.Get(ctx, opts.resume)
		if err != nil {
			return fmt.Errorf("resume %s: %w", opts.resume, err)
		}
		if sess == nil {
			return fmt.Errorf("resume %s: no such session", opts.resume)
		}
		b, err = board.Restore(sess.Board)
	case opts.file != "":
		var l *io.Layout
		if l, err = io.Import(opts.file); err != nil {
			return err
		}
		if opts.columns > 0 {
			l.Columns = opts.columns
		}
		b, err = l.Board()
	default:
		b, err = board.NewRandom(opts.size, rng, columnOpts(opts.columns)...)
	}
	if err != nil {
		return err
	}
	logger.Debug("starting play", "components", b.Len(), "columns", b.Columns())

	final, err := tea.NewProgram(NewPlayModel(b, rng, max(opts.size, 1)), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("run board: %w", err)
	}
	m := final.(PlayModel)
	m.Board.DragCancel()

	if opts.noSave {
		return nil
	}
	if sess == nil {
		sess = session.New(m.Board.Snapshot(), session.DefaultTTL)
	} else {
		sess.Update(m.Board.Snapshot(), session.DefaultTTL)
	}
	if err := store.Set(ctx, sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	printSuccess("Saved board after %d moves", m.Moves)
	printKeyValue("Session", sess.ID)
	printKeyValue("Expires", sess.ExpiresAt.Format(time.RFC3339))
	printNextStep("Continue later", "gridboard play --resume "+sess.ID)
	return nil
}

func newPlayRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed))
}

func columnOpts(columns int) []board.Option {
	if columns > 0 {
		return []board.Option{board.WithColumns(columns)}
	}
	return nil
}
