package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/serene/internal/model"
	"github.com/idilsaglam/serene/internal/ui"
)

var errEmptyText = errors.New("add: empty text")

func newAddCmd(app *App) *cobra.Command {
	var list string
	cmd := &cobra.Command{
		Use:   "add <text...>",
		Short: "Add an item to the top of a list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := model.ParseListName(list)
			if err != nil {
				return err
			}
			p, err := app.Planner(cmd.Context())
			if err != nil {
				return err
			}
			it, ok := p.Add(cmd.Context(), n, strings.Join(args, " "))
			if !ok {
				return errEmptyText
			}
			okf("added to %s: %s", n, it.Text)
			return nil
		},
	}
	listFlag(cmd, &list)
	return cmd
}

func newRemoveCmd(app *App) *cobra.Command {
	var list string
	cmd := &cobra.Command{
		Use:     "rm <index|id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove an item by 1-based index or id prefix",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := model.ParseListName(list)
			if err != nil {
				return err
			}
			p, err := app.Planner(cmd.Context())
			if err != nil {
				return err
			}
			it, err := p.Resolve(n, args[0])
			if err != nil {
				return hinted(err, n)
			}
			p.Delete(cmd.Context(), n, it.ID)
			okf("removed: %s", it.Text)
			return nil
		},
	}
	listFlag(cmd, &list)
	return cmd
}

func newMoveCmd(app *App) *cobra.Command {
	var list string
	cmd := &cobra.Command{
		Use:   "mv <moved> <target>",
		Short: "Move an item into another item's position",
		Long: strings.TrimSpace(`
Move takes the item <moved> out of the list and puts it where <target>
was. Both accept a 1-based index or an id prefix.`),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := model.ParseListName(list)
			if err != nil {
				return err
			}
			p, err := app.Planner(cmd.Context())
			if err != nil {
				return err
			}
			moved, err := p.Resolve(n, args[0])
			if err != nil {
				return hinted(err, n)
			}
			target, err := p.Resolve(n, args[1])
			if err != nil {
				return hinted(err, n)
			}
			if !p.Reorder(cmd.Context(), n, moved.ID, target.ID) {
				okf("nothing to move")
				return nil
			}
			okf("moved: %s", moved.Text)
			return nil
		},
	}
	listFlag(cmd, &list)
	return cmd
}

func newSweepCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Drop daily items older than 25 hours",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Planner(cmd.Context())
			if err != nil {
				return err
			}
			// Opening the store already drops expired items.
			n := app.expired + p.Sweep(cmd.Context())
			okf("swept %d expired item(s)", n)
			return nil
		},
	}
}

func okf(format string, args ...any) {
	ui.OK(fmt.Sprintf(format, args...))
}

func hinted(err error, n model.ListName) error {
	return fmt.Errorf("%w\nHint: run `serene ls --list %s` to see valid indexes", err, n)
}
