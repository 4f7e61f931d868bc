package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/serene/internal/model"
	"github.com/idilsaglam/serene/internal/ui"
)

const (
	listAll  = "all"
	textCols = 60
	barWidth = 12
)

func newListCmd(app *App) *cobra.Command {
	var (
		list   string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "Show the items of a list",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := model.Lists
			if list != listAll {
				n, err := model.ParseListName(list)
				if err != nil {
					return err
				}
				names = []model.ListName{n}
			}
			p, err := app.Planner(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				out := make(map[model.ListName][]model.Item, len(names))
				for _, n := range names {
					out[n] = p.Items(n)
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if len(names) == 1 {
					return enc.Encode(out[names[0]])
				}
				return enc.Encode(out)
			}

			now := p.Now()
			var lines []string
			for i, n := range names {
				if i > 0 {
					lines = append(lines, "")
				}
				lines = append(lines, sectionLines(n, p.Items(n), now, p.TTL())...)
			}
			lines = append(lines, "")
			lines = append(lines, ui.C(ui.Current().Muted, "Tip: add with `serene add \"Buy milk\"`"))
			ui.Panel(lines)
			return nil
		},
	}
	cmd.Flags().StringVarP(&list, "list", "l", string(model.Daily), "List to show (daily|global|all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the stored snapshot as JSON")
	return cmd
}

func sectionLines(n model.ListName, items []model.Item, now time.Time, ttl time.Duration) []string {
	t := ui.Current()
	header := fmt.Sprintf("%s  %s %d", ui.C(t.Title, n.Title()), ui.C(t.Pending, t.SymBullet), len(items))
	lines := []string{header}
	if len(items) == 0 {
		return append(lines, ui.C(t.Muted, n.EmptyMessage()))
	}
	for i, it := range items {
		idx := ui.Dim(fmt.Sprintf("%2d.", i+1))
		id := ui.Dim(shortID(it.ID))
		text := ui.Truncate(it.Text, textCols)
		if !n.Expires() {
			lines = append(lines, fmt.Sprintf("%s %s %s", idx, id, text))
			continue
		}
		rem := it.Remaining(now, ttl)
		color := t.Muted
		if it.Expired(now, ttl) {
			color = t.Error
		}
		bar := ui.ExpiryBar(it.Age(now).Hours(), ttl.Hours(), barWidth)
		lines = append(lines, fmt.Sprintf("%s %s %s", idx, id, text))
		lines = append(lines, fmt.Sprintf("    %s  %s", ui.C(color, bar), ui.C(color, model.FormatRemaining(rem))))
	}
	return lines
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
