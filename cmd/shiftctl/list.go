package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"railshift/client"
	"railshift/models"
	"railshift/utils"
)

type listFlags struct {
	search string
	limit  int
	all    bool
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "search term")
	cmd.Flags().IntVar(&f.limit, "limit", models.DefaultLimit, "rows per page")
	cmd.Flags().BoolVar(&f.all, "all", false, "fetch every page")
}

// collect loads the first page, or every page with --all, through a Pager.
func collect[T any](ctx context.Context, fetch client.FetchFunc[T], f *listFlags, filters map[string]string) ([]T, int64, error) {
	p := client.NewPager(fetch, f.limit)
	for k, v := range filters {
		if err := p.SetFilter(ctx, k, v); err != nil {
			return nil, 0, err
		}
	}
	if err := p.Search(ctx, f.search); err != nil {
		return nil, 0, err
	}
	for f.all && p.HasMore() {
		if err := p.LoadMore(ctx); err != nil {
			return nil, 0, err
		}
	}
	return p.Items(), p.Total(), nil
}

func printFooter(out io.Writer, shown int, total int64) {
	fmt.Fprintf(out, "\n%d of %d\n", shown, total)
}

func newReasonsCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reasons",
		Short: "Reason commands",
	}
	var f listFlags
	list := &cobra.Command{
		Use:   "list",
		Short: "List reasons",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := g.client()
			if err != nil {
				return err
			}
			reasons, total, err := collect(cmd.Context(), c.Reasons.List, &f, nil)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tTYPE\tDESCRIPTION")
			for _, r := range reasons {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", r.ID, r.Name, r.Type, r.Description)
			}
			w.Flush()
			printFooter(out, len(reasons), total)
			return nil
		},
	}
	f.register(list)
	cmd.AddCommand(list)
	return cmd
}

func newWagonsCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wagons",
		Short: "Wagon commands",
	}
	var (
		f      listFlags
		status string
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List wagons with their location",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := g.client()
			if err != nil {
				return err
			}
			var filters map[string]string
			if status != "" {
				filters = map[string]string{"status": strings.ToUpper(status)}
			}
			wagons, total, err := collect(cmd.Context(), c.Wagons.Options, &f, filters)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNUMBER\tTYPE\tSTATUS\tLOCATION\tRAIL\tPOS")
			for _, o := range wagons {
				number := utils.WagonNumberSegments(o.WagonNumber)
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%d\n",
					o.ID, strings.Join(number[:], " "), o.Type, o.Status, o.CurrentLocation, o.Rail, o.Position)
			}
			w.Flush()
			printFooter(out, len(wagons), total)
			return nil
		},
	}
	f.register(list)
	list.Flags().StringVar(&status, "status", "", "filter by status (EMPTY, LOADED, DAMAGED, ...)")
	cmd.AddCommand(list)
	return cmd
}

func newLocomotivesCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locomotives",
		Short: "Locomotive commands",
	}
	var f listFlags
	list := &cobra.Command{
		Use:   "list",
		Short: "List locomotives",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := g.client()
			if err != nil {
				return err
			}
			locos, total, err := collect(cmd.Context(), c.Locomotives.List, &f, nil)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tNUMBER")
			for _, l := range locos {
				fmt.Fprintf(w, "%d\t%s\t%s\n", l.ID, l.Name, l.Number)
			}
			w.Flush()
			printFooter(out, len(locos), total)
			return nil
		},
	}
	f.register(list)
	cmd.AddCommand(list)
	return cmd
}
