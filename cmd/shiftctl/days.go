package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"railshift/usnshift"
)

func newDaysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "days <from> [to]",
		Short: "Print the days a shift date range expands to",
		Long:  "Prints one YYYY-MM-DD line per day from <from> to <to>, both inclusive. Without <to> only <from> is printed.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			end := ""
			if len(args) == 2 {
				end = args[1]
			}
			days, err := usnshift.ExpandDays(args[0], end)
			if err != nil {
				return err
			}
			for _, d := range days {
				fmt.Fprintln(cmd.OutOrStdout(), d)
			}
			return nil
		},
	}
}
