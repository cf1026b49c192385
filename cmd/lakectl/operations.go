package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/saturnines/lakehouse-sdk/pkg/lakehouse"
)

func cmdOperations() *cobra.Command {
	return &cobra.Command{
		Use:   "operations",
		Short: "List the operations the client knows about",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tMETHOD\tPATH\tPAGING")
			for _, op := range lakehouse.Operations() {
				paging := "-"
				if op.Paged() {
					paging = op.Paging.Kind
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", op.Name, op.Method, op.Path, paging)
			}
			return tw.Flush()
		},
	}
}
