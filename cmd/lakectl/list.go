package main

import (
	"github.com/spf13/cobra"

	"github.com/saturnines/lakehouse-sdk/pkg/lakehouse"
	"github.com/saturnines/lakehouse-sdk/pkg/transform"
)

func cmdList(a *app) *cobra.Command {
	var (
		flags  listFlags
		fields string
		all    bool
	)

	cmd := &cobra.Command{
		Use:       "list <resource>",
		Short:     "List resources, one page or --all",
		Args:      cobra.ExactArgs(1),
		ValidArgs: resourceNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := lookupResource(args[0])
			if err != nil {
				return err
			}
			opts, err := r.options(&flags)
			if err != nil {
				return err
			}
			projection, err := transform.ParseProjection(fields, nil)
			if err != nil {
				return err
			}

			svc, err := a.service()
			if err != nil {
				return err
			}
			pager, err := lakehouse.NewPager[map[string]interface{}](svc, r.listOp, opts)
			if err != nil {
				return err
			}

			out := OutputMultiple(cmd.OutOrStdout(), projection)
			defer out.Done()

			for pager.HasNext() {
				items, err := pager.Next(cmd.Context())
				if err != nil {
					return err
				}
				for _, item := range items {
					if err := out.Emit(item); err != nil {
						return err
					}
				}
				if !all {
					break
				}
			}

			if pager.HasNext() {
				a.logger.Info("more results available, rerun with --start or --all", "start", pager.Cursor())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Fetch every page")
	cmd.Flags().Int64Var(&flags.pageSize, "page-size", 0, "Items per page (default: service specific)")
	cmd.Flags().StringVar(&flags.start, "start", "", "Resume from this cursor")
	cmd.Flags().StringVar(&fields, "fields", "", "Comma separated fields to keep, each optionally followed by :transform")
	cmd.Flags().StringVar(&flags.bucket, "bucket", "", "Bucket id (bucket-objects)")
	cmd.Flags().StringVar(&flags.prefix, "prefix", "", "Object key prefix (bucket-objects)")
	cmd.Flags().StringVar(&flags.catalog, "catalog", "", "Catalog id (schemas, tables)")
	cmd.Flags().StringVar(&flags.schema, "schema", "", "Schema id (tables)")
	cmd.Flags().StringVar(&flags.engine, "engine", "", "Engine id (schemas, tables)")
	cmd.Flags().StringSliceVar(&flags.state, "state", nil, "Engine states to include (presto-engines)")

	return cmd
}
