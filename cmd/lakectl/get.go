package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saturnines/lakehouse-sdk/pkg/transform"
	"github.com/saturnines/lakehouse-sdk/pkg/transport/rest"
)

func cmdGet(a *app) *cobra.Command {
	var (
		scope  scopeFlags
		fields string
	)

	cmd := &cobra.Command{
		Use:   "get <resource> <id>",
		Short: "Show one resource",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := lookupResource(args[0])
			if err != nil {
				return err
			}
			if r.getOp == "" {
				return fmt.Errorf("%s cannot be fetched individually, use list", args[0])
			}
			projection, err := transform.ParseProjection(fields, nil)
			if err != nil {
				return err
			}

			svc, err := a.service()
			if err != nil {
				return err
			}
			op, _ := svc.Operation(r.getOp)

			params := rest.Params{r.idParam: args[1]}
			for name, value := range map[string]string{
				"catalog_id": scope.catalog,
				"schema_id":  scope.schema,
				"engine_id":  scope.engine,
			} {
				if _, declared := op.Param(name); declared && name != r.idParam {
					params[name] = value
				}
			}

			var result map[string]interface{}
			if _, err := svc.Invoke(cmd.Context(), r.getOp, params, &result); err != nil {
				return err
			}

			out := OutputSingle(cmd.OutOrStdout(), projection)
			defer out.Done()
			return out.Emit(result)
		},
	}

	cmd.Flags().StringVar(&fields, "fields", "", "Comma separated fields to keep, each optionally followed by :transform")
	cmd.Flags().StringVar(&scope.catalog, "catalog", "", "Catalog id (tables)")
	cmd.Flags().StringVar(&scope.schema, "schema", "", "Schema id (tables)")
	cmd.Flags().StringVar(&scope.engine, "engine", "", "Engine id (tables)")

	return cmd
}
