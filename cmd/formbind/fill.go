package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFillCmd(a *app) *cobra.Command {
	f := &bindFlags{}
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Bind a saved record into a form and print the result",
		Example: `  formbind fill --record subscriptions.yaml --keyed --key acme --html form.html
  formbind fill --key 42 --openapi api.yaml --operation createMessageTask`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := f.validate(); err != nil {
				return err
			}
			ctx := cmd.Context()

			provider, closeProvider, err := a.provider(f)
			if err != nil {
				return err
			}
			defer closeProvider()

			target, err := a.form(ctx, f, cmd.InOrStdin())
			if err != nil {
				return err
			}
			rec, err := provider.Lookup(ctx, f.key)
			if err != nil {
				return fmt.Errorf("lookup %q: %w", f.key, err)
			}

			a.binder.Bind(rec, target.ctx)
			return writeOutput(f.output, cmd.OutOrStdout(), target.write)
		},
	}
	f.register(cmd)
	return cmd
}
