package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbind/pkg/confirm"
)

func newConfirmCmd(a *app) *cobra.Command {
	f := &bindFlags{}
	var (
		message string
		yes     bool
	)
	cmd := &cobra.Command{
		Use:   "confirm",
		Short: "Ask before restoring a saved record into a form",
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

			handler := &confirm.Handler{
				Provider: provider,
				Binder:   a.binder,
				Context:  confirm.Static(target.ctx),
				Key:      f.key,
			}

			var driver confirm.PromptDriver = confirm.NewSurveyDriver(cmd.ErrOrStderr())
			if yes {
				driver = assumeYes{driver}
			}
			_, confirmed, err := confirm.Confirm(ctx, driver, message, handler)
			if errors.Is(err, confirm.ErrAborted) {
				return nil
			}
			if err != nil {
				return err
			}
			if !confirmed {
				return nil
			}
			return writeOutput(f.output, cmd.OutOrStdout(), target.write)
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&message, "message", "Restore the saved subscription values?", "confirmation prompt")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm without prompting")
	return cmd
}

// assumeYes answers every confirmation with yes and forwards Info.
type assumeYes struct {
	confirm.PromptDriver
}

func (assumeYes) Confirm(context.Context, confirm.ConfirmConfig) (bool, error) {
	return true, nil
}
