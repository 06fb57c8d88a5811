package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbind/pkg/client"
)

func newExportCmd(a *app) *cobra.Command {
	var params client.ExportParams
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export articles of a subscribed account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.callAPI(cmd, func(c *client.Client) (*client.Response, error) {
				return c.ExportArticles(cmd.Context(), params)
			})
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&params.MpID, "mp-id", "", "account id")
	flags.StringVar(&params.Scope, "scope", "all", "export scope (all, selected)")
	flags.StringSliceVar(&params.IDs, "ids", nil, "article ids for --scope selected")
	flags.IntVar(&params.Limit, "limit", 10, "articles per page")
	flags.IntVar(&params.PageCount, "page-count", 1, "number of pages")
	flags.StringSliceVar(&params.Formats, "format", []string{"md"}, "formats (md, docx, json, csv, pdf)")
	_ = cmd.MarkFlagRequired("mp-id")
	return cmd
}
