package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/vinicius-lino-figueiredo/unitdb"
	"github.com/vinicius-lino-figueiredo/unitdb/internal/shell"
)

func newQueryCmd(a *app) *cobra.Command {
	var (
		sort   string
		skip   int64
		limit  int64
		fields []string
	)

	cmd := &cobra.Command{
		Use:   "query [json query]",
		Short: "Print the documents matching a query as JSON lines",
		Example: `  unitdb query -f people.jsonl '{"age":{"$gte":18}}' --sort age:-1 --limit 10
  unitdb query -f people.jsonl --fields name,age`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var options []unitdb.FindOption

			s, err := shell.ParseSort(sort)
			if err != nil {
				return err
			}
			if len(s) > 0 {
				options = append(options, unitdb.WithSort(s))
			}
			if skip != 0 {
				options = append(options, unitdb.WithSkip(skip))
			}
			if limit != 0 {
				options = append(options, unitdb.WithLimit(limit))
			}
			if len(fields) > 0 {
				proj := make(map[string]uint8, len(fields))
				for _, f := range fields {
					proj[f] = 1
				}
				options = append(options, unitdb.WithProjection(proj))
			}

			lines, err := a.shell.Find(cmd.Context(), strings.Join(args, ""), options...)
			if err != nil {
				return err
			}
			shell.DocsResult{Lines: lines}.Print(cmd.OutOrStdout())
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&sort, "sort", "", "sort fields, e.g. age:-1,name")
	flags.Int64Var(&skip, "skip", 0, "number of documents to skip")
	flags.Int64Var(&limit, "limit", 0, "maximum number of documents to print")
	flags.StringSliceVar(&fields, "fields", nil, "fields to print, id is always included")
	return cmd
}

func newCountCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "count [json query]",
		Short: "Print the number of documents matching a query",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a.shell.Count(cmd.Context(), strings.Join(args, ""))
			if err != nil {
				return err
			}
			shell.CountResult{N: n}.Print(cmd.OutOrStdout())
			return nil
		},
	}
}
