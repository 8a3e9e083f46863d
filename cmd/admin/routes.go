package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"finitefield.org/campaign-site/internal/admin/routes"
)

func newRoutesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Inspect the back-office screen registry",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Print every registered screen in lookup order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TEMPLATE\tCATEGORY\tPARENT DASHBOARD")
			for _, desc := range routes.AdminRegistry(routes.Screens{}).Descriptors() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", desc.Template, desc.Category, desc.ParentDashboard)
			}
			return tw.Flush()
		},
	}

	resolve := &cobra.Command{
		Use:   "resolve <path>",
		Short: "Show the parent dashboard and category for a concrete path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver := routes.NewResolver(routes.AdminRegistry(routes.Screens{}))
			out := cmd.OutOrStdout()
			desc, params, ok := resolver.Resolve(args[0])
			if !ok {
				fmt.Fprintf(out, "%s: no parent dashboard\n", args[0])
				return nil
			}
			fmt.Fprintf(out, "path:             %s\n", args[0])
			fmt.Fprintf(out, "template:         %s\n", desc.Template)
			fmt.Fprintf(out, "category:         %s\n", desc.Category)
			fmt.Fprintf(out, "parent dashboard: %s\n", desc.ParentDashboard)
			if id, ok := params["id"]; ok {
				fmt.Fprintf(out, "id:               %s\n", id)
			}
			return nil
		},
	}

	cmd.AddCommand(list, resolve)
	return cmd
}
