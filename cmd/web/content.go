package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"finitefield.org/campaign-site/internal/site/sitecontent"
)

func newContentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Inspect the site content document",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "check [dir]",
		Short: "Validate site.yaml in dir, or the embedded default when omitted",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			}
			store, err := sitecontent.NewStore(dir, nil)
			if err != nil {
				return err
			}
			site := store.Current()
			source := dir
			if source == "" {
				source = "embedded default"
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "source:    %s\n", source)
			fmt.Fprintf(out, "site:      %s\n", site.Name)
			fmt.Fprintf(out, "person:    %s\n", site.Person.Name)
			fmt.Fprintf(out, "timeline:  %d entries\n", len(site.Timeline))
			fmt.Fprintf(out, "social:    %d links\n", len(site.Social))
			return nil
		},
	})
	return cmd
}
