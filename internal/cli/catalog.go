package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newCatalogCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the rules catalog",
	}
	cmd.AddCommand(newCatalogListCommand(opts), newCatalogValidateCommand(opts))
	return cmd
}

func newCatalogListCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the jurisdictions in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := opts.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "CODE\tNAME\tSCHEME\tSTATUS\n")
			for _, j := range catalog.List() {
				status := "stub"
				if j.Implemented {
					status = "implemented"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", j.Code, j.Name, j.Scheme, status)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "catalog version %s\n", catalog.Version())
			return nil
		},
	}
}

func newCatalogValidateCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate every catalog document against the schema and engine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := opts.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			implemented := 0
			entries := catalog.List()
			for _, j := range entries {
				if j.Implemented {
					implemented++
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "catalog OK: version %s, %d jurisdiction(s), %d implemented\n",
				catalog.Version(), len(entries), implemented)
			return nil
		},
	}
}
