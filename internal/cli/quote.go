package cli

import (
	"encoding/json"
	"os"

	"github.com/cyphera/cyphera-autotax/helpers"
	"github.com/cyphera/cyphera-autotax/services"
	"github.com/cyphera/cyphera-autotax/types/api/responses"
	"github.com/cyphera/cyphera-autotax/types/business"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newQuoteCommand(opts *options) *cobra.Command {
	var dealPath string

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price one deal and print the result as JSON",
		Long: `quote reads one transaction from a YAML or JSON file, looks up the rules
for its jurisdictionCode in the catalog and prints the calculation result.
Timestamps in the file must be RFC 3339 strings.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readTransaction(dealPath)
			if err != nil {
				return err
			}

			catalog, err := opts.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			rules, err := catalog.GetRules(input.JurisdictionCode)
			if err != nil {
				return err
			}

			result, err := services.NewTaxEngine().CalculateTax(cmd.Context(), input, *rules)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(responses.QuoteResponse{
				CalculationID: uuid.New().String(),
				Implemented:   catalog.IsImplemented(input.JurisdictionCode),
				Result:        result,
			})
		},
	}

	cmd.Flags().StringVar(&dealPath, "deal", "", "Path to the deal file")
	_ = cmd.MarkFlagRequired("deal")
	return cmd
}

func readTransaction(path string) (business.TransactionInput, error) {
	var input business.TransactionInput
	data, err := os.ReadFile(path)
	if err != nil {
		return input, errors.Wrap(err, "failed to read deal file")
	}
	if err := helpers.UnmarshalYAML(data, &input); err != nil {
		return input, errors.Wrapf(err, "failed to decode deal file %s", path)
	}
	return input, nil
}
