package cli

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/cyphera/cyphera-autotax/helpers"
	"github.com/cyphera/cyphera-autotax/interfaces"
	"github.com/cyphera/cyphera-autotax/services"
	"github.com/cyphera/cyphera-autotax/types/business"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"
)

const (
	quotesSheet     = "Quotes"
	componentsSheet = "Components"
)

var quoteHeaders = []interface{}{
	"Deal ID", "Jurisdiction", "Deal Type", "Scheme", "Implemented",
	"Vehicle Base", "Fee Base", "Product Base", "Taxable Base",
	"Total Tax", "Reciprocity Credit", "Tax Due", "Tax Already Collected", "Tax Balance",
	"Error",
}

var componentHeaders = []interface{}{"Deal ID", "Label", "Rate", "Amount"}

// batchFile is the deals document read by the batch command.
type batchFile struct {
	Deals []batchDeal `json:"deals"`
}

type batchDeal struct {
	ID          string                    `json:"id"`
	Transaction business.TransactionInput `json:"transaction"`
}

// batchQuote is the outcome for one deal, successful or not.
type batchQuote struct {
	deal        batchDeal
	implemented bool
	result      *business.CalculationResult
	err         error
}

func newBatchCommand(opts *options) *cobra.Command {
	var (
		dealsPath string
		outPath   string
		workers   int
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Price many deals and write the results to an .xlsx workbook",
		Long: `batch reads a deals document (a "deals" list of {id, transaction} items),
prices every deal against the catalog and writes one row per deal to the
Quotes sheet and one row per rate component to the Components sheet. Money
is rounded to cents in the workbook only. Deals that fail are written with
their error and make the command exit non-zero.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deals, err := readBatch(dealsPath)
			if err != nil {
				return err
			}
			catalog, err := opts.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}

			quotes := quoteAll(cmd.Context(), services.NewTaxEngine(), catalog, deals, workers)
			if err := writeWorkbook(outPath, quotes); err != nil {
				return err
			}

			failed := 0
			for _, q := range quotes {
				if q.err != nil {
					failed++
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Quoted %d deal(s), %d failed, written to %s\n",
				len(quotes)-failed, failed, outPath)
			if failed > 0 {
				return errors.Errorf("%d of %d deals failed", failed, len(quotes))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dealsPath, "deals", "", "Path to the deals file")
	cmd.Flags().StringVar(&outPath, "out", "quotes.xlsx", "Workbook to write")
	cmd.Flags().IntVar(&workers, "workers", 4, "Number of deals priced concurrently")
	_ = cmd.MarkFlagRequired("deals")
	return cmd
}

func readBatch(path string) ([]batchDeal, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read deals file")
	}
	var file batchFile
	if err := helpers.UnmarshalYAML(data, &file); err != nil {
		return nil, errors.Wrapf(err, "failed to decode deals file %s", path)
	}
	for i := range file.Deals {
		if file.Deals[i].ID == "" {
			file.Deals[i].ID = fmt.Sprintf("deal-%d", i+1)
		}
	}
	return file.Deals, nil
}

// quoteAll prices deals on a bounded pool of goroutines. Results keep the
// order of deals.
func quoteAll(ctx context.Context, engine interfaces.TaxEngine, catalog interfaces.RulesCatalog, deals []batchDeal, workers int) []batchQuote {
	if workers < 1 {
		workers = 1
	}
	quotes := make([]batchQuote, len(deals))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				quotes[i] = quoteOne(ctx, engine, catalog, deals[i])
			}
		}()
	}
	for i := range deals {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return quotes
}

func quoteOne(ctx context.Context, engine interfaces.TaxEngine, catalog interfaces.RulesCatalog, deal batchDeal) batchQuote {
	q := batchQuote{deal: deal}
	code := deal.Transaction.JurisdictionCode
	rules, err := catalog.GetRules(code)
	if err != nil {
		q.err = err
		return q
	}
	q.implemented = catalog.IsImplemented(code)
	q.result, q.err = engine.CalculateTax(ctx, deal.Transaction, *rules)
	return q
}

func money(v decimal.Decimal) float64 {
	return helpers.RoundCurrency(v).InexactFloat64()
}

func writeWorkbook(path string, quotes []batchQuote) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if err := f.SetSheetName("Sheet1", quotesSheet); err != nil {
		return errors.Wrap(err, "failed to name quotes sheet")
	}
	if _, err := f.NewSheet(componentsSheet); err != nil {
		return errors.Wrap(err, "failed to add components sheet")
	}
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Wrap(err, "failed to create header style")
	}

	for sheet, headers := range map[string][]interface{}{quotesSheet: quoteHeaders, componentsSheet: componentHeaders} {
		if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
			return errors.Wrapf(err, "failed to write %s header", sheet)
		}
		if err := f.SetRowStyle(sheet, 1, 1, header); err != nil {
			return errors.Wrapf(err, "failed to style %s header", sheet)
		}
	}

	componentRow := 2
	for i, q := range quotes {
		row := quoteRow(q)
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(quotesSheet, cell, &row); err != nil {
			return errors.Wrapf(err, "failed to write quote %s", q.deal.ID)
		}
		if q.result == nil {
			continue
		}
		for _, c := range q.result.Taxes.Components {
			values := []interface{}{q.deal.ID, c.Label, c.Rate.InexactFloat64(), money(c.Amount)}
			cell, _ := excelize.CoordinatesToCellName(1, componentRow)
			if err := f.SetSheetRow(componentsSheet, cell, &values); err != nil {
				return errors.Wrapf(err, "failed to write components of %s", q.deal.ID)
			}
			componentRow++
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.Wrapf(err, "failed to save workbook %s", path)
	}
	return nil
}

func quoteRow(q batchQuote) []interface{} {
	t := q.deal.Transaction
	if q.err != nil {
		return []interface{}{
			q.deal.ID, t.JurisdictionCode, string(t.DealType), "", q.implemented,
			nil, nil, nil, nil, nil, nil, nil, nil, nil,
			q.err.Error(),
		}
	}
	r := q.result
	return []interface{}{
		q.deal.ID, r.JurisdictionCode, string(r.Mode), string(r.Scheme), q.implemented,
		money(r.Bases.Vehicle), money(r.Bases.Fees), money(r.Bases.Products), money(r.Bases.Total),
		money(r.Taxes.TotalTax), money(r.Debug.ReciprocityCredit), money(r.TaxDue),
		money(r.Debug.TaxAlreadyCollected), money(r.TaxBalance),
		"",
	}
}
