// Package cli implements the autotax command line: single quotes, batch
// quoting into a workbook, and catalog inspection.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	awsclient "github.com/cyphera/cyphera-autotax/client/aws"
	"github.com/cyphera/cyphera-autotax/constants"
	"github.com/cyphera/cyphera-autotax/helpers"
	"github.com/cyphera/cyphera-autotax/interfaces"
	"github.com/cyphera/cyphera-autotax/logger"
	"github.com/cyphera/cyphera-autotax/services"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// options are the persistent flags shared by every subcommand.
type options struct {
	rulesDir          string
	rulesS3           string
	versionConstraint string
	logLevel          string
}

// NewRootCommand builds the autotax command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "autotax",
		Short: "Vehicle sales and lease tax calculator",
		Long: `autotax prices the sales or use tax on vehicle retail and lease deals
from a versioned catalog of per-jurisdiction rules.

Examples:
  autotax quote --deal deal.yaml
  autotax batch --deals deals.yaml --out quotes.xlsx
  autotax catalog list --rules-dir configs/rules
  autotax catalog validate --rules-s3 s3://bucket/catalog.yaml`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.InitLoggerWithConfig(logger.LoggerConfig{
				Level: opts.logLevel,
				Stage: helpers.StageLocal,
			})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.rulesDir, "rules-dir",
		helpers.GetEnvWithDefault("RULES_CATALOG_DIR", constants.DefaultRulesCatalogDir),
		"Directory of rules catalog YAML documents")
	flags.StringVar(&opts.rulesS3, "rules-s3", "",
		"Read the catalog from one S3 object instead (s3://bucket/key)")
	flags.StringVar(&opts.versionConstraint, "version-constraint",
		helpers.GetEnvWithDefault("RULES_CATALOG_VERSION_CONSTRAINT", constants.DefaultCatalogVersionConstraint),
		"Semantic version constraint every catalog document must satisfy")
	flags.StringVar(&opts.logLevel, "log-level", helpers.GetEnvWithDefault("LOG_LEVEL", "warn"),
		"Log level (debug, info, warn, error)")

	root.AddCommand(
		newQuoteCommand(opts),
		newBatchCommand(opts),
		newCatalogCommand(opts),
		newVersionCommand(),
	)
	return root
}

// Execute runs the command tree against os.Args.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// source picks the catalog source named by the flags.
func (o *options) source(ctx context.Context) (interfaces.CatalogSource, error) {
	if o.rulesS3 == "" {
		return services.NewDirectorySource(o.rulesDir), nil
	}
	bucket, key, err := parseS3URI(o.rulesS3)
	if err != nil {
		return nil, err
	}
	return awsclient.NewS3CatalogSource(ctx, bucket, key)
}

// loadCatalog loads and validates the catalog named by the flags.
func (o *options) loadCatalog(ctx context.Context) (*services.RulesCatalogService, error) {
	loader, err := services.NewCatalogLoader(o.versionConstraint)
	if err != nil {
		return nil, err
	}
	source, err := o.source(ctx)
	if err != nil {
		return nil, err
	}
	return loader.Load(ctx, source)
}

func parseS3URI(uri string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return "", "", errors.Errorf("invalid S3 URI %q: must start with s3://", uri)
	}
	bucket, key, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", errors.Errorf("invalid S3 URI %q: want s3://bucket/key", uri)
	}
	return bucket, key, nil
}
