package cli_test

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/cyphera/cyphera-autotax/internal/cli"
	"github.com/cyphera/cyphera-autotax/logger"
	"github.com/cyphera/cyphera-autotax/types/api/responses"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const rulesDir = "../../configs/rules"

func init() {
	logger.InitLogger("test")
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestQuoteCommand(t *testing.T) {
	out, err := runCLI(t, "quote", "--deal", "testdata/deal.yaml", "--rules-dir", rulesDir)
	require.NoError(t, err, out)

	var quote responses.QuoteResponse
	require.NoError(t, json.Unmarshal([]byte(out), &quote))
	assert.True(t, quote.Implemented)
	assert.NotEmpty(t, quote.CalculationID)
	require.NotNil(t, quote.Result)
	assert.Equal(t, "TX", quote.Result.JurisdictionCode)
	assert.True(t, decimal.RequireFromString("1571.875").Equal(quote.Result.TaxDue), quote.Result.TaxDue.String())
}

func TestQuoteCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing deal flag", []string{"quote", "--rules-dir", rulesDir}},
		{"unreadable deal", []string{"quote", "--deal", "testdata/missing.yaml", "--rules-dir", rulesDir}},
		{"bad catalog dir", []string{"quote", "--deal", "testdata/deal.yaml", "--rules-dir", "testdata/nowhere"}},
		{"bad s3 uri", []string{"quote", "--deal", "testdata/deal.yaml", "--rules-s3", "s3://bucket-only"}},
		{"not an s3 uri", []string{"catalog", "list", "--rules-s3", "https://example.com/catalog.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestBatchCommand(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "quotes.xlsx")

	out, err := runCLI(t, "batch", "--deals", "testdata/deals.yaml", "--out", outPath, "--rules-dir", rulesDir, "--workers", "2")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 3 deals failed")
	assert.Contains(t, out, "Quoted 2 deal(s), 1 failed")

	f, err := excelize.OpenFile(outPath)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Quotes")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Deal ID", rows[0][0])
	assert.Equal(t, "Tax Due", rows[0][11])

	assert.Equal(t, []string{"tx-1", "TX", "RETAIL", "GENERIC", "TRUE"}, rows[1][:5])
	assert.Equal(t, "25150", rows[1][8])
	assert.Equal(t, "1571.88", rows[1][11])

	assert.Equal(t, "ca-1", rows[2][0])
	assert.Equal(t, "20085", rows[2][8])
	assert.Equal(t, "1657.01", rows[2][11])

	assert.Equal(t, "bad-1", rows[3][0])
	require.Len(t, rows[3], 15)
	assert.Contains(t, rows[3][14], "jurisdiction not found")

	components, err := f.GetRows("Components")
	require.NoError(t, err)
	require.Len(t, components, 4)
	assert.Equal(t, []string{"tx-1", "STATE", "0.0625", "1571.88"}, components[1])
	assert.Equal(t, []string{"ca-1", "STATE", "0.0725", "1456.16"}, components[2])
	assert.Equal(t, []string{"ca-1", "LOCAL", "0.01", "200.85"}, components[3])
}

func TestCatalogCommands(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		out, err := runCLI(t, "catalog", "list", "--rules-dir", rulesDir)
		require.NoError(t, err)
		assert.Contains(t, out, "CODE")
		assert.Contains(t, out, "Texas")
		assert.Contains(t, out, "AD_VALOREM")
		assert.Contains(t, out, "stub")
		assert.Contains(t, out, "catalog version 1.2.0")
	})

	t.Run("validate", func(t *testing.T) {
		out, err := runCLI(t, "catalog", "validate", "--rules-dir", rulesDir)
		require.NoError(t, err)
		assert.Contains(t, out, "catalog OK: version 1.2.0, 8 jurisdiction(s), 6 implemented")
	})

	t.Run("validate rejects version", func(t *testing.T) {
		_, err := runCLI(t, "catalog", "validate", "--rules-dir", rulesDir, "--version-constraint", "< 1.0.0")
		assert.Error(t, err)
	})
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Version:    "+cli.Version)
}
