// Command khata-report prints a ledger summary to stdout without
// starting the server. Useful for shells and cron.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"khata/internal/cli"
	"khata/internal/core"
	applog "khata/internal/log"
	"khata/internal/persist"
	"khata/internal/query"
)

func main() {
	var (
		category = flag.String("category", "", "only include this category")
		from     = flag.String("from", "", "start date (YYYY-MM-DD, inclusive)")
		to       = flag.String("to", "", "end date (YYYY-MM-DD, inclusive)")
	)
	flag.Parse()

	logger := cli.SetupLogger().WithComponent(applog.ComponentReport)
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	filter, err := buildFilter(*category, *from, *to)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx := context.Background()

	blobStore, cleanup := cli.OpenBackend(logger, cfg)
	defer func() {
		if err := cleanup(); err != nil {
			logger.Error("Backend cleanup failed", "error", err)
		}
	}()

	gateway := persist.NewBlobGateway(blobStore, cfg.BlobKey)
	txs, err := gateway.Load(ctx)
	if err != nil {
		logger.Error("Failed to load transactions", "error", err)
		os.Exit(1)
	}

	txs = query.SortByDateDesc(query.Apply(txs, filter))
	summary := query.Summarize(txs)
	breakdown := query.CategoryBreakdown(txs)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Transactions:\t%d\n", len(txs))
	fmt.Fprintf(w, "Income:\t%s\n", core.FormatAmount(summary.IncomeCents, cfg.CurrencyCode))
	fmt.Fprintf(w, "Expenses:\t%s\n", core.FormatAmount(summary.ExpenseCents, cfg.CurrencyCode))
	fmt.Fprintf(w, "Balance:\t%s\n", core.FormatAmount(summary.BalanceCents, cfg.CurrencyCode))
	if len(breakdown) > 0 {
		fmt.Fprintln(w, "\nSpending by category:")
		for _, ca := range breakdown {
			fmt.Fprintf(w, "  %s\t%s\n", ca.Category, core.FormatAmount(ca.Cents, cfg.CurrencyCode))
		}
	}
	if err := w.Flush(); err != nil {
		logger.Error("Failed to write report", "error", err)
		os.Exit(1)
	}
}

func buildFilter(category, from, to string) (query.Filter, error) {
	var f query.Filter
	if category != "" {
		f.Category = core.Category(category)
	}
	if from != "" {
		d, err := core.ParseDate(from)
		if err != nil {
			return f, fmt.Errorf("invalid -from date %q: %w", from, err)
		}
		f.From = d
	}
	if to != "" {
		d, err := core.ParseDate(to)
		if err != nil {
			return f, fmt.Errorf("invalid -to date %q: %w", to, err)
		}
		f.To = d
	}
	return f, nil
}
