package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"catalog-storefront/internal/config"
	"catalog-storefront/internal/db"
	"catalog-storefront/internal/money"
	"catalog-storefront/internal/pricing"
	"catalog-storefront/internal/repository/product"
)

const shownChanges = 20

func main() {
	var (
		unit   int64
		dryRun bool
	)
	flag.Int64Var(&unit, "unit", 1000, "Round prices to the nearest multiple of this amount")
	flag.BoolVar(&dryRun, "dry-run", false, "Report changes without writing them")
	flag.Parse()

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[roundprices] ", log.LstdFlags|log.LUTC)
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	res, err := pricing.NewRounder(product.NewPostgres(pool, logger), unit, dryRun, logger).Run(ctx)
	if err != nil {
		logger.Fatalf("round prices: %v", err)
	}

	verb := "updated"
	if dryRun {
		verb = "would update"
	}
	fmt.Printf("Processed %d products: %s %d, unchanged %d, failed %d\n",
		res.Processed, verb, len(res.Changes), res.Unchanged, res.Failed)

	for i, c := range res.Changes {
		if i == shownChanges {
			fmt.Printf("... and %d more\n", len(res.Changes)-shownChanges)
			break
		}
		sign := "+"
		if c.Diff() < 0 {
			sign = "-"
		}
		diff := c.Diff()
		if diff < 0 {
			diff = -diff
		}
		fmt.Printf("%d. %s\n   $%s -> $%s (%s$%s)\n", i+1, truncate(c.Name, 40),
			money.Format(c.Old), money.Format(c.New), sign, money.Format(diff))
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
