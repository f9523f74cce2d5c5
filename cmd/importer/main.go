package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"catalog-storefront/internal/config"
	"catalog-storefront/internal/db"
	"catalog-storefront/internal/importer"
	"catalog-storefront/internal/repository/product"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "products_to_import.json", "Path to the JSON product export")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[importer] ", log.LstdFlags|log.LUTC)
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		log.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	f, err := os.Open(filePath)
	if err != nil {
		log.Fatalf("open file: %v", err)
	}
	defer f.Close()

	imp := importer.NewJSONImporter(f, product.NewPostgres(pool, logger), logger)

	start := time.Now()
	sum, err := imp.Run(ctx)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	fmt.Printf("Read %d products in %s\n", sum.Total, time.Since(start).Truncate(time.Millisecond))
	fmt.Printf("  imported: %d\n", sum.Imported)
	fmt.Printf("  already present (skipped): %d\n", sum.Skipped)
	fmt.Printf("  invalid (no SKU or name): %d\n", sum.Invalid)
	fmt.Printf("  failed: %d\n", sum.Failed)
	fmt.Printf("  products in database now: %d\n", sum.Existing+sum.Imported)
}
