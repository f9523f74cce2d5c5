package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"strings"

	"catalog-storefront/internal/domain"
)

// BatchSize is the number of products inserted per round trip.
const BatchSize = 100

type ProductWriter interface {
	ExistingSKUs(ctx context.Context) (map[string]struct{}, error)
	InsertBatch(ctx context.Context, products []domain.Product) (int, error)
}

// Record is one product row of the JSON export.
type Record struct {
	SKU           string   `json:"sku"`
	Barcode       string   `json:"barcode"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Brand         string   `json:"brand"`
	Store         string   `json:"store"`
	Category      string   `json:"category"`
	Price         *float64 `json:"price"`
	OriginalPrice *float64 `json:"original_price"`
	Stock         float64  `json:"stock"`
	ImagePath     string   `json:"image_path"`
	Visible       *bool    `json:"is_visible"`
}

// Summary counts what happened to every record of the input.
type Summary struct {
	Total    int
	Invalid  int
	Skipped  int
	Imported int
	Failed   int
	Existing int
}

// JSONImporter loads a JSON array of products, dropping invalid rows and
// SKUs that already exist.
type JSONImporter struct {
	reader      io.Reader
	productRepo ProductWriter
	logger      *log.Logger
}

func NewJSONImporter(r io.Reader, repo ProductWriter, logger *log.Logger) *JSONImporter {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &JSONImporter{reader: r, productRepo: repo, logger: logger}
}

// Run imports the file. A failing batch is counted and the import continues
// with the next one.
func (i *JSONImporter) Run(ctx context.Context) (Summary, error) {
	var records []Record
	if err := json.NewDecoder(i.reader).Decode(&records); err != nil {
		return Summary{}, fmt.Errorf("decode products: %w", err)
	}
	sum := Summary{Total: len(records)}

	valid := make([]Record, 0, len(records))
	for _, r := range records {
		if !Valid(r) {
			sum.Invalid++
			continue
		}
		valid = append(valid, r)
	}

	existing, err := i.productRepo.ExistingSKUs(ctx)
	if err != nil {
		return sum, fmt.Errorf("load existing skus: %w", err)
	}
	sum.Existing = len(existing)

	fresh := make([]domain.Product, 0, len(valid))
	for _, r := range valid {
		sku := strings.TrimSpace(r.SKU)
		if _, ok := existing[sku]; ok {
			sum.Skipped++
			continue
		}
		// Repeated SKUs inside the file keep the first row.
		existing[sku] = struct{}{}
		fresh = append(fresh, toProduct(r))
	}

	for start := 0; start < len(fresh); start += BatchSize {
		end := min(start+BatchSize, len(fresh))
		batch := fresh[start:end]
		n, err := i.productRepo.InsertBatch(ctx, batch)
		if err != nil {
			if ctx.Err() != nil {
				return sum, ctx.Err()
			}
			i.logger.Printf("importer: batch %d failed: %v", start/BatchSize+1, err)
			sum.Failed += len(batch)
			continue
		}
		sum.Imported += n
		sum.Skipped += len(batch) - n
		i.logger.Printf("importer: batch %d: %d products (total %d/%d)", start/BatchSize+1, n, sum.Imported, len(fresh))
	}
	return sum, nil
}

// Valid reports whether r carries a usable SKU and name.
func Valid(r Record) bool {
	sku := strings.TrimSpace(r.SKU)
	if sku == "" || sku == "nan" || sku == "None" {
		return false
	}
	name := strings.TrimSpace(r.Name)
	return name != "" && name != "Sin nombre"
}

func toProduct(r Record) domain.Product {
	visible := true
	if r.Visible != nil {
		visible = *r.Visible
	}
	stock := int(math.Round(r.Stock))
	if stock < 0 {
		stock = 0
	}
	return domain.Product{
		SKU:           strings.TrimSpace(r.SKU),
		Barcode:       strings.TrimSpace(r.Barcode),
		Name:          strings.TrimSpace(r.Name),
		Description:   strings.TrimSpace(r.Description),
		Brand:         strings.TrimSpace(r.Brand),
		Store:         strings.TrimSpace(r.Store),
		Category:      strings.TrimSpace(r.Category),
		Price:         wholeUnits(r.Price),
		OriginalPrice: wholeUnits(r.OriginalPrice),
		Stock:         stock,
		ImagePath:     strings.TrimSpace(r.ImagePath),
		Visible:       visible,
	}
}

// wholeUnits rounds a spreadsheet amount to whole pesos. NaN and negative
// amounts count as missing.
func wholeUnits(v *float64) *int64 {
	if v == nil || math.IsNaN(*v) || *v < 0 {
		return nil
	}
	n := int64(math.Round(*v))
	return &n
}
