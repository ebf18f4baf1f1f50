package gen

import (
	"fmt"
	"time"

	"github.com/Lumos-Labs-HQ/relgen/internal/batch"
	"github.com/Lumos-Labs-HQ/relgen/internal/config"
	"github.com/Lumos-Labs-HQ/relgen/internal/model"
	"github.com/fatih/color"
)

// RunReport summarizes a generation run. A table with failed batches is a
// partial success; the run only errors on configuration problems.
type RunReport struct {
	Tables   []batch.TableReport
	Duration time.Duration
}

// TotalRows sums rows written across all tables.
func (r *RunReport) TotalRows() int64 {
	var total int64
	for _, t := range r.Tables {
		total += t.Rows
	}
	return total
}

// FailedBatches collects every failed artifact name across tables.
func (r *RunReport) FailedBatches() []string {
	var failed []string
	for _, t := range r.Tables {
		failed = append(failed, t.FailedBatches...)
	}
	return failed
}

// Pipeline wires the generation stages together: seed catalog, pattern
// injection, bulk entities, bulk synthesis, batched persistence.
type Pipeline struct {
	cfg *config.Config
}

func NewPipeline(cfg *config.Config) *Pipeline {
	return &Pipeline{cfg: cfg}
}

// Run executes the full generation. Configuration errors abort before any
// generation; write failures are reported per table and never abort sibling
// tables.
func (p *Pipeline) Run() (*RunReport, error) {
	if err := p.cfg.Validate(); err != nil {
		return nil, err
	}
	codec, err := batch.CodecFor(p.cfg.Compression)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	ctx := NewContext()

	// Seed catalog and pattern injection, the deterministic anchors.
	var catalog *SeedCatalog
	var patternTxns []model.Transaction
	var patternInteractions []model.Interaction
	if p.cfg.IncludePatterns {
		entries := DefaultCatalog()
		if p.cfg.CatalogFile != "" {
			entries, err = LoadCatalog(p.cfg.CatalogFile)
			if err != nil {
				return nil, err
			}
		}
		catalog = BuildSeedCatalog(entries, p.cfg.Reference(), ctx)
		injector := NewPatternInjector(p.cfg, catalog, ctx)
		patternTxns, patternInteractions = injector.Inject()
		color.Cyan("  seed catalog: %d customers, %d products, %d pattern transactions",
			len(catalog.Customers), len(catalog.Products), len(patternTxns))
	}

	// Bulk population. Seed rows always come first in every table so chunk 0
	// carries the anchors.
	entities := NewEntityGenerator(p.cfg)
	bulkCount := p.cfg.CustomerCount
	if catalog != nil {
		bulkCount -= len(catalog.Customers)
	}
	if bulkCount < 0 {
		bulkCount = 0
	}
	customers := entities.Customers(ctx, bulkCount)
	products := entities.Products(ctx, p.cfg.ProductCount())

	var allCustomers []model.Customer
	var allProducts []model.Product
	if catalog != nil {
		allCustomers = append(allCustomers, catalog.Customers...)
		allProducts = append(allProducts, catalog.Products...)
	}
	allCustomers = append(allCustomers, customers...)
	allProducts = append(allProducts, products...)

	synth := NewTransactionSynthesizer(p.cfg, ctx, allCustomers)
	transactions := batch.Concat(batch.FromSlice(patternTxns), synth.Transactions())
	interactions := batch.Concat(batch.FromSlice(patternInteractions), synth.Interactions(allProducts))

	writer := &batch.Writer{
		Dir:       p.cfg.OutputDir,
		ChunkSize: p.cfg.BatchSize,
		Codec:     codec,
		Overwrite: p.cfg.OverwriteExisting,
		Retry:     batch.Policy{MaxAttempts: p.cfg.RetryAttempts, Delay: p.cfg.RetryDelay},
	}

	report := &RunReport{}
	if err := writeTable(report, writer, model.TableCustomers, batch.FromSlice(allCustomers)); err != nil {
		return report, err
	}
	if err := writeTable(report, writer, model.TableProducts, batch.FromSlice(allProducts)); err != nil {
		return report, err
	}
	if err := writeTable(report, writer, model.TableTransactions, transactions); err != nil {
		return report, err
	}
	if err := writeTable(report, writer, model.TableInteractions, interactions); err != nil {
		return report, err
	}

	report.Duration = time.Since(start)
	return report, nil
}

func writeTable[T any](report *RunReport, writer *batch.Writer, table string, cur *batch.Cursor[T]) error {
	tr, err := batch.WriteTable(writer, table, cur)
	if err != nil {
		return fmt.Errorf("failed to write table %s: %w", table, err)
	}
	if tr.Skipped {
		color.Yellow("  %s: artifacts already exist, skipping (use overwrite to regenerate)", table)
	} else if len(tr.FailedBatches) > 0 {
		color.Yellow("  %s: %d rows in %d artifacts, %d failed batches",
			table, tr.Rows, tr.Artifacts, len(tr.FailedBatches))
	} else {
		color.Green("  %s: %d rows in %d artifacts", table, tr.Rows, tr.Artifacts)
	}
	report.Tables = append(report.Tables, tr)
	return nil
}
