package gen

import (
	"math/rand"
	"time"

	"github.com/Lumos-Labs-HQ/relgen/internal/config"
	"github.com/Lumos-Labs-HQ/relgen/internal/model"
	"github.com/fatih/color"
)

// PatternInjector builds the transactions that guarantee the named structural
// patterns exist in the output. Which customers and products participate is
// fully deterministic; the pattern stream only jitters amounts, channels and
// day offsets within each pattern.
type PatternInjector struct {
	catalog *SeedCatalog
	ctx     *Context
	rng     *rand.Rand
	ref     time.Time
}

func NewPatternInjector(cfg *config.Config, catalog *SeedCatalog, ctx *Context) *PatternInjector {
	return &PatternInjector{
		catalog: catalog,
		ctx:     ctx,
		rng:     Stream(cfg.Seed, cfg.Offsets.Patterns),
		ref:     cfg.Reference(),
	}
}

// Inject realizes every pattern against the seed entities. Patterns whose
// preconditions the catalog cannot satisfy are skipped with a warning, never
// a failure.
func (in *PatternInjector) Inject() ([]model.Transaction, []model.Interaction) {
	var txns []model.Transaction
	txns = append(txns, in.brandLoyalty()...)
	txns = append(txns, in.recommendationChain()...)
	txns = append(txns, in.productAffinity()...)
	txns = append(txns, in.categoryExpansion()...)
	txns = append(txns, in.categoryGap()...)
	txns = append(txns, in.basketWindow()...)
	txns = append(txns, in.churnRisk()...)
	txns = append(txns, in.categoryDiversity()...)
	txns = append(txns, in.segmentCoverage()...)
	return txns, in.seedInteractions()
}

// brandLoyalty: five top-tier customers each purchase three products of the
// same brand, so same-brand repeat-purchase queries always match.
func (in *PatternInjector) brandLoyalty() []model.Transaction {
	customers := in.catalog.Segment(model.SegmentTopTier)
	products := in.catalog.CategoryBrand(model.CategoryElectronics, "Apple")
	if !in.need("brand loyalty", len(customers) >= 5 && len(products) >= 3) {
		return nil
	}

	var txns []model.Transaction
	for _, c := range customers[:5] {
		for _, p := range products[:3] {
			txns = append(txns, in.txn(c, p, 10+in.rng.Intn(51)))
		}
	}
	return txns
}

// recommendationChain: four customers and three products forming the
// overlapping path (C0,P0),(C1,P0),(C1,P1),(C2,P1),(C2,P2),(C3,P2), which
// multi-hop collaborative-filtering traversals depend on.
func (in *PatternInjector) recommendationChain() []model.Transaction {
	customers := in.catalog.Segment(model.SegmentTopTier)
	products := in.catalog.CategoryBrand(model.CategoryElectronics, "Samsung")
	if !in.need("recommendation chain", len(customers) >= 4 && len(products) >= 3) {
		return nil
	}

	edges := [][2]int{{0, 0}, {1, 0}, {1, 1}, {2, 1}, {2, 2}, {3, 2}}
	txns := make([]model.Transaction, 0, len(edges))
	for _, e := range edges {
		txns = append(txns, in.txn(customers[e[0]], products[e[1]], 1+in.rng.Intn(90)))
	}
	return txns
}

// productAffinity: premium customers repeatedly buying the same brand's
// products, feeding frequently-bought-together queries.
func (in *PatternInjector) productAffinity() []model.Transaction {
	customers := in.catalog.Segment(model.SegmentPremium)
	products := in.catalog.CategoryBrand(model.CategoryElectronics, "Sony")
	if !in.need("product affinity", len(customers) >= 5 && len(products) >= 3) {
		return nil
	}

	var txns []model.Transaction
	for _, c := range customers[:5] {
		for _, p := range products[:2+in.rng.Intn(2)] {
			txns = append(txns, in.txn(c, p, 1+in.rng.Intn(90)))
		}
	}
	return txns
}

// categoryExpansion: electronics buyers who also purchased clothing and home
// goods, for bought-X-also-bought-Y queries.
func (in *PatternInjector) categoryExpansion() []model.Transaction {
	customers := in.catalog.Segment(model.SegmentTopTier)
	clothing := in.catalog.CategoryBrand(model.CategoryClothing, "Nike")
	home := in.catalog.CategoryBrand(model.CategoryHome, "IKEA")
	if !in.need("category expansion", len(customers) >= 3 && len(clothing) > 0 && len(home) > 0) {
		return nil
	}

	var txns []model.Transaction
	for _, c := range customers[:3] {
		txns = append(txns, in.txn(c, clothing[0], 1+in.rng.Intn(90)))
		txns = append(txns, in.txn(c, home[0], 1+in.rng.Intn(90)))
	}
	return txns
}

// categoryGap: the high-value customers whose exclusion list names
// Electronics buy one product from every other category, so "has not bought
// X" queries have exact matches.
func (in *PatternInjector) categoryGap() []model.Transaction {
	var txns []model.Transaction
	for _, segment := range []string{model.SegmentTopTier, model.SegmentPremium} {
		customers := in.catalog.Segment(segment)
		if !in.need("category gap", len(customers) >= SeedCustomersPerSegment) {
			continue
		}
		for _, c := range customers[8:10] {
			for _, category := range model.Categories {
				if in.ctx.Excluded(c.CustomerID, category) {
					continue
				}
				products := in.catalog.Category(category)
				if len(products) == 0 {
					continue
				}
				txns = append(txns, in.txn(c, Pick(in.rng, products), 1+in.rng.Intn(90)))
			}
		}
	}
	return txns
}

// basketWindow: customers purchasing two to three related products spaced two
// days apart, all inside a seven-day window.
func (in *PatternInjector) basketWindow() []model.Transaction {
	customers := in.catalog.Segment(model.SegmentStandard)
	products := in.catalog.CategoryBrand(model.CategoryClothing, "Adidas")
	if !in.need("basket window", len(customers) >= 5 && len(products) >= 2) {
		return nil
	}

	var txns []model.Transaction
	for _, c := range customers[:5] {
		base := 30 + in.rng.Intn(31)
		n := len(products)
		if n > 3 {
			n = 3
		}
		for i, p := range products[:n] {
			txns = append(txns, in.txn(c, p, base-i*2))
		}
	}
	return txns
}

// churnRisk: high-value customers with only one or two transactions. These
// customers are pinned in the context so the synthesizer leaves them alone.
func (in *PatternInjector) churnRisk() []model.Transaction {
	customers := in.catalog.Segment(model.SegmentTopTier)
	pool := append([]*model.Product{},
		in.catalog.CategoryBrand(model.CategoryElectronics, "Apple")...)
	pool = append(pool, in.catalog.CategoryBrand(model.CategoryElectronics, "Samsung")...)
	if !in.need("churn risk", len(customers) >= 8 && len(pool) >= 2) {
		return nil
	}

	var txns []model.Transaction
	for _, c := range customers[5:8] {
		count := 1 + in.rng.Intn(2)
		for i := 0; i < count; i++ {
			txns = append(txns, in.txn(c, pool[i], 1+in.rng.Intn(90)))
		}
	}
	return txns
}

// categoryDiversity: customers spanning at least four distinct categories.
func (in *PatternInjector) categoryDiversity() []model.Transaction {
	customers := in.catalog.Segment(model.SegmentPremium)
	if !in.need("category diversity", len(customers) >= 8) {
		return nil
	}

	blocks := [][2]string{
		{model.CategoryElectronics, "Apple"},
		{model.CategoryClothing, "Nike"},
		{model.CategoryBooks, "Penguin"},
		{model.CategorySports, "Nike"},
		{model.CategoryBeauty, "Loreal"},
	}
	var txns []model.Transaction
	for _, c := range customers[5:8] {
		for _, b := range blocks {
			products := in.catalog.CategoryBrand(b[0], b[1])
			if len(products) == 0 {
				continue
			}
			txns = append(txns, in.txn(c, Pick(in.rng, products), 1+in.rng.Intn(90)))
		}
	}
	return txns
}

// segmentCoverage: cheap purchases for basic and new customers so
// segment-level rollups never come back empty.
func (in *PatternInjector) segmentCoverage() []model.Transaction {
	wayfair := in.catalog.CategoryBrand(model.CategoryHome, "Wayfair")
	adidas := in.catalog.CategoryBrand(model.CategoryClothing, "Adidas")
	if !in.need("segment coverage", len(wayfair) > 0 && len(adidas) > 0) {
		return nil
	}

	var txns []model.Transaction
	for _, segment := range []string{model.SegmentBasic, model.SegmentNew} {
		customers := in.catalog.Segment(segment)
		if len(customers) < 5 {
			continue
		}
		for _, c := range customers[:5] {
			txns = append(txns, in.txn(c, Pick(in.rng, wayfair), 1+in.rng.Intn(90)))
			txns = append(txns, in.txn(c, Pick(in.rng, adidas), 1+in.rng.Intn(90)))
		}
	}
	return txns
}

// seedInteractions gives every seed customer 5-10 behavioral events against
// seed products.
func (in *PatternInjector) seedInteractions() []model.Interaction {
	products := in.catalog.Products
	if len(products) == 0 {
		return nil
	}

	var interactions []model.Interaction
	for i := range in.catalog.Customers {
		c := &in.catalog.Customers[i]
		count := 5 + in.rng.Intn(6)
		for j := 0; j < count; j++ {
			interactions = append(interactions, model.Interaction{
				InteractionID: NewID(in.rng),
				CustomerID:    c.CustomerID,
				ProductID:     products[in.rng.Intn(len(products))].ProductID,
				Type:          Pick(in.rng, model.InteractionTypes),
				Timestamp:     in.ref.Add(-time.Duration(in.rng.Intn(180*86400)) * time.Second),
				Duration:      int32(10 + in.rng.Intn(291)),
				Device:        Pick(in.rng, model.Devices),
				SessionID:     NewID(in.rng),
			})
		}
	}
	return interactions
}

func (in *PatternInjector) txn(c *model.Customer, p *model.Product, daysAgo int) model.Transaction {
	return model.Transaction{
		TransactionID: NewID(in.rng),
		CustomerID:    c.CustomerID,
		ProductID:     p.ProductID,
		Amount:        Round2(p.Price * Uniform(in.rng, 0.9, 1.3)),
		Quantity:      int32(1 + in.rng.Intn(2)),
		Timestamp:     in.ref.AddDate(0, 0, -daysAgo),
		Channel:       Pick(in.rng, model.Channels),
		Status:        model.StatusCompleted,
	}
}

// need logs and skips a pattern whose seed entities are missing instead of
// failing the run.
func (in *PatternInjector) need(pattern string, ok bool) bool {
	if !ok {
		color.Yellow("  skipping %s pattern: not enough seed entities", pattern)
	}
	return ok
}
