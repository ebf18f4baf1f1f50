package gen

import (
	"math/rand"
	"time"

	"github.com/Lumos-Labs-HQ/relgen/internal/batch"
	"github.com/Lumos-Labs-HQ/relgen/internal/config"
	"github.com/Lumos-Labs-HQ/relgen/internal/model"
)

// segmentBehavior drives transaction frequency and spend per segment.
type segmentBehavior struct {
	Frequency  float64
	Multiplier float64
}

var segmentBehaviors = map[string]segmentBehavior{
	model.SegmentTopTier:  {25, 3.0},
	model.SegmentPremium:  {15, 2.2},
	model.SegmentStandard: {8, 1.2},
	model.SegmentBasic:    {4, 0.8},
	model.SegmentNew:      {2, 0.6},
}

// Recency mixture: 60% of timestamps fall in the last 90 days, 30% in 90-180,
// 10% in 180-365.
var recencyWeights = []float64{0.60, 0.30, 0.10}

var recencyBuckets = [][2]int{{0, 90}, {90, 180}, {180, 365}}

// TransactionSynthesizer generates the bulk transaction and interaction
// volume for the full (seed + bulk) customer population. Rows are produced as
// a lazy batch sequence so the full target volume never sits in memory.
type TransactionSynthesizer struct {
	cfg       *config.Config
	ctx       *Context
	ref       time.Time
	customers []model.Customer
}

func NewTransactionSynthesizer(cfg *config.Config, ctx *Context, customers []model.Customer) *TransactionSynthesizer {
	return &TransactionSynthesizer{
		cfg:       cfg,
		ctx:       ctx,
		ref:       cfg.Reference(),
		customers: customers,
	}
}

// Transactions returns the bulk transaction sequence. Customers pinned by the
// pattern injector are skipped so low-engagement guarantees survive.
func (s *TransactionSynthesizer) Transactions() *batch.Cursor[model.Transaction] {
	return batch.NewCursor(func() func() ([]model.Transaction, bool) {
		r := Stream(s.cfg.Seed, s.cfg.Offsets.Transactions)
		i := 0
		return func() ([]model.Transaction, bool) {
			var rows []model.Transaction
			for i < len(s.customers) && len(rows) < s.cfg.BatchSize {
				c := &s.customers[i]
				i++
				if s.ctx.LowEngagement[c.CustomerID] {
					continue
				}
				rows = s.customerTransactions(r, c, rows)
			}
			if len(rows) == 0 {
				return nil, false
			}
			return rows, true
		}
	})
}

func (s *TransactionSynthesizer) customerTransactions(r *rand.Rand, c *model.Customer, rows []model.Transaction) []model.Transaction {
	behavior := segmentBehaviors[c.Segment]
	highValue := c.Segment == model.SegmentTopTier || c.Segment == model.SegmentPremium

	// 10% of high-value customers are low-engagement: valuable but nearly
	// silent, the shape churn-risk queries look for.
	var count int
	if highValue && r.Float64() < 0.10 {
		count = 1 + r.Intn(2)
	} else {
		count = Poisson(r, behavior.Frequency)
	}

	for t := 0; t < count; t++ {
		product := s.pickProduct(r, c)
		if product == nil {
			continue
		}
		ts := s.recencyTimestamp(r)
		channel := Pick(r, model.Channels)

		rows = append(rows, model.Transaction{
			TransactionID: NewID(r),
			CustomerID:    c.CustomerID,
			ProductID:     product.ProductID,
			Amount:        Round2(product.Price * behavior.Multiplier * Uniform(r, 0.7, 1.3)),
			Quantity:      int32(1 + r.Intn(3)),
			Timestamp:     ts,
			Channel:       channel,
			Status:        s.status(r),
		})

		// 30% of purchases pull a related product into the basket within the
		// following week.
		if r.Float64() < 0.30 {
			if companion := s.relatedProduct(r, c, product); companion != nil {
				rows = append(rows, model.Transaction{
					TransactionID: NewID(r),
					CustomerID:    c.CustomerID,
					ProductID:     companion.ProductID,
					Amount:        Round2(companion.Price * behavior.Multiplier),
					Quantity:      1,
					Timestamp:     ts.AddDate(0, 0, r.Intn(8)),
					Channel:       Pick(r, model.Channels),
					Status:        model.StatusCompleted,
				})
			}
		}

		// 40% of purchases spill into an affinity-linked category minutes
		// later, same session intent, same channel.
		if r.Float64() < 0.40 {
			if cross := s.crossCategoryProduct(r, c, product.Category); cross != nil {
				rows = append(rows, model.Transaction{
					TransactionID: NewID(r),
					CustomerID:    c.CustomerID,
					ProductID:     cross.ProductID,
					Amount:        Round2(cross.Price * behavior.Multiplier),
					Quantity:      1,
					Timestamp:     ts.Add(time.Duration(5+r.Intn(116)) * time.Minute),
					Channel:       channel,
					Status:        model.StatusCompleted,
				})
			}
		}
	}
	return rows
}

// pickProduct prefers the customer's affinity brand 60% of the time, honors
// category exclusions, and falls back to the unrestricted catalog.
func (s *TransactionSynthesizer) pickProduct(r *rand.Rand, c *model.Customer) *model.Product {
	if brand, ok := s.ctx.BrandAffinity[c.CustomerID]; ok && r.Float64() < 0.60 {
		if p := s.eligible(r, s.ctx.Products.Brand(brand), c.CustomerID); p != nil {
			return p
		}
	}
	// Uniform over non-excluded categories, in fixed category order.
	var categories []string
	for _, category := range model.Categories {
		if !s.ctx.Excluded(c.CustomerID, category) {
			categories = append(categories, category)
		}
	}
	if len(categories) > 0 {
		products := s.ctx.Products.Category(Pick(r, categories))
		if len(products) > 0 {
			return products[r.Intn(len(products))]
		}
	}
	all := s.ctx.Products.All()
	if len(all) == 0 {
		return nil
	}
	return all[r.Intn(len(all))]
}

// eligible picks a product from the slice whose category the customer does
// not exclude.
func (s *TransactionSynthesizer) eligible(r *rand.Rand, products []*model.Product, customerID string) *model.Product {
	var candidates []*model.Product
	for _, p := range products {
		if !s.ctx.Excluded(customerID, p.Category) {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	return candidates[r.Intn(len(candidates))]
}

// relatedProduct finds a basket companion: same category, different product.
func (s *TransactionSynthesizer) relatedProduct(r *rand.Rand, c *model.Customer, base *model.Product) *model.Product {
	products := s.ctx.Products.Category(base.Category)
	if len(products) < 2 {
		return nil
	}
	p := products[r.Intn(len(products))]
	if p.ProductID == base.ProductID {
		return nil
	}
	return p
}

// crossCategoryProduct samples from the categories affinity-linked to the
// purchased one, honoring exclusions.
func (s *TransactionSynthesizer) crossCategoryProduct(r *rand.Rand, c *model.Customer, category string) *model.Product {
	linked := model.CategoryAffinity[category]
	if len(linked) == 0 {
		return nil
	}
	target := Pick(r, linked)
	if s.ctx.Excluded(c.CustomerID, target) {
		return nil
	}
	products := s.ctx.Products.Category(target)
	if len(products) == 0 {
		return nil
	}
	return products[r.Intn(len(products))]
}

func (s *TransactionSynthesizer) recencyTimestamp(r *rand.Rand) time.Time {
	bucket := recencyBuckets[WeightedIndex(r, recencyWeights)]
	days := bucket[0] + r.Intn(bucket[1]-bucket[0])
	return s.ref.AddDate(0, 0, -days).Add(-time.Duration(r.Intn(86400)) * time.Second)
}

func (s *TransactionSynthesizer) status(r *rand.Rand) string {
	if r.Float64() < 0.90 {
		return model.StatusCompleted
	}
	return model.StatusCancelled
}

// Interactions returns the behavioral event sequence: a configured multiple
// of the customer count, uniformly sampled customers and products.
func (s *TransactionSynthesizer) Interactions(products []model.Product) *batch.Cursor[model.Interaction] {
	total := s.cfg.InteractionsPerCustomer * len(s.customers)
	return batch.NewCursor(func() func() ([]model.Interaction, bool) {
		r := Stream(s.cfg.Seed, s.cfg.Offsets.Interactions)
		emitted := 0
		return func() ([]model.Interaction, bool) {
			if emitted >= total || len(products) == 0 || len(s.customers) == 0 {
				return nil, false
			}
			n := s.cfg.BatchSize
			if remaining := total - emitted; remaining < n {
				n = remaining
			}
			rows := make([]model.Interaction, 0, n)
			for j := 0; j < n; j++ {
				rows = append(rows, model.Interaction{
					InteractionID: NewID(r),
					CustomerID:    s.customers[r.Intn(len(s.customers))].CustomerID,
					ProductID:     products[r.Intn(len(products))].ProductID,
					Type:          Pick(r, model.InteractionTypes),
					Timestamp:     s.ref.Add(-time.Duration(r.Intn(180*86400)) * time.Second),
					Duration:      int32(10 + r.Intn(291)),
					Device:        Pick(r, model.Devices),
					SessionID:     NewID(r),
				})
			}
			emitted += n
			return rows, true
		}
	})
}
