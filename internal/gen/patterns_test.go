package gen

import (
	"reflect"
	"testing"
	"time"

	"github.com/Lumos-Labs-HQ/relgen/internal/model"
)

type injected struct {
	cat          *SeedCatalog
	ctx          *Context
	txns         []model.Transaction
	interactions []model.Interaction
	byProduct    map[string]*model.Product
}

func inject(t *testing.T) *injected {
	t.Helper()
	cfg := testConfig()
	ctx := NewContext()
	cat := BuildSeedCatalog(DefaultCatalog(), cfg.Reference(), ctx)
	txns, interactions := NewPatternInjector(cfg, cat, ctx).Inject()

	byProduct := make(map[string]*model.Product)
	for i := range cat.Products {
		byProduct[cat.Products[i].ProductID] = &cat.Products[i]
	}
	return &injected{cat: cat, ctx: ctx, txns: txns, interactions: interactions, byProduct: byProduct}
}

func (in *injected) customerTxns(customerID string) []model.Transaction {
	var out []model.Transaction
	for _, txn := range in.txns {
		if txn.CustomerID == customerID {
			out = append(out, txn)
		}
	}
	return out
}

func TestBrandLoyaltyPattern(t *testing.T) {
	in := inject(t)
	for i, c := range in.cat.Segment(model.SegmentTopTier)[:5] {
		distinct := make(map[string]bool)
		for _, txn := range in.customerTxns(c.CustomerID) {
			if p := in.byProduct[txn.ProductID]; p.Brand == "Apple" {
				distinct[p.ProductID] = true
			}
		}
		if len(distinct) < 3 {
			t.Fatalf("top-tier customer %d bought %d distinct Apple products, expected >= 3", i, len(distinct))
		}
	}
}

func TestRecommendationChainEdges(t *testing.T) {
	in := inject(t)
	customers := in.cat.Segment(model.SegmentTopTier)[:4]
	products := in.cat.CategoryBrand(model.CategoryElectronics, "Samsung")[:3]

	customerIdx := make(map[string]int)
	for i, c := range customers {
		customerIdx[c.CustomerID] = i
	}
	productIdx := make(map[string]int)
	for i, p := range products {
		productIdx[p.ProductID] = i
	}

	var edges [][2]int
	for _, txn := range in.txns {
		ci, okC := customerIdx[txn.CustomerID]
		pi, okP := productIdx[txn.ProductID]
		if okC && okP {
			edges = append(edges, [2]int{ci, pi})
		}
	}

	want := [][2]int{{0, 0}, {1, 0}, {1, 1}, {2, 1}, {2, 2}, {3, 2}}
	if !reflect.DeepEqual(edges, want) {
		t.Fatalf("chain edges %v, expected %v", edges, want)
	}
}

func TestChurnRiskPattern(t *testing.T) {
	in := inject(t)
	for i, c := range in.cat.Segment(model.SegmentTopTier)[5:8] {
		if !in.ctx.LowEngagement[c.CustomerID] {
			t.Fatalf("churn-risk customer %d not pinned as low engagement", i+5)
		}
		got := len(in.customerTxns(c.CustomerID))
		if got < 1 || got > 2 {
			t.Fatalf("churn-risk customer %d has %d transactions, expected 1-2", i+5, got)
		}
	}
}

func TestCategoryGapPattern(t *testing.T) {
	in := inject(t)
	for _, segment := range []string{model.SegmentTopTier, model.SegmentPremium} {
		for i, c := range in.cat.Segment(segment)[8:10] {
			categories := make(map[string]bool)
			for _, txn := range in.customerTxns(c.CustomerID) {
				categories[in.byProduct[txn.ProductID].Category] = true
			}
			if categories[model.CategoryElectronics] {
				t.Fatalf("%s customer %d bought Electronics despite exclusion", segment, i+8)
			}
			for _, category := range model.Categories {
				if category == model.CategoryElectronics {
					continue
				}
				if !categories[category] {
					t.Fatalf("%s customer %d missing gap purchase in %s", segment, i+8, category)
				}
			}
		}
	}
}

func TestBasketWindowPattern(t *testing.T) {
	in := inject(t)
	for i, c := range in.cat.Segment(model.SegmentStandard)[:5] {
		var stamps []time.Time
		for _, txn := range in.customerTxns(c.CustomerID) {
			if in.byProduct[txn.ProductID].Brand == "Adidas" {
				stamps = append(stamps, txn.Timestamp)
			}
		}
		if len(stamps) < 2 {
			t.Fatalf("standard customer %d has %d basket purchases, expected >= 2", i, len(stamps))
		}
		min, max := stamps[0], stamps[0]
		for _, ts := range stamps[1:] {
			if ts.Before(min) {
				min = ts
			}
			if ts.After(max) {
				max = ts
			}
		}
		if max.Sub(min) > 7*24*time.Hour {
			t.Fatalf("standard customer %d basket spans %s, expected <= 7 days", i, max.Sub(min))
		}
	}
}

func TestCategoryDiversityPattern(t *testing.T) {
	in := inject(t)
	for i, c := range in.cat.Segment(model.SegmentPremium)[5:8] {
		categories := make(map[string]bool)
		for _, txn := range in.customerTxns(c.CustomerID) {
			categories[in.byProduct[txn.ProductID].Category] = true
		}
		if len(categories) < 4 {
			t.Fatalf("premium customer %d spans %d categories, expected >= 4", i+5, len(categories))
		}
	}
}

func TestSegmentCoveragePattern(t *testing.T) {
	in := inject(t)
	for _, segment := range []string{model.SegmentBasic, model.SegmentNew} {
		for i, c := range in.cat.Segment(segment)[:5] {
			if len(in.customerTxns(c.CustomerID)) == 0 {
				t.Fatalf("%s customer %d has no transactions", segment, i)
			}
		}
	}
}

func TestSeedInteractionsPerCustomer(t *testing.T) {
	in := inject(t)
	counts := make(map[string]int)
	for _, event := range in.interactions {
		counts[event.CustomerID]++
	}
	for i, c := range in.cat.Customers {
		got := counts[c.CustomerID]
		if got < 5 || got > 10 {
			t.Fatalf("seed customer %d has %d interactions, expected 5-10", i, got)
		}
	}
}

func TestInjectIsDeterministic(t *testing.T) {
	a := inject(t)
	b := inject(t)
	if !reflect.DeepEqual(a.txns, b.txns) {
		t.Fatal("pattern transactions differ between identical runs")
	}
	if !reflect.DeepEqual(a.interactions, b.interactions) {
		t.Fatal("pattern interactions differ between identical runs")
	}
}

func TestInjectSkipsOnSparseCatalog(t *testing.T) {
	cfg := testConfig()
	ctx := NewContext()
	cat := BuildSeedCatalog([]CatalogEntry{
		{Category: model.CategoryElectronics, Brand: "Apple", Count: 1, MinPrice: 500, MaxPrice: 600},
	}, cfg.Reference(), ctx)

	txns, _ := NewPatternInjector(cfg, cat, ctx).Inject()
	for _, txn := range txns {
		if txn.CustomerID == "" || txn.ProductID == "" {
			t.Fatal("sparse catalog produced a malformed transaction")
		}
	}
}
