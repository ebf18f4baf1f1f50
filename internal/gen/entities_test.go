package gen

import (
	"math"
	"strings"
	"testing"

	"github.com/Lumos-Labs-HQ/relgen/internal/model"
)

func TestCustomersSegmentConvergence(t *testing.T) {
	cfg := testConfig()
	const n = 100_000
	customers := NewEntityGenerator(cfg).Customers(NewContext(), n)
	if len(customers) != n {
		t.Fatalf("expected %d customers, got %d", n, len(customers))
	}

	counts := make(map[string]int)
	for _, c := range customers {
		counts[c.Segment]++
	}
	for i, segment := range model.Segments {
		share := float64(counts[segment]) / n
		if math.Abs(share-cfg.SegmentWeights[i]) > 0.01 {
			t.Fatalf("segment %s share %f too far from weight %f", segment, share, cfg.SegmentWeights[i])
		}
	}
}

func TestCustomersFieldsWithinBands(t *testing.T) {
	customers := NewEntityGenerator(testConfig()).Customers(NewContext(), 1000)
	for _, c := range customers {
		band := model.LTVRanges[c.Segment]
		if c.LTV < band.Min || c.LTV > band.Max {
			t.Fatalf("ltv %f outside band for segment %s", c.LTV, c.Segment)
		}
		if !strings.Contains(c.Email, "@") {
			t.Fatalf("malformed email: %s", c.Email)
		}
		if c.Name == "" {
			t.Fatal("empty customer name")
		}
	}
}

func TestCustomersAreDeterministic(t *testing.T) {
	a := NewEntityGenerator(testConfig()).Customers(NewContext(), 500)
	b := NewEntityGenerator(testConfig()).Customers(NewContext(), 500)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("customer %d differs between runs", i)
		}
	}
}

func TestCustomersDerivedStateRates(t *testing.T) {
	ctx := NewContext()
	const n = 50_000
	customers := NewEntityGenerator(testConfig()).Customers(ctx, n)

	affinity := float64(len(ctx.BrandAffinity)) / n
	if math.Abs(affinity-0.30) > 0.02 {
		t.Fatalf("brand affinity rate %f too far from 0.30", affinity)
	}

	highValue := 0
	for _, c := range customers {
		if c.Segment == model.SegmentTopTier || c.Segment == model.SegmentPremium {
			highValue++
		}
	}
	exclusion := float64(len(ctx.CategoryExclusions)) / float64(highValue)
	if math.Abs(exclusion-0.20) > 0.03 {
		t.Fatalf("exclusion rate %f too far from 0.20", exclusion)
	}
}

func TestProductsWithinBandsAndIndexed(t *testing.T) {
	ctx := NewContext()
	const n = 2000
	products := NewEntityGenerator(testConfig()).Products(ctx, n)
	if len(products) != n {
		t.Fatalf("expected %d products, got %d", n, len(products))
	}
	if ctx.Products.Len() != n {
		t.Fatalf("index holds %d products, expected %d", ctx.Products.Len(), n)
	}

	for _, p := range products {
		band := model.PriceRanges[p.Category]
		if p.Price < band.Min || p.Price > band.Max {
			t.Fatalf("price %f outside band for category %s", p.Price, p.Category)
		}
		found := false
		for _, brand := range model.CategoryBrands[p.Category] {
			if brand == p.Brand {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("brand %s not valid for category %s", p.Brand, p.Category)
		}
	}

	// Index lookups agree with the generated slice.
	byCategory := 0
	for _, category := range model.Categories {
		byCategory += len(ctx.Products.Category(category))
	}
	if byCategory != n {
		t.Fatalf("category index covers %d products, expected %d", byCategory, n)
	}
}
