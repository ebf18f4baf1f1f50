package gen

import (
	"fmt"
	"time"

	"github.com/Lumos-Labs-HQ/relgen/internal/config"
	"github.com/Lumos-Labs-HQ/relgen/internal/model"
)

var premiumAffinityBrands = []string{"Apple", "Sony", "Nike", "Samsung"}

var valueAffinityBrands = []string{"HP", "Dell", "Gap", "Adidas"}

// EntityGenerator produces the bulk customer and product populations. Each
// entity type draws from its own named stream, so the output is identical no
// matter which other stages run.
type EntityGenerator struct {
	cfg *config.Config
	ref time.Time
}

func NewEntityGenerator(cfg *config.Config) *EntityGenerator {
	return &EntityGenerator{cfg: cfg, ref: cfg.Reference()}
}

// Customers generates the bulk customer population and records brand affinity
// and category exclusions in the context.
func (g *EntityGenerator) Customers(ctx *Context, count int) []model.Customer {
	r := Stream(g.cfg.Seed, g.cfg.Offsets.Customers)
	customers := make([]model.Customer, 0, count)

	for i := 0; i < count; i++ {
		segment := model.Segments[WeightedIndex(r, g.cfg.SegmentWeights)]
		band := model.LTVRanges[segment]
		name := FakeName(r)

		c := model.Customer{
			CustomerID:       NewID(r),
			Email:            FakeEmail(r, name, i),
			Name:             name,
			Segment:          segment,
			LTV:              Round2(Uniform(r, band.Min, band.Max)),
			RegistrationDate: g.cohortDate(i),
			CreatedAt:        g.ref,
		}
		customers = append(customers, c)

		highValue := segment == model.SegmentTopTier || segment == model.SegmentPremium

		// 30% of customers develop a single brand loyalty, assigned once here
		// and never mutated.
		if r.Float64() < 0.30 {
			if highValue {
				ctx.BrandAffinity[c.CustomerID] = Pick(r, premiumAffinityBrands)
			} else {
				ctx.BrandAffinity[c.CustomerID] = Pick(r, valueAffinityBrands)
			}
		}
		// 20% of high-value customers never buy Electronics, feeding the
		// "customers who have not bought X" gap queries.
		if highValue && r.Float64() < 0.20 {
			ctx.CategoryExclusions[c.CustomerID] = []string{model.CategoryElectronics}
		}
	}
	return customers
}

// Products generates the bulk product catalog and adds every product to the
// shared category/brand index.
func (g *EntityGenerator) Products(ctx *Context, count int) []model.Product {
	r := Stream(g.cfg.Seed, g.cfg.Offsets.Products)
	// Preallocated so index pointers into the slice stay valid.
	products := make([]model.Product, 0, count)

	for i := 0; i < count; i++ {
		category := Pick(r, model.Categories)
		brand := Pick(r, model.CategoryBrands[category])
		band := model.PriceRanges[category]

		p := model.Product{
			ProductID:  NewID(r),
			Name:       fmt.Sprintf("%s %s Product %d", brand, category, i+1),
			Category:   category,
			Brand:      brand,
			Price:      Round2(Uniform(r, band.Min, band.Max)),
			LaunchDate: g.ref.AddDate(0, 0, -r.Intn(3*365)),
			CreatedAt:  g.ref,
		}
		products = append(products, p)
		ctx.Products.Add(&products[len(products)-1])
	}
	return products
}

// cohortDate spreads registrations across 12 monthly cohorts over the last
// year.
func (g *EntityGenerator) cohortDate(index int) time.Time {
	cohortMonth := index % 12
	return g.ref.AddDate(0, 0, -(365 - cohortMonth*30))
}
