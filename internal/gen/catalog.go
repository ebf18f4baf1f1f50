package gen

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Lumos-Labs-HQ/relgen/internal/model"
	"gopkg.in/yaml.v3"
)

// CatalogEntry describes one (category, brand) block of hand-placed seed
// products.
type CatalogEntry struct {
	Category string  `yaml:"category"`
	Brand    string  `yaml:"brand"`
	Count    int     `yaml:"count"`
	MinPrice float64 `yaml:"min_price"`
	MaxPrice float64 `yaml:"max_price"`
}

// DefaultCatalog covers every category so each injected pattern has products
// to anchor on.
func DefaultCatalog() []CatalogEntry {
	return []CatalogEntry{
		{model.CategoryElectronics, "Apple", 5, 500, 2000},
		{model.CategoryElectronics, "Samsung", 5, 400, 1500},
		{model.CategoryElectronics, "Sony", 5, 300, 1200},
		{model.CategoryClothing, "Nike", 5, 50, 300},
		{model.CategoryClothing, "Adidas", 5, 40, 250},
		{model.CategoryHome, "IKEA", 5, 50, 500},
		{model.CategoryHome, "Wayfair", 5, 60, 600},
		{model.CategoryBooks, "Penguin", 3, 15, 50},
		{model.CategorySports, "Nike", 4, 30, 200},
		{model.CategoryBeauty, "Loreal", 3, 20, 100},
	}
}

// LoadCatalog reads seed product entries from a YAML file.
func LoadCatalog(path string) ([]CatalogEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	var entries []CatalogEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}
	for i, e := range entries {
		if e.Category == "" || e.Brand == "" || e.Count <= 0 {
			return nil, fmt.Errorf("catalog entry %d is incomplete: %+v", i, e)
		}
	}
	return entries, nil
}

// SeedCustomersPerSegment is the fixed number of hand-placed customers per
// segment.
const SeedCustomersPerSegment = 10

// SeedCatalog holds the deterministic anchor entities the pattern injector
// builds transactions against. Everything here is pure construction: the same
// inputs always produce byte-identical entities, independent of the master
// seed.
type SeedCatalog struct {
	Customers []model.Customer
	Products  []model.Product

	bySegment map[string][]*model.Customer
	products  *ProductIndex
}

// BuildSeedCatalog constructs the seed entities and records their derived
// side-attributes (brand affinity, category exclusions, low-engagement pins)
// in the generation context.
func BuildSeedCatalog(entries []CatalogEntry, ref time.Time, ctx *Context) *SeedCatalog {
	cat := &SeedCatalog{
		bySegment: make(map[string][]*model.Customer),
		products:  NewProductIndex(),
	}
	cat.buildCustomers(ref, ctx)
	cat.buildProducts(entries, ref, ctx)
	return cat
}

func (cat *SeedCatalog) buildCustomers(ref time.Time, ctx *Context) {
	// Preallocated so the per-segment pointers below stay valid.
	cat.Customers = make([]model.Customer, 0, len(model.Segments)*SeedCustomersPerSegment)
	for _, segment := range model.Segments {
		band := model.LTVRanges[segment]
		for i := 0; i < SeedCustomersPerSegment; i++ {
			// Spread ltv across the whole band so seed customers cover it
			// end to end.
			frac := float64(i) / float64(SeedCustomersPerSegment-1)
			c := model.Customer{
				CustomerID:       SeedID("customer", fmt.Sprintf("%s/%d", segment, i)),
				Email:            fmt.Sprintf("seed_%s_%d@example.com", segment, i),
				Name:             fmt.Sprintf("Seed %s Customer %d", titleSegment(segment), i),
				Segment:          segment,
				LTV:              Round2(band.Min + (band.Max-band.Min)*frac),
				RegistrationDate: ref.AddDate(0, 0, -(30 + i*33)),
				CreatedAt:        ref,
			}
			cat.Customers = append(cat.Customers, c)
			p := &cat.Customers[len(cat.Customers)-1]
			cat.bySegment[segment] = append(cat.bySegment[segment], p)

			highValue := segment == model.SegmentTopTier || segment == model.SegmentPremium
			if highValue {
				if i < 5 {
					ctx.BrandAffinity[c.CustomerID] = "Apple"
				} else {
					ctx.BrandAffinity[c.CustomerID] = "Samsung"
				}
				// The last two high-value customers per segment never buy
				// Electronics, anchoring the category-gap pattern.
				if i >= 8 {
					ctx.CategoryExclusions[c.CustomerID] = []string{model.CategoryElectronics}
				}
			}
			// Top-tier customers 5-7 are reserved for the churn-risk pattern:
			// the injector gives them 1-2 transactions and nothing else may.
			if segment == model.SegmentTopTier && i >= 5 && i <= 7 {
				ctx.LowEngagement[c.CustomerID] = true
			}
		}
	}
}

func (cat *SeedCatalog) buildProducts(entries []CatalogEntry, ref time.Time, ctx *Context) {
	total := 0
	for _, entry := range entries {
		total += entry.Count
	}
	cat.Products = make([]model.Product, 0, total)
	for _, entry := range entries {
		for i := 0; i < entry.Count; i++ {
			frac := float64(i+1) / float64(entry.Count+1)
			p := model.Product{
				ProductID:  SeedID("product", fmt.Sprintf("%s/%s/%d", entry.Category, entry.Brand, i)),
				Name:       fmt.Sprintf("%s %s Seed %d", entry.Brand, entry.Category, i+1),
				Category:   entry.Category,
				Brand:      entry.Brand,
				Price:      Round2(entry.MinPrice + (entry.MaxPrice-entry.MinPrice)*frac),
				LaunchDate: ref.AddDate(0, 0, -(60 + i*90)),
				CreatedAt:  ref,
			}
			cat.Products = append(cat.Products, p)
			ptr := &cat.Products[len(cat.Products)-1]
			cat.products.Add(ptr)
			ctx.Products.Add(ptr)
		}
	}
}

// Segment returns the seed customers of one segment in construction order.
func (cat *SeedCatalog) Segment(segment string) []*model.Customer {
	return cat.bySegment[segment]
}

// Category returns all seed products of one category in construction order.
func (cat *SeedCatalog) Category(category string) []*model.Product {
	return cat.products.Category(category)
}

// CategoryBrand returns the seed products of one (category, brand) block.
func (cat *SeedCatalog) CategoryBrand(category, brand string) []*model.Product {
	return cat.products.CategoryBrand(category, brand)
}

func titleSegment(segment string) string {
	parts := strings.Split(segment, "_")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}
