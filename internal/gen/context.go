package gen

import "github.com/Lumos-Labs-HQ/relgen/internal/model"

// Context bundles the per-customer derived state and product indices shared by
// the generation stages. It is populated while the seed catalog and bulk
// entities are built and treated as read-only afterwards; the injector and the
// synthesizer only consume it.
type Context struct {
	// BrandAffinity maps customer id to the single brand the customer is
	// biased toward, if any.
	BrandAffinity map[string]string

	// CategoryExclusions maps customer id to categories the customer never
	// purchases from.
	CategoryExclusions map[string][]string

	// LowEngagement marks customers whose entire transaction history is owned
	// by the pattern injector. The synthesizer skips them so injected
	// churn-risk patterns keep their low support counts.
	LowEngagement map[string]bool

	Products *ProductIndex
}

func NewContext() *Context {
	return &Context{
		BrandAffinity:      make(map[string]string),
		CategoryExclusions: make(map[string][]string),
		LowEngagement:      make(map[string]bool),
		Products:           NewProductIndex(),
	}
}

// Excluded reports whether the customer never buys from the category.
func (c *Context) Excluded(customerID, category string) bool {
	for _, ex := range c.CategoryExclusions[customerID] {
		if ex == category {
			return true
		}
	}
	return false
}

// ProductIndex is the two-level category -> brand -> products lookup built
// once during entity generation and read by every later stage.
type ProductIndex struct {
	byCategory      map[string][]*model.Product
	byBrand         map[string][]*model.Product
	byCategoryBrand map[string]map[string][]*model.Product
	all             []*model.Product
}

func NewProductIndex() *ProductIndex {
	return &ProductIndex{
		byCategory:      make(map[string][]*model.Product),
		byBrand:         make(map[string][]*model.Product),
		byCategoryBrand: make(map[string]map[string][]*model.Product),
	}
}

func (ix *ProductIndex) Add(p *model.Product) {
	ix.byCategory[p.Category] = append(ix.byCategory[p.Category], p)
	ix.byBrand[p.Brand] = append(ix.byBrand[p.Brand], p)
	brands := ix.byCategoryBrand[p.Category]
	if brands == nil {
		brands = make(map[string][]*model.Product)
		ix.byCategoryBrand[p.Category] = brands
	}
	brands[p.Brand] = append(brands[p.Brand], p)
	ix.all = append(ix.all, p)
}

func (ix *ProductIndex) Category(category string) []*model.Product {
	return ix.byCategory[category]
}

func (ix *ProductIndex) Brand(brand string) []*model.Product {
	return ix.byBrand[brand]
}

func (ix *ProductIndex) CategoryBrand(category, brand string) []*model.Product {
	return ix.byCategoryBrand[category][brand]
}

func (ix *ProductIndex) All() []*model.Product {
	return ix.all
}

func (ix *ProductIndex) Len() int {
	return len(ix.all)
}
