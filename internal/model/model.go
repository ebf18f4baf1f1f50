package model

import "time"

// Customer segments, ordered. Weight vectors in config follow this order.
const (
	SegmentTopTier  = "top_tier"
	SegmentPremium  = "premium"
	SegmentStandard = "standard"
	SegmentBasic    = "basic"
	SegmentNew      = "new"
)

var Segments = []string{SegmentTopTier, SegmentPremium, SegmentStandard, SegmentBasic, SegmentNew}

// LTVRange is the lifetime-value band assigned to a segment.
type LTVRange struct {
	Min float64
	Max float64
}

var LTVRanges = map[string]LTVRange{
	SegmentTopTier:  {8000, 30000},
	SegmentPremium:  {5000, 12000},
	SegmentStandard: {800, 3000},
	SegmentBasic:    {200, 1000},
	SegmentNew:      {50, 400},
}

// Product categories, ordered. Sampling iterates this slice, never map keys,
// so the draw order is stable across runs.
const (
	CategoryElectronics = "Electronics"
	CategoryClothing    = "Clothing"
	CategoryHome        = "Home"
	CategoryBooks       = "Books"
	CategorySports      = "Sports"
	CategoryBeauty      = "Beauty"
)

var Categories = []string{
	CategoryElectronics,
	CategoryClothing,
	CategoryHome,
	CategoryBooks,
	CategorySports,
	CategoryBeauty,
}

// PriceRange is the configured price band for a category.
type PriceRange struct {
	Min float64
	Max float64
}

var PriceRanges = map[string]PriceRange{
	CategoryElectronics: {50, 2000},
	CategoryClothing:    {20, 500},
	CategoryHome:        {25, 800},
	CategoryBooks:       {10, 100},
	CategorySports:      {30, 600},
	CategoryBeauty:      {15, 200},
}

var CategoryBrands = map[string][]string{
	CategoryElectronics: {"Apple", "Samsung", "Sony", "Dell", "HP"},
	CategoryClothing:    {"Nike", "Adidas", "Zara", "Gap", "Levi"},
	CategoryHome:        {"IKEA", "Wayfair", "Target", "HomeDepot"},
	CategoryBooks:       {"Penguin", "Harper", "Simon", "Random"},
	CategorySports:      {"Nike", "Adidas", "Wilson", "Spalding"},
	CategoryBeauty:      {"Loreal", "Maybelline", "MAC", "Sephora"},
}

// CategoryAffinity links a purchased category to the categories a follow-up
// cross-category purchase is drawn from.
var CategoryAffinity = map[string][]string{
	CategoryElectronics: {CategoryHome, CategoryClothing},
	CategoryClothing:    {CategoryBeauty},
	CategoryHome:        {CategoryElectronics},
	CategorySports:      {CategoryClothing},
	CategoryBeauty:      {CategoryClothing},
	CategoryBooks:       {},
}

const (
	ChannelWeb   = "web"
	ChannelApp   = "app"
	ChannelStore = "store"
)

var Channels = []string{ChannelWeb, ChannelApp, ChannelStore}

const (
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

var InteractionTypes = []string{"view", "click", "search", "cart_add"}

var Devices = []string{"desktop", "mobile", "tablet"}

type Customer struct {
	CustomerID       string    `parquet:"customer_id" json:"customer_id"`
	Email            string    `parquet:"email" json:"email"`
	Name             string    `parquet:"name" json:"name"`
	Segment          string    `parquet:"segment" json:"segment"`
	LTV              float64   `parquet:"ltv" json:"ltv"`
	RegistrationDate time.Time `parquet:"registration_date" json:"registration_date"`
	CreatedAt        time.Time `parquet:"created_at" json:"created_at"`
}

type Product struct {
	ProductID  string    `parquet:"product_id" json:"product_id"`
	Name       string    `parquet:"name" json:"name"`
	Category   string    `parquet:"category" json:"category"`
	Brand      string    `parquet:"brand" json:"brand"`
	Price      float64   `parquet:"price" json:"price"`
	LaunchDate time.Time `parquet:"launch_date" json:"launch_date"`
	CreatedAt  time.Time `parquet:"created_at" json:"created_at"`
}

type Transaction struct {
	TransactionID string    `parquet:"transaction_id" json:"transaction_id"`
	CustomerID    string    `parquet:"customer_id" json:"customer_id"`
	ProductID     string    `parquet:"product_id" json:"product_id"`
	Amount        float64   `parquet:"amount" json:"amount"`
	Quantity      int32     `parquet:"quantity" json:"quantity"`
	Timestamp     time.Time `parquet:"timestamp" json:"timestamp"`
	Channel       string    `parquet:"channel" json:"channel"`
	Status        string    `parquet:"status" json:"status"`
}

type Interaction struct {
	InteractionID string    `parquet:"interaction_id" json:"interaction_id"`
	CustomerID    string    `parquet:"customer_id" json:"customer_id"`
	ProductID     string    `parquet:"product_id" json:"product_id"`
	Type          string    `parquet:"type" json:"type"`
	Timestamp     time.Time `parquet:"timestamp" json:"timestamp"`
	Duration      int32     `parquet:"duration" json:"duration"`
	Device        string    `parquet:"device" json:"device"`
	SessionID     string    `parquet:"session_id" json:"session_id"`
}

// Table names in write order. The loader consumes them in the same order so
// entity tables land before the tables that reference them.
const (
	TableCustomers    = "customers"
	TableProducts     = "products"
	TableTransactions = "transactions"
	TableInteractions = "interactions"
)

var Tables = []string{TableCustomers, TableProducts, TableTransactions, TableInteractions}
