package gen

import (
	"time"

	"github.com/Lumos-Labs-HQ/relgen/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		CustomerCount: 300,
		Seed:          42,
		Offsets: config.StreamOffsets{
			Customers:    0x43,
			Products:     0x50,
			Transactions: 0x54,
			Interactions: 0x49,
			Patterns:     0x5A,
		},
		BatchSize:               100,
		OutputDir:               "data",
		Compression:             "snappy",
		IncludePatterns:         true,
		SegmentWeights:          []float64{0.10, 0.20, 0.30, 0.25, 0.15},
		InteractionsPerCustomer: 5,
		RetryAttempts:           1,
		ReferenceTime:           "2026-01-01T00:00:00Z",
	}
}

func testRef() time.Time {
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
}
