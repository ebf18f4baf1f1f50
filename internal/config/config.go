package config

import (
	"fmt"
	"math"
	"time"

	"github.com/Lumos-Labs-HQ/relgen/internal/model"
	"github.com/spf13/viper"
)

// Scale tiers accepted by the generate command. The config value itself may be
// any positive count; the tier set only constrains the CLI flag.
var SupportedScales = []int{1_000_000, 10_000_000, 100_000_000}

var SupportedCompressions = []string{"snappy", "gzip", "zstd", "lz4", "none"}

// StreamOffsets derive one independent pseudorandom stream per entity type from
// the master seed, so reruns reproduce identical output regardless of which
// stages ran or in what order.
type StreamOffsets struct {
	Customers    int64 `json:"customers" mapstructure:"customers"`
	Products     int64 `json:"products" mapstructure:"products"`
	Transactions int64 `json:"transactions" mapstructure:"transactions"`
	Interactions int64 `json:"interactions" mapstructure:"interactions"`
	Patterns     int64 `json:"patterns" mapstructure:"patterns"`
}

type Config struct {
	CustomerCount           int           `json:"customer_count" mapstructure:"customer_count"`
	Seed                    int64         `json:"seed" mapstructure:"seed"`
	Offsets                 StreamOffsets `json:"offsets" mapstructure:"offsets"`
	BatchSize               int           `json:"batch_size" mapstructure:"batch_size"`
	OutputDir               string        `json:"output_dir" mapstructure:"output_dir"`
	Compression             string        `json:"compression" mapstructure:"compression"`
	OverwriteExisting       bool          `json:"overwrite_existing" mapstructure:"overwrite_existing"`
	IncludePatterns         bool          `json:"include_patterns" mapstructure:"include_patterns"`
	SegmentWeights          []float64     `json:"segment_weights" mapstructure:"segment_weights"`
	InteractionsPerCustomer int           `json:"interactions_per_customer" mapstructure:"interactions_per_customer"`
	RetryAttempts           int           `json:"retry_attempts" mapstructure:"retry_attempts"`
	RetryDelay              time.Duration `json:"retry_delay" mapstructure:"retry_delay"`
	CatalogFile             string        `json:"catalog_file" mapstructure:"catalog_file"`

	// ReferenceTime anchors every relative timestamp. Left empty it defaults to
	// the current UTC midnight, so a rerun with identical configuration on the
	// same day produces byte-identical artifacts.
	ReferenceTime string `json:"reference_time" mapstructure:"reference_time"`
}

func Load() (*Config, error) {
	bindEnvAliases()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// bindEnvAliases maps the environment variable names the data pipeline has
// always used onto the config keys.
func bindEnvAliases() {
	viper.BindEnv("customer_count", "CUSTOMER_SCALE")
	viper.BindEnv("seed", "RANDOM_SEED")
	viper.BindEnv("batch_size", "BATCH_FILE_SIZE")
	viper.BindEnv("output_dir", "DATA_OUTPUT_DIR")
	viper.BindEnv("compression", "PARQUET_COMPRESSION")
	viper.BindEnv("overwrite_existing", "OVERWRITE_EXISTING_DATA")
	viper.BindEnv("include_patterns", "GENERATE_SEED_PATTERNS")
	viper.BindEnv("reference_time", "REFERENCE_TIME")
	viper.BindEnv("retry_attempts", "INGESTION_RETRY_ATTEMPTS")
	viper.BindEnv("retry_delay", "INGESTION_RETRY_DELAY")
	viper.BindEnv("catalog_file", "SEED_CATALOG_FILE")
}

func (c *Config) applyDefaults() {
	if c.CustomerCount == 0 {
		c.CustomerCount = 1_000_000
	}
	if c.Seed == 0 {
		c.Seed = 42
	}
	if c.Offsets == (StreamOffsets{}) {
		c.Offsets = StreamOffsets{
			Customers:    0x43,
			Products:     0x50,
			Transactions: 0x54,
			Interactions: 0x49,
			Patterns:     0x5A,
		}
	}
	if c.BatchSize == 0 {
		c.BatchSize = 100_000
	}
	if c.OutputDir == "" {
		c.OutputDir = "data"
	}
	if c.Compression == "" {
		c.Compression = "snappy"
	}
	if !viper.IsSet("include_patterns") {
		c.IncludePatterns = true
	}
	if len(c.SegmentWeights) == 0 {
		c.SegmentWeights = []float64{0.10, 0.20, 0.30, 0.25, 0.15}
	}
	if c.InteractionsPerCustomer == 0 {
		c.InteractionsPerCustomer = 25
	}
	if c.RetryAttempts == 0 {
		c.RetryAttempts = 3
	}
	if c.RetryDelay == 0 {
		c.RetryDelay = 5 * time.Second
	}
}

// Validate reports configuration errors before any generation starts.
func (c *Config) Validate() error {
	if c.CustomerCount <= 0 {
		return fmt.Errorf("customer_count must be positive, got %d", c.CustomerCount)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive, got %d", c.BatchSize)
	}
	if len(c.SegmentWeights) != len(model.Segments) {
		return fmt.Errorf("segment_weights has %d entries, expected %d (one per segment)",
			len(c.SegmentWeights), len(model.Segments))
	}
	var sum float64
	for i, w := range c.SegmentWeights {
		if w < 0 {
			return fmt.Errorf("segment_weights[%d] is negative: %f", i, w)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-6 {
		return fmt.Errorf("segment_weights must sum to 1.0, got %f", sum)
	}
	supported := false
	for _, codec := range SupportedCompressions {
		if c.Compression == codec {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported compression: %s. Supported codecs: %v", c.Compression, SupportedCompressions)
	}
	if c.RetryAttempts < 1 {
		return fmt.Errorf("retry_attempts must be at least 1, got %d", c.RetryAttempts)
	}
	if c.ReferenceTime != "" {
		if _, err := time.Parse(time.RFC3339, c.ReferenceTime); err != nil {
			return fmt.Errorf("reference_time must be RFC3339: %w", err)
		}
	}
	return nil
}

// ProductCount derives the catalog size from the customer scale.
func (c *Config) ProductCount() int {
	switch {
	case c.CustomerCount <= 1_000_000:
		return 10_000
	case c.CustomerCount <= 10_000_000:
		return 25_000
	default:
		return 50_000
	}
}

// AvgTransactionsPerCustomer derives the expected bulk transaction volume from
// the customer scale.
func (c *Config) AvgTransactionsPerCustomer() int {
	switch {
	case c.CustomerCount <= 1_000_000:
		return 8
	case c.CustomerCount <= 10_000_000:
		return 10
	default:
		return 12
	}
}

// Reference returns the timestamp anchor for the run.
func (c *Config) Reference() time.Time {
	if c.ReferenceTime != "" {
		ref, err := time.Parse(time.RFC3339, c.ReferenceTime)
		if err == nil {
			return ref.UTC()
		}
	}
	return time.Now().UTC().Truncate(24 * time.Hour)
}

// IsSupportedScale reports whether n is one of the published scale tiers.
func IsSupportedScale(n int) bool {
	for _, s := range SupportedScales {
		if n == s {
			return true
		}
	}
	return false
}
