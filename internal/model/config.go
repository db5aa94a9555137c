package model

import "time"

// Config is the full application configuration. Values are resolved by the
// CLI layer in priority order: flags, then KAMERDATA_* environment
// variables, then the yaml config file, then these defaults.
type Config struct {
	Data        DataConfig        `yaml:"data" mapstructure:"data"`
	Chamber     ChamberConfig     `yaml:"chamber" mapstructure:"chamber"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Sync        SyncConfig        `yaml:"sync" mapstructure:"sync"`
}

// DataConfig locates the dataset and the generated output.
type DataConfig struct {
	// Dir is the dataset directory holding one parquet file per table.
	Dir string `yaml:"dir" mapstructure:"dir"`

	// OutputDir receives the generated JSON view-model files.
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"`

	// TopicsFile is the topic taxonomy JSON config.
	TopicsFile string `yaml:"topics_file" mapstructure:"topics_file"`

	// PartyColorsFile maps lowercase party names to display colors.
	PartyColorsFile string `yaml:"party_colors_file" mapstructure:"party_colors_file"`
}

// ChamberConfig holds the chamber-level constants.
type ChamberConfig struct {
	// Size is the number of seats, the denominator of attendance ratios.
	Size int `yaml:"size" mapstructure:"size"`

	// SimilarityThreshold is the cosine similarity above which a graph edge
	// is emitted between two members.
	SimilarityThreshold float64 `yaml:"similarity_threshold" mapstructure:"similarity_threshold"`
}

// ConcurrencyConfig bounds the worker pools.
type ConcurrencyConfig struct {
	// TableReaders is the number of concurrent table reads during a build.
	TableReaders int `yaml:"table_readers" mapstructure:"table_readers"`

	// SummarizeWorkers is the number of concurrent LLM summary requests.
	SummarizeWorkers int `yaml:"summarize_workers" mapstructure:"summarize_workers"`
}

// CacheConfig configures the local cache used by summarize and sync.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir     string        `yaml:"dir" mapstructure:"dir"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// LLMConfig configures the summary provider.
type LLMConfig struct {
	// Provider name; "" disables summarization.
	Provider string `yaml:"provider" mapstructure:"provider"`

	Model   string `yaml:"model" mapstructure:"model"`
	APIKey  string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxTokens int           `yaml:"max_tokens" mapstructure:"max_tokens"`

	// RequestsPerSecond rate-limits API calls across workers.
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// SyncConfig configures the dataset download command.
type SyncConfig struct {
	// BaseURL is where the published tables live; each table is fetched as
	// <base>/<table>.parquet.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	UserAgent         string        `yaml:"user_agent" mapstructure:"user_agent"`
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int           `yaml:"burst" mapstructure:"burst"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Dir:             "src/data",
			OutputDir:       "src/_generated",
			TopicsFile:      "src/_data/topics.json",
			PartyColorsFile: "src/_data/partyColors.json",
		},
		Chamber: ChamberConfig{
			Size:                150,
			SimilarityThreshold: 0.9,
		},
		Concurrency: ConcurrencyConfig{
			TableReaders:     4,
			SummarizeWorkers: 2,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     "", // resolved to ~/.kamerdata/cache by the CLI
			TTL:     24 * time.Hour,
		},
		LLM: LLMConfig{
			Provider:          "",
			Model:             "",
			Timeout:           30 * time.Second,
			MaxTokens:         300,
			RequestsPerSecond: 1,
		},
		Sync: SyncConfig{
			BaseURL:           "",
			UserAgent:         "kamerdata/0.1 (+https://github.com/wetstraat/kamerdata)",
			Timeout:           2 * time.Minute,
			RequestsPerSecond: 0.5,
			Burst:             1,
		},
	}
}
