package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/KaunteyShah/credit-risk-analysis-tool/internal/match"
)

// Config holds the full application configuration.
type Config struct {
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Catalog CatalogConfig `yaml:"catalog" mapstructure:"catalog"`
	Scorer  ScorerConfig  `yaml:"scorer" mapstructure:"scorer"`
	Batch   BatchConfig   `yaml:"batch" mapstructure:"batch"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the persistence backend for confirmed updates.
type StoreConfig struct {
	Driver      string     `yaml:"driver" mapstructure:"driver"`             // "sqlite" or "postgres"
	Path        string     `yaml:"path" mapstructure:"path"`                 // sqlite file path
	DatabaseURL string     `yaml:"database_url" mapstructure:"database_url"` // postgres conn string
	Pool        PoolConfig `yaml:"pool" mapstructure:"pool"`
}

// PoolConfig holds optional Postgres connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// CatalogConfig points at the SIC code table source file.
type CatalogConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ScorerConfig configures accuracy scoring. Sector rules are data, not code:
// the boost magnitudes and keyword-to-code-range mappings are heuristics that
// domain review may tune without a rebuild.
type ScorerConfig struct {
	Match       match.Config `yaml:"match" mapstructure:"match"`
	SectorBoost float64      `yaml:"sector_boost" mapstructure:"sector_boost"` // percentage points, default 15
	Sectors     []SectorRule `yaml:"sectors" mapstructure:"sectors"`
}

// SectorRule boosts a predicted code when independent keyword evidence in the
// description corroborates it. The rule fires only when both sides agree: a
// keyword appears in the normalized description AND the predicted code falls
// inside the sector's numeric range.
type SectorRule struct {
	Name     string   `yaml:"name" mapstructure:"name"`
	Keywords []string `yaml:"keywords" mapstructure:"keywords"`
	CodeLow  int      `yaml:"code_low" mapstructure:"code_low"`
	CodeHigh int      `yaml:"code_high" mapstructure:"code_high"`
	Boost    float64  `yaml:"boost" mapstructure:"boost"` // 0 = use ScorerConfig.SectorBoost
}

// BatchConfig configures batch scoring.
type BatchConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// DefaultSectorRules returns the high-confidence sector heuristics observed
// to correct systematic under-scoring: hospitality, retail, and financial
// descriptions whose predicted codes sit in the matching SIC divisions.
func DefaultSectorRules() []SectorRule {
	return []SectorRule{
		{
			Name:     "catering",
			Keywords: []string{"catering", "restaurant", "restaurants", "food", "dining", "cafe", "takeaway", "hospitality"},
			CodeLow:  56101,
			CodeHigh: 56302,
		},
		{
			Name:     "retail",
			Keywords: []string{"retail", "supermarket", "grocery", "store", "stores", "shop", "shops"},
			CodeLow:  47110,
			CodeHigh: 47990,
		},
		{
			Name:     "banking",
			Keywords: []string{"bank", "banks", "banking", "financial", "lending", "deposit", "mortgage"},
			CodeLow:  64110,
			CodeHigh: 66300,
		},
	}
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CREDITRISK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.path", "data/updates.db")
	v.SetDefault("catalog.path", "data/sic_codes.csv")
	v.SetDefault("scorer.match.jaccard_weight", 0.6)
	v.SetDefault("scorer.match.edit_weight", 0.4)
	v.SetDefault("scorer.match.floor", 0.05)
	v.SetDefault("scorer.sector_boost", 15.0)
	v.SetDefault("batch.workers", 8)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	// Sector rules are a list; viper defaults don't merge those, so fill in
	// the standard set only when the file/env provided none.
	if len(cfg.Scorer.Sectors) == 0 {
		cfg.Scorer.Sectors = DefaultSectorRules()
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
