package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	DataDir   string          `yaml:"data_dir" mapstructure:"data_dir"`
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Download  DownloadConfig  `yaml:"download" mapstructure:"download"`
	Integrate IntegrateConfig `yaml:"integrate" mapstructure:"integrate"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the SQLite run store.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// DownloadConfig configures the dataset download phase.
type DownloadConfig struct {
	WorldBankBaseURL string   `yaml:"world_bank_base_url" mapstructure:"world_bank_base_url"`
	Countries        []string `yaml:"countries" mapstructure:"countries"`
	DateRange        string   `yaml:"date_range" mapstructure:"date_range"`
	TimeoutSecs      int      `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries       int      `yaml:"max_retries" mapstructure:"max_retries"`
	Concurrency      int      `yaml:"concurrency" mapstructure:"concurrency"`
}

// IntegrateConfig configures the integration phase.
type IntegrateConfig struct {
	ManifestPath string `yaml:"manifest_path" mapstructure:"manifest_path"`
	PairsFile    string `yaml:"pairs_file" mapstructure:"pairs_file"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("BORDERLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data_dir", "data")
	v.SetDefault("store.path", "data/borderlens.db")
	v.SetDefault("download.world_bank_base_url", "https://api.worldbank.org/v2/")
	v.SetDefault("download.countries", []string{
		"USA", "CAN", "DEU", "POL", "FRA", "ESP", "CHN", "RUS", "IND", "PAK",
	})
	v.SetDefault("download.date_range", "1990:2020")
	v.SetDefault("download.timeout_secs", 30)
	v.SetDefault("download.max_retries", 3)
	v.SetDefault("download.concurrency", 3)
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
