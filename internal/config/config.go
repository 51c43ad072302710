package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"eve-arbitrage/internal/engine"
)

// Route declares a bidirectional route between two regions' trade hubs with
// its gate jump count.
type Route struct {
	From  string `mapstructure:"from" json:"from"`
	To    string `mapstructure:"to" json:"to"`
	Jumps int    `mapstructure:"jumps" json:"jumps"`
}

// Config holds application settings. The Scan* fields map directly onto
// engine.ScanConfig; the rest wires the server, persistence, and the demo
// sample feed.
type Config struct {
	ListenPort int    `mapstructure:"listen_port" json:"listen_port"`
	DBPath     string `mapstructure:"db_path" json:"db_path"`
	Debug      bool   `mapstructure:"debug" json:"debug"`

	MinProfitThreshold float64 `mapstructure:"min_profit_threshold" json:"min_profit_threshold"`
	MinMarginPercent   float64 `mapstructure:"min_margin_percent" json:"min_margin_percent"`
	MaxJumps           int     `mapstructure:"max_jumps" json:"max_jumps"`
	MinLiquidityVolume int64   `mapstructure:"min_liquidity_volume" json:"min_liquidity_volume"`
	BrokerFeeRate      float64 `mapstructure:"broker_fee_rate" json:"broker_fee_rate"`
	TaxRate            float64 `mapstructure:"tax_rate" json:"tax_rate"`
	TopN               int     `mapstructure:"top_n" json:"top_n"`
	MaxUnitsPerTrade   int64   `mapstructure:"max_units_per_trade" json:"max_units_per_trade"`
	ScanIntervalSec    int     `mapstructure:"scan_interval_sec" json:"scan_interval_sec"`

	// Regions and Routes describe the tradable universe for the route graph
	// and the demo feed.
	Regions []string `mapstructure:"regions" json:"regions"`
	Routes  []Route  `mapstructure:"routes" json:"routes"`
}

// Default returns a Config with sensible defaults: the five classic trade-hub
// regions and their hub-to-hub jump counts.
func Default() *Config {
	return &Config{
		ListenPort:         13371,
		DBPath:             "arbitrage.db",
		MinProfitThreshold: 50000,
		MinMarginPercent:   5,
		MaxJumps:           10,
		MinLiquidityVolume: 1000,
		BrokerFeeRate:      0.03,
		TaxRate:            0.08,
		TopN:               100,
		MaxUnitsPerTrade:   1000000,
		ScanIntervalSec:    300,
		Regions: []string{
			"The Forge",
			"Domain",
			"Sinq Laison",
			"Metropolis",
			"Heimatar",
		},
		Routes: []Route{
			{From: "The Forge", To: "Domain", Jumps: 9},
			{From: "The Forge", To: "Sinq Laison", Jumps: 10},
			{From: "The Forge", To: "Metropolis", Jumps: 8},
			{From: "The Forge", To: "Heimatar", Jumps: 9},
			{From: "Domain", To: "Sinq Laison", Jumps: 7},
			{From: "Metropolis", To: "Heimatar", Jumps: 3},
			{From: "Sinq Laison", To: "Metropolis", Jumps: 6},
		},
	}
}

// Load reads configuration from an optional file plus ARB_* environment
// variables, layered over Default(). An empty path skips the file entirely.
func Load(path string) (*Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetEnvPrefix("ARB")
	v.AutomaticEnv()

	v.SetDefault("listen_port", cfg.ListenPort)
	v.SetDefault("db_path", cfg.DBPath)
	v.SetDefault("debug", cfg.Debug)
	v.SetDefault("min_profit_threshold", cfg.MinProfitThreshold)
	v.SetDefault("min_margin_percent", cfg.MinMarginPercent)
	v.SetDefault("max_jumps", cfg.MaxJumps)
	v.SetDefault("min_liquidity_volume", cfg.MinLiquidityVolume)
	v.SetDefault("broker_fee_rate", cfg.BrokerFeeRate)
	v.SetDefault("tax_rate", cfg.TaxRate)
	v.SetDefault("top_n", cfg.TopN)
	v.SetDefault("max_units_per_trade", cfg.MaxUnitsPerTrade)
	v.SetDefault("scan_interval_sec", cfg.ScanIntervalSec)
	v.SetDefault("regions", cfg.Regions)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the engine cannot run with.
func (c *Config) Validate() error {
	if c.BrokerFeeRate < 0 || c.BrokerFeeRate >= 1 {
		return fmt.Errorf("broker_fee_rate %v out of range [0, 1)", c.BrokerFeeRate)
	}
	if c.TaxRate < 0 || c.TaxRate >= 1 {
		return fmt.Errorf("tax_rate %v out of range [0, 1)", c.TaxRate)
	}
	if c.MaxJumps < 0 {
		return fmt.Errorf("max_jumps %d must not be negative", c.MaxJumps)
	}
	if c.MinLiquidityVolume < 0 {
		return fmt.Errorf("min_liquidity_volume %d must not be negative", c.MinLiquidityVolume)
	}
	if c.ScanIntervalSec <= 0 {
		return fmt.Errorf("scan_interval_sec %d must be positive", c.ScanIntervalSec)
	}
	return nil
}

// ScanConfig converts the flat settings into the engine's scan configuration.
func (c *Config) ScanConfig() engine.ScanConfig {
	return engine.ScanConfig{
		MinProfitThreshold: c.MinProfitThreshold,
		MinMarginPercent:   c.MinMarginPercent,
		MaxJumps:           c.MaxJumps,
		MinLiquidityVolume: c.MinLiquidityVolume,
		BrokerFeeRate:      c.BrokerFeeRate,
		TaxRate:            c.TaxRate,
		TopN:               c.TopN,
		MaxUnitsPerTrade:   c.MaxUnitsPerTrade,
		ScanInterval:       time.Duration(c.ScanIntervalSec) * time.Second,
	}
}
