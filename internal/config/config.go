package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/etsledger/etsledger/internal/fiscal"
	"github.com/etsledger/etsledger/internal/model"
)

// FileName is the config file at the workspace root.
const FileName = "etsledger.yaml"

// Config represents the top-level etsledger.yaml configuration.
type Config struct {
	Entity EntityConfig `yaml:"entity"`
	Rules  RulesConfig  `yaml:"rules"`
	Git    GitConfig    `yaml:"git"`
	Log    LogConfig    `yaml:"log"`
}

// EntityConfig identifies the non-profit entity.
type EntityConfig struct {
	Name       string `yaml:"name"`
	EntityType string `yaml:"entity_type"` // APS, ODV, ETS, OTHER
	TaxCode    string `yaml:"tax_code,omitempty"`
}

// RulesConfig holds the statutory thresholds. Values are written as
// decimal strings so they round-trip exactly.
type RulesConfig struct {
	CommercialMargin              decimal.Decimal `yaml:"commercial_margin"`
	SecondaryIncomeShare          decimal.Decimal `yaml:"secondary_income_share"`
	SecondaryCostShare            decimal.Decimal `yaml:"secondary_cost_share"`
	ForfettarioRevenueCap         decimal.Decimal `yaml:"forfettario_revenue_cap"`
	ForfettarioCoefficientAPS     decimal.Decimal `yaml:"forfettario_coefficient_aps"`
	ForfettarioCoefficientDefault decimal.Decimal `yaml:"forfettario_coefficient_default"`
	IresRate                      decimal.Decimal `yaml:"ires_rate"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// LogConfig controls log output.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console or json
}

// Path returns the config path of a workspace.
func Path(repoRoot string) string {
	return filepath.Join(repoRoot, FileName)
}

// Load reads an etsledger.yaml file from disk. Rules missing from the file
// keep their statutory defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Config{Rules: DefaultRules()}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with statutory rules for a new workspace.
func Default(entityName, entityType string) *Config {
	return &Config{
		Entity: EntityConfig{
			Name:       entityName,
			EntityType: entityType,
		},
		Rules: DefaultRules(),
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "etsledger",
			AuthorEmail: "etsledger@localhost",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// DefaultRules returns the statutory rule values.
func DefaultRules() RulesConfig {
	r := fiscal.DefaultRules()
	return RulesConfig{
		CommercialMargin:              r.CommercialMargin,
		SecondaryIncomeShare:          r.SecondaryIncomeShare,
		SecondaryCostShare:            r.SecondaryCostShare,
		ForfettarioRevenueCap:         r.ForfettarioRevenueCap,
		ForfettarioCoefficientAPS:     r.ForfettarioCoefficientAPS,
		ForfettarioCoefficientDefault: r.ForfettarioCoefficientDefault,
		IresRate:                      r.IresRate,
	}
}

// ToRules converts the configured values to engine rules.
func (r RulesConfig) ToRules() fiscal.Rules {
	return fiscal.Rules{
		CommercialMargin:              r.CommercialMargin,
		SecondaryIncomeShare:          r.SecondaryIncomeShare,
		SecondaryCostShare:            r.SecondaryCostShare,
		ForfettarioRevenueCap:         r.ForfettarioRevenueCap,
		ForfettarioCoefficientAPS:     r.ForfettarioCoefficientAPS,
		ForfettarioCoefficientDefault: r.ForfettarioCoefficientDefault,
		IresRate:                      r.IresRate,
	}
}

// Profile returns the entity profile. The entity type is passed through
// as written so the engine can reject an invalid one.
func (c *Config) Profile() *model.EntityProfile {
	et, ok := model.ParseEntityType(c.Entity.EntityType)
	if !ok {
		et = model.EntityType(c.Entity.EntityType)
	}
	return &model.EntityProfile{
		Name:       c.Entity.Name,
		EntityType: et,
		TaxCode:    c.Entity.TaxCode,
	}
}

// Validate checks that every rule is non-negative and the shares are
// fractions.
func (c *Config) Validate() error {
	rules := []struct {
		name  string
		value decimal.Decimal
		share bool
	}{
		{"commercial_margin", c.Rules.CommercialMargin, true},
		{"secondary_income_share", c.Rules.SecondaryIncomeShare, true},
		{"secondary_cost_share", c.Rules.SecondaryCostShare, true},
		{"forfettario_revenue_cap", c.Rules.ForfettarioRevenueCap, false},
		{"forfettario_coefficient_aps", c.Rules.ForfettarioCoefficientAPS, true},
		{"forfettario_coefficient_default", c.Rules.ForfettarioCoefficientDefault, true},
		{"ires_rate", c.Rules.IresRate, true},
	}
	one := decimal.NewFromInt(1)
	for _, r := range rules {
		if r.value.IsNegative() {
			return fmt.Errorf("rules.%s must not be negative, got %s", r.name, r.value)
		}
		if r.share && r.value.GreaterThan(one) {
			return fmt.Errorf("rules.%s must be at most 1, got %s", r.name, r.value)
		}
	}
	return nil
}
