// Package config loads application settings from config/app.yaml, with
// environment overrides.
package config

import (
	"financial_analysis/pkg/models"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// DefaultPath is where the executables look for settings.
const DefaultPath = "config/app.yaml"

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Vault    VaultConfig    `yaml:"vault"`
	Defaults Defaults       `yaml:"defaults"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// VaultConfig locates the file store used when no database is configured.
type VaultConfig struct {
	Dir string `yaml:"dir"`
}

// Defaults applied to companies created by the tools.
type Defaults struct {
	Country        string `yaml:"country"`
	Currency       string `yaml:"currency"`
	Language       string `yaml:"language"`
	YearsToAnalyze int    `yaml:"years_to_analyze"`
}

// Load reads .env into the environment, then the YAML file at path. A
// missing file is not an error. DATABASE_URL and VAULT_DIR take precedence
// over the file.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		fmt.Printf("[CONFIG] %s not found, using defaults\n", path)
	default:
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("VAULT_DIR"); v != "" {
		cfg.Vault.Dir = v
	}

	cfg.fill()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) fill() {
	d := &c.Defaults
	if d.Country == "" {
		d.Country = models.DefaultCountry
	}
	if d.Currency == "" {
		d.Currency = models.DefaultCurrency
	}
	if d.Language == "" {
		d.Language = string(models.LanguageArabic)
	}
	if d.YearsToAnalyze == 0 {
		d.YearsToAnalyze = models.DefaultYearsToAnalyze
	}
}

func (c *Config) validate() error {
	d := c.Defaults
	if !models.ReportLanguage(d.Language).Valid() {
		return fmt.Errorf("config: defaults.language %q must be ar or en", d.Language)
	}
	if d.YearsToAnalyze < models.MinYearsToAnalyze || d.YearsToAnalyze > models.MaxYearsToAnalyze {
		return fmt.Errorf("config: defaults.years_to_analyze %d out of range [%d, %d]",
			d.YearsToAnalyze, models.MinYearsToAnalyze, models.MaxYearsToAnalyze)
	}
	return nil
}

// ApplyTo fills the company's unset attributes from the configured
// defaults, then the built-in ones.
func (c *Config) ApplyTo(co *models.Company) {
	d := c.Defaults
	if co.Country == "" {
		co.Country = d.Country
	}
	if co.Currency == "" {
		co.Currency = d.Currency
	}
	p := &co.AnalysisPreferences
	if p.ReportLanguage == "" {
		p.ReportLanguage = models.ReportLanguage(d.Language)
	}
	if p.YearsToAnalyze == 0 {
		p.YearsToAnalyze = d.YearsToAnalyze
	}
	co.ApplyDefaults()
}
