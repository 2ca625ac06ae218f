// Package config loads and validates the importer configuration. The
// configuration is read once at startup and treated as immutable for
// the rest of the run.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/liguoqinjim/china-bean-importers/internal/models"
)

// Config is the process-wide importer configuration.
type Config struct {
	// CardAccounts is an ordered list: resolution walks groups and banks
	// in declaration order.
	CardAccounts []models.CardAccountGroup `yaml:"card_accounts"`
	// DetailMappings are the classification rules, evaluated in order.
	DetailMappings []models.ClassificationRule `yaml:"detail_mappings"`
	// Fallback accounts for rows no rule resolves.
	UnknownExpenseAccount string `yaml:"unknown_expense_account"`
	UnknownIncomeAccount  string `yaml:"unknown_income_account"`
	// PDFPasswords is passed through to the statement-extraction side;
	// nothing in this module consumes it.
	PDFPasswords []string `yaml:"pdf_passwords"`
	// Narration blacklist: blacklisted expense rows are skipped, income
	// rows kept. Whitelist entries exempt a narration from the blacklist.
	CardNarrationWhitelist []string `yaml:"card_narration_whitelist"`
	CardNarrationBlacklist []string `yaml:"card_narration_blacklist"`
}

// Load reads and validates the YAML configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %q: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML configuration bytes.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.UnknownExpenseAccount == "" {
		return fmt.Errorf("config: unknown_expense_account is required")
	}
	if c.UnknownIncomeAccount == "" {
		return fmt.Errorf("config: unknown_income_account is required")
	}
	for i, g := range c.CardAccounts {
		if g.Prefix == "" {
			return fmt.Errorf("config: card_accounts[%d]: prefix is required", i)
		}
		for j, b := range g.Banks {
			if b.Name == "" {
				return fmt.Errorf("config: card_accounts[%d].banks[%d]: name is required", i, j)
			}
			if len(b.Numbers) == 0 {
				return fmt.Errorf("config: card_accounts[%d].banks[%d]: numbers is empty", i, j)
			}
		}
	}
	for i, r := range c.DetailMappings {
		if len(r.NarrationKeywords) == 0 && len(r.PayeeKeywords) == 0 && !r.PayeeSameAsNarration {
			return fmt.Errorf("config: detail_mappings[%d]: rule has no keywords", i)
		}
		if r.PayeeSameAsNarration && len(r.PayeeKeywords) > 0 {
			return fmt.Errorf("config: detail_mappings[%d]: payee_same_as_narration conflicts with payee_keywords", i)
		}
		if r.PayeeSameAsNarration && len(r.NarrationKeywords) == 0 {
			return fmt.Errorf("config: detail_mappings[%d]: payee_same_as_narration needs narration_keywords", i)
		}
	}
	return nil
}

// UnknownAccount returns the fallback destination for unclassified rows.
func (c *Config) UnknownAccount(expense bool) string {
	if expense {
		return c.UnknownExpenseAccount
	}
	return c.UnknownIncomeAccount
}

// InBlacklist reports whether a narration is blacklisted. Whitelist
// entries win over blacklist entries. Empty lists match nothing.
func (c *Config) InBlacklist(narration string) bool {
	for _, w := range c.CardNarrationWhitelist {
		if w != "" && strings.Contains(narration, w) {
			return false
		}
	}
	for _, b := range c.CardNarrationBlacklist {
		if b != "" && strings.Contains(narration, b) {
			return true
		}
	}
	return false
}
