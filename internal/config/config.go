package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Dir is the per-workspace state directory.
const Dir = ".mandi"

// Config holds all mandi configuration.
type Config struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	Bidding   BiddingConfig   `yaml:"bidding"`
	Transport TransportConfig `yaml:"transport"`
	Payment   PaymentConfig   `yaml:"payment"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	UI        UIConfig        `yaml:"ui"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// BiddingConfig holds the pricing rules applied to every bid.
type BiddingConfig struct {
	MinIncrement    float64 `yaml:"min_increment"`    // added to the highest bid
	DefaultRaise    float64 `yaml:"default_raise"`    // seeds new drafts
	DefaultQuantity int     `yaml:"default_quantity"` // clamped to stock
}

// TransportConfig prices optional pickup: round(qty*rate + base_fee).
type TransportConfig struct {
	RatePerUnit float64 `yaml:"rate_per_unit"`
	BaseFee     float64 `yaml:"base_fee"`
}

// PaymentConfig configures the simulated payment gateway.
type PaymentConfig struct {
	RegisterDelay string  `yaml:"register_delay"`
	PayDelay      string  `yaml:"pay_delay"`
	FailureRate   float64 `yaml:"failure_rate"` // 0..1
	Payee         string  `yaml:"payee"`        // UPI VPA shown in the payment QR
	PayeeName     string  `yaml:"payee_name"`
}

// CatalogConfig selects where listings come from. An empty path uses the
// built-in fixtures.
type CatalogConfig struct {
	Path  string `yaml:"path"`
	Watch bool   `yaml:"watch"`
}

// UIConfig configures the terminal UI.
type UIConfig struct {
	Theme  string `yaml:"theme"` // auto, light, dark
	ShowQR bool   `yaml:"show_qr"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "Digital Mandi",
		Version: "1.0.0",

		Bidding: BiddingConfig{
			MinIncrement:    1,
			DefaultRaise:    5,
			DefaultQuantity: 100,
		},

		Transport: TransportConfig{
			RatePerUnit: 0.8,
			BaseFee:     50,
		},

		Payment: PaymentConfig{
			RegisterDelay: "2s",
			PayDelay:      "2.5s",
			FailureRate:   0,
			Payee:         "digitalmandi@upi",
			PayeeName:     "Digital Mandi",
		},

		Catalog: CatalogConfig{
			Watch: true,
		},

		UI: UIConfig{
			Theme:  "auto",
			ShowQR: true,
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultPath is the config file location inside a workspace.
func DefaultPath(workspace string) string {
	return filepath.Join(workspace, Dir, "config.yaml")
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if path := os.Getenv("MANDI_CATALOG"); path != "" {
		c.Catalog.Path = path
	}
	if v := os.Getenv("MANDI_PAYMENT_FAILURE_RATE"); v != "" {
		if rate, err := strconv.ParseFloat(v, 64); err == nil {
			c.Payment.FailureRate = rate
		}
	}
	if v := os.Getenv("MANDI_DARK_MODE"); v != "" {
		if dark, err := strconv.ParseBool(v); err == nil {
			c.UI.Theme = "light"
			if dark {
				c.UI.Theme = "dark"
			}
		}
	}
	if v := os.Getenv("MANDI_DEBUG"); v != "" {
		if debug, err := strconv.ParseBool(v); err == nil {
			c.Logging.DebugMode = debug
		}
	}
	if lvl := os.Getenv("MANDI_LOG_LEVEL"); lvl != "" {
		c.Logging.Level = strings.ToLower(lvl)
	}
}

// GetRegisterDelay returns the simulated bid registration delay.
func (c *Config) GetRegisterDelay() time.Duration {
	d, err := time.ParseDuration(c.Payment.RegisterDelay)
	if err != nil || d < 0 {
		return 2 * time.Second
	}
	return d
}

// GetPayDelay returns the simulated payment delay.
func (c *Config) GetPayDelay() time.Duration {
	d, err := time.ParseDuration(c.Payment.PayDelay)
	if err != nil || d < 0 {
		return 2500 * time.Millisecond
	}
	return d
}

// ValidThemes lists the accepted ui.theme values.
var ValidThemes = []string{"auto", "light", "dark"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Bidding.MinIncrement < 0 {
		return fmt.Errorf("bidding.min_increment must not be negative: %v", c.Bidding.MinIncrement)
	}
	if c.Bidding.DefaultRaise < 0 {
		return fmt.Errorf("bidding.default_raise must not be negative: %v", c.Bidding.DefaultRaise)
	}
	if c.Bidding.DefaultQuantity < 1 {
		return fmt.Errorf("bidding.default_quantity must be at least 1: %d", c.Bidding.DefaultQuantity)
	}
	if c.Transport.RatePerUnit < 0 || c.Transport.BaseFee < 0 {
		return fmt.Errorf("transport rate and base fee must not be negative")
	}
	if c.Payment.FailureRate < 0 || c.Payment.FailureRate > 1 {
		return fmt.Errorf("payment.failure_rate must be between 0 and 1: %v", c.Payment.FailureRate)
	}
	for _, field := range []struct{ name, value string }{
		{"payment.register_delay", c.Payment.RegisterDelay},
		{"payment.pay_delay", c.Payment.PayDelay},
	} {
		if field.value == "" {
			continue
		}
		if _, err := time.ParseDuration(field.value); err != nil {
			return fmt.Errorf("invalid %s: %w", field.name, err)
		}
	}

	validTheme := false
	for _, t := range ValidThemes {
		if c.UI.Theme == t {
			validTheme = true
			break
		}
	}
	if !validTheme {
		return fmt.Errorf("invalid ui.theme: %s (valid: %v)", c.UI.Theme, ValidThemes)
	}
	return nil
}

// FindWorkspaceRoot walks up from the working directory looking for a
// .mandi directory and falls back to the working directory itself.
func FindWorkspaceRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	originalDir := dir
	for {
		if info, err := os.Stat(filepath.Join(dir, Dir)); err == nil && info.IsDir() {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return originalDir, nil
}
