// Package config provides configuration management for purefb2.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pure-fb2/purefb2/pkg/typograph"
)

// Config holds the purefb2 configuration.
type Config struct {
	// OutFormats lists the outputs to write: "fb2" and/or "zip".
	OutFormats []string `yaml:"out_formats"`
	// NameFormat builds the output file name, see fb2.FileName.
	NameFormat string `yaml:"name_format"`
	OutputDir  string `yaml:"output_dir,omitempty"`
	// AuthorToday toggles the metadata refresh from Author.Today.
	AuthorToday bool `yaml:"author_today"`
	// GenreLanguage picks the genre table: "en" writes FB2 genre codes,
	// "ru" human-readable names.
	GenreLanguage string `yaml:"genre_language,omitempty"`

	Document Document `yaml:"document"`

	// AuthorsRename maps source author names to replacements, applied
	// before any per-author rules are looked up.
	AuthorsRename map[string]string `yaml:"authors_rename,omitempty"`

	// AuthorRules are extra rewrite rules keyed by author name, run
	// before the built-in typography rules.
	AuthorRules []AuthorRules `yaml:"author_rules,omitempty"`

	// ProtectedPhrases are literal strings the typography pass must
	// never alter.
	ProtectedPhrases []string `yaml:"protected_phrases,omitempty"`
}

// Document describes the processing credit and the promo appendix.
type Document struct {
	AuthorName string `yaml:"author_name"`
	AuthorHome string `yaml:"author_home,omitempty"`
	// Promo is a markdown template rendered into the book's closing
	// section. Empty disables the promo.
	Promo string `yaml:"promo,omitempty"`
}

// AuthorRules is a named set of rewrite rules.
type AuthorRules struct {
	Author string        `yaml:"author"`
	Rules  []RewriteRule `yaml:"rules"`
}

// RewriteRule is one configured regex rewrite.
type RewriteRule struct {
	Pattern     string `yaml:"pattern"`
	Replacement string `yaml:"replacement"`
	IgnoreCase  bool   `yaml:"ignore_case,omitempty"`
	// Repeat reruns the rule until the text stops changing.
	Repeat bool `yaml:"repeat,omitempty"`
}

// Compile turns the configured rule into an engine rule.
func (r RewriteRule) Compile() (typograph.Rule, error) {
	pattern := r.Pattern
	if r.IgnoreCase {
		pattern = "(?i)" + pattern
	}
	mode := typograph.Once
	if r.Repeat {
		mode = typograph.UntilFixpoint
	}
	return typograph.NewRule(pattern, r.Replacement, mode)
}

// Compile compiles the whole rule set in order.
func (a AuthorRules) Compile() ([]typograph.Rule, error) {
	rules := make([]typograph.Rule, 0, len(a.Rules))
	for i, r := range a.Rules {
		rule, err := r.Compile()
		if err != nil {
			return nil, fmt.Errorf("rule %d for %q: %w", i+1, a.Author, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// Default returns the configuration used when no file exists yet.
func Default() *Config {
	return &Config{
		OutFormats:    []string{"fb2"},
		NameFormat:    "{author_lf} - {title}",
		AuthorToday:   true,
		GenreLanguage: "en",
		Document: Document{
			AuthorName: "PureFb2",
		},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if len(c.OutFormats) == 0 {
		return errors.New("out_formats is required")
	}
	for _, f := range c.OutFormats {
		if f != "fb2" && f != "zip" {
			return fmt.Errorf("out_formats: unknown format %q (want fb2 or zip)", f)
		}
	}
	if c.NameFormat == "" {
		return errors.New("name_format is required")
	}
	if c.GenreLanguage != "" && c.GenreLanguage != "en" && c.GenreLanguage != "ru" {
		return fmt.Errorf("genre_language: unknown language %q (want en or ru)", c.GenreLanguage)
	}
	for _, set := range c.AuthorRules {
		if set.Author == "" {
			return errors.New("author_rules: author name is required")
		}
		if _, err := set.Compile(); err != nil {
			return fmt.Errorf("author_rules: %w", err)
		}
	}
	return nil
}

// LoadFromEnv overrides configuration from environment variables.
// Only set, non-empty variables take effect.
func (c *Config) LoadFromEnv() {
	if dir := os.Getenv("PUREFB2_OUTPUT_DIR"); dir != "" {
		c.OutputDir = dir
	}
	if format := os.Getenv("PUREFB2_NAME_FORMAT"); format != "" {
		c.NameFormat = format
	}
	if formats := os.Getenv("PUREFB2_OUT_FORMATS"); formats != "" {
		c.OutFormats = nil
		for _, f := range strings.Split(formats, ",") {
			if f = strings.TrimSpace(f); f != "" {
				c.OutFormats = append(c.OutFormats, f)
			}
		}
	}
	if at := os.Getenv("PUREFB2_AUTHOR_TODAY"); at != "" {
		c.AuthorToday = at == "1" || strings.EqualFold(at, "true")
	}
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "purefb2", "config.yml")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".purefb2", "config.yml")
	}

	return filepath.Join(home, ".config", "purefb2", "config.yml")
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Restricted permissions, the file may carry private promo text.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnv loads configuration from file and overrides with environment
// variables. A missing file falls back to defaults.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		cfg = Default()
	}

	cfg.LoadFromEnv()
	return cfg, nil
}

// Typograph builds the typography engine configured by this file.
func (c *Config) Typograph() (*typograph.Typograph, error) {
	var opts []typograph.Option
	if len(c.ProtectedPhrases) > 0 {
		opts = append(opts, typograph.WithProtectedPhrases(c.ProtectedPhrases...))
	}
	for _, set := range c.AuthorRules {
		rules, err := set.Compile()
		if err != nil {
			return nil, err
		}
		opts = append(opts, typograph.WithAuthorRules(set.Author, rules))
	}
	return typograph.New(typograph.Russian(), opts...), nil
}
