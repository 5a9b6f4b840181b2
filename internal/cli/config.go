package cli

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	maxWalkDepth = 25
)

var configNames = []string{"sqlmerge.yaml", "sqlmerge.yml"}

// Config represents the sqlmerge job configuration from sqlmerge.yaml.
type Config struct {
	Database DatabaseConfig `mapstructure:"database" json:"database"`

	// Target table, optionally schema qualified.
	Table   string         `mapstructure:"table" json:"table"`
	Columns []ColumnConfig `mapstructure:"columns" json:"columns"`
	// Key overrides the ON predicate columns.
	Key []string `mapstructure:"key" json:"key,omitempty"`

	Matched            BranchConfig `mapstructure:"matched" json:"matched"`
	NotMatchedByTarget BranchConfig `mapstructure:"not_matched_by_target" json:"not_matched_by_target"`
	NotMatchedBySource BranchConfig `mapstructure:"not_matched_by_source" json:"not_matched_by_source"`

	Timeout      time.Duration `mapstructure:"timeout" json:"timeout"`
	Verify       bool          `mapstructure:"verify" json:"verify"`
	StagingTable string        `mapstructure:"staging_table" json:"staging_table"`
	Load         BulkConfig    `mapstructure:"load" json:"load"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	URL      string `mapstructure:"url" json:"url,omitempty"`
	Host     string `mapstructure:"host" json:"host,omitempty"`
	Port     int    `mapstructure:"port" json:"port"`
	Name     string `mapstructure:"name" json:"name,omitempty"`
	User     string `mapstructure:"user" json:"user,omitempty"`
	Password string `mapstructure:"password" json:"-"`
	Encrypt  string `mapstructure:"encrypt" json:"encrypt,omitempty"`
}

// ColumnConfig declares a target column and how record values are bound to it.
type ColumnConfig struct {
	Name        string `mapstructure:"name" json:"name"`
	Key         bool   `mapstructure:"key" json:"key,omitempty"`
	ExplicitKey bool   `mapstructure:"explicit_key" json:"explicit_key,omitempty"`
	Computed    bool   `mapstructure:"computed" json:"computed,omitempty"`
	Ignored     bool   `mapstructure:"ignored" json:"ignored,omitempty"`
	// Type is one of string, int, float, bool, decimal, time; empty keeps decoded value.
	Type string `mapstructure:"type" json:"type,omitempty"`
}

// BranchConfig holds a single WHEN branch action.
type BranchConfig struct {
	Action  string   `mapstructure:"action" json:"action"`
	When    string   `mapstructure:"when" json:"when,omitempty"`
	Columns []string `mapstructure:"columns" json:"columns,omitempty"`
}

// BulkConfig holds bulk copy settings.
type BulkConfig struct {
	// Hint is JSON encoded bulk copy options, i.e. {"Tablock":true}
	Hint         string `mapstructure:"hint" json:"hint,omitempty"`
	RowsPerBatch int    `mapstructure:"rows_per_batch" json:"rows_per_batch,omitempty"`
}

// LoadConfig discovers and loads configuration with proper precedence:
// flags > env > config file > defaults.
//
// Returns the loaded config, the path to the config file (empty if none found),
// and any error encountered.
func LoadConfig(explicitConfigPath string) (*Config, string, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("SQLMERGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath, err := findConfigFile(explicitConfigPath)
	if err != nil {
		return nil, "", err
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, configPath, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, configPath, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, configPath, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.url", "")
	v.SetDefault("database.host", "")
	v.SetDefault("database.port", 1433)
	v.SetDefault("database.name", "")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.encrypt", "")

	v.SetDefault("table", "")
	v.SetDefault("matched.action", "update")
	v.SetDefault("matched.when", "")
	v.SetDefault("not_matched_by_target.action", "insert")
	v.SetDefault("not_matched_by_target.when", "")
	v.SetDefault("not_matched_by_source.action", "none")
	v.SetDefault("not_matched_by_source.when", "")

	v.SetDefault("timeout", "0s")
	v.SetDefault("verify", false)
	v.SetDefault("staging_table", "")
	v.SetDefault("load.hint", "")
	v.SetDefault("load.rows_per_batch", 0)
}

// findConfigFile finds the config file to use.
// If explicitPath is provided, it validates the file exists.
// Otherwise, it walks up from cwd looking for sqlmerge.yaml or sqlmerge.yml,
// stopping at a .git directory or after maxWalkDepth levels.
func findConfigFile(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicitPath)
		}
		return explicitPath, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting cwd: %w", err)
	}
	dir := cwd
	for i := 0; i < maxWalkDepth; i++ {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", nil
}

// DSN returns the database connection string.
// If database.url is set, it's returned directly.
// Otherwise, builds a sqlserver:// URL from discrete fields.
func (c *Config) DSN() (string, error) {
	db := c.Database
	if db.URL != "" {
		return db.URL, nil
	}
	if db.Host == "" {
		return "", fmt.Errorf("database.host is required when database.url is not set")
	}
	if db.User == "" {
		return "", fmt.Errorf("database.user is required when database.url is not set")
	}
	u := &url.URL{
		Scheme: "sqlserver",
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
	}
	if db.Password != "" {
		u.User = url.UserPassword(db.User, db.Password)
	} else {
		u.User = url.User(db.User)
	}
	q := u.Query()
	if db.Name != "" {
		q.Set("database", db.Name)
	}
	if db.Encrypt != "" {
		q.Set("encrypt", db.Encrypt)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
