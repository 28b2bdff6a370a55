package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Workspace layout. An empty Workspace means "current directory, then its parent".
	Workspace  string `mapstructure:"workspace" yaml:"workspace"`
	InputDir   string `mapstructure:"input_dir" yaml:"input_dir"`
	OutputDir  string `mapstructure:"output_dir" yaml:"output_dir"`
	ArchiveDir string `mapstructure:"archive_dir" yaml:"archive_dir"`
	SiteFile   string `mapstructure:"site_file" yaml:"site_file"`

	// Run behavior
	Interactive bool `mapstructure:"interactive" yaml:"interactive"`
	FileMove    bool `mapstructure:"file_move" yaml:"file_move"`

	// Validation thresholds
	MaxDateDiffDays    int `mapstructure:"max_date_diff_days" yaml:"max_date_diff_days"`
	MaxTimeDiffMinutes int `mapstructure:"max_time_diff_minutes" yaml:"max_time_diff_minutes"`

	// Batch ledger ("" disables)
	LedgerPath         string `mapstructure:"ledger_path" yaml:"ledger_path"`
	FingerprintWorkers int    `mapstructure:"fingerprint_workers" yaml:"fingerprint_workers"`
}

// Keys lists the settable configuration keys in display order.
var Keys = []string{
	"workspace", "input_dir", "output_dir", "archive_dir", "site_file",
	"interactive", "file_move", "max_date_diff_days", "max_time_diff_minutes",
	"ledger_path", "fingerprint_workers",
}

func defaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".waterdata"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.waterdata/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := defaultDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("WATERDATA")
	v.AutomaticEnv()

	v.SetDefault("workspace", "")
	v.SetDefault("input_dir", "For Script")
	v.SetDefault("output_dir", "For Upload")
	v.SetDefault("archive_dir", "Processed Files")
	v.SetDefault("site_file", filepath.Join("Automate", "projectSites.txt"))
	v.SetDefault("interactive", true)
	v.SetDefault("file_move", true)
	v.SetDefault("max_date_diff_days", 42)
	v.SetDefault("max_time_diff_minutes", 30)
	v.SetDefault("ledger_path", filepath.Join("Automate", "waterdata.db"))
	v.SetDefault("fingerprint_workers", 4)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := defaultDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.FingerprintWorkers < 1 {
		c.FingerprintWorkers = 1
	}
	return &c, nil
}

// Set assigns a single key from its string form.
func (c *Global) Set(key, value string) error {
	key = strings.ToLower(strings.TrimSpace(key))
	switch key {
	case "workspace":
		c.Workspace = value
	case "input_dir":
		c.InputDir = value
	case "output_dir":
		c.OutputDir = value
	case "archive_dir":
		c.ArchiveDir = value
	case "site_file":
		c.SiteFile = value
	case "ledger_path":
		c.LedgerPath = value
	case "interactive", "file_move":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s must be true or false: %w", key, err)
		}
		if key == "interactive" {
			c.Interactive = b
		} else {
			c.FileMove = b
		}
	case "max_date_diff_days", "max_time_diff_minutes", "fingerprint_workers":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%s must be a non-negative integer", key)
		}
		switch key {
		case "max_date_diff_days":
			c.MaxDateDiffDays = n
		case "max_time_diff_minutes":
			c.MaxTimeDiffMinutes = n
		default:
			c.FingerprintWorkers = n
		}
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}
