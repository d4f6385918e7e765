// Package config loads and validates the tabload project configuration.
//
// The configuration is a single YAML file describing the delimited source
// file and the relational target. Credentials are never stored here; the
// networked backend resolves DB_USER and DB_PASSWORD from the process
// environment (see internal/db).
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rkowalik/tabload/pkg/tabload"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// SourceConfig describes the delimited input file.
type SourceConfig struct {
	FilePath  string `yaml:"file_path"`
	Delimiter string `yaml:"delimiter"`
	Header    bool   `yaml:"header"`
}

// TargetConfig describes the relational target table.
type TargetConfig struct {
	Type      string `yaml:"type"`
	Path      string `yaml:"path,omitempty"`
	Host      string `yaml:"host,omitempty"`
	Port      int    `yaml:"port,omitempty"`
	Database  string `yaml:"database,omitempty"`
	Table     string `yaml:"table"`
	Mode      string `yaml:"mode"`
	BatchSize int    `yaml:"batch_size,omitempty"`

	AuthMethod string `yaml:"auth_method,omitempty"`
	AWSRegion  string `yaml:"aws_region,omitempty"`
}

// ProjectConfig is the root of the YAML document.
type ProjectConfig struct {
	Source SourceConfig `yaml:"source"`
	Target TargetConfig `yaml:"target"`
}

// Load reads and validates the configuration at path.
func Load(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %w: %s", tabload.ErrConfigInvalid, ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w: %v", path, tabload.ErrConfigInvalid, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration and reports every failure at once,
// wrapped in tabload.ErrConfigInvalid.
func (c *ProjectConfig) Validate() error {
	var errs []string

	if c.Source.FilePath == "" {
		errs = append(errs, "source.file_path is required")
	}
	if len([]rune(c.Source.Delimiter)) != 1 {
		errs = append(errs, fmt.Sprintf("source.delimiter must be a single character, got %q", c.Source.Delimiter))
	}

	switch tabload.BackendKind(c.Target.Type) {
	case tabload.BackendDuckDB:
		if c.Target.Path == "" {
			errs = append(errs, "target.path is required for the duckdb backend")
		}
	case tabload.BackendPostgres:
		if c.Target.Host == "" {
			errs = append(errs, "target.host is required for the postgres backend")
		}
		if c.Target.Database == "" {
			errs = append(errs, "target.database is required for the postgres backend")
		}
	default:
		errs = append(errs, fmt.Sprintf("target.type must be %q or %q, got %q",
			tabload.BackendDuckDB, tabload.BackendPostgres, c.Target.Type))
	}

	switch tabload.LoadMode(c.Target.Mode) {
	case tabload.ModeAppend, tabload.ModeReplace:
	default:
		errs = append(errs, fmt.Sprintf("target.mode must be %q or %q, got %q",
			tabload.ModeAppend, tabload.ModeReplace, c.Target.Mode))
	}

	if c.Target.BatchSize < 0 {
		errs = append(errs, "target.batch_size must be non-negative")
	}

	switch tabload.AuthMethod(c.Target.AuthMethod) {
	case "", tabload.AuthPassword:
	case tabload.AuthAWSIAM:
		if c.Target.AWSRegion == "" && os.Getenv("AWS_REGION") == "" {
			errs = append(errs, "target.aws_region (or $AWS_REGION) is required for aws_iam auth")
		}
	default:
		errs = append(errs, fmt.Sprintf("target.auth_method must be %q or %q, got %q",
			tabload.AuthPassword, tabload.AuthAWSIAM, c.Target.AuthMethod))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w:\n  - %s", tabload.ErrConfigInvalid, strings.Join(errs, "\n  - "))
	}
	return nil
}

// Descriptor converts the validated target config into a TargetDescriptor,
// applying defaults for table name, port and batch size.
func (c *ProjectConfig) Descriptor() *tabload.TargetDescriptor {
	t := c.Target

	desc := &tabload.TargetDescriptor{
		Kind:      tabload.BackendKind(t.Type),
		Table:     t.Table,
		Mode:      tabload.LoadMode(t.Mode),
		BatchSize: t.BatchSize,
		Path:      t.Path,
		Host:      t.Host,
		Port:      t.Port,
		Database:  t.Database,
		Auth:      tabload.AuthMethod(t.AuthMethod),
		AWSRegion: t.AWSRegion,
	}

	if desc.Table == "" {
		desc.Table = tabload.DefaultTable
	}
	if desc.BatchSize == 0 {
		desc.BatchSize = tabload.DefaultBatchSize
	}
	if desc.Kind == tabload.BackendPostgres && desc.Port == 0 {
		desc.Port = tabload.DefaultPostgresPort
	}
	if desc.Auth == "" {
		desc.Auth = tabload.AuthPassword
	}
	if desc.AWSRegion == "" {
		desc.AWSRegion = os.Getenv("AWS_REGION")
	}
	return desc
}

// Delimiter returns the source delimiter as a rune. Validate guarantees the
// config holds exactly one character.
func (c *ProjectConfig) Delimiter() rune {
	return []rune(c.Source.Delimiter)[0]
}
