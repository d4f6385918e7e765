package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rkowalik/tabload/pkg/tabload"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tabload.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_AllFields(t *testing.T) {
	path := writeConfig(t, `source:
  file_path: data/employees.csv
  delimiter: "|"
  header: true

target:
  type: postgres
  host: db.internal
  port: 5433
  database: analytics
  table: employees
  mode: replace
  batch_size: 500
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "data/employees.csv", cfg.Source.FilePath)
	assert.Equal(t, "|", cfg.Source.Delimiter)
	assert.True(t, cfg.Source.Header)
	assert.Equal(t, "postgres", cfg.Target.Type)
	assert.Equal(t, "db.internal", cfg.Target.Host)
	assert.Equal(t, 5433, cfg.Target.Port)
	assert.Equal(t, "analytics", cfg.Target.Database)
	assert.Equal(t, "employees", cfg.Target.Table)
	assert.Equal(t, "replace", cfg.Target.Mode)
	assert.Equal(t, 500, cfg.Target.BatchSize)
}

func TestLoad_EmbeddedTarget(t *testing.T) {
	path := writeConfig(t, `source:
  file_path: employees.csv
  delimiter: ","
  header: true

target:
  type: duckdb
  path: ./local.db
  table: employees
  mode: append
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	desc := cfg.Descriptor()
	assert.Equal(t, tabload.BackendDuckDB, desc.Kind)
	assert.True(t, desc.Embedded())
	assert.Equal(t, "./local.db", desc.Path)
	assert.Equal(t, tabload.ModeAppend, desc.Mode)
	assert.Equal(t, tabload.DefaultBatchSize, desc.BatchSize)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.Is(err, ErrConfigNotFound), "expected ErrConfigNotFound, got: %v", err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "{{invalid")

	cfg, err := Load(path)
	assert.True(t, errors.Is(err, tabload.ErrConfigInvalid), "expected ErrConfigInvalid, got: %v", err)
	assert.Nil(t, cfg)
}

func TestValidate_RejectsBadMode(t *testing.T) {
	cfg := &ProjectConfig{
		Source: SourceConfig{FilePath: "a.csv", Delimiter: ",", Header: true},
		Target: TargetConfig{Type: "duckdb", Path: "x.db", Table: "employees", Mode: "overwrite"},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, tabload.ErrConfigInvalid))
	assert.Contains(t, err.Error(), "overwrite")
}

func TestValidate_RejectsBadDelimiter(t *testing.T) {
	for _, delim := range []string{"", "||", "comma"} {
		cfg := &ProjectConfig{
			Source: SourceConfig{FilePath: "a.csv", Delimiter: delim},
			Target: TargetConfig{Type: "duckdb", Path: "x.db", Mode: "append"},
		}
		err := cfg.Validate()
		assert.True(t, errors.Is(err, tabload.ErrConfigInvalid), "delimiter %q should be rejected", delim)
	}
}

func TestValidate_RejectsUnknownBackend(t *testing.T) {
	cfg := &ProjectConfig{
		Source: SourceConfig{FilePath: "a.csv", Delimiter: ","},
		Target: TargetConfig{Type: "oracle", Table: "employees", Mode: "append"},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")
}

func TestValidate_NetworkedRequiresHostAndDatabase(t *testing.T) {
	cfg := &ProjectConfig{
		Source: SourceConfig{FilePath: "a.csv", Delimiter: ","},
		Target: TargetConfig{Type: "postgres", Table: "employees", Mode: "append"},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "target.host")
	assert.Contains(t, err.Error(), "target.database")
}

func TestValidate_AWSIAMRequiresRegion(t *testing.T) {
	t.Setenv("AWS_REGION", "")

	cfg := &ProjectConfig{
		Source: SourceConfig{FilePath: "a.csv", Delimiter: ","},
		Target: TargetConfig{
			Type: "postgres", Host: "rds.internal", Database: "hr",
			Table: "employees", Mode: "append", AuthMethod: "aws_iam",
		},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "aws_region")

	cfg.Target.AWSRegion = "eu-west-1"
	assert.NoError(t, cfg.Validate())
}

func TestDescriptor_Defaults(t *testing.T) {
	cfg := &ProjectConfig{
		Source: SourceConfig{FilePath: "a.csv", Delimiter: ","},
		Target: TargetConfig{Type: "postgres", Host: "h", Database: "d", Mode: "append"},
	}
	require.NoError(t, cfg.Validate())

	desc := cfg.Descriptor()
	assert.Equal(t, tabload.DefaultTable, desc.Table)
	assert.Equal(t, tabload.DefaultPostgresPort, desc.Port)
	assert.Equal(t, tabload.DefaultBatchSize, desc.BatchSize)
	assert.Equal(t, tabload.AuthPassword, desc.Auth)
}

func TestDelimiter_Rune(t *testing.T) {
	cfg := &ProjectConfig{Source: SourceConfig{Delimiter: "\t"}}
	assert.Equal(t, '\t', cfg.Delimiter())
}
