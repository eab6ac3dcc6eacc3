package utils

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ─── Section configs ────────────────────────────────────────────────────

type ConverterSection struct {
	Zone         string `yaml:"zone"`
	StrictDecode bool   `yaml:"strict_decode"`
}

type InputConfig struct {
	ChannelBuffer int `yaml:"channel_buffer"`
	MaxFileSizeMB int `yaml:"max_file_size_mb"`
}

// SelectionConfig chooses the selected sub-track. Ranges are 1-based
// record positions ("1-20,25,30-"); an empty include means all records.
type SelectionConfig struct {
	Include     string   `yaml:"include"`
	Exclude     string   `yaml:"exclude"`
	StationFrom *float64 `yaml:"station_from"`
	StationTo   *float64 `yaml:"station_to"`
}

type KMLOutputConfig struct {
	DocumentName string `yaml:"document_name"`
	Description  string `yaml:"description"`
}

type CSVOutputConfig struct {
	Enabled      bool   `yaml:"enabled"`
	Encoding     string `yaml:"encoding"` // "utf-8", "windows-1252" or "iso-8859-1"
	WriteHeader  bool   `yaml:"write_header"`
	BufferSizeKB int    `yaml:"buffer_size_kb"`
}

type PreviewConfig struct {
	Enabled bool `yaml:"enabled"`
}

type OutputConfig struct {
	Dir       string          `yaml:"dir"`
	Overwrite bool            `yaml:"overwrite"`
	KML       KMLOutputConfig `yaml:"kml"`
	CSV       CSVOutputConfig `yaml:"csv"`
	Preview   PreviewConfig   `yaml:"preview"`
}

type BatchConfig struct {
	Prefix string `yaml:"prefix"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConverterConfig is the top-level structure for converter.yaml.
type ConverterConfig struct {
	Converter ConverterSection `yaml:"converter"`
	Input     InputConfig      `yaml:"input"`
	Selection SelectionConfig  `yaml:"selection"`
	Output    OutputConfig     `yaml:"output"`
	Batch     BatchConfig      `yaml:"batch"`
	Logging   LoggingConfig    `yaml:"logging"`
}

// DefaultConverterConfig is used when no config file exists and as the
// base every loaded file is merged onto.
func DefaultConverterConfig() *ConverterConfig {
	cfg := &ConverterConfig{}
	cfg.Input.ChannelBuffer = 8
	cfg.Input.MaxFileSizeMB = 64
	cfg.Output.Dir = "."
	cfg.Output.CSV.Encoding = "utf-8"
	cfg.Output.CSV.WriteHeader = true
	cfg.Output.CSV.BufferSizeKB = 64
	cfg.Batch.Prefix = "trassen"
	cfg.Logging.Level = "info"
	return cfg
}

// ─── Loaders ────────────────────────────────────────────────────────────

// LoadConverterConfig reads converter.yaml on top of the defaults, then
// applies environment overrides. A missing file is not an error.
func LoadConverterConfig(path string) (*ConverterConfig, error) {
	cfg := DefaultConverterConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse converter config: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("read converter config: %w", err)
	}

	ApplyEnv(cfg)
	return cfg, nil
}

// LoadDotEnv loads KEY=value pairs from a .env file into the process
// environment without overriding variables that are already set. A missing
// file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides config values from TRA_ZONE, TRA_OUTPUT_DIR,
// LOG_LEVEL and LOG_FILE.
func ApplyEnv(cfg *ConverterConfig) {
	if v := strings.TrimSpace(os.Getenv("TRA_ZONE")); v != "" {
		cfg.Converter.Zone = v
	}
	if v := strings.TrimSpace(os.Getenv("TRA_OUTPUT_DIR")); v != "" {
		cfg.Output.Dir = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		cfg.Logging.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_FILE")); v != "" {
		cfg.Logging.File = v
	}
}
