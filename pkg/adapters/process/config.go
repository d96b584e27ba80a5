package process

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sz10101/vym/pkg/domain"
	"gopkg.in/yaml.v3"
)

// ExporterConfig describes an external command that implements one export format.
type ExporterConfig struct {
	Format      string            `yaml:"format" json:"format"`
	Command     string            `yaml:"command" json:"command"`
	Args        []string          `yaml:"args" json:"args"`
	Environment map[string]string `yaml:"env" json:"env"`
	Description string            `yaml:"description" json:"description"`
}

// ConfigFile represents the structure of exporters.yaml
type ConfigFile struct {
	Exporters []ExporterConfig `yaml:"exporters" json:"exporters"`
}

// LoadExporters reads a configuration file (YAML or JSON) and returns the
// exporters keyed by format. A missing file yields no exporters.
func LoadExporters(path string) (map[domain.ExportFormat]ExporterConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[domain.ExportFormat]ExporterConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read exporters config: %w", err)
	}

	var cfg ConfigFile
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return Index(cfg.Exporters)
}

// Index keys exporters by format. Unknown formats are rejected.
func Index(list []ExporterConfig) (map[domain.ExportFormat]ExporterConfig, error) {
	out := make(map[domain.ExportFormat]ExporterConfig, len(list))
	for _, e := range list {
		f := domain.ExportFormat(e.Format)
		if !known(f) {
			return nil, fmt.Errorf("exporter %q: unknown export format", e.Format)
		}
		if e.Command == "" {
			return nil, fmt.Errorf("exporter %q: command missing", e.Format)
		}
		out[f] = e
	}
	return out, nil
}

func known(f domain.ExportFormat) bool {
	for _, k := range domain.ExportFormats {
		if k == f && k != domain.ExportLast {
			return true
		}
	}
	return false
}
