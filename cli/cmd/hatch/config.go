package main

import (
	"path/filepath"

	"go.eggybyte.com/hatch/cli/internal/configschema"
	"go.eggybyte.com/hatch/genx"
)

// configFile returns the hatch.yaml path; relative paths are taken from the project root.
func configFile() string {
	if filepath.IsAbs(settings.Config) {
		return settings.Config
	}
	return filepath.Join(settings.Root, settings.Config)
}

// resolvedTemplateRoot returns --template-root, or the directory holding hatch.yaml.
func resolvedTemplateRoot(file *configschema.File) string {
	if settings.TemplateRoot != "" {
		return settings.TemplateRoot
	}
	return file.Dir
}

// loadConfig loads hatch.yaml and prints its warnings.
//
// Returns:
//   - *configschema.File: Parsed configuration
//   - error: INVALID_ARGUMENT summarizing error diagnostics
func loadConfig() (*configschema.File, error) {
	path := configFile()
	logger.Debug("loading generator definitions", "path", path)

	file, diags := configschema.Load(path)
	if diags.HasErrors() {
		return nil, diags.Err()
	}
	printDiagnostics(diags, false)
	return file, nil
}

// loadRegistry loads hatch.yaml and builds its registry.
func loadRegistry() (*configschema.File, *genx.Registry, error) {
	file, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	reg, err := configschema.BuildRegistry(file, resolvedTemplateRoot(file))
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("generators loaded", "count", reg.Len())
	return file, reg, nil
}
