package hcl

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/restifygo/internal/config"
	"github.com/vk/restifygo/internal/ctxlog"
	"github.com/vk/restifygo/internal/fsutil"
	"github.com/vk/restifygo/internal/schema"
)

// Loader implements config.Loader for HCL files.
type Loader struct{}

// NewLoader creates a new HCL loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load discovers .hcl files under each path, parses them, and translates
// the result into the format-agnostic config model. Nonexistent paths are
// skipped silently; a directory with no .hcl files yields an empty model.
// Files are processed in sorted path order so the result is deterministic.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	var filePaths []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				logger.Debug("Configuration path does not exist, skipping.", "path", path)
				continue
			}
			return nil, err
		}
		if !info.IsDir() {
			filePaths = append(filePaths, path)
			continue
		}
		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to scan configuration directory %s: %w", path, err)
		}
		filePaths = append(filePaths, found...)
	}
	sort.Strings(filePaths)

	model := &config.Model{API: &config.APIConfig{}}
	parser := hclparse.NewParser()

	for _, filePath := range filePaths {
		hclFile, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", filePath, diags)
		}

		var file schema.File
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &file); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", filePath, diags)
		}

		if file.API != nil {
			translateAPI(model.API, file.API)
		}
		for _, block := range file.Repositories {
			def, err := translateRepository(block)
			if err != nil {
				return nil, fmt.Errorf("invalid repository manifest in %s: %w", filePath, err)
			}
			model.Repositories = append(model.Repositories, def)
		}
		logger.Debug("Loaded definitions from HCL file.", "file", filePath)
	}

	logger.Debug("Configuration loaded and translated into unified model.",
		"repository_definitions", len(model.Repositories))
	return model, nil
}
