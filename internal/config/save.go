package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/spaceplace/internal/log"
)

// SaveStorage updates the storage section in the config file.
// This preserves comments and formatting in other sections by using yaml.Node.
func SaveStorage(configPath string, storage StorageConfig) error {
	if err := ValidateStorage(storage); err != nil {
		return err
	}

	data, err := os.ReadFile(configPath) //nolint:gosec // path comes from the user's --config flag
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	// Parse into yaml.Node to preserve comments
	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	storageNode, err := buildStorageNode(storage)
	if err != nil {
		return fmt.Errorf("building storage node: %w", err)
	}
	setTopLevelKey(&doc, "storage", storageNode)

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	if err := writeAtomic(configPath, buf.Bytes()); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to save storage config", err, "path", configPath)
		return err
	}
	log.Info(log.CatConfig, "Saved storage config", "path", configPath,
		"celestial_file", storage.CelestialFile, "systems_file", storage.SystemsFile)
	return nil
}

// setTopLevelKey replaces the value of key in the document's root mapping,
// appending it when absent and creating the document when empty.
func setTopLevelKey(doc *yaml.Node, key string, value *yaml.Node) {
	if doc.Kind == 0 {
		*doc = yaml.Node{
			Kind: yaml.DocumentNode,
			Content: []*yaml.Node{
				{
					Kind: yaml.MappingNode,
					Content: []*yaml.Node{
						{Kind: yaml.ScalarNode, Value: key},
						value,
					},
				},
			},
		}
		return
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i < len(root.Content)-1; i += 2 {
		if root.Content[i].Value == key {
			root.Content[i+1] = value
			return
		}
	}
	root.Content = append(root.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		value,
	)
}

// buildStorageNode creates a yaml.Node representing the storage mapping.
// An empty dir is left out so the runtime default applies.
func buildStorageNode(storage StorageConfig) (*yaml.Node, error) {
	type storageYAML struct {
		Dir           string `yaml:"dir,omitempty"`
		CelestialFile string `yaml:"celestial_file"`
		SystemsFile   string `yaml:"systems_file"`
	}

	var node yaml.Node
	if err := node.Encode(storageYAML(storage)); err != nil {
		return nil, err
	}
	return &node, nil
}

// writeAtomic writes data to a temp file beside path and renames it into place.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".spaceplace.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	return nil
}
