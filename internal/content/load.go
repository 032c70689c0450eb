package content

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// Load returns the built-in content, overlaid with the YAML file at path when
// one is given. Tables present in the file replace the built-in ones wholesale.
func Load(path string) (*Site, error) {
	site := Default()
	if path == "" {
		return site, site.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content file: %w", err)
	}

	if err := Parse(data, site); err != nil {
		return nil, err
	}

	log.Printf("Loaded site content from %s (%d projects)", path, len(site.Projects))
	return site, nil
}

// Parse overlays YAML content onto site and validates the result
func Parse(data []byte, site *Site) error {
	if err := yaml.Unmarshal(data, site); err != nil {
		return fmt.Errorf("parse content: %w", err)
	}
	return site.Validate()
}
