package persona

import (
	"fmt"
	"os"
	"path/filepath"

	chatErrors "github.com/mantonx/cinebot/internal/modules/chatbotmodule/errors"
	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/types"
	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk layout:
//
//	personas:
//	  - id: horror_host
//	    display_name: Horror Host
//	    image_ref: avatars/horror_host.png
//	    contexts: [horror, thriller]
//	    emotions: [surprised]
//	    description: ...
type catalogFile struct {
	Personas []types.PersonaRecord `yaml:"personas"`
}

// ParseYAML decodes and validates a catalog document.
func ParseYAML(data []byte) ([]types.PersonaRecord, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, chatErrors.CatalogError("parse_catalog", err)
	}
	if err := Validate(f.Personas); err != nil {
		return nil, err
	}
	return f.Personas, nil
}

// LoadFile reads and validates the catalog at path.
func LoadFile(path string) ([]types.PersonaRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, chatErrors.CatalogError("load_catalog", err).WithDetail("path", path)
	}
	records, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// MarshalYAML encodes records in the catalog file layout.
func MarshalYAML(records []types.PersonaRecord) ([]byte, error) {
	return yaml.Marshal(catalogFile{Personas: records})
}

// WriteFile writes records to path, creating the parent directory.
func WriteFile(path string, records []types.PersonaRecord) error {
	data, err := MarshalYAML(records)
	if err != nil {
		return chatErrors.CatalogError("write_catalog", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return chatErrors.CatalogError("write_catalog", err).WithDetail("path", path)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return chatErrors.CatalogError("write_catalog", err).WithDetail("path", path)
	}
	return nil
}
