package schema

import (
	"encoding/json"
	"fmt"
	"os"
)

// ParseFile parses a service description from a JSON file.
func ParseFile(path string) (Service, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Service{}, fmt.Errorf("read file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses a service description from JSON bytes. Unknown parameter
// kind names are rejected; everything else is taken as declared. Duplicate
// action or parameter names are not an error, lookups resolve to the first
// declared entry.
func Parse(data []byte) (Service, error) {
	var svc Service
	if err := json.Unmarshal(data, &svc); err != nil {
		return Service{}, fmt.Errorf("parse service schema: %w", err)
	}

	return svc, nil
}

// Encode renders a service description as indented JSON, suitable for
// writing back to a schema file. Encode and Parse round-trip: parsing the
// encoded bytes yields an equal Service.
func Encode(svc Service) ([]byte, error) {
	data, err := json.MarshalIndent(svc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode service schema: %w", err)
	}

	return data, nil
}
