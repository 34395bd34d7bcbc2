// Package assets registers the client scripts the checkout block loads and
// reads their build manifests.
package assets

import (
	"encoding/json"
	"fmt"
	"os"
)

// FallbackVersion is the script version used when no manifest is bundled.
const FallbackVersion = "1.2.0"

// Manifest is written next to a script bundle by the front-end build.
type Manifest struct {
	Dependencies []string `json:"dependencies"`
	Version      string   `json:"version"`
}

// Fallback returns the manifest used when the bundled one is unavailable.
func Fallback() Manifest {
	return Manifest{Dependencies: []string{}, Version: FallbackVersion}
}

// LoadManifest reads the manifest at path. On any failure it returns the
// fallback manifest together with the error, so callers can log and go on.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fallback(), err
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Fallback(), fmt.Errorf("parsing asset manifest %s: %w", path, err)
	}
	if m.Dependencies == nil {
		m.Dependencies = []string{}
	}
	if m.Version == "" {
		m.Version = FallbackVersion
	}
	return m, nil
}
