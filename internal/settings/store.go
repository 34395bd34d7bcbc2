package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"gopkg.in/yaml.v3"
)

// Store reads the persisted option bucket.
// The gateway never writes settings; the store's own settings form does.
type Store interface {
	Load(ctx context.Context) (Settings, error)
}

// MemoryStore keeps the bucket in memory. Used in tests and for embedded
// setups where the caller owns the settings.
type MemoryStore struct {
	mu       sync.RWMutex
	settings Settings
}

// NewMemoryStore returns a store holding a copy of s.
func NewMemoryStore(s Settings) *MemoryStore {
	return &MemoryStore{settings: s.Clone()}
}

// Load returns a copy of the held bucket.
func (m *MemoryStore) Load(ctx context.Context) (Settings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings.Clone(), nil
}

// Replace swaps the held bucket.
func (m *MemoryStore) Replace(s Settings) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = s.Clone()
}

// FileStore reads the bucket from a JSON or YAML file, chosen by extension.
// A missing file is an empty bucket, not an error.
type FileStore struct {
	Path string
}

// Load reads and decodes the file on every call so edits apply without a restart.
func (f *FileStore) Load(ctx context.Context) (Settings, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Settings{}, nil
		}
		return nil, fmt.Errorf("reading settings file: %w", err)
	}
	s, err := Decode(data, filepath.Ext(f.Path))
	if err != nil {
		return nil, fmt.Errorf("parsing settings file %s: %w", f.Path, err)
	}
	return s, nil
}

// Decode parses a bucket document. ext selects the format: ".yaml"/".yml"
// for YAML, anything else for JSON. A document may either be the bucket
// itself or wrap it under the option name.
func Decode(data []byte, ext string) (Settings, error) {
	var raw map[string]any
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	}
	if raw == nil {
		return Settings{}, nil
	}
	if inner, ok := raw[OptionName].(map[string]any); ok {
		return Settings(inner), nil
	}
	return Settings(raw), nil
}

// SecretStore reads the bucket as a JSON secret from GCP Secret Manager.
// Secret name format: projects/{project}/secrets/{secret}/versions/latest
type SecretStore struct {
	Name   string
	access func(ctx context.Context, name string) ([]byte, error)
}

// NewSecretStore returns a store for the latest version of secret in project.
func NewSecretStore(project, secret string) *SecretStore {
	return &SecretStore{
		Name:   fmt.Sprintf("projects/%s/secrets/%s/versions/latest", project, secret),
		access: accessSecret,
	}
}

// Load fetches and decodes the secret payload.
func (s *SecretStore) Load(ctx context.Context) (Settings, error) {
	data, err := s.access(ctx, s.Name)
	if err != nil {
		return nil, err
	}
	settings, err := Decode(data, ".json")
	if err != nil {
		return nil, fmt.Errorf("parsing secret JSON: %w", err)
	}
	return settings, nil
}

func accessSecret(ctx context.Context, name string) ([]byte, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating secret manager client: %w", err)
	}
	defer client.Close()

	result, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: name,
	})
	if err != nil {
		return nil, fmt.Errorf("accessing secret %s: %w", name, err)
	}
	return result.Payload.Data, nil
}
