package directory

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wardenauth/warden/auth"
)

// seedDocument is the YAML shape of a directory seed file.
type seedDocument struct {
	Principals []seedPrincipal `yaml:"principals"`
	Resources  []seedResource  `yaml:"resources"`
}

type seedPrincipal struct {
	Identifier  string   `yaml:"identifier"`
	SecretHash  string   `yaml:"secretHash"`
	AccountKind string   `yaml:"accountKind"`
	Authorities []string `yaml:"authorities"`

	// Activation flags default to an active account when omitted.
	Enabled            *bool `yaml:"enabled"`
	Locked             bool  `yaml:"locked"`
	AccountExpired     bool  `yaml:"accountExpired"`
	CredentialsExpired bool  `yaml:"credentialsExpired"`
}

type seedResource struct {
	Identifier  string   `yaml:"identifier"`
	URI         string   `yaml:"uri"`
	Authorities []string `yaml:"authorities"`
}

// LoadFile builds an in-memory directory from a YAML seed file.
func LoadFile(path string) (*Memory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("directory: read seed file: %w", err)
	}
	return Load(data)
}

// Load builds an in-memory directory from YAML seed data.
func Load(data []byte) (*Memory, error) {
	var doc seedDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("directory: parse seed: %w", err)
	}

	m := NewMemory()
	for _, sp := range doc.Principals {
		kind, err := auth.ParseAccountKind(sp.AccountKind)
		if err != nil {
			return nil, fmt.Errorf("directory: principal %q: %w", sp.Identifier, err)
		}
		enabled := true
		if sp.Enabled != nil {
			enabled = *sp.Enabled
		}
		p := &auth.Principal{
			Identifier:         sp.Identifier,
			SecretHash:         sp.SecretHash,
			Kind:               kind,
			Authorities:        sp.Authorities,
			Enabled:            enabled,
			Locked:             sp.Locked,
			AccountExpired:     sp.AccountExpired,
			CredentialsExpired: sp.CredentialsExpired,
		}
		if err := m.AddPrincipal(p); err != nil {
			return nil, err
		}
	}

	for _, sr := range doc.Resources {
		r := &auth.Resource{
			Identifier:  sr.Identifier,
			URI:         sr.URI,
			Authorities: sr.Authorities,
		}
		if err := m.AddResource(r); err != nil {
			return nil, err
		}
	}

	return m, nil
}
