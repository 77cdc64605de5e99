package dashboard

import "fmt"

// BootstrapOptions configures the default registry.
type BootstrapOptions struct {
	ManifestPath string
	Sources      Sources
}

// NewDefaultRegistry builds a registry with the built-in definitions, applies the
// optional manifest and installs the default providers.
func NewDefaultRegistry(opts BootstrapOptions) (*Registry, error) {
	reg := NewRegistry()
	if opts.ManifestPath != "" {
		if _, err := reg.LoadManifestFile(opts.ManifestPath); err != nil {
			return nil, err
		}
	}
	if err := RegisterDefaultProviders(reg, opts.Sources); err != nil {
		return nil, fmt.Errorf("dashboard: register providers: %w", err)
	}
	return reg, nil
}
