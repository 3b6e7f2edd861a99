package providers

// Factory is a function that creates a provider from a spec.
type Factory func(spec Spec) (Provider, error)

var factories = make(map[string]Factory)

// RegisterFactory registers a factory function for a provider type.
func RegisterFactory(providerType string, factory Factory) {
	factories[providerType] = factory
}

// Spec holds the configuration needed to create a provider instance.
type Spec struct {
	ID       string   `yaml:"id"`
	Type     string   `yaml:"type"`
	Model    string   `yaml:"model"`
	BaseURL  string   `yaml:"base_url"`
	Defaults Defaults `yaml:"defaults"`
}

// CreateFromSpec creates a provider implementation from a spec.
// Returns an error if the provider type is unsupported.
func CreateFromSpec(spec Spec) (Provider, error) {
	if spec.BaseURL == "" {
		switch spec.Type {
		case "openai":
			spec.BaseURL = "https://api.openai.com/v1"
		case "mock":
			// No base URL needed for mock provider
		}
	}

	factory, exists := factories[spec.Type]
	if !exists {
		return nil, &UnsupportedProviderError{ProviderType: spec.Type}
	}

	return factory(spec)
}

// UnsupportedProviderError is returned when a provider type is not recognized.
type UnsupportedProviderError struct {
	ProviderType string
}

func (e *UnsupportedProviderError) Error() string {
	return "unsupported provider type: " + e.ProviderType
}
