package gateway

import (
	"context"
	"fmt"
	"log"

	"event-solution/internal/services/gateway/esewa"
	"event-solution/internal/services/gateway/khalti"
)

// Factory creates gateway instances based on provider type.
type Factory struct{}

// NewFactory creates a new gateway factory.
func NewFactory() *Factory {
	return &Factory{}
}

// CreateGateway creates a gateway instance based on provider type and configuration.
func (f *Factory) CreateGateway(ctx context.Context, provider Provider, config interface{}) (PaymentGateway, error) {
	switch provider {
	case ProviderKhalti:
		khaltiConfig, ok := config.(*khalti.Config)
		if !ok {
			return nil, fmt.Errorf("invalid Khalti config type, expected *khalti.Config")
		}
		return NewKhaltiAdapter(ctx, khaltiConfig)

	case ProviderEsewa:
		esewaConfig, ok := config.(*esewa.Config)
		if !ok {
			return nil, fmt.Errorf("invalid eSewa config type, expected *esewa.Config")
		}
		return NewEsewaAdapter(ctx, esewaConfig)

	default:
		return nil, fmt.Errorf("unsupported payment provider: %s", provider)
	}
}

// GetSupportedProviders returns list of supported payment providers.
func (f *Factory) GetSupportedProviders() []Provider {
	return []Provider{
		ProviderKhalti,
		ProviderEsewa,
	}
}

// Registry manages the configured gateway instances.
type Registry struct {
	gateways map[Provider]PaymentGateway
	factory  *Factory
	primary  Provider
}

// NewRegistry creates a new gateway registry.
func NewRegistry(factory *Factory) *Registry {
	return &Registry{
		gateways: make(map[Provider]PaymentGateway),
		factory:  factory,
	}
}

// Register creates and registers a gateway instance.
func (r *Registry) Register(ctx context.Context, provider Provider, config interface{}) error {
	gw, err := r.factory.CreateGateway(ctx, provider, config)
	if err != nil {
		return fmt.Errorf("failed to create %s gateway: %w", provider, err)
	}

	r.gateways[provider] = gw

	// First registered gateway becomes the primary.
	if r.primary == "" {
		r.primary = provider
	}

	return nil
}

// Get returns a gateway instance by provider.
func (r *Registry) Get(provider Provider) (PaymentGateway, error) {
	gw, exists := r.gateways[provider]
	if !exists {
		return nil, fmt.Errorf("payment provider %s not registered", provider)
	}
	return gw, nil
}

// Primary returns the primary gateway instance.
func (r *Registry) Primary() (PaymentGateway, error) {
	if r.primary == "" {
		return nil, fmt.Errorf("no primary payment provider configured")
	}
	return r.Get(r.primary)
}

// SetPrimary sets the primary payment provider.
func (r *Registry) SetPrimary(provider Provider) error {
	if _, exists := r.gateways[provider]; !exists {
		return fmt.Errorf("payment provider %s not registered", provider)
	}
	r.primary = provider
	return nil
}

// Available returns list of registered payment providers.
func (r *Registry) Available() []Provider {
	providers := make([]Provider, 0, len(r.gateways))
	for provider := range r.gateways {
		providers = append(providers, provider)
	}
	return providers
}

// Close gracefully closes all gateway connections.
func (r *Registry) Close(ctx context.Context) error {
	for provider, gw := range r.gateways {
		if err := gw.Close(ctx); err != nil {
			// Log error but continue closing other gateways.
			log.Printf("Error closing %s gateway: %v", provider, err)
		}
	}
	return nil
}
