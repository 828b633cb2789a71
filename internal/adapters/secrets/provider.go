package secrets

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kevin07696/ussd-push-service/internal/adapters/ports"
	"github.com/kevin07696/ussd-push-service/internal/config"
)

// Secret backends selectable with SECRETS_BACKEND
const (
	BackendEnv   = "env"
	BackendVault = "vault"
	BackendAWS   = "aws"
	BackendLocal = "local"
	BackendGCP   = "gcp"
)

// NewStore creates the secret store for the configured backend
// Returns nil, nil for the env backend: credentials come from the environment only
func NewStore(ctx context.Context, cfg config.SecretsConfig, logger *zap.Logger) (ports.SecretStore, error) {
	switch cfg.Backend {
	case BackendEnv, "":
		return nil, nil
	case BackendVault:
		return NewVaultAdapter(DefaultVaultConfig(cfg.VaultAddress, cfg.VaultToken), logger)
	case BackendAWS:
		return NewAWSSecretsManagerAdapter(ctx, &AWSSecretsManagerConfig{
			Region:   cfg.AWSRegion,
			Endpoint: cfg.AWSEndpoint,
		}, logger)
	case BackendLocal:
		return NewLocalSecretManager(cfg.LocalSecretsDir, logger), nil
	case BackendGCP:
		return NewGCPSecretManager(ctx, cfg.GCPProjectID, logger)
	default:
		return nil, fmt.Errorf("unsupported secrets backend: %s", cfg.Backend)
	}
}

// LoadProvider fetches the credential document once and exposes it as a config provider
// A nil store yields an empty provider
func LoadProvider(ctx context.Context, store ports.SecretStore, path string) (config.MapProvider, error) {
	if store == nil {
		return config.MapProvider{}, nil
	}

	secret, err := store.GetSecret(ctx, path)
	if err != nil {
		return nil, err
	}
	return config.MapProvider(secret.Values), nil
}

// GatewayProvider layers secret store values over the process environment
func GatewayProvider(ctx context.Context, store ports.SecretStore, path string) (config.Provider, error) {
	fromStore, err := LoadProvider(ctx, store, path)
	if err != nil {
		return nil, err
	}
	return config.ChainProvider{fromStore, config.EnvProvider{}}, nil
}
