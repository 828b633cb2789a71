package secrets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/kevin07696/ussd-push-service/internal/adapters/ports"
)

// localSecretManager implements SecretStore using JSON files on the local filesystem
// WARNING: This is for development only. Use AWS Secrets Manager or Vault in production.
type localSecretManager struct {
	basePath string
	logger   *zap.Logger
}

// NewLocalSecretManager creates a new local filesystem secret store
func NewLocalSecretManager(basePath string, logger *zap.Logger) ports.SecretStore {
	return &localSecretManager{
		basePath: basePath,
		logger:   logger,
	}
}

// GetSecret reads basePath/secretPath(.json) as a JSON object
func (m *localSecretManager) GetSecret(ctx context.Context, secretPath string) (*ports.Secret, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !strings.HasSuffix(secretPath, ".json") {
		secretPath += ".json"
	}
	filePath := filepath.Join(m.basePath, filepath.Clean("/"+secretPath))

	m.logger.Debug("Reading secret from filesystem",
		zap.String("path", secretPath),
	)

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("secret not found: %s", secretPath)
		}
		return nil, fmt.Errorf("failed to read secret: %w", err)
	}

	values, err := decodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode secret %s: %w", secretPath, err)
	}

	return &ports.Secret{
		Values:  values,
		Version: "v1",
	}, nil
}
