package secrets

import (
	"context"
	"fmt"
	"strings"
	"time"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
	"go.uber.org/zap"

	"github.com/kevin07696/ussd-push-service/internal/adapters/ports"
)

// secretVersionAccessor is the subset of the Secret Manager client the adapter calls
type secretVersionAccessor interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error)
}

// gcpSecretManager implements the SecretStore port for Google Cloud Secret Manager
type gcpSecretManager struct {
	client    secretVersionAccessor
	close     func() error
	projectID string
	logger    *zap.Logger
}

// NewGCPSecretManager creates a Secret Manager adapter for projectID
// Credentials come from the default chain:
//   - GOOGLE_APPLICATION_CREDENTIALS pointing to a service account JSON
//   - workload identity in GKE
//   - application default credentials
//
// The returned store implements io.Closer.
func NewGCPSecretManager(ctx context.Context, projectID string, logger *zap.Logger) (ports.SecretStore, error) {
	if projectID == "" {
		return nil, fmt.Errorf("GCP project ID is required")
	}

	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCP Secret Manager client: %w", err)
	}

	logger.Info("GCP Secret Manager initialized", zap.String("project_id", projectID))

	sm := newGCPSecretManager(client, projectID, logger)
	sm.close = client.Close
	return sm, nil
}

func newGCPSecretManager(client secretVersionAccessor, projectID string, logger *zap.Logger) *gcpSecretManager {
	return &gcpSecretManager{
		client:    client,
		projectID: projectID,
		logger:    logger,
	}
}

// Close releases the underlying client connection
func (sm *gcpSecretManager) Close() error {
	if sm.close == nil {
		return nil
	}
	return sm.close()
}

// GetSecret reads the latest version of the secret named path
// Slashes are not allowed in GCP secret ids, so "ussd-push-service/gateway" maps to
// projects/{project}/secrets/ussd-push-service-gateway/versions/latest
func (sm *gcpSecretManager) GetSecret(ctx context.Context, path string) (*ports.Secret, error) {
	name := fmt.Sprintf("projects/%s/secrets/%s/versions/latest", sm.projectID, secretID(path))

	startTime := time.Now()
	result, err := sm.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		sm.logger.Error("Failed to access GCP secret",
			zap.String("path", path),
			zap.String("secret_name", name),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to access GCP secret %s: %w", path, err)
	}

	values, err := decodeDocument(result.GetPayload().GetData())
	if err != nil {
		return nil, fmt.Errorf("failed to decode secret %s: %w", path, err)
	}

	version := versionFromName(result.GetName())
	sm.logger.Info("Secret fetched from GCP",
		zap.String("path", path),
		zap.String("version", version),
		zap.Duration("elapsed", time.Since(startTime)),
	)

	return &ports.Secret{
		Values:  values,
		Version: version,
	}, nil
}

func secretID(path string) string {
	return strings.ReplaceAll(strings.Trim(path, "/"), "/", "-")
}

// versionFromName returns the trailing version of
// projects/{project}/secrets/{secret}/versions/{version}
func versionFromName(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 && i < len(name)-1 {
		return name[i+1:]
	}
	return "unknown"
}
