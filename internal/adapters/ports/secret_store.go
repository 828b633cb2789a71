package ports

import (
	"context"
)

// Secret is a credential document retrieved from a secret store
// Values are keyed by configuration key (USSD_USERNAME, USSD_PASSWORD, ...)
type Secret struct {
	Values  map[string]string
	Version string
}

// SecretStore defines the port for reading gateway credentials from a secret backend
// Supports multiple backends: AWS Secrets Manager, GCP Secret Manager, HashiCorp Vault, local filesystem
type SecretStore interface {
	// GetSecret retrieves the credential document stored at path
	// Path format depends on implementation:
	//   - AWS: secret name or ARN, e.g. "ussd-push-service/gateway"
	//   - GCP: secret id, slashes become dashes, e.g. "ussd-push-service-gateway"
	//   - Vault: path below the KV mount, e.g. "ussd-push-service/gateway"
	//   - Local: file name below the base directory, ".json" optional
	// Returns error if the secret does not exist, cannot be read, or is not a JSON object
	GetSecret(ctx context.Context, path string) (*Secret, error)
}
