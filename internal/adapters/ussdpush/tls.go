package ussdpush

import (
	"os"

	"go.uber.org/zap"

	"github.com/kevin07696/ussd-push-service/internal/adapters/ports"
	"github.com/kevin07696/ussd-push-service/internal/config"
)

// LoadTLSMaterial reads the configured CA, certificate and key for a single call
// A path that is unset or unreadable yields no value; the call proceeds without it
func LoadTLSMaterial(cfg config.TLSConfig, logger *zap.Logger) ports.TLSMaterial {
	return ports.TLSMaterial{
		CA:         readOptional(cfg.CAPath, "ca", logger),
		Cert:       readOptional(cfg.CertPath, "cert", logger),
		Key:        readOptional(cfg.KeyPath, "key", logger),
		Passphrase: cfg.Passphrase,
	}
}

func readOptional(path, kind string, logger *zap.Logger) []byte {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("TLS material unavailable, continuing without it",
			zap.String("kind", kind),
			zap.String("path", path),
			zap.Error(err))
		return nil
	}
	return data
}
