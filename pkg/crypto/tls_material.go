package crypto

import (
	"crypto/sha256"
	"crypto/tls"
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"fmt"
)

// ParseCertPool builds a certificate pool from one or more PEM-encoded CA certificates.
func ParseCertPool(caPEM []byte) (*x509.CertPool, error) {
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caPEM) {
		return nil, fmt.Errorf("failed to parse CA certificate")
	}
	return pool, nil
}

// LoadClientCertificate parses a PEM certificate and private key into a TLS client certificate.
// An encrypted key is decrypted with passphrase first.
func LoadClientCertificate(certPEM, keyPEM []byte, passphrase string) (tls.Certificate, error) {
	key, err := DecryptPrivateKey(keyPEM, passphrase)
	if err != nil {
		return tls.Certificate{}, err
	}

	cert, err := tls.X509KeyPair(certPEM, key)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("failed to load client certificate: %w", err)
	}
	return cert, nil
}

// DecryptPrivateKey returns keyPEM with any legacy PEM encryption removed.
// Unencrypted keys are returned unchanged; the passphrase is ignored for them.
func DecryptPrivateKey(keyPEM []byte, passphrase string) ([]byte, error) {
	block, _ := pem.Decode(keyPEM)
	if block == nil {
		return nil, fmt.Errorf("failed to parse PEM block")
	}

	//nolint:staticcheck // gateway-issued keys still use RFC 1423 encryption
	if !x509.IsEncryptedPEMBlock(block) {
		return keyPEM, nil
	}
	if passphrase == "" {
		return nil, fmt.Errorf("private key is encrypted but no passphrase was supplied")
	}

	//nolint:staticcheck // see above
	der, err := x509.DecryptPEMBlock(block, []byte(passphrase))
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt private key: %w", err)
	}

	return pem.EncodeToMemory(&pem.Block{
		Type:  block.Type,
		Bytes: der,
	}), nil
}

// ComputeFingerprint computes the SHA-256 fingerprint of the first PEM block.
func ComputeFingerprint(certPEM []byte) (string, error) {
	block, _ := pem.Decode(certPEM)
	if block == nil {
		return "", fmt.Errorf("failed to parse PEM block")
	}

	hash := sha256.Sum256(block.Bytes)
	return hex.EncodeToString(hash[:]), nil
}
