package crypto_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/hex"
	"encoding/pem"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevin07696/ussd-push-service/pkg/crypto"
)

// selfSigned returns a PEM certificate and PKCS#1 key for tests
func selfSigned(t *testing.T) (certPEM, keyPEM []byte, key *rsa.PrivateKey) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	template := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "ussd-push-test"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth},
		IsCA:         true,

		BasicConstraintsValid: true,
	}
	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	require.NoError(t, err)

	certPEM = pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	keyPEM = pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	return certPEM, keyPEM, key
}

func encryptKey(t *testing.T, key *rsa.PrivateKey, passphrase string) []byte {
	t.Helper()

	//nolint:staticcheck // exercising legacy encrypted keys
	block, err := x509.EncryptPEMBlock(rand.Reader, "RSA PRIVATE KEY",
		x509.MarshalPKCS1PrivateKey(key), []byte(passphrase), x509.PEMCipherAES256)
	require.NoError(t, err)
	return pem.EncodeToMemory(block)
}

func TestParseCertPool(t *testing.T) {
	certPEM, _, _ := selfSigned(t)

	pool, err := crypto.ParseCertPool(certPEM)
	require.NoError(t, err)
	assert.NotNil(t, pool)
}

func TestParseCertPool_Invalid(t *testing.T) {
	_, err := crypto.ParseCertPool([]byte("not a certificate"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse CA certificate")
}

func TestLoadClientCertificate(t *testing.T) {
	certPEM, keyPEM, _ := selfSigned(t)

	cert, err := crypto.LoadClientCertificate(certPEM, keyPEM, "")
	require.NoError(t, err)
	assert.Len(t, cert.Certificate, 1)
}

func TestLoadClientCertificate_EncryptedKey(t *testing.T) {
	certPEM, _, key := selfSigned(t)
	encrypted := encryptKey(t, key, "s3cret")

	cert, err := crypto.LoadClientCertificate(certPEM, encrypted, "s3cret")
	require.NoError(t, err)
	assert.Len(t, cert.Certificate, 1)
}

func TestLoadClientCertificate_Errors(t *testing.T) {
	certPEM, keyPEM, key := selfSigned(t)
	encrypted := encryptKey(t, key, "s3cret")

	tests := []struct {
		name       string
		cert       []byte
		key        []byte
		passphrase string
		errMsg     string
	}{
		{
			name:   "empty key",
			cert:   certPEM,
			key:    nil,
			errMsg: "failed to parse PEM block",
		},
		{
			name:   "encrypted key without passphrase",
			cert:   certPEM,
			key:    encrypted,
			errMsg: "no passphrase",
		},
		{
			name:       "wrong passphrase",
			cert:       certPEM,
			key:        encrypted,
			passphrase: "wrong",
			errMsg:     "failed to decrypt private key",
		},
		{
			name:   "invalid certificate",
			cert:   []byte("not a certificate"),
			key:    keyPEM,
			errMsg: "failed to load client certificate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := crypto.LoadClientCertificate(tt.cert, tt.key, tt.passphrase)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestDecryptPrivateKey_Unencrypted(t *testing.T) {
	_, keyPEM, _ := selfSigned(t)

	out, err := crypto.DecryptPrivateKey(keyPEM, "ignored")
	require.NoError(t, err)
	assert.Equal(t, keyPEM, out)
}

func TestComputeFingerprint(t *testing.T) {
	certPEM, _, _ := selfSigned(t)

	fingerprint, err := crypto.ComputeFingerprint(certPEM)
	require.NoError(t, err)

	block, _ := pem.Decode(certPEM)
	hash := sha256.Sum256(block.Bytes)
	assert.Equal(t, hex.EncodeToString(hash[:]), fingerprint)
	assert.Regexp(t, "^[0-9a-f]{64}$", fingerprint)
}

func TestComputeFingerprint_InvalidPEM(t *testing.T) {
	_, err := crypto.ComputeFingerprint([]byte("not a valid PEM"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse PEM block")
}
