package soaphttp

import (
	"context"
	"crypto/sha256"
	"crypto/tls"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kevin07696/ussd-push-service/internal/adapters/ports"
	"github.com/kevin07696/ussd-push-service/pkg/crypto"
	pkghttp "github.com/kevin07696/ussd-push-service/pkg/http"
)

// maxResponseBytes caps how much of a gateway response is read
const maxResponseBytes = 4 << 20

// maxTLSClients bounds the number of distinct TLS material sets kept with a live pool
const maxTLSClients = 8

// ClientFactory builds an HTTP client for a call that needs its own TLS settings
type ClientFactory func(tlsConfig *tls.Config) ports.HTTPClient

// transport implements ports.Transport over HTTP(S)
type transport struct {
	client    ports.HTTPClient
	newClient ClientFactory
	logger    *zap.Logger

	// Clients for calls carrying TLS material, keyed by a digest of that material
	mu         sync.Mutex
	tlsClients map[string]ports.HTTPClient
}

// NewTransport creates a gateway transport using pooled clients built from clientConfig
func NewTransport(clientConfig *pkghttp.HTTPClientConfig, timeout time.Duration, logger *zap.Logger) ports.Transport {
	return NewTransportWithClient(
		pkghttp.NewHTTPClient(clientConfig, timeout),
		func(tlsConfig *tls.Config) ports.HTTPClient {
			return pkghttp.NewHTTPClientWithTLS(clientConfig, timeout, tlsConfig)
		},
		logger,
	)
}

// NewTransportWithClient creates a transport around an existing client
// newClient is used only for calls carrying TLS material; nil means always use client
func NewTransportWithClient(client ports.HTTPClient, newClient ClientFactory, logger *zap.Logger) ports.Transport {
	return &transport{
		client:     client,
		newClient:  newClient,
		logger:     logger,
		tlsClients: make(map[string]ports.HTTPClient),
	}
}

// Send posts the envelope and returns the response body for any HTTP status
func (t *transport) Send(ctx context.Context, req *ports.TransportRequest) ([]byte, error) {
	method := req.Method
	if method == "" {
		method = http.MethodPost
	}

	client, err := t.clientFor(req.TLS)
	if err != nil {
		t.logger.Error("Invalid TLS material", zap.String("url", req.URL), zap.Error(err))
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, strings.NewReader(req.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range req.Headers {
		if value != "" {
			httpReq.Header.Set(key, value)
		}
	}

	startTime := time.Now()
	httpResp, err := client.Do(httpReq)
	if err != nil {
		t.logger.Error("Failed to send gateway request",
			zap.String("url", req.URL),
			zap.Duration("elapsed", time.Since(startTime)),
			zap.Error(err))
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	if err != nil {
		t.logger.Error("Failed to read response body", zap.Error(err))
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// Faults arrive as HTTP 500 with a SOAP body, so status alone decides nothing
	fields := []zap.Field{
		zap.String("url", req.URL),
		zap.Int("status_code", httpResp.StatusCode),
		zap.Duration("elapsed", time.Since(startTime)),
		zap.Int("body_length", len(body)),
	}
	if httpResp.StatusCode >= http.StatusBadRequest {
		t.logger.Warn("Gateway returned error status", fields...)
	} else {
		t.logger.Debug("Received gateway response", fields...)
	}

	return body, nil
}

// clientFor returns the client for the given material
// The material is read per call; a client and its connection pool are reused while
// the material stays the same.
func (t *transport) clientFor(material ports.TLSMaterial) (ports.HTTPClient, error) {
	if material.IsEmpty() || t.newClient == nil {
		return t.client, nil
	}

	key := materialDigest(material)

	t.mu.Lock()
	defer t.mu.Unlock()

	if client, ok := t.tlsClients[key]; ok {
		return client, nil
	}

	tlsConfig, err := BuildTLSConfig(material)
	if err != nil {
		return nil, err
	}

	if len(material.Cert) > 0 {
		if fingerprint, err := crypto.ComputeFingerprint(material.Cert); err == nil {
			t.logger.Debug("Using client certificate", zap.String("fingerprint", fingerprint))
		}
	}

	if len(t.tlsClients) >= maxTLSClients {
		t.evictLocked()
	}

	client := t.newClient(tlsConfig)
	t.tlsClients[key] = client
	return client, nil
}

// evictLocked drops one cached client and closes its idle connections
func (t *transport) evictLocked() {
	for key, client := range t.tlsClients {
		if closer, ok := client.(interface{ CloseIdleConnections() }); ok {
			closer.CloseIdleConnections()
		}
		delete(t.tlsClients, key)
		t.logger.Debug("Evicted TLS client", zap.String("material", key[:12]))
		return
	}
}

// materialDigest identifies a TLS material set without keeping the key bytes around
func materialDigest(material ports.TLSMaterial) string {
	h := sha256.New()
	for _, part := range [][]byte{material.CA, material.Cert, material.Key, []byte(material.Passphrase)} {
		fmt.Fprintf(h, "%d:", len(part))
		h.Write(part)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// BuildTLSConfig converts PEM material into a client TLS configuration
// A certificate without a key (or the reverse) is ignored rather than rejected
func BuildTLSConfig(material ports.TLSMaterial) (*tls.Config, error) {
	cfg := &tls.Config{MinVersion: tls.VersionTLS12}

	if len(material.CA) > 0 {
		pool, err := crypto.ParseCertPool(material.CA)
		if err != nil {
			return nil, err
		}
		cfg.RootCAs = pool
	}

	if len(material.Cert) > 0 && len(material.Key) > 0 {
		cert, err := crypto.LoadClientCertificate(material.Cert, material.Key, material.Passphrase)
		if err != nil {
			return nil, err
		}
		cfg.Certificates = []tls.Certificate{cert}
	}

	return cfg, nil
}
