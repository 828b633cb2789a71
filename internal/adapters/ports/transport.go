package ports

import (
	"context"
	"net/http"
)

// HTTPClient is a minimal HTTP client interface used by the transport
// This allows tests to replace the network without a listener
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// TLSMaterial holds PEM-encoded TLS material read for a single call
// Empty fields mean "not configured"
type TLSMaterial struct {
	CA         []byte
	Cert       []byte
	Key        []byte
	Passphrase string
}

// IsEmpty reports whether no client certificate or CA was supplied
func (m TLSMaterial) IsEmpty() bool {
	return len(m.CA) == 0 && len(m.Cert) == 0 && len(m.Key) == 0
}

// TransportRequest is a single SOAP call to the gateway
type TransportRequest struct {
	Headers map[string]string
	URL     string
	Method  string // Defaults to POST
	Body    string
	TLS     TLSMaterial
}

// Transport sends an envelope to the gateway and returns the raw response body
// Returns error only when no response body could be obtained (network, TLS, cancellation);
// HTTP error statuses still return the body because SOAP faults arrive as HTTP 500
type Transport interface {
	Send(ctx context.Context, req *TransportRequest) ([]byte, error)
}
