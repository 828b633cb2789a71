package config

import (
	"github.com/kevin07696/ussd-push-service/internal/domain"
)

// Gateway configuration keys
const (
	KeyUsername       = "USSD_USERNAME"
	KeyPassword       = "USSD_PASSWORD"
	KeyBusinessNumber = "USSD_BUSINESS_NUMBER"
	KeyBusinessName   = "USSD_BUSINESS_NAME"
	KeyLoginURL       = "USSD_LOGIN_URL"
	KeyRequestURL     = "USSD_REQUEST_URL"
	KeyLoginEventID   = "USSD_LOGIN_EVENT_ID"
	KeyRequestEventID = "USSD_REQUEST_EVENT_ID"
	KeyRequestCommand = "USSD_REQUEST_COMMAND"
	KeyCurrency       = "USSD_CURRENCY"
	KeyCallbackURL    = "USSD_CALLBACK_URL"
	KeyContentType    = "USSD_CONTENT_TYPE"
	KeyAccept         = "USSD_ACCEPT"
	KeyCAPath         = "USSD_CA_PATH"
	KeyCertPath       = "USSD_CERT_PATH"
	KeyKeyPath        = "USSD_KEY_PATH"
	KeyPassphrase     = "USSD_PASSPHRASE"
	KeyCountry        = "USSD_COUNTRY"
	KeyProvider       = "USSD_PROVIDER"
	KeyMethod         = "USSD_METHOD"
	KeyChannel        = "USSD_CHANNEL"
	KeyMode           = "USSD_MODE"
	KeyGateway        = "USSD_GATEWAY"
)

// GatewayConfig is the resolved configuration for one gateway operation
// Treat as immutable: derive variants with WithOverrides instead of mutating
type GatewayConfig struct {
	Username       string
	Password       string
	BusinessNumber string // Short code / till number receiving the funds
	BusinessName   string
	LoginURL       string
	RequestURL     string
	LoginEventID   string
	RequestEventID string
	RequestCommand string
	Currency       string
	CallbackURL    string // Where the gateway posts the asynchronous result
	ContentType    string
	Accept         string
	TLS            TLSConfig
	Client         ClientConfig
}

// TLSConfig holds filesystem paths to mutual TLS material
type TLSConfig struct {
	CAPath     string
	CertPath   string
	KeyPath    string
	Passphrase string
}

// ClientConfig describes this integration in normalized results
type ClientConfig struct {
	Country  string
	Provider string
	Method   string
	Channel  string
	Mode     string // sandbox or live
	Gateway  string
}

// LoadGatewayConfig resolves gateway defaults from a provider
func LoadGatewayConfig(p Provider) GatewayConfig {
	return GatewayConfig{
		Username:       p.GetString(KeyUsername, ""),
		Password:       p.GetString(KeyPassword, ""),
		BusinessNumber: p.GetString(KeyBusinessNumber, ""),
		BusinessName:   p.GetString(KeyBusinessName, ""),
		LoginURL:       p.GetString(KeyLoginURL, ""),
		RequestURL:     p.GetString(KeyRequestURL, ""),
		LoginEventID:   p.GetString(KeyLoginEventID, "2500"),
		RequestEventID: p.GetString(KeyRequestEventID, "40009"),
		RequestCommand: p.GetString(KeyRequestCommand, "CustomerPayBill"),
		Currency:       p.GetString(KeyCurrency, "TZS"),
		CallbackURL:    p.GetString(KeyCallbackURL, ""),
		ContentType:    p.GetString(KeyContentType, "text/xml"),
		Accept:         p.GetString(KeyAccept, "text/xml"),
		TLS: TLSConfig{
			CAPath:     p.GetString(KeyCAPath, ""),
			CertPath:   p.GetString(KeyCertPath, ""),
			KeyPath:    p.GetString(KeyKeyPath, ""),
			Passphrase: p.GetString(KeyPassphrase, ""),
		},
		Client: ClientConfig{
			Country:  p.GetString(KeyCountry, "TZ"),
			Provider: p.GetString(KeyProvider, "vodacom"),
			Method:   p.GetString(KeyMethod, "mobile_money"),
			Channel:  p.GetString(KeyChannel, "ussd_push"),
			Mode:     p.GetString(KeyMode, "sandbox"),
			Gateway:  p.GetString(KeyGateway, "generic_result"),
		},
	}
}

// WithOverrides returns a copy of c where every non-empty field of o replaces c's value
func (c GatewayConfig) WithOverrides(o GatewayConfig) GatewayConfig {
	merged := c
	pick(&merged.Username, o.Username)
	pick(&merged.Password, o.Password)
	pick(&merged.BusinessNumber, o.BusinessNumber)
	pick(&merged.BusinessName, o.BusinessName)
	pick(&merged.LoginURL, o.LoginURL)
	pick(&merged.RequestURL, o.RequestURL)
	pick(&merged.LoginEventID, o.LoginEventID)
	pick(&merged.RequestEventID, o.RequestEventID)
	pick(&merged.RequestCommand, o.RequestCommand)
	pick(&merged.Currency, o.Currency)
	pick(&merged.CallbackURL, o.CallbackURL)
	pick(&merged.ContentType, o.ContentType)
	pick(&merged.Accept, o.Accept)
	pick(&merged.TLS.CAPath, o.TLS.CAPath)
	pick(&merged.TLS.CertPath, o.TLS.CertPath)
	pick(&merged.TLS.KeyPath, o.TLS.KeyPath)
	pick(&merged.TLS.Passphrase, o.TLS.Passphrase)
	pick(&merged.Client.Country, o.Client.Country)
	pick(&merged.Client.Provider, o.Client.Provider)
	pick(&merged.Client.Method, o.Client.Method)
	pick(&merged.Client.Channel, o.Client.Channel)
	pick(&merged.Client.Mode, o.Client.Mode)
	pick(&merged.Client.Gateway, o.Client.Gateway)
	return merged
}

func pick(dst *string, override string) {
	if override != "" {
		*dst = override
	}
}

// ClientInfo returns the identity metadata merged into every normalized result
func (c GatewayConfig) ClientInfo() domain.ClientInfo {
	return domain.ClientInfo{
		Country:        c.Client.Country,
		Provider:       c.Client.Provider,
		Method:         c.Client.Method,
		Channel:        c.Client.Channel,
		Mode:           c.Client.Mode,
		Currency:       c.Currency,
		Gateway:        c.Client.Gateway,
		BusinessName:   c.BusinessName,
		BusinessNumber: c.BusinessNumber,
	}
}

// Snapshot returns a loggable view of the configuration with secrets redacted
// Attached to validation errors for diagnostics
func (c GatewayConfig) Snapshot() map[string]string {
	return map[string]string{
		"username":         c.Username,
		"password":         redact(c.Password),
		"business_number":  c.BusinessNumber,
		"business_name":    c.BusinessName,
		"login_url":        c.LoginURL,
		"request_url":      c.RequestURL,
		"login_event_id":   c.LoginEventID,
		"request_event_id": c.RequestEventID,
		"request_command":  c.RequestCommand,
		"currency":         c.Currency,
		"callback_url":     c.CallbackURL,
	}
}

func redact(secret string) string {
	if secret == "" {
		return ""
	}
	return "[REDACTED]"
}
