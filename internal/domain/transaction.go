package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChargeRequest carries the per-charge details of a USSD push payment
type ChargeRequest struct {
	Date        time.Time       `json:"date"`         // Request date (zero = now)
	MSISDN      string          `json:"msisdn"`       // Customer phone number prompted via USSD
	Reference   string          `json:"reference"`    // Third-party reference (our order/invoice id)
	CallbackURL string          `json:"callback_url"` // Overrides the configured callback destination
	Amount      decimal.Decimal `json:"amount"`
}

// ResultSummary is the gateway's verdict on a call
type ResultSummary struct {
	Code        string `json:"code"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Status      int    `json:"status"`
}

// Sections holds the raw parsed envelope sections for diagnostics
type Sections struct {
	Header   map[string]interface{} `json:"header"`
	Event    map[string]interface{} `json:"event"`
	Request  map[string]interface{} `json:"request"`
	Response map[string]interface{} `json:"response"`
}

// ClientInfo identifies this integration in every normalized result
type ClientInfo struct {
	Country        string `json:"country"`
	Provider       string `json:"provider"`
	Method         string `json:"method"`
	Channel        string `json:"channel"`
	Mode           string `json:"mode"`
	Currency       string `json:"currency"`
	Gateway        string `json:"gateway"`
	BusinessName   string `json:"business_name"`
	BusinessNumber string `json:"business_number"`
}

// TransactionResult is the normalized outcome of a login, charge or callback
type TransactionResult struct {
	ClientInfo

	Date         *time.Time      `json:"date,omitempty"`
	JSON         Sections        `json:"json"`
	Result       ResultSummary   `json:"result"`
	MSISDN       string          `json:"msisdn"`
	Command      string          `json:"command"`
	Callback     string          `json:"callback"`
	Session      string          `json:"session"`
	Transaction  string          `json:"transaction"`
	Token        string          `json:"token"`
	Reference    string          `json:"reference"`
	Receipt      string          `json:"receipt"`
	Status       string          `json:"status"`
	XML          string          `json:"xml"`
	Amount       decimal.Decimal `json:"amount"`
	IsSuccessful bool            `json:"is_successful"`
}

// Transaction status literals reported by the gateway (lower-cased)
const (
	TransactionStatusProcessed = "processed"
	TransactionStatusSuccess   = "success"
)
