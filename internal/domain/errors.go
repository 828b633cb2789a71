package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a gateway failure
type ErrorKind string

const (
	// KindValidation - request rejected before any network call
	KindValidation ErrorKind = "VALIDATION"
	// KindFault - SOAP fault returned by the gateway
	KindFault ErrorKind = "FAULT"
	// KindAuthentication - login or session authentication rejected
	KindAuthentication ErrorKind = "AUTHENTICATION"
	// KindSession - session expired mid-transaction
	KindSession ErrorKind = "SESSION"
	// KindCodec - envelope could not be serialized or parsed
	KindCodec ErrorKind = "CODEC"
)

// Messages surfaced by the gateway error taxonomy
const (
	MsgMissingLoginURL         = "Missing API Login URL"
	MsgInvalidLoginCredentials = "Invalid Login Credentials"
	MsgInvalidTransaction      = "Invalid Transaction Details"
	MsgClientFault             = "Client Fault"
	MsgServerFault             = "Server Fault"
	MsgAuthenticationFailed    = "Authentication Failed"
	MsgSessionExpired          = "Session Expired"
	MsgInvalidCredentials      = "Invalid Credentials"
	MsgMalformedEnvelope       = "Malformed Envelope"
	MsgEnvelopeSerialization   = "Envelope Serialization Failed"
	MsgBodyTooLarge            = "Request Body Too Large"
)

// GatewayError is the single error type raised by the USSD push pipeline
type GatewayError struct {
	Err         error
	Data        map[string]interface{}
	Kind        ErrorKind
	Message     string
	Code        string
	Description string
	Status      int
}

// Error implements the error interface
func (e *GatewayError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Code != "" {
		msg = fmt.Sprintf("%s (code %s)", msg, e.Code)
	}
	if e.Description != "" && e.Description != e.Message {
		msg = fmt.Sprintf("%s: %s", msg, e.Description)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *GatewayError) Unwrap() error {
	return e.Err
}

// WithData attaches diagnostic data to the error
func (e *GatewayError) WithData(key string, value interface{}) *GatewayError {
	if e.Data == nil {
		e.Data = make(map[string]interface{})
	}
	e.Data[key] = value
	return e
}

// NewValidationError creates a validation error carrying the offending input
func NewValidationError(message string, input interface{}) *GatewayError {
	e := &GatewayError{
		Kind:        KindValidation,
		Message:     message,
		Description: message,
		Status:      http.StatusBadRequest,
	}
	return e.WithData("input", input)
}

// NewBodyTooLargeError creates a validation error for a request body over limit bytes
func NewBodyTooLargeError(limit int64, err error) *GatewayError {
	return &GatewayError{
		Kind:        KindValidation,
		Message:     MsgBodyTooLarge,
		Description: fmt.Sprintf("request body exceeds %d bytes", limit),
		Status:      http.StatusRequestEntityTooLarge,
		Err:         err,
	}
}

// NewFaultError creates a SOAP fault error; client faults map to 400, everything else to 500
func NewFaultError(faultCode, faultString string, client bool) *GatewayError {
	e := &GatewayError{
		Kind:        KindFault,
		Message:     MsgServerFault,
		Code:        faultCode,
		Description: faultString,
		Status:      http.StatusInternalServerError,
	}
	if client {
		e.Message = MsgClientFault
		e.Status = http.StatusBadRequest
	}
	return e
}

// NewAuthenticationError creates an authentication error with the gateway code
func NewAuthenticationError(message, code string) *GatewayError {
	return &GatewayError{
		Kind:        KindAuthentication,
		Message:     message,
		Code:        code,
		Description: message,
		Status:      http.StatusUnauthorized,
	}
}

// NewSessionError creates a session expiry error with the gateway code
func NewSessionError(code string) *GatewayError {
	return &GatewayError{
		Kind:        KindSession,
		Message:     MsgSessionExpired,
		Code:        code,
		Description: MsgSessionExpired,
		Status:      http.StatusUnauthorized,
	}
}

// WrapCodecError wraps a serialization or parse failure
func WrapCodecError(message string, err error) *GatewayError {
	return &GatewayError{
		Kind:        KindCodec,
		Message:     message,
		Description: message,
		Status:      http.StatusInternalServerError,
		Err:         err,
	}
}

// IsKind checks if an error is a GatewayError of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return gwErr.Kind == kind
	}
	return false
}

// KindOf extracts the error kind, returns empty string if not a GatewayError
func KindOf(err error) ErrorKind {
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return gwErr.Kind
	}
	return ""
}

// StatusOf maps an error to an HTTP status code
// Errors outside the taxonomy (transport failures) are reported as 502
func StatusOf(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var gwErr *GatewayError
	if errors.As(err, &gwErr) && gwErr.Status != 0 {
		return gwErr.Status
	}
	return http.StatusBadGateway
}
