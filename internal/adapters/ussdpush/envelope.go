package ussdpush

import (
	"encoding/xml"

	"github.com/kevin07696/ussd-push-service/internal/config"
	"github.com/kevin07696/ussd-push-service/internal/domain"
	"github.com/kevin07696/ussd-push-service/pkg/timeutil"
)

// Envelope namespaces
const (
	NamespaceSOAPEnv = "http://schemas.xmlsoap.org/soap/envelope/"
	NamespaceAuth    = "http://www.4cgroup.co.za/soapauth"
	NamespaceGeneric = "http://www.4cgroup.co.za/genericsoap"
)

const (
	// loginPlaceholderToken is sent as the header token before a session exists
	loginPlaceholderToken = "?"

	// callbackChannelURL asks the gateway to deliver the result to CallbackDestination
	callbackChannelURL = "1"
)

// RequestEnvelope is the domain-level shape of an outbound call
type RequestEnvelope struct {
	Header  RequestHeader
	Request Fields
}

// RequestHeader is the single token/eventId pair of every request
type RequestHeader struct {
	Token   string
	EventID string
}

type soapEnvelope struct {
	XMLName   xml.Name   `xml:"soapenv:Envelope"`
	SoapEnvNS string     `xml:"xmlns:soapenv,attr"`
	AuthNS    string     `xml:"xmlns:soap,attr"`
	GenericNS string     `xml:"xmlns:gen,attr"`
	Header    soapHeader `xml:"soapenv:Header"`
	Body      soapBody   `xml:"soapenv:Body"`
}

type soapHeader struct {
	EventID string `xml:"soap:EventID"`
	Token   string `xml:"soap:Token"`
}

type soapBody struct {
	GenericResult soapGenericResult `xml:"gen:getGenericResult"`
}

type soapGenericResult struct {
	Request soapRequest `xml:"Request"`
}

type soapRequest struct {
	DataItems []DataItem `xml:"dataItem"`
}

// Marshal serializes the envelope to XML with a declaration
func (e RequestEnvelope) Marshal() (string, error) {
	env := soapEnvelope{
		SoapEnvNS: NamespaceSOAPEnv,
		AuthNS:    NamespaceAuth,
		GenericNS: NamespaceGeneric,
		Header: soapHeader{
			EventID: e.Header.EventID,
			Token:   e.Header.Token,
		},
		Body: soapBody{
			GenericResult: soapGenericResult{
				Request: soapRequest{DataItems: EncodeRequest(e.Request)},
			},
		},
	}

	out, err := xml.MarshalIndent(env, "", "  ")
	if err != nil {
		return "", domain.WrapCodecError(domain.MsgEnvelopeSerialization, err)
	}
	return xml.Header + string(out), nil
}

// BuildEnvelope serializes a generic-result request
func BuildEnvelope(token, eventID string, fields Fields) (string, error) {
	return RequestEnvelope{
		Header:  RequestHeader{Token: token, EventID: eventID},
		Request: fields,
	}.Marshal()
}

// BuildLoginEnvelope builds the session login request
// Returns a validation error before any network call when the login URL or credentials are missing
func BuildLoginEnvelope(cfg config.GatewayConfig) (string, error) {
	if cfg.LoginURL == "" {
		return "", domain.NewValidationError(domain.MsgMissingLoginURL, cfg.Snapshot())
	}
	if cfg.Username == "" || cfg.Password == "" || cfg.LoginEventID == "" {
		return "", domain.NewValidationError(domain.MsgInvalidLoginCredentials, cfg.Snapshot())
	}

	return BuildEnvelope(loginPlaceholderToken, cfg.LoginEventID, Fields{
		{Name: "Username", Value: cfg.Username},
		{Name: "Password", Value: cfg.Password},
	})
}

// BuildChargeEnvelope builds the USSD push request bound to an open session
func BuildChargeEnvelope(cfg config.GatewayConfig, req domain.ChargeRequest, sessionID string) (string, error) {
	callbackURL := firstNonEmpty(req.CallbackURL, cfg.CallbackURL)

	if !validCharge(cfg, req, sessionID, callbackURL) {
		return "", domain.NewValidationError(domain.MsgInvalidTransaction, chargeSnapshot(cfg, req, sessionID, callbackURL))
	}

	return BuildEnvelope(sessionID, cfg.RequestEventID, Fields{
		{Name: "CustomerMSISDN", Value: req.MSISDN},
		{Name: "BusinessName", Value: cfg.BusinessName},
		{Name: "BusinessNumber", Value: cfg.BusinessNumber},
		{Name: "Currency", Value: cfg.Currency},
		{Name: "Date", Value: timeutil.FormatRequestDate(req.Date)},
		{Name: "Amount", Value: req.Amount.String()},
		{Name: "ThirdPartyReference", Value: req.Reference},
		{Name: "Command", Value: cfg.RequestCommand},
		{Name: "CallBackChannel", Value: callbackChannelURL},
		{Name: "CallbackDestination", Value: callbackURL},
		{Name: "Username", Value: firstNonEmpty(cfg.Username, cfg.BusinessNumber)},
	})
}

func validCharge(cfg config.GatewayConfig, req domain.ChargeRequest, sessionID, callbackURL string) bool {
	if cfg.RequestURL == "" || !req.Amount.IsPositive() {
		return false
	}
	required := []string{
		cfg.Username, sessionID, req.MSISDN, cfg.Currency,
		cfg.RequestEventID, cfg.RequestCommand,
		cfg.BusinessName, cfg.BusinessNumber, req.Reference, callbackURL,
	}
	for _, v := range required {
		if v == "" {
			return false
		}
	}
	return true
}

func chargeSnapshot(cfg config.GatewayConfig, req domain.ChargeRequest, sessionID, callbackURL string) map[string]string {
	snapshot := cfg.Snapshot()
	snapshot["session_id"] = sessionID
	snapshot["msisdn"] = req.MSISDN
	snapshot["amount"] = req.Amount.String()
	snapshot["reference"] = req.Reference
	snapshot["callback_url"] = callbackURL
	return snapshot
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
