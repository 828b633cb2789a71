package ussdpush

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kevin07696/ussd-push-service/internal/domain"
)

// Marker strings the gateway uses in place of status codes
const (
	markerAuthenticationFailed = "Authentication Failed"
	markerSessionExpired       = "Session Expired"
	markerInvalidCredentials   = "Invalid Credentials"
	faultCodeClient            = "S:Client"
	defaultTransactionStatus   = "Processed"
)

// Candidate keys per result field, first non-empty wins
var (
	msisdnKeys      = []string{"customerMsisdn", "msisdn"}
	amountKeys      = []string{"amount"}
	currencyKeys    = []string{"currency"}
	dateKeys        = []string{"date"}
	commandKeys     = []string{"command"}
	callbackKeys    = []string{"callbackDestination", "callback"}
	sessionKeys     = []string{"sessionId"}
	transactionKeys = []string{"transactionId"}
	tokenKeys       = []string{"insightReference"}
	referenceKeys   = []string{"thirdPartyReference"}
	receiptKeys     = []string{"transId", "conversationId"}
	statusKeys      = []string{"transactionStatus"}
	codeKeys        = []string{"resultCode", "code"}
	typeKeys        = []string{"resultType", "description"}
	descKeys        = []string{"resultDesc", "detail"}
	businessNameKey = []string{"businessName"}
	businessNumKeys = []string{"businessNumber"}
)

// Classify maps a parsed envelope to a normalized result or exactly one error
// Precedence: fault, event authentication, event session expiry, invalid credentials
func Classify(env *ParsedEnvelope, raw string, client domain.ClientInfo) (*domain.TransactionResult, error) {
	if err := classifyFailure(env); err != nil {
		return nil, err
	}

	merged := mergeSections(env.Header, env.Event, env.Response, env.Request)

	result := &domain.TransactionResult{
		ClientInfo:  client,
		JSON:        env.Sections(),
		XML:         raw,
		MSISDN:      lookupString(merged, msisdnKeys),
		Command:     lookupString(merged, commandKeys),
		Callback:    lookupString(merged, callbackKeys),
		Session:     lookupString(merged, sessionKeys),
		Transaction: lookupString(merged, transactionKeys),
		Token:       lookupString(merged, tokenKeys),
		Reference:   lookupString(merged, referenceKeys),
		Receipt:     lookupString(merged, receiptKeys),
		Amount:      lookupAmount(merged),
		Date:        lookupDate(merged),
		Result: domain.ResultSummary{
			Code:        lookupString(merged, codeKeys),
			Type:        lookupString(merged, typeKeys),
			Description: lookupString(merged, descKeys),
		},
	}

	if currency := lookupString(merged, currencyKeys); currency != "" {
		result.Currency = currency
	}
	if name := lookupString(merged, businessNameKey); name != "" {
		result.BusinessName = name
	}
	if number := lookupString(merged, businessNumKeys); number != "" {
		result.BusinessNumber = number
	}

	status := lookupString(merged, statusKeys)
	if status == "" {
		status = defaultTransactionStatus
	}
	result.Status = strings.ToLower(status)
	result.IsSuccessful = result.Status == domain.TransactionStatusSuccess
	result.Result.Status = resultStatus(result.Status)

	return result, nil
}

// resultStatus maps a lower-cased transaction status to an HTTP-style status
// Only success and the gateway's default "processed" count as OK; anything else
// (failed, cancelled, timeout, ...) is a declined payment.
func resultStatus(status string) int {
	switch status {
	case domain.TransactionStatusSuccess, domain.TransactionStatusProcessed:
		return http.StatusOK
	default:
		return http.StatusPaymentRequired
	}
}

func classifyFailure(env *ParsedEnvelope) error {
	faultCode := asString(env.Fault["faultcode"])
	faultString := asString(env.Fault["faultstring"])
	if faultCode != "" || faultString != "" {
		return domain.NewFaultError(faultCode, faultString, faultCode == faultCodeClient)
	}

	eventCode := asString(env.Event["code"])
	switch asString(env.Event["detail"]) {
	case markerAuthenticationFailed:
		return domain.NewAuthenticationError(domain.MsgAuthenticationFailed, eventCode)
	case markerSessionExpired:
		return domain.NewSessionError(eventCode)
	}

	if asString(env.Response["sessionId"]) == markerInvalidCredentials {
		// Raw sections stay attached so callers can see what the gateway echoed
		return domain.NewAuthenticationError(domain.MsgInvalidCredentials, eventCode).
			WithData("sections", env.Sections())
	}

	return nil
}

// mergeSections folds sections into one map where earlier sections win
// nil values count as absent so a null in a preferred section does not mask a later value
func mergeSections(sections ...map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{})
	for _, section := range sections {
		for key, value := range section {
			if value == nil {
				continue
			}
			if _, exists := merged[key]; !exists {
				merged[key] = value
			}
		}
	}
	return merged
}

func lookup(m map[string]interface{}, keys []string) interface{} {
	for _, key := range keys {
		value, ok := m[key]
		if !ok || value == nil {
			continue
		}
		if s, isString := value.(string); isString && s == "" {
			continue
		}
		return value
	}
	return nil
}

func lookupString(m map[string]interface{}, keys []string) string {
	return asString(lookup(m, keys))
}

// lookupAmount returns zero when the amount is absent or not a decimal literal
func lookupAmount(m map[string]interface{}) decimal.Decimal {
	raw := lookupString(m, amountKeys)
	if raw == "" {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// lookupDate only reports dates the codec could parse
func lookupDate(m map[string]interface{}) *time.Time {
	if t, ok := lookup(m, dateKeys).(time.Time); ok {
		return &t
	}
	return nil
}

func asString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprint(v)
	}
}
