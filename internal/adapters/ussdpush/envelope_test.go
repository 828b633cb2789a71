package ussdpush

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevin07696/ussd-push-service/internal/config"
	"github.com/kevin07696/ussd-push-service/internal/domain"
)

func testChargeRequest() domain.ChargeRequest {
	return domain.ChargeRequest{
		Date:      time.Date(2024, 3, 9, 14, 5, 0, 0, time.Local),
		MSISDN:    "255754000000",
		Reference: "A5FK3170",
		Amount:    decimal.NewFromInt(1500),
	}
}

func TestBuildEnvelope(t *testing.T) {
	xmlStr, err := BuildEnvelope("sess-001", "40009", Fields{
		{Name: "Username", Value: "merchant"},
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(xmlStr, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, xmlStr, `xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/"`)
	assert.Contains(t, xmlStr, `xmlns:soap="http://www.4cgroup.co.za/soapauth"`)
	assert.Contains(t, xmlStr, `xmlns:gen="http://www.4cgroup.co.za/genericsoap"`)
	assert.Contains(t, xmlStr, `<soap:EventID>40009</soap:EventID>`)
	assert.Contains(t, xmlStr, `<soap:Token>sess-001</soap:Token>`)
	assert.Contains(t, xmlStr, `<gen:getGenericResult>`)
	assert.Contains(t, xmlStr, `<name>Username</name>`)
	assert.Contains(t, xmlStr, `<type>String</type>`)
	assert.Contains(t, xmlStr, `<value>merchant</value>`)
	assert.Equal(t, 1, strings.Count(xmlStr, "<soap:Token>"))
}

func TestBuildEnvelope_EscapesValues(t *testing.T) {
	xmlStr, err := BuildEnvelope("?", "2500", Fields{
		{Name: "BusinessName", Value: "Smith & Sons <Ltd>"},
	})
	require.NoError(t, err)

	assert.Contains(t, xmlStr, "Smith &amp; Sons &lt;Ltd&gt;")

	env, err := Parse(xmlStr)
	require.NoError(t, err)
	assert.Equal(t, "Smith & Sons <Ltd>", env.Request["businessName"])
}

func TestBuildLoginEnvelope(t *testing.T) {
	xmlStr, err := BuildLoginEnvelope(testGatewayConfig())
	require.NoError(t, err)

	assert.Contains(t, xmlStr, `<soap:Token>?</soap:Token>`)
	assert.Contains(t, xmlStr, `<soap:EventID>2500</soap:EventID>`)

	env, err := Parse(xmlStr)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"username": "merchant",
		"password": "secret",
	}, env.Request)
	assert.Equal(t, "2500", env.Header["eventId"])
	assert.Equal(t, "?", env.Header["token"])
}

func TestBuildLoginEnvelope_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *config.GatewayConfig)
		wantMsg string
	}{
		{
			name:    "missing login url",
			mutate:  func(c *config.GatewayConfig) { c.LoginURL = "" },
			wantMsg: "Missing API Login URL",
		},
		{
			name:    "missing username",
			mutate:  func(c *config.GatewayConfig) { c.Username = "" },
			wantMsg: "Invalid Login Credentials",
		},
		{
			name:    "missing password",
			mutate:  func(c *config.GatewayConfig) { c.Password = "" },
			wantMsg: "Invalid Login Credentials",
		},
		{
			name:    "missing login event id",
			mutate:  func(c *config.GatewayConfig) { c.LoginEventID = "" },
			wantMsg: "Invalid Login Credentials",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testGatewayConfig()
			tt.mutate(&cfg)

			_, err := BuildLoginEnvelope(cfg)
			require.Error(t, err)

			var gwErr *domain.GatewayError
			require.ErrorAs(t, err, &gwErr)
			assert.Equal(t, domain.KindValidation, gwErr.Kind)
			assert.Equal(t, tt.wantMsg, gwErr.Description)
			assert.Equal(t, 400, gwErr.Status)
			assert.Contains(t, gwErr.Data, "input")
		})
	}
}

func TestBuildLoginEnvelope_SnapshotRedactsPassword(t *testing.T) {
	cfg := testGatewayConfig()
	cfg.Username = ""

	_, err := BuildLoginEnvelope(cfg)

	var gwErr *domain.GatewayError
	require.ErrorAs(t, err, &gwErr)
	snapshot, ok := gwErr.Data["input"].(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "[REDACTED]", snapshot["password"])
	assert.NotContains(t, err.Error(), "secret")
}

func TestBuildChargeEnvelope(t *testing.T) {
	cfg := testGatewayConfig()

	xmlStr, err := BuildChargeEnvelope(cfg, testChargeRequest(), "sess-001")
	require.NoError(t, err)

	assert.Contains(t, xmlStr, `<soap:Token>sess-001</soap:Token>`)
	assert.Contains(t, xmlStr, `<soap:EventID>40009</soap:EventID>`)

	env, err := Parse(xmlStr)
	require.NoError(t, err)

	assert.Equal(t, "1500", env.Request["amount"])
	assert.Equal(t, "CustomerPayBill", env.Request["command"])
	assert.Equal(t, "255754000000", env.Request["customerMsisdn"])
	assert.Equal(t, "Acme Ltd", env.Request["businessName"])
	assert.Equal(t, "123456", env.Request["businessNumber"])
	assert.Equal(t, "TZS", env.Request["currency"])
	assert.Equal(t, "2024030914", env.Request["date"])
	assert.Equal(t, "A5FK3170", env.Request["thirdPartyReference"])
	assert.Equal(t, "1", env.Request["callBackChannel"])
	assert.Equal(t, "https://merchant.test/callback", env.Request["callbackDestination"])
	assert.Equal(t, "merchant", env.Request["username"])
}

func TestBuildChargeEnvelope_FieldOrder(t *testing.T) {
	xmlStr, err := BuildChargeEnvelope(testGatewayConfig(), testChargeRequest(), "sess-001")
	require.NoError(t, err)

	order := []string{
		"CustomerMSISDN", "BusinessName", "BusinessNumber", "Currency", "Date", "Amount",
		"ThirdPartyReference", "Command", "CallBackChannel", "CallbackDestination", "Username",
	}
	last := -1
	for _, name := range order {
		idx := strings.Index(xmlStr, "<name>"+name+"</name>")
		require.Greater(t, idx, last, name)
		last = idx
	}
}

func TestBuildChargeEnvelope_CallbackOverride(t *testing.T) {
	req := testChargeRequest()
	req.CallbackURL = "https://merchant.test/orders/42/callback"

	xmlStr, err := BuildChargeEnvelope(testGatewayConfig(), req, "sess-001")
	require.NoError(t, err)

	assert.Contains(t, xmlStr, "https://merchant.test/orders/42/callback")
	assert.NotContains(t, xmlStr, "https://merchant.test/callback<")
}

func TestBuildChargeEnvelope_DecimalAmount(t *testing.T) {
	req := testChargeRequest()
	req.Amount = decimal.RequireFromString("1500.50")

	xmlStr, err := BuildChargeEnvelope(testGatewayConfig(), req, "sess-001")
	require.NoError(t, err)
	assert.Contains(t, xmlStr, "<value>1500.5</value>")
}

func TestBuildChargeEnvelope_Validation(t *testing.T) {
	tests := []struct {
		name      string
		mutateCfg func(c *config.GatewayConfig)
		mutateReq func(r *domain.ChargeRequest)
		sessionID string
	}{
		{
			name:      "zero amount",
			mutateReq: func(r *domain.ChargeRequest) { r.Amount = decimal.Zero },
			sessionID: "sess-001",
		},
		{
			name:      "negative amount",
			mutateReq: func(r *domain.ChargeRequest) { r.Amount = decimal.NewFromInt(-5) },
			sessionID: "sess-001",
		},
		{
			name:      "missing session",
			sessionID: "",
		},
		{
			name:      "missing msisdn",
			mutateReq: func(r *domain.ChargeRequest) { r.MSISDN = "" },
			sessionID: "sess-001",
		},
		{
			name:      "missing reference",
			mutateReq: func(r *domain.ChargeRequest) { r.Reference = "" },
			sessionID: "sess-001",
		},
		{
			name:      "missing request url",
			mutateCfg: func(c *config.GatewayConfig) { c.RequestURL = "" },
			sessionID: "sess-001",
		},
		{
			name:      "missing callback",
			mutateCfg: func(c *config.GatewayConfig) { c.CallbackURL = "" },
			sessionID: "sess-001",
		},
		{
			name:      "missing business name",
			mutateCfg: func(c *config.GatewayConfig) { c.BusinessName = "" },
			sessionID: "sess-001",
		},
		{
			name:      "missing request command",
			mutateCfg: func(c *config.GatewayConfig) { c.RequestCommand = "" },
			sessionID: "sess-001",
		},
		{
			name:      "missing username",
			mutateCfg: func(c *config.GatewayConfig) { c.Username = "" },
			sessionID: "sess-001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testGatewayConfig()
			req := testChargeRequest()
			if tt.mutateCfg != nil {
				tt.mutateCfg(&cfg)
			}
			if tt.mutateReq != nil {
				tt.mutateReq(&req)
			}

			_, err := BuildChargeEnvelope(cfg, req, tt.sessionID)
			require.Error(t, err)

			var gwErr *domain.GatewayError
			require.ErrorAs(t, err, &gwErr)
			assert.Equal(t, domain.KindValidation, gwErr.Kind)
			assert.Equal(t, "Invalid Transaction Details", gwErr.Description)
			assert.Equal(t, 400, gwErr.Status)

			snapshot, ok := gwErr.Data["input"].(map[string]string)
			require.True(t, ok)
			assert.Equal(t, tt.sessionID, snapshot["session_id"])
		})
	}
}
