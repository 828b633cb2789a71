package ussdpush

import (
	"github.com/kevin07696/ussd-push-service/internal/config"
)

const (
	testLoginURL   = "https://gateway.test/login"
	testRequestURL = "https://gateway.test/request"
)

func testGatewayConfig() config.GatewayConfig {
	cfg := config.LoadGatewayConfig(config.MapProvider{
		config.KeyUsername:       "merchant",
		config.KeyPassword:       "secret",
		config.KeyBusinessNumber: "123456",
		config.KeyBusinessName:   "Acme Ltd",
		config.KeyLoginURL:       testLoginURL,
		config.KeyRequestURL:     testRequestURL,
		config.KeyCallbackURL:    "https://merchant.test/callback",
	})
	return cfg
}

const loginSuccessXML = `<?xml version="1.0" encoding="UTF-8"?>
<S:Envelope xmlns:S="http://schemas.xmlsoap.org/soap/envelope/">
  <S:Header>
    <ns2:eventResponse xmlns:ns2="http://www.4cgroup.co.za/soapauth">
      <ns2:EventID>2500</ns2:EventID>
    </ns2:eventResponse>
  </S:Header>
  <S:Body>
    <ns2:getGenericResultResponse xmlns:ns2="http://www.4cgroup.co.za/genericsoap">
      <SOAPAPIResult>
        <eventInfo>
          <code>3</code>
          <description>Processed</description>
          <detail>Processed</detail>
          <transactionID>LOGIN-0001</transactionID>
        </eventInfo>
        <request>
          <dataItem><name>Username</name><type>String</type><value>merchant</value></dataItem>
          <dataItem><name>Password</name><type>String</type><value>secret</value></dataItem>
        </request>
        <response>
          <dataItem><name>SessionID</name><type>String</type><value>sess-001</value></dataItem>
        </response>
      </SOAPAPIResult>
    </ns2:getGenericResultResponse>
  </S:Body>
</S:Envelope>`

const chargeAcceptedXML = `<?xml version="1.0" encoding="UTF-8"?>
<S:Envelope xmlns:S="http://schemas.xmlsoap.org/soap/envelope/">
  <S:Header>
    <ns2:eventResponse xmlns:ns2="http://www.4cgroup.co.za/soapauth">
      <ns2:EventID>40009</ns2:EventID>
    </ns2:eventResponse>
  </S:Header>
  <S:Body>
    <ns2:getGenericResultResponse xmlns:ns2="http://www.4cgroup.co.za/genericsoap">
      <SOAPAPIResult>
        <eventInfo>
          <code>3</code>
          <description>Processed</description>
          <detail>Processed</detail>
          <transactionID>TX-40009-1</transactionID>
        </eventInfo>
        <request>
          <dataItem><name>CustomerMSISDN</name><type>String</type><value>255754000000</value></dataItem>
          <dataItem><name>Amount</name><type>String</type><value>1500</value></dataItem>
          <dataItem><name>ThirdPartyReference</name><type>String</type><value>A5FK3170</value></dataItem>
          <dataItem><name>Command</name><type>String</type><value>CustomerPayBill</value></dataItem>
        </request>
        <response>
          <dataItem><name>InsightReference</name><type>String</type><value>INS-77</value></dataItem>
          <dataItem><name>ResponseCode</name><type>String</type><value>0</value></dataItem>
        </response>
      </SOAPAPIResult>
    </ns2:getGenericResultResponse>
  </S:Body>
</S:Envelope>`

const chargeSuccessXML = `<?xml version="1.0" encoding="UTF-8"?>
<S:Envelope xmlns:S="http://schemas.xmlsoap.org/soap/envelope/">
  <S:Body>
    <ns2:getGenericResultResponse xmlns:ns2="http://www.4cgroup.co.za/genericsoap">
      <SOAPAPIResult>
        <eventInfo>
          <code>3</code>
          <description>Processed</description>
          <detail>Processed</detail>
        </eventInfo>
        <response>
          <dataItem><name>ResultType</name><type>String</type><value>Completed</value></dataItem>
          <dataItem><name>ResultCode</name><type>String</type><value>0</value></dataItem>
          <dataItem><name>ResultDesc</name><type>String</type><value>Processed Successfully</value></dataItem>
          <dataItem><name>TransactionStatus</name><type>String</type><value>Success</value></dataItem>
          <dataItem><name>TransID</name><type>String</type><value>9C17RS</value></dataItem>
          <dataItem><name>ConversationID</name><type>String</type><value>CONV-1</value></dataItem>
          <dataItem><name>ThirdPartyReference</name><type>String</type><value>A5FK3170</value></dataItem>
          <dataItem><name>CustomerMSISDN</name><type>String</type><value>255754000000</value></dataItem>
          <dataItem><name>Amount</name><type>String</type><value>1500</value></dataItem>
          <dataItem><name>Currency</name><type>String</type><value>TZS</value></dataItem>
          <dataItem><name>Date</name><type>String</type><value>20230115 103000</value></dataItem>
          <dataItem><name>Remarks</name><type>String</type><value>null</value></dataItem>
        </response>
      </SOAPAPIResult>
    </ns2:getGenericResultResponse>
  </S:Body>
</S:Envelope>`

const callbackXML = `<?xml version="1.0" encoding="UTF-8"?>
<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/" xmlns:soap="http://www.4cgroup.co.za/soapauth" xmlns:gen="http://www.4cgroup.co.za/genericsoap">
  <soapenv:Header>
    <soap:EventID>40009</soap:EventID>
  </soapenv:Header>
  <soapenv:Body>
    <gen:getGenericResult>
      <Request>
        <dataItem><name>ResultType</name><type>String</type><value>Completed</value></dataItem>
        <dataItem><name>ResultCode</name><type>String</type><value>0</value></dataItem>
        <dataItem><name>ResultDesc</name><type>String</type><value>Processed Successfully</value></dataItem>
        <dataItem><name>TransactionStatus</name><type>String</type><value>Success</value></dataItem>
        <dataItem><name>TransID</name><type>String</type><value>9C17RS</value></dataItem>
        <dataItem><name>ThirdPartyReference</name><type>String</type><value>A5FK3170</value></dataItem>
        <dataItem><name>CustomerMSISDN</name><type>String</type><value>255754000000</value></dataItem>
        <dataItem><name>Amount</name><type>String</type><value>1500</value></dataItem>
        <dataItem><name>InsightReference</name><type>String</type><value>INS-77</value></dataItem>
      </Request>
    </gen:getGenericResult>
  </soapenv:Body>
</soapenv:Envelope>`

const clientFaultXML = `<?xml version="1.0" encoding="UTF-8"?>
<S:Envelope xmlns:S="http://schemas.xmlsoap.org/soap/envelope/">
  <S:Body>
    <S:Fault>
      <faultcode>S:Client</faultcode>
      <faultstring>Cannot find dispatch method</faultstring>
    </S:Fault>
  </S:Body>
</S:Envelope>`

const serverFaultXML = `<?xml version="1.0" encoding="UTF-8"?>
<S:Envelope xmlns:S="http://schemas.xmlsoap.org/soap/envelope/">
  <S:Body>
    <S:Fault>
      <faultcode>S:Server</faultcode>
      <faultstring>Internal error</faultstring>
    </S:Fault>
  </S:Body>
</S:Envelope>`

const authFailedXML = `<?xml version="1.0" encoding="UTF-8"?>
<S:Envelope xmlns:S="http://schemas.xmlsoap.org/soap/envelope/">
  <S:Body>
    <ns2:getGenericResultResponse xmlns:ns2="http://www.4cgroup.co.za/genericsoap">
      <SOAPAPIResult>
        <eventInfo>
          <code>5</code>
          <description>Error</description>
          <detail>Authentication Failed</detail>
        </eventInfo>
        <response>
          <dataItem><name>TransactionStatus</name><type>String</type><value>Success</value></dataItem>
        </response>
      </SOAPAPIResult>
    </ns2:getGenericResultResponse>
  </S:Body>
</S:Envelope>`

const sessionExpiredXML = `<?xml version="1.0" encoding="UTF-8"?>
<S:Envelope xmlns:S="http://schemas.xmlsoap.org/soap/envelope/">
  <S:Body>
    <ns2:getGenericResultResponse xmlns:ns2="http://www.4cgroup.co.za/genericsoap">
      <SOAPAPIResult>
        <eventInfo>
          <code>6</code>
          <detail>Session Expired</detail>
        </eventInfo>
      </SOAPAPIResult>
    </ns2:getGenericResultResponse>
  </S:Body>
</S:Envelope>`

const invalidCredentialsXML = `<?xml version="1.0" encoding="UTF-8"?>
<S:Envelope xmlns:S="http://schemas.xmlsoap.org/soap/envelope/">
  <S:Body>
    <ns2:getGenericResultResponse xmlns:ns2="http://www.4cgroup.co.za/genericsoap">
      <SOAPAPIResult>
        <eventInfo>
          <code>4</code>
          <detail>Processed</detail>
        </eventInfo>
        <response>
          <dataItem><name>SessionID</name><type>String</type><value>Invalid Credentials</value></dataItem>
        </response>
      </SOAPAPIResult>
    </ns2:getGenericResultResponse>
  </S:Body>
</S:Envelope>`
