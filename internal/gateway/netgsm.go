package gateway

import (
	"context"
	"encoding/xml"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fieldmaker/verify-backend/internal/utils/phonenumber"
	"github.com/rs/zerolog"
)

const (
	netgsmSmsAPIURL = "https://api.netgsm.com.tr/sms/send/get"
	netgsmOtpAPIURL = "https://api.netgsm.com.tr/sms/send/otp"

	// dil parameter. Turkish character support on the provider side.
	netgsmLanguage = "TR"

	// mandated opt-out footer for promotional class messages. Otp and
	// transactional classes are exempt.
	optOutFooter = "SMS istemiyorsaniz RET yazip 4390'a gonderiniz."

	netgsmSendTimeout = 10 * time.Second
	netgsmOtpTimeout  = 15 * time.Second
)

// NetgsmCredentials is process wide configuration. Load it once at startup
// and hand it to NewProvider, nothing else should read the env for it.
type NetgsmCredentials struct {
	Username  string
	Password  string
	MsgHeader string
}

// Configured reports whether a live send can work at all. A missing sender
// header is as fatal on the wire as missing credentials (the provider answers
// error 40), so it triggers the mock fallback the same way.
func (c NetgsmCredentials) Configured() bool {
	return c.Username != "" && c.Password != "" && c.MsgHeader != ""
}

type netgsmSender struct {
	creds  NetgsmCredentials
	client *http.Client

	smsURL string
	otpURL string
}

func newNetgsmSender(creds NetgsmCredentials) *netgsmSender {
	return &netgsmSender{
		creds:  creds,
		client: &http.Client{Timeout: netgsmOtpTimeout},
		smsURL: netgsmSmsAPIURL,
		otpURL: netgsmOtpAPIURL,
	}
}

func (s *netgsmSender) SendMessage(ctx context.Context, phone *phonenumber.PhoneNumber, text string, class MessageClass) (SendResult, error) {
	zlog := zerolog.Ctx(ctx).With().Str("phone", phone.Canonical()).Logger()

	if class == ClassPromotional {
		text = text + " " + optOutFooter
	}

	params := url.Values{}
	params.Set("usercode", s.creds.Username)
	params.Set("password", s.creds.Password)
	params.Set("gsmno", phone.Domestic())
	params.Set("message", text)
	params.Set("msgheader", s.creds.MsgHeader)
	params.Set("dil", netgsmLanguage)

	ctx, cancel := context.WithTimeout(ctx, netgsmSendTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.smsURL+"?"+params.Encode(), nil)
	if err != nil {
		return SendResult{}, &TransportError{Err: err}
	}

	body, err := s.do(req)
	if err != nil {
		zlog.Err(err).Msg("Netgsm send failed before getting a response")
		return SendResult{}, err
	}

	result, err := parsePlainSendResponse(body)
	logSendOutcome(zlog, result, err)
	return result, err
}

func (s *netgsmSender) SendOtp(ctx context.Context, phone *phonenumber.PhoneNumber, message string) (SendResult, error) {
	zlog := zerolog.Ctx(ctx).With().Str("phone", phone.Canonical()).Logger()

	reqBody := otpXMLRequest{}
	reqBody.Header.Usercode = s.creds.Username
	reqBody.Header.Password = s.creds.Password
	reqBody.Header.Msgheader = s.creds.MsgHeader
	reqBody.Body.Msg.Text = message
	reqBody.Body.No = phone.Domestic()

	xmlBytes, err := xml.Marshal(reqBody)
	if err != nil {
		return SendResult{}, &TransportError{Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, netgsmOtpTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.otpURL, strings.NewReader(xml.Header+string(xmlBytes)))
	if err != nil {
		return SendResult{}, &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/xml")

	body, err := s.do(req)
	if err != nil {
		zlog.Err(err).Msg("Netgsm otp send failed before getting a response")
		return SendResult{}, err
	}

	result, err := parseOtpSendResponse(body)
	logSendOutcome(zlog, result, err)
	return result, err
}

func (s *netgsmSender) do(req *http.Request) (string, error) {
	res, err := s.client.Do(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer res.Body.Close()

	bodyBytes, err := io.ReadAll(io.LimitReader(res.Body, 4<<10))
	if err != nil {
		return "", &TransportError{Err: err}
	}

	return strings.TrimSpace(string(bodyBytes)), nil
}

type otpXMLRequest struct {
	XMLName xml.Name `xml:"mainbody"`
	Header  struct {
		Usercode  string `xml:"usercode"`
		Password  string `xml:"password"`
		Msgheader string `xml:"msgheader"`
	} `xml:"header"`
	Body struct {
		Msg struct {
			Text string `xml:",cdata"`
		} `xml:"msg"`
		No string `xml:"no"`
	} `xml:"body"`
}

type otpXMLResponse struct {
	XMLName xml.Name `xml:"xml"`
	Main    struct {
		Code  string `xml:"code"`
		JobID string `xml:"jobID"`
		Error string `xml:"error"`
	} `xml:"main"`
}

// The bulk endpoint answers in plain text.
// Success: "00 <jobid>", anything else is a bare numeric error code.
func parsePlainSendResponse(body string) (SendResult, error) {
	fields := strings.Fields(body)
	if len(fields) == 0 {
		return SendResult{}, &TransportError{Err: errEmptyProviderResponse}
	}

	if fields[0] == "00" {
		jobId := ""
		if len(fields) > 1 {
			jobId = fields[1]
		}
		return SendResult{Success: true, JobId: jobId}, nil
	}

	code, err := strconv.Atoi(fields[0])
	if err != nil {
		return SendResult{}, &TransportError{Err: errMalformedProviderResponse}
	}
	return SendResult{ErrorCode: code}, NewProviderError(code)
}

// The otp endpoint answers in XML, with an older plain text form still seen
// in the wild:
//
//	<xml><main><code>0</code><jobID>xxx</jobID></main></xml>
//	"00 <jobid>"
func parseOtpSendResponse(body string) (SendResult, error) {
	if !strings.HasPrefix(body, "<") {
		return parsePlainSendResponse(body)
	}

	var res otpXMLResponse
	if err := xml.Unmarshal([]byte(body), &res); err != nil {
		return SendResult{}, &TransportError{Err: err}
	}

	switch res.Main.Code {
	case "0", "00":
		return SendResult{Success: true, JobId: res.Main.JobID}, nil
	}

	code, err := strconv.Atoi(res.Main.Code)
	if err != nil {
		return SendResult{}, &TransportError{Err: errMalformedProviderResponse}
	}
	return SendResult{ErrorCode: code}, NewProviderError(code)
}

func logSendOutcome(zlog zerolog.Logger, result SendResult, err error) {
	if err != nil {
		zlog.Error().Err(err).Int("error_code", result.ErrorCode).Msg("Netgsm rejected the send")
		return
	}
	zlog.Info().Str("job_id", result.JobId).Msg("SMS sent")
}
