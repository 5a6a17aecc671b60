package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fieldmaker/verify-backend/internal/utils/phonenumber"
)

var testCreds = NetgsmCredentials{
	Username:  "3125551122",
	Password:  "secret",
	MsgHeader: "FIELDMAKER",
}

func testPhone(t *testing.T) *phonenumber.PhoneNumber {
	t.Helper()
	p, err := phonenumber.Parse("0555 123 4567")
	if err != nil {
		t.Fatalf("can not parse the test phone number: %v", err)
	}
	return p
}

func newTestNetgsmSender(t *testing.T, handler http.HandlerFunc) (*netgsmSender, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	s := newNetgsmSender(testCreds)
	s.smsURL = srv.URL
	s.otpURL = srv.URL
	return s, srv
}

func TestSendMessageSuccess(t *testing.T) {
	var gotQuery map[string][]string
	s, _ := newTestNetgsmSender(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte("00 1234567890"))
	})

	result, err := s.SendMessage(context.Background(), testPhone(t), "hello", ClassTransactional)
	if err != nil {
		t.Fatalf("expecting no error, got: %v", err)
	}
	if !result.Success {
		t.Fatalf("expecting a successful result")
	}
	if result.JobId != "1234567890" {
		t.Fatalf("expecting job id 1234567890, got: %q", result.JobId)
	}
	if result.Mocked {
		t.Fatalf("a live send must not be marked mocked")
	}

	if got := gotQuery["gsmno"][0]; got != "5551234567" {
		t.Fatalf("expecting the domestic number form on the wire, got: %q", got)
	}
	if got := gotQuery["dil"][0]; got != "TR" {
		t.Fatalf("expecting dil=TR, got: %q", got)
	}
	if got := gotQuery["msgheader"][0]; got != "FIELDMAKER" {
		t.Fatalf("expecting the configured msgheader, got: %q", got)
	}
	if got := gotQuery["message"][0]; got != "hello" {
		t.Fatalf("a transactional message must not get the opt-out footer, got: %q", got)
	}
}

func TestSendMessagePromotionalGetsOptOutFooter(t *testing.T) {
	var gotMessage string
	s, _ := newTestNetgsmSender(t, func(w http.ResponseWriter, r *http.Request) {
		gotMessage = r.URL.Query().Get("message")
		w.Write([]byte("00 1"))
	})

	_, err := s.SendMessage(context.Background(), testPhone(t), "kampanya", ClassPromotional)
	if err != nil {
		t.Fatalf("expecting no error, got: %v", err)
	}
	if !strings.HasSuffix(gotMessage, optOutFooter) {
		t.Fatalf("expecting the opt-out footer on a promotional message, got: %q", gotMessage)
	}
}

func TestSendMessageProviderErrorIsTerminal(t *testing.T) {
	hits := 0
	s, _ := newTestNetgsmSender(t, func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte("30"))
	})

	result, err := s.SendMessage(context.Background(), testPhone(t), "hello", ClassTransactional)
	if err == nil {
		t.Fatalf("expecting an error")
	}

	pErr, ok := AsProviderError(err)
	if !ok {
		t.Fatalf("expecting a ProviderError, got: %v", err)
	}
	if pErr.Code != ProviderCodeInvalidCredentials {
		t.Fatalf("expecting code 30, got: %d", pErr.Code)
	}
	if result.Success {
		t.Fatalf("a rejected send must not be successful")
	}
	if result.ErrorCode != 30 {
		t.Fatalf("expecting the result to carry error code 30, got: %d", result.ErrorCode)
	}
	if hits != 1 {
		t.Fatalf("a provider rejection must not be retried, got %d requests", hits)
	}
}

func TestSendOtpXMLSuccess(t *testing.T) {
	var gotBody string
	var gotContentType string
	s, _ := newTestNetgsmSender(t, func(w http.ResponseWriter, r *http.Request) {
		b := make([]byte, r.ContentLength)
		r.Body.Read(b)
		gotBody = string(b)
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`<?xml version="1.0"?><xml><main><code>0</code><jobID>987654</jobID></main></xml>`))
	})

	result, err := s.SendOtp(context.Background(), testPhone(t), "Fieldmaker dogrulama kodunuz: 123456")
	if err != nil {
		t.Fatalf("expecting no error, got: %v", err)
	}
	if !result.Success || result.JobId != "987654" {
		t.Fatalf("unexpected result: %+v", result)
	}

	if gotContentType != "application/xml" {
		t.Fatalf("expecting an xml content type, got: %q", gotContentType)
	}
	for _, want := range []string{
		"<usercode>3125551122</usercode>",
		"<msgheader>FIELDMAKER</msgheader>",
		"<no>5551234567</no>",
		"Fieldmaker dogrulama kodunuz: 123456",
	} {
		if !strings.Contains(gotBody, want) {
			t.Fatalf("request body missing %q:\n%s", want, gotBody)
		}
	}
}

func TestSendOtpXMLError(t *testing.T) {
	s, _ := newTestNetgsmSender(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<?xml version="1.0"?><xml><main><code>51</code><error>header pending</error></main></xml>`))
	})

	result, err := s.SendOtp(context.Background(), testPhone(t), "kod: 123456")
	pErr, ok := AsProviderError(err)
	if !ok {
		t.Fatalf("expecting a ProviderError, got: %v", err)
	}
	if pErr.Code != ProviderCodeHeaderNotApproved {
		t.Fatalf("expecting code 51, got: %d", pErr.Code)
	}
	if result.Success {
		t.Fatalf("a rejected send must not be successful")
	}
}

func TestSendOtpLegacyPlainResponse(t *testing.T) {
	s, _ := newTestNetgsmSender(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("00 111222333"))
	})

	result, err := s.SendOtp(context.Background(), testPhone(t), "kod: 123456")
	if err != nil {
		t.Fatalf("expecting no error, got: %v", err)
	}
	if !result.Success || result.JobId != "111222333" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestSendMessageTransportError(t *testing.T) {
	s, srv := newTestNetgsmSender(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close() // force a connection failure

	_, err := s.SendMessage(context.Background(), testPhone(t), "hello", ClassTransactional)
	if _, ok := AsTransportError(err); !ok {
		t.Fatalf("expecting a TransportError, got: %v", err)
	}
}

func TestDocumentedProviderCodesStayDistinct(t *testing.T) {
	codes := []int{
		ProviderCodeMessageText,
		ProviderCodeInvalidCredentials,
		ProviderCodeHeaderNotRegistred,
		ProviderCodeInvalidDestination,
		ProviderCodeDailyLimit,
		ProviderCodeDuplicateLimit,
	}

	seen := map[string]int{}
	for _, code := range codes {
		msg := NewProviderError(code).Error()
		if prev, ok := seen[msg]; ok {
			t.Fatalf("codes %d and %d collapse to the same error %q", prev, code, msg)
		}
		seen[msg] = code
	}
}

func TestParsePlainSendResponseMalformed(t *testing.T) {
	for _, body := range []string{"", "NOT_A_CODE"} {
		_, err := parsePlainSendResponse(body)
		if _, ok := AsTransportError(err); !ok {
			t.Fatalf("parsePlainSendResponse(%q) expecting a TransportError, got: %v", body, err)
		}
	}
}
