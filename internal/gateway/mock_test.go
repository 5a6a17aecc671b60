package gateway

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestMockSenderReportsMockedSuccessAndLogsTheCode(t *testing.T) {
	var logBuf bytes.Buffer
	zlog := zerolog.New(&logBuf)
	ctx := zlog.WithContext(context.Background())

	s := newMockSMSSender()
	result, err := s.SendOtp(ctx, testPhone(t), "Fieldmaker dogrulama kodunuz: 808707")
	if err != nil {
		t.Fatalf("expecting no error, got: %v", err)
	}

	if !result.Success {
		t.Fatalf("mock delivery is a designed success, got: %+v", result)
	}
	if !result.Mocked {
		t.Fatalf("expecting the result to be marked mocked")
	}
	if !strings.HasPrefix(result.JobId, "MOCK_OTP_") {
		t.Fatalf("unexpected mock job id: %q", result.JobId)
	}

	if !strings.Contains(logBuf.String(), "808707") {
		t.Fatalf("mock mode must log the code, log was: %s", logBuf.String())
	}
	if !strings.Contains(logBuf.String(), "905551234567") {
		t.Fatalf("mock mode must log the normalized phone, log was: %s", logBuf.String())
	}
}

func TestMockSenderSendMessage(t *testing.T) {
	s := newMockSMSSender()
	result, err := s.SendMessage(context.Background(), testPhone(t), "hos geldiniz", ClassTransactional)
	if err != nil {
		t.Fatalf("expecting no error, got: %v", err)
	}
	if !result.Success || !result.Mocked {
		t.Fatalf("unexpected result: %+v", result)
	}
	if !strings.HasPrefix(result.JobId, "MOCK_") {
		t.Fatalf("unexpected mock job id: %q", result.JobId)
	}
}

func TestProviderSelectsMockWhenCredentialsAreMissing(t *testing.T) {
	p := NewProvider(zerolog.Nop(), NetgsmCredentials{}, SMTPConfig{})

	if !p.SMSMocked() {
		t.Fatalf("expecting mock mode without credentials")
	}
	if _, ok := p.SMS().(*mockSMSSender); !ok {
		t.Fatalf("expecting the mock sms sender, got: %T", p.SMS())
	}
	if _, ok := p.Email().(*mockEmailSender); !ok {
		t.Fatalf("expecting the mock email sender, got: %T", p.Email())
	}
}

func TestProviderSelectsMockWhenMsgHeaderIsMissing(t *testing.T) {
	// username and password alone are not enough, a live send without a
	// registered sender header can only come back as provider error 40
	p := NewProvider(zerolog.Nop(), NetgsmCredentials{Username: "3125551122", Password: "secret"}, SMTPConfig{})

	if !p.SMSMocked() {
		t.Fatalf("expecting mock mode without a sender header")
	}
	if _, ok := p.SMS().(*mockSMSSender); !ok {
		t.Fatalf("expecting the mock sms sender, got: %T", p.SMS())
	}

	result, err := p.SMS().SendOtp(context.Background(), testPhone(t), "Fieldmaker dogrulama kodunuz: 123456")
	if err != nil {
		t.Fatalf("expecting no error, got: %v", err)
	}
	if !result.Success || !result.Mocked {
		t.Fatalf("expecting a mocked success, got: %+v", result)
	}
}

func TestProviderSelectsLiveSenderWhenConfigured(t *testing.T) {
	p := NewProvider(zerolog.Nop(), testCreds, SMTPConfig{Host: "mail.example.com", Password: "secret"})

	if p.SMSMocked() {
		t.Fatalf("expecting live mode with credentials")
	}
	if _, ok := p.SMS().(*netgsmSender); !ok {
		t.Fatalf("expecting the netgsm sender, got: %T", p.SMS())
	}
	if _, ok := p.Email().(*smtpEmailSender); !ok {
		t.Fatalf("expecting the smtp email sender, got: %T", p.Email())
	}
}
