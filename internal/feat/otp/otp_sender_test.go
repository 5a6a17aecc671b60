package otp

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fieldmaker/verify-backend/internal/gateway"
	"github.com/fieldmaker/verify-backend/internal/utils/phonenumber"
	"github.com/rs/zerolog"
)

func newMockedProvider() gateway.Provider {
	return gateway.NewProvider(zerolog.Nop(), gateway.NetgsmCredentials{}, gateway.SMTPConfig{})
}

func TestGenCodeShapeAndLength(t *testing.T) {
	sender := NewOTPSender(newMockedProvider(), 6)

	for range 100 {
		code := sender.GenCode()
		if len(code) != 6 {
			t.Fatalf("expecting a 6 digit code, got: %q", code)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("expecting only digits, got: %q", code)
			}
		}
	}
}

func TestGenCodeIsNotConstant(t *testing.T) {
	sender := NewOTPSender(newMockedProvider(), 6)

	seen := map[string]struct{}{}
	for range 50 {
		seen[sender.GenCode()] = struct{}{}
	}

	// 50 draws from a million values collapsing to a single one means the
	// source is broken
	if len(seen) == 1 {
		t.Fatalf("repeated GenCode calls returned a constant code")
	}
}

func TestSendSmsOtpThroughMockedGateway(t *testing.T) {
	var logBuf bytes.Buffer
	ctx := zerolog.New(&logBuf).WithContext(context.Background())

	phone, err := phonenumber.Parse("+90 555 123 4567")
	if err != nil {
		t.Fatalf("expecting no error, got: %v", err)
	}

	sender := NewOTPSender(newMockedProvider(), 6)
	code, result, err := sender.SendSmsOtp(ctx, phone)
	if err != nil {
		t.Fatalf("expecting no error, got: %v", err)
	}

	if !result.Success || !result.Mocked {
		t.Fatalf("expecting a mocked success, got: %+v", result)
	}
	if len(code) != 6 {
		t.Fatalf("expecting a 6 digit code, got: %q", code)
	}
	if !strings.Contains(logBuf.String(), code) {
		t.Fatalf("mock mode must log the generated code, log was: %s", logBuf.String())
	}
}
