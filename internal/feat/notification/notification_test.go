package notification

import (
	"context"
	"strings"
	"testing"

	"github.com/fieldmaker/verify-backend/internal/gateway"
	"github.com/fieldmaker/verify-backend/internal/utils/phonenumber"
)

type stubSMSSender struct {
	lastText  string
	lastPhone string
	lastClass gateway.MessageClass
}

func (s *stubSMSSender) SendOtp(_ context.Context, phone *phonenumber.PhoneNumber, message string) (gateway.SendResult, error) {
	s.lastPhone = phone.Canonical()
	s.lastText = message
	return gateway.SendResult{Success: true}, nil
}

func (s *stubSMSSender) SendMessage(_ context.Context, phone *phonenumber.PhoneNumber, text string, class gateway.MessageClass) (gateway.SendResult, error) {
	s.lastPhone = phone.Canonical()
	s.lastText = text
	s.lastClass = class
	return gateway.SendResult{Success: true, JobId: "42"}, nil
}

type stubProvider struct {
	sms *stubSMSSender
}

func (p *stubProvider) SMS() gateway.SMSSender     { return p.sms }
func (p *stubProvider) Email() gateway.EmailSender { return nil }
func (p *stubProvider) SMSMocked() bool            { return false }

func TestSendWelcomeSms(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{sms: &stubSMSSender{}}
	sender := NewSender(provider)

	phone := phonenumber.MustParse("05551234567")
	result, err := sender.SendWelcomeSms(context.Background(), phone, "Ayse")
	if err != nil {
		t.Fatalf("expecting no error but got: %v", err)
	}
	if !result.Success {
		t.Fatalf("expecting a successful send")
	}
	if provider.sms.lastPhone != "905551234567" {
		t.Fatalf("expecting the canonical phone, got: %q", provider.sms.lastPhone)
	}
	if !strings.HasPrefix(provider.sms.lastText, "Ayse, ") {
		t.Fatalf("expecting the name at the start of the message, got: %q", provider.sms.lastText)
	}
	if provider.sms.lastClass != gateway.ClassTransactional {
		t.Fatalf("expecting a transactional send, got class: %v", provider.sms.lastClass)
	}
}

func TestSendBookingConfirmationSms(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{sms: &stubSMSSender{}}
	sender := NewSender(provider)

	phone := phonenumber.MustParse("905551234567")
	_, err := sender.SendBookingConfirmationSms(context.Background(), phone, "Hali Saha Maci", "2025-06-01", "20:00")
	if err != nil {
		t.Fatalf("expecting no error but got: %v", err)
	}

	for _, want := range []string{"Hali Saha Maci", "2025-06-01", "20:00"} {
		if !strings.Contains(provider.sms.lastText, want) {
			t.Fatalf("expecting %q in the message, got: %q", want, provider.sms.lastText)
		}
	}
}
