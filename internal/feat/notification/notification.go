package notification

import (
	"context"
	"fmt"

	"github.com/fieldmaker/verify-backend/internal/gateway"
	"github.com/fieldmaker/verify-backend/internal/utils/phonenumber"
)

const (
	welcomeSmsFmt = "%s, Fieldmaker'a hos geldiniz! Etkinliklere katilmaya ve rezervasyon yapmaya baslayabilirsiniz."

	bookingConfirmationSmsFmt = "Rezervasyonunuz onaylandi!\nEtkinlik: %s\nTarih: %s\nSaat: %s\nIyi eglenceler!"
)

// Sender pushes the non-otp transactional messages. Same transport path as
// the otp sends, with caller supplied body text.
type Sender struct {
	provider gateway.Provider
}

func NewSender(provider gateway.Provider) *Sender {
	return &Sender{provider: provider}
}

func (s *Sender) SendWelcomeSms(ctx context.Context, phone *phonenumber.PhoneNumber, name string) (gateway.SendResult, error) {
	text := fmt.Sprintf(welcomeSmsFmt, name)
	return s.provider.SMS().SendMessage(ctx, phone, text, gateway.ClassTransactional)
}

func (s *Sender) SendBookingConfirmationSms(ctx context.Context, phone *phonenumber.PhoneNumber, eventName, date, time string) (gateway.SendResult, error) {
	text := fmt.Sprintf(bookingConfirmationSmsFmt, eventName, date, time)
	return s.provider.SMS().SendMessage(ctx, phone, text, gateway.ClassTransactional)
}
