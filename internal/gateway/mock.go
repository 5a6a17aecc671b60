package gateway

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"github.com/fieldmaker/verify-backend/internal/utils/phonenumber"
	"github.com/rs/zerolog"
)

// mockSMSSender is the designed fallback for unconfigured credentials, not
// a failure path. It never touches the network, it logs the message body
// (which carries the code for otp sends) and reports success.
type mockSMSSender struct{}

func newMockSMSSender() *mockSMSSender {
	return new(mockSMSSender)
}

func (mockSMSSender) SendOtp(ctx context.Context, phone *phonenumber.PhoneNumber, message string) (SendResult, error) {
	jobId := "MOCK_OTP_" + randomHex(8)
	zerolog.Ctx(ctx).Info().
		Str("phone", phone.Canonical()).
		Str("message", message).
		Str("job_id", jobId).
		Msg("MOCK OTP SMS")

	return SendResult{Success: true, JobId: jobId, Mocked: true}, nil
}

func (mockSMSSender) SendMessage(ctx context.Context, phone *phonenumber.PhoneNumber, text string, class MessageClass) (SendResult, error) {
	jobId := "MOCK_" + randomHex(8)
	zerolog.Ctx(ctx).Info().
		Str("phone", phone.Canonical()).
		Str("message", text).
		Str("job_id", jobId).
		Msg("MOCK SMS")

	return SendResult{Success: true, JobId: jobId, Mocked: true}, nil
}

type mockEmailSender struct{}

func newMockEmailSender() *mockEmailSender {
	return new(mockEmailSender)
}

func (mockEmailSender) Send(ctx context.Context, to, subject, body string) error {
	zerolog.Ctx(ctx).Info().
		Str("to", to).
		Str("subject", subject).
		Str("body", body).
		Msg("MOCK EMAIL")
	return nil
}

func randomHex(nBytes int) string {
	b := make([]byte, nBytes)
	rand.Read(b)
	return hex.EncodeToString(b)
}
