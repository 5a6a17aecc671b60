package gateway

import (
	"context"

	"github.com/fieldmaker/verify-backend/internal/utils/phonenumber"
	"github.com/rs/zerolog"
)

// MessageClass decides the regulatory treatment of an SMS. Otp and
// transactional messages go out as is, promotional messages get the
// mandated opt-out footer appended.
type MessageClass int

const (
	ClassOtp MessageClass = iota
	ClassTransactional
	ClassPromotional
)

// SendResult is produced once per send call. It is not persisted by the
// gateway itself, the caller decides what to do with it.
type SendResult struct {
	Success   bool
	JobId     string
	ErrorCode int
	Mocked    bool
}

type SMSSender interface {
	// SendOtp delivers a one time code message through the provider otp
	// endpoint. The message text already contains the code.
	SendOtp(ctx context.Context, phone *phonenumber.PhoneNumber, message string) (SendResult, error)

	// SendMessage delivers caller supplied text through the bulk send
	// endpoint. Same transport path as SendOtp, no code generation.
	SendMessage(ctx context.Context, phone *phonenumber.PhoneNumber, text string, class MessageClass) (SendResult, error)
}

type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

type Provider interface {
	SMS() SMSSender
	Email() EmailSender

	// SMSMocked reports whether the SMS side runs without real provider
	// credentials. The verification flow uses it for the mock bypass code.
	SMSMocked() bool
}

type providerImpl struct {
	sms       SMSSender
	email     EmailSender
	smsMocked bool
}

// NewProvider picks the live or the mock transport for each channel once,
// at construction. Nothing re-checks credentials per call.
func NewProvider(log zerolog.Logger, smsCreds NetgsmCredentials, smtpConf SMTPConfig) Provider {
	p := new(providerImpl)

	if smsCreds.Configured() {
		p.sms = newNetgsmSender(smsCreds)
		log.Info().Str("msgheader", smsCreds.MsgHeader).Msg("Netgsm SMS sender initialized")
	} else {
		p.sms = newMockSMSSender()
		p.smsMocked = true
		log.Warn().Msg("Netgsm credentials not configured. SMS sending will be mocked.")
	}

	if smtpConf.Configured() {
		p.email = newSMTPEmailSender(smtpConf)
		log.Info().Str("host", smtpConf.Host).Msg("SMTP email sender initialized")
	} else {
		p.email = newMockEmailSender()
		log.Warn().Msg("SMTP credentials not configured. Email sending will be mocked.")
	}

	return p
}

func (p *providerImpl) SMS() SMSSender     { return p.sms }
func (p *providerImpl) Email() EmailSender { return p.email }
func (p *providerImpl) SMSMocked() bool    { return p.smsMocked }
