package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/fieldmaker/verify-backend/internal/gateway"
	"github.com/fieldmaker/verify-backend/internal/utils/phonenumber"
)

const (
	otpChars = "0123456789"

	// the sms body is always Turkish, the provider account and the
	// subscriber base are domestic
	smsOtpMessageFmt = "Fieldmaker dogrulama kodunuz: %s"

	emailOtpSubjectFmt = "Fieldmaker - Dogrulama Kodunuz: %s"
	emailOtpBodyFmt    = "Merhaba,\n\nE-posta adresinizi dogrulamak icin asagidaki kodu kullanin:\n\nDogrulama Kodunuz: %s\n\nBu kod 2 dakika icinde gecerliligini yitirecektir.\n\nEger bu islemi siz yapmadiysaniz, bu e-postayi gormezden gelebilirsiniz.\n\nSaygilarimizla,\nFieldmaker Ekibi"
)

// OtpRequest is built once per verification attempt and discarded after the
// send.
type OtpRequest struct {
	Phone *phonenumber.PhoneNumber
	Code  string
}

type OTPSender struct {
	provider   gateway.Provider
	codeLength uint8
}

func NewOTPSender(provider gateway.Provider, codeLength uint8) *OTPSender {
	return &OTPSender{provider: provider, codeLength: codeLength}
}

// SendSmsOtp generates a fresh code and delivers it over the sms gateway.
// The generated code is returned to the caller so the verification flow can
// store it for the later check.
func (o *OTPSender) SendSmsOtp(ctx context.Context, phone *phonenumber.PhoneNumber) (string, gateway.SendResult, error) {
	req := OtpRequest{Phone: phone, Code: o.GenCode()}
	result, err := o.SendSmsOtpRequest(ctx, req)
	return req.Code, result, err
}

// SendSmsOtpRequest delivers an already generated code. Resends reuse the
// stored code instead of minting a new one.
func (o *OTPSender) SendSmsOtpRequest(ctx context.Context, req OtpRequest) (gateway.SendResult, error) {
	message := fmt.Sprintf(smsOtpMessageFmt, req.Code)
	return o.provider.SMS().SendOtp(ctx, req.Phone, message)
}

func (o *OTPSender) SendEmailOtp(ctx context.Context, email string) (string, error) {
	code := o.GenCode()
	subject := fmt.Sprintf(emailOtpSubjectFmt, code)
	body := fmt.Sprintf(emailOtpBodyFmt, code)
	err := o.provider.Email().Send(ctx, email, subject, body)
	return code, err
}

// GenCode returns a fixed length numeric code from a cryptographically
// secure source.
func (o *OTPSender) GenCode() string {
	strBuild := strings.Builder{}
	for range o.codeLength {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(otpChars))))
		if err != nil {
			// crypto/rand only fails when the platform source is broken,
			// there is nothing sensible to degrade to for an otp
			panic(err)
		}
		strBuild.WriteByte(otpChars[idx.Int64()])
	}
	return strBuild.String()
}
