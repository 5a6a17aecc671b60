package server

type startPhoneVerificationParams struct {
	Phone string `json:"phone"`
}

type startEmailVerificationParams struct {
	Email string `json:"email"`
}

type resendCodeParams struct {
	VerificationId string `json:"verification_id"`
}

type verifyCodeParams struct {
	VerificationId string `json:"verification_id"`
	Code           string `json:"code"`
}

type validateTokenParams struct {
	Token string `json:"token"`
}

type welcomeSmsParams struct {
	Phone string `json:"phone"`
	Name  string `json:"name"`
}

type bookingConfirmationSmsParams struct {
	Phone     string `json:"phone"`
	EventName string `json:"event_name"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}

type smsSendRes struct {
	Success bool   `json:"success"`
	JobId   string `json:"job_id,omitempty"`
	Mocked  bool   `json:"mocked"`
}

type validatedTokenRes struct {
	Valid   bool   `json:"valid"`
	Channel string `json:"channel"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}
