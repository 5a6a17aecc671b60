package l10n

const (
	NoResultFoundTrId           = "no_result_found"
	UnexpectedErrorOccurredTrId = "unexpected_error_occurred"
	TooManyRequestsTrId         = "too_many_requests"

	// verification
	InvalidPhoneNumberTrId      = "invalid_phone_number"
	InvalidEmailTrId            = "invalid_email"
	InvalidOtpCodeTrId          = "invalid_otp_code"
	ExpiredOtpCodeTrId          = "expired_otp_code"
	TooManyOtpAttemptsTrId      = "too_many_otp_attempts"
	OtpSendFailedTrId           = "otp_send_failed"
	VerificationNotFoundTrId    = "verification_not_found"
	VerificationCodeSentTrId    = "verification_code_sent"
	ExpiredSessionTokenTrId       = "expired_session_token"
	OperationDoneSuccessfullyTrId = "operation_done_successfully"
)
