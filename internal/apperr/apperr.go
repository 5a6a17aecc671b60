package apperr

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/fieldmaker/verify-backend/internal/l10n"
)

func IsAppErr(err error) bool {
	return UnwrapAppErr(err) != nil
}

func UnwrapAppErr(err error) *AppErr {
	for {
		appErr, ok := err.(*AppErr)
		if ok {
			return appErr
		}
		switch x := err.(type) {
		case interface{ Unwrap() error }:
			err = x.Unwrap()
			if err == nil {
				return nil
			}
		case interface{ Unwrap() []error }:
			for _, err := range x.Unwrap() {
				e := UnwrapAppErr(err)
				if e != nil {
					return e
				}
			}
			return nil
		default:
			return nil
		}
	}
}

type AppErr struct {
	err           error
	translationID string
	translatedMsg string
	errorCode     string
}

func (err AppErr) Error() string {
	if err.translatedMsg != "" {
		return err.translatedMsg
	}
	return err.err.Error()
}

func (err AppErr) Unwrap() error { return err.err }

func (err AppErr) ErrorCode() string { return err.errorCode }

func (err *AppErr) SetTranslation(ctx context.Context) {
	local, ok := l10n.LocalizerFromContext(ctx)
	if ok && err.translationID != "" {
		err.translatedMsg = local.GetWithId(err.translationID)
	}
}

func (e AppErr) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, 2)

	m["error"] = e.Error()

	if len(e.ErrorCode()) != 0 {
		m["code"] = e.ErrorCode()
	}

	return json.Marshal(m)
}

func NewAppErr(err error) error {
	return &AppErr{
		err: err,
	}
}

func NewAppErrWithErrorCode(err error, errorCode string) error {
	return &AppErr{
		err:       err,
		errorCode: errorCode,
	}
}

func NewAppErrWithTr(err error, translationID string, errorCode string) error {
	return &AppErr{
		err:           err,
		translationID: translationID,
		errorCode:     errorCode,
	}
}

// -------------------------------------------

var (
	ErrNoResult                = NewAppErrWithTr(errors.New("error no result found"), l10n.NoResultFoundTrId, "res_1")
	ErrUnexpectedErrorOccurred = NewAppErrWithTr(errors.New("unexpected error occurred"), l10n.UnexpectedErrorOccurredTrId, "res_2")
	ErrTooManyRequests         = NewAppErrWithTr(errors.New("too many requests"), l10n.TooManyRequestsTrId, "res_3")

	// verification
	ErrInvalidPhoneNumber   = NewAppErrWithTr(errors.New("invalid phone number"), l10n.InvalidPhoneNumberTrId, "verify_1")
	ErrInvalidEmail         = NewAppErrWithTr(errors.New("invalid email"), l10n.InvalidEmailTrId, "verify_2")
	ErrInvalidOtpCode       = NewAppErrWithTr(errors.New("invalid otp code"), l10n.InvalidOtpCodeTrId, "verify_3")
	ErrExpiredOtpCode       = NewAppErrWithTr(errors.New("expired otp code"), l10n.ExpiredOtpCodeTrId, "verify_4")
	ErrTooManyOtpAttempts   = NewAppErrWithTr(errors.New("too many otp attempts"), l10n.TooManyOtpAttemptsTrId, "verify_5")
	ErrOtpSendFailed        = NewAppErrWithTr(errors.New("could not send the otp code"), l10n.OtpSendFailedTrId, "verify_6")
	ErrVerificationNotFound = NewAppErrWithTr(errors.New("verification record not found"), l10n.VerificationNotFoundTrId, "verify_7")

	// jwt
	ErrExpiredSessionToken = NewAppErrWithTr(errors.New("expired session token"), l10n.ExpiredSessionTokenTrId, "verify_8")
)
