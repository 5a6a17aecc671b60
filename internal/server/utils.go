package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/fieldmaker/verify-backend/internal/apperr"
	"github.com/fieldmaker/verify-backend/internal/gateway"
	"github.com/fieldmaker/verify-backend/internal/utils/apiutils"
)

func writeError(ctx context.Context, w http.ResponseWriter, code int, errs ...error) {
	apiutils.WriteError(ctx, w, code, errs...)
}

func writeJson(ctx context.Context, w http.ResponseWriter, code int, payload any) {
	apiutils.WriteJson(ctx, w, code, payload)
}

func newSmsSendRes(result gateway.SendResult) smsSendRes {
	return smsSendRes{
		Success: result.Success,
		JobId:   result.JobId,
		Mocked:  result.Mocked,
	}
}

func errOrSendFailure(err error) error {
	if err != nil {
		return err
	}
	return errors.New("sms could not be delivered")
}

func statusForVerificationErr(err error) int {
	switch {
	case errors.Is(err, apperr.ErrVerificationNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrTooManyRequests),
		errors.Is(err, apperr.ErrTooManyOtpAttempts):
		return http.StatusTooManyRequests
	case errors.Is(err, apperr.ErrOtpSendFailed):
		return http.StatusBadGateway
	case apperr.IsAppErr(err):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
