package server

import (
	"net/http"

	"github.com/fieldmaker/verify-backend/internal/middleware"
	"github.com/fieldmaker/verify-backend/internal/utils/phonenumber"
)

func notificationRouter(s *Server) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /welcome-sms", s.sendWelcomeSms)
	mux.HandleFunc("POST /booking-confirmation-sms", s.sendBookingConfirmationSms)

	return middleware.MiddlewareChain(
		mux.ServeHTTP,
	)
}

func (s *Server) sendWelcomeSms(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var params welcomeSmsParams
	if err := decodeJsonParams(r, &params); err != nil {
		writeError(ctx, w, http.StatusBadRequest, err)
		return
	}

	phone, err := phonenumber.Parse(params.Phone)
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, err)
		return
	}

	result, err := s.NewNotificationSender().SendWelcomeSms(ctx, phone, params.Name)
	if err != nil || !result.Success {
		writeError(ctx, w, http.StatusBadGateway, errOrSendFailure(err))
		return
	}

	writeJson(ctx, w, http.StatusOK, newSmsSendRes(result))
}

func (s *Server) sendBookingConfirmationSms(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var params bookingConfirmationSmsParams
	if err := decodeJsonParams(r, &params); err != nil {
		writeError(ctx, w, http.StatusBadRequest, err)
		return
	}

	phone, err := phonenumber.Parse(params.Phone)
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, err)
		return
	}

	result, err := s.NewNotificationSender().SendBookingConfirmationSms(ctx, phone, params.EventName, params.Date, params.Time)
	if err != nil || !result.Success {
		writeError(ctx, w, http.StatusBadGateway, errOrSendFailure(err))
		return
	}

	writeJson(ctx, w, http.StatusOK, newSmsSendRes(result))
}
