package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/fieldmaker/verify-backend/internal/middleware"
	"github.com/fieldmaker/verify-backend/internal/middleware/ratelimiter"
	"github.com/fieldmaker/verify-backend/internal/middleware/ratelimiter/redis_ratelimiter"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func verificationRouter(s *Server) http.Handler {
	mux := http.NewServeMux()

	requestCodeRateLimiter := getRequestCodeRateLimiter(s.rdb)
	mux.HandleFunc(
		"POST /phone/request-code",
		middleware.MiddlewareChain(
			s.startPhoneVerification,
			requestCodeRateLimiter,
		),
	)
	mux.HandleFunc(
		"POST /email/request-code",
		middleware.MiddlewareChain(
			s.startEmailVerification,
			requestCodeRateLimiter,
		),
	)
	mux.HandleFunc(
		"POST /resend-code",
		middleware.MiddlewareChain(
			s.resendCode,
			requestCodeRateLimiter,
		),
	)

	verifyCodeRateLimiter := getVerifyCodeRateLimiter(s.rdb)
	mux.HandleFunc(
		"POST /verify-code",
		middleware.MiddlewareChain(
			s.verifyCode,
			verifyCodeRateLimiter,
		),
	)

	mux.HandleFunc("POST /validate-token", s.validateToken)

	return middleware.MiddlewareChain(
		mux.ServeHTTP,
	)
}

func getRequestCodeRateLimiter(rdb *redis.Client) middleware.Middleware {
	return middleware.RateLimiter(
		func(r *http.Request) string { return r.RemoteAddr },
		redis_ratelimiter.NewRedisFixedWindowLimiter(
			rdb,
			ratelimiter.Config{
				Enabled:              true,
				RequestsPerTimeFrame: 5,
				TimeFrame:            time.Minute,
				KeyPrefix:            "request_code",
			},
		),
	)
}

func getVerifyCodeRateLimiter(rdb *redis.Client) middleware.Middleware {
	return middleware.RateLimiter(
		func(r *http.Request) string { return r.RemoteAddr },
		redis_ratelimiter.NewRedisFixedWindowLimiter(
			rdb,
			ratelimiter.Config{
				Enabled:              true,
				RequestsPerTimeFrame: 15,
				TimeFrame:            time.Minute,
				KeyPrefix:            "verify_code",
			},
		),
	)
}

func decodeJsonParams(r *http.Request, params any) error {
	err := json.NewDecoder(r.Body).Decode(params)
	if err != nil {
		return errors.New("can not parse the request body as json")
	}
	return nil
}

func (s *Server) startPhoneVerification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var params startPhoneVerificationParams
	if err := decodeJsonParams(r, &params); err != nil {
		writeError(ctx, w, http.StatusBadRequest, err)
		return
	}

	repo := s.NewVerificationRepository()

	started, err := repo.StartPhoneVerification(ctx, params.Phone)
	if err != nil {
		writeError(ctx, w, statusForVerificationErr(err), err)
		return
	}

	writeJson(ctx, w, http.StatusCreated, started)
}

func (s *Server) startEmailVerification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var params startEmailVerificationParams
	if err := decodeJsonParams(r, &params); err != nil {
		writeError(ctx, w, http.StatusBadRequest, err)
		return
	}

	repo := s.NewVerificationRepository()

	started, err := repo.StartEmailVerification(ctx, params.Email)
	if err != nil {
		writeError(ctx, w, statusForVerificationErr(err), err)
		return
	}

	writeJson(ctx, w, http.StatusCreated, started)
}

func (s *Server) resendCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var params resendCodeParams
	if err := decodeJsonParams(r, &params); err != nil {
		writeError(ctx, w, http.StatusBadRequest, err)
		return
	}

	verificationId, err := uuid.Parse(params.VerificationId)
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, errors.New("invalid verification_id"))
		return
	}

	repo := s.NewVerificationRepository()

	started, err := repo.ResendCode(ctx, verificationId)
	if err != nil {
		writeError(ctx, w, statusForVerificationErr(err), err)
		return
	}

	writeJson(ctx, w, http.StatusOK, started)
}

func (s *Server) verifyCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var params verifyCodeParams
	if err := decodeJsonParams(r, &params); err != nil {
		writeError(ctx, w, http.StatusBadRequest, err)
		return
	}

	verificationId, err := uuid.Parse(params.VerificationId)
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, errors.New("invalid verification_id"))
		return
	}

	repo := s.NewVerificationRepository()

	result, err := repo.VerifyCode(ctx, verificationId, params.Code)
	if err != nil {
		writeError(ctx, w, statusForVerificationErr(err), err)
		return
	}

	writeJson(ctx, w, http.StatusOK, result)
}

func (s *Server) validateToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var params validateTokenParams
	if err := decodeJsonParams(r, &params); err != nil {
		writeError(ctx, w, http.StatusBadRequest, err)
		return
	}

	repo := s.NewVerificationRepository()

	claims, err := repo.VerifyToken(params.Token)
	if err != nil {
		writeError(ctx, w, http.StatusUnauthorized, err)
		return
	}

	res := validatedTokenRes{
		Valid:   true,
		Channel: claims.Channel,
		Phone:   claims.Phone,
		Email:   claims.Email,
	}
	writeJson(ctx, w, http.StatusOK, res)
}
