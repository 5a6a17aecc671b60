package verification

import (
	"context"
	"errors"
	"time"

	"github.com/fieldmaker/verify-backend/internal/apperr"
	"github.com/fieldmaker/verify-backend/internal/database/database_queries"
	"github.com/fieldmaker/verify-backend/internal/feat/otp"
	"github.com/fieldmaker/verify-backend/internal/gateway"
	"github.com/fieldmaker/verify-backend/internal/tracker"
	"github.com/fieldmaker/verify-backend/internal/utils/appjwt"
	"github.com/fieldmaker/verify-backend/internal/utils/codehash"
	dbutils "github.com/fieldmaker/verify-backend/internal/utils/db_utils"
	"github.com/fieldmaker/verify-backend/internal/utils/emailvalidator"
	"github.com/fieldmaker/verify-backend/internal/utils/phonenumber"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	OtpCodeLength = 6

	codeExpiration = time.Minute * 2
	maxOtpAttempts = 5

	// accepted in place of a real code when the sms side runs without
	// provider credentials. never matches in live mode.
	mockBypassCode = "123456"

	verifiedTokenSubject  = "contact-verification"
	verifiedTokenLifetime = time.Hour * 24

	smsQuotaWindow   = time.Hour
	smsQuotaPerPhone = 10
)

const (
	auditEventCodeSent     = "code_sent"
	auditEventCodeResent   = "code_resent"
	auditEventSendFailed   = "send_failed"
	auditEventVerified     = "verified"
	auditEventVerifyFailed = "verify_failed"
)

type Repository interface {
	StartPhoneVerification(ctx context.Context, rawPhone string) (StartedVerification, error)
	StartEmailVerification(ctx context.Context, email string) (StartedVerification, error)
	ResendCode(ctx context.Context, verificationId uuid.UUID) (StartedVerification, error)
	VerifyCode(ctx context.Context, verificationId uuid.UUID, code string) (VerifiedResult, error)
	VerifyToken(token string) (*appjwt.VerificationClaims, error)
}

func NewRepository(ds DataSource, gatewaysProvider gateway.Provider, codeHasher codehash.CodeHasher, verifyJWT *appjwt.AppJWT) Repository {
	return repositoryImpl{
		dataSource: ds,
		otpSender:  otp.NewOTPSender(gatewaysProvider, OtpCodeLength),
		codeHasher: codeHasher,
		verifyJWT:  verifyJWT,
	}
}

// ---------------------------------------------------------------------------------

type repositoryImpl struct {
	dataSource DataSource
	otpSender  *otp.OTPSender
	codeHasher codehash.CodeHasher
	verifyJWT  *appjwt.AppJWT
}

func (repo repositoryImpl) StartPhoneVerification(ctx context.Context, rawPhone string) (StartedVerification, error) {
	zlog := zerolog.Ctx(ctx)

	phone, err := phonenumber.Parse(rawPhone)
	if err != nil {
		return StartedVerification{}, err
	}

	if err := repo.checkSmsQuota(ctx, phone.Canonical()); err != nil {
		return StartedVerification{}, err
	}

	// minted before the send so the audit trail carries the id even when
	// the delivery fails
	verificationId := uuid.New()

	code, sendResult, err := repo.otpSender.SendSmsOtp(ctx, phone)
	repo.recordSmsLog(ctx, phone.Canonical(), sendResult, err)

	if err != nil || !sendResult.Success {
		if err != nil {
			zlog.Err(err).Msg("error sending otp sms for phone verification")
		}
		repo.recordAudit(ctx, verificationId, ChannelSms, phone.Canonical(), auditEventSendFailed)
		return StartedVerification{}, apperr.ErrOtpSendFailed
	}

	tVerification := TempVerification{
		Id:        verificationId,
		Channel:   ChannelSms,
		Target:    phone.Canonical(),
		Mocked:    sendResult.Mocked,
		CreatedAt: time.Now(),
	}

	started, err := repo.storeStarted(ctx, tVerification, code, auditEventCodeSent)
	if err != nil {
		zlog.Err(err).Msg("error storing temp phone verification in the cache database")
		return StartedVerification{}, err
	}

	return started, nil
}

func (repo repositoryImpl) StartEmailVerification(ctx context.Context, email string) (StartedVerification, error) {
	zlog := zerolog.Ctx(ctx)

	if err := emailvalidator.IsValidEmailErr(email); err != nil {
		return StartedVerification{}, err
	}

	verificationId := uuid.New()

	code, err := repo.otpSender.SendEmailOtp(ctx, email)
	if err != nil {
		zlog.Err(err).Msg("error sending otp email for email verification")
		repo.recordAudit(ctx, verificationId, ChannelEmail, email, auditEventSendFailed)
		return StartedVerification{}, apperr.ErrOtpSendFailed
	}

	tVerification := TempVerification{
		Id:        verificationId,
		Channel:   ChannelEmail,
		Target:    email,
		CreatedAt: time.Now(),
	}

	started, err := repo.storeStarted(ctx, tVerification, code, auditEventCodeSent)
	if err != nil {
		zlog.Err(err).Msg("error storing temp email verification in the cache database")
		return StartedVerification{}, err
	}

	return started, nil
}

// ResendCode mints a fresh code for a still pending verification. The old
// code stops working, stored codes are hashed so there is nothing to reuse.
func (repo repositoryImpl) ResendCode(ctx context.Context, verificationId uuid.UUID) (StartedVerification, error) {
	zlog := zerolog.Ctx(ctx).With().Str("verification_id", verificationId.String()).Logger()

	tVerification, err := repo.dataSource.GetVerificationFromTempCache(ctx, verificationId)
	if err != nil {
		if errors.Is(err, apperr.ErrNoResult) {
			return StartedVerification{}, apperr.ErrVerificationNotFound
		}
		zlog.Err(err).Msg("error reading temp verification from the cache database")
		return StartedVerification{}, err
	}

	var code string
	var sendErr error

	tVerification.Channel.Fold(
		func() {
			phone, err := phonenumber.Parse(tVerification.Target)
			if err != nil {
				sendErr = err
				return
			}

			if err := repo.checkSmsQuota(ctx, phone.Canonical()); err != nil {
				sendErr = err
				return
			}

			var sendResult gateway.SendResult
			code, sendResult, err = repo.otpSender.SendSmsOtp(ctx, phone)
			repo.recordSmsLog(ctx, phone.Canonical(), sendResult, err)

			if err != nil || !sendResult.Success {
				sendErr = apperr.ErrOtpSendFailed
				return
			}
			tVerification.Mocked = sendResult.Mocked
		},
		func() {
			code, sendErr = repo.otpSender.SendEmailOtp(ctx, tVerification.Target)
			if sendErr != nil {
				sendErr = apperr.ErrOtpSendFailed
			}
		},
	)

	if sendErr != nil {
		zlog.Err(sendErr).Msg("error resending otp code")
		repo.recordAudit(ctx, tVerification.Id, tVerification.Channel, tVerification.Target, auditEventSendFailed)
		return StartedVerification{}, sendErr
	}

	// new code, fresh attempt budget and expiry window
	tVerification.Attempts = 0
	tVerification.CreatedAt = time.Now()

	started, err := repo.storeStarted(ctx, *tVerification, code, auditEventCodeResent)
	if err != nil {
		zlog.Err(err).Msg("error storing temp verification after resend in the cache database")
		return StartedVerification{}, err
	}

	return started, nil
}

func (repo repositoryImpl) VerifyCode(ctx context.Context, verificationId uuid.UUID, code string) (VerifiedResult, error) {
	zlog := zerolog.Ctx(ctx).With().Str("verification_id", verificationId.String()).Logger()

	tVerification, err := repo.dataSource.GetVerificationFromTempCache(ctx, verificationId)
	if err != nil {
		if errors.Is(err, apperr.ErrNoResult) {
			return VerifiedResult{}, apperr.ErrVerificationNotFound
		}
		zlog.Err(err).Msg("error reading temp verification from the cache database")
		return VerifiedResult{}, err
	}

	if time.Since(tVerification.CreatedAt) > codeExpiration {
		repo.deleteTempVerification(ctx, tVerification.Id)
		repo.recordAudit(ctx, tVerification.Id, tVerification.Channel, tVerification.Target, auditEventVerifyFailed)
		return VerifiedResult{}, apperr.ErrExpiredOtpCode
	}

	if tVerification.Attempts >= maxOtpAttempts {
		repo.deleteTempVerification(ctx, tVerification.Id)
		repo.recordAudit(ctx, tVerification.Id, tVerification.Channel, tVerification.Target, auditEventVerifyFailed)
		return VerifiedResult{}, apperr.ErrTooManyOtpAttempts
	}

	if !repo.isMatchingCode(*tVerification, code) {
		if _, err := repo.dataSource.IncrVerificationAttempts(ctx, tVerification.Id); err != nil {
			zlog.Err(err).Msg("error incrementing verification attempts in the cache database")
		}
		repo.recordAudit(ctx, tVerification.Id, tVerification.Channel, tVerification.Target, auditEventVerifyFailed)
		return VerifiedResult{}, apperr.ErrInvalidOtpCode
	}

	// single use, the record is gone before the token is handed out
	repo.deleteTempVerification(ctx, tVerification.Id)

	claims := appjwt.VerificationClaims{Channel: tVerification.Channel.String()}
	tVerification.Channel.Fold(
		func() { claims.Phone = tVerification.Target },
		func() { claims.Email = tVerification.Target },
	)

	tokenExpAt := time.Now().Add(verifiedTokenLifetime)
	token, err := repo.verifyJWT.GenWithClaims(tokenExpAt, claims, verifiedTokenSubject)
	if err != nil {
		zlog.Err(err).Msg("error generating the verification token")
		return VerifiedResult{}, err
	}

	repo.recordAudit(ctx, tVerification.Id, tVerification.Channel, tVerification.Target, auditEventVerified)

	result := VerifiedResult{
		Token:      token,
		TokenExpAt: tokenExpAt,
		Channel:    tVerification.Channel,
		Target:     tVerification.Target,
	}
	return result, nil
}

func (repo repositoryImpl) VerifyToken(token string) (*appjwt.VerificationClaims, error) {
	claims, err := repo.verifyJWT.VerifyToken(token, verifiedTokenSubject)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.ErrExpiredSessionToken
		}
		return nil, err
	}
	return claims, nil
}

func (repo repositoryImpl) deleteTempVerification(ctx context.Context, id uuid.UUID) {
	if err := repo.dataSource.DeleteVerificationFromTempCache(ctx, id); err != nil {
		zerolog.Ctx(ctx).Err(err).Str("verification_id", id.String()).Msg("error deleting temp verification from the cache database")
	}
}

func (repo repositoryImpl) isMatchingCode(tVerification TempVerification, code string) bool {
	if tVerification.Mocked && code == mockBypassCode {
		return true
	}
	return repo.codeHasher.IsSameCode(tVerification.HashedCode, code)
}

func (repo repositoryImpl) storeStarted(ctx context.Context, tVerification TempVerification, code, auditEvent string) (StartedVerification, error) {
	hashedCode, err := repo.codeHasher.HashCode(code)
	if err != nil {
		return StartedVerification{}, err
	}
	tVerification.HashedCode = hashedCode

	if ok := tVerification.ValidateForStore(); !ok {
		return StartedVerification{}, apperr.ErrUnexpectedErrorOccurred
	}

	if err := repo.dataSource.StoreVerificationInTempCache(ctx, tVerification); err != nil {
		return StartedVerification{}, err
	}

	repo.recordAudit(ctx, tVerification.Id, tVerification.Channel, tVerification.Target, auditEvent)

	started := StartedVerification{
		Id:        tVerification.Id,
		Channel:   tVerification.Channel,
		Target:    tVerification.Target,
		ExpiresIn: int(codeExpiration.Seconds()),
		Mocked:    tVerification.Mocked,
	}
	return started, nil
}

func (repo repositoryImpl) checkSmsQuota(ctx context.Context, canonicalPhone string) error {
	zlog := zerolog.Ctx(ctx)

	count, err := repo.dataSource.SmsLogCountForPhoneSince(ctx, canonicalPhone, time.Now().Add(-smsQuotaWindow))
	if err != nil {
		// the quota is a guard rail, a storage hiccup should not block sends
		zlog.Err(err).Msg("error counting recent sms sends for quota check")
		return nil
	}

	if count >= smsQuotaPerPhone {
		return apperr.ErrTooManyRequests
	}
	return nil
}

func (repo repositoryImpl) recordSmsLog(ctx context.Context, canonicalPhone string, sendResult gateway.SendResult, sendErr error) {
	zlog := zerolog.Ctx(ctx)

	outcome := "sent"
	if sendErr != nil || !sendResult.Success {
		outcome = "failed"
	}

	arg := database_queries.SmsLogInsertParams{
		Phone:        canonicalPhone,
		MessageClass: "otp",
		Outcome:      outcome,
		JobID:        dbutils.ToPgTypeText(sendResult.JobId),
		Mocked:       sendResult.Mocked,
	}
	if sendResult.ErrorCode != 0 {
		errorCode := int32(sendResult.ErrorCode)
		arg.ErrorCode = dbutils.ToPgTypeInt4(&errorCode)
	}

	if err := repo.dataSource.InsertSmsLog(ctx, arg); err != nil {
		zlog.Err(err).Msg("error inserting sms log row")
	}
}

func (repo repositoryImpl) recordAudit(ctx context.Context, verificationId uuid.UUID, channel Channel, target, event string) {
	zlog := zerolog.Ctx(ctx)

	arg := database_queries.VerificationAuditInsertParams{
		VerificationID: dbutils.ToPgTypeUUID(verificationId),
		Channel:        channel.String(),
		Target:         target,
		Event:          event,
	}

	if ip, ok := tracker.ReqIPFromContext(ctx); ok {
		ipStr := ip.String()
		arg.RequestIp = &ipStr
	}

	if err := repo.dataSource.InsertAuditEvent(ctx, arg); err != nil {
		zlog.Err(err).Msg("error inserting verification audit row")
	}
}
