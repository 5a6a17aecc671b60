package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/fieldmaker/verify-backend/internal/appenv"
	"github.com/fieldmaker/verify-backend/internal/database"
	"github.com/fieldmaker/verify-backend/internal/gateway"
	"github.com/fieldmaker/verify-backend/internal/l10n"
	"github.com/fieldmaker/verify-backend/internal/logger"
	"github.com/fieldmaker/verify-backend/internal/redisdb"
	"github.com/fieldmaker/verify-backend/internal/utils/appjwt"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type Server struct {
	port             int
	db               *database.Service
	rdb              *redis.Client
	gatewaysProvider gateway.Provider
	verifyJWT        *appjwt.AppJWT
	log              zerolog.Logger
}

func NewServer(ctx context.Context) *http.Server {
	log := logger.NewLogger(appenv.IsLocal())

	l10n.InitL10n(localesPath(), []string{"tr", "en"}, log)

	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		log.Fatal().Err(err).Msg("Can not read the PORT from env or error while converting to int")
		return nil
	}

	verifyJWT, err := appjwt.NewAppJWT(os.Getenv("RSA_PEM_PRIVATE_KEY_PATH"), "fieldmaker-verify")
	if err != nil {
		log.Fatal().Err(err).Msg("Can not load the jwt signing key")
		return nil
	}

	server := &Server{
		port:             port,
		db:               database.NewConnection(ctx, log),
		rdb:              redisdb.NewRedisClient(ctx, log),
		gatewaysProvider: gateway.NewProvider(log, netgsmCredentialsFromEnv(), smtpConfigFromEnv()),
		verifyJWT:        verifyJWT,
		log:              log,
	}

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", server.port),
		Handler:      server.RegisterRoutes(ctx),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

func localesPath() string {
	path := os.Getenv("LOCALES_PATH")
	if path == "" {
		path = "./locales"
	}
	return path
}

func netgsmCredentialsFromEnv() gateway.NetgsmCredentials {
	return gateway.NetgsmCredentials{
		Username:  os.Getenv("NETGSM_USERNAME"),
		Password:  os.Getenv("NETGSM_PASSWORD"),
		MsgHeader: os.Getenv("NETGSM_MSGHEADER"),
	}
}

func smtpConfigFromEnv() gateway.SMTPConfig {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}
	return gateway.SMTPConfig{
		Host:      os.Getenv("SMTP_HOST"),
		Port:      port,
		Username:  os.Getenv("SMTP_USERNAME"),
		Password:  os.Getenv("SMTP_PASSWORD"),
		FromEmail: os.Getenv("SMTP_FROM_EMAIL"),
		FromName:  os.Getenv("SMTP_FROM_NAME"),
	}
}
